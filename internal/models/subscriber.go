package models

import "time"

// Subscriber est une adresse inscrite à la newsletter. L'email est la clé :
// une seconde inscription avec le même email doit échouer en conflit.
type Subscriber struct {
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
