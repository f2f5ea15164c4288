// Package storeerr définit la taxonomie d'erreurs partagée par les handlers :
// validation, introuvable, conflit (email déjà inscrit) et erreur passerelle.
// Rien ici n'est fatal au processus, tout est borné à une requête.
package storeerr

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("introuvable")
	ErrConflict   = errors.New("conflit")
	ErrValidation = errors.New("données invalides")
)

// GatewayError transporte le message du prestataire de paiement tel quel,
// pour être affiché verbatim côté client (retry autorisé).
type GatewayError struct {
	Message string
}

func (e *GatewayError) Error() string {
	if e.Message == "" {
		return "erreur passerelle de paiement"
	}
	return e.Message
}

// NewGatewayError enveloppe une erreur du prestataire.
func NewGatewayError(err error) *GatewayError {
	if err == nil {
		return &GatewayError{}
	}
	return &GatewayError{Message: err.Error()}
}

// Validationf construit une erreur de validation avec détail.
func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
