package intake

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSubscribers remplace la persistance Scylla : même sémantique CAS que
// INSERT IF NOT EXISTS (applied = false sur doublon, aucune écriture).
type fakeSubscribers struct {
	emails []string
}

func (f *fakeSubscribers) insert(_ context.Context, email string, _ time.Time) (bool, error) {
	for _, e := range f.emails {
		if e == email {
			return false, nil
		}
	}
	f.emails = append(f.emails, email)
	return true, nil
}

// Les chemins de validation se testent sans base : le binding rejette la
// requête avant tout accès ScyllaDB.
func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func intakeRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/reviews", CreateReview)
	r.POST("/api/subscribe", Subscribe)
	return r
}

func TestCreateReviewChampsManquants(t *testing.T) {
	r := intakeRouter()

	w := postJSON(r, "/api/reviews", `{"name": "Arjun"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Données d'avis invalides")
}

func TestCreateReviewNoteHorsBornes(t *testing.T) {
	r := intakeRouter()

	for _, rating := range []int{0, 6, -1, 12} {
		body := fmt.Sprintf(`{
			"name": "Arjun Mehta",
			"role": "Automotive photographer",
			"rating": %d,
			"comment": "Des LUTs superbes pour mes photos de nuit."
		}`, rating)
		w := postJSON(r, "/api/reviews", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "rating: %d", rating)
	}
}

func TestCreateReviewCommentaireTropCourt(t *testing.T) {
	r := intakeRouter()

	w := postJSON(r, "/api/reviews", `{
		"name": "Arjun Mehta",
		"role": "Photographer",
		"rating": 5,
		"comment": "court"
	}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeEmailInvalide(t *testing.T) {
	r := intakeRouter()

	for _, body := range []string{
		`{}`,
		`{"email": ""}`,
		`{"email": "pas-un-email"}`,
		`{"email": "manque@"}`,
	} {
		w := postJSON(r, "/api/subscribe", body)
		assert.Equal(t, http.StatusBadRequest, w.Code, "body: %s", body)
		assert.Contains(t, w.Body.String(), "Adresse email invalide")
	}
}

func TestSubscribeDoublonConflit(t *testing.T) {
	fake := &fakeSubscribers{}
	orig := insertSubscriber
	insertSubscriber = fake.insert
	defer func() { insertSubscriber = orig }()

	r := intakeRouter()

	w := postJSON(r, "/api/subscribe", `{"email": "Arjun@Example.com"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Inscription réussie")

	// même adresse, casse différente : conflit explicite, pas de 2e écriture
	w = postJSON(r, "/api/subscribe", `{"email": "ARJUN@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email déjà inscrit")

	require.Len(t, fake.emails, 1)
	assert.Equal(t, "arjun@example.com", fake.emails[0])
}

func TestSubscribePersistanceEnPanne(t *testing.T) {
	orig := insertSubscriber
	insertSubscriber = func(context.Context, string, time.Time) (bool, error) {
		return false, errors.New("no hosts available")
	}
	defer func() { insertSubscriber = orig }()

	r := intakeRouter()

	w := postJSON(r, "/api/subscribe", `{"email": "arjun@example.com"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Erreur inscription")
}
