package payement

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"vroomvisions_backend/internal/checkout"
	carthandlers "vroomvisions_backend/internal/handlers/cart"
	"vroomvisions_backend/internal/middleware"
	"vroomvisions_backend/internal/storeerr"
)

// Checkouts est le gestionnaire d'orchestrateurs par session, branché au
// démarrage avec la passerelle Razorpay.
var Checkouts *checkout.Manager

// CreateRazorpayOrder — POST /api/razorpay/order
// Garde d'entrée : email présent et panier non vide, sinon erreur de
// validation sans transition. Le montant facturé vient du panier serveur,
// jamais du client.
func CreateRazorpayOrder(c *gin.Context) {
	var req struct {
		Amount   int64  `json:"amount"`
		Currency string `json:"currency"`
		Receipt  string `json:"receipt"`
		Email    string `json:"email"`
		Method   string `json:"method"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Requête invalide"})
		return
	}

	sid := c.GetString(middleware.SessionIDKey)
	crt := carthandlers.Load(c.Request.Context(), sid)

	orch := Checkouts.ForSession(sid)
	if err := orch.Begin(req.Email, crt); err != nil {
		if errors.Is(err, checkout.ErrPaymentInFlight) {
			c.JSON(http.StatusConflict, gin.H{"message": "Un paiement est déjà en cours"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	order, err := orch.Submit(c.Request.Context(), req.Method)
	if err != nil {
		if errors.Is(err, checkout.ErrPaymentInFlight) {
			c.JSON(http.StatusConflict, gin.H{"message": "Un paiement est déjà en cours"})
			return
		}
		var gerr *storeerr.GatewayError
		if errors.As(err, &gerr) {
			// message du prestataire verbatim, retry autorisé
			c.JSON(http.StatusBadGateway, gin.H{"message": gerr.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if req.Amount > 0 && req.Amount != order.Amount {
		log.Printf("⚠️ Montant client (%d) ≠ montant panier serveur (%d) pour session %s",
			req.Amount, order.Amount, sid)
	}

	c.JSON(http.StatusCreated, order)
}
