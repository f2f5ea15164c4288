package payement

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gocql/gocql"

	"vroomvisions_backend/internal/database"
	carthandlers "vroomvisions_backend/internal/handlers/cart"
	"vroomvisions_backend/internal/handlers/product"
	"vroomvisions_backend/internal/middleware"
	"vroomvisions_backend/internal/models"
	"vroomvisions_backend/internal/services"
	"vroomvisions_backend/internal/utils"
)

// VerifyPayment — POST /api/razorpay/verify
// Confirme le paiement côté serveur : signature HMAC d'abord, puis le jeton
// de transaction. Un callback dupliqué ou périmé est un no-op (200).
func VerifyPayment(c *gin.Context) {
	var req struct {
		RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
		RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
		RazorpaySignature string `json:"razorpay_signature" binding:"required"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Requête invalide"})
		return
	}

	if !services.VerifyPaymentSignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		log.Printf("❌ Signature Razorpay invalide pour %s", req.RazorpayOrderID)
		c.JSON(http.StatusBadRequest, gin.H{"message": "Signature de paiement invalide"})
		return
	}

	orch, ok := Checkouts.ByToken(req.RazorpayOrderID)
	if !ok {
		// jeton inconnu : transaction déjà confirmée ou abandonnée
		log.Printf("🔁 Callback ignoré pour %s (jeton périmé)", req.RazorpayOrderID)
		c.JSON(http.StatusOK, gin.H{"message": "Paiement déjà traité"})
		return
	}

	// Capture avant HandleSuccess : le succès vide le panier
	crt := orch.Cart()
	items := crt.Items()
	amount := crt.TotalPrice()
	email := orch.Email()
	receipt := orch.Receipt()

	if !orch.HandleSuccess(req.RazorpayOrderID) {
		c.JSON(http.StatusOK, gin.H{"message": "Paiement déjà traité"})
		return
	}

	order := models.Order{
		ID:              gocql.TimeUUID(),
		Receipt:         receipt,
		RazorpayOrderID: req.RazorpayOrderID,
		PaymentID:       req.RazorpayPaymentID,
		Email:           email,
		Items:           items,
		AmountTotal:     amount,
		Currency:        "INR",
		Status:          models.OrderStatusPaid,
		CreatedAt:       time.Now(),
	}

	persistOrder(order)

	// 🧹 Supprime le panier Redis APRÈS la confirmation
	sid := c.GetString(middleware.SessionIDKey)
	carthandlers.Delete(c.Request.Context(), sid)

	log.Printf("✅ Paiement vérifié : %s (%d paise) pour %s", req.RazorpayPaymentID, amount, email)

	// 📦 Livraison numérique en arrière-plan : liens signés + facture + email
	go deliverOrder(order)

	c.JSON(http.StatusOK, gin.H{
		"message":  "Paiement vérifié",
		"order_id": order.ID.String(),
		"receipt":  order.Receipt,
	})
}

// PaymentFailed — POST /api/razorpay/failed
// Enregistre l'échec remonté par le widget et réarme le checkout : le panier
// n'est pas touché, l'utilisateur peut réessayer.
func PaymentFailed(c *gin.Context) {
	var req struct {
		RazorpayOrderID string `json:"razorpay_order_id" binding:"required"`
		Message         string `json:"message"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Requête invalide"})
		return
	}

	orch, ok := Checkouts.ByToken(req.RazorpayOrderID)
	if !ok {
		c.JSON(http.StatusOK, gin.H{"message": "Transaction inconnue, rien à faire"})
		return
	}

	if !orch.HandleFailure(req.RazorpayOrderID, req.Message) {
		c.JSON(http.StatusOK, gin.H{"message": "Transaction déjà soldée"})
		return
	}

	log.Printf("❌ Paiement échoué pour %s : %s", req.RazorpayOrderID, orch.LastError())
	c.JSON(http.StatusOK, gin.H{"message": orch.LastError()})
}

// persistOrder enregistre la commande dans le keyspace orders.
func persistOrder(order models.Order) {
	session, err := database.GetOrdersSession()
	if err != nil {
		log.Printf("❌ Erreur connexion orders: %v", err)
		return
	}

	itemsJSON, _ := json.Marshal(order.Items)

	err = session.Query(`INSERT INTO orders (order_id, receipt, razorpay_order_id, payment_id, email, items, amount_total, currency, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID, order.Receipt, order.RazorpayOrderID, order.PaymentID, order.Email,
		string(itemsJSON), order.AmountTotal, order.Currency, order.Status, order.CreatedAt).Exec()
	if err != nil {
		log.Printf("❌ Erreur insertion commande: %v", err)
		return
	}
	log.Printf("📦 Commande enregistrée : %s", order.ID)
}

// deliverOrder génère les liens de téléchargement signés (24h), la facture
// PDF, et envoie l'email de confirmation. Les échecs sont loggés, jamais
// fatals : la commande est déjà enregistrée.
func deliverOrder(order models.Order) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	var links []utils.DownloadLink
	for _, item := range order.Items {
		p, err := product.Store.GetByID(ctx, item.ProductID)
		if err != nil || p.DownloadKey == "" {
			log.Printf("⚠️ Pas de clé de téléchargement pour le produit %d", item.ProductID)
			continue
		}
		signedURL, err := services.GenerateSignedURL(ctx, p.DownloadKey, services.DownloadURLTTL)
		if err != nil {
			log.Printf("⚠️ Erreur URL signée pour %s: %v", p.DownloadKey, err)
			continue
		}
		links = append(links, utils.DownloadLink{Name: p.Name, URL: signedURL})
	}

	html := utils.GenerateOrderConfirmationHTML(order, links)

	pdf, err := utils.GenerateInvoicePDF(order)
	if err != nil {
		log.Printf("❌ Erreur génération PDF : %v", err)
		pdf = nil
	}

	if err := utils.SendOrderEmail(order.Email, "Confirmation de votre commande Vroom Visions", html, pdf); err != nil {
		log.Printf("❌ Erreur envoi e-mail confirmation : %v", err)
	} else {
		log.Println("📧 E-mail de confirmation envoyé à", order.Email)
	}
}
