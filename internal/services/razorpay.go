package services

import (
	"context"
	"fmt"
	"log"
	"os"

	razorpay "github.com/razorpay/razorpay-go"
	rputils "github.com/razorpay/razorpay-go/utils"

	"vroomvisions_backend/internal/checkout"
)

// RazorpayGateway implémente checkout.Gateway au-dessus du SDK officiel.
// La commande est consommée côté client par le widget de paiement hébergé ;
// la confirmation revient par POST /api/razorpay/verify.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(keyID, keySecret)}
}

func (g *RazorpayGateway) CreateOrder(_ context.Context, req checkout.OrderRequest) (*checkout.GatewayOrder, error) {
	data := map[string]interface{}{
		"amount":   req.Amount, // unités mineures (paise)
		"currency": req.Currency,
		"receipt":  req.Receipt,
		"notes": map[string]interface{}{
			"email":  req.Email,
			"method": req.Method,
		},
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		log.Printf("❌ Erreur création commande Razorpay: %v", err)
		return nil, err
	}

	id, _ := body["id"].(string)
	if id == "" {
		return nil, fmt.Errorf("réponse Razorpay sans identifiant de commande")
	}

	amount := req.Amount
	if a, ok := body["amount"].(float64); ok {
		amount = int64(a)
	}
	currency := req.Currency
	if c, ok := body["currency"].(string); ok && c != "" {
		currency = c
	}

	log.Printf("💳 Commande Razorpay créée : %s (%d %s) pour %s", id, amount, currency, req.Email)

	return &checkout.GatewayOrder{ID: id, Amount: amount, Currency: currency}, nil
}

// VerifyPaymentSignature vérifie la signature HMAC renvoyée par le widget.
func VerifyPaymentSignature(orderID, paymentID, signature string) bool {
	secret := os.Getenv("RAZORPAY_KEY_SECRET")
	if secret == "" {
		log.Println("⚠️ RAZORPAY_KEY_SECRET manquant, vérification impossible")
		return false
	}
	params := map[string]interface{}{
		"razorpay_order_id":   orderID,
		"razorpay_payment_id": paymentID,
	}
	return rputils.VerifyPaymentSignature(params, signature, secret)
}
