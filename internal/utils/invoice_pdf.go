package utils

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/skip2/go-qrcode"

	"vroomvisions_backend/internal/models"
)

// GenerateUpiQR génère un QR de paiement UPI en base64 prêt à mettre dans
// <img src="...">. amount en unités mineures.
func GenerateUpiQR(vpa, payeeName, reference string, amount int64) (string, error) {
	q := url.Values{}
	q.Set("pa", vpa)
	q.Set("pn", payeeName)
	q.Set("am", fmt.Sprintf("%.2f", float64(amount)/100))
	q.Set("cu", "INR")
	q.Set("tn", reference)

	png, err := qrcode.Encode("upi://pay?"+q.Encode(), qrcode.Medium, 256)
	if err != nil {
		return "", err
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png), nil
}

// GenerateInvoicePDF imprime la facture HTML en PDF via Chrome headless.
// Le PDF part en pièce jointe de l'email de confirmation.
func GenerateInvoicePDF(order models.Order) ([]byte, error) {
	qr := ""
	if vpa := os.Getenv("COMPANY_UPI_VPA"); vpa != "" {
		payee := os.Getenv("COMPANY_NAME")
		if payee == "" {
			payee = "Vroom Visions"
		}
		var err error
		qr, err = GenerateUpiQR(vpa, payee, order.Receipt, order.AmountTotal)
		if err != nil {
			qr = "" // facture sans QR plutôt que pas de facture
		}
	}

	html := invoiceHTML(order, qr)

	ctx, cancel := chromedp.NewContext(context.Background())
	defer cancel()

	ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	var pdfBuf []byte

	err := chromedp.Run(ctx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.WaitVisible("body", chromedp.ByQuery),
		chromedp.ActionFunc(func(ctx context.Context) error {
			buf, _, err := page.PrintToPDF().WithPrintBackground(true).Do(ctx)
			if err != nil {
				return err
			}
			pdfBuf = buf
			return nil
		}),
	)
	if err != nil {
		return nil, err
	}

	return pdfBuf, nil
}

func invoiceHTML(order models.Order, qrBase64 string) string {
	rows := ""
	for _, item := range order.Items {
		rows += fmt.Sprintf(`<tr><td>%s</td><td>%d</td><td>₹%.2f</td></tr>`,
			item.Name, item.Quantity, float64(item.Price*int64(item.Quantity))/100)
	}

	qrBlock := ""
	if qrBase64 != "" {
		qrBlock = fmt.Sprintf(`<div style="margin-top:20px"><img src="%s" width="128" height="128" alt="UPI"></div>`, qrBase64)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Facture %s</title></head>
<body style="font-family: Arial, sans-serif; padding: 40px;">
	<h1>Vroom Visions</h1>
	<p>Facture %s — %s</p>
	<table style="width:100%%; border-collapse: collapse;" border="1" cellpadding="8">
		<thead><tr><th>Pack</th><th>Qté</th><th>Total</th></tr></thead>
		<tbody>%s</tbody>
		<tfoot><tr><td colspan="2"><strong>Total payé</strong></td><td><strong>₹%.2f</strong></td></tr></tfoot>
	</table>
	%s
</body>
</html>`, order.Receipt, order.Receipt, order.CreatedAt.Format("02/01/2006"), rows, float64(order.AmountTotal)/100, qrBlock)
}
