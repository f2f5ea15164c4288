package utils

import (
	"bytes"
	"fmt"
	"log"
	"os"

	"vroomvisions_backend/internal/models"

	"github.com/wneessen/go-mail"
)

// DownloadLink relie un pack acheté à son URL signée MinIO.
type DownloadLink struct {
	Name string
	URL  string
}

func smtpClient() (*mail.Client, error) {
	return mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
}

func senderAddress() string {
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@vroomvisions.store"
	}
	return from
}

// SendOrderEmail envoie la confirmation de commande avec les liens de
// téléchargement et la facture PDF en pièce jointe.
func SendOrderEmail(to, subject, htmlBody string, pdfAttachment []byte) error {
	msg := mail.NewMsg()

	if err := msg.From(senderAddress()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextHTML, htmlBody)

	if pdfAttachment != nil {
		msg.AttachReader("facture_vroomvisions.pdf", bytes.NewReader(pdfAttachment))
	}

	client, err := smtpClient()
	if err != nil {
		return err
	}

	log.Println("📤 Envoi de l'e-mail à", to)
	return client.DialAndSend(msg)
}

// SendWelcomeEmail envoie l'email de bienvenue newsletter.
func SendWelcomeEmail(to string) error {
	msg := mail.NewMsg()

	if err := msg.From(senderAddress()); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Bienvenue chez Vroom Visions")
	msg.SetBodyString(mail.TypeTextHTML, `
<!DOCTYPE html>
<html lang="fr">
<body style="font-family: Arial, sans-serif; background-color: #0d0b14; color: #eee; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: #1a1525; padding: 20px; border-radius: 10px;">
		<h2 style="color: #a259ff;">Bienvenue !</h2>
		<p>Merci de vous être inscrit à la newsletter Vroom Visions.</p>
		<p>Vous recevrez en avant-première nos nouveaux packs de LUTs et les offres réservées aux abonnés.</p>
		<p style="margin-top: 30px; color: #999;">
			L'équipe Vroom Visions
		</p>
	</div>
</body>
</html>`)

	client, err := smtpClient()
	if err != nil {
		return err
	}
	return client.DialAndSend(msg)
}

// GenerateOrderConfirmationHTML génère le HTML de confirmation de commande,
// liens de téléchargement (valables 24h) inclus.
func GenerateOrderConfirmationHTML(order models.Order, links []DownloadLink) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>₹%.2f</td>
				<td>₹%.2f</td>
			</tr>`, item.Name, item.Quantity,
			float64(item.Price)/100, float64(item.Price*int64(item.Quantity))/100)
	}

	linksHTML := ""
	for _, link := range links {
		linksHTML += fmt.Sprintf(`<li><a href="%s" style="color: #a259ff;">%s</a></li>`, link.URL, link.Name)
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head>
	<meta charset="UTF-8">
	<meta name="viewport" content="width=device-width, initial-scale=1.0">
	<title>Confirmation de commande</title>
</head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande %s</h2>
		<p>Bonjour,</p>
		<p>Votre paiement a été confirmé. Vos packs de LUTs sont prêts.</p>

		<h3>Vos téléchargements (liens valables 24h)</h3>
		<ul>
			%s
		</ul>

		<h3>Détails de la commande</h3>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Pack</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Quantité</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left; border: 1px solid #ddd;">Total</th>
				</tr>
			</thead>
			<tbody>
				%s
			</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">₹%.2f</td>
				</tr>
			</tfoot>
		</table>

		<p style="margin-top: 30px; color: #555;">
			Cordialement,<br>
			<strong>L'équipe Vroom Visions</strong>
		</p>
	</div>
</body>
</html>`, order.Receipt, linksHTML, itemsHTML, float64(order.AmountTotal)/100)
}
