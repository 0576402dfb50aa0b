package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"

	"obraexpress-store/models"
	"obraexpress-store/utils"

	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// MailService sends the payment receipt through the Gmail API using
// a Service Account.
type MailService struct {
	client *gmail.Service
	from   string
}

// NewMailService creates a MailService instance.
// credentialsPath should be the path to the Service Account JSON file.
func NewMailService(credentialsPath, from string) (*MailService, error) {
	ctx := context.Background()

	gmailService, err := gmail.NewService(ctx,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(gmail.GmailSendScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create gmail service: %w", err)
	}

	return &MailService{
		client: gmailService,
		from:   from,
	}, nil
}

// Ensure MailService implements MailServiceInterface
var _ MailServiceInterface = (*MailService)(nil)

// SendReceipt sends the order confirmation email with the voucher PDF
// attached.
func (ms *MailService) SendReceipt(ctx context.Context, to string, invoice models.InvoiceData, pdf []byte) error {
	raw, err := buildReceiptMessage(ms.from, to, invoice, pdf)
	if err != nil {
		return err
	}

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(raw),
	}

	if _, err := ms.client.Users.Messages.Send("me", msg).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to send receipt email: %w", err)
	}

	log.Printf("✅ SendReceipt: Receipt for order %s sent to %s", invoice.OrderNumber, to)
	return nil
}

// buildReceiptMessage assembles the RFC 2822 multipart payload: an
// HTML body plus the PDF attachment.
func buildReceiptMessage(from, to string, invoice models.InvoiceData, pdf []byte) ([]byte, error) {
	boundary := "obraexpress-receipt"

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: =?UTF-8?B?%s?=\r\n",
		base64.StdEncoding.EncodeToString([]byte(fmt.Sprintf("Comprobante de pago %s - ObraExpress", invoice.OrderNumber))))
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%q\r\n\r\n", boundary)

	// HTML body
	fmt.Fprintf(&buf, "--%s\r\n", boundary)
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	buf.WriteString(receiptHTML(invoice))
	buf.WriteString("\r\n")

	// PDF attachment
	if len(pdf) > 0 {
		fmt.Fprintf(&buf, "--%s\r\n", boundary)
		buf.WriteString("Content-Type: application/pdf\r\n")
		fmt.Fprintf(&buf, "Content-Disposition: attachment; filename=%q\r\n", "comprobante-"+invoice.OrderNumber+".pdf")
		buf.WriteString("Content-Transfer-Encoding: base64\r\n\r\n")

		encoded := base64.StdEncoding.EncodeToString(pdf)
		// Wrap at 76 chars per RFC 2045.
		for len(encoded) > 76 {
			buf.WriteString(encoded[:76])
			buf.WriteString("\r\n")
			encoded = encoded[76:]
		}
		buf.WriteString(encoded)
		buf.WriteString("\r\n")
	}

	fmt.Fprintf(&buf, "--%s--\r\n", boundary)
	return buf.Bytes(), nil
}

// receiptHTML renders the confirmation email body.
func receiptHTML(invoice models.InvoiceData) string {
	var items bytes.Buffer
	for _, item := range invoice.Items {
		fmt.Fprintf(&items, "<li><strong>%s</strong> × %d — %s</li>",
			item.Nombre, item.Cantidad, utils.FormatCLP(item.Total))
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="es">
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; color: #333;">
  <div style="background: #1e40af; color: white; padding: 30px; text-align: center;">
    <h1>¡Tu pedido ha sido confirmado!</h1>
    <h2>ObraExpress</h2>
  </div>
  <div style="padding: 30px; border: 1px solid #e5e7eb;">
    <p>Hola <strong>%s</strong>,</p>
    <p>Te confirmamos que hemos recibido tu pago y tu pedido está siendo procesado.</p>
    <div style="background: #f8fafc; padding: 20px; border-radius: 8px;">
      <p><strong>Número de orden:</strong> %s</p>
      <p><strong>Total pagado:</strong> %s</p>
      <p><strong>Código de autorización:</strong> %s</p>
    </div>
    <h3>Productos adquiridos:</h3>
    <ul>%s</ul>
    <p>Adjuntamos el comprobante de pago en PDF.</p>
  </div>
  <div style="background: #1e293b; color: white; padding: 20px; text-align: center; font-size: 14px;">
    ObraExpress — Materiales de construcción en policarbonato
  </div>
</body>
</html>`,
		invoice.Customer.Nombre,
		invoice.OrderNumber,
		utils.FormatCLP(invoice.Total),
		invoice.Payment.AuthorizationCode,
		items.String(),
	)
}

// LogMailService is the development fallback when no Gmail
// credentials are configured: it logs instead of sending.
type LogMailService struct{}

var _ MailServiceInterface = (*LogMailService)(nil)

// SendReceipt logs the simulated delivery.
func (LogMailService) SendReceipt(_ context.Context, to string, invoice models.InvoiceData, pdf []byte) error {
	log.Printf("🧪 SendReceipt: Simulated email to %s for order %s (%d byte PDF)", to, invoice.OrderNumber, len(pdf))
	return nil
}
