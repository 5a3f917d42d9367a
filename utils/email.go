// utils/email.go
package utils

import (
	"fmt"
	"os"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"tcm-webshop/models"
)

// EmailService handles sending emails using SendGrid. A nil EmailService
// disables mail, so the server runs without an API key.
type EmailService struct {
	client *sendgrid.Client
	sender string
}

// NewEmailService initializes an EmailService from the environment. Returns
// nil when SENDGRID_API_KEY is not set.
func NewEmailService() *EmailService {
	apiKey := os.Getenv("SENDGRID_API_KEY")
	if apiKey == "" {
		return nil
	}
	return &EmailService{
		client: sendgrid.NewSendClient(apiKey),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic email to the specified recipient
func (es *EmailService) SendEmail(toEmail, subject, content string) error {
	if es == nil {
		return nil
	}
	from := mail.NewEmail("TCM Webshop", es.sender)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, content, content)
	resp, err := es.client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("failed to send email: status %d", resp.StatusCode)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation email to the user
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := "Bestellbestätigung - TCM Webshop"
	content := fmt.Sprintf(
		"Vielen Dank für Ihre Bestellung!\n\nBestellnummer: %s\nGesamtbetrag: %s\n\nIhr TCM Webshop",
		order.ID,
		FormatPrice(order.TotalCents),
	)
	return es.SendEmail(toEmail, subject, content)
}
