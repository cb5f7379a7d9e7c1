// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/zipstore/zip-storefront/internal/config"
	"github.com/zipstore/zip-storefront/internal/models"
	"github.com/zipstore/zip-storefront/internal/utils"
)

// NotificationService sends transactional email. Without SMTP configured it
// logs the message instead of sending, so local development never needs a
// mail server.
type NotificationService struct {
	config *config.Config
	log    logrus.FieldLogger
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config, log logrus.FieldLogger) *NotificationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &NotificationService{config: config, log: log}
}

// SendContactAlert notifies the shop inbox about a new contact inquiry.
func (s *NotificationService) SendContactAlert(inquiry *models.ContactInquiry) error {
	tmpl := s.getEmailTemplate("contact_alert")

	data := map[string]interface{}{
		"Name":    inquiry.Name,
		"Email":   inquiry.Email,
		"Phone":   inquiry.Phone,
		"Message": inquiry.Message,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(s.config.Email.ContactEmail, tmpl.Subject, body)
}

// SendOrderConfirmation emails the customer once their payment is
// confirmed. Callers without a customer email skip it.
func (s *NotificationService) SendOrderConfirmation(email, orderNumber string, amount int64) error {
	if email == "" {
		return nil
	}

	tmpl := s.getEmailTemplate("order_confirmation")

	data := map[string]interface{}{
		"OrderNumber": orderNumber,
		"Amount":      utils.FormatPrice(amount),
		"OrdersURL":   fmt.Sprintf("%s/orders", s.config.Frontend.BaseURL),
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(email, fmt.Sprintf("%s #%s", tmpl.Subject, orderNumber), body)
}

func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" || to == "" {
		s.log.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email not configured, skipping send")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	msg := []byte(fmt.Sprintf("To: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
}

func (s *NotificationService) renderTemplate(templateStr string, data interface{}) (string, error) {
	tmpl, err := template.New("email").Parse(templateStr)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return buf.String(), nil
}

func (s *NotificationService) getEmailTemplate(templateType string) EmailTemplate {
	templates := map[string]EmailTemplate{
		"contact_alert": {
			Subject: "New contact inquiry",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>New contact inquiry</h2>
	<p><strong>Name:</strong> {{.Name}}</p>
	<p><strong>Email:</strong> {{.Email}}</p>
	<p><strong>Phone:</strong> {{.Phone}}</p>
	<p><strong>Message:</strong></p>
	<p>{{.Message}}</p>
</body>
</html>`,
		},
		"order_confirmation": {
			Subject: "Order confirmed",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order!</h2>
	<p>Your order <strong>{{.OrderNumber}}</strong> has been paid.</p>
	<p>Total: <strong>{{.Amount}}</strong></p>
	<a href="{{.OrdersURL}}">Track your order</a>
</body>
</html>`,
		},
	}

	if tmpl, exists := templates[templateType]; exists {
		return tmpl
	}

	return EmailTemplate{
		Subject: "Notification",
		Body:    "<p>{{.Message}}</p>",
	}
}
