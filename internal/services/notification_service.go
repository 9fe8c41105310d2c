// internal/services/notification_service.go
package services

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/sirupsen/logrus"

	"github.com/javajoker/florist-backend/internal/config"
	"github.com/javajoker/florist-backend/internal/models"
	"github.com/javajoker/florist-backend/internal/utils"
)

type NotificationService struct {
	config *config.Config
	send   func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

type EmailTemplate struct {
	Subject string
	Body    string
}

func NewNotificationService(config *config.Config) *NotificationService {
	return &NotificationService{
		config: config,
		send:   smtp.SendMail,
	}
}

// SendOrderConfirmation mails the order summary to the customer.
func (s *NotificationService) SendOrderConfirmation(order models.OrderRecord) error {
	tmpl := s.getEmailTemplate("order_confirmation")

	items := make([]map[string]interface{}, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, map[string]interface{}{
			"Name":      item.Name,
			"Quantity":  item.Quantity,
			"LineTotal": utils.FormatPrice(item.Price * int64(item.Quantity)),
		})
	}

	shippingName := order.ShippingMethod
	if m, ok := FindShippingMethod(order.ShippingMethod); ok {
		shippingName = m.Name
	}
	paymentName := order.PaymentMethod
	if m, ok := FindPaymentMethod(order.PaymentMethod); ok {
		paymentName = m.Name
	}

	data := map[string]interface{}{
		"CustomerName":    order.Customer.Name,
		"OrderID":         order.ID,
		"OrderDate":       utils.FormatDate(order.OrderDate),
		"Items":           items,
		"Subtotal":        utils.FormatPrice(order.Subtotal),
		"ShippingMethod":  shippingName,
		"ShippingCost":    utils.FormatPrice(order.ShippingCost),
		"PaymentMethod":   paymentName,
		"Total":           utils.FormatPrice(order.Total),
		"Address":         order.Customer.Address,
		"City":            order.Customer.City,
		"PostalCode":      order.Customer.PostalCode,
		"ConfirmationURL": s.config.Frontend.BaseURL + OrderConfirmationPath(order.ID),
		"ShopName":        s.config.Email.FromName,
	}

	body, err := s.renderTemplate(tmpl.Body, data)
	if err != nil {
		return fmt.Errorf("failed to render email template: %w", err)
	}

	return s.sendEmail(order.Customer.Email, fmt.Sprintf("%s %s", tmpl.Subject, order.ID), body)
}

// Helper methods
func (s *NotificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.SMTPHost == "" {
		// Email not configured, just log
		logrus.WithFields(logrus.Fields{
			"to":      to,
			"subject": subject,
		}).Info("Email not configured, skipping send")
		return nil
	}

	auth := smtp.PlainAuth("", s.config.Email.SMTPUsername, s.config.Email.SMTPPassword, s.config.Email.SMTPHost)

	from := s.config.Email.FromEmail
	if s.config.Email.FromName != "" {
		from = fmt.Sprintf("%s <%s>", s.config.Email.FromName, s.config.Email.FromEmail)
	}
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", from, to, subject, body))

	addr := fmt.Sprintf("%s:%s", s.config.Email.SMTPHost, s.config.Email.SMTPPort)
	return s.send(addr, auth, s.config.Email.FromEmail, []string{to}, msg)
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
		"order_confirmation": {
			Subject: "Order Confirmation",
			Body: `
<!DOCTYPE html>
<html>
<body>
	<h2>Thank you for your order, {{.CustomerName}}!</h2>
	<p>Order <strong>{{.OrderID}}</strong> was placed on {{.OrderDate}}.</p>
	<table>
		{{range .Items}}
		<tr><td>{{.Name}}</td><td>x{{.Quantity}}</td><td>{{.LineTotal}}</td></tr>
		{{end}}
	</table>
	<p>Subtotal: {{.Subtotal}}<br>
	{{.ShippingMethod}}: {{.ShippingCost}}<br>
	<strong>Total: {{.Total}}</strong></p>
	<p>Payment: {{.PaymentMethod}}</p>
	<p>Delivery to:<br>{{.Address}}<br>{{.City}} {{.PostalCode}}</p>
	<a href="{{.ConfirmationURL}}">View your order</a>
	<p>Warm regards,<br>{{.ShopName}}</p>
</body>
</html>`,
		},
	}

	return templates[templateType]
}
