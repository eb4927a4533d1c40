package email

import (
	"errors"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/cloudesk-io/cloudesk/internal/shared/config"
	"github.com/cloudesk-io/cloudesk/internal/shared/logger"
)

// ErrEmailNotConfigured is returned when sending is attempted without
// a configured SMTP host.
var ErrEmailNotConfigured = errors.New("email service not configured")

// Notifier sends post-provisioning notifications. Sends are best effort
// and happen after the provisioning transaction commits; a failed send
// never rolls anything back.
type Notifier interface {
	// SendOrderConfirmedEmail notifies the requester that the order is
	// confirmed and its services are active
	SendOrderConfirmedEmail(to, orderSID, monthlyPrice, totalAmount, currency string) error

	// SendOrderRejectedEmail notifies the requester of a rejection
	SendOrderRejectedEmail(to, orderSID string) error

	// SendServicePendingEmail notifies the requester that a
	// self-service-added entitlement awaits admin validation
	SendServicePendingEmail(to, serviceName string) error
}

// SMTPNotifier implements Notifier over SMTP via gomail
type SMTPNotifier struct {
	cfg    *config.EmailConfig
	dialer *gomail.Dialer
	logger logger.Interface
}

// NewSMTPNotifier creates a new SMTP notifier
func NewSMTPNotifier(cfg *config.EmailConfig, logger logger.Interface) *SMTPNotifier {
	return &SMTPNotifier{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		logger: logger,
	}
}

func (s *SMTPNotifier) SendOrderConfirmedEmail(to, orderSID, monthlyPrice, totalAmount, currency string) error {
	subject := fmt.Sprintf("Order %s confirmed", orderSID)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Your order is confirmed</h2>
			<p>Order <strong>%s</strong> has been confirmed and your services are now active.</p>
			<p>Monthly price: %s %s</p>
			<p>Total commitment: %s %s</p>
		</body>
		</html>
	`, orderSID, monthlyPrice, currency, totalAmount, currency)

	plainBody := fmt.Sprintf(`Your order is confirmed

Order %s has been confirmed and your services are now active.

Monthly price: %s %s
Total commitment: %s %s
`, orderSID, monthlyPrice, currency, totalAmount, currency)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendOrderRejectedEmail(to, orderSID string) error {
	subject := fmt.Sprintf("Order %s rejected", orderSID)
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Order rejected</h2>
			<p>Order <strong>%s</strong> has been rejected. No services were provisioned and nothing will be billed.</p>
			<p>Contact your account manager if you believe this is an error.</p>
		</body>
		</html>
	`, orderSID)

	plainBody := fmt.Sprintf(`Order rejected

Order %s has been rejected. No services were provisioned and nothing will be billed.

Contact your account manager if you believe this is an error.
`, orderSID)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) SendServicePendingEmail(to, serviceName string) error {
	subject := "Service awaiting validation"
	htmlBody := fmt.Sprintf(`
		<html>
		<body>
			<h2>Service awaiting validation</h2>
			<p>Your request for <strong>%s</strong> has been recorded and is awaiting administrator validation.</p>
			<p>You will be notified once it is activated.</p>
		</body>
		</html>
	`, serviceName)

	plainBody := fmt.Sprintf(`Service awaiting validation

Your request for %s has been recorded and is awaiting administrator validation.

You will be notified once it is activated.
`, serviceName)

	return s.sendEmail(to, subject, htmlBody, plainBody)
}

func (s *SMTPNotifier) sendEmail(to, subject, htmlBody, plainBody string) error {
	if s.cfg.Host == "" {
		return ErrEmailNotConfigured
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", plainBody)
	m.AddAlternative("text/html", htmlBody)

	if err := s.dialer.DialAndSend(m); err != nil {
		s.logger.Errorw("failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infow("email sent", "to", to, "subject", subject)
	return nil
}

// NoopNotifier is used when email is disabled
type NoopNotifier struct{}

// NewNoopNotifier creates a notifier that silently drops every send
func NewNoopNotifier() *NoopNotifier {
	return &NoopNotifier{}
}

func (n *NoopNotifier) SendOrderConfirmedEmail(to, orderSID, monthlyPrice, totalAmount, currency string) error {
	return nil
}

func (n *NoopNotifier) SendOrderRejectedEmail(to, orderSID string) error {
	return nil
}

func (n *NoopNotifier) SendServicePendingEmail(to, serviceName string) error {
	return nil
}
