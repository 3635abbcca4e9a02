package notify

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/trendora/storefront/config"
	"github.com/trendora/storefront/internal/domain"
)

// Mailer sends order confirmation mail. Disabled unless configured; send
// failures are logged and never propagate to the payment flow.
type Mailer struct {
	cfg    config.MailConfig
	dialer *gomail.Dialer
}

func NewMailer(cfg config.MailConfig) *Mailer {
	m := &Mailer{cfg: cfg}
	if cfg.Enabled {
		m.dialer = gomail.NewDialer(cfg.SmtpHost, cfg.SmtpPort, cfg.Username, cfg.Password)
	}
	return m
}

// OrderPaid mails a payment confirmation to the shopper.
func (m *Mailer) OrderPaid(ctx context.Context, email string, order *domain.Order) error {
	if m.dialer == nil || email == "" {
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.cfg.From)
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", fmt.Sprintf("Payment received for order %d", order.ID))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your payment of %.2f for order %d was received.\nStatus: %s\n",
		order.Amount, order.ID, order.Status))

	if err := m.dialer.DialAndSend(msg); err != nil {
		zap.L().Warn("failed to send order confirmation",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
		return err
	}
	return nil
}
