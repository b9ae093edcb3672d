package email

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"go.uber.org/zap"
)

type SMTPSender struct {
	client   *mail.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewSMTPSender(host string, port int, username, password, from, fromName string, logger *zap.Logger) (*SMTPSender, error) {
	c, err := mail.NewClient(
		host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(username),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("could not initialize smtp client: %w", err)
	}
	return &SMTPSender{client: c, from: from, fromName: fromName, logger: logger}, nil
}

func (s *SMTPSender) Send(ctx context.Context, msg Message) error {
	m := mail.NewMsg()
	if err := m.FromFormat(s.fromName, s.from); err != nil {
		return fmt.Errorf("set from address: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return fmt.Errorf("set to address: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		s.logger.Error("smtp send failed", zap.String("to", msg.To), zap.Error(err))
		return fmt.Errorf("smtp: %w", err)
	}

	s.logger.Info("email sent", zap.String("to", msg.To))
	return nil
}
