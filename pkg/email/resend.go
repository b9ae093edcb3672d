package email

import (
	"context"
	"fmt"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

type ResendSender struct {
	client   *resend.Client
	from     string
	fromName string
	logger   *zap.Logger
}

func NewResendSender(apiKey, from, fromName string, logger *zap.Logger) *ResendSender {
	return &ResendSender{
		client:   resend.NewClient(apiKey),
		from:     from,
		fromName: fromName,
		logger:   logger,
	}
}

func (s *ResendSender) Send(_ context.Context, msg Message) error {
	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{msg.To},
		Subject: msg.Subject,
		Html:    msg.HTML,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("resend send failed", zap.String("to", msg.To), zap.Error(err))
		return fmt.Errorf("resend: %w", err)
	}

	s.logger.Info("email sent", zap.String("to", msg.To), zap.String("id", resp.Id))
	return nil
}
