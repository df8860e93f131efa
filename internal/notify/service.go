package notify

import (
	"context"
	"errors"
	"strings"

	"github.com/streetlab/cleaners-booking/pkg/logging"
)

// ErrChannelDisabled is returned when a channel has no sender configured.
var ErrChannelDisabled = errors.New("notify: channel not configured")

// Service fans owner notifications out to the configured channels. It
// satisfies booking.NotificationSender.
type Service struct {
	email  EmailSender
	sms    SMSSender
	logger *logging.Logger
}

// NewService accepts nil for either channel.
func NewService(email EmailSender, sms SMSSender, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{
		email:  email,
		sms:    sms,
		logger: logger,
	}
}

// SendSMS delivers a text message to the owner.
func (s *Service) SendSMS(ctx context.Context, to, body string) error {
	if s.sms == nil {
		s.logger.Debug("notify: sms channel disabled", "to", to)
		return ErrChannelDisabled
	}
	return s.sms.SendSMS(ctx, to, body)
}

// SendEmail delivers an HTML e-mail to the owner with a plain-text fallback.
func (s *Service) SendEmail(ctx context.Context, to, subject, htmlBody string) error {
	if s.email == nil {
		s.logger.Debug("notify: email channel disabled", "to", to)
		return ErrChannelDisabled
	}
	return s.email.Send(ctx, EmailMessage{
		To:       to,
		Subject:  subject,
		Body:     stripTags(htmlBody),
		HTML:     htmlBody,
		Category: CategoryBooking,
	})
}

// stripTags drops markup for the plain-text part. It is only applied to
// bodies this service renders itself.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
			b.WriteByte(' ')
		case !inTag:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
