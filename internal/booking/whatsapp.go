package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/streetlab/cleaners-booking/pkg/logging"
)

// ErrNoNumber is returned when the adapter has no destination number.
var ErrNoNumber = errors.New("booking: whatsapp number not configured")

// NotificationSender abstracts the channels used to tell the owner about a
// new request alongside the deep link.
type NotificationSender interface {
	SendSMS(ctx context.Context, to, body string) error
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

// WhatsAppConfig holds the business number and optional owner contacts.
type WhatsAppConfig struct {
	Number     string
	OwnerPhone string
	OwnerEmail string
}

// WhatsAppAdapter hands a request off through a wa.me link. The visitor's
// browser opens the link; the adapter never sends the WhatsApp message itself.
type WhatsAppAdapter struct {
	sender NotificationSender
	config WhatsAppConfig
	logger *logging.Logger
}

// NewWhatsAppAdapter creates the adapter. sender may be nil.
func NewWhatsAppAdapter(sender NotificationSender, cfg WhatsAppConfig, logger *logging.Logger) *WhatsAppAdapter {
	if logger == nil {
		logger = logging.Default()
	}
	return &WhatsAppAdapter{
		sender: sender,
		config: cfg,
		logger: logger,
	}
}

// Name returns "whatsapp".
func (a *WhatsAppAdapter) Name() string { return "whatsapp" }

// Handoff builds the message and deep link, then notifies the owner through
// whichever channels are configured. Notification failures are reported in
// the returned error but never withhold the link.
func (a *WhatsAppAdapter) Handoff(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(a.config.Number) == "" {
		return nil, ErrNoNumber
	}

	message := FormatSummary(req)
	result := &Result{
		Message: message,
		URL:     WhatsAppLink(a.config.Number, message),
	}

	if a.sender == nil {
		return result, nil
	}

	var errs []string

	if a.config.OwnerPhone != "" {
		if err := a.sender.SendSMS(ctx, a.config.OwnerPhone, message); err != nil {
			a.logger.Error("whatsapp handoff: failed to send SMS notification",
				"error", err,
				"session_id", req.SessionID,
				"to", a.config.OwnerPhone,
			)
			errs = append(errs, fmt.Sprintf("sms: %v", err))
		} else {
			result.OwnerNotified = true
		}
	}

	if a.config.OwnerEmail != "" {
		subject := fmt.Sprintf("Programare nouă %s %s (%s)", req.Date.Display(), req.Time, req.Location)
		if err := a.sender.SendEmail(ctx, a.config.OwnerEmail, subject, FormatSummaryHTML(req)); err != nil {
			a.logger.Error("whatsapp handoff: failed to send email notification",
				"error", err,
				"session_id", req.SessionID,
				"to", a.config.OwnerEmail,
			)
			errs = append(errs, fmt.Sprintf("email: %v", err))
		} else {
			result.OwnerNotified = true
		}
	}

	if len(errs) > 0 {
		return result, fmt.Errorf("booking: owner notification errors: %s", strings.Join(errs, "; "))
	}
	return result, nil
}

var _ Adapter = (*WhatsAppAdapter)(nil)
