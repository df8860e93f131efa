package booking

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/streetlab/cleaners-booking/internal/availability"
	"github.com/streetlab/cleaners-booking/internal/catalog"
)

// mockNotificationSender records all SMS and email calls.
type mockNotificationSender struct {
	smsCalls   []smsCall
	emailCalls []emailCall
	smsErr     error
	emailErr   error
}

type smsCall struct {
	To, Body string
}

type emailCall struct {
	To, Subject, HTMLBody string
}

func (m *mockNotificationSender) SendSMS(_ context.Context, to, body string) error {
	m.smsCalls = append(m.smsCalls, smsCall{To: to, Body: body})
	return m.smsErr
}

func (m *mockNotificationSender) SendEmail(_ context.Context, to, subject, htmlBody string) error {
	m.emailCalls = append(m.emailCalls, emailCall{To: to, Subject: subject, HTMLBody: htmlBody})
	return m.emailErr
}

func sampleRequest(t *testing.T) Request {
	t.Helper()
	cat := catalog.Default()
	services, err := cat.Resolve([]string{"canapea-2L", "calorifere"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	date, err := availability.ParseDate("2025-11-25")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return Request{
		SessionID:       "sess-1",
		Services:        services,
		Date:            date,
		Time:            "16:00",
		DurationMinutes: 75,
		EstimatedCost:   240,
		Location:        "Micro 3",
		RequestedAt:     time.Date(2025, 11, 20, 10, 0, 0, 0, time.UTC),
	}
}

func TestFormatSummary(t *testing.T) {
	got := FormatSummary(sampleRequest(t))
	want := "Programare Nouă:\n" +
		"Servicii: Canapea 2 locuri, Calorifere (4 buc)\n" +
		"Data: 25.11.2025\n" +
		"Ora: 16:00\n" +
		"Durata: 1h 15min\n" +
		"Cost estimat: ~240 lei\n" +
		"Locație: Micro 3"
	if got != want {
		t.Errorf("unexpected summary:\n%s\nwant:\n%s", got, want)
	}
}

func TestFormatSummaryHTMLEscapes(t *testing.T) {
	req := sampleRequest(t)
	req.Location = `<script>alert("x")</script>`
	body := FormatSummaryHTML(req)
	if strings.Contains(body, "<script>") {
		t.Error("expected location to be escaped")
	}
	if !strings.Contains(body, "Canapea 2 locuri (45min, 140-170 lei)") {
		t.Errorf("expected service line, got %s", body)
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("+40 123 456 789", "Ora: 16:00\nLocație: Micro 3")
	if !strings.HasPrefix(link, "https://wa.me/40123456789?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Errorf("spaces must be encoded as %%20, got %s", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := u.Query().Get("text"); got != "Ora: 16:00\nLocație: Micro 3" {
		t.Errorf("text did not round trip: %q", got)
	}
}

func TestWhatsAppAdapter_Name(t *testing.T) {
	adapter := NewWhatsAppAdapter(nil, WhatsAppConfig{}, nil)
	if adapter.Name() != "whatsapp" {
		t.Errorf("expected name 'whatsapp', got %q", adapter.Name())
	}
}

func TestWhatsAppAdapter_HandoffWithoutNumber(t *testing.T) {
	adapter := NewWhatsAppAdapter(nil, WhatsAppConfig{}, nil)
	_, err := adapter.Handoff(context.Background(), sampleRequest(t))
	if !errors.Is(err, ErrNoNumber) {
		t.Fatalf("expected ErrNoNumber, got %v", err)
	}
}

func TestWhatsAppAdapter_HandoffSMSAndEmail(t *testing.T) {
	sender := &mockNotificationSender{}
	adapter := NewWhatsAppAdapter(sender, WhatsAppConfig{
		Number:     "+40123456789",
		OwnerPhone: "+40700000000",
		OwnerEmail: "owner@streetlab.ro",
	}, nil)

	req := sampleRequest(t)
	result, err := adapter.Handoff(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Message != FormatSummary(req) {
		t.Errorf("message mismatch: %q", result.Message)
	}
	if !strings.HasPrefix(result.URL, "https://wa.me/40123456789?text=Programare%20Nou") {
		t.Errorf("unexpected url: %s", result.URL)
	}
	if !result.OwnerNotified {
		t.Error("expected owner to be notified")
	}

	if len(sender.smsCalls) != 1 || sender.smsCalls[0].To != "+40700000000" {
		t.Fatalf("expected one SMS to owner, got %+v", sender.smsCalls)
	}
	if len(sender.emailCalls) != 1 {
		t.Fatalf("expected 1 email call, got %d", len(sender.emailCalls))
	}
	if !strings.Contains(sender.emailCalls[0].Subject, "25.11.2025 16:00") {
		t.Errorf("unexpected subject %q", sender.emailCalls[0].Subject)
	}
}

func TestWhatsAppAdapter_NotificationFailureKeepsLink(t *testing.T) {
	sender := &mockNotificationSender{smsErr: errors.New("twilio down"), emailErr: errors.New("ses down")}
	adapter := NewWhatsAppAdapter(sender, WhatsAppConfig{
		Number:     "40123456789",
		OwnerPhone: "+40700000000",
		OwnerEmail: "owner@streetlab.ro",
	}, nil)

	result, err := adapter.Handoff(context.Background(), sampleRequest(t))
	if err == nil {
		t.Fatal("expected notification error")
	}
	if !strings.Contains(err.Error(), "sms: twilio down") || !strings.Contains(err.Error(), "email: ses down") {
		t.Errorf("expected both channel errors, got %v", err)
	}
	if result == nil || result.URL == "" {
		t.Fatal("expected link despite notification failure")
	}
	if result.OwnerNotified {
		t.Error("owner should not be marked notified")
	}
}

func TestWhatsAppAdapter_NoChannelsConfigured(t *testing.T) {
	sender := &mockNotificationSender{}
	adapter := NewWhatsAppAdapter(sender, WhatsAppConfig{Number: "40123456789"}, nil)

	result, err := adapter.Handoff(context.Background(), sampleRequest(t))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sender.smsCalls)+len(sender.emailCalls) != 0 {
		t.Error("no notifications expected")
	}
	if result.OwnerNotified {
		t.Error("owner should not be marked notified")
	}
}
