package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

func TestNewSendGridSender_NilWithoutAPIKey(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "",
		FromEmail: "test@example.com",
	}, nil)

	if sender != nil {
		t.Error("expected nil sender when API key is empty")
	}
}

func TestNewSendGridSender_DefaultFromName(t *testing.T) {
	sender := NewSendGridSender(SendGridConfig{
		APIKey:    "test-key",
		FromEmail: "rezervari@streetlab.ro",
	}, nil)

	if sender == nil {
		t.Fatal("expected non-nil sender")
	}
	if sender.from.name != "StreetLab Cleaners" {
		t.Errorf("expected default from name, got %q", sender.from.name)
	}
}

func TestSendGridSender_Send_NilClient(t *testing.T) {
	sender := &SendGridSender{}

	err := sender.Send(context.Background(), EmailMessage{
		To:      "owner@streetlab.ro",
		Subject: "Test",
		Body:    "Test body",
	})
	if err == nil {
		t.Error("expected error when client is nil")
	}
}

type fakeSendGrid struct {
	mail   *mail.SGMailV3
	status int
	err    error
}

func (f *fakeSendGrid) Send(m *mail.SGMailV3) (*rest.Response, error) {
	f.mail = m
	if f.err != nil {
		return nil, f.err
	}
	return &rest.Response{StatusCode: f.status, Body: "rejected"}, nil
}

func TestSendGridSender_Send(t *testing.T) {
	api := &fakeSendGrid{status: 202}
	sender := newSendGridSender(api, SendGridConfig{FromEmail: "rezervari@streetlab.ro"}, nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:       "owner@streetlab.ro",
		Subject:  "Programare nouă",
		HTML:     "<p>Servicii: Baie</p>",
		Category: CategoryBooking,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if api.mail.From.Address != "rezervari@streetlab.ro" || api.mail.From.Name != "StreetLab Cleaners" {
		t.Errorf("unexpected from %+v", api.mail.From)
	}
	if len(api.mail.Personalizations) != 1 || api.mail.Personalizations[0].To[0].Address != "owner@streetlab.ro" {
		t.Errorf("unexpected personalizations %+v", api.mail.Personalizations)
	}
	if len(api.mail.Content) != 2 || api.mail.Content[0].Type != "text/plain" || api.mail.Content[0].Value != "Servicii: Baie" {
		t.Errorf("expected plain-text part derived from HTML, got %+v", api.mail.Content)
	}
	if len(api.mail.Categories) != 1 || api.mail.Categories[0] != CategoryBooking {
		t.Errorf("unexpected categories %v", api.mail.Categories)
	}
}

func TestSendGridSender_SendRejected(t *testing.T) {
	sender := newSendGridSender(&fakeSendGrid{status: 401}, SendGridConfig{FromEmail: "a@b.ro"}, nil)
	err := sender.Send(context.Background(), EmailMessage{To: "owner@streetlab.ro", Subject: "x", Body: "y"})
	if err == nil {
		t.Fatal("expected error for 4xx status")
	}
}

func TestStubEmailSender_Send(t *testing.T) {
	sender := NewStubEmailSender(nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "owner@streetlab.ro",
		Subject: "Programare nouă",
		Body:    "Test body",
	})
	if err != nil {
		t.Errorf("stub sender should not return error, got: %v", err)
	}
	if len(sender.Sent()) != 1 || sender.Sent()[0].Subject != "Programare nouă" {
		t.Errorf("expected message to be recorded, got %+v", sender.Sent())
	}
}

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender_Send(t *testing.T) {
	api := &fakeSES{}
	sender := newSESSender(api, SESConfig{FromEmail: "rezervari@streetlab.ro"}, nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "owner@streetlab.ro",
		Subject: "Programare nouă",
		Body:    "text",
		HTML:    "<p>text</p>",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := aws.ToString(api.input.FromEmailAddress); got != "StreetLab Cleaners <rezervari@streetlab.ro>" {
		t.Errorf("unexpected from %q", got)
	}
	if api.input.Destination.ToAddresses[0] != "owner@streetlab.ro" {
		t.Errorf("unexpected destination %+v", api.input.Destination)
	}
	body := api.input.Content.Simple.Body
	if aws.ToString(body.Text.Data) != "text" || aws.ToString(body.Html.Data) != "<p>text</p>" {
		t.Errorf("unexpected body %+v", body)
	}
	if len(api.input.EmailTags) != 0 {
		t.Errorf("expected no tags without a category, got %+v", api.input.EmailTags)
	}
}

func TestSESSender_SendTagsCategory(t *testing.T) {
	api := &fakeSES{}
	sender := newSESSender(api, SESConfig{FromEmail: "rezervari@streetlab.ro"}, nil)

	err := sender.Send(context.Background(), EmailMessage{
		To:       "owner@streetlab.ro",
		Subject:  "Programare nouă",
		HTML:     "<b>Ora:</b> 09:00",
		Category: CategoryBooking,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := aws.ToString(api.input.Content.Simple.Body.Text.Data); got != "Ora: 09:00" {
		t.Errorf("unexpected text fallback %q", got)
	}
	tags := api.input.EmailTags
	if len(tags) != 1 || aws.ToString(tags[0].Name) != "category" || aws.ToString(tags[0].Value) != CategoryBooking {
		t.Errorf("unexpected tags %+v", tags)
	}
}

func TestSESSender_SendError(t *testing.T) {
	sender := newSESSender(&fakeSES{err: errors.New("throttled")}, SESConfig{FromEmail: "a@b.ro"}, nil)
	err := sender.Send(context.Background(), EmailMessage{To: "owner@streetlab.ro", Subject: "x", Body: "y"})
	if err == nil {
		t.Fatal("expected error")
	}
}

func TestNewSESSender_NilClient(t *testing.T) {
	if NewSESSender(nil, SESConfig{}, nil) != nil {
		t.Error("expected nil sender for nil client")
	}
}
