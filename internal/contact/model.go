// Package contact handles the site's contact form: it validates the
// submission, renders the greeting message and returns a WhatsApp link.
package contact

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidName is returned when the name is missing.
	ErrInvalidName = errors.New("contact: name is required")

	// ErrMissingPhone is returned when the phone number is missing.
	ErrMissingPhone = errors.New("contact: phone is required")

	// ErrUnknownTopic is returned for a service outside the form's options.
	ErrUnknownTopic = errors.New("contact: unknown service option")
)

// Topics are the service options offered by the form's select box.
var Topics = []string{
	"Canapea/Fotoliu",
	"Saltea",
	"Interior Auto",
	"Curățare cu Abur",
	"Pachet Combo",
	"Altele",
}

// Request is one contact form submission.
type Request struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Normalize trims every field.
func (r *Request) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Phone = strings.TrimSpace(r.Phone)
	r.Service = strings.TrimSpace(r.Service)
	r.Message = strings.TrimSpace(r.Message)
}

// Validate checks required fields. Service may be empty.
func (r *Request) Validate() error {
	if r.Name == "" {
		return ErrInvalidName
	}
	if r.Phone == "" {
		return ErrMissingPhone
	}
	if r.Service != "" && !isTopic(r.Service) {
		return fmt.Errorf("%w: %s", ErrUnknownTopic, r.Service)
	}
	return nil
}

func isTopic(s string) bool {
	for _, t := range Topics {
		if t == s {
			return true
		}
	}
	return false
}

// FormatMessage renders the single-line greeting sent to the owner.
func FormatMessage(r Request) string {
	return fmt.Sprintf("Bună ziua! Nume: %s, Telefon: %s, Serviciu: %s, Mesaj: %s",
		r.Name, r.Phone, r.Service, r.Message)
}
