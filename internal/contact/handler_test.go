package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	to, body string
	err      error
}

func (r *recordingNotifier) SendSMS(_ context.Context, to, body string) error {
	r.to, r.body = to, body
	return r.err
}

func TestFormatMessage(t *testing.T) {
	msg := FormatMessage(Request{Name: "Ana", Phone: "0722000000", Service: "Saltea", Message: "Mâine?"})
	assert.Equal(t, "Bună ziua! Nume: Ana, Telefon: 0722000000, Serviciu: Saltea, Mesaj: Mâine?", msg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		want error
	}{
		{"ok", Request{Name: "Ana", Phone: "0722"}, nil},
		{"with topic", Request{Name: "Ana", Phone: "0722", Service: "Pachet Combo"}, nil},
		{"no name", Request{Phone: "0722"}, ErrInvalidName},
		{"no phone", Request{Name: "Ana"}, ErrMissingPhone},
		{"bad topic", Request{Name: "Ana", Phone: "0722", Service: "Geamuri"}, ErrUnknownTopic},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
		})
	}
}

func TestSubmit_Success(t *testing.T) {
	notifier := &recordingNotifier{}
	h := NewHandler(Config{WhatsAppNumber: "+40123456789", OwnerPhone: "+40700000000"}, notifier, nil, nil)

	body, _ := json.Marshal(Request{Name: "  Ana ", Phone: "0722000000", Service: "Saltea", Message: "Salut"})
	req := httptest.NewRequest(http.MethodPost, "/contact", bytes.NewReader(body))
	w := httptest.NewRecorder()
	h.Submit(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "Bună ziua! Nume: Ana, Telefon: 0722000000, Serviciu: Saltea, Mesaj: Salut", resp.Message)
	assert.True(t, resp.OwnerNotified)
	assert.Equal(t, "+40700000000", notifier.to)

	require.True(t, strings.HasPrefix(resp.URL, "https://wa.me/40123456789?text="))
	u, err := url.Parse(resp.URL)
	require.NoError(t, err)
	assert.Equal(t, resp.Message, u.Query().Get("text"))
}

func TestSubmit_NotifierFailureStillReturnsLink(t *testing.T) {
	notifier := &recordingNotifier{err: errors.New("twilio down")}
	h := NewHandler(Config{WhatsAppNumber: "40123456789", OwnerPhone: "+40700000000"}, notifier, nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(`{"name":"Ana","phone":"0722"}`))
	w := httptest.NewRecorder()
	h.Submit(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.False(t, resp.OwnerNotified)
	assert.NotEmpty(t, resp.URL)
}

func TestSubmit_InvalidRequests(t *testing.T) {
	h := NewHandler(Config{WhatsAppNumber: "40123456789"}, nil, nil, nil)

	for _, body := range []string{`not json`, `{"name":"","phone":"0722"}`, `{"name":"Ana"}`} {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
		w := httptest.NewRecorder()
		h.Submit(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code, body)
		assert.Contains(t, w.Body.String(), `"error"`)
	}
}

func TestTopics(t *testing.T) {
	h := NewHandler(Config{}, nil, nil, nil)
	w := httptest.NewRecorder()
	h.Topics(w, httptest.NewRequest(http.MethodGet, "/contact/topics", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string][]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Len(t, resp["topics"], 6)
}
