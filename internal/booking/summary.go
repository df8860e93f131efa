package booking

import (
	"fmt"
	"html"
	"net/url"
	"strings"

	"github.com/streetlab/cleaners-booking/internal/catalog"
)

// FormatSummary renders the plain-text message sent to the owner.
func FormatSummary(req Request) string {
	var b strings.Builder

	b.WriteString("Programare Nouă:\n")
	b.WriteString(fmt.Sprintf("Servicii: %s\n", strings.Join(req.ServiceNames(), ", ")))
	b.WriteString(fmt.Sprintf("Data: %s\n", req.Date.Display()))
	b.WriteString(fmt.Sprintf("Ora: %s\n", req.Time))
	b.WriteString(fmt.Sprintf("Durata: %s\n", catalog.FormatDuration(req.DurationMinutes)))
	b.WriteString(fmt.Sprintf("Cost estimat: ~%d lei\n", req.EstimatedCost))
	b.WriteString(fmt.Sprintf("Locație: %s", req.Location))

	return b.String()
}

// FormatSummaryHTML renders the same summary as an e-mail body.
func FormatSummaryHTML(req Request) string {
	var rows strings.Builder
	for _, svc := range req.Services {
		rows.WriteString(fmt.Sprintf(`<li>%s (%s, %s lei)</li>`,
			html.EscapeString(svc.Name),
			catalog.FormatDuration(svc.DurationMinutes),
			svc.Price.String(),
		))
	}

	return fmt.Sprintf(`<div style="font-family:sans-serif;max-width:600px;">
<h2 style="color:#333;">Programare Nouă</h2>
<ul>%s</ul>
<table style="border-collapse:collapse;width:100%%;">
<tr><td style="padding:6px 12px;font-weight:bold;">Data</td><td style="padding:6px 12px;">%s</td></tr>
<tr><td style="padding:6px 12px;font-weight:bold;">Ora</td><td style="padding:6px 12px;">%s</td></tr>
<tr><td style="padding:6px 12px;font-weight:bold;">Durata</td><td style="padding:6px 12px;">%s</td></tr>
<tr><td style="padding:6px 12px;font-weight:bold;">Cost estimat</td><td style="padding:6px 12px;">~%d lei</td></tr>
<tr><td style="padding:6px 12px;font-weight:bold;">Locație</td><td style="padding:6px 12px;">%s</td></tr>
</table>
</div>`,
		rows.String(),
		req.Date.Display(),
		html.EscapeString(req.Time),
		catalog.FormatDuration(req.DurationMinutes),
		req.EstimatedCost,
		html.EscapeString(req.Location),
	)
}

// WhatsAppLink builds a wa.me deep link with text pre-filled. Non-digits are
// stripped from number, so "+40 123 456 789" works.
func WhatsAppLink(number, text string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, number)
	// QueryEscape encodes spaces as "+"; the app expects %20.
	encoded := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return fmt.Sprintf("https://wa.me/%s?text=%s", digits, encoded)
}
