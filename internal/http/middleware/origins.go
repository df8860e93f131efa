package middleware

import (
	"net/http"
	"strings"
)

// Origins is a parsed CORS allowlist. "*" admits any origin.
type Origins struct {
	any   bool
	allow map[string]struct{}
}

func ParseOrigins(list []string) Origins {
	o := Origins{allow: map[string]struct{}{}}
	for _, origin := range list {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		switch origin {
		case "":
		case "*":
			o.any = true
		default:
			o.allow[origin] = struct{}{}
		}
	}
	return o
}

// Allowed reports whether origin may call the API.
func (o Origins) Allowed(origin string) bool {
	if origin == "" {
		return false
	}
	if o.any {
		return true
	}
	_, ok := o.allow[origin]
	return ok
}

// CheckOrigin adapts the allowlist for websocket upgrades. Requests without
// an Origin header come from non-browser clients and are admitted.
func (o Origins) CheckOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	return origin == "" || o.Allowed(origin)
}
