// Package main drives the public booking API end to end against a running
// server.
//
// Usage:
//
//	API_BASE_URL=... ADMIN_JWT_SECRET=... go run ./scripts/e2e               # runs all
//	API_BASE_URL=... ADMIN_JWT_SECRET=... go run ./scripts/e2e happy-path    # runs one
//
// ADMIN_JWT_SECRET is optional; without it the admin scenario is skipped.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	httpmiddleware "github.com/streetlab/cleaners-booking/internal/http/middleware"
)

var (
	apiBase    string
	adminToken string
	client     = &http.Client{Timeout: 15 * time.Second}
)

type scenario struct {
	Name string
	Fn   func(t *T)
}

// T is a lightweight test context for a single scenario.
type T struct {
	passed int
	failed int
	name   string
}

func (t *T) check(name string, ok bool) {
	if ok {
		fmt.Printf("    PASS: %s\n", name)
		t.passed++
	} else {
		fmt.Printf("    FAIL: %s\n", name)
		t.failed++
	}
}

func (t *T) fatalf(format string, args ...interface{}) {
	fmt.Printf("    FATAL: "+format+"\n", args...)
	t.failed++
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func call(method, path string, body interface{}) (int, map[string]interface{}, error) {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(raw)
	}
	req, err := http.NewRequest(method, apiBase+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if strings.HasPrefix(path, "/admin/") && adminToken != "" {
		req.Header.Set("Authorization", "Bearer "+adminToken)
	}
	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil && err != io.EOF {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, out, nil
}

func openSession(t *T) string {
	status, body, err := call(http.MethodPost, "/booking/sessions", nil)
	if err != nil || status != http.StatusCreated {
		t.fatalf("open session: status=%d err=%v", status, err)
		return ""
	}
	id, _ := body["id"].(string)
	return id
}

// futureDate returns an ISO date two weeks out.
func futureDate() string {
	return time.Now().AddDate(0, 0, 14).Format("2006-01-02")
}

// firstFreeSlot picks the first available start from the slot grid.
func firstFreeSlot(id string) (string, error) {
	status, body, err := call(http.MethodGet, "/booking/sessions/"+id+"/slots", nil)
	if err != nil {
		return "", err
	}
	if status != http.StatusOK {
		return "", fmt.Errorf("slots returned %d", status)
	}
	raw, _ := body["slots"].([]interface{})
	for _, s := range raw {
		slot, ok := s.(map[string]interface{})
		if !ok {
			continue
		}
		if free, _ := slot["available"].(bool); free {
			start, _ := slot["start"].(string)
			return start, nil
		}
	}
	return "", fmt.Errorf("no free slot on %v", body["date"])
}

func stepOf(body map[string]interface{}) string {
	s, _ := body["step"].(string)
	return s
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func scenarioHappyPath(t *T) {
	id := openSession(t)
	if id == "" {
		return
	}
	p := "/booking/sessions/" + id

	_, _, _ = call(http.MethodPost, p+"/services/canapea-2L", nil)
	status, body, _ := call(http.MethodPost, p+"/services/calorifere", nil)
	t.check("two services selected", status == http.StatusOK)
	t.check("estimated cost is 240", body["estimated_cost"] == float64(240))
	t.check("duration label is 1h 15min", body["duration_label"] == "1h 15min")

	status, _, _ = call(http.MethodPost, p+"/next", nil)
	t.check("advance to date step", status == http.StatusOK)

	status, _, _ = call(http.MethodPut, p+"/date", map[string]string{"date": futureDate()})
	t.check("future date accepted", status == http.StatusOK)
	status, _, _ = call(http.MethodPost, p+"/next", nil)
	t.check("advance to time step", status == http.StatusOK)

	slot, err := firstFreeSlot(id)
	if err != nil {
		t.fatalf("%v", err)
		return
	}
	status, _, _ = call(http.MethodPut, p+"/time", map[string]string{"time": slot})
	t.check("free slot accepted", status == http.StatusOK)

	status, body, _ = call(http.MethodPost, p+"/next", nil)
	t.check("advance to confirm step", status == http.StatusOK && stepOf(body) == "confirming")

	_, _, _ = call(http.MethodPut, p+"/location", map[string]string{"location": "Micro 11, Bl. 3"})
	status, body, _ = call(http.MethodPost, p+"/confirm", nil)
	t.check("confirm returns 200", status == http.StatusOK)

	handoff, _ := body["handoff"].(map[string]interface{})
	link, _ := handoff["url"].(string)
	msg, _ := handoff["message"].(string)
	t.check("deep link targets wa.me", strings.HasPrefix(link, "https://wa.me/"))
	t.check("summary lists services", strings.Contains(msg, "Canapea 2 locuri, Calorifere"))
	t.check("summary carries location", strings.Contains(msg, "Locație: Micro 11, Bl. 3"))

	status, _, _ = call(http.MethodGet, p, nil)
	t.check("confirmed session is gone", status == http.StatusNotFound)
}

func scenarioGuards(t *T) {
	id := openSession(t)
	if id == "" {
		return
	}
	p := "/booking/sessions/" + id

	status, body, _ := call(http.MethodPost, p+"/next", nil)
	t.check("empty selection blocks next", status == http.StatusConflict)
	msg, _ := body["error"].(string)
	t.check("guard names the missing service", strings.Contains(msg, "service"))

	status, _, _ = call(http.MethodPost, p+"/services/does-not-exist", nil)
	t.check("unknown service rejected", status == http.StatusBadRequest)

	_, _, _ = call(http.MethodPost, p+"/services/baie", nil)
	_, _, _ = call(http.MethodPost, p+"/next", nil)

	status, _, _ = call(http.MethodPost, p+"/next", nil)
	t.check("missing date blocks next", status == http.StatusConflict)

	status, _, _ = call(http.MethodPut, p+"/date", map[string]string{"date": "2020-01-01"})
	t.check("past date rejected", status == http.StatusConflict)

	status, _, _ = call(http.MethodPut, p+"/date", map[string]string{"date": "01.02.2030"})
	t.check("malformed date rejected", status == http.StatusBadRequest)
}

func scenarioBackPreserves(t *T) {
	id := openSession(t)
	if id == "" {
		return
	}
	p := "/booking/sessions/" + id

	_, _, _ = call(http.MethodPost, p+"/services/saltea-single", nil)
	_, _, _ = call(http.MethodPost, p+"/next", nil)
	_, _, _ = call(http.MethodPut, p+"/date", map[string]string{"date": futureDate()})

	status, body, _ := call(http.MethodPost, p+"/back", nil)
	t.check("back to services", status == http.StatusOK && stepOf(body) == "selecting_services")

	status, body, _ = call(http.MethodPost, p+"/next", nil)
	draft, _ := body["draft"].(map[string]interface{})
	t.check("date survives back and forward", status == http.StatusOK && draft["date"] == futureDate())
}

func scenarioCancel(t *T) {
	id := openSession(t)
	if id == "" {
		return
	}
	p := "/booking/sessions/" + id
	_, _, _ = call(http.MethodPost, p+"/services/auto-interior", nil)

	status, body, _ := call(http.MethodDelete, p, nil)
	t.check("cancel closes the session", status == http.StatusOK && stepOf(body) == "closed")

	status, _, _ = call(http.MethodGet, p, nil)
	t.check("cancelled draft is discarded", status == http.StatusNotFound)
}

func scenarioContact(t *T) {
	status, body, _ := call(http.MethodPost, "/contact", map[string]string{
		"name":    "E2E Test",
		"phone":   "0722 000 000",
		"service": "",
		"message": "Test e2e",
	})
	t.check("contact accepted", status == http.StatusOK)
	link, _ := body["url"].(string)
	t.check("contact deep link targets wa.me", strings.HasPrefix(link, "https://wa.me/"))

	status, _, _ = call(http.MethodPost, "/contact", map[string]string{"name": "", "phone": ""})
	t.check("blank contact rejected", status == http.StatusBadRequest)
}

func scenarioTestimonialStream(t *T) {
	u, err := url.Parse(apiBase)
	if err != nil {
		t.fatalf("parse base url: %v", err)
		return
	}
	u.Scheme = strings.Replace(u.Scheme, "http", "ws", 1)
	u.Path = "/content/testimonials/stream"

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		t.fatalf("dial stream: %v", err)
		return
	}
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(10 * time.Second))

	var frame map[string]interface{}
	t.check("initial frame received", conn.ReadJSON(&frame) == nil)
	t.check("initial frame is first testimonial", frame["index"] == float64(0))

	t.check("next command sent", conn.WriteJSON(map[string]string{"action": "next"}) == nil)
	t.check("next frame received", conn.ReadJSON(&frame) == nil && frame["index"] == float64(1))
}

func scenarioAdminAvailability(t *T) {
	if adminToken == "" {
		fmt.Println("    SKIP: ADMIN_JWT_SECRET not set")
		return
	}
	from := time.Now().Format("2006-01-02")
	to := time.Now().AddDate(0, 0, 30).Format("2006-01-02")
	status, body, err := call(http.MethodGet, "/admin/availability?from="+from+"&to="+to, nil)
	if err != nil {
		t.fatalf("%v", err)
		return
	}
	t.check("admin listing returns 200", status == http.StatusOK)
	_, ok := body["days"]
	t.check("admin listing has days", ok)
}

// ---------------------------------------------------------------------------
// Main
// ---------------------------------------------------------------------------

func main() {
	apiBase = strings.TrimRight(os.Getenv("API_BASE_URL"), "/")
	if apiBase == "" {
		fmt.Fprintln(os.Stderr, "ERROR: API_BASE_URL required")
		os.Exit(1)
	}
	if secret := os.Getenv("ADMIN_JWT_SECRET"); secret != "" {
		token, err := httpmiddleware.SignAdminToken(secret, "e2e", httpmiddleware.AdminRole, time.Now().Add(time.Hour))
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: sign admin token: %v\n", err)
			os.Exit(1)
		}
		adminToken = token
	}

	scenarios := []scenario{
		{"happy-path", scenarioHappyPath},
		{"guards", scenarioGuards},
		{"back-preserves", scenarioBackPreserves},
		{"cancel", scenarioCancel},
		{"contact", scenarioContact},
		{"testimonial-stream", scenarioTestimonialStream},
		{"admin-availability", scenarioAdminAvailability},
	}

	filter := ""
	if len(os.Args) > 1 {
		filter = os.Args[1]
	}

	totalPassed := 0
	totalFailed := 0
	scenarioResults := make([]string, 0)

	for _, s := range scenarios {
		if filter != "" && s.Name != filter {
			continue
		}

		fmt.Printf("\n========================================\n")
		fmt.Printf("SCENARIO: %s\n", s.Name)
		fmt.Printf("========================================\n")

		t := &T{name: s.Name}
		s.Fn(t)

		totalPassed += t.passed
		totalFailed += t.failed

		status := "ok"
		if t.failed > 0 {
			status = "FAILED"
		}
		scenarioResults = append(scenarioResults, fmt.Sprintf("  %-6s %s (%d passed, %d failed)", status, s.Name, t.passed, t.failed))
	}

	fmt.Printf("\n========================================\n")
	fmt.Println("SUMMARY")
	fmt.Printf("========================================\n")
	for _, r := range scenarioResults {
		fmt.Println(r)
	}
	fmt.Printf("\nTotal: %d passed, %d failed\n", totalPassed, totalFailed)

	if totalFailed > 0 {
		fmt.Println("\nSOME SCENARIOS FAILED")
		os.Exit(1)
	}
	fmt.Println("\nALL SCENARIOS PASSED")
}
