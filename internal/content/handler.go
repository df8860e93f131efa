package content

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/streetlab/cleaners-booking/pkg/logging"
)

const writeWait = 10 * time.Second

// Handler serves the page sections as JSON and the testimonial stream.
type Handler struct {
	page     Page
	rotation time.Duration
	upgrader websocket.Upgrader
	logger   *logging.Logger
}

// NewHandler builds the handler. checkOrigin may be nil to accept any origin.
func NewHandler(page Page, rotation time.Duration, checkOrigin func(*http.Request) bool, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		page:     page,
		rotation: rotation,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// Routes returns the router mounted under /content.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.serve(func() any { return h.page }))
	r.Get("/services", h.serve(func() any { return h.page.Services }))
	r.Get("/pricing", h.serve(func() any {
		return map[string]any{"sections": h.page.PriceList, "combos": h.page.Combos}
	}))
	r.Get("/zones", h.serve(func() any { return h.page.Zones }))
	r.Get("/testimonials", h.serve(func() any { return h.page.Testimonials }))
	r.Get("/testimonials/stream", h.StreamTestimonials)
	r.Get("/faq", h.serve(func() any { return h.page.FAQ }))
	r.Get("/stats", h.Stats)
	r.Get("/steps", h.serve(func() any { return h.page.Steps }))
	return r
}

func (h *Handler) serve(fn func() any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, fn())
	}
}

type statView struct {
	Stat
	Value int    `json:"value"`
	Text  string `json:"text"`
}

// Stats handles GET /content/stats?elapsed_ms=N. Without elapsed_ms the
// counters are reported at their final values.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	elapsed := time.Duration(1<<62 - 1)
	if raw := r.URL.Query().Get("elapsed_ms"); raw != "" {
		ms, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || ms < 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "elapsed_ms must be a non-negative integer"})
			return
		}
		elapsed = time.Duration(ms) * time.Millisecond
	}

	out := make([]statView, 0, len(h.page.Stats))
	for _, s := range h.page.Stats {
		out = append(out, statView{
			Stat:  s,
			Value: s.Counter.ValueAt(elapsed),
			Text:  s.Counter.Label(elapsed),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// StreamFrame is pushed to the client after every carousel move.
type StreamFrame struct {
	Index       int         `json:"index"`
	Paused      bool        `json:"paused"`
	Testimonial Testimonial `json:"testimonial"`
}

// StreamCommand is sent by the client: pause, resume, next or prev.
type StreamCommand struct {
	Action string `json:"action"`
}

// StreamTestimonials handles GET /content/testimonials/stream. Each
// connection owns its rotator, so pausing affects only that visitor.
func (h *Handler) StreamTestimonials(w http.ResponseWriter, r *http.Request) {
	if len(h.page.Testimonials) == 0 {
		http.Error(w, `{"error": "no testimonials"}`, http.StatusNotFound)
		return
	}
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("content: websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	rot := NewRotator(len(h.page.Testimonials), h.rotation)
	go rot.Run(ctx)
	go h.readCommands(conn, rot, cancel)

	if err := h.writeFrame(conn, rot, rot.Current()); err != nil {
		return
	}
	for {
		select {
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		case i := <-rot.Updates():
			if err := h.writeFrame(conn, rot, i); err != nil {
				h.logger.Debug("content: stream write failed", "error", err)
				return
			}
		}
	}
}

func (h *Handler) writeFrame(conn *websocket.Conn, rot *Rotator, i int) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(StreamFrame{
		Index:       i,
		Paused:      rot.Paused(),
		Testimonial: h.page.Testimonials[i],
	})
}

func (h *Handler) readCommands(conn *websocket.Conn, rot *Rotator, cancel context.CancelFunc) {
	defer cancel()
	for {
		var cmd StreamCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		switch cmd.Action {
		case "pause":
			rot.Pause()
		case "resume":
			rot.Resume()
		case "next":
			rot.Next()
		case "prev":
			rot.Prev()
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
