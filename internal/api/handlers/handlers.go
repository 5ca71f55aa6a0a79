package handlers

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"

	"github.com/sergeysynergy/accessreview/internal/accessreview"
)

const (
	ContentTypeApplicationJSON = "application/json"
	ContentTypeOctetStream     = "application/octet-stream"

	defaultHeartbeatInterval = time.Second
)

type handler struct {
	r  chi.Router
	ar accessreview.UseCases

	heartbeatInterval time.Duration
	corsOrigins       []string
}

type Option func(*handler)

// WithHeartbeatInterval sets the pause between two heartbeat bytes.
func WithHeartbeatInterval(d time.Duration) Option {
	return func(h *handler) {
		if d > 0 {
			h.heartbeatInterval = d
		}
	}
}

// WithCORSOrigins sets the origins browsers may call the API from.
func WithCORSOrigins(origins ...string) Option {
	return func(h *handler) {
		h.corsOrigins = origins
	}
}

func New(ar accessreview.UseCases, opts ...Option) *handler {
	h := &handler{
		r:                 chi.NewRouter(),
		ar:                ar,
		heartbeatInterval: defaultHeartbeatInterval,
		corsOrigins:       []string{"*"},
	}
	for _, opt := range opts {
		opt(h)
	}

	h.r.Use(middleware.Compress(3, "gzip"))
	h.r.Use(middleware.RequestID)
	h.r.Use(middleware.RealIP)
	h.r.Use(middleware.Logger)
	h.r.Use(middleware.Recoverer)
	h.r.Use(cors.New(cors.Options{
		AllowedOrigins: h.corsOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding"},
	}).Handler)

	h.setRoutes()

	return h
}

func (h *handler) GetRouter() chi.Router {
	return h.r
}

func (h *handler) logger(r *http.Request) *log.Entry {
	return log.WithFields(log.Fields{
		"request_id": middleware.GetReqID(r.Context()),
		"request":    fmt.Sprintf("%s %s", r.Method, r.URL),
	})
}

// decodeJSON reads the request body into v. A Content-Type other than JSON
// is rejected, a missing one is accepted.
func (h *handler) decodeJSON(r *http.Request, v interface{}) error {
	if ct := r.Header.Get("Content-Type"); ct != "" {
		mt, _, err := mime.ParseMediaType(ct)
		if err != nil || mt != ContentTypeApplicationJSON {
			return fmt.Errorf("wrong content type, %s needed", ContentTypeApplicationJSON)
		}
	}
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to unmarshal body - %w", err)
	}

	return nil
}

func (h *handler) writeJSON(w http.ResponseWriter, r *http.Request, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		h.error(w, r, fmt.Errorf("failed to marshal JSON - %w", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentTypeApplicationJSON)
	w.Write(body)
}
