package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"hawkmon/console-go/internal/db"
	"hawkmon/console-go/internal/entitysource"
	"hawkmon/console-go/internal/layout"
	"hawkmon/console-go/internal/metrics"
	"hawkmon/console-go/internal/sqlcgen"
)

// mapStore is the slice of sqlcgen the map endpoints need.
type mapStore interface {
	GetMapDefinition(ctx context.Context, id string) (sqlcgen.MapDefinition, error)
	ListMapDefinitions(ctx context.Context) ([]sqlcgen.MapDefinition, error)
	CreateMapDefinition(ctx context.Context, arg sqlcgen.CreateMapDefinitionParams) (sqlcgen.MapDefinition, error)
}

type Handler struct {
	log     zerolog.Logger
	pool    *db.Pool
	maps    mapStore
	source  entitysource.Source
	engine  layout.Engine
	metrics *metrics.Metrics
}

// NewHandler wires the console endpoints. source may be nil when a pool
// is present; the Postgres-backed source is derived from it.
func NewHandler(log zerolog.Logger, pool *db.Pool, m *metrics.Metrics, source entitysource.Source, engine layout.Engine) *Handler {
	var maps mapStore
	if q := pool.Queries(); q != nil {
		maps = q
		if source == nil {
			source = entitysource.NewPGSource(q)
		}
	}
	return &Handler{
		log:     log,
		pool:    pool,
		maps:    maps,
		source:  source,
		engine:  engine,
		metrics: m,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(h.accessLog)

	// Health
	r.Get("/healthz", h.handleHealthz)
	r.Get("/readyz", h.handleReadyZ)
	r.Method(http.MethodGet, "/metrics", h.metrics.Handler())

	// API
	r.Route("/api", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Route("/maps", func(r chi.Router) {
				r.Get("/", h.handleListMaps)
				r.Post("/", h.handleCreateMap)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", h.handleGetMap)
					r.Post("/regenerate", h.handleRegenerateMap)
					r.Get("/nodes", h.handleGetMapNodes)
					r.Get("/html", h.handleGetMapHTML)
				})
			})
		})
	})

	return r
}

func (h *Handler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		elapsed := time.Since(start)
		h.log.Info().
			Str("request_id", middleware.GetReqID(r.Context())).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Int64("duration_ms", elapsed.Milliseconds()).
			Msg("http_request")

		if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
			h.metrics.ObserveHTTPRequest(r.Method, pattern, ww.Status(), elapsed)
		}
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *Handler) writeError(w http.ResponseWriter, status int, code, msg string, details map[string]any) {
	resp := map[string]any{
		"error": map[string]any{
			"code":    code,
			"message": msg,
		},
	}
	if details != nil {
		resp["error"].(map[string]any)["details"] = details
	}
	h.writeJSON(w, status, resp)
}

func decodeJSONStrict(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		if err == nil {
			return errors.New("unexpected extra data after JSON body")
		}
		return err
	}
	return nil
}

func (h *Handler) ensureMaps(w http.ResponseWriter) bool {
	if h.maps == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return false
	}
	return true
}

func isInvalidUUID(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02"
	}
	return false
}

func (h *Handler) handleHealthz(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) handleReadyZ(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if h.pool == nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not configured", nil)
		return
	}

	if err := h.pool.Ping(ctx); err != nil {
		h.writeError(w, http.StatusServiceUnavailable, "db_unavailable", "database not ready", map[string]any{"error": err.Error()})
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]any{"ready": true})
}
