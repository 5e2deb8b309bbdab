// Package server exposes the layout pipeline over HTTP.
//
// Routes:
//
//	GET    /healthz                  liveness and build version
//	POST   /v1/layout                one-shot layout of a TOML chart body
//	POST   /v1/charts                build a live chart session
//	GET    /v1/charts/{id}           snapshot of a live chart
//	POST   /v1/charts/{id}/resize    resize the container and relayout
//	DELETE /v1/charts/{id}           drop a live chart
//
// Layout responses are encoded in the format named by the "format" query
// parameter (json, bson or msgpack); errors are always JSON.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sandutsar/bqplot/pkg/buildinfo"
	"github.com/sandutsar/bqplot/pkg/config"
	"github.com/sandutsar/bqplot/pkg/errors"
	"github.com/sandutsar/bqplot/pkg/export"
	"github.com/sandutsar/bqplot/pkg/observability"
	"github.com/sandutsar/bqplot/pkg/pipeline"
	"github.com/sandutsar/bqplot/pkg/session"
)

// maxBodyBytes bounds chart documents accepted over HTTP.
const maxBodyBytes = 4 << 20

// Server serves the HTTP API.
type Server struct {
	runner *pipeline.Runner
	store  session.Store
	logger *log.Logger
	ttl    time.Duration
}

// Option configures a Server.
type Option func(*Server)

// WithSessionTTL sets the idle lifetime of live chart sessions.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) { s.ttl = ttl }
}

// WithStore replaces the default in-memory session store.
func WithStore(store session.Store) Option {
	return func(s *Server) { s.store = store }
}

// New creates a server around runner.
func New(runner *pipeline.Runner, logger *log.Logger, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		logger: logger,
		ttl:    session.DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = session.NewMemoryStore()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/layout", s.handleLayout)
		r.Route("/charts", func(r chi.Router) {
			r.Post("/", s.handleCreateChart)
			r.Get("/{id}", s.handleGetChart)
			r.Post("/{id}/resize", s.handleResize)
			r.Delete("/{id}", s.handleDeleteChart)
		})
	})
	return r
}

// Sweep drops expired sessions every interval until ctx is done.
func (s *Server) Sweep(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := s.store.Cleanup(ctx)
			if err != nil {
				s.logger.Warn("session cleanup", "error", err)
				continue
			}
			if n > 0 {
				s.logger.Debug("dropped expired sessions", "count", n)
			}
		}
	}
}

// instrument reports every request to the HTTP hooks and logs it.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		ww.Header().Set("Server", buildinfo.UserAgent())
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path,
			"status", status, "bytes", ww.BytesWritten(), "duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	chart, err := readChart(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := layoutOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), chart, opts)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", opts.Format.ContentType())
	w.Header().Set("X-Chart-Hash", res.ChartHash)
	w.Header().Set("X-Cache-Layout", hitString(res.CacheInfo.LayoutHit))
	w.Header().Set("X-Cache-Artifact", hitString(res.CacheInfo.ArtifactHit))
	w.WriteHeader(http.StatusOK)
	w.Write(res.Artifact)
}

// chartResponse describes a live chart session.
type chartResponse struct {
	ID        string          `json:"id"`
	ExpiresAt time.Time       `json:"expires_at"`
	Snapshot  export.Snapshot `json:"snapshot"`
}

func (s *Server) handleCreateChart(w http.ResponseWriter, r *http.Request) {
	chart, err := readChart(w, r)
	if err != nil {
		writeError(w, err)
		return
	}
	if err := chart.Validate(); err != nil {
		writeError(w, err)
		return
	}
	ch, err := pipeline.Build(chart, pipeline.WithBuildLogger(s.logger))
	if err != nil {
		writeError(w, err)
		return
	}
	ch.Flush()

	sess := session.New(ch, s.ttl)
	if err := s.store.Set(r.Context(), sess); err != nil {
		ch.Close()
		writeError(w, err)
		return
	}
	s.logger.Info("created chart session", "id", sess.ID, "chart", chart.Name, "marks", len(chart.Marks))
	s.writeChart(w, http.StatusCreated, sess)
}

func (s *Server) handleGetChart(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	sess.Touch(s.ttl)
	s.writeChart(w, http.StatusOK, sess)
}

// resizeRequest is the body of a resize call.
type resizeRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (s *Server) handleResize(w http.ResponseWriter, r *http.Request) {
	sess, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	var req resizeRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode resize request"))
		return
	}
	if err := errors.ValidateNonNegative("width", req.Width); err != nil {
		writeError(w, err)
		return
	}
	if err := errors.ValidateNonNegative("height", req.Height); err != nil {
		writeError(w, err)
		return
	}

	err = sess.Do(func(ch *pipeline.Chart) {
		ch.Resize(req.Width, req.Height)
		ch.Flush()
	})
	if err != nil {
		writeError(w, err)
		return
	}
	sess.Touch(s.ttl)
	s.writeChart(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteChart(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// writeChart responds with the session's current snapshot. A session
// deleted since it was looked up yields ErrNotFound.
func (s *Server) writeChart(w http.ResponseWriter, status int, sess *session.Session) {
	resp := chartResponse{ID: sess.ID, ExpiresAt: sess.ExpiresAt()}
	err := sess.Do(func(ch *pipeline.Chart) {
		resp.Snapshot = ch.Snapshot()
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, status, resp)
}

// =============================================================================
// Helpers
// =============================================================================

func readChart(w http.ResponseWriter, r *http.Request) (*config.Chart, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	return config.Parse(data)
}

func layoutOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		Format:  export.Format(q.Get("format")),
		Refresh: q.Get("refresh") == "true",
	}
	var err error
	if opts.Width, err = floatParam(q.Get("width")); err != nil {
		return opts, err
	}
	if opts.Height, err = floatParam(q.Get("height")); err != nil {
		return opts, err
	}
	opts.SetDefaults()
	return opts, opts.Validate()
}

func floatParam(v string) (float64, error) {
	if v == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid number %q", v)
	}
	return f, errors.ValidateNonNegative("size", f)
}

func hitString(hit bool) string {
	if hit {
		return "HIT"
	}
	return "MISS"
}

// errorResponse is the JSON body of every failed request.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// statusFor maps an error onto an HTTP status.
func statusFor(err error) int {
	switch {
	case stderrors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case stderrors.Is(err, session.ErrExpired):
		return http.StatusGone
	}
	var maxErr *http.MaxBytesError
	if stderrors.As(err, &maxErr) {
		return http.StatusRequestEntityTooLarge
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidConfig, errors.ErrCodeInvalidMode,
		errors.ErrCodeInvalidType, errors.ErrCodeInvalidOrientation, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidName, errors.ErrCodeUnknownScale:
		return http.StatusBadRequest
	case errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	code := string(errors.GetCode(err))
	switch {
	case code != "":
	case status == http.StatusNotFound:
		code = "NOT_FOUND"
	case status == http.StatusGone:
		code = "EXPIRED"
	case status == http.StatusRequestEntityTooLarge:
		code = "TOO_LARGE"
	default:
		code = string(errors.ErrCodeInternal)
	}
	writeJSON(w, status, errorResponse{Code: code, Message: errors.UserMessage(err)})
}

// writeJSON encodes v before the status line goes out, so an encoding
// failure still produces a coded 500 body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		json.NewEncoder(&buf).Encode(errorResponse{
			Code:    string(errors.ErrCodeInternal),
			Message: "encode response: " + err.Error(),
		})
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
