// Package server serves the treemap over HTTP.
//
// The server starts the single dataset fetch when it starts and answers
// every request from the published result. Until the fetch completes the
// routes serve the loading view with 503; after a failed fetch they serve
// the error view with 502.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/treemap/internal/view"
	"github.com/matzehuels/treemap/pkg/dataset"
	"github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 5 * time.Second
	retryAfterSeconds = "2"
)

// Server renders the shared dataset on demand.
type Server struct {
	runner *pipeline.Runner
	store  *view.Store
	opts   pipeline.Options
	logger *log.Logger
	router chi.Router
}

// New builds a server. opts supplies the canvas, palette and overlay
// settings; its Formats and Select are overridden per request.
func New(runner *pipeline.Runner, store *view.Store, opts pipeline.Options, logger *log.Logger) *Server {
	if logger == nil {
		logger = runner.Logger
	}
	s := &Server{runner: runner, store: store, opts: opts, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/", s.artifact(pipeline.FormatHTML, "text/html; charset=utf-8"))
	r.Get("/treemap.svg", s.artifact(pipeline.FormatSVG, "image/svg+xml"))
	r.Get("/layout.json", s.artifact(pipeline.FormatJSON, "application/json"))
	r.Get("/healthz", s.health)
	return r
}

// Start begins the dataset fetch in the background. The result is
// published to the store when it arrives.
func (s *Server) Start(ctx context.Context) {
	s.runner.Fetcher.FetchAsync(ctx, func(res dataset.Result) {
		if err := s.store.Publish(res); err != nil {
			s.logger.Warn("discarding fetch result", "err", err)
			return
		}
		if res.OK() {
			s.logger.Info("dataset ready", "bytes", res.Bytes, "duration", res.Duration)
		} else {
			s.logger.Error("dataset fetch failed", "code", errors.GetCode(res.Err), "err", res.Err)
		}
	})
}

// ListenAndServe starts the fetch, serves on addr and shuts down
// gracefully when ctx ends.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
	}

	s.Start(ctx)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if err == http.ErrServerClosed {
			return nil
		}
		return errors.Wrap(errors.ErrCodeNetwork, err, "listen %s", addr)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) artifact(format, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		opts := s.opts
		opts.Formats = []string{format}
		opts.Select = r.URL.Query().Get("select")
		opts.Logger = s.logger.With("request_id", middleware.GetReqID(r.Context()))

		res, err := view.Render(r.Context(), s.runner, s.store, opts)
		if err != nil {
			s.logger.Warn("render failed", "path", r.URL.Path, "err", err)
			http.Error(w, errors.UserMessage(err), statusFor(err))
			return
		}

		w.Header().Set("Content-Type", contentType)
		w.Header().Set("X-Render-Id", res.RenderID)
		switch res.State {
		case pipeline.StateUnloaded:
			w.Header().Set("Retry-After", retryAfterSeconds)
			w.WriteHeader(http.StatusServiceUnavailable)
		case pipeline.StateFailed:
			w.WriteHeader(http.StatusBadGateway)
		}
		_, _ = w.Write(res.Artifacts[format])
	}
}

func (s *Server) health(w http.ResponseWriter, _ *http.Request) {
	snap := s.store.Snapshot()
	status := http.StatusOK
	if snap.State == pipeline.StateFailed {
		status = http.StatusBadGateway
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"state": "` + snap.State.String() + `"}`))
}

// statusFor maps a render error to an HTTP status.
func statusFor(err error) int {
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidSelector, errors.ErrCodeInvalidInput, errors.ErrCodeEmptyDataset:
		return http.StatusBadRequest
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	}
	return http.StatusInternalServerError
}

func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}
