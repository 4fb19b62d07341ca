// Package server exposes the evaluator over HTTP and websockets.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/lxzan/gws"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/bigcalc/internal/bigint"
	apperrors "github.com/agbru/bigcalc/internal/errors"
	"github.com/agbru/bigcalc/internal/expr"
	"github.com/agbru/bigcalc/internal/logging"
	"github.com/agbru/bigcalc/internal/metrics"
	"github.com/agbru/bigcalc/internal/orchestration"
)

const tracerName = "github.com/agbru/bigcalc/internal/server"

// Server timeouts.
const (
	ReadTimeout     = 10 * time.Second
	WriteTimeout    = 10 * time.Minute
	IdleTimeout     = 2 * time.Minute
	ShutdownTimeout = 10 * time.Second
	// PingInterval bounds how long a websocket may stay silent.
	PingInterval = time.Minute
)

// DefaultMaxResultBits caps the width of any value computed for a request
// when Config.MaxResultBits is zero. Rendering a value to decimal is
// quadratic and cannot be interrupted, so the cap keeps every response
// within a fraction of a second of work.
const DefaultMaxResultBits = 1 << 18

// Config holds the server settings.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// Security configures headers, CORS and the expression size limit.
	Security SecurityConfig
	// MaxResultBits rejects results wider than this many bits. Zero selects
	// DefaultMaxResultBits; a negative value disables the check.
	MaxResultBits int
}

func (c Config) maxResultBits() int {
	if c.MaxResultBits == 0 {
		return DefaultMaxResultBits
	}
	return c.MaxResultBits
}

// EvalOptions lowers opts.MaxBits to the result cap of config so that no
// intermediate value grows past what a request may return.
func EvalOptions(config Config, opts expr.Options) expr.Options {
	limit := config.maxResultBits()
	if limit < 0 {
		return opts
	}
	if opts.MaxBits <= 0 || opts.MaxBits > limit {
		opts.MaxBits = limit
	}
	return opts
}

// Server serves /eval, /health, /metrics and /ws.
type Server struct {
	config   Config
	factory  orchestration.EvaluatorFactory
	logger   logging.Logger
	metrics  *Metrics
	tracer   trace.Tracer
	upgrader *gws.Upgrader
	started  time.Time

	mu      sync.Mutex
	baseCtx context.Context
}

// NewServer creates a server. Each request, and each websocket session, gets
// its own evaluator from factory.
//
// Parameters:
//   - config: The server settings.
//   - factory: Produces evaluators seeded with the configured definitions.
//   - logger: Receives request and lifecycle logs; nil disables logging.
//
// Returns:
//   - *Server: The configured server, not yet listening.
func NewServer(config Config, factory orchestration.EvaluatorFactory, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Server{
		config:  config,
		factory: factory,
		logger:  logger,
		metrics: NewMetrics(),
		tracer:  otel.Tracer(tracerName),
		started: time.Now(),
		baseCtx: context.Background(),
	}
	s.upgrader = gws.NewUpgrader(&wsHandler{s: s}, &gws.ServerOption{
		ReadMaxPayloadSize: max(config.Security.MaxExprLen, 0) + bodyOverhead,
		Recovery:           gws.Recovery,
	})
	return s
}

// Handler returns the routed and wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	wrap := func(h http.HandlerFunc) http.HandlerFunc {
		return s.metricsMiddleware(SecurityMiddleware(s.config.Security, h))
	}
	mux.HandleFunc("/eval", wrap(s.handleEval))
	mux.HandleFunc("/health", wrap(s.handleHealth))
	mux.HandleFunc("/metrics", wrap(s.handleMetrics))
	// The websocket upgrade needs the raw ResponseWriter.
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	s.mu.Lock()
	s.baseCtx = ctx
	s.mu.Unlock()

	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
		IdleTimeout:  IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", s.config.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func (s *Server) requestContext() context.Context {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseCtx
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// metricsMiddleware tracks in-flight and finished requests.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next(rec, r)
		s.metrics.RecordRequest(r.URL.Path, rec.code)
	}
}

// EvalRequest is the POST /eval body.
type EvalRequest struct {
	Expr string `json:"expr"`
}

// EvalResponse is returned by /eval and sent for every websocket message.
type EvalResponse struct {
	Expr       string  `json:"expr"`
	Result     *string `json:"result"`
	Digits     int     `json:"digits,omitempty"`
	Bits       int     `json:"bits,omitempty"`
	DurationMS float64 `json:"duration_ms"`
	Error      string  `json:"error,omitempty"`
	Kind       string  `json:"kind,omitempty"`
}

func (s *Server) handleEval(w http.ResponseWriter, r *http.Request) {
	var src string
	switch r.Method {
	case http.MethodGet:
		src = r.URL.Query().Get("expr")
	case http.MethodPost:
		var req EvalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			s.writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
			return
		}
		src = req.Expr
	default:
		w.Header().Set("Allow", "GET, POST")
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if strings.TrimSpace(src) == "" {
		s.writeError(w, http.StatusBadRequest, "missing expression")
		return
	}

	ctx := r.Context()
	if s.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Timeout)
		defer cancel()
	}
	resp, status := s.evaluate(ctx, s.factory.NewEvaluator(), src)
	s.writeJSON(w, status, resp)
}

// evaluate runs src on ev inside a span and maps the outcome to a response
// and an HTTP status.
func (s *Server) evaluate(ctx context.Context, ev orchestration.Evaluator, src string) (EvalResponse, int) {
	ctx, span := s.tracer.Start(ctx, "server.evaluate",
		trace.WithAttributes(attribute.Int("bigcalc.expr.length", len(src))))
	defer span.End()

	resp := EvalResponse{Expr: src}
	if limit := s.config.Security.MaxExprLen; limit > 0 && len(src) > limit {
		err := apperrors.InputTooLargeError{Size: len(src), Limit: limit}
		resp.Error, resp.Kind = err.Error(), "too_large"
		s.metrics.RecordEvalError(resp.Kind)
		span.SetStatus(codes.Error, resp.Kind)
		return resp, http.StatusRequestEntityTooLarge
	}

	start := time.Now()
	v, err := ev.Eval(ctx, src)
	elapsed := time.Since(start)
	resp.DurationMS = float64(elapsed) / float64(time.Millisecond)
	s.metrics.ObserveEval(elapsed)

	if err == nil {
		err = ctx.Err()
	}
	if limit := s.config.maxResultBits(); err == nil && limit >= 0 && v.BitLen() > limit {
		err = fmt.Errorf("%w: result has %d bits, limit %d", expr.ErrTooLarge, v.BitLen(), limit)
	}

	if err != nil {
		status, kind := classifyError(err)
		resp.Error, resp.Kind = err.Error(), kind
		s.metrics.RecordEvalError(kind)
		span.RecordError(err)
		span.SetStatus(codes.Error, kind)
		s.logger.Debug("evaluation failed", logging.String("kind", kind), logging.Err(err))
		return resp, status
	}

	text := v.String()
	resp.Result = &text
	resp.Digits = len(text)
	if v.Sign() < 0 {
		resp.Digits--
	}
	resp.Bits = v.BitLen()
	span.SetAttributes(attribute.Int("bigcalc.result.bits", resp.Bits))
	return resp, http.StatusOK
}

// classifyError maps an evaluation error to an HTTP status and a short kind
// used in responses and the error counter.
func classifyError(err error) (int, string) {
	var se *expr.SyntaxError
	switch {
	case errors.As(err, &se), errors.Is(err, bigint.ErrInvalidFormat):
		return http.StatusBadRequest, "syntax"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "timeout"
	case errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, "canceled"
	case errors.Is(err, bigint.ErrDivisionByZero):
		return http.StatusUnprocessableEntity, "division_by_zero"
	case errors.Is(err, expr.ErrTooLarge), errors.Is(err, expr.ErrShiftRange), errors.Is(err, expr.ErrDomain):
		return http.StatusUnprocessableEntity, "range"
	case errors.Is(err, expr.ErrUndefined), errors.Is(err, expr.ErrUnknownFunc), errors.Is(err, expr.ErrArity):
		return http.StatusUnprocessableEntity, "name"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

type healthResponse struct {
	Status  string              `json:"status"`
	Uptime  string              `json:"uptime"`
	Runtime metrics.RuntimeInfo `json:"runtime"`
	System  metrics.SystemStats `json:"system"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Uptime:  time.Since(s.started).Truncate(time.Second).String(),
		Runtime: metrics.CollectRuntimeInfo(),
		System:  metrics.SampleSystem(),
	})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.metrics.WritePrometheus(w, r)
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, EvalResponse{Error: msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", err)
	}
}
