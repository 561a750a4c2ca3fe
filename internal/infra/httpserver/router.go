package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	appanalysis "github.com/bryanwahyu/loan-insights/internal/application/analysis"
	domai "github.com/bryanwahyu/loan-insights/internal/domain/ai"
	domain "github.com/bryanwahyu/loan-insights/internal/domain/analysis"
	"github.com/bryanwahyu/loan-insights/internal/middleware"
)

// ReportCache is the read side of the analysis cache.
type ReportCache interface {
	Get(name domain.Name) (domain.Report, error)
	Stats() appanalysis.Stats
}

// Options carries the optional parts of the router.
type Options struct {
	Logger      *zap.Logger
	Metrics     *middleware.Metrics
	RateLimiter *middleware.RateLimiter
	Checkers    map[string]middleware.HealthChecker
	CORSOrigins []string
}

type Router struct {
	cache   ReportCache
	metrics *middleware.Metrics
	log     *zap.Logger
}

// reportRoutes maps public paths to cached report names.
var reportRoutes = map[string]domain.Name{
	"/loan-distribution": domain.ReportLoanDistribution,
	"/grade-defaults":    domain.ReportGradeDefaults,
	"/state-defaults":    domain.ReportStateDefaults,
	"/risk-factors":      domain.ReportRiskFactors,
	"/temporal-trends":   domain.ReportTemporalTrends,
	"/report":            domain.ReportFinal,
}

func NewRouter(cache ReportCache, opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = middleware.NewMetrics()
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	r := &Router{cache: cache, metrics: opts.Metrics, log: opts.Logger}

	mux := chi.NewRouter()
	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.Logging(opts.Logger))
	mux.Use(opts.Metrics.Middleware)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
	if opts.RateLimiter != nil {
		mux.Use(middleware.RateLimit(opts.RateLimiter))
	}

	mux.Get("/health", middleware.HealthHandler(opts.Checkers))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/health/ready", middleware.ReadinessHandler(r.ready))
	mux.Get("/metrics", opts.Metrics.Handler(r.cacheMetrics))
	mux.Get("/status", r.wrap(r.handleStatus))

	for path, name := range reportRoutes {
		mux.Get(path, r.wrap(r.handleReport(name)))
	}
	mux.Get("/reports/{name}", r.wrap(r.handleNamedReport))
	mux.Get("/reports/{name}/chart.png", r.wrap(r.handleChart))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var notReady *domain.NotReadyError
		switch {
		case errors.Is(err, errWriteResponse):
			r.log.Warn("response write failed", zap.String("path", req.URL.Path), zap.Error(err))
		case errors.As(err, &notReady):
			writeJSON(w, http.StatusInternalServerError, detail(err.Error()))
		case errors.Is(err, errUnknownReport):
			writeJSON(w, http.StatusNotFound, detail(err.Error()))
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeJSON(w, http.StatusTooManyRequests, detail("ai quota exceeded"))
		default:
			r.log.Error("request failed", zap.String("path", req.URL.Path), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, detail(err.Error()))
		}
	}
}

var (
	errUnknownReport = errors.New("unknown report")
	errWriteResponse = errors.New("write response")
)

type errorBody struct {
	Detail string `json:"detail"`
}

func detail(msg string) errorBody { return errorBody{Detail: msg} }

// writeJSON encodes before writing so a failed encode never leaves a
// partial body behind. An encode error is returned with nothing written.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		return fmt.Errorf("%w: %v", errWriteResponse, err)
	}
	return nil
}

// GET /loan-distribution, /grade-defaults, ... /report
func (r *Router) handleReport(name domain.Name) handlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		rep, err := r.lookup(name)
		if err != nil {
			return err
		}
		return writeJSON(w, http.StatusOK, rep)
	}
}

// GET /reports/{name}
func (r *Router) handleNamedReport(w http.ResponseWriter, req *http.Request) error {
	name, err := reportName(req)
	if err != nil {
		return err
	}
	return r.handleReport(name)(w, req)
}

// GET /reports/{name}/chart.png
func (r *Router) handleChart(w http.ResponseWriter, req *http.Request) error {
	name, err := reportName(req)
	if err != nil {
		return err
	}
	rep, err := r.lookup(name)
	if err != nil {
		return err
	}
	if len(rep.Chart) == 0 {
		return &domain.NotReadyError{Name: name}
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := w.Write(rep.Chart); err != nil {
		return fmt.Errorf("%w: %v", errWriteResponse, err)
	}
	return nil
}

// GET /status
func (r *Router) handleStatus(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, r.cache.Stats())
}

func (r *Router) lookup(name domain.Name) (domain.Report, error) {
	rep, err := r.cache.Get(name)
	r.metrics.ObserveReport(err == nil)
	return rep, err
}

func (r *Router) ready() (bool, string) {
	state := r.cache.Stats().State
	return state == domain.StateReady, string(state)
}

func (r *Router) cacheMetrics() map[string]any {
	return map[string]any{"analysis_cache": r.cache.Stats()}
}

func reportName(req *http.Request) (domain.Name, error) {
	name := domain.Name(chi.URLParam(req, "name"))
	for _, n := range domain.AllReports() {
		if n == name {
			return name, nil
		}
	}
	return "", errUnknownReport
}
