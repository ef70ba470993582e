package http

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"spendsight/internal/amqp"
	"spendsight/internal/backend"
	"spendsight/internal/cache"
	"spendsight/internal/forecast"
	"spendsight/internal/log"
	"spendsight/internal/middleware/ratelimit"
	"spendsight/internal/middleware/trace"
)

// Options configures the analytics server.
type Options struct {
	Addr           string
	DefaultHorizon int
	CacheSize      int
	CacheTTL       time.Duration

	Sources *backend.Factory
	Engine  *forecast.Engine
	Events  *amqp.Client // nil disables event publishing
	Logger  *log.Logger
}

// Server exposes the analytics pipeline over a JSON API.
type Server struct {
	http.Server

	logger  *log.Logger
	sources *backend.Factory
	engine  *forecast.Engine
	events  *amqp.Client

	defaultHorizon int

	// Analysis responses keyed by source fingerprint; stale entries age
	// out on TTL or on file modification.
	responses *cache.LRUCache[cachedResponse]
	cacheMgr  *cache.Manager

	limiter *ratelimit.Limiter
	tracer  *trace.Middleware

	shutdownOnce sync.Once
}

type cachedResponse struct {
	status int
	body   []byte
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(opts Options) *Server {
	if opts.DefaultHorizon <= 0 {
		opts.DefaultHorizon = forecast.DefaultHorizon
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 64
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}
	if opts.Engine == nil {
		opts.Engine = forecast.NewEngine()
	}
	if opts.Sources == nil {
		opts.Sources = backend.NewFactory(nil)
	}

	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger:         opts.Logger.WithComponent("http"),
		sources:        opts.Sources,
		engine:         opts.Engine,
		events:         opts.Events,
		defaultHorizon: opts.DefaultHorizon,
		responses:      cache.NewLRUCache[cachedResponse](opts.CacheSize, opts.CacheTTL),
		cacheMgr:       cache.NewManager(),
		limiter:        ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		tracer:         trace.NewMiddleware(extractClientIP),
	}

	s.cacheMgr.Register(s.responses)
	s.cacheMgr.StartCleanup(10 * time.Minute)

	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/trends", s.handleTrends)
	mux.HandleFunc("/api/insights", s.handleInsights)
	mux.HandleFunc("/api/forecast", s.handleForecast)

	limited := s.limiter.Middleware(extractClientIP, nil)
	s.Handler = s.tracer.Middleware(limited(mux))

	return s
}

// Shutdown gracefully shuts down the server and its cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		s.cacheMgr.Stop()
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// extractClientIP resolves the client address, preferring proxy headers.
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		// First hop in the chain is the originating client
		if idx := strings.IndexByte(ip, ','); idx >= 0 {
			return strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}
