package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"expenses/internal/core"
	"expenses/internal/log"
	"expenses/internal/middleware/cors"
	"expenses/internal/middleware/security"
	"expenses/internal/middleware/trace"
)

// ExpenseService is what the handlers need from the service layer.
// *services.ExpenseService satisfies it.
type ExpenseService interface {
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	ListCategories(ctx context.Context) ([]core.Category, error)
	CreateExpense(ctx context.Context, in core.ExpenseInput) (int64, error)
	UpdateExpense(ctx context.Context, id int64, in core.ExpenseInput) (int64, error)
	DeleteExpense(ctx context.Context, id int64) (int64, error)
	Summary(ctx context.Context) ([]core.SummaryRow, error)
	Ping(ctx context.Context) error
}

type Server struct {
	http.Server
	svc    ExpenseService
	logger *log.Logger
	tracer *trace.Middleware

	started      time.Time
	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, svc ExpenseService, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	logger = logger.WithComponent(log.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16,
		},
		svc:     svc,
		logger:  logger,
		tracer:  trace.NewMiddleware(logger, clientIP),
		started: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)
	mux.HandleFunc("GET /api/categories", s.handleListCategories)
	mux.HandleFunc("GET /api/summary", s.handleSummary)

	// Unknown /api paths answer in the JSON error shape instead of text/plain.
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		NotFoundError("not found").Write(w)
	})

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	corsMW := cors.New(cors.DefaultConfig())

	var handler http.Handler = mux
	handler = corsMW.Middleware(handler)
	handler = headers.Middleware(handler)
	handler = s.tracer.Middleware(handler)
	s.Handler = handler

	return s
}

// Metrics exposes the request counters collected by the tracing middleware.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.GetMetrics()
}

// Shutdown stops accepting connections and waits for in-flight requests.
// It is safe to call more than once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.logger.InfoContext(ctx, "Shutting down HTTP server", log.FieldOperation, log.OpShutdown)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
