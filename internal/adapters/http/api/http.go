// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/okian/mlbview/internal/adapters/search"
	service "github.com/okian/mlbview/internal/app"
	"github.com/okian/mlbview/internal/domain/dates"
	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Select(ctx context.Context, q service.Query) (service.Selection, error)
	Leaders(ctx context.Context, q service.LeadersQuery) (service.Leaderboard, error)
	Datasets(ctx context.Context) ([]service.DatasetInfo, error)
	Head(ctx context.Context, dataset string, n int) (service.Preview, error)
	Players(ctx context.Context, dataset, query string, limit int) ([]search.Match, error)
	Schedule(ctx context.Context, from, to dates.Date, team string) ([]model.Game, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	datasetsHandler  *DatasetsHandler
	playersHandler   *PlayersHandler
	selectionHandler *SelectionHandler
	scheduleHandler  *ScheduleHandler
	leadersHandler   *LeadersHandler

	limiter *rate.Limiter
	logger  logger.Logger
	year    int
}

// ServerOption applies a configuration option to the Server.
type ServerOption func(*Server)

// WithRateLimit limits requests across all business routes. A zero rps
// disables limiting.
func WithRateLimit(rps float64, burst int) ServerOption {
	return func(s *Server) {
		if rps <= 0 {
			s.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		s.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithReferenceYear sets the year for "Mon Day" query dates.
func WithReferenceYear(year int) ServerOption {
	return func(s *Server) {
		if year > 0 {
			s.year = year
		}
	}
}

// WithLogger sets the request logger.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{year: time.Now().Year()}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("api")
	}

	dp := dateParser{year: s.year}
	s.healthHandler = NewHealthHandler()
	s.statsHandler = NewStatsHandler(statsProvider)
	s.datasetsHandler = NewDatasetsHandler(deps)
	s.playersHandler = NewPlayersHandler(deps)
	s.selectionHandler = NewSelectionHandler(deps, dp)
	s.scheduleHandler = NewScheduleHandler(deps, dp)
	s.leadersHandler = NewLeadersHandler(deps, dp)
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", s.wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/datasets", s.wrap(s.datasetsHandler.HandleList, "datasets"))
	mux.HandleFunc("/datasets/", s.wrap(s.datasetsHandler.HandleHead, "datasets_head"))
	mux.HandleFunc("/players", s.wrap(s.playersHandler.HandlePlayers, "players"))
	mux.HandleFunc("/selection", s.wrap(s.selectionHandler.HandleSelection, "selection"))
	mux.HandleFunc("/schedule", s.wrap(s.scheduleHandler.HandleSchedule, "schedule"))
	mux.HandleFunc("/leaders", s.wrap(s.leadersHandler.HandleLeaders, "leaders"))
}

// wrap applies the shared middleware chain, outermost first: request id,
// logging, metrics, rate limit.
func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	h = RateLimitMiddleware(h, s.limiter, endpoint)
	h = MetricsMiddleware(h, endpoint)
	h = LoggingMiddleware(h, s.logger, endpoint)
	return RequestIDMiddleware(h)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeFailure maps err onto a status and error code.
func writeFailure(w http.ResponseWriter, err error) {
	status, code := classifyError(err)
	writeError(w, status, code, err)
}

func classifyError(err error) (int, string) {
	switch {
	case errors.Is(err, ErrBadRequest), errors.Is(err, service.ErrInvalidQuery):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, service.ErrUnknownDataset):
		return http.StatusNotFound, "unknown_dataset"
	case errors.Is(err, service.ErrPlayerNotFound):
		return http.StatusNotFound, "player_not_found"
	case errors.Is(err, service.ErrUnknownStat):
		return http.StatusNotFound, "unknown_stat"
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests, "rate_limited"
	case errors.Is(err, service.ErrNotStarted):
		return http.StatusServiceUnavailable, "unavailable"
	default:
		return http.StatusInternalServerError, "internal_error"
	}
}

// allowGet answers 404 for anything but GET, like the rest of the API.
func allowGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return false
	}
	return true
}
