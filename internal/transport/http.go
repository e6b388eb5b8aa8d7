package transport

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
	"github.com/kulesy/TimePro-MCP/internal/mcp"
)

// Dispatcher runs call envelopes.
type Dispatcher interface {
	Handle(ctx context.Context, call mcp.CallEnvelope) mcp.Result
}

// TimesheetService defines the operations behind the REST routes.
type TimesheetService interface {
	List(ctx context.Context) ([]timesheet.Timesheet, error)
	Get(ctx context.Context, id int) (*timesheet.Timesheet, error)
	Create(ctx context.Context, in timesheet.Input) (*timesheet.Timesheet, error)
	Update(ctx context.Context, id int, in timesheet.Input) (*timesheet.Timesheet, error)
	Delete(ctx context.Context, id int) error
}

// Server wires HTTP handlers.
type Server struct {
	dispatcher Dispatcher
	timesheets TimesheetService
	logger     *slog.Logger
}

// NewServer creates an HTTP router with request logging.
func NewServer(dispatcher Dispatcher, timesheets TimesheetService, logger *slog.Logger) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	r := chi.NewRouter()
	r.Use(RequestLogger(logger))

	srv := &Server{dispatcher: dispatcher, timesheets: timesheets, logger: logger}

	r.Get("/health", srv.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/mcp/request", srv.handleCall)
		r.Get("/mcp/methods", srv.handleMethods)

		r.Route("/timesheets", func(r chi.Router) {
			r.Get("/", srv.listTimesheets)
			r.Post("/", srv.createTimesheet)
			r.Get("/{id}", srv.getTimesheet)
			r.Put("/{id}", srv.updateTimesheet)
			r.Delete("/{id}", srv.deleteTimesheet)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type methodsResponse struct {
	Methods []mcp.MethodInfo `json:"methods"`
}

func (s *Server) handleMethods(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, methodsResponse{Methods: mcp.Methods()})
}

// handleCall returns the dispatcher result with status 200 whatever its
// success flag. Only failures outside the dispatcher produce a 500.
func (s *Server) handleCall(w http.ResponseWriter, r *http.Request) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("call handler panicked", "panic", rec)
			writeJSON(w, http.StatusInternalServerError, mcp.InternalError())
		}
	}()

	call, err := mcp.DecodeCallEnvelope(r.Body)
	if err != nil {
		s.logger.Error("error handling call", "error", err)
		writeJSON(w, http.StatusInternalServerError, mcp.InternalError())
		return
	}

	writeJSON(w, http.StatusOK, s.dispatcher.Handle(r.Context(), call))
}
