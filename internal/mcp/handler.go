package mcp

import (
	"context"
	"log/slog"

	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
)

// TimesheetService defines timesheet operations needed by the dispatcher.
type TimesheetService interface {
	List(ctx context.Context) ([]timesheet.Timesheet, error)
	Get(ctx context.Context, id int) (*timesheet.Timesheet, error)
	Create(ctx context.Context, in timesheet.Input) (*timesheet.Timesheet, error)
	Update(ctx context.Context, id int, in timesheet.Input) (*timesheet.Timesheet, error)
	Delete(ctx context.Context, id int) error
}

// Handler dispatches call envelopes to the timesheet service.
type Handler struct {
	timesheets TimesheetService
	logger     *slog.Logger
}

// NewHandler creates a new dispatcher.
func NewHandler(timesheets TimesheetService, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{timesheets: timesheets, logger: logger}
}

type deleteResponse struct {
	Message string `json:"message"`
}

// Handle runs one call. It never panics and always returns a well-formed
// Result.
func (h *Handler) Handle(ctx context.Context, call CallEnvelope) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			h.logger.Error("method panicked", "method", call.Method, "panic", r)
			res = InternalError()
		}
	}()

	entry, ok := methodsByName[call.Method]
	if !ok {
		h.logger.Debug("unknown method", "method", call.Method)
		return failure(newError(CodeNotFound, msgMethodNotFound))
	}
	return entry.run(h, ctx, call.Params)
}

func (h *Handler) listTimesheets(ctx context.Context, _ Params) Result {
	list, err := h.timesheets.List(ctx)
	if err != nil {
		return h.fail(MethodList, err, msgListFailed)
	}
	return success(list)
}

func (h *Handler) getTimesheet(ctx context.Context, p Params) Result {
	req, perr := parseIDParams(p)
	if perr != nil {
		return failure(perr)
	}
	ts, err := h.timesheets.Get(ctx, req.ID)
	if err != nil {
		return h.fail(MethodGet, err, msgGetFailed)
	}
	return success(ts)
}

func (h *Handler) createTimesheet(ctx context.Context, p Params) Result {
	req, perr := parseCreateParams(p)
	if perr != nil {
		return failure(perr)
	}
	ts, err := h.timesheets.Create(ctx, req.Input)
	if err != nil {
		return h.fail(MethodCreate, err, msgCreateFailed)
	}
	return success(ts)
}

func (h *Handler) updateTimesheet(ctx context.Context, p Params) Result {
	req, perr := parseUpdateParams(p)
	if perr != nil {
		return failure(perr)
	}
	ts, err := h.timesheets.Update(ctx, req.ID, req.Input)
	if err != nil {
		return h.fail(MethodUpdate, err, msgUpdateFailed)
	}
	return success(ts)
}

func (h *Handler) deleteTimesheet(ctx context.Context, p Params) Result {
	req, perr := parseIDParams(p)
	if perr != nil {
		return failure(perr)
	}
	if err := h.timesheets.Delete(ctx, req.ID); err != nil {
		return h.fail(MethodDelete, err, msgDeleteFailed)
	}
	return success(deleteResponse{Message: msgDeleted})
}

func (h *Handler) fail(method string, err error, fallback string) Result {
	apiErr := mapError(err, fallback)
	if apiErr.Code == CodeInternal {
		h.logger.Error("method failed", "method", method, "error", err)
	}
	return failure(apiErr)
}
