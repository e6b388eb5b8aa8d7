package mcp

import (
	"errors"
	"fmt"

	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
)

// Result error codes.
const (
	CodeBadRequest = 400
	CodeNotFound   = 404
	CodeInternal   = 500
)

const (
	msgMethodNotFound = "Method not found"
	msgInvalidID      = "Invalid timesheet ID"
	msgNoParameters   = "No parameters provided"
	msgMissingFields  = "Missing required fields: date, project, and hours are required"
	msgNotFound       = "Timesheet not found"
	msgInternal       = "Internal server error"
	msgDeleted        = "Timesheet deleted successfully"
	msgListFailed     = "Failed to list timesheets"
	msgGetFailed      = "Failed to get timesheet"
	msgCreateFailed   = "Failed to create timesheet"
	msgUpdateFailed   = "Failed to update timesheet"
	msgDeleteFailed   = "Failed to delete timesheet"
)

// Error is the failure half of a Result.
type Error struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func newError(code int, message string) *Error {
	return &Error{Code: code, Message: message}
}

// InternalError is the fixed payload for failures outside any method handler.
func InternalError() Result {
	return failure(newError(CodeInternal, msgInternal))
}

// mapError maps domain errors to result errors. Anything unrecognized becomes
// a 500 carrying fallback; the cause is never exposed.
func mapError(err error, fallback string) *Error {
	switch {
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		return newError(CodeNotFound, msgNotFound)
	default:
		return newError(CodeInternal, fallback)
	}
}
