package timesheet

import "errors"

var (
	// ErrTimesheetNotFound indicates the timesheet doesn't exist.
	ErrTimesheetNotFound = errors.New("timesheet not found")
	// ErrInvalidDate indicates a date string that matches no accepted layout.
	ErrInvalidDate = errors.New("invalid timesheet date")
)
