package timesheet

import "time"

// Record is a timesheet entry as held by a repository.
type Record struct {
	ID      int
	Date    time.Time
	Project string
	Hours   float64
	Details string
	Status  string
	Client  string
}

// Timesheet is the caller-facing view of a record. Date is always YYYY-MM-DD.
type Timesheet struct {
	ID      int     `json:"id"`
	Date    string  `json:"date"`
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
	Details string  `json:"details"`
	Status  string  `json:"status"`
	Client  string  `json:"client"`
}

// Input carries the fields written by create and update. Updates replace every
// field; there is no partial patch.
type Input struct {
	Date    string  `json:"date"`
	Project string  `json:"project"`
	Hours   float64 `json:"hours"`
	Details string  `json:"details"`
	Status  string  `json:"status"`
	Client  string  `json:"client"`
}

// Known status labels. Status is not restricted to these values.
const (
	StatusApproved = "Approved"
	StatusPending  = "Pending"
	StatusRejected = "Rejected"
)
