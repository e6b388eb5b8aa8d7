package timesheet

import "context"

// Repository provides persistence for timesheet records.
type Repository interface {
	List(ctx context.Context) ([]Record, error)
	Get(ctx context.Context, id int) (*Record, error)
	// Create assigns rec.ID as one greater than the current maximum, or 1 when empty.
	Create(ctx context.Context, rec *Record) error
	Update(ctx context.Context, rec *Record) error
	Delete(ctx context.Context, id int) error
}
