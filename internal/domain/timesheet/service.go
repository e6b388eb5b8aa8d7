package timesheet

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/kulesy/TimePro-MCP/internal/repository"
)

// Service handles timesheet business logic on top of a Repository.
// Mutations are serialized behind one writer lock; reads are not locked.
type Service struct {
	repo   Repository
	logger *slog.Logger
	mu     sync.Mutex
}

// NewService creates a new timesheet service.
func NewService(repo Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, logger: logger}
}

// List returns every timesheet in repository order.
func (s *Service) List(ctx context.Context) ([]Timesheet, error) {
	records, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing timesheets: %w", err)
	}
	out := make([]Timesheet, 0, len(records))
	for _, rec := range records {
		out = append(out, toTimesheet(rec))
	}
	return out, nil
}

// Get fetches a timesheet by ID.
func (s *Service) Get(ctx context.Context, id int) (*Timesheet, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimesheetNotFound
		}
		return nil, fmt.Errorf("loading timesheet %d: %w", id, err)
	}
	ts := toTimesheet(*rec)
	return &ts, nil
}

// Create stores a new timesheet; the repository assigns its ID.
func (s *Service) Create(ctx context.Context, in Input) (*Timesheet, error) {
	rec, err := fromInput(0, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, fmt.Errorf("creating timesheet: %w", err)
	}
	s.logger.Debug("timesheet created", "id", rec.ID)

	ts := toTimesheet(rec)
	return &ts, nil
}

// Update replaces every field of an existing timesheet.
func (s *Service) Update(ctx context.Context, id int, in Input) (*Timesheet, error) {
	rec, err := fromInput(id, in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Update(ctx, &rec); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTimesheetNotFound
		}
		return nil, fmt.Errorf("updating timesheet %d: %w", id, err)
	}
	s.logger.Debug("timesheet updated", "id", id)

	ts := toTimesheet(rec)
	return &ts, nil
}

// Delete removes a timesheet.
func (s *Service) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTimesheetNotFound
		}
		return fmt.Errorf("deleting timesheet %d: %w", id, err)
	}
	s.logger.Debug("timesheet deleted", "id", id)
	return nil
}

func fromInput(id int, in Input) (Record, error) {
	date, err := ParseDate(in.Date)
	if err != nil {
		return Record{}, err
	}
	return Record{
		ID:      id,
		Date:    date,
		Project: in.Project,
		Hours:   in.Hours,
		Details: in.Details,
		Status:  in.Status,
		Client:  in.Client,
	}, nil
}

func toTimesheet(rec Record) Timesheet {
	return Timesheet{
		ID:      rec.ID,
		Date:    FormatDate(rec.Date),
		Project: rec.Project,
		Hours:   rec.Hours,
		Details: rec.Details,
		Status:  rec.Status,
		Client:  rec.Client,
	}
}
