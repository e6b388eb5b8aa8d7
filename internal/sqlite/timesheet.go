package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
	"github.com/kulesy/TimePro-MCP/internal/repository"
)

// TimesheetRepository implements timesheet.Repository for SQLite
type TimesheetRepository struct {
	db *DB
}

// NewTimesheetRepository creates a new TimesheetRepository
func NewTimesheetRepository(db *DB) *TimesheetRepository {
	return &TimesheetRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTimesheet(row rowScanner) (timesheet.Record, error) {
	var (
		rec  timesheet.Record
		date string
	)
	if err := row.Scan(
		&rec.ID,
		&date,
		&rec.Project,
		&rec.Hours,
		&rec.Details,
		&rec.Status,
		&rec.Client,
	); err != nil {
		return timesheet.Record{}, err
	}
	parsed, err := timesheet.ParseDate(date)
	if err != nil {
		return timesheet.Record{}, corruptDate(rec.ID, date)
	}
	rec.Date = parsed
	return rec, nil
}

// List returns all timesheets ordered by id
func (r *TimesheetRepository) List(ctx context.Context) ([]timesheet.Record, error) {
	query := `
		SELECT id, date, project, hours, details, status, client
		FROM timesheets
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list timesheets: %w", err)
	}
	defer rows.Close()

	records := []timesheet.Record{}
	for rows.Next() {
		rec, err := scanTimesheet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan timesheet: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate timesheets: %w", err)
	}

	return records, nil
}

// Get retrieves a timesheet by ID
func (r *TimesheetRepository) Get(ctx context.Context, id int) (*timesheet.Record, error) {
	query := `
		SELECT id, date, project, hours, details, status, client
		FROM timesheets
		WHERE id = ?
	`

	rec, err := scanTimesheet(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get timesheet: %w", err)
	}

	return &rec, nil
}

// Create inserts a timesheet with the next sequential id
func (r *TimesheetRepository) Create(ctx context.Context, rec *timesheet.Record) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM timesheets`).Scan(&next); err != nil {
		return fmt.Errorf("failed to allocate timesheet id: %w", err)
	}

	query := `
		INSERT INTO timesheets (id, date, project, hours, details, status, client)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	if _, err := tx.ExecContext(ctx, query,
		next,
		timesheet.FormatDate(rec.Date),
		rec.Project,
		rec.Hours,
		rec.Details,
		rec.Status,
		rec.Client,
	); err != nil {
		return fmt.Errorf("failed to create timesheet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit timesheet: %w", err)
	}

	rec.ID = next
	return nil
}

// Update replaces every column of an existing timesheet
func (r *TimesheetRepository) Update(ctx context.Context, rec *timesheet.Record) error {
	query := `
		UPDATE timesheets
		SET date = ?, project = ?, hours = ?, details = ?, status = ?, client = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		timesheet.FormatDate(rec.Date),
		rec.Project,
		rec.Hours,
		rec.Details,
		rec.Status,
		rec.Client,
		rec.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update timesheet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// Delete deletes a timesheet
func (r *TimesheetRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM timesheets WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete timesheet: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}
