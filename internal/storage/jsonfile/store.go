// Package jsonfile persists timesheet records as a single JSON document on disk.
//
// The document is an array of objects keyed Id, Date, Project, Hours, Details,
// Status and Client, with dates written as 2006-01-02T15:04:05. Every operation
// reads the whole document; writes replace it through a temp file and rename.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
	"github.com/kulesy/TimePro-MCP/internal/repository"
)

const persistedDateLayout = "2006-01-02T15:04:05"

// Store implements timesheet.Repository on a JSON file.
type Store struct {
	path string
}

// New returns a store backed by path, creating its directory if needed.
// A missing or blank file is treated as an empty collection.
func New(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}
	return &Store{path: path}, nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

type fileRecord struct {
	ID      int     `json:"Id"`
	Date    string  `json:"Date"`
	Project string  `json:"Project"`
	Hours   float64 `json:"Hours"`
	Details string  `json:"Details"`
	Status  string  `json:"Status"`
	Client  string  `json:"Client"`
}

// List returns every record in file order.
func (s *Store) List(ctx context.Context) ([]timesheet.Record, error) {
	return s.load(ctx)
}

// Get returns the record with the given id.
func (s *Store) Get(ctx context.Context, id int) (*timesheet.Record, error) {
	records, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return nil, repository.ErrNotFound
	}
	rec := records[idx]
	return &rec, nil
}

// Create appends rec with the next sequential id.
func (s *Store) Create(ctx context.Context, rec *timesheet.Record) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	next := 1
	for _, r := range records {
		if r.ID >= next {
			next = r.ID + 1
		}
	}
	rec.ID = next
	return s.save(append(records, *rec))
}

// Update replaces the record whose id matches rec.ID.
func (s *Store) Update(ctx context.Context, rec *timesheet.Record) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(records, rec.ID)
	if idx < 0 {
		return repository.ErrNotFound
	}
	records[idx] = *rec
	return s.save(records)
}

// Delete removes the record with the given id.
func (s *Store) Delete(ctx context.Context, id int) error {
	records, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(records, id)
	if idx < 0 {
		return repository.ErrNotFound
	}
	return s.save(slices.Delete(records, idx, idx+1))
}

func (s *Store) load(ctx context.Context) ([]timesheet.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []timesheet.Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return []timesheet.Record{}, nil
	}

	var raw []fileRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", repository.ErrCorrupt, s.path, err)
	}

	records := make([]timesheet.Record, 0, len(raw))
	for _, fr := range raw {
		date, err := timesheet.ParseDate(fr.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", repository.ErrCorrupt, fr.ID, err)
		}
		records = append(records, timesheet.Record{
			ID:      fr.ID,
			Date:    date,
			Project: fr.Project,
			Hours:   fr.Hours,
			Details: fr.Details,
			Status:  fr.Status,
			Client:  fr.Client,
		})
	}
	return records, nil
}

func (s *Store) save(records []timesheet.Record) error {
	raw := make([]fileRecord, 0, len(records))
	for _, rec := range records {
		raw = append(raw, fileRecord{
			ID:      rec.ID,
			Date:    rec.Date.Format(persistedDateLayout),
			Project: rec.Project,
			Hours:   rec.Hours,
			Details: rec.Details,
			Status:  rec.Status,
			Client:  rec.Client,
		})
	}
	data, err := json.MarshalIndent(raw, "", "  ")
	if err != nil {
		return fmt.Errorf("encode timesheets: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func indexOf(records []timesheet.Record, id int) int {
	return slices.IndexFunc(records, func(r timesheet.Record) bool { return r.ID == id })
}
