package mocks

import (
	"context"

	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
	"github.com/stretchr/testify/mock"
)

// TimesheetRepository is a mock for timesheet.Repository.
type TimesheetRepository struct {
	mock.Mock
}

func (m *TimesheetRepository) List(ctx context.Context) ([]timesheet.Record, error) {
	args := m.Called(ctx)
	if list, ok := args.Get(0).([]timesheet.Record); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimesheetRepository) Get(ctx context.Context, id int) (*timesheet.Record, error) {
	args := m.Called(ctx, id)
	if rec, ok := args.Get(0).(*timesheet.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *TimesheetRepository) Create(ctx context.Context, rec *timesheet.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *TimesheetRepository) Update(ctx context.Context, rec *timesheet.Record) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *TimesheetRepository) Delete(ctx context.Context, id int) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
