package timesheet_test

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
	"github.com/kulesy/TimePro-MCP/internal/repository"
	"github.com/kulesy/TimePro-MCP/internal/repository/mocks"
	"github.com/kulesy/TimePro-MCP/internal/storage/jsonfile"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestTimesheetService_List(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimesheetRepository{}
	repo.On("List", ctx).Return([]timesheet.Record{
		{ID: 1, Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Project: "Alpha", Hours: 8},
		{ID: 2, Date: time.Date(2024, 1, 16, 9, 30, 0, 0, time.UTC), Project: "Beta", Hours: 4.5},
	}, nil)

	svc := timesheet.NewService(repo, nil)
	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "2024-01-15", list[0].Date)
	require.Equal(t, "2024-01-16", list[1].Date)
	require.Equal(t, 4.5, list[1].Hours)
}

func TestTimesheetService_List_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimesheetRepository{}
	repo.On("List", ctx).Return([]timesheet.Record{}, nil)

	list, err := timesheet.NewService(repo, nil).List(ctx)
	require.NoError(t, err)
	require.NotNil(t, list)
	require.Empty(t, list)
}

func TestTimesheetService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimesheetRepository{}
	repo.On("Get", ctx, 42).Return(nil, repository.ErrNotFound)

	_, err := timesheet.NewService(repo, nil).Get(ctx, 42)
	require.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}

func TestTimesheetService_Get_RepositoryFailure(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimesheetRepository{}
	repo.On("Get", ctx, 1).Return(nil, repository.ErrCorrupt)

	_, err := timesheet.NewService(repo, nil).Get(ctx, 1)
	require.ErrorIs(t, err, repository.ErrCorrupt)
	require.NotErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}

func TestTimesheetService_Create_NormalizesDate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimesheetRepository{}
	repo.On("Create", ctx, mock.AnythingOfType("*timesheet.Record")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*timesheet.Record).ID = 7
		}).
		Return(nil)

	svc := timesheet.NewService(repo, nil)
	ts, err := svc.Create(ctx, timesheet.Input{
		Date:    "2024-03-05T00:00:00",
		Project: "Alpha",
		Hours:   6,
		Details: "Planning",
		Status:  timesheet.StatusPending,
		Client:  "Acme",
	})
	require.NoError(t, err)
	require.Equal(t, 7, ts.ID)
	require.Equal(t, "2024-03-05", ts.Date)
	require.Equal(t, "Acme", ts.Client)
	repo.AssertExpectations(t)
}

func TestTimesheetService_Create_InvalidDate(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimesheetRepository{}

	_, err := timesheet.NewService(repo, nil).Create(ctx, timesheet.Input{Date: "yesterday", Project: "Alpha", Hours: 1})
	require.ErrorIs(t, err, timesheet.ErrInvalidDate)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTimesheetService_Update(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimesheetRepository{}
	repo.On("Update", ctx, mock.MatchedBy(func(rec *timesheet.Record) bool {
		return rec.ID == 3 && rec.Project == "Gamma"
	})).Return(nil)

	ts, err := timesheet.NewService(repo, nil).Update(ctx, 3, timesheet.Input{Date: "2024-02-01", Project: "Gamma", Hours: 2})
	require.NoError(t, err)
	require.Equal(t, 3, ts.ID)
	require.Equal(t, "2024-02-01", ts.Date)
}

func TestTimesheetService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimesheetRepository{}
	repo.On("Update", ctx, mock.Anything).Return(repository.ErrNotFound)

	_, err := timesheet.NewService(repo, nil).Update(ctx, 3, timesheet.Input{Date: "2024-02-01", Project: "Gamma", Hours: 2})
	require.ErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}

func TestTimesheetService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.TimesheetRepository{}
	repo.On("Delete", ctx, 1).Return(nil)
	repo.On("Delete", ctx, 2).Return(repository.ErrNotFound)
	repo.On("Delete", ctx, 3).Return(errors.New("disk full"))

	svc := timesheet.NewService(repo, nil)
	require.NoError(t, svc.Delete(ctx, 1))
	require.ErrorIs(t, svc.Delete(ctx, 2), timesheet.ErrTimesheetNotFound)

	err := svc.Delete(ctx, 3)
	require.Error(t, err)
	require.NotErrorIs(t, err, timesheet.ErrTimesheetNotFound)
}

func TestTimesheetService_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	store, err := jsonfile.New(filepath.Join(t.TempDir(), "timesheets.json"))
	require.NoError(t, err)
	svc := timesheet.NewService(store, nil)

	const n = 25
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := svc.Create(ctx, timesheet.Input{
				Date:    "2024-01-15",
				Project: fmt.Sprintf("Project %d", i),
				Hours:   1,
			})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	list, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, n)

	ids := make([]int, 0, n)
	projects := make(map[string]bool, n)
	for _, ts := range list {
		ids = append(ids, ts.ID)
		projects[ts.Project] = true
	}
	sort.Ints(ids)
	for i, id := range ids {
		require.Equal(t, i+1, id)
	}
	require.Len(t, projects, n)
}

func TestParseDate(t *testing.T) {
	cases := []string{
		"2024-01-15",
		"2024-01-15T00:00:00",
		"2024-01-15T10:00:00Z",
		"01/15/2024",
		"2024/01/15",
		" 2024-01-15 ",
	}
	for _, raw := range cases {
		got, err := timesheet.ParseDate(raw)
		require.NoError(t, err, raw)
		require.Equal(t, "2024-01-15", timesheet.FormatDate(got), raw)
	}

	_, err := timesheet.ParseDate("")
	require.ErrorIs(t, err, timesheet.ErrInvalidDate)
}
