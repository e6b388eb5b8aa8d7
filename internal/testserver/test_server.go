// Package testserver starts the full HTTP stack over a throwaway store.
package testserver

import (
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
	"github.com/kulesy/TimePro-MCP/internal/mcp"
	"github.com/kulesy/TimePro-MCP/internal/sqlite"
	"github.com/kulesy/TimePro-MCP/internal/storage/jsonfile"
	"github.com/kulesy/TimePro-MCP/internal/transport"
	"github.com/stretchr/testify/require"
)

type TestServer struct {
	Server   *httptest.Server
	Service  *timesheet.Service
	DataPath string
}

// APIBase returns the base URL the bridge is pointed at.
func (ts *TestServer) APIBase() string {
	return ts.Server.URL + "/api"
}

// New serves from a JSON file in a temporary directory.
func New(t *testing.T) *TestServer {
	t.Helper()

	path := filepath.Join(t.TempDir(), "Data", "timesheets.json")
	store, err := jsonfile.New(path)
	require.NoError(t, err)

	ts := start(t, store)
	ts.DataPath = path
	return ts
}

// NewSQLite serves from an in-memory SQLite database.
func NewSQLite(t *testing.T) *TestServer {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { _ = db.Close() })

	return start(t, sqlite.NewTimesheetRepository(db))
}

func start(t *testing.T, repo timesheet.Repository) *TestServer {
	t.Helper()

	svc := timesheet.NewService(repo, nil)
	handler := mcp.NewHandler(svc, nil)
	server := httptest.NewServer(transport.NewServer(handler, svc, nil))
	t.Cleanup(server.Close)

	return &TestServer{Server: server, Service: svc}
}
