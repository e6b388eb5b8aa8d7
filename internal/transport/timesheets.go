package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kulesy/TimePro-MCP/internal/domain/timesheet"
)

func (s *Server) listTimesheets(w http.ResponseWriter, r *http.Request) {
	list, err := s.timesheets.List(r.Context())
	if err != nil {
		s.logger.Error("error retrieving timesheets", "error", err)
		writeText(w, http.StatusInternalServerError, "An error occurred while retrieving timesheets")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) getTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	ts, err := s.timesheets.Get(r.Context(), id)
	switch {
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		writeText(w, http.StatusNotFound, notFoundText(id))
	case err != nil:
		s.logger.Error("error retrieving timesheet", "id", id, "error", err)
		writeText(w, http.StatusInternalServerError, "An error occurred while retrieving the timesheet")
	default:
		writeJSON(w, http.StatusOK, ts)
	}
}

func (s *Server) createTimesheet(w http.ResponseWriter, r *http.Request) {
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	ts, err := s.timesheets.Create(r.Context(), in)
	switch {
	case errors.Is(err, timesheet.ErrInvalidDate):
		writeText(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.logger.Error("error creating timesheet", "error", err)
		writeText(w, http.StatusInternalServerError, "An error occurred while creating the timesheet")
	default:
		w.Header().Set("Location", fmt.Sprintf("/api/timesheets/%d", ts.ID))
		writeJSON(w, http.StatusCreated, ts)
	}
}

func (s *Server) updateTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	in, ok := decodeInput(w, r)
	if !ok {
		return
	}
	ts, err := s.timesheets.Update(r.Context(), id, in)
	switch {
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		writeText(w, http.StatusNotFound, notFoundText(id))
	case errors.Is(err, timesheet.ErrInvalidDate):
		writeText(w, http.StatusBadRequest, err.Error())
	case err != nil:
		s.logger.Error("error updating timesheet", "id", id, "error", err)
		writeText(w, http.StatusInternalServerError, "An error occurred while updating the timesheet")
	default:
		writeJSON(w, http.StatusOK, ts)
	}
}

func (s *Server) deleteTimesheet(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	err := s.timesheets.Delete(r.Context(), id)
	switch {
	case errors.Is(err, timesheet.ErrTimesheetNotFound):
		writeText(w, http.StatusNotFound, notFoundText(id))
	case err != nil:
		s.logger.Error("error deleting timesheet", "id", id, "error", err)
		writeText(w, http.StatusInternalServerError, "An error occurred while deleting the timesheet")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		writeText(w, http.StatusBadRequest, fmt.Sprintf("The value '%s' is not valid.", raw))
		return 0, false
	}
	return int(id), true
}

func decodeInput(w http.ResponseWriter, r *http.Request) (timesheet.Input, bool) {
	var in timesheet.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeText(w, http.StatusBadRequest, "Malformed timesheet body")
		return timesheet.Input{}, false
	}
	return in, true
}

func notFoundText(id int) string {
	return fmt.Sprintf("Timesheet with ID %d not found", id)
}
