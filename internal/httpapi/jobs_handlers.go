package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"jobscout-engine/internal/domain"
	"jobscout-engine/internal/events"
	"jobscout-engine/internal/store"
)

type JobsHandler struct {
	DB  *store.DB
	Hub *events.Hub
}

func (h JobsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("include_ignored")
	includeIgnored := q == "1" || q == "true"

	jobs, err := h.DB.ListJobs(r.Context(), includeIgnored)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if jobs == nil {
		jobs = []domain.Record{}
	}
	writeJSON(w, jobs)
}

// ByPath dispatches /jobs/{id} sub-routes; ServeMux can't capture the id
// segment so we split the path ourselves.
func (h JobsHandler) ByPath(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/jobs/")
	idStr, action, _ := strings.Cut(rest, "/")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid job id")
		return
	}

	switch {
	case action == "" && r.Method == http.MethodDelete:
		h.delete(w, r, id)
	case action == "ignore" && r.Method == http.MethodPost:
		h.ignore(w, r, id)
	case action == "statuses" && r.Method == http.MethodGet:
		h.statuses(w, r, id)
	case action == "statuses" && r.Method == http.MethodPut:
		h.updateStatus(w, r, id)
	case action == "statuses/reset" && r.Method == http.MethodPost:
		h.resetStatuses(w, r, id)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h JobsHandler) delete(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.DB.DeleteJob(r.Context(), id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	h.Hub.Publish(events.Make(RequestIDFrom(r.Context()), events.TypeJobDeleted, map[string]any{"id": id}))
	writeJSON(w, map[string]any{"ok": true, "id": id})
}

func (h JobsHandler) ignore(w http.ResponseWriter, r *http.Request, id int64) {
	// Body is optional; default is to ignore, {"ignore": false} un-ignores.
	ignore := true
	if r.ContentLength != 0 {
		var body struct {
			Ignore *bool `json:"ignore"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
			return
		}
		if body.Ignore != nil {
			ignore = *body.Ignore
		}
	}

	if err := h.DB.SetIgnore(r.Context(), id, ignore); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if ignore {
		h.Hub.Publish(events.Make(RequestIDFrom(r.Context()), events.TypeJobIgnored, map[string]any{"id": id}))
	}
	writeJSON(w, map[string]any{"ok": true, "id": id, "ignore": ignore})
}

func (h JobsHandler) statuses(w http.ResponseWriter, r *http.Request, id int64) {
	sts, err := h.DB.ApplicationStatusesByJob(r.Context(), id)
	if err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	if sts == nil {
		sts = []store.ApplicationStatus{}
	}
	writeJSON(w, sts)
}

func (h JobsHandler) updateStatus(w http.ResponseWriter, r *http.Request, id int64) {
	var body struct {
		Status      string `json:"status"`
		Checked     bool   `json:"checked"`
		DateReached string `json:"date_reached"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", "invalid JSON: "+err.Error())
		return
	}

	if err := h.DB.UpdateApplicationStatus(r.Context(), id, body.Status, body.Checked, body.DateReached); err != nil {
		WriteError(w, r, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}

func (h JobsHandler) resetStatuses(w http.ResponseWriter, r *http.Request, id int64) {
	if err := h.DB.ResetApplicationStatuses(r.Context(), id); err != nil {
		WriteError(w, r, http.StatusInternalServerError, "db_error", err.Error())
		return
	}
	writeJSON(w, map[string]any{"ok": true})
}
