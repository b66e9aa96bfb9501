package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/timetracker/internal/domain/model"
	"github.com/target/timetracker/internal/service"
)

// EntryHandlers serves the time and absence entry endpoints.
// The same handlers back the user's own routes and the admin routes; an ownerFunc picks the user.
type EntryHandlers struct {
	Svc      *service.EntryService
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

type deleteEntryRequest struct {
	ID *int64 `json:"id"`
}

// Home renders the logged-in user's entries and totals.
// GET /home.
func (h *EntryHandlers) Home(w http.ResponseWriter, r *http.Request) {
	id, ok := identityOrLogin(w, r)
	if !ok {
		return
	}
	ov, err := h.Svc.Overview(r.Context(), id.ID)
	if err != nil {
		h.logger().ErrorContext(r.Context(), "load entries", "user_id", id.ID, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Home", CurrentPage: PageHome}).
		With("Overview", ov).
		With("EntryBase", "").
		Build()
	_ = h.Renderer.Render(w, http.StatusOK, data)
}

// AddTimeEntry handles POST .../add_time_entry.
func (h *EntryHandlers) AddTimeEntry(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := owner(w, r)
		if !ok {
			return
		}
		var e model.TimeEntry
		if !h.decode(w, r, &e) {
			return
		}
		if _, err := h.Svc.AddTimeEntry(r.Context(), userID, e); err != nil {
			WriteError(w, r, ErrorParams{Err: err, Logger: h.logger(), Op: "add time entry"})
			return
		}
		WriteStatus(w, http.StatusOK, StatusOK)
	}
}

// EditTimeEntry handles POST .../edit_time_entry.
func (h *EntryHandlers) EditTimeEntry(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := owner(w, r)
		if !ok {
			return
		}
		var e model.TimeEntry
		if !h.decode(w, r, &e) {
			return
		}
		if err := h.Svc.EditTimeEntry(r.Context(), userID, e); err != nil {
			WriteError(w, r, ErrorParams{Err: err, Logger: h.logger(), Op: "edit time entry"})
			return
		}
		WriteStatus(w, http.StatusOK, StatusOK)
	}
}

// DeleteTimeEntry handles POST .../delete_time_entry.
func (h *EntryHandlers) DeleteTimeEntry(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := owner(w, r)
		if !ok {
			return
		}
		entryID, ok := h.decodeDelete(w, r)
		if !ok {
			return
		}
		if err := h.Svc.DeleteTimeEntry(r.Context(), userID, entryID); err != nil {
			WriteError(w, r, ErrorParams{Err: err, Logger: h.logger(), Op: "delete time entry"})
			return
		}
		WriteStatus(w, http.StatusOK, StatusOK)
	}
}

// AddAbsenceEntry handles POST .../add_absence_entry.
func (h *EntryHandlers) AddAbsenceEntry(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := owner(w, r)
		if !ok {
			return
		}
		var e model.AbsenceEntry
		if !h.decode(w, r, &e) {
			return
		}
		if _, err := h.Svc.AddAbsenceEntry(r.Context(), userID, e); err != nil {
			WriteError(w, r, ErrorParams{Err: err, Logger: h.logger(), Op: "add absence entry"})
			return
		}
		WriteStatus(w, http.StatusOK, StatusOK)
	}
}

// EditAbsenceEntry handles POST .../edit_absence_entry.
func (h *EntryHandlers) EditAbsenceEntry(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := owner(w, r)
		if !ok {
			return
		}
		var e model.AbsenceEntry
		if !h.decode(w, r, &e) {
			return
		}
		if err := h.Svc.EditAbsenceEntry(r.Context(), userID, e); err != nil {
			WriteError(w, r, ErrorParams{Err: err, Logger: h.logger(), Op: "edit absence entry"})
			return
		}
		WriteStatus(w, http.StatusOK, StatusOK)
	}
}

// DeleteAbsenceEntry handles POST .../delete_absence_entry.
func (h *EntryHandlers) DeleteAbsenceEntry(owner ownerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := owner(w, r)
		if !ok {
			return
		}
		entryID, ok := h.decodeDelete(w, r)
		if !ok {
			return
		}
		if err := h.Svc.DeleteAbsenceEntry(r.Context(), userID, entryID); err != nil {
			WriteError(w, r, ErrorParams{Err: err, Logger: h.logger(), Op: "delete absence entry"})
			return
		}
		WriteStatus(w, http.StatusOK, StatusOK)
	}
}

func (h *EntryHandlers) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	limitBody(w, r, maxJSONBody)
	return DecodeJSON(w, r, dst)
}

func (h *EntryHandlers) decodeDelete(w http.ResponseWriter, r *http.Request) (int64, bool) {
	var req deleteEntryRequest
	if !h.decode(w, r, &req) {
		return 0, false
	}
	if req.ID == nil {
		WriteStatus(w, http.StatusBadRequest, model.ErrEntryIDMissing.Error())
		return 0, false
	}
	return *req.ID, true
}

func (h *EntryHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
