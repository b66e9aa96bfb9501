package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/target/timetracker/internal/domain/auth"
	apperrors "github.com/target/timetracker/internal/errors"
	"github.com/target/timetracker/internal/service"
)

// AdminHandlers serves the administrator pages under AdminPrefix.
type AdminHandlers struct {
	Svc      *service.UserService
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

type updateAuthorityRequest struct {
	UserID       int64  `json:"user_id"`
	NewAuthority string `json:"new_authority"`
}

// Users renders the list of all users.
// GET /admin/users.
func (h *AdminHandlers) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.Svc.List(r.Context())
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Users", CurrentPage: PageUsers}).With("Users", users).Build()
	_ = h.Renderer.Render(w, http.StatusOK, data)
}

// UserDetails renders one user's profile, entries and totals.
// GET /admin/user_details/{user_id}.
func (h *AdminHandlers) UserDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUserID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	details, err := h.Svc.Details(r.Context(), userID)
	if err != nil {
		h.pageError(w, r, err)
		return
	}
	data := NewTemplateData(r, PageMeta{Title: details.User.Username, CurrentPage: PageUserDetails}).
		With("Subject", details.User).
		With("Overview", details.Overview).
		With("EntryBase", AdminPrefix+"/user_details/"+r.PathValue("user_id")).
		With("Roles", []domainauth.Role{domainauth.RoleEmployee, domainauth.RoleAdministrator}).
		Build()
	_ = h.Renderer.Render(w, http.StatusOK, data)
}

// UpdateAuthority changes the role of a user. The body must name the same user as the path.
// When administrators change their own role the session is re-issued with it.
// POST /admin/user_details/{user_id}/update_authority.
func (h *AdminHandlers) UpdateAuthority(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathOwner(w, r)
	if !ok {
		return
	}
	limitBody(w, r, maxJSONBody)
	var req updateAuthorityRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.UserID != userID {
		WriteStatus(w, http.StatusBadRequest, "User ID mismatch")
		return
	}

	if err := h.Svc.UpdateAuthority(r.Context(), userID, req.NewAuthority); err != nil {
		WriteError(w, r, ErrorParams{Err: err, Logger: h.logger(), Op: "update authority"})
		return
	}

	if state, found := SessionFromContext(r.Context()); found {
		if id, present := state.Identity(); present && id.ID == userID {
			id.Role = domainauth.Role(req.NewAuthority)
			state.Set(id)
		}
	}
	WriteStatus(w, http.StatusOK, StatusSuccess)
}

func (h *AdminHandlers) pageError(w http.ResponseWriter, r *http.Request, err error) {
	code := apperrors.HTTPStatus(err)
	if code >= http.StatusInternalServerError {
		h.logger().ErrorContext(r.Context(), "admin page failed", "path", r.URL.Path, "error", err)
	}
	http.Error(w, http.StatusText(code), code)
}

func (h *AdminHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
