package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/timetracker/internal/http/validation"
	"github.com/target/timetracker/internal/service"
)

// SettingsHandlers serves the profile page and the password and email changes.
type SettingsHandlers struct {
	Svc      *service.AccountService
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type changeEmailRequest struct {
	NewEmail string `json:"new_email"`
}

// Page renders the settings page.
// GET /settings.
func (h *SettingsHandlers) Page(w http.ResponseWriter, r *http.Request) {
	if _, ok := identityOrLogin(w, r); !ok {
		return
	}
	data := NewTemplateData(r, PageMeta{Title: "Settings", CurrentPage: PageSettings}).Build()
	_ = h.Renderer.Render(w, http.StatusOK, data)
}

// ChangePassword replaces the password of the logged-in user.
// POST /change_password.
func (h *SettingsHandlers) ChangePassword(w http.ResponseWriter, r *http.Request) {
	id, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	limitBody(w, r, maxJSONBody)
	var req changePasswordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	v := validation.New().
		Validate("current_password", req.CurrentPassword, validation.Required("Current password", 128)).
		Validate("new_password", req.NewPassword, validation.Required("New password", 128), validation.StrongPassword("New password"))
	if msg := v.First("current_password", "new_password"); msg != "" {
		WriteStatus(w, http.StatusBadRequest, msg)
		return
	}

	err := h.Svc.ChangePassword(r.Context(), id.ID, service.ChangePasswordInput{
		Current: req.CurrentPassword,
		New:     req.NewPassword,
		Confirm: req.ConfirmPassword,
	})
	if err != nil {
		WriteError(w, r, ErrorParams{Err: err, Logger: h.logger(), Op: "change password"})
		return
	}
	WriteStatus(w, http.StatusOK, StatusSuccess)
}

// ChangeEmail stores a new email and re-issues the session with it.
// POST /change_email.
func (h *SettingsHandlers) ChangeEmail(w http.ResponseWriter, r *http.Request) {
	id, ok := identityOrUnauthorized(w, r)
	if !ok {
		return
	}
	limitBody(w, r, maxJSONBody)
	var req changeEmailRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	if msg := validation.New().Validate("new_email", req.NewEmail, validation.Email("Email")).First(); msg != "" {
		WriteStatus(w, http.StatusBadRequest, msg)
		return
	}

	updated, err := h.Svc.ChangeEmail(r.Context(), id, req.NewEmail)
	if err != nil {
		WriteError(w, r, ErrorParams{Err: err, Logger: h.logger(), Op: "change email"})
		return
	}
	if state, found := SessionFromContext(r.Context()); found {
		state.Set(updated)
	}
	WriteStatus(w, http.StatusOK, StatusSuccess)
}

func (h *SettingsHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}
