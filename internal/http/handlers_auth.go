package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	apperrors "github.com/target/timetracker/internal/errors"
	"github.com/target/timetracker/internal/service"
)

// AuthHandlers serves the login and logout endpoints.
type AuthHandlers struct {
	Svc      *service.AuthService
	Renderer *TemplateRenderer
	Metrics  MetricsSink // Optional
	Logger   *slog.Logger
}

// Login outcomes reported to MetricsSink.
const (
	loginSuccess   = "success"
	loginInvalid   = "invalid"
	loginThrottled = "throttled"
	loginError     = "error"
)

func (h *AuthHandlers) recordLogin(outcome string) {
	if h.Metrics != nil {
		h.Metrics.RecordLogin(outcome)
	}
}

func loginOutcome(code int) string {
	switch code {
	case http.StatusUnauthorized:
		return loginInvalid
	case http.StatusTooManyRequests:
		return loginThrottled
	default:
		return loginError
	}
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage renders the login form.
// GET /login.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, http.StatusOK, "")
}

// Login verifies the submitted credentials and stores the identity in the session.
// POST /login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	limitBody(w, r, maxFormBody)
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "Invalid login form.")
		return
	}

	id, err := h.Svc.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		code := apperrors.HTTPStatus(err)
		h.recordLogin(loginOutcome(code))
		msg := "Login failed, please try again."
		var appErr *apperrors.AppError
		switch {
		case code >= http.StatusInternalServerError:
			h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		case errors.As(err, &appErr):
			msg = appErr.Message
		}
		h.renderLogin(w, r, code, msg)
		return
	}

	state, ok := SessionFromContext(r.Context())
	if !ok {
		h.logger().ErrorContext(r.Context(), "session middleware missing")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	state.Set(id)
	h.recordLogin(loginSuccess)
	http.Redirect(w, r, HomePath, http.StatusFound)
}

// Logout drops the session and returns to the login page.
// GET /logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if state, ok := SessionFromContext(r.Context()); ok {
		state.Clear()
	} else {
		clearCookie(w, SessionCookieName)
	}
	http.Redirect(w, r, LoginPath, http.StatusFound)
}

func (h *AuthHandlers) renderLogin(w http.ResponseWriter, r *http.Request, code int, msg string) {
	data := NewTemplateData(r, PageMeta{Title: "Sign in", CurrentPage: PageLogin}).WithError(msg).Build()
	_ = h.Renderer.Render(w, code, data)
}

// clearCookie expires a cookie with the attributes it was set with.
func clearCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		SameSite: http.SameSiteStrictMode,
	})
}
