package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/target/timetracker/internal/domain/auth"
	"github.com/target/timetracker/internal/ports"
)

// Middleware wraps a handler.
type Middleware func(http.Handler) http.Handler

// Chain applies mws so that the first one runs outermost.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.InfoContext(r.Context(), "http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", RequestIDFromContext(r.Context())),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *respWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// MetricsSink receives request and login measurements.
type MetricsSink interface {
	RecordRequest(method string, status int, d time.Duration)
	RecordLogin(outcome string)
}

type nopMetrics struct{}

func (nopMetrics) RecordRequest(string, int, time.Duration) {}
func (nopMetrics) RecordLogin(string)                       {}

// Metrics returns a middleware that reports every request to sink.
func Metrics(sink MetricsSink) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &respWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			sink.RecordRequest(r.Method, ww.status, time.Since(start))
		})
	}
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					if err == http.ErrAbortHandler { //nolint:errorlint // sentinel is compared by identity
						panic(err)
					}
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID assigns a request id, keeping a sane one supplied by the client.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
			if id == "" || len(id) > 64 {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(contextWithRequestID(r.Context(), id)))
		})
	}
}

// SessionOptions configures the session cookie.
type SessionOptions struct {
	Codec  ports.SessionCodec // Required
	Secure bool
	Domain string
	Logger *slog.Logger
}

// Sessions decodes the session cookie into a SessionState for downstream handlers and
// writes it back when a handler changed it. Undecodable cookies are treated as absent and expired.
func Sessions(opts SessionOptions) Middleware {
	if opts.Codec == nil {
		panic("SessionCodec is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := &SessionState{}
			if raw, found := sessionToken(r, opts.Codec.CookieName()); found {
				if id, ok := opts.Codec.Decode(raw); ok {
					state.identity = id
					state.present = true
				} else {
					logger.InfoContext(r.Context(), "discarding undecodable session cookie", "path", r.URL.Path)
					state.cleared = true
				}
			}

			sw := &sessionWriter{ResponseWriter: w, state: state, opts: opts, logger: logger, r: r}
			next.ServeHTTP(sw, r.WithContext(SetSessionInContext(r.Context(), state)))
			sw.commit()
		})
	}
}

// sessionWriter flushes the session cookie right before the header is sent.
type sessionWriter struct {
	http.ResponseWriter
	state     *SessionState
	opts      SessionOptions
	logger    *slog.Logger
	r         *http.Request
	committed bool
}

func (w *sessionWriter) WriteHeader(status int) {
	w.commit()
	w.ResponseWriter.WriteHeader(status)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

func (w *sessionWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true
	if !w.state.Dirty() {
		return
	}

	c := &http.Cookie{
		Name:     w.opts.Codec.CookieName(),
		Path:     "/",
		Domain:   w.opts.Domain,
		HttpOnly: true,
		Secure:   w.opts.Secure,
		SameSite: http.SameSiteStrictMode,
	}
	if w.state.cleared {
		c.MaxAge = -1
		http.SetCookie(w.ResponseWriter, c)
		return
	}

	value, err := w.opts.Codec.Encode(w.state.identity)
	if err != nil {
		w.logger.ErrorContext(w.r.Context(), "encode session cookie", "error", err)
		return
	}
	c.Value = value
	http.SetCookie(w.ResponseWriter, c)
}

// sessionToken returns the first non-empty cookie called name. Stale empty
// cookies left on other paths are skipped so Sessions and RequireLogin agree.
func sessionToken(r *http.Request, name string) (string, bool) {
	for _, c := range r.Cookies() {
		if c.Name == name && strings.TrimSpace(c.Value) != "" {
			return c.Value, true
		}
	}
	return "", false
}

// hasSessionToken reports whether r carries a non-empty session cookie.
// Only presence is checked; decoding happens in Sessions.
func hasSessionToken(r *http.Request) bool {
	_, ok := sessionToken(r, SessionCookieName)
	return ok
}

// RequireLogin redirects anonymous requests to the login page and logged-in
// requests for the login page to home. Everything else passes through.
func RequireLogin(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			loggedIn := hasSessionToken(r)
			onLogin := r.URL.Path == LoginPath

			switch {
			case loggedIn && onLogin:
				http.Redirect(w, r, HomePath, http.StatusFound)
			case !loggedIn && !onLogin:
				logger.InfoContext(r.Context(), "login required", "path", r.URL.Path)
				http.Redirect(w, r, LoginPath, http.StatusFound)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// RequireAuthority lets a request through only when the session role equals required.
// A session without an identity or role counts as the default role.
func RequireAuthority(required domainauth.Role, logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := domainauth.DefaultRole
			if id, ok := IdentityFromContext(r.Context()); ok {
				role = id.EffectiveRole()
			}

			if err := domainauth.CheckAuthority(string(role), string(required)); err != nil {
				level := slog.LevelInfo
				if errors.Is(err, domainauth.ErrInvalidRole) {
					level = slog.LevelWarn
				}
				logger.Log(r.Context(), level, "authority denied",
					"path", r.URL.Path,
					"role", string(role),
					"required", string(required),
					"error", err,
				)
				http.Redirect(w, r, HomePath, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
