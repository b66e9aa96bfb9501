package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/target/timetracker/internal/domain/auth"
	"github.com/target/timetracker/internal/ports"
	"github.com/target/timetracker/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth     *service.AuthService
	Accounts *service.AccountService
	Entries  *service.EntryService
	Users    *service.UserService

	Codec        ports.SessionCodec
	Renderer     *TemplateRenderer
	CookieSecure bool
	CookieDomain string
	// Optional: readiness probes served on /readyz.
	HealthChecks []HealthCheck
	// Optional: request and login metrics.
	Metrics MetricsSink
	Logger  *slog.Logger
}

// NewRouter builds the handler tree:
//
//	RequestID → Logging → Metrics → Recover → { /healthz, /readyz, Sessions → RequireLogin → app }
//
// where app serves /admin/ behind RequireAuthority(ADMINISTRATOR).
func NewRouter(services RouterServices) http.Handler {
	if services.Auth == nil || services.Accounts == nil || services.Entries == nil || services.Users == nil {
		panic("NewRouter: all services are required") //nolint:forbidigo // Fail fast during server setup.
	}
	if services.Codec == nil || services.Renderer == nil {
		panic("NewRouter: Codec and Renderer are required") //nolint:forbidigo // Fail fast during server setup.
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := services.Metrics
	if metrics == nil {
		metrics = nopMetrics{}
	}

	authH := &AuthHandlers{Svc: services.Auth, Renderer: services.Renderer, Metrics: metrics, Logger: logger}
	entryH := &EntryHandlers{Svc: services.Entries, Renderer: services.Renderer, Logger: logger}
	settingsH := &SettingsHandlers{Svc: services.Accounts, Renderer: services.Renderer, Logger: logger}
	adminH := &AdminHandlers{Svc: services.Users, Renderer: services.Renderer, Logger: logger}

	app := http.NewServeMux()
	app.Handle("GET /{$}", http.RedirectHandler(HomePath, http.StatusFound))
	registerAuthRoutes(app, authH)
	app.HandleFunc("GET "+HomePath, entryH.Home)
	registerEntryRoutes(app, entryRoutes{Base: "", Handlers: entryH, Owner: sessionOwner})
	registerSettingsRoutes(app, settingsH)

	admin := http.NewServeMux()
	registerAdminRoutes(admin, adminH, entryH)
	app.Handle(AdminPrefix+"/", RequireAuthority(domainauth.RoleAdministrator, logger)(admin))

	pipeline := Chain(app,
		Sessions(SessionOptions{
			Codec:  services.Codec,
			Secure: services.CookieSecure,
			Domain: services.CookieDomain,
			Logger: logger,
		}),
		RequireLogin(logger),
	)

	root := http.NewServeMux()
	root.HandleFunc("GET /healthz", healthHandler)
	root.HandleFunc("HEAD /healthz", healthHandler)
	root.Handle("GET /readyz", readyHandler(services.HealthChecks, logger))
	root.Handle("/", pipeline)

	return Chain(root, RequestID(), Logging(logger), Metrics(metrics), Recover(logger))
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers) {
	mux.HandleFunc("GET "+LoginPath, h.LoginPage)
	mux.HandleFunc("POST "+LoginPath, h.Login)
	mux.HandleFunc("GET "+LogoutPath, h.Logout)
}

func registerSettingsRoutes(mux *http.ServeMux, h *SettingsHandlers) {
	mux.HandleFunc("GET /settings", h.Page)
	mux.HandleFunc("POST /change_password", h.ChangePassword)
	mux.HandleFunc("POST /change_email", h.ChangeEmail)
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminHandlers, entries *EntryHandlers) {
	const details = AdminPrefix + "/user_details/{user_id}"
	mux.HandleFunc("GET "+AdminPrefix+"/users", h.Users)
	mux.HandleFunc("GET "+details, h.UserDetails)
	mux.HandleFunc("POST "+details+"/update_authority", h.UpdateAuthority)
	registerEntryRoutes(mux, entryRoutes{Base: details, Handlers: entries, Owner: pathOwner})
}

// entryRoutes groups the six entry endpoints mounted under Base.
type entryRoutes struct {
	Base     string
	Handlers *EntryHandlers
	Owner    ownerFunc
}

func registerEntryRoutes(mux *http.ServeMux, cfg entryRoutes) {
	if cfg.Handlers == nil || cfg.Owner == nil {
		panic("registerEntryRoutes: nil handlers for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}
	h := cfg.Handlers
	mux.Handle("POST "+cfg.Base+"/add_time_entry", h.AddTimeEntry(cfg.Owner))
	mux.Handle("POST "+cfg.Base+"/edit_time_entry", h.EditTimeEntry(cfg.Owner))
	mux.Handle("POST "+cfg.Base+"/delete_time_entry", h.DeleteTimeEntry(cfg.Owner))
	mux.Handle("POST "+cfg.Base+"/add_absence_entry", h.AddAbsenceEntry(cfg.Owner))
	mux.Handle("POST "+cfg.Base+"/edit_absence_entry", h.EditAbsenceEntry(cfg.Owner))
	mux.Handle("POST "+cfg.Base+"/delete_absence_entry", h.DeleteAbsenceEntry(cfg.Owner))
}
