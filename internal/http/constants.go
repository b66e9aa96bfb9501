package httpx

// Paths the session gates redirect between.
const (
	LoginPath   = "/login"
	LogoutPath  = "/logout"
	HomePath    = "/home"
	AdminPrefix = "/admin"
)

// SessionCookieName is the cookie that carries the encoded session identity.
const SessionCookieName = "token"

// RequestIDHeader is read from and echoed on every response.
const RequestIDHeader = "X-Request-ID"

// Page identifiers used by the layout to pick the content template and highlight navigation.
const (
	PageLogin       = "login"
	PageHome        = "home"
	PageSettings    = "settings"
	PageUsers       = "users"
	PageUserDetails = "user_details"
)

//nolint:gochecknoglobals // static read-only lookup for templates
var contentTemplates = map[string]string{
	PageLogin:       "login-content",
	PageHome:        "home-content",
	PageSettings:    "settings-content",
	PageUsers:       "users-content",
	PageUserDetails: "user-details-content",
}

// ContentTemplateFor returns the content template for the given page.
// Falls back to home-content for unknown pages.
func ContentTemplateFor(page string) string {
	if name, ok := contentTemplates[page]; ok {
		return name
	}
	return "home-content"
}
