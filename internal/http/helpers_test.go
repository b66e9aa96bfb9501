package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/target/timetracker/internal/adapters/cookiesession"
	domainauth "github.com/target/timetracker/internal/domain/auth"
	"github.com/target/timetracker/internal/mocks"
	"github.com/target/timetracker/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef-test"

// testApp is a router wired to real services over gomock repositories.
type testApp struct {
	handler  http.Handler
	codec    *cookiesession.Codec
	users    *mocks.MockUserRepository
	times    *mocks.MockTimeEntryRepository
	absences *mocks.MockAbsenceEntryRepository
	throttle *mocks.MockLoginThrottle
	metrics  *recordingMetrics
}

// recordingMetrics captures what the router reports.
type recordingMetrics struct {
	mu       sync.Mutex
	requests []int
	logins   []string
}

func (m *recordingMetrics) RecordRequest(_ string, status int, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, status)
}

func (m *recordingMetrics) RecordLogin(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logins = append(m.logins, outcome)
}

func newTestCodec(t *testing.T) *cookiesession.Codec {
	t.Helper()
	codec, err := cookiesession.NewCodec([]byte(testSecret), SessionCookieName)
	require.NoError(t, err)
	return codec
}

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer(TemplateRendererConfig{Logger: discardLogger()})
	require.NoError(t, err)
	return r
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctrl := gomock.NewController(t)
	app := &testApp{
		codec:    newTestCodec(t),
		users:    mocks.NewMockUserRepository(ctrl),
		times:    mocks.NewMockTimeEntryRepository(ctrl),
		absences: mocks.NewMockAbsenceEntryRepository(ctrl),
		throttle: mocks.NewMockLoginThrottle(ctrl),
		metrics:  &recordingMetrics{},
	}
	logger := discardLogger()
	entries := service.NewEntryService(service.EntryServiceOptions{
		TimeEntries: app.times, AbsenceEntries: app.absences, Logger: logger,
	})
	app.handler = NewRouter(RouterServices{
		Auth:     service.NewAuthService(service.AuthServiceOptions{Users: app.users, Throttle: app.throttle, Logger: logger}),
		Accounts: service.NewAccountService(service.AccountServiceOptions{Users: app.users, Logger: logger}),
		Entries:  entries,
		Users:    service.NewUserService(service.UserServiceOptions{Users: app.users, Entries: entries, Logger: logger}),
		Codec:    app.codec,
		Renderer: newTestRenderer(t),
		Metrics:  app.metrics,
		Logger:   logger,
	})
	return app
}

// cookieFor returns a valid session cookie for id.
func (a *testApp) cookieFor(t *testing.T, id domainauth.Identity) *http.Cookie {
	t.Helper()
	v, err := a.codec.Encode(id)
	require.NoError(t, err)
	return &http.Cookie{Name: SessionCookieName, Value: v}
}

type testRequest struct {
	Method string
	Path   string
	Body   any // JSON-encoded unless it is a string
	Cookie *http.Cookie
}

func (a *testApp) do(t *testing.T, req testRequest) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	switch b := req.Body.(type) {
	case nil:
	case string:
		body = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}
	r := httptest.NewRequest(req.Method, req.Path, body)
	if _, isForm := req.Body.(string); isForm {
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	if req.Cookie != nil {
		r.AddCookie(req.Cookie)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, r)
	return rec
}

// responseCookie returns the session cookie set by rec, or nil.
func responseCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName {
			return c
		}
	}
	return nil
}

func decodeStatus(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["status"]
}
