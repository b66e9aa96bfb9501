package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateRenderer_LoginPage(t *testing.T) {
	r := newTestRenderer(t)
	req := httptest.NewRequest(http.MethodGet, LoginPath, nil)
	rec := httptest.NewRecorder()

	data := NewTemplateData(req, PageMeta{Title: "Sign in", CurrentPage: PageLogin}).WithError("<bad>").Build()
	require.NoError(t, r.Render(rec, http.StatusUnauthorized, data))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, `action="/login"`)
	assert.Contains(t, body, "&lt;bad&gt;")
	assert.NotContains(t, body, "Log out")
}

func TestTemplateRenderer_BrokenTemplate(t *testing.T) {
	fsys := fstest.MapFS{"layout.tmpl": {Data: []byte(`{{define "layout"}}{{.Missing.Field}}{{end}}`)}}
	r, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: fsys, Logger: discardLogger()})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	err = r.Render(rec, http.StatusOK, map[string]any{"Missing": nil})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestNewTemplateRenderer_ParseError(t *testing.T) {
	fsys := fstest.MapFS{"bad.tmpl": {Data: []byte(`{{define "x"}}{{end`)}}
	_, err := NewTemplateRenderer(TemplateRendererConfig{TemplateFS: fsys, Logger: discardLogger()})
	assert.Error(t, err)
}

func TestContentTemplateFor(t *testing.T) {
	assert.Equal(t, "users-content", ContentTemplateFor(PageUsers))
	assert.Equal(t, "home-content", ContentTemplateFor("nope"))
}
