package httpx

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/target/timetracker/internal/util"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// TemplateRenderer renders HTML pages into the shared layout.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Optional: defaults to the embedded templates
	Logger     *slog.Logger // Optional
}

// NewTemplateRenderer parses every *.tmpl file of the configured filesystem.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	fsys := cfg.TemplateFS
	if fsys == nil {
		sub, err := fs.Sub(templateFS, "templates")
		if err != nil {
			return nil, fmt.Errorf("embedded templates: %w", err)
		}
		fsys = sub
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	renderer := &TemplateRenderer{logger: logger.With("component", "renderer")}
	var t *template.Template
	t, err := template.New("root").Funcs(templateFuncs(&t)).ParseFS(fsys, "*.tmpl")
	if err != nil {
		renderer.logger.Error("template parsing failed", slog.Any("error", err))
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

// Render writes the layout with the content template of data["CurrentPage"].
func (r *TemplateRenderer) Render(w http.ResponseWriter, code int, data map[string]any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, "layout", data); err != nil {
		r.logger.Error("template execution failed",
			slog.Any("page", data["CurrentPage"]),
			slog.Any("error", err),
		)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("failed to write rendered template", slog.Any("error", err))
		return err
	}
	return nil
}

func templateFuncs(t **template.Template) template.FuncMap {
	return template.FuncMap{
		"renderSection": func(page string, data any) (template.HTML, error) {
			if t == nil || *t == nil {
				return "", errors.New("template not initialized")
			}
			var buf bytes.Buffer
			if err := (*t).ExecuteTemplate(&buf, ContentTemplateFor(page), data); err != nil {
				return "", err
			}
			// #nosec G203 - produced by our own html/template set; values were escaped above.
			return template.HTML(buf.String()), nil
		},
		"minutes": util.FormatMinutes,
		"days":    util.FormatDays,
		"deref": func(v any) any {
			switch p := v.(type) {
			case *string:
				if p == nil {
					return ""
				}
				return *p
			case *int64:
				if p == nil {
					return int64(0)
				}
				return *p
			default:
				return v
			}
		},
	}
}
