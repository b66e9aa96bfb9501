package httpx

import (
	"net/http"
)

// PageMeta contains page metadata shared by the layout.
type PageMeta struct {
	Title       string
	CurrentPage string
}

// basePageData builds the layout data from the request's session identity.
func basePageData(r *http.Request, meta PageMeta) map[string]any {
	data := map[string]any{
		"Title":           meta.Title,
		"CurrentPage":     meta.CurrentPage,
		"IsAuthenticated": false,
		"IsAdmin":         false,
	}
	if id, ok := IdentityFromContext(r.Context()); ok {
		data["User"] = id
		data["IsAuthenticated"] = true
		data["IsAdmin"] = id.IsAdministrator()
	}
	return data
}

// TemplateDataBuilder provides a fluent API for building template data maps.
type TemplateDataBuilder struct {
	data map[string]any
}

// NewTemplateData creates a new TemplateDataBuilder initialized with basePageData.
func NewTemplateData(r *http.Request, meta PageMeta) *TemplateDataBuilder {
	return &TemplateDataBuilder{data: basePageData(r, meta)}
}

// With sets a single key.
func (b *TemplateDataBuilder) With(key string, value any) *TemplateDataBuilder {
	b.data[key] = value
	return b
}

// WithError sets the message shown in the error toast.
func (b *TemplateDataBuilder) WithError(msg string) *TemplateDataBuilder {
	if msg != "" {
		b.data["Error"] = msg
	}
	return b
}

// Build returns the assembled data map.
func (b *TemplateDataBuilder) Build() map[string]any { return b.data }
