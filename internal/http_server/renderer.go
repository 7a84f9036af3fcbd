// Package http_server
package http_server

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// TemplateRenderer holds one template set per page, each page parsed
// together with the shared layout so {{template "content" .}} resolves
// per page.
type TemplateRenderer struct {
	pages map[string]*template.Template
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	entries, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}

	renderer := &TemplateRenderer{pages: make(map[string]*template.Template)}
	for _, entry := range entries {
		name := strings.TrimSuffix(strings.TrimPrefix(entry, "templates/"), ".html")
		if name == "layout" {
			continue
		}
		page, err := template.ParseFS(templateFS, "templates/layout.html", entry)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", entry, err)
		}
		renderer.pages[name] = page
	}
	return renderer, nil
}

func (renderer *TemplateRenderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	page, ok := renderer.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %s", name)
	}
	return page.ExecuteTemplate(w, "layout", data)
}
