// Package web holds the server-rendered pages: the public capture form,
// the admin login, and the admin console shell.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/pid-digital/leads-backend/internal/contacts"
	"github.com/pid-digital/leads-backend/pkg/phone"
)

//go:embed templates/*.html
var files embed.FS

// Renderer executes the embedded page templates.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"formatPhone":    phone.Format,
		"formatDateTime": contacts.FormatDateTime,
		"statusText":     contacts.StatusText,
	}).ParseFS(files, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data any) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("rendering %s: %w", name, err)
	}
	return nil
}
