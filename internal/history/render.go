package history

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer paints a View as HTML in either layout.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded layouts.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the view. Output is buffered so a template error writes nothing.
func (r *Renderer) Render(w io.Writer, v View) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "history", v); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}

// HTML renders the view into a fragment for embedding in a page.
func (r *Renderer) HTML(v View) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, v); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}
