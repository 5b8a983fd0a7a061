package handlers

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/BradenHooton/gestaopro/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

var (
	loginView     = template.Must(template.ParseFS(templateFS, "templates/login.html", "templates/layout.html"))
	dashboardView = template.Must(template.ParseFS(templateFS, "templates/dashboard.html", "templates/layout.html"))
)

// pageData is shared by every view
type pageData struct {
	Title string
	Year  int

	Error string // Login form only
	Login string // Echoed back into the login field

	User *models.Snapshot // Dashboard only
}

func newPageData(title string) pageData {
	return pageData{Title: title, Year: time.Now().Year()}
}

// render executes tmpl into a buffer first so a template failure never leaves a
// half-written page behind
func render(w http.ResponseWriter, tmpl *template.Template, status int, data pageData) error {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
