package web

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"fyyur/internal/forms"
	"fyyur/internal/logging"
	"fyyur/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var embeddedStatic embed.FS

var staticFS = mustSub(embeddedStatic, "static")

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

// pageNames are the templates rendered inside layout.html.
var pageNames = []string{
	"home", "404", "500",
	"venues", "search_venues", "show_venue", "new_venue", "edit_venue",
	"artists", "search_artists", "show_artist", "new_artist", "edit_artist",
	"shows", "new_show",
}

const (
	mediumDateLayout = "Mon 01, 02, 2006 3:04PM"
	fullDateLayout   = "Monday January, 2, 2006 at 3:04PM"
)

type renderer struct {
	pages map[string]*template.Template
}

func mustLoadTemplates() *renderer {
	funcs := template.FuncMap{
		"datetime": formatDateTime,
		"has":      contains,
	}

	r := &renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t := template.Must(template.New("layout.html").Funcs(funcs).ParseFS(templateFS,
			"templates/layout.html", "templates/partials.html", "templates/"+name+".html"))
		r.pages[name] = t
	}
	return r
}

// page is the data every template receives.
type page struct {
	Messages []string
	Data     any
	Genres   []string
	States   []string
}

// jsonPage is the JSON rendition of a page.
type jsonPage struct {
	Messages []string `json:"messages"`
	Data     any      `json:"data,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data any, messages ...string) {
	all := append(popFlash(w, r), messages...)
	if all == nil {
		all = []string{}
	}

	if wantsJSON(r) {
		writeJSON(w, status, jsonPage{Messages: all, Data: data})
		return
	}

	t, ok := s.pages.pages[name]
	if !ok {
		logging.WithContext(r.Context()).Error().Str("template", name).Msg("unknown template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", page{
		Messages: all,
		Data:     data,
		Genres:   forms.Genres,
		States:   forms.States,
	}); err != nil {
		logging.WithContext(r.Context()).Error().Err(err).Str("template", name).Msg("render template")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// formatDateTime renders a start time in the "medium" or "full" layout.
// value may be a time.Time or a string in models.DisplayTimeLayout.
func formatDateTime(value any, format string) (string, error) {
	var t time.Time
	switch v := value.(type) {
	case time.Time:
		t = v
	case string:
		parsed, err := time.Parse(models.DisplayTimeLayout, v)
		if err != nil {
			return "", fmt.Errorf("datetime: %w", err)
		}
		t = parsed
	default:
		return "", fmt.Errorf("datetime: unsupported value %T", value)
	}

	if format == "full" {
		return t.Format(fullDateLayout), nil
	}
	return t.Format(mediumDateLayout), nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
