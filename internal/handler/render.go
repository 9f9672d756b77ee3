// Package handler contains the HTTP handlers for the public site, the
// contact API and the admin dashboard.
//
// Pages are server-rendered: each page template is parsed together with
// base.html once at startup and executed per request.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Page names. Each has a <name>.html template.
const (
	PageHome      = "home"
	PageAbout     = "about"
	PagePortfolio = "portfolio"
	PageService   = "service"
	PageContact   = "contact"
	PageBlog      = "blog"
	PagePrivacy   = "privacy"
	PageError     = "error"
	PageLogin     = "login"
	PageAdmin     = "admin"
)

var pages = []string{
	PageHome, PageAbout, PagePortfolio, PageService, PageContact,
	PageBlog, PagePrivacy, PageError, PageLogin, PageAdmin,
}

// PageMeta is the <head> metadata of a page.
type PageMeta struct {
	Title       string
	Description string
	Keywords    string
	URL         string // canonical and og:url; empty when no base URL is set
}

// View is the data every template receives.
type View struct {
	Meta      PageMeta
	SiteName  string
	Year      int
	RequestID string
	Admin     bool
	Flashes   Flashes
	Data      any
}

// Renderer executes the page templates.
type Renderer struct {
	pages    map[string]*template.Template
	siteName string
	baseURL  string
	logger   *slog.Logger
}

var funcs = template.FuncMap{
	"join": strings.Join,
	"date": func(t time.Time) string { return t.Format("Jan 2, 2006") },
	"isoDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format(time.DateOnly)
	},
	"isoTime":  func(t time.Time) string { return t.Format(time.RFC3339) },
	"dateTime": func(t time.Time) string { return t.Format("Jan 2, 2006 15:04 MST") },
}

// NewRenderer parses base.html plus every page template from fsys.
// siteName is shown in titles; baseURL (no trailing slash) prefixes
// canonical URLs.
func NewRenderer(fsys fs.FS, siteName, baseURL string, logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		pages:    make(map[string]*template.Template, len(pages)),
		siteName: siteName,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
		logger:   logger,
	}
	for _, name := range pages {
		t, err := template.New(name).Funcs(funcs).ParseFS(fsys, "base.html", name+".html")
		if err != nil {
			return nil, fmt.Errorf("handler: parsing %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

// URL returns the absolute URL of path on this site, or "" without a base URL.
func (r *Renderer) URL(path string) string {
	if r.baseURL == "" {
		return ""
	}
	return r.baseURL + path
}

// Render writes page with status. The template is executed into a buffer
// first so a failing template never leaves a half-written page.
func (r *Renderer) Render(w http.ResponseWriter, req *http.Request, status int, page string, view View) {
	t, ok := r.pages[page]
	if !ok {
		r.logger.Error("unknown page template", slog.String("page", page))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	view.SiteName = r.siteName
	view.Year = time.Now().Year()
	if view.RequestID == "" {
		view.RequestID = chimiddleware.GetReqID(req.Context())
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", view); err != nil {
		r.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		r.logger.Debug("writing page", slog.String("error", err.Error()))
	}
}

// ErrorData is the model of the error page.
type ErrorData struct {
	Status  int
	Message string
}

// RenderError shows the generic error page. Internal details are never
// included; the request id lets the owner find the log line.
func (r *Renderer) RenderError(w http.ResponseWriter, req *http.Request, status int) {
	msg := "An error occurred while processing your request."
	if status == http.StatusNotFound {
		msg = "The page you are looking for does not exist."
	}
	r.Render(w, req, status, PageError, View{
		Meta: PageMeta{Title: "Error"},
		Data: ErrorData{Status: status, Message: msg},
	})
}
