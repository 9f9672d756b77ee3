package handler

import (
	"context"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"time"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/github"
	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/service"
)

const msgResumeError = "An internal error occurred while processing the resume."

// calendarTimeout bounds the GitHub call made while rendering the home page.
const calendarTimeout = 5 * time.Second

// CalendarSource fetches the contribution calendar shown on the home page.
type CalendarSource interface {
	Calendar(ctx context.Context) (*github.Calendar, error)
}

// HomeHandler serves the public pages and the résumé download.
type HomeHandler struct {
	content  *service.ContentService
	resumes  *service.ResumeService
	calendar CalendarSource // nil hides the calendar
	sessions SessionChecker
	render   *Renderer
	logger   *slog.Logger
}

// SessionChecker reports whether the request carries a valid admin session.
// The public layout uses it to show the dashboard link.
type SessionChecker interface {
	IsAdmin(r *http.Request) bool
}

func NewHomeHandler(
	content *service.ContentService,
	resumes *service.ResumeService,
	calendar CalendarSource,
	sessions SessionChecker,
	render *Renderer,
	logger *slog.Logger,
) *HomeHandler {
	return &HomeHandler{
		content:  content,
		resumes:  resumes,
		calendar: calendar,
		sessions: sessions,
		render:   render,
		logger:   logger,
	}
}

type HomeData struct {
	Calendar *github.Calendar
}

type AboutData struct {
	Educations  []model.Education
	Experiences []model.Experience
}

type PortfolioData struct {
	Projects []model.Project
}

type BlogData struct {
	Posts []model.BlogPost
}

func (h *HomeHandler) meta(title, description, keywords, path string) PageMeta {
	return PageMeta{
		Title:       title,
		Description: description,
		Keywords:    keywords,
		URL:         h.render.URL(path),
	}
}

func (h *HomeHandler) view(r *http.Request, meta PageMeta, data any) View {
	return View{Meta: meta, Admin: h.sessions != nil && h.sessions.IsAdmin(r), Data: data}
}

// HandleIndex serves / and /Home/Index.
func (h *HomeHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	meta := h.meta("Home",
		"Full-stack developer building web applications and backend services.",
		"developer, portfolio, web development, backend, full stack",
		"/")
	h.render.Render(w, r, http.StatusOK, PageHome, h.view(r, meta, HomeData{Calendar: h.fetchCalendar(r.Context())}))
}

// fetchCalendar returns nil when no source is configured or the fetch fails.
func (h *HomeHandler) fetchCalendar(ctx context.Context) *github.Calendar {
	if h.calendar == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, calendarTimeout)
	defer cancel()

	cal, err := h.calendar.Calendar(ctx)
	if err != nil {
		h.logger.Warn("github calendar unavailable", slog.String("error", err.Error()))
		return nil
	}
	return cal
}

func (h *HomeHandler) HandleAbout(w http.ResponseWriter, r *http.Request) {
	educations, err := h.content.ListEducations(r.Context())
	if err != nil {
		h.storeFailed(w, r, "about", err)
		return
	}
	experiences, err := h.content.ListExperiences(r.Context())
	if err != nil {
		h.storeFailed(w, r, "about", err)
		return
	}

	meta := h.meta("About",
		"Education and work experience.",
		"about, education, experience, resume",
		"/Home/About")
	h.render.Render(w, r, http.StatusOK, PageAbout, h.view(r, meta, AboutData{
		Educations:  educations,
		Experiences: experiences,
	}))
}

func (h *HomeHandler) HandlePortfolio(w http.ResponseWriter, r *http.Request) {
	projects, err := h.content.ListProjects(r.Context())
	if err != nil {
		h.storeFailed(w, r, "portfolio", err)
		return
	}
	meta := h.meta("Portfolio",
		"Selected projects.",
		"portfolio, projects, work",
		"/Home/Portfolio")
	h.render.Render(w, r, http.StatusOK, PagePortfolio, h.view(r, meta, PortfolioData{Projects: projects}))
}

func (h *HomeHandler) HandleService(w http.ResponseWriter, r *http.Request) {
	meta := h.meta("Services",
		"Web application development, backend APIs and consulting.",
		"services, web development, api, consulting",
		"/Home/Service")
	h.render.Render(w, r, http.StatusOK, PageService, h.view(r, meta, nil))
}

func (h *HomeHandler) HandleContact(w http.ResponseWriter, r *http.Request) {
	meta := h.meta("Contact",
		"Get in touch about a project or a position.",
		"contact, hire, email",
		"/Home/Contact")
	h.render.Render(w, r, http.StatusOK, PageContact, h.view(r, meta, nil))
}

func (h *HomeHandler) HandleBlog(w http.ResponseWriter, r *http.Request) {
	posts, err := h.content.ListBlogPosts(r.Context())
	if err != nil {
		h.storeFailed(w, r, "blog", err)
		return
	}
	meta := h.meta("Blog",
		"Posts and articles.",
		"blog, articles, posts",
		"/Home/Blog")
	h.render.Render(w, r, http.StatusOK, PageBlog, h.view(r, meta, BlogData{Posts: posts}))
}

func (h *HomeHandler) HandlePrivacy(w http.ResponseWriter, r *http.Request) {
	meta := h.meta("Privacy", "How this site handles your data.", "privacy", "/Home/Privacy")
	h.render.Render(w, r, http.StatusOK, PagePrivacy, h.view(r, meta, nil))
}

// HandleError serves /Home/Error.
func (h *HomeHandler) HandleError(w http.ResponseWriter, r *http.Request) {
	h.render.RenderError(w, r, http.StatusOK)
}

// HandleNotFound is the router's fallback.
func (h *HomeHandler) HandleNotFound(w http.ResponseWriter, r *http.Request) {
	h.render.RenderError(w, r, http.StatusNotFound)
}

// HandleDownloadCv streams the stored résumé as an attachment.
func (h *HomeHandler) HandleDownloadCv(w http.ResponseWriter, r *http.Request) {
	resume, err := h.resumes.Current(r.Context())
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			http.Error(w, service.MsgResumeNotFound, http.StatusNotFound)
			return
		}
		h.logger.Error("loading resume failed", slog.String("error", err.Error()))
		http.Error(w, msgResumeError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", model.ContentTypePDF)
	w.Header().Set("Content-Length", strconv.Itoa(len(resume.Content)))
	disposition := mime.FormatMediaType("attachment", map[string]string{"filename": resume.FileName})
	if disposition == "" {
		disposition = "attachment"
	}
	w.Header().Set("Content-Disposition", disposition)
	if !resume.UploadedAt.IsZero() {
		w.Header().Set("Last-Modified", resume.UploadedAt.UTC().Format(http.TimeFormat))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(resume.Content); err != nil {
		h.logger.Debug("writing resume", slog.String("error", err.Error()))
	}
}

func (h *HomeHandler) storeFailed(w http.ResponseWriter, r *http.Request, page string, err error) {
	h.logger.Error("loading page data failed",
		slog.String("page", page),
		slog.String("error", err.Error()),
	)
	h.render.RenderError(w, r, http.StatusInternalServerError)
}
