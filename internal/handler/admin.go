package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/auth"
	"github.com/vs-portfolio/portfolio/internal/service"
	"github.com/vs-portfolio/portfolio/internal/validate"
)

const (
	// AdminHome is where add/delete actions and logins land.
	AdminHome = "/Admin/Index"

	msgSomethingWrong = "Something went wrong, please try again."

	// multipart overhead allowed on top of the résumé size limit
	uploadSlack = 1 << 20
)

// AdminHandler serves the login form and the dashboard.
type AdminHandler struct {
	authn     *service.AuthService
	sessions  *auth.SessionService
	content   *service.ContentService
	resumes   *service.ResumeService
	validator *validate.Validator
	flash     *Flasher
	render    *Renderer
	logger    *slog.Logger
}

func NewAdminHandler(
	authn *service.AuthService,
	sessions *auth.SessionService,
	content *service.ContentService,
	resumes *service.ResumeService,
	validator *validate.Validator,
	flash *Flasher,
	render *Renderer,
	logger *slog.Logger,
) *AdminHandler {
	return &AdminHandler{
		authn:     authn,
		sessions:  sessions,
		content:   content,
		resumes:   resumes,
		validator: validator,
		flash:     flash,
		render:    render,
		logger:    logger,
	}
}

// === Login ===

type LoginData struct {
	Username    string
	ReturnURL   string
	Errors      []string
	FieldErrors map[string]string
}

func (h *AdminHandler) HandleLoginForm(w http.ResponseWriter, r *http.Request) {
	returnURL := auth.SafeReturnURL(r.URL.Query().Get("ReturnUrl"))
	if h.sessions.IsAdmin(r) {
		http.Redirect(w, r, orDefault(returnURL, AdminHome), http.StatusFound)
		return
	}
	h.renderLogin(w, r, http.StatusOK, LoginData{ReturnURL: returnURL})
}

// HandleLogin checks the posted credentials. Unknown user and wrong password
// get the same 401 page.
func (h *AdminHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, LoginData{Errors: []string{msgSomethingWrong}})
		return
	}

	in := bindLogin(r)
	data := LoginData{
		Username:  in.Username,
		ReturnURL: auth.SafeReturnURL(r.PostFormValue("ReturnUrl")),
	}

	admin, err := h.authn.Login(r.Context(), in)
	if err != nil {
		var appErr *apperror.AppError
		switch {
		case errors.Is(err, apperror.ErrValidation) && errors.As(err, &appErr):
			data.FieldErrors = make(map[string]string, len(appErr.Violations))
			for _, v := range appErr.Violations {
				data.FieldErrors[v.Field] = v.Message
			}
			h.renderLogin(w, r, http.StatusBadRequest, data)
		case errors.Is(err, apperror.ErrUnauthorized):
			data.Errors = []string{service.MsgInvalidLogin}
			h.renderLogin(w, r, http.StatusUnauthorized, data)
		default:
			h.logger.Error("login failed", slog.String("error", err.Error()))
			data.Errors = []string{service.MsgInternalError}
			h.renderLogin(w, r, http.StatusInternalServerError, data)
		}
		return
	}

	if err := h.sessions.SetCookie(w, admin.Username); err != nil {
		h.logger.Error("issuing session cookie", slog.String("error", err.Error()))
		data.Errors = []string{service.MsgInternalError}
		h.renderLogin(w, r, http.StatusInternalServerError, data)
		return
	}
	http.Redirect(w, r, orDefault(data.ReturnURL, AdminHome), http.StatusFound)
}

func (h *AdminHandler) renderLogin(w http.ResponseWriter, r *http.Request, status int, data LoginData) {
	h.render.Render(w, r, status, PageLogin, View{
		Meta: PageMeta{Title: "Sign in"},
		Data: data,
	})
}

func (h *AdminHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.sessions.ClearCookie(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

// === Dashboard ===

type DashboardData struct {
	CurrentCvFilename string
	UploadSuccess     string
	UploadError       string
	MaxUploadMB       int64
	Lists             *service.Dashboard
}

func (h *AdminHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, http.StatusOK, DashboardData{})
}

// renderDashboard fills in the résumé name and the lists, then renders.
// A store failure shows the error page instead.
func (h *AdminHandler) renderDashboard(w http.ResponseWriter, r *http.Request, status int, data DashboardData) {
	name, err := h.resumes.CurrentName(r.Context())
	if err != nil {
		h.dashboardFailed(w, r, err)
		return
	}
	lists, err := h.content.Dashboard(r.Context())
	if err != nil {
		h.dashboardFailed(w, r, err)
		return
	}

	data.CurrentCvFilename = name
	data.Lists = lists
	data.MaxUploadMB = h.resumes.MaxBytes() >> 20

	h.render.Render(w, r, status, PageAdmin, View{
		Meta:    PageMeta{Title: "Dashboard"},
		Admin:   true,
		Flashes: h.flash.Pop(w, r),
		Data:    data,
	})
}

func (h *AdminHandler) dashboardFailed(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("loading dashboard failed", slog.String("error", err.Error()))
	h.render.RenderError(w, r, http.StatusInternalServerError)
}

// HandleUpload serves POST /Admin/Index. The dashboard is re-rendered with
// the outcome next to the upload form.
func (h *AdminHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.resumes.MaxBytes()+uploadSlack)

	up, err := h.readUpload(r)
	if err == nil {
		_, err = h.resumes.Upload(r.Context(), up)
	}
	if up.Content != nil {
		if c, ok := up.Content.(interface{ Close() error }); ok {
			c.Close()
		}
	}

	switch {
	case err == nil:
		h.renderDashboard(w, r, http.StatusOK, DashboardData{UploadSuccess: service.MsgResumeUploaded})
	case errors.Is(err, apperror.ErrValidation):
		h.renderDashboard(w, r, http.StatusBadRequest, DashboardData{UploadError: err.Error()})
	default:
		h.logger.Error("resume upload failed", slog.String("error", err.Error()))
		h.renderDashboard(w, r, http.StatusInternalServerError, DashboardData{UploadError: service.MsgInternalError})
	}
}

// readUpload extracts the NewCvFile part. A missing part is returned as an
// empty upload so the service reports it.
func (h *AdminHandler) readUpload(r *http.Request) (service.ResumeUpload, error) {
	if err := r.ParseMultipartForm(h.resumes.MaxBytes() + uploadSlack); err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			return service.ResumeUpload{}, apperror.ValidationFailed(service.ResumeField,
				fmt.Sprintf("The file must be %d MB or smaller.", h.resumes.MaxBytes()>>20))
		}
		if errors.Is(err, http.ErrNotMultipart) {
			return service.ResumeUpload{}, nil
		}
		return service.ResumeUpload{}, apperror.ValidationFailed(service.ResumeField, service.MsgSelectFile)
	}

	file, header, err := r.FormFile(service.ResumeField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return service.ResumeUpload{}, nil
		}
		return service.ResumeUpload{}, fmt.Errorf("handler: reading upload: %w", err)
	}

	return service.ResumeUpload{
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Content:     file,
	}, nil
}

// === Lists ===

func (h *AdminHandler) HandleAddEducation(w http.ResponseWriter, r *http.Request) {
	in, pre := bindEducation(h.parse(r))
	err := h.validator.Merge(pre, &in)
	if err == nil {
		_, err = h.content.AddEducation(r.Context(), in)
	}
	h.done(w, r, service.EntityEducation, "added", err)
}

func (h *AdminHandler) HandleAddExperience(w http.ResponseWriter, r *http.Request) {
	in, pre := bindExperience(h.parse(r))
	err := h.validator.Merge(pre, &in)
	if err == nil {
		_, err = h.content.AddExperience(r.Context(), in)
	}
	h.done(w, r, service.EntityExperience, "added", err)
}

func (h *AdminHandler) HandleAddProject(w http.ResponseWriter, r *http.Request) {
	in, pre := bindProject(h.parse(r))
	err := h.validator.Merge(pre, &in)
	if err == nil {
		_, err = h.content.AddProject(r.Context(), in)
	}
	h.done(w, r, service.EntityProject, "added", err)
}

func (h *AdminHandler) HandleAddBlogPost(w http.ResponseWriter, r *http.Request) {
	in, pre := bindBlogPost(h.parse(r))
	err := h.validator.Merge(pre, &in)
	if err == nil {
		_, err = h.content.AddBlogPost(r.Context(), in)
	}
	h.done(w, r, service.EntityBlogPost, "added", err)
}

func (h *AdminHandler) HandleDeleteEducation(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, service.EntityEducation, "deleted", h.content.DeleteEducation(r.Context(), h.id(r)))
}

func (h *AdminHandler) HandleDeleteExperience(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, service.EntityExperience, "deleted", h.content.DeleteExperience(r.Context(), h.id(r)))
}

func (h *AdminHandler) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, service.EntityProject, "deleted", h.content.DeleteProject(r.Context(), h.id(r)))
}

func (h *AdminHandler) HandleDeleteBlogPost(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, service.EntityBlogPost, "deleted", h.content.DeleteBlogPost(r.Context(), h.id(r)))
}

func (h *AdminHandler) HandleDeleteContact(w http.ResponseWriter, r *http.Request) {
	h.done(w, r, service.EntityContact, "deleted", h.content.DeleteContact(r.Context(), h.id(r)))
}

// parse reads the posted form. A body that cannot be parsed leaves the form
// empty, which then fails validation like any blank submission.
func (h *AdminHandler) parse(r *http.Request) *http.Request {
	if err := r.ParseForm(); err != nil {
		h.logger.Debug("parsing admin form", slog.String("error", err.Error()))
	}
	return r
}

// id takes the id from the path, falling back to the "id" form field.
func (h *AdminHandler) id(r *http.Request) string {
	if id := chi.URLParam(r, "id"); id != "" {
		return strings.TrimSpace(id)
	}
	return strings.TrimSpace(h.parse(r).PostFormValue("id"))
}

// done flashes the outcome of an add or delete and returns to the dashboard.
func (h *AdminHandler) done(w http.ResponseWriter, r *http.Request, entity, action string, err error) {
	switch {
	case err == nil:
		h.flash.Success(w, r, fmt.Sprintf("%s %s.", entity, action))
	case errors.Is(err, apperror.ErrValidation):
		msgs := apperror.MessagesOf(err)
		if len(msgs) == 0 {
			msgs = []string{err.Error()}
		}
		h.flash.Error(w, r, msgs...)
	default:
		h.logger.Error("dashboard action failed",
			slog.String("entity", entity),
			slog.String("action", action),
			slog.String("error", err.Error()),
		)
		h.flash.Error(w, r, msgSomethingWrong)
	}
	http.Redirect(w, r, AdminHome, http.StatusFound)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
