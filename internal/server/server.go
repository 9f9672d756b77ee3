// Package server wires configuration, stores, services and handlers into the
// HTTP router, and runs the server until SIGINT or SIGTERM.
package server

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"

	"github.com/vs-portfolio/portfolio/internal/auth"
	"github.com/vs-portfolio/portfolio/internal/config"
	"github.com/vs-portfolio/portfolio/internal/github"
	"github.com/vs-portfolio/portfolio/internal/handler"
	"github.com/vs-portfolio/portfolio/internal/middleware"
	"github.com/vs-portfolio/portfolio/internal/notify"
	"github.com/vs-portfolio/portfolio/internal/repository"
	"github.com/vs-portfolio/portfolio/internal/service"
	"github.com/vs-portfolio/portfolio/internal/validate"
	"github.com/vs-portfolio/portfolio/web"
)

// Server owns the router and the store. The store is closed when Start
// returns.
type Server struct {
	router *chi.Mux
	cfg    *config.Config
	store  repository.Store
	logger *slog.Logger
}

// New opens the configured store and builds the server on it.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	s, err := NewWithStore(cfg, store, logger)
	if err != nil {
		store.Close()
		return nil, err
	}
	return s, nil
}

// NewWithStore builds the server on an already open store.
func NewWithStore(cfg *config.Config, store repository.Store, logger *slog.Logger) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
	if err := s.setupRoutes(); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.router }

// setupRoutes builds the dependency chain and registers every route.
//
// GET  /, /Home/*              public pages
// GET  /Home/DownloadCv        résumé download
// POST /Contact/Submit         contact form (JSON reply, CORS)
// GET  /Admin/Login, POST ...  login; POST /Admin/Logout
// /Admin/*                     dashboard, guarded by RequireAdmin
// GET  /static/*, /metrics, /healthz
func (s *Server) setupRoutes() error {
	cfg := s.cfg

	sessions, err := auth.NewSessionService(auth.SessionOptions{
		Secret:     cfg.Auth.SessionSecret,
		TTL:        cfg.Auth.SessionTTL,
		CookieName: cfg.Auth.CookieName,
		Secure:     cfg.Auth.SecureCookies,
	})
	if err != nil {
		return err
	}

	resumeRepo, err := ResumeRepository(cfg, s.store)
	if err != nil {
		return err
	}

	var notifier service.ContactNotifier
	if cfg.SMTP.Enabled() {
		notifier = notify.NewEmailNotifier(notify.Config{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Username: cfg.SMTP.Username,
			Password: cfg.SMTP.Password,
			From:     cfg.SMTP.From,
			To:       cfg.SMTP.To,
		})
	}

	var calendar handler.CalendarSource
	if cfg.GitHub.Enabled() {
		client, err := github.NewClient(github.Config{
			Username: cfg.GitHub.Username,
			Token:    cfg.GitHub.Token,
			Endpoint: cfg.GitHub.Endpoint,
			Timeout:  cfg.GitHub.Timeout,
		})
		if err != nil {
			return err
		}
		calendar = client
	}

	v := validate.New()
	authn := service.NewAuthService(AdminRepository(cfg, s.store), auth.NewPasswordService(), v, s.logger)
	content := service.NewContentService(s.store, v, s.logger)
	resumes := service.NewResumeService(resumeRepo, cfg.Resume.MaxUploadBytes, s.logger)
	contacts := service.NewContactService(s.store, notifier, v, s.logger)

	render, err := handler.NewRenderer(web.Templates(), cfg.Site.Name, cfg.Site.BaseURL, s.logger)
	if err != nil {
		return err
	}
	// The flash cookie gets its own key so it can never pass as a session.
	flashKey := sha256.Sum256([]byte("flash:" + cfg.Auth.SessionSecret))
	flash := handler.NewFlasher(flashKey[:], cfg.Auth.SecureCookies, s.logger)

	home := handler.NewHomeHandler(content, resumes, calendar, sessions, render, s.logger)
	admin := handler.NewAdminHandler(authn, sessions, content, resumes, v, flash, render, s.logger)
	contact := handler.NewContactHandler(contacts, s.logger)

	r := s.router
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Metrics)
	r.Use(middleware.SecurityHeaders)

	r.NotFound(home.HandleNotFound)

	static := http.StripPrefix("/static/", http.FileServer(http.FS(web.Static())))
	r.With(middleware.CacheStatic).Handle("/static/*", static)
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", s.handleHealth)

	r.Get("/", home.HandleIndex)
	r.Route("/Home", func(r chi.Router) {
		r.Get("/", home.HandleIndex)
		r.Get("/Index", home.HandleIndex)
		r.Get("/About", home.HandleAbout)
		r.Get("/Portfolio", home.HandlePortfolio)
		r.Get("/Service", home.HandleService)
		r.Get("/Contact", home.HandleContact)
		r.Get("/Blog", home.HandleBlog)
		r.Get("/Privacy", home.HandlePrivacy)
		r.Get("/Error", home.HandleError)
		r.Get("/DownloadCv", home.HandleDownloadCv)
	})

	r.Route("/Contact", func(r chi.Router) {
		if len(cfg.CORS.AllowedOrigins) > 0 {
			r.Use(cors.New(cors.Options{
				AllowedOrigins: cfg.CORS.AllowedOrigins,
				AllowedMethods: []string{http.MethodPost},
				AllowedHeaders: []string{"Content-Type", "Accept"},
				MaxAge:         600,
			}).Handler)
		}
		r.Post("/Submit", contact.HandleSubmit)
	})

	r.Route("/Admin", func(r chi.Router) {
		r.Use(middleware.NoStore)
		r.Get("/Login", admin.HandleLoginForm)
		r.Post("/Login", admin.HandleLogin)
		r.Post("/Logout", admin.HandleLogout)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin(sessions, s.logger))
			r.Get("/", admin.HandleDashboard)
			r.Get("/Index", admin.HandleDashboard)
			r.Post("/Index", admin.HandleUpload)

			r.Post("/AddEducation", admin.HandleAddEducation)
			r.Post("/AddExperience", admin.HandleAddExperience)
			r.Post("/AddProject", admin.HandleAddProject)
			r.Post("/AddBlogPost", admin.HandleAddBlogPost)

			deletes := map[string]http.HandlerFunc{
				"Education":  admin.HandleDeleteEducation,
				"Experience": admin.HandleDeleteExperience,
				"Project":    admin.HandleDeleteProject,
				"BlogPost":   admin.HandleDeleteBlogPost,
				"Contact":    admin.HandleDeleteContact,
			}
			for entity, h := range deletes {
				r.Post("/Delete"+entity, h)
				r.Post("/Delete"+entity+"/{id}", h)
			}
		})
	})

	return nil
}

// handleHealth reports whether the store answers a ping.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := s.store.Ping(ctx); err != nil {
		s.logger.Warn("health check failed", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("store unavailable\n"))
		return
	}
	_, _ = w.Write([]byte("ok\n"))
}

// Start serves until SIGINT or SIGTERM, then drains in-flight requests for
// up to server.shutdown_timeout and closes the store.
func (s *Server) Start() error {
	defer func() {
		if err := s.store.Close(); err != nil {
			s.logger.Error("closing store", slog.String("error", err.Error()))
		}
	}()

	srv := &http.Server{
		Addr:         s.cfg.Addr(),
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("store", s.cfg.Store.Driver),
			slog.String("resume_storage", s.cfg.Resume.Storage),
			slog.String("auth_source", s.cfg.Auth.Source),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
