package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/auth"
	"github.com/vs-portfolio/portfolio/internal/metrics"
	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository"
	"github.com/vs-portfolio/portfolio/internal/validate"
)

// AuthService checks admin credentials and manages admin accounts.
type AuthService struct {
	admins    repository.AdminRepository
	passwords *auth.PasswordService
	validator *validate.Validator
	logger    *slog.Logger
}

func NewAuthService(
	admins repository.AdminRepository,
	passwords *auth.PasswordService,
	validator *validate.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		admins:    admins,
		passwords: passwords,
		validator: validator,
		logger:    logger,
	}
}

// Login returns the admin matching in. Missing fields yield a validation
// error without any lookup. An unknown username and a wrong password yield
// the same Unauthorized error.
func (s *AuthService) Login(ctx context.Context, in model.LoginInput) (*model.Admin, error) {
	if err := s.validator.Struct(&in); err != nil {
		metrics.RecordLogin(metrics.OutcomeInvalid)
		return nil, err
	}

	admin, err := s.admins.GetAdminByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.reject(in.Username, "unknown user")
			return nil, apperror.Unauthorized(MsgInvalidLogin)
		}
		metrics.RecordLogin(metrics.OutcomeError)
		return nil, fmt.Errorf("service/auth: looking up admin: %w", err)
	}

	if err := s.passwords.Verify(admin, in.Password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			s.reject(in.Username, "wrong password")
			return nil, apperror.Unauthorized(MsgInvalidLogin)
		}
		metrics.RecordLogin(metrics.OutcomeError)
		return nil, fmt.Errorf("service/auth: verifying password: %w", err)
	}

	if !admin.PasswordIsHashed() {
		s.logger.Warn("admin password is stored in plaintext; recreate it with portfolioctl create-admin",
			slog.String("username", admin.Username),
		)
	}

	metrics.RecordLogin(metrics.OutcomeSuccess)
	s.logger.Info("admin logged in", slog.String("username", admin.Username))
	return admin, nil
}

func (s *AuthService) reject(username, reason string) {
	metrics.RecordLogin(metrics.OutcomeRejected)
	s.logger.Warn("admin login rejected",
		slog.String("username", username),
		slog.String("reason", reason),
	)
}

// CreateAdmin stores a new admin with a bcrypt-hashed password.
func (s *AuthService) CreateAdmin(ctx context.Context, username, password string) (*model.Admin, error) {
	in := model.LoginInput{Username: trim(username), Password: password}
	if err := s.validator.Struct(&in); err != nil {
		return nil, err
	}

	_, err := s.admins.GetAdminByUsername(ctx, in.Username)
	switch {
	case err == nil:
		return nil, apperror.Conflict("admin", in.Username)
	case !errors.Is(err, apperror.ErrNotFound):
		return nil, fmt.Errorf("service/auth: checking for admin %q: %w", in.Username, err)
	}

	hash, err := s.passwords.Hash(in.Password)
	if err != nil {
		return nil, apperror.ValidationFailed("Password", "Password must be 72 bytes or fewer.")
	}

	admin := &model.Admin{Username: in.Username, Password: hash}
	if err := s.admins.CreateAdmin(ctx, admin); err != nil {
		return nil, fmt.Errorf("service/auth: creating admin %q: %w", in.Username, err)
	}

	s.logger.Info("admin created", slog.String("username", admin.Username))
	return admin, nil
}

// StaticCredentials is an AdminRepository holding a single admin taken from
// configuration instead of the store.
type StaticCredentials struct {
	Username string
	Password string
}

var _ repository.AdminRepository = StaticCredentials{}

func (c StaticCredentials) GetAdminByUsername(_ context.Context, username string) (*model.Admin, error) {
	if c.Username == "" || subtle.ConstantTimeCompare([]byte(c.Username), []byte(username)) != 1 {
		return nil, apperror.NotFound("admin", username)
	}
	return &model.Admin{ID: "static", Username: c.Username, Password: c.Password}, nil
}

func (c StaticCredentials) CreateAdmin(context.Context, *model.Admin) error {
	return apperror.Forbidden("admins are read from configuration when auth.source is static")
}
