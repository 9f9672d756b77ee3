// Package auth implements the admin session: an HS256-signed JWT carried in
// an HttpOnly cookie, renewed on every authenticated request, and the
// password check used at login.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/vs-portfolio/portfolio/internal/model"
)

const issuer = "portfolio"

var (
	ErrNoSession      = errors.New("auth: no session cookie")
	ErrSessionExpired = errors.New("auth: session expired")
	ErrInvalidSession = errors.New("auth: invalid session")
)

// Session is the identity carried by a valid cookie.
type Session struct {
	Username  string
	Role      string
	ExpiresAt time.Time
}

type SessionOptions struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// SessionService issues and validates session tokens and reads and writes
// the cookie that carries them.
type SessionService struct {
	secret     []byte
	ttl        time.Duration
	cookieName string
	secure     bool
	now        func() time.Time
}

func NewSessionService(opts SessionOptions) (*SessionService, error) {
	if len(opts.Secret) < 32 {
		return nil, errors.New("auth: session secret must be at least 32 characters")
	}
	if opts.TTL <= 0 {
		return nil, errors.New("auth: session TTL must be positive")
	}
	if opts.CookieName == "" {
		opts.CookieName = "portfolio_session"
	}
	return &SessionService{
		secret:     []byte(opts.Secret),
		ttl:        opts.TTL,
		cookieName: opts.CookieName,
		secure:     opts.Secure,
		now:        time.Now,
	}, nil
}

type claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs a token for username with the admin role.
func (s *SessionService) Issue(username string) (string, time.Time, error) {
	now := s.now()
	expires := now.Add(s.ttl)

	c := claims{
		Role: model.RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
			Issuer:    issuer,
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("auth: signing token: %w", err)
	}
	return signed, expires, nil
}

// Validate parses token and returns its session. Only HS256 tokens from this
// issuer with the admin role are accepted.
func (s *SessionService) Validate(token string) (*Session, error) {
	parsed, err := jwt.ParseWithClaims(
		token,
		&claims{},
		func(*jwt.Token) (any, error) { return s.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}

	c, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidSession
	}
	if c.Subject == "" {
		return nil, fmt.Errorf("%w: no subject", ErrInvalidSession)
	}
	if c.Role != model.RoleAdmin {
		return nil, fmt.Errorf("%w: role %q", ErrInvalidSession, c.Role)
	}

	return &Session{
		Username:  c.Subject,
		Role:      c.Role,
		ExpiresAt: c.ExpiresAt.Time,
	}, nil
}

// SetCookie issues a fresh token for username and writes it as the session
// cookie.
func (s *SessionService) SetCookie(w http.ResponseWriter, username string) error {
	token, expires, err := s.Issue(username)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie in the browser.
func (s *SessionService) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// FromRequest validates the session cookie on r.
func (s *SessionService) FromRequest(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(s.cookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}
	return s.Validate(cookie.Value)
}

func (s *SessionService) CookieName() string { return s.cookieName }

// IsAdmin reports whether r carries a valid admin session. It does not renew
// the cookie.
func (s *SessionService) IsAdmin(r *http.Request) bool {
	_, err := s.FromRequest(r)
	return err == nil
}
