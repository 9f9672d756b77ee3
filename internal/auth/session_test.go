package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-that-is-32-chars-long"

// newTestSessions returns a SessionService whose clock the test controls.
func newTestSessions(t *testing.T, now *time.Time) *SessionService {
	t.Helper()
	s, err := NewSessionService(SessionOptions{
		Secret:     testSecret,
		TTL:        30 * time.Minute,
		CookieName: "session",
	})
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}
	if now != nil {
		s.now = func() time.Time { return *now }
	}
	return s
}

// =========================================================================
// CONSTRUCTION
// =========================================================================

func TestNewSessionService_Rejects(t *testing.T) {
	if _, err := NewSessionService(SessionOptions{Secret: "short", TTL: time.Minute}); err == nil {
		t.Error("NewSessionService() should reject a short secret")
	}
	if _, err := NewSessionService(SessionOptions{Secret: testSecret}); err == nil {
		t.Error("NewSessionService() should reject a zero TTL")
	}
}

// =========================================================================
// ISSUE / VALIDATE
// =========================================================================

func TestIssueValidate_RoundTrip(t *testing.T) {
	s := newTestSessions(t, nil)

	token, expires, err := s.Issue("vs")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	session, err := s.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if session.Username != "vs" {
		t.Errorf("Username = %q, want %q", session.Username, "vs")
	}
	if session.Role != "Admin" {
		t.Errorf("Role = %q, want Admin", session.Role)
	}
	if !session.ExpiresAt.Equal(expires.Truncate(time.Second)) {
		t.Errorf("ExpiresAt = %v, want %v", session.ExpiresAt, expires.Truncate(time.Second))
	}
}

func TestValidate_Expired(t *testing.T) {
	now := time.Now()
	s := newTestSessions(t, &now)

	token, _, err := s.Issue("vs")
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	now = now.Add(31 * time.Minute)
	if _, err := s.Validate(token); !errors.Is(err, ErrSessionExpired) {
		t.Errorf("Validate() error = %v, want ErrSessionExpired", err)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	s := newTestSessions(t, nil)
	other, err := NewSessionService(SessionOptions{Secret: "another-secret-that-is-32-chars!!", TTL: time.Minute})
	if err != nil {
		t.Fatalf("NewSessionService: %v", err)
	}

	token, _, _ := other.Issue("vs")
	if _, err := s.Validate(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Validate() error = %v, want ErrInvalidSession", err)
	}
}

func TestValidate_Tampered(t *testing.T) {
	s := newTestSessions(t, nil)
	token, _, _ := s.Issue("vs")

	tampered := token[:len(token)-2] + "xx"
	if _, err := s.Validate(tampered); err == nil {
		t.Error("Validate() accepted a tampered token")
	}
}

func TestValidate_WrongRole(t *testing.T) {
	s := newTestSessions(t, nil)

	c := claims{
		Role: "Viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "vs",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := s.Validate(token); !errors.Is(err, ErrInvalidSession) {
		t.Errorf("Validate() error = %v, want ErrInvalidSession", err)
	}
}

func TestValidate_NoneAlgorithm(t *testing.T) {
	s := newTestSessions(t, nil)

	c := claims{
		Role: "Admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "vs",
			Issuer:    issuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, c).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("signing: %v", err)
	}

	if _, err := s.Validate(token); err == nil {
		t.Error("Validate() accepted an unsigned token")
	}
}

// =========================================================================
// COOKIES
// =========================================================================

func TestSetCookie(t *testing.T) {
	s := newTestSessions(t, nil)
	rec := httptest.NewRecorder()

	if err := s.SetCookie(rec, "vs"); err != nil {
		t.Fatalf("SetCookie() error = %v", err)
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("got %d cookies, want 1", len(cookies))
	}
	c := cookies[0]
	if c.Name != "session" || !c.HttpOnly || c.SameSite != http.SameSiteLaxMode || c.Path != "/" {
		t.Errorf("unexpected cookie attributes: %+v", c)
	}

	req := httptest.NewRequest(http.MethodGet, "/Admin/Index", nil)
	req.AddCookie(c)
	session, err := s.FromRequest(req)
	if err != nil {
		t.Fatalf("FromRequest() error = %v", err)
	}
	if session.Username != "vs" {
		t.Errorf("Username = %q, want vs", session.Username)
	}
}

func TestClearCookie(t *testing.T) {
	s := newTestSessions(t, nil)
	rec := httptest.NewRecorder()

	s.ClearCookie(rec)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge >= 0 || cookies[0].Value != "" {
		t.Errorf("ClearCookie() wrote %+v, want an expired empty cookie", cookies)
	}
}

func TestFromRequest_NoCookie(t *testing.T) {
	s := newTestSessions(t, nil)
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	if _, err := s.FromRequest(req); !errors.Is(err, ErrNoSession) {
		t.Errorf("FromRequest() error = %v, want ErrNoSession", err)
	}
}

func TestIsAdmin(t *testing.T) {
	s := newTestSessions(t, nil)

	token, _, err := s.Issue("admin")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	withCookie := httptest.NewRequest(http.MethodGet, "/", nil)
	withCookie.AddCookie(&http.Cookie{Name: "session", Value: token})
	if !s.IsAdmin(withCookie) {
		t.Error("IsAdmin() = false for a valid session cookie")
	}

	bogus := httptest.NewRequest(http.MethodGet, "/", nil)
	bogus.AddCookie(&http.Cookie{Name: "session", Value: "not-a-token"})
	if s.IsAdmin(bogus) {
		t.Error("IsAdmin() = true for a garbage cookie")
	}

	if s.IsAdmin(httptest.NewRequest(http.MethodGet, "/", nil)) {
		t.Error("IsAdmin() = true without a cookie")
	}
}
