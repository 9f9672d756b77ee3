package auth

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// LoginPath is where unauthenticated admin requests are sent.
const LoginPath = "/Admin/Login"

type contextKey string

const sessionKey contextKey = "session"

// RequireAdmin guards the admin routes. A request without a valid session is
// redirected to the login page with its path as ReturnUrl. A valid request
// gets a freshly issued cookie, so the session expires only after a full TTL
// of inactivity.
func RequireAdmin(sessions *SessionService, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, err := sessions.FromRequest(r)
			if err != nil {
				logger.Debug("admin session rejected",
					slog.String("path", r.URL.Path),
					slog.String("reason", err.Error()),
				)
				http.Redirect(w, r, LoginURL(r.URL.RequestURI()), http.StatusFound)
				return
			}

			if err := sessions.SetCookie(w, session.Username); err != nil {
				logger.Error("renewing session cookie", slog.String("error", err.Error()))
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the session stored by RequireAdmin.
func SessionFromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(sessionKey).(*Session)
	return s, ok && s != nil
}

// LoginURL builds the login redirect for returnTo.
func LoginURL(returnTo string) string {
	if returnTo == "" || SafeReturnURL(returnTo) == "" {
		return LoginPath
	}
	return LoginPath + "?ReturnUrl=" + url.QueryEscape(returnTo)
}

// SafeReturnURL returns raw if it is a path on this site, or "" otherwise.
// Absolute URLs, protocol-relative URLs and backslash tricks are refused.
func SafeReturnURL(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") {
		return ""
	}
	if strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "/\\") || strings.ContainsAny(raw, "\r\n") {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return raw
}
