package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	flashSession = "portfolio_flash"
	flashSuccess = "success"
	flashError   = "error"
)

// Flashes are one-shot messages shown on the next rendered page.
type Flashes struct {
	Success []string
	Error   []string
}

// Flasher keeps flash messages in a signed cookie across a redirect.
type Flasher struct {
	store  *sessions.CookieStore
	logger *slog.Logger
}

// NewFlasher signs the flash cookie with key.
func NewFlasher(key []byte, secure bool, logger *slog.Logger) *Flasher {
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   300,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	return &Flasher{store: store, logger: logger}
}

func (f *Flasher) Success(w http.ResponseWriter, r *http.Request, msgs ...string) {
	f.add(w, r, flashSuccess, msgs)
}

func (f *Flasher) Error(w http.ResponseWriter, r *http.Request, msgs ...string) {
	f.add(w, r, flashError, msgs)
}

func (f *Flasher) add(w http.ResponseWriter, r *http.Request, key string, msgs []string) {
	// A tampered or stale cookie yields a fresh session and an error; the
	// fresh session is still usable.
	sess, _ := f.store.Get(r, flashSession)
	for _, m := range msgs {
		sess.AddFlash(m, key)
	}
	if err := sess.Save(r, w); err != nil {
		f.logger.Error("saving flash", slog.String("error", err.Error()))
	}
}

// Pop returns and clears the pending messages. It must run before the
// response header is written.
func (f *Flasher) Pop(w http.ResponseWriter, r *http.Request) Flashes {
	sess, _ := f.store.Get(r, flashSession)
	out := Flashes{
		Success: flashStrings(sess.Flashes(flashSuccess)),
		Error:   flashStrings(sess.Flashes(flashError)),
	}
	if len(out.Success) == 0 && len(out.Error) == 0 {
		return out
	}
	if err := sess.Save(r, w); err != nil {
		f.logger.Error("clearing flash", slog.String("error", err.Error()))
	}
	return out
}

func flashStrings(vs []any) []string {
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
