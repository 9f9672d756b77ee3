// Package notify emails the site owner when someone uses the contact form.
package notify

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/vs-portfolio/portfolio/internal/model"
)

// Sender delivers messages. *gomail.Dialer satisfies it.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	To       string
}

// EmailNotifier sends one HTML email per contact submission.
type EmailNotifier struct {
	sender Sender
	from   string
	to     string
}

// NewEmailNotifier dials the configured SMTP server on every send.
func NewEmailNotifier(cfg Config) *EmailNotifier {
	from := cfg.From
	if from == "" {
		from = cfg.Username
	}
	return &EmailNotifier{
		sender: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   from,
		to:     cfg.To,
	}
}

// NewEmailNotifierWithSender is used with a custom Sender, such as a
// persistent connection or a test double.
func NewEmailNotifierWithSender(sender Sender, from, to string) *EmailNotifier {
	return &EmailNotifier{sender: sender, from: from, to: to}
}

var bodyTmpl = template.Must(template.New("contact").Parse(`<p>New message from the portfolio contact form.</p>
<table>
<tr><th align="left">Name</th><td>{{.Name}}</td></tr>
<tr><th align="left">Email</th><td>{{.Email}}</td></tr>
{{if .Subject}}<tr><th align="left">Subject</th><td>{{.Subject}}</td></tr>{{end}}
<tr><th align="left">Received</th><td>{{.SubmittedAt.Format "2006-01-02 15:04 MST"}}</td></tr>
</table>
<p>{{.Message}}</p>
`))

// NotifyContact sends the email. It gives up when ctx is done, although the
// SMTP exchange itself may still complete in the background.
func (n *EmailNotifier) NotifyContact(ctx context.Context, c model.Contact) error {
	msg, err := n.message(c)
	if err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() { done <- n.sender.DialAndSend(msg) }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("notify: sending contact email: %w", err)
		}
		return nil
	case <-ctx.Done():
		return fmt.Errorf("notify: sending contact email: %w", ctx.Err())
	}
}

func (n *EmailNotifier) message(c model.Contact) (*gomail.Message, error) {
	var body strings.Builder
	if err := bodyTmpl.Execute(&body, c); err != nil {
		return nil, fmt.Errorf("notify: rendering body: %w", err)
	}

	subject := "New contact from " + c.Name
	if c.Subject != "" {
		subject += ": " + c.Subject
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", n.to)
	m.SetHeader("Reply-To", m.FormatAddress(c.Email, c.Name))
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body.String())
	return m, nil
}
