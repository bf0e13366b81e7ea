// Package delivery sends generated dossiers by email
package delivery

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/go-pkgz/email"
	"github.com/go-pkgz/lgr"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/umputun/dossier/pkg/domain"
	"github.com/umputun/dossier/pkg/trigger"
)

// SMTPParams defines smtp connection and sender settings
type SMTPParams struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	TLS      bool
	StartTLS bool
	Timeout  time.Duration
}

// sender is the subset of email.Sender used to send messages
type sender interface {
	Send(text string, params email.Params) error
}

// Mailer renders dossier text to html and sends it to the dossier recipient
type Mailer struct {
	sender sender
	from   string
	zone   *time.Location // used when the dossier timezone is empty or invalid
	md     goldmark.Markdown
	policy *bluemonday.Policy
	now    func() time.Time
}

var bodyTmpl = template.Must(template.New("body").Parse(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>{{.Title}}</title></head>
<body style="font-family: Georgia, serif; max-width: 680px; margin: 0 auto; line-height: 1.5;">
<h2 style="font-weight: normal;">{{.Title}}</h2>
{{.Content}}
<hr>
<p style="color: #888; font-size: 12px;">Compiled from {{.ItemCount}} items.</p>
</body>
</html>`))

// NewMailer makes a mailer sending through the given smtp server.
// defaultZone dates the subject of dossiers without a valid timezone, nil means UTC.
func NewMailer(p SMTPParams, defaultZone *time.Location) *Mailer {
	opts := []email.Option{
		email.Port(p.Port),
		email.TLS(p.TLS),
		email.STARTTLS(p.StartTLS),
		email.ContentType("text/html"),
		email.Charset("UTF-8"),
		email.TimeOut(p.Timeout),
	}
	if p.Username != "" {
		opts = append(opts, email.Auth(p.Username, p.Password))
	}
	return newMailer(email.NewSender(p.Host, opts...), p.From, defaultZone)
}

func newMailer(s sender, from string, defaultZone *time.Location) *Mailer {
	if defaultZone == nil {
		defaultZone = time.UTC
	}
	return &Mailer{
		sender: s,
		from:   from,
		zone:   defaultZone,
		md: goldmark.New(
			goldmark.WithExtensions(extension.Linkify, extension.Typographer),
			goldmark.WithRendererOptions(html.WithHardWraps()),
		),
		policy: bluemonday.UGCPolicy(),
		now:    time.Now,
	}
}

// Send delivers the dossier text to its recipient
func (m *Mailer) Send(ctx context.Context, d domain.Dossier, text string, items []domain.Item) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("send dossier %d: %w", d.ID, err)
	}

	subject := Subject(d, m.now(), m.zone)
	body, err := m.render(subject, text, len(items))
	if err != nil {
		return fmt.Errorf("render dossier %d: %w", d.ID, err)
	}

	params := email.Params{From: m.from, To: []string{d.Recipient}, Subject: subject}
	if err := m.sender.Send(body, params); err != nil {
		return fmt.Errorf("send dossier %d to %s: %w", d.ID, d.Recipient, err)
	}
	lgr.Printf("[INFO] dossier %d sent to %s, %q", d.ID, d.Recipient, subject)
	return nil
}

// Subject makes the email subject, the date is taken in the dossier timezone or in defaultZone
func Subject(d domain.Dossier, now time.Time, defaultZone *time.Location) string {
	local := now.In(trigger.ResolveLocation(d.Timezone, defaultZone))
	return fmt.Sprintf("%s — %s", d.Name, local.Format("January 2, 2006"))
}

// render converts markdown text to sanitized html inside the message template
func (m *Mailer) render(title, text string, itemCount int) (string, error) {
	var md bytes.Buffer
	if err := m.md.Convert([]byte(text), &md); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	content := string(m.policy.SanitizeBytes(md.Bytes()))
	if strings.TrimSpace(content) == "" {
		// nothing left after sanitizing, fall back to the escaped plain text
		content = "<pre>" + template.HTMLEscapeString(text) + "</pre>"
	}

	var buf bytes.Buffer
	err := bodyTmpl.Execute(&buf, struct {
		Title     string
		Content   template.HTML
		ItemCount int
	}{
		Title:     title,
		Content:   template.HTML(content), //nolint:gosec // sanitized by bluemonday
		ItemCount: itemCount,
	})
	if err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}
