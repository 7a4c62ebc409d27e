package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/url"
	"strings"
)

var verificationTmpl = template.Must(template.New("verify").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Confirm your email</h2>
    <p>Hi {{.Name}},</p>
    <p>Please confirm your email address to activate your CourseHub account.</p>
    <p><a href="{{.Link}}">Verify email</a></p>
    <p>The link expires in {{.Validity}}.</p>
  </div>
</body>
</html>`))

var resetTmpl = template.Must(template.New("reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <div style="max-width: 520px; margin: 0 auto; padding: 16px;">
    <h2>Reset your password</h2>
    <p>Hi {{.Name}},</p>
    <p>Someone asked to reset the password of your CourseHub account. If it was not you, ignore this email.</p>
    <p><a href="{{.Link}}">Choose a new password</a></p>
    <p>The link expires in {{.Validity}}.</p>
  </div>
</body>
</html>`))

type mailData struct {
	Name     string
	Link     string
	Validity string
}

// Mailer turns raw single-use tokens into links and sends them.
type Mailer struct {
	sender  Sender
	baseURL string
}

func NewMailer(sender Sender, publicBaseURL string) *Mailer {
	return &Mailer{sender: sender, baseURL: strings.TrimRight(publicBaseURL, "/")}
}

// Link builds the front-end URL carrying a raw token.
func (m *Mailer) Link(path, rawToken string) string {
	return m.baseURL + path + "?token=" + url.QueryEscape(rawToken)
}

func (m *Mailer) SendVerification(ctx context.Context, to, name, rawToken, validity string) error {
	return m.send(ctx, verificationTmpl, to, "Confirm your CourseHub email", mailData{
		Name:     name,
		Link:     m.Link("/verify-email", rawToken),
		Validity: validity,
	})
}

func (m *Mailer) SendPasswordReset(ctx context.Context, to, name, rawToken, validity string) error {
	return m.send(ctx, resetTmpl, to, "Reset your CourseHub password", mailData{
		Name:     name,
		Link:     m.Link("/reset-password", rawToken),
		Validity: validity,
	})
}

func (m *Mailer) send(ctx context.Context, t *template.Template, to, subject string, data mailData) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return deliveryError(fmt.Errorf("render %s: %w", t.Name(), err))
	}
	return m.sender.Send(ctx, Message{To: to, Subject: subject, HTML: buf.String()})
}
