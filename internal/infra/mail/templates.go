package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"ladx/internal/domain/service"

	"github.com/pkg/errors"
)

// layoutTmpl is the shared shell for every transactional email.
var layoutTmpl = template.Must(template.New("layout").Parse(`<!DOCTYPE html>
<html>
  <head>
    <style>
      body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f9f9f9; padding: 20px; }
      .container { max-width: 600px; margin: 0 auto; background: #ffffff; border-radius: 10px; padding: 20px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1); }
      .header { text-align: center; border-bottom: 1px solid #eee; padding-bottom: 10px; margin-bottom: 20px; }
      .header h1 { color: #4CAF50; }
      .otp { font-size: 28px; letter-spacing: 6px; font-weight: bold; text-align: center; }
      .footer { font-size: 14px; color: #999; text-align: center; margin-top: 20px; }
      .footer a { color: #4CAF50; text-decoration: none; }
    </style>
  </head>
  <body>
    <div class="container">
      <div class="header"><h1>{{.Title}}</h1></div>
      <div class="body">{{.Body}}</div>
      <div class="footer">{{.Footer}}</div>
    </div>
  </body>
</html>
`))

type layoutData struct {
	Title  string
	Body   template.HTML
	Footer template.HTML
}

const defaultFooter = template.HTML(`This email was sent by LADX. If you did not expect it, you can safely ignore it.`)

const plainFooter = "This email was sent by LADX. If you did not expect it, you can safely ignore it."

func render(title string, body template.HTML) (string, error) {
	var buf bytes.Buffer
	if err := layoutTmpl.Execute(&buf, layoutData{Title: title, Body: body, Footer: defaultFooter}); err != nil {
		return "", errors.Wrap(err, "render email template")
	}

	return buf.String(), nil
}

// plain joins the greeting, the given paragraphs and the footer into the
// text/plain rendition of a message.
func plain(fullName string, paragraphs ...string) string {
	parts := make([]string, 0, len(paragraphs)+2)
	parts = append(parts, "Hi "+fullName+",")
	parts = append(parts, paragraphs...)
	parts = append(parts, plainFooter)

	return strings.Join(parts, "\n\n")
}

// OTPMail builds the signup verification email.
func OTPMail(to, fullName, otp string, ttlMinutes int) (service.Mail, error) {
	body := template.HTML(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Use the code below to verify your email address. It expires in %d minutes.</p>
<p class="otp">%s</p>`,
		template.HTMLEscapeString(fullName), ttlMinutes, template.HTMLEscapeString(otp),
	))

	html, err := render("Verify your email", body)
	if err != nil {
		return service.Mail{}, err
	}

	text := plain(fullName,
		fmt.Sprintf("Use the code below to verify your email address. It expires in %d minutes.", ttlMinutes),
		otp,
	)

	return service.Mail{To: to, Subject: "Your LADX verification code", Text: text, HTML: html}, nil
}

// WelcomeMail builds the post-verification welcome email.
func WelcomeMail(to, fullName string) (service.Mail, error) {
	body := template.HTML(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>Your account is verified and ready to use. Welcome aboard.</p>`,
		template.HTMLEscapeString(fullName),
	))

	html, err := render("Welcome to LADX", body)
	if err != nil {
		return service.Mail{}, err
	}

	text := plain(fullName, "Your account is verified and ready to use. Welcome aboard.")

	return service.Mail{To: to, Subject: "Welcome to LADX", Text: text, HTML: html}, nil
}

// ResetPasswordMail builds the password reset email with the reset link.
func ResetPasswordMail(to, fullName, resetURL string) (service.Mail, error) {
	body := template.HTML(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>We received a request to reset your password. Click the link below to choose a new one. The link expires in one hour.</p>
<p><a href="%s">Reset your password</a></p>
<p>If you did not request this, no action is needed.</p>`,
		template.HTMLEscapeString(fullName), template.HTMLEscapeString(resetURL),
	))

	html, err := render("Reset your password", body)
	if err != nil {
		return service.Mail{}, err
	}

	text := plain(fullName,
		"We received a request to reset your password. Open the link below to choose a new one. The link expires in one hour.",
		resetURL,
		"If you did not request this, no action is needed.",
	)

	return service.Mail{To: to, Subject: "Reset your LADX password", Text: text, HTML: html}, nil
}

// EventMail builds the generic notification email used by the fan-out.
func EventMail(to, fullName, subject, message string) (service.Mail, error) {
	body := template.HTML(fmt.Sprintf(
		`<p>Hi %s,</p>
<p>%s</p>`,
		template.HTMLEscapeString(fullName), template.HTMLEscapeString(message),
	))

	html, err := render(subject, body)
	if err != nil {
		return service.Mail{}, err
	}

	text := plain(fullName, message)

	return service.Mail{To: to, Subject: subject, Text: text, HTML: html}, nil
}
