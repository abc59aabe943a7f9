package service

import "context"

// Mail is a rendered email ready for delivery. Text is the plain
// rendition sent alongside HTML for clients that cannot display it.
type Mail struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// MailSender delivers transactional email. Implementations should not
// retry internally; callers decide whether a failed send matters.
type MailSender interface {
	// Send delivers a single message.
	Send(ctx context.Context, mail Mail) error
}
