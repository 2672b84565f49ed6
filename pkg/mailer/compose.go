package mailer

import (
	"context"
	"errors"
	"strings"

	mailtpl "github.com/oksasatya/specimen-catalog/pkg/mailer/templates"
)

var ErrNoRecipient = errors.New("email job has no recipient")

// Sender delivers a rendered email.
type Sender interface {
	Send(ctx context.Context, to, subject, text, html string) error
}

// Compose renders the job's template, or returns its literal bodies when no
// template is set.
func Compose(job EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", ErrNoRecipient
	}
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	subject, text, html, err = mailtpl.Render(strings.ToLower(job.Template), job.Data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}
