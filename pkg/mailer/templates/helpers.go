package templates

import (
	"time"
)

// Branding is the per-deployment part of every email.
type Branding struct {
	AppName     string
	CompanyName string
	SupportURL  string
	LoginURL    string
}

type Option func(*EmailData)

func WithCreatedBy(name string) Option { return func(d *EmailData) { d.CreatedBy = name } }

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

func NewBaseEmailData(b Branding, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName: b.CompanyName,
		AppName:     b.AppName,
		SupportURL:  b.SupportURL,
		LoginURL:    b.LoginURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// NewAccountProvisionedData is sent to a new account created through signup.
func NewAccountProvisionedData(b Branding, name, email string, opts ...Option) map[string]any {
	return ToMap(NewBaseEmailData(b, AccountProvisioned, name, email, opts...))
}
