package mailer

import (
	"errors"
	"strings"
	"testing"

	mailtpl "github.com/oksasatya/specimen-catalog/pkg/mailer/templates"
)

func TestComposeTemplate(t *testing.T) {
	data := mailtpl.NewAccountProvisionedData(
		mailtpl.Branding{AppName: "Catalog", LoginURL: "https://example.test/login"},
		"Ada", "ada@example.test",
		mailtpl.WithCreatedBy("root@example.test"),
	)
	subject, text, html, err := Compose(EmailJob{To: "ada@example.test", Template: mailtpl.AccountProvisioned, Data: data})
	if err != nil {
		t.Fatalf("Compose: %v", err)
	}
	if subject != "Your Catalog account is ready" {
		t.Errorf("unexpected subject %q", subject)
	}
	for _, want := range []string{"Hi Ada", "ada@example.test", "root@example.test", "https://example.test/login"} {
		if !strings.Contains(text, want) {
			t.Errorf("text missing %q:\n%s", want, text)
		}
	}
	if !strings.Contains(html, `href="https://example.test/login"`) {
		t.Errorf("html missing login link:\n%s", html)
	}
}

func TestComposeLiteralAndOverrides(t *testing.T) {
	s, tx, h, err := Compose(EmailJob{To: "a@b.c", Subject: "hi", Text: "body"})
	if err != nil || s != "hi" || tx != "body" || h != "" {
		t.Errorf("literal job: %q %q %q %v", s, tx, h, err)
	}

	s, _, _, err = Compose(EmailJob{To: "a@b.c", Subject: "custom", Template: mailtpl.AccountProvisioned})
	if err != nil || s != "custom" {
		t.Errorf("subject override: %q %v", s, err)
	}
}

func TestComposeErrors(t *testing.T) {
	if _, _, _, err := Compose(EmailJob{Template: mailtpl.AccountProvisioned}); !errors.Is(err, ErrNoRecipient) {
		t.Errorf("expected ErrNoRecipient, got %v", err)
	}
	if _, _, _, err := Compose(EmailJob{To: "a@b.c", Template: "missing"}); err == nil {
		t.Error("expected error for unknown template")
	}
}
