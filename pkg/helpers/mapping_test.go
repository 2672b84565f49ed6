package helpers

import (
	"testing"

	"github.com/oksasatya/specimen-catalog/pkg/mailer"
)

func TestEnsureRecipientAndEmail(t *testing.T) {
	job := &mailer.EmailJob{To: "a@example.test"}
	EnsureRecipientAndEmail(job)
	if job.Data["Email"] != "a@example.test" || job.Data["RecipientEmail"] != "a@example.test" {
		t.Errorf("unexpected data %v", job.Data)
	}

	job = &mailer.EmailJob{To: "a@example.test", Data: map[string]any{"Email": "b@example.test"}}
	EnsureRecipientAndEmail(job)
	if job.Data["Email"] != "b@example.test" {
		t.Errorf("existing Email overwritten: %v", job.Data["Email"])
	}
}
