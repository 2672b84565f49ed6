package main

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type fakeSender struct {
	err     error
	to      string
	subject string
	html    string
	calls   int
}

func (f *fakeSender) Send(_ context.Context, to, subject, _, html string) error {
	f.calls++
	f.to, f.subject, f.html = to, subject, html
	return f.err
}

func newTestWorker(s *fakeSender) *worker {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return &worker{sender: s, logger: l, timeout: time.Second}
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		sendErr   error
		want      outcome
		wantCalls int
	}{
		{"not json", `{oops`, nil, drop, 0},
		{"no recipient", `{"subject":"hi","text":"x"}`, nil, drop, 0},
		{"unknown template", `{"to":"a@b.c","template":"nope"}`, nil, drop, 0},
		{"literal body", `{"to":"a@b.c","subject":"hi","text":"x"}`, nil, ack, 1},
		{"template", `{"to":"a@b.c","template":"account_provisioned","data":{"Name":"Ada","AppName":"Catalog"}}`, nil, ack, 1},
		{"send fails", `{"to":"a@b.c","subject":"hi","text":"x"}`, errors.New("smtp down"), retry, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &fakeSender{err: tt.sendErr}
			got := newTestWorker(s).handle(context.Background(), []byte(tt.body))
			if got != tt.want {
				t.Fatalf("outcome = %d, want %d", got, tt.want)
			}
			if s.calls != tt.wantCalls {
				t.Fatalf("send calls = %d, want %d", s.calls, tt.wantCalls)
			}
		})
	}
}

func TestHandleRendersTemplate(t *testing.T) {
	s := &fakeSender{}
	body := `{"to":"ada@example.com","template":"ACCOUNT_PROVISIONED","data":{"Name":"Ada","AppName":"Catalog"}}`
	if got := newTestWorker(s).handle(context.Background(), []byte(body)); got != ack {
		t.Fatalf("outcome = %d, want ack", got)
	}
	if s.to != "ada@example.com" {
		t.Fatalf("to = %q", s.to)
	}
	if s.subject == "" || !strings.Contains(s.html, "ada@example.com") {
		t.Fatalf("subject %q html %q", s.subject, s.html)
	}
}
