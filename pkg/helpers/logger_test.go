package helpers

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestLoggerStampsAppAndEnv(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "catalog", "production")
	l.WithField("id", "abc").Info("specimen created")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("production output should be JSON: %v (%q)", err, buf.String())
	}
	if entry["app"] != "catalog" || entry["env"] != "production" {
		t.Fatalf("entry = %v", entry)
	}
	if entry["msg"] != "specimen created" || entry["id"] != "abc" {
		t.Fatalf("entry = %v", entry)
	}
}

func TestLoggerKeepsCallSiteFields(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "catalog", "production")
	l.WithField("app", "seed").Info("x")
	if !strings.Contains(buf.String(), `"app":"seed"`) {
		t.Fatalf("call-site field overridden: %s", buf.String())
	}
}

func TestLoggerLevelByEnv(t *testing.T) {
	var buf bytes.Buffer
	if got := newLogger(&buf, "a", "development").GetLevel(); got != logrus.DebugLevel {
		t.Fatalf("development level = %v", got)
	}
	if got := newLogger(&buf, "a", "staging").GetLevel(); got != logrus.InfoLevel {
		t.Fatalf("staging level = %v", got)
	}
}
