package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_TTL", "")
	t.Setenv("SPECIMEN_STORE", "")

	cfg := Load()
	if cfg.AccessTTL != 24*time.Hour {
		t.Errorf("expected 24h token lifetime, got %v", cfg.AccessTTL)
	}
	if cfg.SpecimenStore != "mongo" {
		t.Errorf("expected mongo specimen store, got %q", cfg.SpecimenStore)
	}
	if cfg.StoreTimeout <= 0 || cfg.UploadTimeout <= 0 {
		t.Errorf("expected positive timeouts, got store=%v upload=%v", cfg.StoreTimeout, cfg.UploadTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SPECIMEN_STORE", "Memory")
	t.Setenv("JWT_ACCESS_TTL", "2h")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("MAX_UPLOAD_BYTES", "1024")

	cfg := Load()
	if cfg.SpecimenStore != "memory" {
		t.Errorf("expected lower-cased store name, got %q", cfg.SpecimenStore)
	}
	if cfg.AccessTTL != 2*time.Hour {
		t.Errorf("expected 2h, got %v", cfg.AccessTTL)
	}
	if !cfg.MinioUseSSL {
		t.Error("expected MinioUseSSL to be true")
	}
	if cfg.MaxUploadBytes != 1024 {
		t.Errorf("expected 1024, got %d", cfg.MaxUploadBytes)
	}
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("STORE_TIMEOUT", "soon")
	t.Setenv("REDIS_DB", "x")
	t.Setenv("COOKIE_SECURE", "maybe")

	cfg := Load()
	if cfg.StoreTimeout != 5*time.Second {
		t.Errorf("expected default store timeout, got %v", cfg.StoreTimeout)
	}
	if cfg.RedisDB != 0 {
		t.Errorf("expected default redis db, got %d", cfg.RedisDB)
	}
	if cfg.CookieSecure {
		t.Error("expected default cookie secure flag")
	}
}

func TestSplitLists(t *testing.T) {
	cfg := &Config{
		CORSAllowedOrigins: " http://a.test, ,http://b.test ",
		ElasticsearchAddrs: "",
	}
	origins := cfg.CORSOrigins()
	if len(origins) != 2 || origins[0] != "http://a.test" || origins[1] != "http://b.test" {
		t.Errorf("unexpected origins: %v", origins)
	}
	if addrs := cfg.ESAddrs(); len(addrs) != 0 {
		t.Errorf("expected no addresses, got %v", addrs)
	}
}

func TestPostgresDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "h", DBPort: "1", DBName: "d", DBSSLMode: "disable"}
	want := "postgres://u:p@h:1/d?sslmode=disable"
	if got := cfg.PostgresDSN(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
