package helpers

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
)

// ESConfig selects the cluster behind the specimen search index.
type ESConfig struct {
	Addrs    []string
	Username string
	Password string
	Timeout  time.Duration // dial and response-header timeout; 0 means 5s
}

// NewESClient creates an Elasticsearch client with optional basic auth.
// Retries are disabled; indexing is best effort and the next write repairs it.
func NewESClient(cfg ESConfig) (*elasticsearch.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return elasticsearch.NewClient(elasticsearch.Config{
		Addresses:    cfg.Addrs,
		Username:     cfg.Username,
		Password:     cfg.Password,
		DisableRetry: true,
		Transport: &http.Transport{
			MaxIdleConnsPerHost:   10,
			ResponseHeaderTimeout: timeout,
			TLSClientConfig:       &tls.Config{MinVersion: tls.VersionTLS12},
			DialContext:           (&net.Dialer{Timeout: timeout}).DialContext,
		},
	})
}
