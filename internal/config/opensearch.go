package config

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/opensearch-project/opensearch-go/v2"
)

// OpenSearchConfig points at the message search cluster. Addresses takes a
// comma-separated OPENSEARCH_URLS list; Host and Port are used without it.
type OpenSearchConfig struct {
	Addresses   []string
	Host        string
	Port        string
	Username    string
	Password    string
	Insecure    bool
	IndexPrefix string
}

func DefaultOpenSearchConfig() *OpenSearchConfig {
	cfg := &OpenSearchConfig{
		Host:        getEnvWithDefault("OPENSEARCH_HOST", "localhost"),
		Port:        getEnvWithDefault("OPENSEARCH_PORT", "9200"),
		Username:    getEnvWithDefault("OPENSEARCH_USERNAME", ""),
		Password:    getEnvWithDefault("OPENSEARCH_PASSWORD", ""),
		Insecure:    getEnvWithDefault("OPENSEARCH_INSECURE", "false") == "true",
		IndexPrefix: getEnvWithDefault("OPENSEARCH_INDEX_PREFIX", "message_records"),
	}
	for _, addr := range strings.Split(getEnvWithDefault("OPENSEARCH_URLS", ""), ",") {
		if addr = strings.TrimSpace(addr); addr != "" {
			cfg.Addresses = append(cfg.Addresses, addr)
		}
	}
	return cfg
}

func (c *OpenSearchConfig) addresses() []string {
	if len(c.Addresses) > 0 {
		return c.Addresses
	}
	return []string{fmt.Sprintf("http://%s:%s", c.Host, c.Port)}
}

func (c *OpenSearchConfig) GetClient() (*opensearch.Client, error) {
	cfg := opensearch.Config{
		Addresses:  c.addresses(),
		Username:   c.Username,
		Password:   c.Password,
		MaxRetries: 3,
	}
	if c.Insecure {
		cfg.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	return opensearch.NewClient(cfg)
}

func (c *OpenSearchConfig) prefix() string {
	if c.IndexPrefix == "" {
		return "message_records"
	}
	return c.IndexPrefix
}

// GetIndexName returns the monthly index of a tenant.
// Format: <prefix>_<tenant>_YYYY_MM
func (c *OpenSearchConfig) GetIndexName(tenantKey string, t time.Time) string {
	return fmt.Sprintf("%s_%s_%s", c.prefix(), indexSafe(tenantKey), t.Format("2006_01"))
}

// GetIndexPattern returns a pattern matching all indices of a tenant.
func (c *OpenSearchConfig) GetIndexPattern(tenantKey string) string {
	return fmt.Sprintf("%s_%s_*", c.prefix(), indexSafe(tenantKey))
}

// indexSafe lowercases the key and replaces characters index names reject.
func indexSafe(tenantKey string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, tenantKey)
}
