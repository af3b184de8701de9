package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("POSTGRES_WRITER_HOST", "db.internal")
	t.Setenv("POSTGRES_WRITER_PASSWORD", "secret")

	cfg := loadDatabaseConfig("WRITER")

	assert.Equal(t, "host=db.internal port=5432 user=postgres password=secret dbname=waapify_relay sslmode=disable", cfg.DSN())
}

func TestDatabaseConfig_URLWinsForWriter(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://relay:pw@pg:5432/relay?sslmode=require")

	writer := loadDatabaseConfig("WRITER")
	reader := loadDatabaseConfig("READER")

	assert.Equal(t, "postgres://relay:pw@pg:5432/relay?sslmode=require", writer.DSN())
	assert.Empty(t, reader.URL)
}

func TestHasDedicatedReader(t *testing.T) {
	t.Setenv("POSTGRES_READER_HOST", "")
	assert.False(t, hasDedicatedReader())

	t.Setenv("POSTGRES_READER_HOST", "replica")
	assert.True(t, hasDedicatedReader())
}

func TestRedisConfig_Options(t *testing.T) {
	cfg := &RedisConfig{Host: "cache", Port: "6380", DB: 2}

	opts, err := cfg.Options()

	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, 2, opts.DB)
}

func TestRedisConfig_OptionsFromURL(t *testing.T) {
	cfg := &RedisConfig{URL: "redis://:pw@cache:6379/3", PoolSize: 20}

	opts, err := cfg.Options()

	require.NoError(t, err)
	assert.Equal(t, "cache:6379", opts.Addr)
	assert.Equal(t, "pw", opts.Password)
	assert.Equal(t, 3, opts.DB)
	assert.Equal(t, 20, opts.PoolSize)
}

func TestRedisConfig_InvalidURL(t *testing.T) {
	cfg := &RedisConfig{URL: "http://cache"}

	_, err := cfg.Options()

	assert.Error(t, err)
}

func TestOpenSearchConfig_Addresses(t *testing.T) {
	t.Setenv("OPENSEARCH_URLS", "https://os-1:9200, https://os-2:9200")
	t.Setenv("OPENSEARCH_INDEX_PREFIX", "relay")

	cfg := DefaultOpenSearchConfig()

	assert.Equal(t, []string{"https://os-1:9200", "https://os-2:9200"}, cfg.addresses())
	assert.Equal(t, "relay_comp1_loc1_*", cfg.GetIndexPattern("comp1:loc1"))
}

func TestOpenSearchConfig_HostFallback(t *testing.T) {
	cfg := &OpenSearchConfig{Host: "search", Port: "9201"}

	assert.Equal(t, []string{"http://search:9201"}, cfg.addresses())
}
