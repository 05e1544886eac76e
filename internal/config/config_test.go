package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briangreenhill/govtrack/cache"
	"github.com/briangreenhill/govtrack/govtrack"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://www.govtrack.us/api/v2/", cfg.GovTrack.BaseURL)
	assert.Equal(t, govtrack.DefaultUserAgent, cfg.GovTrack.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.GovTrack.Timeout)
	assert.Equal(t, "cache.json", cfg.Cache.File)
	assert.False(t, cfg.Cache.Offline)
	assert.False(t, cfg.Cache.Record)
	assert.Equal(t, cache.PolicyRepeat, cfg.Policy())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, zerolog.InfoLevel, cfg.Level())
}

func TestLoad(t *testing.T) {
	t.Setenv("GOVTRACK_BASE_URL", "http://localhost:9999/api/v2/")
	t.Setenv("GOVTRACK_TIMEOUT", "5s")
	t.Setenv("GOVTRACK_CACHE_FILE", "/tmp/govtrack.json")
	t.Setenv("GOVTRACK_OFFLINE", "true")
	t.Setenv("GOVTRACK_RECORD", "1")
	t.Setenv("GOVTRACK_RECORD_POLICY", "empty")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9999/api/v2/", cfg.GovTrack.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.GovTrack.Timeout)
	assert.Equal(t, "/tmp/govtrack.json", cfg.Cache.File)
	assert.True(t, cfg.Cache.Offline)
	assert.True(t, cfg.Cache.Record)
	assert.Equal(t, cache.PolicyEmpty, cfg.Policy())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, zerolog.DebugLevel, cfg.Level())
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string][2]string{
		"bad policy":    {"GOVTRACK_RECORD_POLICY", "cycle"},
		"bad timeout":   {"GOVTRACK_TIMEOUT", "soon"},
		"bad base url":  {"GOVTRACK_BASE_URL", "not a url"},
		"bad log level": {"LOG_LEVEL", "loud"},
		"bad port":      {"PORT", "http"},
	}

	for name, kv := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(kv[0], kv[1])
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestNewClientOffline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data": {}, "metadata": ""}`), 0o600))

	cfg := &Config{}
	cfg.GovTrack.BaseURL = govtrack.DefaultBaseURL
	cfg.Cache.File = path
	cfg.Cache.Offline = true
	cfg.Cache.Record = true
	cfg.Cache.RecordPolicy = "empty"

	client, err := cfg.NewClient(zerolog.Nop())
	require.NoError(t, err)
	assert.False(t, client.Online())
	assert.True(t, client.Cache().Recording())
}

func TestNewClientMissingCacheFile(t *testing.T) {
	cfg := &Config{}
	cfg.GovTrack.BaseURL = govtrack.DefaultBaseURL
	cfg.Cache.File = filepath.Join(t.TempDir(), "missing.json")
	cfg.Cache.Offline = true

	_, err := cfg.NewClient(zerolog.Nop())
	assert.ErrorIs(t, err, govtrack.ErrCacheLoad)
}

func TestNewClientRecordingExtendsCacheFile(t *testing.T) {
	sig := govtrack.DefaultBaseURL + "bill?q=health"
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"data": {"`+sig+`": ["repeat", "{}"]}, "metadata": ""}`), 0o600))

	cfg := &Config{}
	cfg.GovTrack.BaseURL = govtrack.DefaultBaseURL
	cfg.Cache.File = path
	cfg.Cache.Record = true

	client, err := cfg.NewClient(zerolog.Nop())
	require.NoError(t, err)
	assert.True(t, client.Online())
	assert.True(t, client.Cache().Recording())
	assert.Equal(t, []string{sig}, client.Cache().(*cache.Store).Signatures())
}

func TestNewClientRecordingRejectsCorruptCacheFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")
	require.NoError(t, os.WriteFile(path, []byte(`not json`), 0o600))

	cfg := &Config{}
	cfg.GovTrack.BaseURL = govtrack.DefaultBaseURL
	cfg.Cache.File = path
	cfg.Cache.Record = true

	_, err := cfg.NewClient(zerolog.Nop())
	assert.ErrorIs(t, err, govtrack.ErrCacheLoad)
}

func TestNewClientTimeoutWithCustomHTTPClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	cfg := &Config{}
	cfg.GovTrack.BaseURL = srv.URL + "/api/v2/"
	cfg.GovTrack.Timeout = 50 * time.Millisecond
	cfg.Cache.File = filepath.Join(t.TempDir(), "cache.json")

	client, err := cfg.NewClient(zerolog.Nop(), govtrack.WithHTTPClient(&http.Client{}))
	require.NoError(t, err)

	start := time.Now()
	_, err = client.GetBillsByKeyword(context.Background(), "health")
	assert.ErrorIs(t, err, govtrack.ErrQuery)
	assert.Less(t, time.Since(start), time.Second)
}
