package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"transitpulse.org/internal/appconf"
	"transitpulse.org/scoredb"
)

func TestParseAPIKeys(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "Single key",
			input:    "test-key",
			expected: []string{"test-key"},
		},
		{
			name:     "Multiple keys",
			input:    "key1,key2,key3",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Keys with spaces",
			input:    " key1 , key2 , key3 ",
			expected: []string{"key1", "key2", "key3"},
		},
		{
			name:     "Empty string",
			input:    "",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ParseAPIKeys(tt.input)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func testConfig() appconf.Config {
	return appconf.Config{
		Name:          "transitpulse-test",
		Port:          4000,
		Env:           appconf.Test,
		ApiKeys:       []string{"test"},
		AdminApiKeys:  []string{"admin"},
		RateLimit:     100,
		SweepInterval: time.Hour,
	}
}

func TestBuildApplicationWiresDependencies(t *testing.T) {
	cfg := testConfig()
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	coreApp, err := BuildApplication(cfg, scoredb.NewConfig(dbPath, cfg.Env, false), "")

	require.NoError(t, err, "BuildApplication should not return an error")
	t.Cleanup(func() { _ = coreApp.ScoreDB.Close() })

	assert.NotNil(t, coreApp.Logger, "Logger should be initialized")
	assert.NotNil(t, coreApp.ScoreDB, "score database should be initialized")
	assert.NotNil(t, coreApp.Scheduler, "scheduler should be initialized")
	assert.NotNil(t, coreApp.Analyzer, "analyzer should be initialized")
	assert.Equal(t, cfg, coreApp.Config, "Config should match input")
}

func TestCreateServerServesHealthz(t *testing.T) {
	cfg := testConfig()
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	coreApp, err := BuildApplication(cfg, scoredb.NewConfig(dbPath, cfg.Env, false), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = coreApp.ScoreDB.Close() })

	srv := CreateServer(coreApp, cfg)
	assert.Equal(t, ":4000", srv.Addr)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCreateServerRejectsUnknownKey(t *testing.T) {
	cfg := testConfig()
	dbPath := filepath.Join(t.TempDir(), "scores.db")

	coreApp, err := BuildApplication(cfg, scoredb.NewConfig(dbPath, cfg.Env, false), "")
	require.NoError(t, err)
	t.Cleanup(func() { _ = coreApp.ScoreDB.Close() })

	srv := CreateServer(coreApp, cfg)

	req := httptest.NewRequest("GET", "/api/v1/routes?key=wrong", nil)
	w := httptest.NewRecorder()
	srv.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
