package app

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"go-ledger-api/config"
	"go-ledger-api/events"
	"go-ledger-api/logger"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func testConfig() config.Config {
	var cfg config.Config
	cfg.JWT = config.JWTConfig{SecretKey: "test-secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour}
	cfg.Password.BcryptCost = 4
	cfg.Services.SettingsCacheTTL = time.Minute
	cfg.Gateway = config.GatewayConfig{
		Routes: []config.RouteConfig{
			{Prefix: "/auth", Upstream: "http://127.0.0.1:1", Protected: false},
		},
		RateLimit: config.RateLimitConfig{Enabled: true, Capacity: 5, RefillTokens: 1, RefillInterval: time.Second, Prefix: "rl"},
	}
	return cfg
}

func TestNewPublisher_NoBrokerConfigured(t *testing.T) {
	p := newPublisher(testConfig())
	assert.IsType(t, events.NoopPublisher{}, p)
}

func TestNewAuthServer(t *testing.T) {
	database, _, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	t.Run("Serves health", func(t *testing.T) {
		h, err := NewAuthServer(testConfig(), database, events.NoopPublisher{})
		require.NoError(t, err)

		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("Refuses an empty signing secret", func(t *testing.T) {
		cfg := testConfig()
		cfg.JWT.SecretKey = ""
		_, err := NewAuthServer(cfg, database, events.NoopPublisher{})
		assert.Error(t, err)
	})
}

func TestNewSettingsServer_WithoutRedis(t *testing.T) {
	database, _, err := sqlmock.New()
	require.NoError(t, err)
	defer database.Close()

	h := NewSettingsServer(testConfig(), database, nil)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/user-settings", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestNewGatewayServer(t *testing.T) {
	h, err := NewGatewayServer(testConfig(), nil)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
