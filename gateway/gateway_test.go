package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"go-ledger-api/common"
	"go-ledger-api/config"
	"go-ledger-api/logger"
	"go-ledger-api/middleware"
	"go-ledger-api/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// upstream records what the gateway forwarded.
type upstream struct {
	srv      *httptest.Server
	hits     atomic.Int32
	userID   atomic.Value
	username atomic.Value
	path     atomic.Value
}

func newUpstream(t *testing.T) *upstream {
	u := &upstream{}
	u.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.hits.Add(1)
		u.userID.Store(r.Header.Get(middleware.HeaderUserID))
		u.username.Store(r.Header.Get(middleware.HeaderUsername))
		u.path.Store(r.URL.Path)
		w.Header().Set("X-Upstream", "books")
		w.WriteHeader(http.StatusTeapot)
		io.WriteString(w, `{"from":"upstream"}`)
	}))
	t.Cleanup(u.srv.Close)
	return u
}

func newTestGateway(t *testing.T, books, auth *upstream) (*Gateway, *token.Issuer) {
	t.Helper()
	issuer, err := token.NewIssuer("gateway-secret", time.Hour)
	require.NoError(t, err)
	gw, err := New([]config.RouteConfig{
		{Prefix: "/auth", Upstream: auth.srv.URL, Protected: false},
		{Prefix: "/books", Upstream: books.srv.URL, Protected: true},
	}, issuer)
	require.NoError(t, err)
	return gw, issuer
}

func TestGateway_SpoofedIdentityWithoutToken(t *testing.T) {
	books, auth := newUpstream(t), newUpstream(t)
	gw, _ := newTestGateway(t, books, auth)

	req := httptest.NewRequest(http.MethodGet, "/books/1", nil)
	req.Header.Set(middleware.HeaderUserID, "999")
	rr := httptest.NewRecorder()

	gw.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	var body common.AppError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, common.KindAuthentication, body.Type)
	assert.Equal(t, int32(0), books.hits.Load(), "upstream must not be contacted")
}

func TestGateway_OverwritesIdentityHeaders(t *testing.T) {
	books, auth := newUpstream(t), newUpstream(t)
	gw, issuer := newTestGateway(t, books, auth)
	access, err := issuer.IssueAccessToken(token.Claims{UserID: 1, Username: "alice"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/books/1", nil)
	req.Header.Set("Authorization", "Bearer "+access.Value)
	req.Header.Set(middleware.HeaderUserID, "999")
	req.Header.Set(middleware.HeaderUsername, "mallory")
	rr := httptest.NewRecorder()

	gw.ServeHTTP(rr, req)

	assert.Equal(t, int32(1), books.hits.Load())
	assert.Equal(t, "1", books.userID.Load())
	assert.Equal(t, "alice", books.username.Load())
	assert.Equal(t, "/books/1", books.path.Load())

	assert.Equal(t, http.StatusTeapot, rr.Code, "upstream status passes through")
	assert.Equal(t, "books", rr.Header().Get("X-Upstream"))
	assert.JSONEq(t, `{"from":"upstream"}`, rr.Body.String())
}

func TestGateway_PublicRouteStripsIdentity(t *testing.T) {
	books, auth := newUpstream(t), newUpstream(t)
	gw, _ := newTestGateway(t, books, auth)

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", nil)
	req.Header.Set(middleware.HeaderUserID, "999")
	req.Header.Set(middleware.HeaderUsername, "mallory")
	rr := httptest.NewRecorder()

	gw.ServeHTTP(rr, req)

	assert.Equal(t, int32(1), auth.hits.Load())
	assert.Equal(t, "", auth.userID.Load())
	assert.Equal(t, "", auth.username.Load())
}

func TestGateway_Routing(t *testing.T) {
	books, auth := newUpstream(t), newUpstream(t)
	gw, _ := newTestGateway(t, books, auth)

	t.Run("unknown prefix", func(t *testing.T) {
		rr := httptest.NewRecorder()
		gw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("prefix must end at a segment boundary", func(t *testing.T) {
		rr := httptest.NewRecorder()
		gw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/authx", nil))
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Equal(t, int32(0), auth.hits.Load())
	})
}

func TestGateway_UpstreamDown(t *testing.T) {
	dead := httptest.NewServer(http.NotFoundHandler())
	deadURL := dead.URL
	dead.Close()

	issuer, err := token.NewIssuer("gateway-secret", time.Hour)
	require.NoError(t, err)
	gw, err := New([]config.RouteConfig{{Prefix: "/auth", Upstream: deadURL}}, issuer)
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	gw.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/signin", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
	var body common.AppError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, common.KindInternal, body.Type)
}

func TestNew_RejectsBadRoutes(t *testing.T) {
	issuer, err := token.NewIssuer("gateway-secret", time.Hour)
	require.NoError(t, err)

	_, err = New([]config.RouteConfig{{Prefix: "books", Upstream: "http://localhost:1"}}, issuer)
	assert.Error(t, err)

	_, err = New([]config.RouteConfig{{Prefix: "/books", Upstream: "localhost"}}, issuer)
	assert.Error(t, err)
}

func TestNewHandler(t *testing.T) {
	books, auth := newUpstream(t), newUpstream(t)
	issuer, err := token.NewIssuer("gateway-secret", time.Hour)
	require.NoError(t, err)

	cfg := config.GatewayConfig{
		Routes: []config.RouteConfig{
			{Prefix: "/auth", Upstream: auth.srv.URL},
			{Prefix: "/books", Upstream: books.srv.URL, Protected: true},
		},
		RateLimit:   config.RateLimitConfig{Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Hour, TTL: time.Hour, Prefix: "rl"},
		CORSOrigins: []string{"*"},
	}
	h, err := NewHandler(cfg, issuer, middleware.NewLocalLimiter(cfg.RateLimit))
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get(middleware.HeaderRequestID))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/signin", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/auth/signin", nil))
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)
}
