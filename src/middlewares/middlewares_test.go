package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"staybook/src/lib"
	"staybook/src/models"
	"staybook/src/utils"
)

const testSecret = "middleware-test-secret"

type fakeDenylist struct {
	revoked map[string]bool
	err     error
}

func (f *fakeDenylist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	f.revoked[jti] = true
	return nil
}

func (f *fakeDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	return f.revoked[jti], f.err
}

func init() {
	gin.SetMode(gin.TestMode)
}

func authRouter(denylist *fakeDenylist) *gin.Engine {
	r := gin.New()
	var dl lib.TokenDenylist
	if denylist != nil {
		dl = denylist
	}
	r.GET("/me", Auth(testSecret, dl), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"id": ctx.GetUint("id"), "email": ctx.GetString("email")})
	})
	return r
}

func request(r http.Handler, token string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRejectsMissingAndBadTokens(t *testing.T) {
	r := authRouter(nil)

	w := request(r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHORIZED", gjson.Get(w.Body.String(), "error").String())

	w = request(r, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	other, _, err := utils.GenerateToken("another-secret", time.Hour, &models.User{ID: 3})
	require.NoError(t, err)
	w = request(r, other)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthSetsIdentity(t *testing.T) {
	token, _, err := utils.GenerateToken(testSecret, time.Hour, &models.User{ID: 42, Email: "ana@example.com"})
	require.NoError(t, err)

	w := request(authRouter(nil), token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(42), gjson.Get(w.Body.String(), "id").Int())
	assert.Equal(t, "ana@example.com", gjson.Get(w.Body.String(), "email").String())
}

func TestAuthHonoursDenylist(t *testing.T) {
	token, claims, err := utils.GenerateToken(testSecret, time.Hour, &models.User{ID: 7})
	require.NoError(t, err)

	dl := &fakeDenylist{revoked: map[string]bool{claims.ID: true}}
	w := request(authRouter(dl), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "token has been revoked", gjson.Get(w.Body.String(), "message").String())

	// a denylist outage lets the request through
	down := &fakeDenylist{revoked: map[string]bool{}, err: errors.New("redis down")}
	w = request(authRouter(down), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitPerIP(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Every(time.Hour), 2, time.Hour)
	r := gin.New()
	r.POST("/login", RateLimit(limiter), func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	send := func(ip string) int {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = ip + ":1234"
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1"))
	assert.Equal(t, http.StatusOK, send("10.0.0.2"))
}

func TestSecureHeaders(t *testing.T) {
	r := gin.New()
	r.Use(SecureHeaders)
	r.GET("/", func(ctx *gin.Context) { ctx.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
}
