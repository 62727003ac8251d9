package middleware

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/invoice_analytics/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func newUserEchoRouter(mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(StructuredLoggingMiddleware(slog.Default()))
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		userID, ok := GetUserIDFromContext(c)
		if !ok {
			c.Status(http.StatusNoContent)
			return
		}
		c.String(http.StatusOK, userID)
	})
	return r
}

func signToken(t *testing.T, claims jwt.RegisteredClaims, method jwt.SigningMethod, key any) string {
	t.Helper()
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return s
}

func TestStructuredLoggingSetsRequestID(t *testing.T) {
	r := newUserEchoRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestGetLoggerFromCtxFallsBackToDefault(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Equal(t, slog.Default(), GetLoggerFromCtx(req.Context()))
}

func TestAuthMiddleware(t *testing.T) {
	r := newUserEchoRouter(AuthMiddleware(testSecret, "invoice-analytics"))

	valid := signToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "invoice-analytics",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}, jwt.SigningMethodHS256, []byte(testSecret))

	expired := signToken(t, jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "invoice-analytics",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}, jwt.SigningMethodHS256, []byte(testSecret))

	wrongIssuer := signToken(t, jwt.RegisteredClaims{
		Subject: "user-1",
		Issuer:  "someone-else",
	}, jwt.SigningMethodHS256, []byte(testSecret))

	noSubject := signToken(t, jwt.RegisteredClaims{
		Issuer: "invoice-analytics",
	}, jwt.SigningMethodHS256, []byte(testSecret))

	wrongKey := signToken(t, jwt.RegisteredClaims{
		Subject: "user-1",
		Issuer:  "invoice-analytics",
	}, jwt.SigningMethodHS256, []byte("other"))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, "user-1"},
		{"lowercase scheme", "bearer " + valid, http.StatusOK, "user-1"},
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"bad format", "Token " + valid, http.StatusUnauthorized, "Bearer {token}"},
		{"expired", "Bearer " + expired, http.StatusUnauthorized, "Token has expired"},
		{"wrong issuer", "Bearer " + wrongIssuer, http.StatusUnauthorized, "Invalid token"},
		{"no subject", "Bearer " + noSubject, http.StatusUnauthorized, "Invalid token claims"},
		{"wrong key", "Bearer " + wrongKey, http.StatusUnauthorized, "Invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}

func TestStaticUserMiddleware(t *testing.T) {
	r := newUserEchoRouter(StaticUserMiddleware("local-dev"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "local-dev", w.Body.String())
}

func TestRateLimitBlocksAfterQuota(t *testing.T) {
	lim, err := NewMemoryRateLimiter("2-M")
	require.NoError(t, err)
	r := newUserEchoRouter(RateLimit(lim))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}

func TestNewMemoryRateLimiterRejectsBadFormat(t *testing.T) {
	_, err := NewMemoryRateLimiter("lots")
	assert.Error(t, err)
}

func TestMetricsMiddlewareRecordsRouteTemplate(t *testing.T) {
	m := metrics.New(false)
	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/42", nil))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/nope", nil))

	count, err := testutil.GatherAndCount(m.Registry(), "invoice_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count) // one series per (route, status)
}
