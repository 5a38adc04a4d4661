package rest

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
)

func TestAuthMiddleware(t *testing.T) {
	s := newTestServer(t)

	valid, err := auth.GenerateToken("user-1", []byte("access"), time.Now(), time.Hour, "")
	require.NoError(t, err)
	expired, err := auth.GenerateToken("user-1", []byte("access"), time.Now().Add(-2*time.Hour), time.Hour, "")
	require.NoError(t, err)
	foreign, err := auth.GenerateToken("user-1", []byte("other"), time.Now(), time.Hour, "")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/private", s.authMiddleware(), func(c *gin.Context) {
		fromCtx, _ := auth.UserIDFromContext(c.Request.Context())
		c.JSON(http.StatusOK, gin.H{"principal": principal(c), "ctx": fromCtx})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantMsg    string
	}{
		{"no header", "", http.StatusUnauthorized, "Authorization header missing or malformed"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Authorization header missing or malformed"},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, "Authorization header missing or malformed"},
		{"double space", "Bearer  " + valid, http.StatusUnauthorized, "Authorization header missing or malformed"},
		{"garbage token", "Bearer abc", http.StatusForbidden, "Invalid or expired token"},
		{"expired token", "Bearer " + expired, http.StatusForbidden, "Invalid or expired token"},
		{"wrong secret", "Bearer " + foreign, http.StatusForbidden, "Invalid or expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/private", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantMsg, decode[errorResponse](t, rec).Message)
		})
	}

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+valid)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode[map[string]string](t, rec)
		assert.Equal(t, "user-1", body["principal"])
		assert.Equal(t, "user-1", body["ctx"])
	})
}

func TestRequestID_EchoedOrGenerated(t *testing.T) {
	h := newTestServer(t).Handler()

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(requestIDHeader, "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get(requestIDHeader))

	rec = do(t, h, http.MethodGet, "/ping", nil, "")
	assert.NotEmpty(t, rec.Header().Get(requestIDHeader))
}

func TestRecovery_Returns500(t *testing.T) {
	s := newTestServer(t)

	r := gin.New()
	r.Use(s.recovery())
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	rec := do(t, r, http.MethodGet, "/boom", nil, "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Server error", decode[errorResponse](t, rec).Message)
}

func TestCORS(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		origin  string
		want    string
	}{
		{"allowed origin", []string{"http://app.local"}, "http://app.local", "http://app.local"},
		{"unknown origin", []string{"http://app.local"}, "http://evil.local", ""},
		{"wildcard", []string{"*"}, "http://any.local", "*"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestServer(t, tt.origins...).Handler()

			req := httptest.NewRequest(http.MethodOptions, "/posts", nil)
			req.Header.Set("Origin", tt.origin)
			req.Header.Set("Access-Control-Request-Method", http.MethodGet)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}
