package rest

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/blogkeeper/internal/logging"
	"github.com/dmitrijs2005/blogkeeper/internal/server/auth"
	"github.com/dmitrijs2005/blogkeeper/internal/server/config"
	"github.com/dmitrijs2005/blogkeeper/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/blogkeeper/internal/server/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		AccessTokenSecret:            "access",
		RefreshTokenSecret:           "refresh",
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 7 * 24 * time.Hour,
	}
}

func newTestServer(t *testing.T, origins ...string) *HTTPServer {
	t.Helper()

	m := repomanager.NewMemoryRepositoryManager()
	l := logging.Nop{}
	tokens := auth.NewTokenService(testConfig(), m.RefreshTokens())

	return NewHTTPServer(":0", origins, l, Services{
		Tokens:   tokens,
		Auth:     services.NewAuthService(m, tokens, l),
		Users:    services.NewUserService(m, tokens, l),
		Posts:    services.NewPostService(m, l),
		Comments: services.NewCommentService(m, l),
	})
}

func do(t *testing.T, h http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

type session struct {
	ID           string
	AccessToken  string
	RefreshToken string
}

func registerUser(t *testing.T, h http.Handler, name string) session {
	t.Helper()

	rec := do(t, h, http.MethodPost, "/auth/register", map[string]string{
		"username": name,
		"email":    name + "@example.com",
		"password": "pw-" + name,
	}, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	res := decode[authResponse](t, rec)
	return session{ID: res.User.ID, AccessToken: res.AccessToken, RefreshToken: res.RefreshToken}
}
