package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTokenService(now time.Time) *TokenService {
	s := NewTokenService([]byte("secret"), time.Hour, NewCacheRevoker())
	s.now = func() time.Time { return now }
	return s
}

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newTokenService(time.Now())

	token, err := s.GenerateToken("alice")
	require.NoError(t, err)

	claims, err := s.ValidateToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Username)
	assert.NotEmpty(t, claims.ID)

	require.NoError(t, s.InvalidateToken(ctx, claims))
	_, err = s.ValidateToken(ctx, token)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestTokenService_Rejects(t *testing.T) {
	ctx := context.Background()
	now := time.Now()
	s := newTokenService(now)

	token, err := s.GenerateToken("alice")
	require.NoError(t, err)

	t.Run("expired", func(t *testing.T) {
		later := newTokenService(now.Add(2 * time.Hour))
		_, err := later.ValidateToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("other secret", func(t *testing.T) {
		other := NewTokenService([]byte("another"), time.Hour, NewCacheRevoker())
		_, err := other.ValidateToken(ctx, token)
		assert.Error(t, err)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.ValidateToken(ctx, "not-a-token")
		assert.Error(t, err)
	})
}

func TestAuthMiddleware(t *testing.T) {
	s := newTokenService(time.Now())
	token, err := s.GenerateToken("alice")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/dashboard", AuthMiddleware(s, RedirectToLogin), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("username"))
	})
	r.GET("/api/students", AuthMiddleware(s, RejectUnauthenticated), func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	tests := []struct {
		name     string
		path     string
		cookie   string
		bearer   string
		wantCode int
		wantBody string
	}{
		{"page without session", "/dashboard", "", "", http.StatusFound, ""},
		{"page with cookie", "/dashboard", token, "", http.StatusOK, "alice"},
		{"api without session", "/api/students", "", "", http.StatusUnauthorized, `{"status":"failure","message":"Please login first"}`},
		{"api with bearer", "/api/students", "", token, http.StatusOK, "ok"},
		{"api with bad cookie", "/api/students", "forged", "", http.StatusUnauthorized, `{"status":"failure","message":"Please login first"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.cookie != "" {
				req.AddCookie(&http.Cookie{Name: SessionCookie, Value: tt.cookie})
			}
			if tt.bearer != "" {
				req.Header.Set("Authorization", "Bearer "+tt.bearer)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantCode == http.StatusFound {
				assert.Equal(t, "/", rec.Header().Get("Location"))
			}
		})
	}
}

func TestCacheRevoker(t *testing.T) {
	ctx := context.Background()
	r := NewCacheRevoker()

	require.NoError(t, r.Revoke(ctx, "expired", 0))
	revoked, err := r.IsRevoked(ctx, "expired")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "jti", time.Minute))
	revoked, err = r.IsRevoked(ctx, "jti")
	require.NoError(t, err)
	assert.True(t, revoked)
}
