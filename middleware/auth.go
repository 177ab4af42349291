package middleware

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"student_attendance/models"
)

const SessionCookie = "attendance_session"

var ErrTokenRevoked = errors.New("token has been revoked")

// TokenService handles session token generation and validation
type TokenService struct {
	JWTSecret    []byte
	TTL          time.Duration
	SecureCookie bool
	revoker      Revoker
	now          func() time.Time
}

// NewTokenService creates a new token service
func NewTokenService(jwtSecret []byte, ttl time.Duration, revoker Revoker) *TokenService {
	return &TokenService{
		JWTSecret: jwtSecret,
		TTL:       ttl,
		revoker:   revoker,
		now:       time.Now,
	}
}

// GenerateToken signs a session token for username
func (s *TokenService) GenerateToken(username string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &models.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   username,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.TTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	})
	return token.SignedString(s.JWTSecret)
}

// ValidateToken checks signature, expiry and revocation
func (s *TokenService) ValidateToken(ctx context.Context, tokenString string) (*models.Claims, error) {
	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.JWTSecret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, ErrTokenRevoked
	}
	return claims, nil
}

// InvalidateToken revokes the token for the rest of its lifetime
func (s *TokenService) InvalidateToken(ctx context.Context, claims *models.Claims) error {
	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Sub(s.now())
	}
	return s.revoker.Revoke(ctx, claims.ID, ttl)
}

func (s *TokenService) SetCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, token, int(s.TTL.Seconds()), "/", "", s.SecureCookie, true)
}

func (s *TokenService) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, "", -1, "/", "", s.SecureCookie, true)
}

// TokenFromRequest reads the session cookie, falling back to an "Authorization: Bearer" header.
func TokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// AuthMiddleware creates a gin middleware for session authentication.
// deny writes the response for requests without a valid session.
func AuthMiddleware(tokens *TokenService, deny gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := TokenFromRequest(c)
		if tokenString == "" {
			deny(c)
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(c.Request.Context(), tokenString)
		if err != nil {
			log.Printf("Token validation error: %v", err)
			deny(c)
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Set("claims", claims)
		c.Next()
	}
}

// RedirectToLogin is the deny handler of page routes.
func RedirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/")
}

// RejectUnauthenticated is the deny handler of action and API routes.
func RejectUnauthenticated(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, models.Failure("Please login first"))
}

// ClaimsFromContext returns the claims stored by AuthMiddleware.
func ClaimsFromContext(c *gin.Context) (*models.Claims, bool) {
	v, ok := c.Get("claims")
	if !ok {
		return nil, false
	}
	claims, ok := v.(*models.Claims)
	return claims, ok
}
