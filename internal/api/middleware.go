package api

import (
	"errors"
	"net/http"
	"strings"

	"fitsocial/internal/domain"
	"fitsocial/internal/service"

	"github.com/gin-gonic/gin"
)

// ContextUserKey is the gin context key under which the authenticated user
// is stored by AuthMiddleware.
const ContextUserKey = "authUser"

// AuthMiddleware creates a Gin middleware that resolves the bearer token to
// a user. Requests with a missing, malformed, invalid or expired token are
// rejected with 401 before the handler body runs; on success the resolved
// user is stored in the request context.
func AuthMiddleware(authService service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractBearerToken(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "Missing session token")
			return
		}

		user, err := authService.ValidateSession(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionNotFound):
				abortWithError(c, http.StatusUnauthorized, "Invalid session token")
			case errors.Is(err, service.ErrSessionExpired):
				abortWithError(c, http.StatusUnauthorized, "Session token has expired")
			default:
				abortWithError(c, http.StatusInternalServerError, "Failed to validate session")
			}
			return
		}

		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// extractBearerToken pulls the token out of "Authorization: Bearer <token>".
// A missing header, wrong scheme or empty token yields ok=false.
func extractBearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// currentUser returns the user injected by AuthMiddleware.
func currentUser(c *gin.Context) (*domain.User, error) {
	raw, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, errors.New("user not found in context")
	}
	user, ok := raw.(*domain.User)
	if !ok {
		return nil, errors.New("invalid user type in context")
	}
	return user, nil
}

// Helper to return JSON error response and abort request
func abortWithError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, gin.H{"error": message})
}
