package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fitsocial/internal/domain"
	"fitsocial/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockAuthService stubs the auth service for middleware and handler tests.
type mockAuthService struct {
	RegisterFunc        func(ctx context.Context, username, email, password, firstName, lastName string) (*domain.User, error)
	LoginFunc           func(ctx context.Context, username, password string) (*domain.User, error)
	GoogleLoginFunc     func(ctx context.Context, in service.GoogleLoginInput) (*domain.User, error)
	RenewSessionFunc    func(ctx context.Context, updateToken string) (*domain.User, error)
	ValidateSessionFunc func(ctx context.Context, sessionToken string) (*domain.User, error)
	LogoutFunc          func(ctx context.Context, user *domain.User) error
}

func (m *mockAuthService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*domain.User, error) {
	if m.RegisterFunc == nil {
		return nil, errors.New("unexpected call: Register")
	}
	return m.RegisterFunc(ctx, username, email, password, firstName, lastName)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if m.LoginFunc == nil {
		return nil, errors.New("unexpected call: Login")
	}
	return m.LoginFunc(ctx, username, password)
}

func (m *mockAuthService) GoogleLogin(ctx context.Context, in service.GoogleLoginInput) (*domain.User, error) {
	if m.GoogleLoginFunc == nil {
		return nil, errors.New("unexpected call: GoogleLogin")
	}
	return m.GoogleLoginFunc(ctx, in)
}

func (m *mockAuthService) RenewSession(ctx context.Context, updateToken string) (*domain.User, error) {
	if m.RenewSessionFunc == nil {
		return nil, errors.New("unexpected call: RenewSession")
	}
	return m.RenewSessionFunc(ctx, updateToken)
}

func (m *mockAuthService) ValidateSession(ctx context.Context, sessionToken string) (*domain.User, error) {
	if m.ValidateSessionFunc == nil {
		return nil, errors.New("unexpected call: ValidateSession")
	}
	return m.ValidateSessionFunc(ctx, sessionToken)
}

func (m *mockAuthService) Logout(ctx context.Context, user *domain.User) error {
	if m.LogoutFunc == nil {
		return errors.New("unexpected call: Logout")
	}
	return m.LogoutFunc(ctx, user)
}

func protectedRouter(authService service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(authService), func(c *gin.Context) {
		user, err := currentUser(c)
		if err != nil {
			abortWithError(c, http.StatusInternalServerError, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"username": user.Username})
	})
	return router
}

func performRequest(router *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareValidToken(t *testing.T) {
	expiration := time.Now().Add(time.Hour)
	token := "live-session"
	authService := &mockAuthService{
		ValidateSessionFunc: func(ctx context.Context, sessionToken string) (*domain.User, error) {
			require.Equal(t, "live-session", sessionToken)
			return &domain.User{
				ID:                primitive.NewObjectID(),
				Username:          "alice",
				SessionToken:      &token,
				SessionExpiration: &expiration,
			}, nil
		},
	}

	w := performRequest(protectedRouter(authService), "Bearer live-session")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"username": "alice"}`, w.Body.String())
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	w := performRequest(protectedRouter(&mockAuthService{}), "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	router := protectedRouter(&mockAuthService{})

	for _, header := range []string{"live-session", "Basic abc123", "Bearer ", "Bearer"} {
		w := performRequest(router, header)
		assert.Equal(t, http.StatusUnauthorized, w.Code, "header=%q", header)
	}
}

func TestAuthMiddlewareUnknownToken(t *testing.T) {
	authService := &mockAuthService{
		ValidateSessionFunc: func(ctx context.Context, sessionToken string) (*domain.User, error) {
			return nil, service.ErrSessionNotFound
		},
	}

	w := performRequest(protectedRouter(authService), "Bearer bogus")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid session token")
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	authService := &mockAuthService{
		ValidateSessionFunc: func(ctx context.Context, sessionToken string) (*domain.User, error) {
			return nil, service.ErrSessionExpired
		},
	}

	w := performRequest(protectedRouter(authService), "Bearer stale")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "expired")
}

func TestAuthMiddlewareCaseInsensitiveScheme(t *testing.T) {
	expiration := time.Now().Add(time.Hour)
	authService := &mockAuthService{
		ValidateSessionFunc: func(ctx context.Context, sessionToken string) (*domain.User, error) {
			return &domain.User{Username: "alice", SessionExpiration: &expiration}, nil
		},
	}

	w := performRequest(protectedRouter(authService), "bearer live-session")

	assert.Equal(t, http.StatusOK, w.Code)
}
