package api

import (
	"bytes"
	"context"
	"encoding/json"
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

func sessionUser(username string) *domain.User {
	token := "session-" + username
	update := "update-" + username
	expiration := time.Now().Add(24 * time.Hour).UTC()
	lastLogin := time.Now().UTC()
	return &domain.User{
		ID:                primitive.NewObjectID(),
		Username:          username,
		Email:             username + "@example.com",
		FirstName:         "Alice",
		LastName:          "Smith",
		CreatedAt:         time.Now().UTC(),
		LastLogin:         &lastLogin,
		SessionToken:      &token,
		SessionExpiration: &expiration,
		UpdateToken:       &update,
	}
}

func authRouter(authService service.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAuthHandler(authService)
	router.POST("/auth/register", handler.Register)
	router.POST("/auth/login", handler.Login)
	router.POST("/auth/session", handler.RenewSession)
	return router
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterReturnsSessionTriple(t *testing.T) {
	authService := &mockAuthService{
		RegisterFunc: func(ctx context.Context, username, email, password, firstName, lastName string) (*domain.User, error) {
			assert.Equal(t, "alice", username)
			return sessionUser(username), nil
		},
	}
	router := authRouter(authService)

	w := postJSON(router, "/auth/register", gin.H{
		"username":   "alice",
		"email":      "alice@example.com",
		"password":   "password123",
		"first_name": "Alice",
		"last_name":  "Smith",
	})

	require.Equal(t, http.StatusCreated, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "alice", resp["username"])
	assert.Equal(t, "session-alice", resp["session_token"])
	assert.Equal(t, "update-alice", resp["update_token"])
	assert.NotEmpty(t, resp["session_expiration"])

	// The password hash must never leak into responses.
	assert.NotContains(t, resp, "passwordHash")
}

func TestRegisterValidationError(t *testing.T) {
	router := authRouter(&mockAuthService{})

	// Password below the minimum length never reaches the service.
	w := postJSON(router, "/auth/register", gin.H{
		"username":   "alice",
		"email":      "alice@example.com",
		"password":   "short",
		"first_name": "Alice",
		"last_name":  "Smith",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegisterTakenUsername(t *testing.T) {
	authService := &mockAuthService{
		RegisterFunc: func(ctx context.Context, username, email, password, firstName, lastName string) (*domain.User, error) {
			return nil, service.ErrUsernameTaken
		},
	}
	router := authRouter(authService)

	w := postJSON(router, "/auth/register", gin.H{
		"username":   "alice",
		"email":      "alice@example.com",
		"password":   "password123",
		"first_name": "Alice",
		"last_name":  "Smith",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username")
}

func TestLoginInvalidCredentials(t *testing.T) {
	authService := &mockAuthService{
		LoginFunc: func(ctx context.Context, username, password string) (*domain.User, error) {
			return nil, service.ErrInvalidCredentials
		},
	}
	router := authRouter(authService)

	w := postJSON(router, "/auth/login", gin.H{"username": "alice", "password": "wrong"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginSuccessReturnsSessionTriple(t *testing.T) {
	authService := &mockAuthService{
		LoginFunc: func(ctx context.Context, username, password string) (*domain.User, error) {
			return sessionUser(username), nil
		},
	}
	router := authRouter(authService)

	w := postJSON(router, "/auth/login", gin.H{"username": "alice", "password": "password123"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "session-alice", resp["session_token"])
}

func TestRenewSessionUnknownToken(t *testing.T) {
	authService := &mockAuthService{
		RenewSessionFunc: func(ctx context.Context, updateToken string) (*domain.User, error) {
			return nil, service.ErrInvalidUpdateToken
		},
	}
	router := authRouter(authService)

	w := postJSON(router, "/auth/session", gin.H{"update_token": "already-used"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRenewSessionRotates(t *testing.T) {
	authService := &mockAuthService{
		RenewSessionFunc: func(ctx context.Context, updateToken string) (*domain.User, error) {
			require.Equal(t, "valid-update", updateToken)
			return sessionUser("alice"), nil
		},
	}
	router := authRouter(authService)

	w := postJSON(router, "/auth/session", gin.H{"update_token": "valid-update"})

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "update-alice", resp["update_token"])
}
