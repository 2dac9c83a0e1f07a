package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fitsocial/internal/domain"
	"fitsocial/internal/service"

	"github.com/gin-gonic/gin"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// --- Request/Response Structs ---

type RegisterRequest struct {
	Username  string `json:"username" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type GoogleLoginRequest struct {
	IDToken   string `json:"id_token" binding:"required"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	TestMode  bool   `json:"test_mode"`
}

type RenewSessionRequest struct {
	UpdateToken string `json:"update_token" binding:"required"`
}

// UserResponse excludes sensitive info like the password hash and the
// session credentials.
type UserResponse struct {
	ID              string     `json:"id"`
	Username        string     `json:"username"`
	Email           string     `json:"email"`
	FirstName       string     `json:"first_name"`
	LastName        string     `json:"last_name"`
	CreatedAt       time.Time  `json:"created_at"`
	LastLogin       *time.Time `json:"last_login,omitempty"`
	WeeklyWorkoutID *string    `json:"weekly_workout_id,omitempty"`
}

// SessionResponse is returned by every operation that issues or replays a
// session: the user's public profile plus the full credential triple.
type SessionResponse struct {
	UserResponse
	SessionToken      string    `json:"session_token"`
	SessionExpiration time.Time `json:"session_expiration"`
	UpdateToken       string    `json:"update_token"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register a new user account
// @Description Creates a user and immediately issues a session for it.
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} SessionResponse "User created successfully"
// @Failure 400 {object} gin.H "Invalid input or username/email taken"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken), errors.Is(err, service.ErrEmailTaken):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrHashingFailed):
			abortWithError(c, http.StatusInternalServerError, "Could not process registration")
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during registration")
		}
		return
	}

	c.JSON(http.StatusCreated, MapUserToSessionResponse(user))
}

// Login godoc
// @Summary Log in with username and password
// @Description Authenticates a user and returns the session credential triple.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} SessionResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToSessionResponse(user))
}

// GoogleLogin godoc
// @Summary Log in with a Google ID token
// @Description Verifies the Google ID token, creating the account on first sign-in.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body GoogleLoginRequest true "Google sign-in payload"
// @Success 200 {object} SessionResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input or missing email claim"
// @Failure 401 {object} gin.H "Unauthorized (token verification failed)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/google-login [post]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	var req GoogleLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.GoogleLogin(c.Request.Context(), service.GoogleLoginInput{
		IDToken:   req.IDToken,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		TestMode:  req.TestMode,
	})
	if err != nil {
		var tokenErr *service.InvalidGoogleTokenError
		switch {
		case errors.As(err, &tokenErr):
			abortWithError(c, http.StatusUnauthorized, "Invalid Google ID token")
		case errors.Is(err, service.ErrMissingEmailClaim):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during login")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToSessionResponse(user))
}

// RenewSession godoc
// @Summary Renew an expired session
// @Description Exchanges a single-use update token for a fresh credential triple.
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body RenewSessionRequest true "Update token"
// @Success 200 {object} SessionResponse "Session renewed"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (unknown update token)"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/session [post]
func (h *AuthHandler) RenewSession(c *gin.Context) {
	var req RenewSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	user, err := h.authService.RenewSession(c.Request.Context(), req.UpdateToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidUpdateToken) {
			abortWithError(c, http.StatusUnauthorized, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "An unexpected error occurred during renewal")
		}
		return
	}

	c.JSON(http.StatusOK, MapUserToSessionResponse(user))
}

// Logout godoc
// @Summary Log out the current session
// @Description Clears the caller's session credentials.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} gin.H "Logged out"
// @Failure 401 {object} gin.H "Unauthorized"
// @Failure 500 {object} gin.H "Internal Server Error"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), user); err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to log out")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Me godoc
// @Summary Get the current user's profile
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} UserResponse
// @Failure 401 {object} gin.H "Unauthorized"
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := currentUser(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}

	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// MapUserToResponse converts a domain User to a UserResponse DTO.
// Crucially excludes PasswordHash and the session fields, and converts
// ObjectIDs to strings.
func MapUserToResponse(user *domain.User) UserResponse {
	if user == nil {
		return UserResponse{}
	}

	resp := UserResponse{
		ID:        user.ID.Hex(),
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		CreatedAt: user.CreatedAt,
		LastLogin: user.LastLogin,
	}
	if user.WeeklyWorkoutID != nil {
		hex := user.WeeklyWorkoutID.Hex()
		resp.WeeklyWorkoutID = &hex
	}
	return resp
}

// MapUserToSessionResponse builds the credential-bearing response for a user
// that just had a session issued or replayed.
func MapUserToSessionResponse(user *domain.User) SessionResponse {
	resp := SessionResponse{UserResponse: MapUserToResponse(user)}
	if user.SessionToken != nil {
		resp.SessionToken = *user.SessionToken
	}
	if user.SessionExpiration != nil {
		resp.SessionExpiration = *user.SessionExpiration
	}
	if user.UpdateToken != nil {
		resp.UpdateToken = *user.UpdateToken
	}
	return resp
}
