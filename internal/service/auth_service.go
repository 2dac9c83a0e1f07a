package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fitsocial/internal/domain"
	"fitsocial/internal/googleauth"
	"fitsocial/internal/repository"

	"github.com/google/uuid"
)

// --- Error Definitions ---
var (
	ErrUsernameTaken      = errors.New("username is already taken")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidUpdateToken = errors.New("invalid update token")
	ErrSessionNotFound    = errors.New("invalid session token")
	ErrSessionExpired     = errors.New("session token has expired")
	ErrMissingEmailClaim  = errors.New("email not found in token")
	ErrHashingFailed      = errors.New("failed to hash password")
)

// InvalidGoogleTokenError carries the verifier's underlying reason for
// diagnosability. The raw token never appears in the message.
type InvalidGoogleTokenError struct {
	Reason error
}

func (e *InvalidGoogleTokenError) Error() string {
	return fmt.Sprintf("invalid Google ID token: %v", e.Reason)
}

func (e *InvalidGoogleTokenError) Unwrap() error { return e.Reason }

// GoogleLoginInput is the payload for a Google sign-in attempt. FirstName
// and LastName override the token's name claims when set. TestMode skips
// signature verification and is honored only when the service was built with
// the test bypass enabled.
type GoogleLoginInput struct {
	IDToken   string
	Email     string
	FirstName string
	LastName  string
	TestMode  bool
}

// AuthService owns the credential and session lifecycle: registration,
// password and Google login, session validation, renewal and logout.
type AuthService interface {
	Register(ctx context.Context, username, email, password, firstName, lastName string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
	GoogleLogin(ctx context.Context, in GoogleLoginInput) (*domain.User, error)
	RenewSession(ctx context.Context, updateToken string) (*domain.User, error)
	ValidateSession(ctx context.Context, sessionToken string) (*domain.User, error)
	Logout(ctx context.Context, user *domain.User) error
}

// authService implements the AuthService interface.
type authService struct {
	userRepo        repository.UserRepository
	verifier        googleauth.Verifier
	throttle        *LoginThrottle
	sessionTTL      time.Duration
	allowTestBypass bool
	now             func() time.Time
}

// NewAuthService creates a new instance of authService.
func NewAuthService(userRepo repository.UserRepository, verifier googleauth.Verifier, throttle *LoginThrottle, sessionTTL time.Duration, allowTestBypass bool) AuthService {
	if sessionTTL <= 0 {
		sessionTTL = 24 * time.Hour
	}
	return &authService{
		userRepo:        userRepo,
		verifier:        verifier,
		throttle:        throttle,
		sessionTTL:      sessionTTL,
		allowTestBypass: allowTestBypass,
		now:             time.Now,
	}
}

// Register creates a new account and immediately issues a session for it.
func (s *authService) Register(ctx context.Context, username, email, password, firstName, lastName string) (*domain.User, error) {
	if username == "" || email == "" || password == "" || firstName == "" || lastName == "" {
		return nil, errors.New("username, email, password, first name and last name cannot be empty")
	}

	if _, err := s.userRepo.GetByUsername(ctx, username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, ErrHashingFailed
	}

	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent registration.
			return nil, ErrUsernameTaken
		}
		return nil, err
	}
	user.ID = userID

	if err := s.issueSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates by username and password and issues a fresh session.
// Rapid duplicate attempts within the throttle's cooldown window return the
// user's current session unchanged instead of minting a new one.
func (s *authService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	if s.deduped(username) {
		if user, err := s.userRepo.GetByUsername(ctx, username); err == nil && user.HasActiveSession(s.now()) {
			return user, nil
		}
		// No usable session to replay; fall through to the normal flow.
	}

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := CheckPassword(user.PasswordHash, password)
	if err != nil {
		// Corrupted stored hash; do not mask it as bad credentials.
		return nil, err
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	if err := s.issueSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GoogleLogin verifies a Google ID token, finds or creates the matching
// local account, and issues a session through the same path as password
// login. Duplicate attempts are throttled by email.
func (s *authService) GoogleLogin(ctx context.Context, in GoogleLoginInput) (*domain.User, error) {
	var (
		email     string
		firstName string
		lastName  string
	)

	if in.TestMode && s.allowTestBypass {
		// Development bypass: trust the request body outright.
		email = in.Email
		if email == "" {
			email = "test@example.com"
		}
		firstName = orDefault(in.FirstName, "Test")
		lastName = orDefault(in.LastName, "User")
	} else {
		claims, err := s.verifier.Verify(ctx, in.IDToken)
		if err != nil {
			return nil, &InvalidGoogleTokenError{Reason: err}
		}
		if claims.Email == "" {
			return nil, ErrMissingEmailClaim
		}
		email = claims.Email
		firstName = orDefault(in.FirstName, claims.GivenName)
		lastName = orDefault(in.LastName, claims.FamilyName)
	}

	if s.deduped(email) {
		if user, err := s.userRepo.GetByEmail(ctx, email); err == nil && user.HasActiveSession(s.now()) {
			return user, nil
		}
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		// Keep profile fields in sync with the identity provider.
		user.FirstName = firstName
		user.LastName = lastName
		if err := s.userRepo.UpdateProfile(ctx, user); err != nil {
			return nil, err
		}
	case errors.Is(err, repository.ErrNotFound):
		user, err = s.createGoogleUser(ctx, email, firstName, lastName)
		if err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	if err := s.issueSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// createGoogleUser provisions a first-time Google sign-in: username derived
// from the email local part, and a random password the user will never use.
func (s *authService) createGoogleUser(ctx context.Context, email, firstName, lastName string) (*domain.User, error) {
	hash, err := HashPassword(uuid.NewString())
	if err != nil {
		return nil, ErrHashingFailed
	}

	username := email[:strings.IndexByte(email+"@", '@')]
	user := &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}

	userID, err := s.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicate) {
		// Local part collided with an existing username; retry once with a
		// random suffix.
		user.Username = fmt.Sprintf("%s-%s", username, uuid.NewString()[:8])
		userID, err = s.userRepo.Create(ctx, user)
	}
	if err != nil {
		return nil, err
	}
	user.ID = userID
	return user, nil
}

// RenewSession rotates the full session triple for the user holding the
// update token. The presented token is invalid for further renewals.
func (s *authService) RenewSession(ctx context.Context, updateToken string) (*domain.User, error) {
	if updateToken == "" {
		return nil, ErrInvalidUpdateToken
	}

	user, err := s.userRepo.GetByUpdateToken(ctx, updateToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidUpdateToken
		}
		return nil, err
	}

	token := uuid.NewString()
	expiration := s.now().UTC().Add(s.sessionTTL)
	update := uuid.NewString()
	user.SessionToken = &token
	user.SessionExpiration = &expiration
	user.UpdateToken = &update

	if err := s.userRepo.UpdateSession(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateSession resolves a session token to its user. It does not renew.
func (s *authService) ValidateSession(ctx context.Context, sessionToken string) (*domain.User, error) {
	if sessionToken == "" {
		return nil, ErrSessionNotFound
	}

	user, err := s.userRepo.GetBySessionToken(ctx, sessionToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	if user.SessionExpiration == nil || user.SessionExpiration.Before(s.now()) {
		return nil, ErrSessionExpired
	}
	return user, nil
}

// Logout clears all three session fields, returning the user to logged out.
func (s *authService) Logout(ctx context.Context, user *domain.User) error {
	user.SessionToken = nil
	user.SessionExpiration = nil
	user.UpdateToken = nil
	return s.userRepo.UpdateSession(ctx, user)
}

// issueSession overwrites the user's session with a fresh token triple and
// stamps last login. There is only ever one active session per user.
func (s *authService) issueSession(ctx context.Context, user *domain.User) error {
	now := s.now().UTC()
	token := uuid.NewString()
	expiration := now.Add(s.sessionTTL)
	update := uuid.NewString()

	user.SessionToken = &token
	user.SessionExpiration = &expiration
	user.UpdateToken = &update
	user.LastLogin = &now

	return s.userRepo.UpdateSession(ctx, user)
}

// deduped consults the login throttle. The throttle is best-effort: a nil
// throttle simply disables deduplication.
func (s *authService) deduped(identity string) bool {
	if s.throttle == nil {
		return false
	}
	return s.throttle.ShouldDedupe(identity)
}

func orDefault(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}
