package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"messagely/internal/jwt"
	"messagely/internal/logger"
	"messagely/internal/models"
	"messagely/internal/repositories"
)

// Error variables
var (
	ErrUserAlreadyExists  = errors.New("username already exists")
	ErrUserDoesNotExist   = errors.New("username does not exist")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, username, passwordHash, firstName, lastName, phone string) error
	UpdateLastLogin(ctx context.Context, username string) error
}

// Tokener defines the token operations the auth service needs.
type Tokener interface {
	Generate(ctx context.Context, username string) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// TokenRevoker denylists tokens until they expire.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

// AuthService handles registration, login and logout.
type AuthService struct {
	reader   UserReader
	writer   UserWriter
	jwt      Tokener
	revoker  TokenRevoker // nil disables revocation
	hashCost int          // bcrypt work factor
}

// NewAuthService creates a new AuthService instance. revoker may be nil,
// in which case Logout is a no-op and tokens stay valid until expiry.
func NewAuthService(reader UserReader, writer UserWriter, jwt Tokener, revoker TokenRevoker, hashCost int) *AuthService {
	return &AuthService{
		reader:   reader,
		writer:   writer,
		jwt:      jwt,
		revoker:  revoker,
		hashCost: hashCost,
	}
}

// Register creates a new user and returns a session token for it.
// The password leaves this function only as a bcrypt hash.
func (svc *AuthService) Register(ctx context.Context, username, password, firstName, lastName, phone string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to check user exists", "err", err)
		return "", err
	}
	if user != nil {
		logger.Log.Errorw("user already exists", "username", username)
		return "", ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), svc.hashCost)
	if err != nil {
		logger.Log.Errorw("failed to hash password", "err", err)
		return "", err
	}

	if err := svc.writer.Save(ctx, username, string(hashedPassword), firstName, lastName, phone); err != nil {
		// A concurrent registration can slip past the existence check
		// above; the store's unique constraint is the arbiter.
		if errors.Is(err, repositories.ErrUsernameTaken) {
			logger.Log.Errorw("user already exists", "username", username)
			return "", ErrUserAlreadyExists
		}
		logger.Log.Errorw("failed to save user", "err", err)
		return "", err
	}

	token, err := svc.jwt.Generate(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// Login authenticates a user and returns a session token.
// An unknown username (ErrUserDoesNotExist) is reported distinctly from
// a wrong password (ErrInvalidCredentials).
func (svc *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := svc.reader.GetByUsername(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to get user", "err", err)
		return "", err
	}
	if user == nil {
		logger.Log.Errorw("user does not exist", "username", username)
		return "", ErrUserDoesNotExist
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Log.Errorw("invalid credentials", "username", username)
		return "", ErrInvalidCredentials
	}

	// Refresh the login timestamp; a failure here must not fail the login.
	if err := svc.writer.UpdateLastLogin(ctx, username); err != nil {
		logger.Log.Errorw("failed to update last login", "username", username, "err", err)
	}

	token, err := svc.jwt.Generate(ctx, username)
	if err != nil {
		logger.Log.Errorw("failed to generate JWT", "err", err)
		return "", err
	}

	return token, nil
}

// Logout revokes the given session token until its natural expiry.
// Without a revocation store this is a no-op.
func (svc *AuthService) Logout(ctx context.Context, tokenString string) error {
	claims, err := svc.jwt.GetClaims(ctx, tokenString)
	if err != nil {
		logger.Log.Errorw("failed to parse token on logout", "err", err)
		return err
	}

	if svc.revoker == nil {
		logger.Log.Infow("logout without revocation store", "username", claims.Username)
		return nil
	}

	if err := svc.revoker.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt)); err != nil {
		logger.Log.Errorw("failed to revoke token", "err", err)
		return err
	}

	return nil
}
