// internal/services/auth_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/plmining/licensing-backend/internal/cache"
	"github.com/plmining/licensing-backend/internal/models"
	"github.com/plmining/licensing-backend/internal/policy"
	"github.com/plmining/licensing-backend/internal/repository"
	"github.com/plmining/licensing-backend/internal/utils"
)

// PasswordResetMailer delivers reset links.
type PasswordResetMailer interface {
	SendPasswordResetEmail(ctx context.Context, email, name, token string) error
}

type AuthService struct {
	users    repository.UserRepository
	resets   repository.PasswordResetRepository
	sessions cache.SessionRevocationStore
	tokens   *utils.TokenManager
	mailer   PasswordResetMailer
	now      func() time.Time
}

type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResponse struct {
	User        *models.User `json:"user"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresIn   int          `json:"expires_in"` // in seconds
	ExpiresAt   time.Time    `json:"expires_at"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
}

func NewAuthService(
	users repository.UserRepository,
	resets repository.PasswordResetRepository,
	sessions cache.SessionRevocationStore,
	tokens *utils.TokenManager,
	mailer PasswordResetMailer,
) *AuthService {
	return &AuthService{
		users:    users,
		resets:   resets,
		sessions: sessions,
		tokens:   tokens,
		mailer:   mailer,
		now:      time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) SignUp(ctx context.Context, req *SignUpRequest) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	user := &models.User{
		Name:  strings.TrimSpace(req.Name),
		Email: email,
		Role:  policy.RoleOfficer,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueSession(user)
}

func (s *AuthService) SignIn(ctx context.Context, req *SignInRequest) (*AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if user.PasswordHash == "" || user.CheckPassword(req.Password) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user)
}

func (s *AuthService) issueSession(user *models.User) (*AuthResponse, error) {
	token, claims, err := s.tokens.Generate(user.ID, user.Email, user.Name, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	return &AuthResponse{
		User:        user,
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
		ExpiresAt:   claims.ExpiresAtTime(),
	}, nil
}

// Authenticate validates the token signature and expiry and rejects
// sessions that were signed out.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*utils.JWTClaims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.sessions.IsRevoked(ctx, claims.SessionID())
	if err != nil {
		return nil, fmt.Errorf("failed to check session: %w", err)
	}
	if revoked {
		return nil, ErrSessionRevoked
	}
	return claims, nil
}

func (s *AuthService) SignOut(ctx context.Context, claims *utils.JWTClaims) error {
	if err := s.sessions.MarkRevoked(ctx, claims.SessionID(), claims.ExpiresAtTime()); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}
	return nil
}

// ForgotPassword never reveals whether the email exists: unknown addresses
// and delivery failures both end in a nil error.
func (s *AuthService) ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error {
	email := normalizeEmail(req.Email)

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("database error: %w", err)
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	// Only the digest is stored; the raw token exists in the email alone.
	reset := &models.PasswordResetToken{
		Email:   user.Email,
		Token:   utils.HashString(token),
		Expires: s.now().Add(resetTokenTTL),
	}
	if err := s.resets.Replace(ctx, reset); err != nil {
		return fmt.Errorf("failed to save reset token: %w", err)
	}

	if err := s.mailer.SendPasswordResetEmail(ctx, user.Email, user.Name, token); err != nil {
		logrus.WithError(err).WithField("email", user.Email).Error("Failed to send password reset email")
	}
	return nil
}

func (s *AuthService) ValidateResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	reset, err := s.resets.FindByToken(ctx, utils.HashString(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrResetTokenInvalid
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if reset.Expired(s.now()) {
		return nil, ErrResetTokenExpired
	}
	return reset, nil
}

func (s *AuthService) ResetPassword(ctx context.Context, req *ResetPasswordRequest) error {
	reset, err := s.ValidateResetToken(ctx, req.Token)
	if err != nil {
		return err
	}

	var user models.User
	if err := user.SetPassword(req.Password); err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.resets.Complete(ctx, reset.ID, reset.Email, user.PasswordHash); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrResetTokenInvalid
		}
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

func (s *AuthService) Me(ctx context.Context, claims *utils.JWTClaims) (*models.User, error) {
	id, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return user, nil
}
