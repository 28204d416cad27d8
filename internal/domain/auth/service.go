package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"dukapos/internal/core/apperror"
	appctx "dukapos/internal/core/context"
	"dukapos/internal/core/id"
	"dukapos/internal/core/tx"
	"dukapos/pkg/logger"
)

// ServiceConfig holds auth service configuration.
type ServiceConfig struct {
	MaxLoginAttempts  int
	LockDuration      time.Duration
	PasswordMinLength int
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() ServiceConfig {
	return ServiceConfig{
		MaxLoginAttempts:  5,
		LockDuration:      15 * time.Minute,
		PasswordMinLength: 8,
	}
}

// Service provides authentication logic.
type Service struct {
	userRepo   UserRepository
	txManager  tx.Manager
	jwtService *JWTService
	config     ServiceConfig
}

// NewService creates a new auth service.
func NewService(userRepo UserRepository, txManager tx.Manager, jwtService *JWTService, config ServiceConfig) *Service {
	return &Service{
		userRepo:   userRepo,
		txManager:  txManager,
		jwtService: jwtService,
		config:     config,
	}
}

// Register registers a new user. Only admins may register users once
// the first account exists; the bootstrap path (no authenticated user)
// is guarded by the handler.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		return nil, apperror.NewValidation("email is required").WithDetail("field", "email")
	}
	if len(req.Password) < s.config.PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", s.config.PasswordMinLength),
		).WithDetail("field", "password")
	}

	exists, err := s.userRepo.Exists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check email exists: %w", err)
	}
	if exists {
		return nil, apperror.NewConflict("email already registered").WithDetail("email", email)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if role == "" {
		role = appctx.RoleSales
	}

	user := NewUser(email, string(passwordHash), role)
	user.FullName = req.FullName
	if err := user.Validate(ctx); err != nil {
		return nil, err
	}

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		return s.userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered",
		"user_id", user.ID,
		"email", user.Email,
		"role", user.Role)

	return user, nil
}

// Login authenticates a user and returns an access token.
func (s *Service) Login(ctx context.Context, creds Credentials) (*Token, *User, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(creds.Email)))
	if err != nil {
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}
	if err := user.CanLogin(); err != nil {
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		user.RecordFailedLogin(s.config.MaxLoginAttempts, s.config.LockDuration)
		if updateErr := s.userRepo.Update(ctx, user); updateErr != nil {
			logger.Error(ctx, "persist failed login attempt",
				"user_id", user.ID,
				"attempts", user.FailedLoginAttempts,
				"error", updateErr)
		}
		return nil, nil, apperror.NewUnauthorized("invalid credentials")
	}

	tokenString, expiresAt, err := s.jwtService.GenerateAccessToken(user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate token: %w", err)
	}

	user.RecordSuccessfulLogin()
	if updateErr := s.userRepo.Update(ctx, user); updateErr != nil {
		logger.Warn(ctx, "persist login state", "user_id", user.ID, "error", updateErr)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID, "email", user.Email)

	return &Token{AccessToken: tokenString, ExpiresAt: expiresAt}, user, nil
}

// GetByID retrieves a user.
func (s *Service) GetByID(ctx context.Context, userID id.ID) (*User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// HasUsers reports whether any account exists yet. Used for first-run
// registration bootstrap.
func (s *Service) HasUsers(ctx context.Context) (bool, error) {
	n, err := s.userRepo.Count(ctx)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ValidateToken validates a bearer token.
func (s *Service) ValidateToken(tokenString string) (*appctx.UserContext, error) {
	return s.jwtService.ValidateToken(tokenString)
}
