package auth

import (
	"context"
	"errors"
	"fmt"
)

// Logger is the minimal logging interface accepted by the Service.
// Compatible with logging.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Service authenticates users and issues access tokens.
type Service struct {
	users      UserRepository
	secret     string
	ttlMinutes int
	logger     Logger
}

// NewService wires a Service to its user store and signing secret.
func NewService(users UserRepository, secret string, ttlMinutes int) *Service {
	return &Service{
		users:      users,
		secret:     secret,
		ttlMinutes: ttlMinutes,
		logger:     noopLogger{},
	}
}

// SetLogger attaches a logger.
func (s *Service) SetLogger(logger Logger) {
	if logger != nil {
		s.logger = logger
	}
}

// Login verifies a username and password and returns a signed access
// token. Unknown users and wrong passwords both come back as
// ErrInvalidCredentials, so callers learn nothing about which accounts
// exist.
func (s *Service) Login(ctx context.Context, username, password string) (string, *User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if errors.Is(err, ErrUserNotFound) {
		return "", nil, ErrInvalidCredentials
	}
	if err != nil {
		return "", nil, fmt.Errorf("looking up user: %w", err)
	}

	match, err := VerifyPassword(password, user.PasswordHash)
	if err != nil {
		return "", nil, fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		s.logger.Warn("failed login attempt", "username", username)
		return "", nil, ErrInvalidCredentials
	}

	token, err := GenerateToken(user, s.secret, s.ttlMinutes)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)

	return token, user, nil
}

// minPasswordLength is the shortest accepted password.
const minPasswordLength = 8

// Register creates a standard user account.
// Admin accounts only come from the first-boot seed.
func (s *Service) Register(ctx context.Context, username, password string) (*User, error) {
	if !IsValidUsername(username) {
		return nil, fmt.Errorf("%w: bad username", ErrInvalidUser)
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &User{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleUser,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)

	return user, nil
}

// Verify parses an access token against the service secret.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	return ParseToken(tokenString, s.secret)
}

// ChangePassword verifies the current password and stores a new hash.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	match, err := VerifyPassword(current, user.PasswordHash)
	if err != nil {
		return fmt.Errorf("verifying password: %w", err)
	}
	if !match {
		return ErrInvalidCredentials
	}

	hash, err := HashPassword(next)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	return s.users.UpdatePassword(ctx, userID, hash)
}

// EnsureAdmin seeds the admin account on first boot. It only acts when
// no users exist; later boots leave accounts untouched. Returns true
// when an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.users.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("checking user count: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	hash, err := HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &User{
		Username:     username,
		PasswordHash: hash,
		Role:         RoleAdmin,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("creating admin account: %w", err)
	}

	s.logger.Warn("admin account seeded",
		"username", username,
		"action_required", "change this password",
	)

	return true, nil
}
