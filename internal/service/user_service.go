package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/Sharufkhanniazi/Task-Management-System/internal/auth"
	dom "github.com/Sharufkhanniazi/Task-Management-System/internal/domain"
	"github.com/Sharufkhanniazi/Task-Management-System/internal/repo"
	"github.com/Sharufkhanniazi/Task-Management-System/internal/utils"

	"github.com/jackc/pgx/v5"
)

const (
	minUsernameLen = 3
	maxUsernameLen = 50
	minPasswordLen = 6
)

// UserService handles registration and login.
type UserService struct {
	repo   repo.UserRepo
	hasher auth.Hasher
	codec  auth.Codec
}

// NewUserService returns a new UserService.
func NewUserService(r repo.UserRepo, hasher auth.Hasher, codec auth.Codec) *UserService {
	return &UserService{repo: r, hasher: hasher, codec: codec}
}

// Register creates an account and mints a token for it.
//
// Input shape is checked before any store access. The combined existence
// check fails on a match of either email or username without revealing
// which; a unique violation on the insert itself (concurrent registration)
// maps to the same conflict.
func (s *UserService) Register(ctx context.Context, email, username, password string) (dom.User, string, error) {
	email = strings.TrimSpace(email)
	username = strings.TrimSpace(username)
	if err := validateRegistration(email, username, password); err != nil {
		return dom.User{}, "", err
	}

	taken, err := s.repo.ExistsByEmailOrUsername(ctx, email, username)
	if err != nil {
		return dom.User{}, "", fmt.Errorf("check existing user: %w", err)
	}
	if taken {
		return dom.User{}, "", ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return dom.User{}, "", fmt.Errorf("hash password: %w", err)
	}

	u, err := s.repo.Create(ctx, email, username, hash)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, "", ErrUserExists
		}
		return dom.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.codec.Issue(u.ID, u.Email, u.Username)
	if err != nil {
		return dom.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

// Login verifies credentials and mints a token. An unknown email and a wrong
// password fail identically so account existence never leaks.
func (s *UserService) Login(ctx context.Context, email, password string) (dom.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return dom.User{}, "", ErrInvalidCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, "", ErrInvalidCredentials
		}
		return dom.User{}, "", fmt.Errorf("get user: %w", err)
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return dom.User{}, "", ErrInvalidCredentials
	}
	token, err := s.codec.Issue(u.ID, u.Email, u.Username)
	if err != nil {
		return dom.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return u, token, nil
}

func validateRegistration(email, username, password string) error {
	if email == "" {
		return fmt.Errorf("%w: email is required", ErrInvalidInput)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}
	if len(username) < minUsernameLen || len(username) > maxUsernameLen {
		return fmt.Errorf("%w: username must be %d-%d characters", ErrInvalidInput, minUsernameLen, maxUsernameLen)
	}
	if len(password) < minPasswordLen {
		return fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLen)
	}
	return nil
}
