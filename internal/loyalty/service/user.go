package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/opencampus/tally/internal/loyalty/domain"
	"github.com/opencampus/tally/internal/loyalty/store"
	"github.com/opencampus/tally/pkg/cryptox"
	"github.com/opencampus/tally/pkg/idx"
	"github.com/opencampus/tally/pkg/slogx"
)

var (
	ErrUsernameTaken      = errors.New("service: username or email already taken")
	ErrInvalidCredentials = errors.New("service: invalid username or password")
	ErrUserNotFound       = errors.New("service: user not found")
)

const historyLimit = 20

// UserService covers registration, login verification and the dashboard
// read.
type UserService struct {
	Store store.Store
	Clock Clock
}

// Profile is the dashboard payload: the user plus recent activity.
type Profile struct {
	User         domain.User
	Transactions []domain.PointsTransaction
	CheckIns     []domain.CheckIn
}

func (s *UserService) Register(ctx context.Context, username, email, password string) (domain.User, error) {
	log := slogx.FromContext(ctx)

	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || password == "" {
		return domain.User{}, ErrInvalidCredentials
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.Clock.Now().UTC()
	user := domain.User{
		ID:           idx.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUsernameTaken
		}
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}

	log.Info("user registered", "user_id", user.ID, "username", username)
	return user, nil
}

// Authenticate verifies a username/password pair. Both unknown-user and
// wrong-password collapse into ErrInvalidCredentials so login responses
// don't leak which usernames exist.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (domain.User, error) {
	user, err := s.Store.Users().GetUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("load user: %w", err)
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.User{}, ErrInvalidCredentials
		}
		return domain.User{}, fmt.Errorf("verify password: %w", err)
	}

	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (Profile, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrUserNotFound
		}
		return Profile{}, fmt.Errorf("load user: %w", err)
	}

	transactions, err := s.Store.Transactions().ListUserTransactions(ctx, userID, historyLimit)
	if err != nil {
		return Profile{}, fmt.Errorf("load transactions: %w", err)
	}

	checkins, err := s.Store.CheckIns().ListUserCheckIns(ctx, userID, historyLimit)
	if err != nil {
		return Profile{}, fmt.Errorf("load check-ins: %w", err)
	}

	return Profile{User: user, Transactions: transactions, CheckIns: checkins}, nil
}
