package service

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	applog "recipebox/internal/log"
	"recipebox/internal/repository"
	"recipebox/models"
)

// Auth registers accounts and verifies credentials.
type Auth struct {
	users  repository.Users
	hasher PasswordHasher
}

func NewAuth(users repository.Users, hasher PasswordHasher) *Auth {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	return &Auth{users: users, hasher: hasher}
}

// Register creates a user with a hashed password. It fails with
// ErrDuplicateUsername when the username is taken.
func (a *Auth) Register(ctx context.Context, username, password string) (*models.User, error) {
	if utf8.RuneCountInString(username) > models.MaxUsernameLength {
		return nil, fmt.Errorf("%w: username must be at most %d characters", ErrInvalidInput, models.MaxUsernameLength)
	}

	if _, err := a.users.FindByUsername(ctx, username); err == nil {
		applog.Debug(ctx, "registration rejected, username taken", "username", username)
		return nil, ErrDuplicateUsername
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	hashed, err := a.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{Username: username, PasswordHash: hashed}
	if err := a.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	applog.Info(ctx, "user registered", "userID", user.ID, "username", user.Username)
	return user, nil
}

// Login returns the user matching the credentials or ErrInvalidCredentials.
func (a *Auth) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := a.users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !a.hasher.Verify(user.PasswordHash, password) {
		applog.Debug(ctx, "password mismatch", "userID", user.ID)
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Identify resolves a session's user id into an Identity. A user that no
// longer exists yields ErrAuthRequired.
func (a *Auth) Identify(ctx context.Context, userID uint) (Identity, error) {
	if userID == 0 {
		return Identity{}, ErrAuthRequired
	}
	user, err := a.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return Identity{}, ErrAuthRequired
		}
		return Identity{}, err
	}
	return Identity{UserID: user.ID, Username: user.Username}, nil
}
