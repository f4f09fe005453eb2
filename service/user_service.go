package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"time"
)

type UserService struct {
	users    repository.IUserRepository
	sessions SessionManager
	hasher   PasswordHasher
	now      func() time.Time
}

func NewUserService(users repository.IUserRepository, sessions SessionManager, hasher PasswordHasher) *UserService {
	return &UserService{users: users, sessions: sessions, hasher: hasher, now: time.Now}
}

func (s *UserService) GetMe(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// UpdateMe applies a partial profile update. Changing the password signs the
// user out everywhere.
func (s *UserService) UpdateMe(ctx context.Context, userID int64, req model.UpdateUserRequest) (*model.User, error) {
	user, err := s.GetMe(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Username != nil {
		user.Username = *req.Username
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	passwordChanged := false
	if req.Password != nil {
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("could not hash password: %w", err)
		}
		user.PasswordHash = hashed
		passwordChanged = true
	}
	user.UpdateTime = s.now()
	user.UpdateUserID = userID

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			return nil, ErrEmailAlreadyExists
		case errors.Is(err, sql.ErrNoRows):
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if passwordChanged {
		logger.Log.WithField("user_id", userID).Info("Password changed, revoking sessions")
		s.sessions.RevokeSession(ctx, "", userID)
	}
	return user, nil
}
