package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"go-ledger-api/events"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailAlreadyExists = errors.New("email is already registered")
)

type AuthService struct {
	users     repository.IUserRepository
	sessions  SessionManager
	hasher    PasswordHasher
	publisher events.Publisher
	now       func() time.Time
}

func NewAuthService(users repository.IUserRepository, sessions SessionManager, hasher PasswordHasher) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		hasher:    hasher,
		publisher: events.NoopPublisher{},
		now:       time.Now,
	}
}

func (s *AuthService) WithPublisher(p events.Publisher) *AuthService {
	s.publisher = p
	return s
}

func (s *AuthService) WithClock(now func() time.Time) *AuthService {
	s.now = now
	return s
}

// SignUp creates the user and opens its first session.
func (s *AuthService) SignUp(ctx context.Context, req model.SignUpRequest) (*model.AuthResult, error) {
	log := logger.Log.WithFields(logrus.Fields{"email": req.Email, "username": req.Username})

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("could not hash password: %w", err)
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		CreateTime:   s.now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}
	log = log.WithField("user_id", user.ID)
	log.Info("User signed up")

	result, err := s.sessions.CreateSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	event := events.Event{Name: events.UserSignedUp, UserID: user.ID, OccurredAt: user.CreateTime,
		Data: map[string]interface{}{"username": user.Username}}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Warn("Sign-up event not published")
	}
	return result, nil
}

// SignIn does not reveal whether the email or the password was wrong.
func (s *AuthService) SignIn(ctx context.Context, req model.SignInRequest) (*model.AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Log.WithField("email", req.Email).Warn("Sign-in for unknown email")
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		logger.Log.WithField("user_id", user.ID).Warn("Sign-in with wrong password")
		return nil, ErrInvalidCredentials
	}

	return s.sessions.CreateSession(ctx, user.ID)
}

func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error) {
	return s.sessions.RotateSession(ctx, refreshToken)
}

// SignOut revokes the given refresh token, or all of the user's tokens when
// none is given. It never fails.
func (s *AuthService) SignOut(ctx context.Context, refreshToken string, userID int64) {
	s.sessions.RevokeSession(ctx, refreshToken, userID)
}
