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
	"go-ledger-api/token"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrTokenGeneration     = errors.New("could not generate a unique refresh token")
)

const maxTokenAttempts = 3

// SessionManager is the refresh-token lifecycle seen by the auth and user services.
type SessionManager interface {
	CreateSession(ctx context.Context, userID int64) (*model.AuthResult, error)
	RotateSession(ctx context.Context, presented string) (*model.AuthResult, error)
	RevokeSession(ctx context.Context, refreshToken string, userID int64)
}

// SessionService owns every refresh-token mutation. A user has at most one
// active refresh token: each operation runs in one transaction that locks the
// user row before touching tokens.
type SessionService struct {
	db         *sql.DB
	users      repository.IUserRepository
	tokens     repository.ITokenRepository
	issuer     *token.Issuer
	refreshTTL time.Duration
	publisher  events.Publisher
	now        func() time.Time
	newToken   func() (string, error)
}

func NewSessionService(db *sql.DB, users repository.IUserRepository, tokens repository.ITokenRepository, issuer *token.Issuer, refreshTTL time.Duration) *SessionService {
	return &SessionService{
		db:         db,
		users:      users,
		tokens:     tokens,
		issuer:     issuer,
		refreshTTL: refreshTTL,
		publisher:  events.NoopPublisher{},
		now:        time.Now,
		newToken:   token.GenerateOpaqueToken,
	}
}

func (s *SessionService) WithClock(now func() time.Time) *SessionService {
	s.now = now
	return s
}

func (s *SessionService) WithPublisher(p events.Publisher) *SessionService {
	s.publisher = p
	return s
}

// CreateSession revokes whatever the user currently holds and issues a fresh pair.
func (s *SessionService) CreateSession(ctx context.Context, userID int64) (*model.AuthResult, error) {
	log := logger.Log.WithField("user_id", userID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	user, err := s.users.LockForUpdate(ctx, tx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := s.now()
	revoked, err := s.tokens.RevokeActiveByUserID(ctx, tx, userID, now)
	if err != nil {
		return nil, fmt.Errorf("could not revoke previous refresh tokens: %w", err)
	}

	result, err := s.issue(ctx, tx, user, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.WithField("revoked", revoked).Info("Session created")
	return result, nil
}

// RotateSession exchanges a refresh token for a new pair. Unknown, revoked,
// expired and soft-deleted tokens are all reported as ErrInvalidRefreshToken.
func (s *SessionService) RotateSession(ctx context.Context, presented string) (*model.AuthResult, error) {
	if presented == "" {
		return nil, ErrInvalidRefreshToken
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := s.now()
	stored, err := s.tokens.GetByTokenHash(ctx, tx, token.HashOpaqueToken(presented))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reject(0, "unknown token")
		}
		return nil, err
	}
	log := logger.Log.WithFields(logrus.Fields{"user_id": stored.UserID, "token_id": stored.ID})

	if !stored.IsActive(now) {
		return nil, reject(stored.UserID, inactiveReason(stored, now))
	}

	user, err := s.users.LockForUpdate(ctx, tx, stored.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, reject(stored.UserID, "owner missing or deleted")
		}
		return nil, err
	}

	ok, err := s.tokens.RevokeByID(ctx, tx, stored.ID, now)
	if err != nil {
		return nil, fmt.Errorf("could not revoke presented refresh token: %w", err)
	}
	if !ok {
		return nil, reject(stored.UserID, "already rotated")
	}

	result, err := s.issue(ctx, tx, user, now)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("could not commit transaction: %w", err)
	}

	log.Info("Session rotated")
	return result, nil
}

// RevokeSession revokes one token when refreshToken is set, otherwise every
// active token of userID. It never fails: errors are logged and dropped.
func (s *SessionService) RevokeSession(ctx context.Context, refreshToken string, userID int64) {
	if refreshToken == "" && userID <= 0 {
		return
	}
	log := logger.Log.WithField("user_id", userID)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.WithError(err).Error("Could not begin revoke transaction")
		return
	}
	defer tx.Rollback()

	now := s.now()
	var revoked int64
	if refreshToken != "" {
		ok, err := s.tokens.RevokeByTokenHash(ctx, tx, token.HashOpaqueToken(refreshToken), now)
		if err != nil {
			log.WithError(err).Error("Failed to revoke refresh token")
			return
		}
		if ok {
			revoked = 1
		}
	} else {
		revoked, err = s.tokens.RevokeActiveByUserID(ctx, tx, userID, now)
		if err != nil {
			log.WithError(err).Error("Failed to revoke refresh tokens")
			return
		}
	}

	if err := tx.Commit(); err != nil {
		log.WithError(err).Error("Could not commit revoke transaction")
		return
	}

	log.WithField("revoked", revoked).Info("Session revoked")
	if revoked > 0 {
		event := events.Event{Name: events.SessionRevoked, UserID: userID, OccurredAt: now,
			Data: map[string]interface{}{"revoked": revoked}}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).Warn("Session revoked event not published")
		}
	}
}

// issue inserts a new refresh token for user and mints the matching access token.
func (s *SessionService) issue(ctx context.Context, tx *sql.Tx, user *model.User, now time.Time) (*model.AuthResult, error) {
	for attempt := 1; attempt <= maxTokenAttempts; attempt++ {
		raw, err := s.newToken()
		if err != nil {
			return nil, err
		}

		record := &model.RefreshToken{
			UserID:    user.ID,
			TokenHash: token.HashOpaqueToken(raw),
			IssuedAt:  now,
			ExpiresAt: now.Add(s.refreshTTL),
		}
		err = s.tokens.Create(ctx, tx, record)
		if errors.Is(err, repository.ErrTokenCollision) {
			logger.Log.WithField("attempt", attempt).Warn("Refresh token collision, regenerating")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("could not store refresh token: %w", err)
		}

		access, err := s.issuer.IssueAccessToken(token.Claims{UserID: user.ID, Username: user.Username})
		if err != nil {
			return nil, err
		}
		return &model.AuthResult{
			Token:        access.Value,
			RefreshToken: raw,
			ExpiresIn:    int64(s.issuer.TTL() / time.Second),
			User:         user.Basic(),
		}, nil
	}

	logger.Log.WithField("user_id", user.ID).Error("Refresh token generation exhausted")
	return nil, fmt.Errorf("%w after %d attempts", ErrTokenGeneration, maxTokenAttempts)
}

func reject(userID int64, reason string) error {
	logger.Log.WithFields(logrus.Fields{
		"user_id": userID,
		"reason":  reason,
	}).Warn("Refresh token rejected")
	return ErrInvalidRefreshToken
}

func inactiveReason(t *model.RefreshToken, now time.Time) string {
	switch {
	case t.DelFlg:
		return "deleted"
	case t.RevokedAt != nil:
		return "revoked"
	case !now.Before(t.ExpiresAt):
		return "expired"
	}
	return "inactive"
}
