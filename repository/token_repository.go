// file: repository/token_repository.go

package repository

import (
	"context"
	"database/sql"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"time"

	"github.com/sirupsen/logrus"
)

// ITokenRepository defines the contract for refresh token database operations.
// Every method runs inside the caller's transaction.
type ITokenRepository interface {
	Create(ctx context.Context, tx *sql.Tx, token *model.RefreshToken) error
	GetByTokenHash(ctx context.Context, tx *sql.Tx, tokenHash string) (*model.RefreshToken, error)
	RevokeActiveByUserID(ctx context.Context, tx *sql.Tx, userID int64, now time.Time) (int64, error)
	RevokeByID(ctx context.Context, tx *sql.Tx, tokenID int64, now time.Time) (bool, error)
	RevokeByTokenHash(ctx context.Context, tx *sql.Tx, tokenHash string, now time.Time) (bool, error)
}

// TokenRepository implements ITokenRepository.
type TokenRepository struct {
	DB *sql.DB
}

// NewTokenRepository creates a new TokenRepository.
func NewTokenRepository(db *sql.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

const activeTokenIndex = "ux_refresh_tokens_one_active"

// Create inserts a new refresh token record. A hash that is already stored is
// never overwritten: the insert is skipped and ErrTokenCollision returned.
func (r *TokenRepository) Create(ctx context.Context, tx *sql.Tx, token *model.RefreshToken) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id":    token.UserID,
		"expires_at": token.ExpiresAt,
	})
	log.Info("Executing query to create a new refresh token")

	query := `INSERT INTO refresh_tokens
		(user_id, token_hash, expires_at, issued_at, update_time, update_user_id, create_time, create_user_id)
		VALUES ($1, $2, $3, $4, $4, $1, $4, $1)
		ON CONFLICT (token_hash) DO NOTHING
		RETURNING token_id`
	err := tx.QueryRowContext(ctx, query, token.UserID, token.TokenHash, token.ExpiresAt, token.IssuedAt).Scan(&token.ID)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Warn("Refresh token hash collision, nothing inserted")
			return ErrTokenCollision
		}
		if constraint, ok := uniqueConstraint(err); ok && constraint == activeTokenIndex {
			log.Error("Active refresh token already exists for user")
			return ErrActiveTokenExists
		}
		log.WithError(err).Error("Failed to execute create refresh token query")
		return err
	}

	token.UpdateTime = token.IssuedAt
	token.CreateTime = token.IssuedAt
	token.UpdateUserID = token.UserID
	token.CreateUserID = token.UserID
	return nil
}

// GetByTokenHash retrieves a refresh token by its hashed value. Revoked,
// expired and soft-deleted rows are returned as-is; the caller decides whether
// they are usable. The row is not locked: callers lock the owning user first
// and rely on the conditional revoke to pick a single winner.
func (r *TokenRepository) GetByTokenHash(ctx context.Context, tx *sql.Tx, tokenHash string) (*model.RefreshToken, error) {
	log := logger.Log.WithField("operation", "GetByTokenHash")
	log.Info("Executing query to get refresh token by hash")

	token := &model.RefreshToken{}
	var delFlg int
	query := `SELECT token_id, user_id, token_hash, expires_at, issued_at, revoked_at, del_flg,
		update_cnt, update_time, update_user_id, create_time, create_user_id
		FROM refresh_tokens WHERE token_hash = $1`
	err := tx.QueryRowContext(ctx, query, tokenHash).Scan(&token.ID, &token.UserID, &token.TokenHash,
		&token.ExpiresAt, &token.IssuedAt, &token.RevokedAt, &delFlg,
		&token.UpdateCnt, &token.UpdateTime, &token.UpdateUserID, &token.CreateTime, &token.CreateUserID)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get refresh token by hash query")
		}
		return nil, err // Return sql.ErrNoRows if not found
	}
	token.DelFlg = delFlg != 0
	return token, nil
}

// RevokeActiveByUserID revokes every unrevoked token of a user and reports how many rows changed.
func (r *TokenRepository) RevokeActiveByUserID(ctx context.Context, tx *sql.Tx, userID int64, now time.Time) (int64, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to revoke all active refresh tokens for a user")

	query := `UPDATE refresh_tokens
		SET revoked_at = $2, update_cnt = update_cnt + 1, update_time = $2, update_user_id = user_id
		WHERE user_id = $1 AND revoked_at IS NULL AND del_flg = 0`
	res, err := tx.ExecContext(ctx, query, userID, now)
	if err != nil {
		log.WithError(err).Error("Failed to execute revoke refresh tokens query")
		return 0, err
	}
	return res.RowsAffected()
}

// RevokeByID revokes one token. It reports false when the row was already
// revoked or soft-deleted.
func (r *TokenRepository) RevokeByID(ctx context.Context, tx *sql.Tx, tokenID int64, now time.Time) (bool, error) {
	log := logger.Log.WithField("token_id", tokenID)
	log.Info("Executing query to revoke refresh token by id")

	query := `UPDATE refresh_tokens
		SET revoked_at = $2, update_cnt = update_cnt + 1, update_time = $2, update_user_id = user_id
		WHERE token_id = $1 AND revoked_at IS NULL AND del_flg = 0`
	return execRevoke(ctx, tx, log, query, tokenID, now)
}

// RevokeByTokenHash is RevokeByID keyed by the token hash.
func (r *TokenRepository) RevokeByTokenHash(ctx context.Context, tx *sql.Tx, tokenHash string, now time.Time) (bool, error) {
	log := logger.Log.WithField("operation", "RevokeByTokenHash")
	log.Info("Executing query to revoke refresh token by hash")

	query := `UPDATE refresh_tokens
		SET revoked_at = $2, update_cnt = update_cnt + 1, update_time = $2, update_user_id = user_id
		WHERE token_hash = $1 AND revoked_at IS NULL AND del_flg = 0`
	return execRevoke(ctx, tx, log, query, tokenHash, now)
}

func execRevoke(ctx context.Context, tx *sql.Tx, log *logrus.Entry, query string, key interface{}, now time.Time) (bool, error) {
	res, err := tx.ExecContext(ctx, query, key, now)
	if err != nil {
		log.WithError(err).Error("Failed to execute revoke refresh token query")
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
