// file: repository/user_repository.go

package repository

import (
	"context"
	"database/sql"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/sirupsen/logrus"
)

// IUserRepository defines the contract for user database operations.
type IUserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
}

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

const userColumns = `user_id, username, email, password, del_flg, update_cnt, update_time, update_user_id, create_time, create_user_id`

func scanUser(row interface{ Scan(...interface{}) error }) (*model.User, error) {
	user := &model.User{}
	var delFlg int
	err := row.Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash, &delFlg,
		&user.UpdateCnt, &user.UpdateTime, &user.UpdateUserID, &user.CreateTime, &user.CreateUserID)
	if err != nil {
		return nil, err
	}
	user.DelFlg = delFlg != 0
	return user, nil
}

// Create inserts a new user. A fresh user is its own audit actor, so the key is
// drawn first and reused for create_user_id and update_user_id.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	log := logger.Log.WithFields(logrus.Fields{
		"username": user.Username,
		"email":    user.Email,
	})
	log.Info("Executing query to create a new user")

	query := `WITH next AS (SELECT nextval(pg_get_serial_sequence('users', 'user_id')) AS id)
		INSERT INTO users (user_id, username, email, password, update_time, update_user_id, create_time, create_user_id)
		SELECT id, $1, $2, $3, $4, id, $4, id FROM next
		RETURNING user_id`
	err := r.DB.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash, user.CreateTime).Scan(&user.ID)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			log.Warn("Email already registered")
			return ErrEmailExists
		}
		log.WithError(err).Error("Failed to execute create user query")
		return err
	}

	user.UpdateUserID = user.ID
	user.CreateUserID = user.ID
	user.UpdateTime = user.CreateTime
	return nil
}

// GetByEmail returns sql.ErrNoRows for unknown or soft-deleted users.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	log := logger.Log.WithField("email", email)
	log.Info("Executing query to get user by email")

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND del_flg = 0`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get user by email query")
		}
		return nil, err
	}
	return user, nil
}

// GetByID returns sql.ErrNoRows for unknown or soft-deleted users.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	log := logger.Log.WithField("user_id", id)
	log.Info("Executing query to get user by id")

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND del_flg = 0`
	user, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get user by id query")
		}
		return nil, err
	}
	return user, nil
}

// LockForUpdate takes a row lock on the user for the rest of tx. Every session
// mutation for a user goes through this lock first.
func (r *UserRepository) LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	log := logger.Log.WithField("user_id", id)
	log.Info("Executing query to lock user for update")

	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1 AND del_flg = 0 FOR UPDATE`
	user, err := scanUser(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			log.Info("User not found for update")
		} else {
			log.WithError(err).Error("Failed to execute lock user query")
		}
		return nil, err
	}
	return user, nil
}

// Update writes username, email and password hash and bumps update_cnt.
func (r *UserRepository) Update(ctx context.Context, user *model.User) error {
	log := logger.Log.WithField("user_id", user.ID)
	log.Info("Executing query to update user")

	query := `UPDATE users
		SET username = $1, email = $2, password = $3,
		    update_cnt = update_cnt + 1, update_time = $4, update_user_id = $5
		WHERE user_id = $6 AND del_flg = 0
		RETURNING update_cnt`
	err := r.DB.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash,
		user.UpdateTime, user.UpdateUserID, user.ID).Scan(&user.UpdateCnt)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return ErrEmailExists
		}
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update user query")
		}
		return err
	}
	return nil
}
