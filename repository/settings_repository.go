package repository

import (
	"context"
	"database/sql"
	"go-ledger-api/logger"
	"go-ledger-api/model"

	"github.com/sirupsen/logrus"
)

type ISettingsRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*model.UserSettings, error)
	Create(ctx context.Context, settings *model.UserSettings) error
	Update(ctx context.Context, settings *model.UserSettings) error
}

type SettingsRepository struct {
	DB *sql.DB
}

func NewSettingsRepository(db *sql.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

// GetByUserID returns sql.ErrNoRows when the user has no live settings row.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID int64) (*model.UserSettings, error) {
	log := logger.Log.WithField("user_id", userID)
	log.Info("Executing query to get user settings")

	s := &model.UserSettings{}
	var delFlg int
	query := `SELECT setting_id, user_id, theme, notification_enabled, language, del_flg,
		update_cnt, update_time, update_user_id, create_time, create_user_id
		FROM user_settings WHERE user_id = $1 AND del_flg = 0`
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(&s.ID, &s.UserID, &s.Theme, &s.NotificationEnabled,
		&s.Language, &delFlg, &s.UpdateCnt, &s.UpdateTime, &s.UpdateUserID, &s.CreateTime, &s.CreateUserID)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute get user settings query")
		}
		return nil, err
	}
	s.DelFlg = delFlg != 0
	return s, nil
}

func (r *SettingsRepository) Create(ctx context.Context, s *model.UserSettings) error {
	log := logger.Log.WithFields(logrus.Fields{
		"user_id": s.UserID,
		"theme":   s.Theme,
	})
	log.Info("Executing query to create user settings")

	query := `INSERT INTO user_settings
		(user_id, theme, notification_enabled, language, update_time, update_user_id, create_time, create_user_id)
		VALUES ($1, $2, $3, $4, $5, $1, $5, $1)
		RETURNING setting_id`
	err := r.DB.QueryRowContext(ctx, query, s.UserID, s.Theme, s.NotificationEnabled, s.Language, s.CreateTime).Scan(&s.ID)
	if err != nil {
		if _, ok := uniqueConstraint(err); ok {
			return ErrSettingsExist
		}
		log.WithError(err).Error("Failed to execute create user settings query")
		return err
	}
	s.UpdateTime = s.CreateTime
	s.UpdateUserID = s.UserID
	s.CreateUserID = s.UserID
	return nil
}

// Update overwrites the mutable columns and bumps update_cnt.
// It returns sql.ErrNoRows when there is nothing to update.
func (r *SettingsRepository) Update(ctx context.Context, s *model.UserSettings) error {
	log := logger.Log.WithField("user_id", s.UserID)
	log.Info("Executing query to update user settings")

	query := `UPDATE user_settings
		SET theme = $1, notification_enabled = $2, language = $3,
		    update_cnt = update_cnt + 1, update_time = $4, update_user_id = $5
		WHERE user_id = $5 AND del_flg = 0
		RETURNING update_cnt`
	err := r.DB.QueryRowContext(ctx, query, s.Theme, s.NotificationEnabled, s.Language, s.UpdateTime, s.UserID).Scan(&s.UpdateCnt)
	if err != nil {
		if err != sql.ErrNoRows {
			log.WithError(err).Error("Failed to execute update user settings query")
		}
		return err
	}
	s.UpdateUserID = s.UserID
	return nil
}
