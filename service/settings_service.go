package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"go-ledger-api/logger"
	"go-ledger-api/model"
	"go-ledger-api/repository"
	"time"
)

var (
	ErrSettingsNotFound = errors.New("user settings not found")
	ErrSettingsExist    = errors.New("user settings already exist")
)

// SettingsService serves user settings with a cache-aside Redis layer.
// A nil cache disables caching.
type SettingsService struct {
	repo  repository.ISettingsRepository
	cache ICacheClient
	ttl   time.Duration
	now   func() time.Time
}

func NewSettingsService(repo repository.ISettingsRepository, cache ICacheClient, ttl time.Duration) *SettingsService {
	return &SettingsService{repo: repo, cache: cache, ttl: ttl, now: time.Now}
}

func settingsCacheKey(userID int64) string {
	return fmt.Sprintf("user_settings:%d", userID)
}

func (s *SettingsService) Get(ctx context.Context, userID int64) (*model.UserSettings, error) {
	key := settingsCacheKey(userID)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key).Result(); err == nil {
			var settings model.UserSettings
			if err := json.Unmarshal([]byte(cached), &settings); err == nil {
				return &settings, nil
			}
		}
	}

	settings, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	if s.cache != nil {
		if payload, err := json.Marshal(settings); err == nil {
			if err := s.cache.Set(ctx, key, payload, s.ttl).Err(); err != nil {
				logger.Log.WithError(err).WithField("key", key).Warn("Failed to cache user settings")
			}
		}
	}
	return settings, nil
}

// Create stores the first settings row of a user, filling defaults for omitted fields.
func (s *SettingsService) Create(ctx context.Context, userID int64, req model.UserSettingsRequest) (*model.UserSettings, error) {
	settings := &model.UserSettings{
		UserID:              userID,
		Theme:               model.DefaultTheme,
		NotificationEnabled: true,
		Language:            model.DefaultLanguage,
		CreateTime:          s.now(),
	}
	applySettings(settings, req)

	if err := s.repo.Create(ctx, settings); err != nil {
		if errors.Is(err, repository.ErrSettingsExist) {
			return nil, ErrSettingsExist
		}
		return nil, err
	}
	s.invalidate(ctx, userID)
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, userID int64, req model.UserSettingsRequest) (*model.UserSettings, error) {
	settings, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}

	applySettings(settings, req)
	settings.UpdateTime = s.now()
	if err := s.repo.Update(ctx, settings); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, err
	}
	s.invalidate(ctx, userID)
	return settings, nil
}

func (s *SettingsService) invalidate(ctx context.Context, userID int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, settingsCacheKey(userID)).Err(); err != nil {
		logger.Log.WithError(err).WithField("user_id", userID).Warn("Failed to invalidate user settings cache")
	}
}

func applySettings(settings *model.UserSettings, req model.UserSettingsRequest) {
	if req.Theme != nil {
		settings.Theme = *req.Theme
	}
	if req.NotificationEnabled != nil {
		settings.NotificationEnabled = *req.NotificationEnabled
	}
	if req.Language != nil {
		settings.Language = *req.Language
	}
}
