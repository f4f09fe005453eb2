package service

import (
	"context"
	"database/sql"
	"time"

	"go-ledger-api/model"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock for IUserRepository.
type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) LockForUpdate(ctx context.Context, tx *sql.Tx, id int64) (*model.User, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

// MockTokenRepository is a mock for ITokenRepository.
type MockTokenRepository struct{ mock.Mock }

func (m *MockTokenRepository) Create(ctx context.Context, tx *sql.Tx, token *model.RefreshToken) error {
	return m.Called(ctx, tx, token).Error(0)
}

func (m *MockTokenRepository) GetByTokenHash(ctx context.Context, tx *sql.Tx, hash string) (*model.RefreshToken, error) {
	args := m.Called(ctx, tx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockTokenRepository) RevokeActiveByUserID(ctx context.Context, tx *sql.Tx, userID int64, now time.Time) (int64, error) {
	args := m.Called(ctx, tx, userID, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenRepository) RevokeByID(ctx context.Context, tx *sql.Tx, id int64, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, id, now)
	return args.Bool(0), args.Error(1)
}

func (m *MockTokenRepository) RevokeByTokenHash(ctx context.Context, tx *sql.Tx, hash string, now time.Time) (bool, error) {
	args := m.Called(ctx, tx, hash, now)
	return args.Bool(0), args.Error(1)
}

// MockSessionManager is a mock for SessionManager.
type MockSessionManager struct{ mock.Mock }

func (m *MockSessionManager) CreateSession(ctx context.Context, userID int64) (*model.AuthResult, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResult), args.Error(1)
}

func (m *MockSessionManager) RotateSession(ctx context.Context, presented string) (*model.AuthResult, error) {
	args := m.Called(ctx, presented)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResult), args.Error(1)
}

func (m *MockSessionManager) RevokeSession(ctx context.Context, refreshToken string, userID int64) {
	m.Called(ctx, refreshToken, userID)
}

// plainHasher stores passwords reversibly so tests stay fast.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) bool  { return hash == "hashed:"+password }
