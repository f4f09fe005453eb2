package service

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"go-ledger-api/model"
	"go-ledger-api/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

// fakeClock is a settable time source shared by services and the issuer.
type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time          { return c.t }
func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

// expectTx queues one BeginTx and its outcome on the sqlmock connection.
func expectTx(dbMock sqlmock.Sqlmock, commit bool) {
	dbMock.ExpectBegin()
	if commit {
		dbMock.ExpectCommit()
	} else {
		dbMock.ExpectRollback()
	}
}

// memUsers and memTokens are in-memory stores behaving like the Postgres
// repositories, including the one-active-token index and hash uniqueness.
type memUsers struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]*model.User
}

func newMemUsers() *memUsers { return &memUsers{rows: map[int64]*model.User{}} }

func (m *memUsers) Create(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if u.Email == user.Email {
			return repository.ErrEmailExists
		}
	}
	m.nextID++
	user.ID = m.nextID
	user.CreateUserID, user.UpdateUserID, user.UpdateTime = user.ID, user.ID, user.CreateTime
	cp := *user
	m.rows[user.ID] = &cp
	return nil
}

func (m *memUsers) find(match func(*model.User) bool) (*model.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.rows {
		if !u.DelFlg && match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.Email == email })
}

func (m *memUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	return m.find(func(u *model.User) bool { return u.ID == id })
}

func (m *memUsers) LockForUpdate(ctx context.Context, _ *sql.Tx, id int64) (*model.User, error) {
	return m.GetByID(ctx, id)
}

func (m *memUsers) Update(_ context.Context, user *model.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	row, ok := m.rows[user.ID]
	if !ok || row.DelFlg {
		return sql.ErrNoRows
	}
	user.UpdateCnt = row.UpdateCnt + 1
	cp := *user
	m.rows[user.ID] = &cp
	return nil
}

type memTokens struct {
	mu   sync.Mutex
	rows []*model.RefreshToken
}

func (m *memTokens) Create(_ context.Context, _ *sql.Tx, token *model.RefreshToken) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.TokenHash == token.TokenHash {
			return repository.ErrTokenCollision
		}
		if t.UserID == token.UserID && t.RevokedAt == nil && !t.DelFlg {
			return repository.ErrActiveTokenExists
		}
	}
	token.ID = int64(len(m.rows) + 1)
	cp := *token
	m.rows = append(m.rows, &cp)
	return nil
}

func (m *memTokens) GetByTokenHash(_ context.Context, _ *sql.Tx, hash string) (*model.RefreshToken, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.rows {
		if t.TokenHash == hash {
			cp := *t
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memTokens) revoke(now time.Time, match func(*model.RefreshToken) bool) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for _, t := range m.rows {
		if t.RevokedAt == nil && !t.DelFlg && match(t) {
			at := now
			t.RevokedAt = &at
			t.UpdateCnt++
			n++
		}
	}
	return n
}

func (m *memTokens) RevokeActiveByUserID(_ context.Context, _ *sql.Tx, userID int64, now time.Time) (int64, error) {
	return m.revoke(now, func(t *model.RefreshToken) bool { return t.UserID == userID }), nil
}

func (m *memTokens) RevokeByID(_ context.Context, _ *sql.Tx, id int64, now time.Time) (bool, error) {
	return m.revoke(now, func(t *model.RefreshToken) bool { return t.ID == id }) == 1, nil
}

func (m *memTokens) RevokeByTokenHash(_ context.Context, _ *sql.Tx, hash string, now time.Time) (bool, error) {
	return m.revoke(now, func(t *model.RefreshToken) bool { return t.TokenHash == hash }) == 1, nil
}

func (m *memTokens) activeFor(userID int64, now time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.rows {
		if t.UserID == userID && t.IsActive(now) {
			n++
		}
	}
	return n
}
