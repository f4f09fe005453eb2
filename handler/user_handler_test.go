package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-ledger-api/middleware"
	"go-ledger-api/model"
	"go-ledger-api/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct{ mock.Mock }

func (m *MockUserService) GetMe(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) UpdateMe(ctx context.Context, userID int64, req model.UpdateUserRequest) (*model.User, error) {
	args := m.Called(userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func withIdentity(req *http.Request, userID int64) *http.Request {
	return req.WithContext(middleware.WithIdentity(req.Context(), model.Identity{UserID: userID, Username: "alice"}))
}

func TestUserHandler_GetMe(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc)

	t.Run("no identity", func(t *testing.T) {
		rr := serve(h.GetMe, httptest.NewRequest(http.MethodGet, "/users/me", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("password hash is never serialised", func(t *testing.T) {
		svc.On("GetMe", int64(1)).Return(&model.User{ID: 1, Username: "alice", PasswordHash: "secret-hash"}, nil).Once()

		rr := serve(h.GetMe, withIdentity(httptest.NewRequest(http.MethodGet, "/users/me", nil), 1))

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.NotContains(t, rr.Body.String(), "secret-hash")
	})

	t.Run("deleted user", func(t *testing.T) {
		svc.On("GetMe", int64(2)).Return(nil, service.ErrUserNotFound).Once()

		rr := serve(h.GetMe, withIdentity(httptest.NewRequest(http.MethodGet, "/users/me", nil), 2))

		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestUserHandler_UpdateMe(t *testing.T) {
	svc := new(MockUserService)
	h := NewUserHandler(svc)

	t.Run("invalid email", func(t *testing.T) {
		req := withIdentity(httptest.NewRequest(http.MethodPut, "/users/me", strings.NewReader(`{"email":"nope"}`)), 1)
		rr := serve(h.UpdateMe, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("email taken", func(t *testing.T) {
		svc.On("UpdateMe", int64(1), mock.Anything).Return(nil, service.ErrEmailAlreadyExists).Once()
		req := withIdentity(httptest.NewRequest(http.MethodPut, "/users/me", strings.NewReader(`{"email":"b@x.io"}`)), 1)

		rr := serve(h.UpdateMe, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
