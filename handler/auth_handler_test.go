package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-ledger-api/common"
	"go-ledger-api/model"
	"go-ledger-api/service"
	"go-ledger-api/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAuthService struct{ mock.Mock }

func (m *MockAuthService) SignUp(ctx context.Context, req model.SignUpRequest) (*model.AuthResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResult), args.Error(1)
}

func (m *MockAuthService) SignIn(ctx context.Context, req model.SignInRequest) (*model.AuthResult, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResult), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error) {
	args := m.Called(refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.AuthResult), args.Error(1)
}

func (m *MockAuthService) SignOut(ctx context.Context, refreshToken string, userID int64) {
	m.Called(refreshToken, userID)
}

func newAuthHandler(t *testing.T) (*AuthHandler, *MockAuthService, *token.Issuer) {
	t.Helper()
	issuer, err := token.NewIssuer("handler-secret", time.Hour)
	require.NoError(t, err)
	svc := new(MockAuthService)
	return NewAuthHandler(svc, issuer), svc, issuer
}

func serve(h func(http.ResponseWriter, *http.Request) *common.AppError, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	ErrorHandlingMiddleware(h).ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) common.AppError {
	t.Helper()
	var body common.AppError
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func TestAuthHandler_SignUp(t *testing.T) {
	result := &model.AuthResult{Token: "jwt", RefreshToken: "rt", ExpiresIn: 3600,
		User: model.UserBasic{ID: 1, Username: "alice", Email: "a@x.io"}}

	t.Run("success", func(t *testing.T) {
		h, svc, _ := newAuthHandler(t)
		svc.On("SignUp", model.SignUpRequest{Username: "alice", Email: "a@x.io", Password: "pw123456"}).Return(result, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":"alice","email":"a@x.io","password":"pw123456"}`))
		rr := serve(h.SignUp, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.JSONEq(t, `{"token":"jwt","refreshToken":"rt","expiresIn":3600,"user":{"id":1,"username":"alice","email":"a@x.io"}}`, rr.Body.String())
	})

	t.Run("short password", func(t *testing.T) {
		h, svc, _ := newAuthHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":"alice","email":"a@x.io","password":"short"}`))
		rr := serve(h.SignUp, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, common.KindValidation, decodeError(t, rr).Type)
		svc.AssertNotCalled(t, "SignUp", mock.Anything)
	})

	t.Run("duplicate email", func(t *testing.T) {
		h, svc, _ := newAuthHandler(t)
		svc.On("SignUp", mock.Anything).Return(nil, service.ErrEmailAlreadyExists).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":"alice","email":"a@x.io","password":"pw123456"}`))
		rr := serve(h.SignUp, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "Email is already registered", decodeError(t, rr).Message)
	})

	t.Run("store failure", func(t *testing.T) {
		h, svc, _ := newAuthHandler(t)
		svc.On("SignUp", mock.Anything).Return(nil, errors.New("db down")).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"username":"alice","email":"a@x.io","password":"pw123456"}`))
		rr := serve(h.SignUp, req)

		assert.Equal(t, http.StatusInternalServerError, rr.Code)
		body := decodeError(t, rr)
		assert.Equal(t, common.KindInternal, body.Type)
		assert.NotContains(t, rr.Body.String(), "db down")
	})
}

func TestAuthHandler_SignIn(t *testing.T) {
	h, svc, _ := newAuthHandler(t)
	svc.On("SignIn", model.SignInRequest{Email: "a@x.io", Password: "wrong-pass"}).Return(nil, service.ErrInvalidCredentials).Once()

	req := httptest.NewRequest(http.MethodPost, "/auth/signin", strings.NewReader(`{"email":"a@x.io","password":"wrong-pass"}`))
	rr := serve(h.SignIn, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	body := decodeError(t, rr)
	assert.Equal(t, common.KindAuthentication, body.Type)
	assert.Equal(t, "Invalid email or password", body.Message)
}

func TestAuthHandler_RefreshToken(t *testing.T) {
	t.Run("rejected", func(t *testing.T) {
		h, svc, _ := newAuthHandler(t)
		svc.On("Refresh", "old").Return(nil, service.ErrInvalidRefreshToken).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/refresh-token", strings.NewReader(`{"refreshToken":"old"}`))
		rr := serve(h.RefreshToken, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid refresh token", decodeError(t, rr).Message)
	})

	t.Run("missing body", func(t *testing.T) {
		h, _, _ := newAuthHandler(t)
		req := httptest.NewRequest(http.MethodPost, "/auth/refresh-token", strings.NewReader(`{}`))
		rr := serve(h.RefreshToken, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestAuthHandler_SignOut(t *testing.T) {
	t.Run("bearer and refresh token", func(t *testing.T) {
		h, svc, issuer := newAuthHandler(t)
		access, err := issuer.IssueAccessToken(token.Claims{UserID: 1, Username: "alice"})
		require.NoError(t, err)
		svc.On("SignOut", "rt", int64(1)).Once()

		req := httptest.NewRequest(http.MethodPost, "/auth/signout", nil)
		req.Header.Set("Authorization", "Bearer "+access.Value)
		req.Header.Set(HeaderRefreshToken, "rt")
		rr := serve(h.SignOut, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		svc.AssertExpectations(t)
	})

	t.Run("no credentials is still 204", func(t *testing.T) {
		h, svc, _ := newAuthHandler(t)
		svc.On("SignOut", "", int64(0)).Once()

		rr := serve(h.SignOut, httptest.NewRequest(http.MethodPost, "/auth/signout", nil))

		assert.Equal(t, http.StatusNoContent, rr.Code)
		assert.Empty(t, rr.Body.String())
	})
}
