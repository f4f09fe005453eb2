package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go-ledger-api/common"
	"go-ledger-api/logger"
	"go-ledger-api/middleware"
	"go-ledger-api/model"
	"go-ledger-api/service"
)

const (
	requestTimeout     = 5 * time.Second
	HeaderRefreshToken = "X-Refresh-Token"
)

// IAuthService is the auth use-case surface the handler depends on.
type IAuthService interface {
	SignUp(ctx context.Context, req model.SignUpRequest) (*model.AuthResult, error)
	SignIn(ctx context.Context, req model.SignInRequest) (*model.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*model.AuthResult, error)
	SignOut(ctx context.Context, refreshToken string, userID int64)
}

type AuthHandler struct {
	service  IAuthService
	verifier middleware.TokenVerifier
}

func NewAuthHandler(service IAuthService, verifier middleware.TokenVerifier) *AuthHandler {
	return &AuthHandler{service: service, verifier: verifier}
}

// SignUp godoc
// @Summary      Register a new user
// @Description  Creates the user and returns a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignUpRequest  true  "New user"
// @Success      200      {object}  model.AuthResult
// @Failure      400      {object}  common.AppError
// @Failure      500      {object}  common.AppError
// @Router       /auth/signup [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignUpRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.service.SignUp(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrEmailAlreadyExists) {
			return common.NewValidationError("Email is already registered", nil)
		}
		return common.NewInternalError("Could not register user", err)
	}

	common.WriteJSON(w, http.StatusOK, result)
	return nil
}

// SignIn godoc
// @Summary      Sign in
// @Description  Exchanges email and password for a token pair. Any previous session is revoked.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.SignInRequest  true  "Credentials"
// @Success      200      {object}  model.AuthResult
// @Failure      400      {object}  common.AppError
// @Failure      401      {object}  common.AppError
// @Router       /auth/signin [post]
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.SignInRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.service.SignIn(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return common.NewAuthenticationError("Invalid email or password", nil)
		}
		return common.NewInternalError("Could not sign in", err)
	}

	common.WriteJSON(w, http.StatusOK, result)
	return nil
}

// RefreshToken godoc
// @Summary      Rotate a refresh token
// @Description  The presented refresh token is revoked and a new pair is returned
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      model.RefreshTokenRequest  true  "Refresh token"
// @Success      200      {object}  model.AuthResult
// @Failure      400      {object}  common.AppError
// @Failure      401      {object}  common.AppError
// @Router       /auth/refresh-token [post]
func (h *AuthHandler) RefreshToken(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.RefreshTokenRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	result, err := h.service.Refresh(ctx, req.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefreshToken) {
			return common.NewAuthenticationError("Invalid refresh token", nil)
		}
		return common.NewInternalError("Could not refresh token", err)
	}

	common.WriteJSON(w, http.StatusOK, result)
	return nil
}

// SignOut godoc
// @Summary      Sign out
// @Description  Revokes the refresh token in X-Refresh-Token, or every session of the bearer. Always 204.
// @Tags         auth
// @Param        Authorization    header  string  false  "Bearer access token"
// @Param        X-Refresh-Token  header  string  false  "Refresh token to revoke"
// @Success      204
// @Router       /auth/signout [post]
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) *common.AppError {
	var userID int64
	if id, err := middleware.Authenticate(r, h.verifier); err == nil {
		userID = id.UserID
	} else {
		logger.Log.WithError(err).Debug("Sign-out without a valid access token")
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	h.service.SignOut(ctx, r.Header.Get(HeaderRefreshToken), userID)
	w.WriteHeader(http.StatusNoContent)
	return nil
}
