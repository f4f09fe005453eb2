package handler

import (
	"context"
	"errors"
	"net/http"

	"go-ledger-api/common"
	"go-ledger-api/middleware"
	"go-ledger-api/model"
	"go-ledger-api/service"
)

type IUserService interface {
	GetMe(ctx context.Context, userID int64) (*model.User, error)
	UpdateMe(ctx context.Context, userID int64, req model.UpdateUserRequest) (*model.User, error)
}

type UserHandler struct {
	service IUserService
}

func NewUserHandler(service IUserService) *UserHandler {
	return &UserHandler{service: service}
}

// GetMe godoc
// @Summary      Current user profile
// @Tags         users
// @Produce      json
// @Param        X-User-Id  header    int  true  "Set by the gateway"
// @Success      200        {object}  model.User
// @Failure      401        {object}  common.AppError
// @Failure      404        {object}  common.AppError
// @Router       /users/me [get]
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return common.NewAuthenticationError("Missing user identity", nil)
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.service.GetMe(ctx, id.UserID)
	if err != nil {
		return userError(err)
	}

	common.WriteJSON(w, http.StatusOK, user)
	return nil
}

// UpdateMe godoc
// @Summary      Update current user profile
// @Description  Partial update. A password change revokes every session.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-User-Id  header    int                      true  "Set by the gateway"
// @Param        request    body      model.UpdateUserRequest  true  "Fields to change"
// @Success      200        {object}  model.User
// @Failure      400        {object}  common.AppError
// @Failure      401        {object}  common.AppError
// @Failure      404        {object}  common.AppError
// @Router       /users/me [put]
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) *common.AppError {
	id, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		return common.NewAuthenticationError("Missing user identity", nil)
	}

	var req model.UpdateUserRequest
	if appErr := common.ValidateAndDecode(r, &req); appErr != nil {
		return appErr
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	user, err := h.service.UpdateMe(ctx, id.UserID, req)
	if err != nil {
		return userError(err)
	}

	common.WriteJSON(w, http.StatusOK, user)
	return nil
}

func userError(err error) *common.AppError {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return common.NewNotFoundError("User not found", nil)
	case errors.Is(err, service.ErrEmailAlreadyExists):
		return common.NewValidationError("Email is already registered", nil)
	}
	return common.NewInternalError("Could not process user request", err)
}
