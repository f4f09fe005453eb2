// file: model/request.go

package model

// SignUpRequest defines the payload for creating a new user.
type SignUpRequest struct {
	Username string `json:"username" validate:"required,min=1,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SignInRequest defines the payload for user authentication.
type SignInRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// UpdateUserRequest carries a partial profile update; nil fields are left untouched.
type UpdateUserRequest struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=1,max=50"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Password *string `json:"password,omitempty" validate:"omitempty,min=8"`
}

type UserSettingsRequest struct {
	Theme               *string `json:"theme,omitempty" validate:"omitempty,max=20"`
	NotificationEnabled *bool   `json:"notificationEnabled,omitempty"`
	Language            *string `json:"language,omitempty" validate:"omitempty,max=10"`
}
