package model

// AuthResult is the token pair issued on sign-up, sign-in and refresh.
type AuthResult struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresIn    int64     `json:"expiresIn"`
	User         UserBasic `json:"user"`
}
