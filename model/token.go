// file: model/token.go

package model

import "time"

// RefreshToken holds the data for a refresh token in the database.
// Only the SHA-256 hash of the opaque token is persisted.
type RefreshToken struct {
	ID           int64      `json:"id"`
	UserID       int64      `json:"userId"`
	TokenHash    string     `json:"-"`
	ExpiresAt    time.Time  `json:"expiresAt"`
	IssuedAt     time.Time  `json:"issuedAt"`
	RevokedAt    *time.Time `json:"revokedAt,omitempty"`
	DelFlg       bool       `json:"delFlg"`
	UpdateCnt    int        `json:"updateCnt"`
	UpdateTime   time.Time  `json:"updateTime"`
	UpdateUserID int64      `json:"updateUserId"`
	CreateTime   time.Time  `json:"createTime"`
	CreateUserID int64      `json:"createUserId"`
}

// IsActive reports whether the token can still be exchanged at now.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && !t.DelFlg && now.Before(t.ExpiresAt)
}
