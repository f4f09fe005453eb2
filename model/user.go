package model

import "time"

// User mirrors a row of the users table.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DelFlg       bool      `json:"delFlg"`
	UpdateCnt    int       `json:"updateCnt"`
	UpdateTime   time.Time `json:"updateTime"`
	UpdateUserID int64     `json:"updateUserId"`
	CreateTime   time.Time `json:"createTime"`
	CreateUserID int64     `json:"createUserId"`
}

// UserBasic is the public projection returned with token pairs.
type UserBasic struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (u *User) Basic() UserBasic {
	return UserBasic{ID: u.ID, Username: u.Username, Email: u.Email}
}
