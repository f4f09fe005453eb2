package model

import "time"

const (
	DefaultTheme    = "light"
	DefaultLanguage = "ja"
)

type UserSettings struct {
	ID                  int64     `json:"id"`
	UserID              int64     `json:"userId"`
	Theme               string    `json:"theme"`
	NotificationEnabled bool      `json:"notificationEnabled"`
	Language            string    `json:"language"`
	DelFlg              bool      `json:"delFlg"`
	UpdateCnt           int       `json:"updateCnt"`
	UpdateTime          time.Time `json:"updateTime"`
	UpdateUserID        int64     `json:"updateUserId"`
	CreateTime          time.Time `json:"createTime"`
	CreateUserID        int64     `json:"createUserId"`
}
