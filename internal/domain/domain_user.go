package domain

import "time"

// User 用户领域模型
type User struct {
	UID       int64
	Username  string
	Email     string
	Password  string
	Avatar    string
	Provider  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// HasEmail 判断用户是否有邮箱
func (u *User) HasEmail() bool {
	return u.Email != ""
}

// IsFederated 判断用户是否来自联合登录
func (u *User) IsFederated() bool {
	return u.Provider != ""
}
