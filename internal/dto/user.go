// Package dto 定义数据传输对象（请求参数和响应结构体）
package dto

import "github.com/labnote/labnote-service/pkg/timex"

// UserCreateRequest 用户注册请求参数
type UserCreateRequest struct {
	Username string `json:"username" form:"username" binding:"required,username"`
	Email    string `json:"email" form:"email" binding:"omitempty,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
}

// UserLoginRequest 用户登录请求参数
type UserLoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// UserCheckUsernameRequest 用户名可用性检查请求参数
type UserCheckUsernameRequest struct {
	Username string `json:"username" form:"username" binding:"required,username"`
}

// UserUpdateRequest 更新当前用户资料请求参数
type UserUpdateRequest struct {
	Username string `json:"username" form:"username" binding:"omitempty,username"`
	Avatar   string `json:"avatar" form:"avatar" binding:"omitempty,max=512"`
}

// OAuthLoginRequest 联合登录跳转请求参数
type OAuthLoginRequest struct {
	Provider string `json:"provider" form:"provider" uri:"provider" binding:"required"`
}

// OAuthCallbackRequest 联合登录回调请求参数
type OAuthCallbackRequest struct {
	Provider string `json:"provider" form:"provider" uri:"provider" binding:"required"`
	Code     string `json:"code" form:"code" binding:"required"`
	State    string `json:"state" form:"state"`
}

// UserDTO 用户数据传输对象
type UserDTO struct {
	UID       int64      `json:"uid"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	Avatar    string     `json:"avatar"`
	Provider  string     `json:"provider"`
	Token     string     `json:"token,omitempty"`
	UpdatedAt timex.Time `json:"updatedAt"`
	CreatedAt timex.Time `json:"createdAt"`
}

// UsernameAvailableDTO 用户名可用性检查结果
type UsernameAvailableDTO struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}
