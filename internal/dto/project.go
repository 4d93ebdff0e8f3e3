package dto

import "github.com/labnote/labnote-service/pkg/timex"

// ProjectCreateRequest 创建项目请求参数
type ProjectCreateRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=128"`
	Description string `json:"description" form:"description" binding:"max=1024"`
}

// ProjectIDRequest 项目路由参数
type ProjectIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// CollaboratorAddRequest 添加协作者请求参数
// 候选人以邮箱标识
type CollaboratorAddRequest struct {
	Email string `json:"email" form:"email" binding:"required,email"`
}

// ProjectDTO 项目数据传输对象
type ProjectDTO struct {
	ID               int64      `json:"id"`
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	OwnerUID         int64      `json:"ownerUid"`
	CollaboratorUIDs []int64    `json:"collaboratorUids"`
	UpdatedAt        timex.Time `json:"updatedAt"`
	CreatedAt        timex.Time `json:"createdAt"`
}

// CollaboratorDTO 协作者数据传输对象
type CollaboratorDTO struct {
	UID      int64  `json:"uid"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}
