package dto

import "github.com/labnote/labnote-service/pkg/timex"

// TemplateCreateRequest 创建模板请求参数
type TemplateCreateRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=128"`
	Content string `json:"content" form:"content"`
}

// TemplateUpdateRequest 修改模板请求参数
type TemplateUpdateRequest struct {
	Name    string `json:"name" form:"name" binding:"required,max=128"`
	Content string `json:"content" form:"content"`
}

// TemplateIDRequest 模板路由参数
type TemplateIDRequest struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

// TemplateDTO 模板数据传输对象
type TemplateDTO struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Content   string     `json:"content"`
	OwnerUID  int64      `json:"ownerUid"`
	UpdatedAt timex.Time `json:"updatedAt"`
	CreatedAt timex.Time `json:"createdAt"`
}
