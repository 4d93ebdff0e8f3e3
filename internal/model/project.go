package model

import (
	"github.com/labnote/labnote-service/pkg/timex"
)

// Project 项目表模型
type Project struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name        string     `gorm:"column:name;size:128" json:"name"`
	Description string     `gorm:"column:description;size:1024" json:"description"`
	OwnerUID    int64      `gorm:"column:owner_uid;index" json:"ownerUid"`
	UpdatedAt   timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
	CreatedAt   timex.Time `gorm:"column:created_at;type:datetime;autoUpdateTime:false" json:"createdAt"`
}

// ProjectCollaborator 项目协作者关系表模型
// 联合唯一索引保证集合语义，并发重复添加由该约束兜底
type ProjectCollaborator struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	ProjectID int64      `gorm:"column:project_id;uniqueIndex:idx_project_collaborator" json:"projectId"`
	UID       int64      `gorm:"column:uid;uniqueIndex:idx_project_collaborator;index" json:"uid"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoUpdateTime:false" json:"createdAt"`
}
