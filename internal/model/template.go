package model

import (
	"github.com/labnote/labnote-service/pkg/timex"
)

// Template 模板表模型
type Template struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name      string     `gorm:"column:name;size:128" json:"name"`
	Content   string     `gorm:"column:content;type:text" json:"content"`
	OwnerUID  int64      `gorm:"column:owner_uid;index" json:"ownerUid"`
	UpdatedAt timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
	CreatedAt timex.Time `gorm:"column:created_at;type:datetime;autoUpdateTime:false" json:"createdAt"`
}
