package model

import (
	"github.com/labnote/labnote-service/pkg/timex"
)

// Entry 条目表模型
// project_id 为 0 表示未归类；tags 以 JSON 数组字符串存储
type Entry struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Title      string     `gorm:"column:title;size:256" json:"title"`
	Content    string     `gorm:"column:content;type:text" json:"content"`
	Researcher string     `gorm:"column:researcher;size:128" json:"researcher"`
	Tags       string     `gorm:"column:tags;size:1024" json:"tags"`
	Attachment string     `gorm:"column:attachment;size:512" json:"attachment"`
	ProjectID  int64      `gorm:"column:project_id;index" json:"projectId"`
	AuthorUID  int64      `gorm:"column:author_uid;index" json:"authorUid"`
	UpdatedAt  timex.Time `gorm:"column:updated_at;type:datetime;autoUpdateTime:false" json:"updatedAt"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;autoUpdateTime:false" json:"createdAt"`
}
