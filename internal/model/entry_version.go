package model

import (
	"github.com/labnote/labnote-service/pkg/timex"
)

// EntryVersion 条目版本快照表模型
// 只追加不修改，条目删除时级联删除
type EntryVersion struct {
	ID         int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EntryID    int64      `gorm:"column:entry_id;index" json:"entryId"`
	Title      string     `gorm:"column:title;size:256" json:"title"`
	Content    string     `gorm:"column:content;type:text" json:"content"`
	Researcher string     `gorm:"column:researcher;size:128" json:"researcher"`
	Tags       string     `gorm:"column:tags;size:1024" json:"tags"`
	ModifiedBy int64      `gorm:"column:modified_by" json:"modifiedBy"`
	SnapshotAt timex.Time `gorm:"column:snapshot_at;type:datetime;autoUpdateTime:false;index" json:"snapshotAt"`
	CreatedAt  timex.Time `gorm:"column:created_at;type:datetime;autoUpdateTime:false" json:"createdAt"`
}
