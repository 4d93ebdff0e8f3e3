package domain

import "time"

// EntryVersion 条目版本快照领域模型
// 仅在条目变更（更新或恢复）时由变更前状态生成，创建后不可变更
type EntryVersion struct {
	ID         int64
	EntryID    int64
	Title      string
	Content    string
	Researcher string
	Tags       []string
	ModifiedBy int64
	SnapshotAt time.Time
	CreatedAt  time.Time
}

// BelongsTo 判断版本是否属于指定条目
func (v *EntryVersion) BelongsTo(entryID int64) bool {
	return v.EntryID == entryID
}
