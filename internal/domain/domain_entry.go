package domain

import "time"

// Entry 笔记条目领域模型
// ProjectID 为 0 表示未归类条目，访问控制仅由作者决定；
// 归属项目时访问控制委托给项目的所有者/协作者集合
type Entry struct {
	ID         int64
	Title      string
	Content    string
	Researcher string
	Tags       []string
	Attachment string
	ProjectID  int64
	AuthorUID  int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsUncategorized 判断条目是否未归类
func (e *Entry) IsUncategorized() bool {
	return e.ProjectID == 0
}

// IsAuthor 判断用户是否为条目作者
func (e *Entry) IsAuthor(uid int64) bool {
	return e.AuthorUID == uid
}
