package domain

import "time"

// Template 模板领域模型，仅归属单个用户，不支持分享
type Template struct {
	ID        int64
	Name      string
	Content   string
	OwnerUID  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwner 判断用户是否为模板所有者
func (t *Template) IsOwner(uid int64) bool {
	return t.OwnerUID == uid
}
