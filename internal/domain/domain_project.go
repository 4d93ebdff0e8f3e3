package domain

import "time"

// Project 项目领域模型
// 恰好有一个所有者，协作者为无序去重集合
type Project struct {
	ID          int64
	Name        string
	Description string
	OwnerUID    int64
	// CollaboratorUIDs 协作者 UID 集合（无序、无重复）
	CollaboratorUIDs []int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsOwner 判断用户是否为项目所有者
func (p *Project) IsOwner(uid int64) bool {
	return p.OwnerUID == uid
}

// HasCollaborator 判断用户是否为项目协作者
func (p *Project) HasCollaborator(uid int64) bool {
	for _, c := range p.CollaboratorUIDs {
		if c == uid {
			return true
		}
	}
	return false
}
