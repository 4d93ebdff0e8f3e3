// Package domain 定义领域模型和接口
package domain

import "context"

// UserRepository 用户仓储接口
type UserRepository interface {
	// GetByUID 根据UID获取用户
	GetByUID(ctx context.Context, uid int64) (*User, error)

	// GetByEmail 根据邮箱获取用户
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByUsername 根据用户名获取用户
	GetByUsername(ctx context.Context, username string) (*User, error)

	// Create 创建用户
	Create(ctx context.Context, user *User) (*User, error)

	// Update 更新用户资料（用户名、头像、联合登录提供方）
	Update(ctx context.Context, user *User) (*User, error)

	// Delete 删除用户
	Delete(ctx context.Context, uid int64) error
}

// ProjectRepository 项目仓储接口
type ProjectRepository interface {
	// GetByID 根据ID获取项目（含协作者集合）
	GetByID(ctx context.Context, id int64) (*Project, error)

	// Create 创建项目
	Create(ctx context.Context, project *Project) (*Project, error)

	// ListByMember 获取用户拥有或参与协作的项目列表
	ListByMember(ctx context.Context, uid int64) ([]*Project, error)

	// AddCollaborator 将用户加入项目协作者集合
	// 集合语义：重复添加是无操作，不报错
	AddCollaborator(ctx context.Context, projectID, uid int64) error

	// Delete 删除项目及其协作者关系
	Delete(ctx context.Context, id int64) error

	// DeleteByOwner 删除用户拥有的全部项目（注销账户时级联）
	DeleteByOwner(ctx context.Context, ownerUID int64) error

	// DeleteCollaboratorsByUID 删除用户在所有项目中的协作者关系（注销账户时级联）
	DeleteCollaboratorsByUID(ctx context.Context, uid int64) error
}

// EntryRepository 条目仓储接口
type EntryRepository interface {
	// GetByID 根据ID获取条目
	GetByID(ctx context.Context, id int64) (*Entry, error)

	// Create 创建条目
	Create(ctx context.Context, entry *Entry) (*Entry, error)

	// ApplyWithSnapshot 在单个事务内先写入变更前快照、再覆盖条目字段
	// 更新与恢复共用该原子操作，保证崩溃时不会出现只有其一的状态
	ApplyWithSnapshot(ctx context.Context, snapshot *EntryVersion, entry *Entry) (*Entry, error)

	// ListByAuthor 获取用户的未归类条目列表
	ListByAuthor(ctx context.Context, authorUID int64) ([]*Entry, error)

	// ListByProject 获取项目下的条目列表
	ListByProject(ctx context.Context, projectID int64) ([]*Entry, error)

	// ListAccessible 获取用户可访问的全部条目（作者条目 + 参与项目的条目）
	ListAccessible(ctx context.Context, uid int64, projectIDs []int64) ([]*Entry, error)

	// UnlinkProject 将项目下条目的项目归属清空（项目删除时）
	UnlinkProject(ctx context.Context, projectID int64) error

	// Delete 删除条目并级联删除其版本
	Delete(ctx context.Context, id int64) error

	// DeleteByAuthor 删除用户的全部条目及版本（注销账户时级联）
	DeleteByAuthor(ctx context.Context, authorUID int64) error
}

// EntryVersionRepository 条目版本仓储接口
type EntryVersionRepository interface {
	// GetByID 根据ID获取版本
	GetByID(ctx context.Context, id int64) (*EntryVersion, error)

	// ListByEntryID 获取条目的版本列表，按快照时间倒序
	ListByEntryID(ctx context.Context, entryID int64) ([]*EntryVersion, error)

	// CountByEntryID 获取条目的版本数量
	CountByEntryID(ctx context.Context, entryID int64) (int64, error)
}

// TemplateRepository 模板仓储接口
type TemplateRepository interface {
	// GetByID 根据ID获取模板
	GetByID(ctx context.Context, id int64) (*Template, error)

	// Create 创建模板
	Create(ctx context.Context, template *Template) (*Template, error)

	// Update 更新模板
	Update(ctx context.Context, template *Template) (*Template, error)

	// ListByOwner 获取用户的模板列表
	ListByOwner(ctx context.Context, ownerUID int64) ([]*Template, error)

	// Delete 删除模板
	Delete(ctx context.Context, id int64) error

	// DeleteByOwner 删除用户的全部模板（注销账户时级联）
	DeleteByOwner(ctx context.Context, ownerUID int64) error
}
