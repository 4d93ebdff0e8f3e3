package domain

// Action 访问动作类型
type Action string

// 条目与项目支持的访问动作
const (
	ActionRead    Action = "read"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionExport  Action = "export"
	ActionVersion Action = "version"
	ActionManage  Action = "manage"
)

// CollaboratorDecision 协作者管理的决策结果
type CollaboratorDecision int

const (
	// CollaboratorAllowed 允许添加
	CollaboratorAllowed CollaboratorDecision = iota
	// CollaboratorNotOwner 请求者不是项目所有者
	CollaboratorNotOwner
	// CollaboratorUnknownUser 候选邮箱没有对应用户
	CollaboratorUnknownUser
	// CollaboratorSelfReference 候选用户是请求者自己
	CollaboratorSelfReference
)

// CanAccessEntry 判断用户能否对条目执行动作
// 纯决策函数：条目归属项目时由项目的所有者/协作者集合决定，
// 未归类条目仅作者可访问；所有条目动作使用同一规则，不区分读写
// project 为条目归属的项目，未归类条目传 nil
func CanAccessEntry(uid int64, entry *Entry, project *Project) bool {
	if entry == nil {
		return false
	}
	if entry.IsUncategorized() {
		return entry.IsAuthor(uid)
	}
	// 归属项目但项目事实缺失时拒绝，绝不回退到作者判断
	if project == nil || project.ID != entry.ProjectID {
		return false
	}
	return project.IsOwner(uid) || project.HasCollaborator(uid)
}

// CanAccessProject 判断用户能否对项目执行动作
// 变更类动作（删除、协作者管理）仅所有者可执行；读取动作所有者和协作者均可
func CanAccessProject(uid int64, project *Project, action Action) bool {
	if project == nil {
		return false
	}
	switch action {
	case ActionDelete, ActionManage:
		return project.IsOwner(uid)
	default:
		return project.IsOwner(uid) || project.HasCollaborator(uid)
	}
}

// CanManageCollaborator 判断所有者能否将候选用户加入项目协作者
// candidate 为按邮箱查到的用户，查无此人时传 nil
func CanManageCollaborator(uid int64, project *Project, candidate *User) CollaboratorDecision {
	if project == nil || !project.IsOwner(uid) {
		return CollaboratorNotOwner
	}
	if candidate == nil {
		return CollaboratorUnknownUser
	}
	if candidate.UID == uid {
		return CollaboratorSelfReference
	}
	return CollaboratorAllowed
}
