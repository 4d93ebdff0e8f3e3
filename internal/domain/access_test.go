package domain

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// 单元测试: 条目访问决策
func TestCanAccessEntry(t *testing.T) {
	project := &Project{
		ID:               10,
		OwnerUID:         1,
		CollaboratorUIDs: []int64{2, 3},
	}

	tests := []struct {
		name    string
		uid     int64
		entry   *Entry
		project *Project
		want    bool
	}{
		{
			name:  "nil entry denied",
			uid:   1,
			entry: nil,
			want:  false,
		},
		{
			name:  "uncategorized entry author allowed",
			uid:   5,
			entry: &Entry{ID: 1, AuthorUID: 5, ProjectID: 0},
			want:  true,
		},
		{
			name:  "uncategorized entry non-author denied",
			uid:   6,
			entry: &Entry{ID: 1, AuthorUID: 5, ProjectID: 0},
			want:  false,
		},
		{
			name:    "project entry owner allowed",
			uid:     1,
			entry:   &Entry{ID: 2, AuthorUID: 9, ProjectID: 10},
			project: project,
			want:    true,
		},
		{
			name:    "project entry collaborator allowed",
			uid:     3,
			entry:   &Entry{ID: 2, AuthorUID: 9, ProjectID: 10},
			project: project,
			want:    true,
		},
		{
			name:    "project entry outsider denied",
			uid:     7,
			entry:   &Entry{ID: 2, AuthorUID: 9, ProjectID: 10},
			project: project,
			want:    false,
		},
		{
			// 项目事实缺失时即使是作者也拒绝
			name:    "project entry missing project denies author",
			uid:     9,
			entry:   &Entry{ID: 2, AuthorUID: 9, ProjectID: 10},
			project: nil,
			want:    false,
		},
		{
			// 项目与条目归属不一致时一律拒绝
			name:    "project entry mismatched project denied",
			uid:     1,
			entry:   &Entry{ID: 2, AuthorUID: 9, ProjectID: 11},
			project: project,
			want:    false,
		},
		{
			// 归属项目后作者身份不再参与决策
			name:    "project entry author outside project denied",
			uid:     9,
			entry:   &Entry{ID: 2, AuthorUID: 9, ProjectID: 10},
			project: project,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccessEntry(tt.uid, tt.entry, tt.project)
			if got != tt.want {
				t.Errorf("CanAccessEntry() = %v, want %v", got, tt.want)
			}
		})
	}
}

// 单元测试: 项目访问决策
func TestCanAccessProject(t *testing.T) {
	project := &Project{
		ID:               10,
		OwnerUID:         1,
		CollaboratorUIDs: []int64{2},
	}

	tests := []struct {
		name    string
		uid     int64
		project *Project
		action  Action
		want    bool
	}{
		{name: "nil project denied", uid: 1, project: nil, action: ActionRead, want: false},
		{name: "owner can read", uid: 1, project: project, action: ActionRead, want: true},
		{name: "owner can delete", uid: 1, project: project, action: ActionDelete, want: true},
		{name: "owner can manage", uid: 1, project: project, action: ActionManage, want: true},
		{name: "collaborator can read", uid: 2, project: project, action: ActionRead, want: true},
		{name: "collaborator can update", uid: 2, project: project, action: ActionUpdate, want: true},
		{name: "collaborator cannot delete", uid: 2, project: project, action: ActionDelete, want: false},
		{name: "collaborator cannot manage", uid: 2, project: project, action: ActionManage, want: false},
		{name: "outsider cannot read", uid: 3, project: project, action: ActionRead, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanAccessProject(tt.uid, tt.project, tt.action)
			if got != tt.want {
				t.Errorf("CanAccessProject() = %v, want %v", got, tt.want)
			}
		})
	}
}

// 单元测试: 协作者管理决策
func TestCanManageCollaborator(t *testing.T) {
	project := &Project{ID: 10, OwnerUID: 1, CollaboratorUIDs: []int64{2}}

	tests := []struct {
		name      string
		uid       int64
		project   *Project
		candidate *User
		want      CollaboratorDecision
	}{
		{name: "nil project", uid: 1, project: nil, candidate: &User{UID: 5}, want: CollaboratorNotOwner},
		{name: "not owner", uid: 2, project: project, candidate: &User{UID: 5}, want: CollaboratorNotOwner},
		{name: "unknown user", uid: 1, project: project, candidate: nil, want: CollaboratorUnknownUser},
		{name: "self reference", uid: 1, project: project, candidate: &User{UID: 1}, want: CollaboratorSelfReference},
		{name: "allowed", uid: 1, project: project, candidate: &User{UID: 5}, want: CollaboratorAllowed},
		{name: "already collaborator still allowed", uid: 1, project: project, candidate: &User{UID: 2}, want: CollaboratorAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CanManageCollaborator(tt.uid, tt.project, tt.candidate)
			if got != tt.want {
				t.Errorf("CanManageCollaborator() = %v, want %v", got, tt.want)
			}
		})
	}
}

// 未归类条目的访问等价于作者判断
func TestProperty_UncategorizedEntryAuthorOnly(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("uncategorized access iff requester is author", prop.ForAll(
		func(uid, authorUID int64) bool {
			entry := &Entry{ID: 1, AuthorUID: authorUID, ProjectID: 0}
			return CanAccessEntry(uid, entry, nil) == (uid == authorUID)
		},
		gen.Int64Range(1, 100),
		gen.Int64Range(1, 100),
	))

	properties.TestingRun(t)
}

// 归属项目的条目在项目事实缺失时对任何用户拒绝
func TestProperty_ProjectEntryMissingFactsAlwaysDenied(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("missing project facts deny everyone", prop.ForAll(
		func(uid, authorUID, projectID int64) bool {
			entry := &Entry{ID: 1, AuthorUID: authorUID, ProjectID: projectID}
			return !CanAccessEntry(uid, entry, nil)
		},
		gen.Int64Range(1, 100),
		gen.Int64Range(1, 100),
		gen.Int64Range(1, 100),
	))

	properties.TestingRun(t)
}

// 归属项目的条目访问只由成员关系决定，与作者无关
func TestProperty_ProjectEntryMembershipOnly(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("project entry access iff owner or collaborator", prop.ForAll(
		func(uid, ownerUID, authorUID int64, collaborators []int64) bool {
			project := &Project{ID: 10, OwnerUID: ownerUID, CollaboratorUIDs: collaborators}
			entry := &Entry{ID: 1, AuthorUID: authorUID, ProjectID: 10}

			want := uid == ownerUID
			for _, c := range collaborators {
				if c == uid {
					want = true
				}
			}
			return CanAccessEntry(uid, entry, project) == want
		},
		gen.Int64Range(1, 20),
		gen.Int64Range(1, 20),
		gen.Int64Range(1, 20),
		gen.SliceOf(gen.Int64Range(1, 20)),
	))

	properties.TestingRun(t)
}
