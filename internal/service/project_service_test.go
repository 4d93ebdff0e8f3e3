package service

import (
	"context"
	"testing"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/dto"
	"github.com/labnote/labnote-service/pkg/code"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mocks ---

type projectMockProjectRepo struct {
	domain.ProjectRepository
	projects map[int64]*domain.Project
	nextID   int64
	deleted  []int64
}

func (m *projectMockProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	if p, ok := m.projects[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *projectMockProjectRepo) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	m.nextID++
	project.ID = m.nextID
	if m.projects == nil {
		m.projects = map[int64]*domain.Project{}
	}
	m.projects[project.ID] = project
	return project, nil
}

func (m *projectMockProjectRepo) ListByMember(ctx context.Context, uid int64) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range m.projects {
		if p.IsOwner(uid) || p.HasCollaborator(uid) {
			out = append(out, p)
		}
	}
	return out, nil
}

// AddCollaborator 集合语义：重复添加是无操作
func (m *projectMockProjectRepo) AddCollaborator(ctx context.Context, projectID, uid int64) error {
	p := m.projects[projectID]
	for _, c := range p.CollaboratorUIDs {
		if c == uid {
			return nil
		}
	}
	p.CollaboratorUIDs = append(p.CollaboratorUIDs, uid)
	return nil
}

func (m *projectMockProjectRepo) Delete(ctx context.Context, id int64) error {
	delete(m.projects, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func newProjectFixture() (*projectMockProjectRepo, *userMockEntryRepo, *userMockUserRepo, ProjectService) {
	projectRepo := &projectMockProjectRepo{
		projects: map[int64]*domain.Project{
			10: {ID: 10, Name: "enzyme study", OwnerUID: 1, CollaboratorUIDs: []int64{2}},
		},
		nextID: 10,
	}
	entryRepo := &userMockEntryRepo{}
	userRepo := &userMockUserRepo{
		users: map[int64]*domain.User{
			1: {UID: 1, Username: "alice", Email: "alice@lab.org"},
			2: {UID: 2, Username: "bob", Email: "bob@lab.org"},
			3: {UID: 3, Username: "carol", Email: "carol@lab.org"},
		},
		nextID: 3,
	}
	svc := NewProjectService(projectRepo, entryRepo, userRepo, zap.NewNop())
	return projectRepo, entryRepo, userRepo, svc
}

// --- Tests ---

func TestProjectService_Create(t *testing.T) {
	_, _, _, svc := newProjectFixture()
	ctx := context.Background()

	d, err := svc.Create(ctx, 5, &dto.ProjectCreateRequest{Name: "new project", Description: "desc"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if d.OwnerUID != 5 {
		t.Errorf("creator must become owner, got %d", d.OwnerUID)
	}
	if len(d.CollaboratorUIDs) != 0 {
		t.Errorf("new project must have no collaborators, got %v", d.CollaboratorUIDs)
	}
}

func TestProjectService_Get(t *testing.T) {
	_, _, _, svc := newProjectFixture()
	ctx := context.Background()

	if _, err := svc.Get(ctx, 1, 10); err != nil {
		t.Errorf("owner Get failed: %v", err)
	}
	if _, err := svc.Get(ctx, 2, 10); err != nil {
		t.Errorf("collaborator Get failed: %v", err)
	}

	// 非成员与项目不存在返回同一错误
	_, errDenied := svc.Get(ctx, 3, 10)
	assertCode(t, errDenied, code.ErrorNotFound)
	_, errMissing := svc.Get(ctx, 1, 999)
	assertCode(t, errMissing, code.ErrorNotFound)
}

func TestProjectService_List(t *testing.T) {
	projectRepo, _, _, svc := newProjectFixture()
	ctx := context.Background()

	projectRepo.projects[11] = &domain.Project{ID: 11, Name: "other", OwnerUID: 3}

	list, err := svc.List(ctx, 2)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != 10 {
		t.Errorf("expected only project 10 for collaborator, got %v", list)
	}

	list, err = svc.List(ctx, 5)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected empty list for outsider, got %v", list)
	}
}

// 删除项目时条目不随之删除，全部退回未归类
func TestProjectService_Delete(t *testing.T) {
	projectRepo, entryRepo, _, svc := newProjectFixture()
	ctx := context.Background()

	// 协作者不可删除
	err := svc.Delete(ctx, 2, 10)
	assertCode(t, err, code.ErrorProjectNotOwner)

	// 非成员按资源不存在处理
	err = svc.Delete(ctx, 3, 10)
	assertCode(t, err, code.ErrorNotFound)

	// 所有者删除，条目先解绑
	if err := svc.Delete(ctx, 1, 10); err != nil {
		t.Fatalf("owner Delete failed: %v", err)
	}
	if len(entryRepo.unlinked) != 1 || entryRepo.unlinked[0] != 10 {
		t.Errorf("expected entries unlinked from project 10, got %v", entryRepo.unlinked)
	}
	if len(projectRepo.deleted) != 1 || projectRepo.deleted[0] != 10 {
		t.Errorf("expected project 10 deleted, got %v", projectRepo.deleted)
	}
}

func TestProjectService_AddCollaborator(t *testing.T) {
	projectRepo, _, _, svc := newProjectFixture()
	ctx := context.Background()

	// 协作者不可管理协作者集合
	_, err := svc.AddCollaborator(ctx, 2, 10, &dto.CollaboratorAddRequest{Email: "carol@lab.org"})
	assertCode(t, err, code.ErrorProjectNotOwner)

	// 该邮箱查无此人
	_, err = svc.AddCollaborator(ctx, 1, 10, &dto.CollaboratorAddRequest{Email: "nobody@lab.org"})
	assertCode(t, err, code.ErrorCollaboratorUnknownUser)

	// 不能添加自己
	_, err = svc.AddCollaborator(ctx, 1, 10, &dto.CollaboratorAddRequest{Email: "alice@lab.org"})
	assertCode(t, err, code.ErrorCollaboratorSelfReference)

	// 按邮箱正常添加
	d, err := svc.AddCollaborator(ctx, 1, 10, &dto.CollaboratorAddRequest{Email: "carol@lab.org"})
	if err != nil {
		t.Fatalf("AddCollaborator failed: %v", err)
	}
	if len(d.CollaboratorUIDs) != 2 {
		t.Errorf("expected 2 collaborators, got %v", d.CollaboratorUIDs)
	}

	// 重复添加是无操作
	d, err = svc.AddCollaborator(ctx, 1, 10, &dto.CollaboratorAddRequest{Email: "carol@lab.org"})
	if err != nil {
		t.Fatalf("duplicate AddCollaborator failed: %v", err)
	}
	if len(d.CollaboratorUIDs) != 2 {
		t.Errorf("duplicate add must not grow the set, got %v", d.CollaboratorUIDs)
	}
	if len(projectRepo.projects[10].CollaboratorUIDs) != 2 {
		t.Errorf("stored collaborator set must stay deduplicated, got %v", projectRepo.projects[10].CollaboratorUIDs)
	}
}

func TestProjectService_ListCollaborators(t *testing.T) {
	_, _, _, svc := newProjectFixture()
	ctx := context.Background()

	list, err := svc.ListCollaborators(ctx, 1, 10)
	if err != nil {
		t.Fatalf("ListCollaborators failed: %v", err)
	}
	if len(list) != 1 || list[0].Username != "bob" {
		t.Errorf("expected collaborator bob, got %v", list)
	}

	// 协作者也可查看集合
	if _, err := svc.ListCollaborators(ctx, 2, 10); err != nil {
		t.Errorf("collaborator ListCollaborators failed: %v", err)
	}

	// 非成员不可查看
	_, err = svc.ListCollaborators(ctx, 3, 10)
	assertCode(t, err, code.ErrorNotFound)
}
