package service

import (
	"context"
	"testing"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/pkg/code"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mocks ---

type versionMockVersionRepo struct {
	domain.EntryVersionRepository
	versions map[int64]*domain.EntryVersion
}

func (m *versionMockVersionRepo) GetByID(ctx context.Context, id int64) (*domain.EntryVersion, error) {
	if v, ok := m.versions[id]; ok {
		copied := *v
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *versionMockVersionRepo) ListByEntryID(ctx context.Context, entryID int64) ([]*domain.EntryVersion, error) {
	var out []*domain.EntryVersion
	for _, v := range m.versions {
		if v.EntryID == entryID {
			out = append(out, v)
		}
	}
	return out, nil
}

func newVersionFixture() (*entryMockEntryRepo, *versionMockVersionRepo, EntryVersionService) {
	entryRepo := &entryMockEntryRepo{
		entries: map[int64]*domain.Entry{
			1: {ID: 1, Title: "current title", Content: "current content", Researcher: "Dr. Chen", AuthorUID: 1, ProjectID: 0},
			2: {ID: 2, Title: "other entry", Content: "other", AuthorUID: 2, ProjectID: 0},
		},
		nextID: 2,
	}
	versionRepo := &versionMockVersionRepo{
		versions: map[int64]*domain.EntryVersion{
			100: {ID: 100, EntryID: 1, Title: "old title", Content: "old content", Researcher: "Dr. Wu", ModifiedBy: 1},
			200: {ID: 200, EntryID: 2, Title: "foreign version", Content: "foreign", ModifiedBy: 2},
		},
	}
	projectRepo := &entryMockProjectRepo{projects: map[int64]*domain.Project{}}
	svc := NewEntryVersionService(entryRepo, versionRepo, projectRepo, zap.NewNop())
	return entryRepo, versionRepo, svc
}

// --- Tests ---

func TestEntryVersionService_List(t *testing.T) {
	_, _, svc := newVersionFixture()
	ctx := context.Background()

	list, err := svc.List(ctx, 1, 1)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != 100 {
		t.Errorf("expected version 100, got %v", list)
	}

	// 条目访问规则同样约束版本列表
	_, err = svc.List(ctx, 5, 1)
	assertCode(t, err, code.ErrorNotFound)
}

// 恢复前当前状态先存为新快照，恢复本身可被再次恢复撤销
func TestEntryVersionService_Restore(t *testing.T) {
	entryRepo, _, svc := newVersionFixture()
	ctx := context.Background()

	d, err := svc.Restore(ctx, 1, 1, 100)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	// 条目字段来自被恢复的版本
	if d.Title != "old title" || d.Content != "old content" || d.Researcher != "Dr. Wu" {
		t.Errorf("restored fields mismatch: %+v", d)
	}

	// 恢复前状态进入快照
	snap := entryRepo.appliedSnapshot
	if snap == nil {
		t.Fatal("expected self-snapshot before restore")
	}
	if snap.Title != "current title" || snap.Content != "current content" {
		t.Errorf("self-snapshot must hold pre-restore state, got title=%q content=%q", snap.Title, snap.Content)
	}
	if snap.ModifiedBy != 1 {
		t.Errorf("expected snapshot modifiedBy 1, got %d", snap.ModifiedBy)
	}
}

func TestEntryVersionService_Restore_Errors(t *testing.T) {
	entryRepo, _, svc := newVersionFixture()
	ctx := context.Background()

	// 版本不存在
	_, err := svc.Restore(ctx, 1, 1, 999)
	assertCode(t, err, code.ErrorVersionNotFound)

	// 版本属于其他条目，按资源不存在处理
	_, err = svc.Restore(ctx, 1, 1, 200)
	assertCode(t, err, code.ErrorNotFound)

	// 条目无权访问
	_, err = svc.Restore(ctx, 5, 1, 100)
	assertCode(t, err, code.ErrorNotFound)

	// 全部失败路径都不允许写入
	if entryRepo.appliedSnapshot != nil {
		t.Error("no snapshot may be written on failed restore")
	}
}
