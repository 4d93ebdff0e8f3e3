package service

import (
	"context"
	"strings"
	"testing"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/dto"
	"github.com/labnote/labnote-service/pkg/code"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// --- Mocks ---

type entryMockEntryRepo struct {
	domain.EntryRepository
	entries map[int64]*domain.Entry
	nextID  int64

	appliedSnapshot *domain.EntryVersion
	appliedEntry    *domain.Entry
	deleted         []int64
}

func (m *entryMockEntryRepo) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	if e, ok := m.entries[id]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *entryMockEntryRepo) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	m.nextID++
	entry.ID = m.nextID
	if m.entries == nil {
		m.entries = map[int64]*domain.Entry{}
	}
	m.entries[entry.ID] = entry
	return entry, nil
}

func (m *entryMockEntryRepo) ApplyWithSnapshot(ctx context.Context, snapshot *domain.EntryVersion, entry *domain.Entry) (*domain.Entry, error) {
	m.appliedSnapshot = snapshot
	m.appliedEntry = entry
	m.entries[entry.ID] = entry
	return entry, nil
}

func (m *entryMockEntryRepo) ListByAuthor(ctx context.Context, authorUID int64) ([]*domain.Entry, error) {
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.AuthorUID == authorUID && e.IsUncategorized() {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *entryMockEntryRepo) ListByProject(ctx context.Context, projectID int64) ([]*domain.Entry, error) {
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.ProjectID == projectID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *entryMockEntryRepo) ListAccessible(ctx context.Context, uid int64, projectIDs []int64) ([]*domain.Entry, error) {
	var out []*domain.Entry
	for _, e := range m.entries {
		if e.AuthorUID == uid && e.IsUncategorized() {
			out = append(out, e)
			continue
		}
		for _, pid := range projectIDs {
			if e.ProjectID == pid {
				out = append(out, e)
				break
			}
		}
	}
	return out, nil
}

func (m *entryMockEntryRepo) Delete(ctx context.Context, id int64) error {
	delete(m.entries, id)
	m.deleted = append(m.deleted, id)
	return nil
}

type entryMockProjectRepo struct {
	domain.ProjectRepository
	projects map[int64]*domain.Project
}

func (m *entryMockProjectRepo) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	if p, ok := m.projects[id]; ok {
		return p, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *entryMockProjectRepo) ListByMember(ctx context.Context, uid int64) ([]*domain.Project, error) {
	var out []*domain.Project
	for _, p := range m.projects {
		if p.IsOwner(uid) || p.HasCollaborator(uid) {
			out = append(out, p)
		}
	}
	return out, nil
}

// assertCode 校验返回的业务错误码
func assertCode(t *testing.T, err error, want *code.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error code %d, got nil", want.Code())
	}
	c, ok := err.(*code.Code)
	if !ok {
		t.Fatalf("expected *code.Code, got %T: %v", err, err)
	}
	if c.Code() != want.Code() {
		t.Errorf("expected code %d, got %d (%s)", want.Code(), c.Code(), c.Msg())
	}
}

func newEntryFixture() (*entryMockEntryRepo, *entryMockProjectRepo, EntryService) {
	entryRepo := &entryMockEntryRepo{
		entries: map[int64]*domain.Entry{
			1: {ID: 1, Title: "solo note", Content: "private", AuthorUID: 1, ProjectID: 0},
			2: {ID: 2, Title: "shared note", Content: "team", AuthorUID: 2, ProjectID: 10},
		},
		nextID: 2,
	}
	projectRepo := &entryMockProjectRepo{
		projects: map[int64]*domain.Project{
			10: {ID: 10, Name: "enzyme study", OwnerUID: 2, CollaboratorUIDs: []int64{3}},
		},
	}
	svc := NewEntryService(entryRepo, projectRepo, zap.NewNop())
	return entryRepo, projectRepo, svc
}

// --- Tests ---

func TestEntryService_Create(t *testing.T) {
	_, _, svc := newEntryFixture()
	ctx := context.Background()

	// 未归类条目任何人都可创建
	d, err := svc.Create(ctx, 5, &dto.EntryCreateRequest{Title: "my note"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if d.AuthorUID != 5 {
		t.Errorf("expected author 5, got %d", d.AuthorUID)
	}
	if d.ProjectID != 0 {
		t.Errorf("expected uncategorized entry, got project %d", d.ProjectID)
	}

	// 项目成员可在项目中创建
	d, err = svc.Create(ctx, 3, &dto.EntryCreateRequest{Title: "team note", ProjectID: 10})
	if err != nil {
		t.Fatalf("Create in project failed: %v", err)
	}
	if d.ProjectID != 10 {
		t.Errorf("expected project 10, got %d", d.ProjectID)
	}

	// 非成员在项目中创建按资源不存在处理
	_, err = svc.Create(ctx, 5, &dto.EntryCreateRequest{Title: "sneaky", ProjectID: 10})
	assertCode(t, err, code.ErrorNotFound)

	// 项目不存在同样按资源不存在处理
	_, err = svc.Create(ctx, 5, &dto.EntryCreateRequest{Title: "ghost", ProjectID: 999})
	assertCode(t, err, code.ErrorNotFound)
}

func TestEntryService_Get(t *testing.T) {
	_, _, svc := newEntryFixture()
	ctx := context.Background()

	// 作者可读自己的未归类条目
	d, err := svc.Get(ctx, 1, 1)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if d.Title != "solo note" {
		t.Errorf("expected title 'solo note', got %q", d.Title)
	}

	// 其他用户读未归类条目与条目不存在返回同一错误
	_, errDenied := svc.Get(ctx, 2, 1)
	assertCode(t, errDenied, code.ErrorNotFound)
	_, errMissing := svc.Get(ctx, 2, 999)
	assertCode(t, errMissing, code.ErrorNotFound)

	// 项目所有者和协作者可读项目条目
	if _, err := svc.Get(ctx, 2, 2); err != nil {
		t.Errorf("owner Get failed: %v", err)
	}
	if _, err := svc.Get(ctx, 3, 2); err != nil {
		t.Errorf("collaborator Get failed: %v", err)
	}

	// 非成员不可读
	_, err = svc.Get(ctx, 5, 2)
	assertCode(t, err, code.ErrorNotFound)
}

// 项目事实缺失时即使是作者也拒绝访问
func TestEntryService_Get_MissingProjectFacts(t *testing.T) {
	entryRepo, projectRepo, svc := newEntryFixture()
	ctx := context.Background()

	entryRepo.entries[3] = &domain.Entry{ID: 3, Title: "orphan", AuthorUID: 1, ProjectID: 77}
	delete(projectRepo.projects, 77)

	_, err := svc.Get(ctx, 1, 3)
	assertCode(t, err, code.ErrorNotFound)
}

func TestEntryService_List(t *testing.T) {
	_, _, svc := newEntryFixture()
	ctx := context.Background()

	tests := []struct {
		name      string
		uid       int64
		projectID string
		wantIDs   []int64
	}{
		{name: "all for collaborator", uid: 3, projectID: "all", wantIDs: []int64{2}},
		{name: "empty filter same as all", uid: 3, projectID: "", wantIDs: []int64{2}},
		{name: "all includes own uncategorized", uid: 1, projectID: "all", wantIDs: []int64{1}},
		{name: "uncategorized only", uid: 1, projectID: "uncategorized", wantIDs: []int64{1}},
		{name: "project filter for member", uid: 2, projectID: "10", wantIDs: []int64{2}},
		{name: "project filter for outsider is empty", uid: 5, projectID: "10", wantIDs: []int64{}},
		{name: "missing project is empty", uid: 1, projectID: "999", wantIDs: []int64{}},
		{name: "invalid filter is empty", uid: 1, projectID: "banana", wantIDs: []int64{}},
		{name: "negative id is empty", uid: 1, projectID: "-3", wantIDs: []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := svc.List(ctx, tt.uid, tt.projectID)
			if err != nil {
				t.Fatalf("List failed: %v", err)
			}
			if len(list) != len(tt.wantIDs) {
				t.Fatalf("expected %d entries, got %d", len(tt.wantIDs), len(list))
			}
			got := map[int64]bool{}
			for _, e := range list {
				got[e.ID] = true
			}
			for _, id := range tt.wantIDs {
				if !got[id] {
					t.Errorf("expected entry %d in result", id)
				}
			}
		})
	}
}

// 更新前的状态必须先进入版本快照
func TestEntryService_Update_SnapshotsPriorState(t *testing.T) {
	entryRepo, _, svc := newEntryFixture()
	ctx := context.Background()

	d, err := svc.Update(ctx, 3, 2, &dto.EntryUpdateRequest{
		Title:   "shared note v2",
		Content: "updated team content",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	snap := entryRepo.appliedSnapshot
	if snap == nil {
		t.Fatal("expected snapshot to be written")
	}
	if snap.EntryID != 2 {
		t.Errorf("expected snapshot for entry 2, got %d", snap.EntryID)
	}
	if snap.Title != "shared note" || snap.Content != "team" {
		t.Errorf("snapshot must hold prior state, got title=%q content=%q", snap.Title, snap.Content)
	}
	if snap.ModifiedBy != 3 {
		t.Errorf("expected snapshot modifiedBy 3, got %d", snap.ModifiedBy)
	}
	if snap.SnapshotAt.IsZero() {
		t.Error("expected snapshot time to be set")
	}

	if d.Title != "shared note v2" {
		t.Errorf("expected updated title, got %q", d.Title)
	}
	// 归属与作者不可通过更新修改
	if d.ProjectID != 10 || d.AuthorUID != 2 {
		t.Errorf("update must not change ownership: project=%d author=%d", d.ProjectID, d.AuthorUID)
	}
}

func TestEntryService_Update_Denied(t *testing.T) {
	entryRepo, _, svc := newEntryFixture()
	ctx := context.Background()

	_, err := svc.Update(ctx, 5, 2, &dto.EntryUpdateRequest{Title: "nope"})
	assertCode(t, err, code.ErrorNotFound)

	// 拒绝时不得写入快照
	if entryRepo.appliedSnapshot != nil {
		t.Error("snapshot must not be written for denied update")
	}
}

func TestEntryService_Delete(t *testing.T) {
	entryRepo, _, svc := newEntryFixture()
	ctx := context.Background()

	if err := svc.Delete(ctx, 1, 1); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if len(entryRepo.deleted) != 1 || entryRepo.deleted[0] != 1 {
		t.Errorf("expected entry 1 deleted, got %v", entryRepo.deleted)
	}

	err := svc.Delete(ctx, 5, 2)
	assertCode(t, err, code.ErrorNotFound)
}

func TestEntryService_ExportMarkdown(t *testing.T) {
	entryRepo, _, svc := newEntryFixture()
	ctx := context.Background()

	entryRepo.entries[1].Researcher = "Dr. Chen"
	entryRepo.entries[1].Tags = []string{"pcr", "gel"}

	out, err := svc.ExportMarkdown(ctx, 1, 1)
	if err != nil {
		t.Fatalf("ExportMarkdown failed: %v", err)
	}

	if out.Filename != "solo note.md" {
		t.Errorf("expected filename 'solo note.md', got %q", out.Filename)
	}
	if !strings.HasPrefix(out.Markdown, "---\n") {
		t.Error("expected front matter at document head")
	}
	for _, want := range []string{`title: "solo note"`, `researcher: "Dr. Chen"`, `- "pcr"`, "# solo note", "private"} {
		if !strings.Contains(out.Markdown, want) {
			t.Errorf("expected markdown to contain %q", want)
		}
	}
	if !strings.HasSuffix(out.Markdown, "\n") {
		t.Error("expected markdown to end with newline")
	}

	_, err = svc.ExportMarkdown(ctx, 2, 1)
	assertCode(t, err, code.ErrorNotFound)
}

// 单元测试: 导出文件名规整
func TestExportFilename(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "PCR run 12", want: "PCR run 12.md"},
		{title: "a/b\\c:d", want: "a_b_c_d.md"},
		{title: `q?"<>|*`, want: "q______.md"},
		{title: "   ", want: "entry.md"},
		{title: "", want: "entry.md"},
	}

	for _, tt := range tests {
		if got := exportFilename(tt.title); got != tt.want {
			t.Errorf("exportFilename(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}
