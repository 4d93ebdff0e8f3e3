package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/dto"
	"github.com/labnote/labnote-service/pkg/code"
	"github.com/labnote/labnote-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// 条目列表的项目过滤取值
const (
	EntryFilterAll           = "all"
	EntryFilterUncategorized = "uncategorized"
)

// EntryService 定义条目业务服务接口
type EntryService interface {
	// Create 创建条目
	Create(ctx context.Context, uid int64, params *dto.EntryCreateRequest) (*dto.EntryDTO, error)

	// Get 获取条目详情
	Get(ctx context.Context, uid int64, id int64) (*dto.EntryDTO, error)

	// List 获取条目列表，projectID 为 all、uncategorized 或项目ID
	List(ctx context.Context, uid int64, projectID string) ([]*dto.EntryDTO, error)

	// Update 修改条目，变更前状态自动存为版本快照
	Update(ctx context.Context, uid int64, id int64, params *dto.EntryUpdateRequest) (*dto.EntryDTO, error)

	// Delete 删除条目及其全部版本
	Delete(ctx context.Context, uid int64, id int64) error

	// ExportMarkdown 导出条目为 Markdown 文档
	ExportMarkdown(ctx context.Context, uid int64, id int64) (*dto.EntryExportDTO, error)
}

// entryService 实现 EntryService 接口
type entryService struct {
	entryRepo   domain.EntryRepository
	projectRepo domain.ProjectRepository
	logger      *zap.Logger
}

// NewEntryService 创建 EntryService 实例
func NewEntryService(entryRepo domain.EntryRepository, projectRepo domain.ProjectRepository, logger *zap.Logger) EntryService {
	return &entryService{
		entryRepo:   entryRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *entryService) domainToDTO(entry *domain.Entry) *dto.EntryDTO {
	if entry == nil {
		return nil
	}
	tags := entry.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.EntryDTO{
		ID:         entry.ID,
		Title:      entry.Title,
		Content:    entry.Content,
		Researcher: entry.Researcher,
		Tags:       tags,
		Attachment: entry.Attachment,
		ProjectID:  entry.ProjectID,
		AuthorUID:  entry.AuthorUID,
		UpdatedAt:  timex.Time(entry.UpdatedAt),
		CreatedAt:  timex.Time(entry.CreatedAt),
	}
}

// loadAccessible 加载条目并执行访问决策
// 条目不存在与无权访问返回同一错误，避免泄露条目是否存在
func (s *entryService) loadAccessible(ctx context.Context, uid int64, id int64) (*domain.Entry, error) {
	entry, err := s.entryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNotFound
		}
		return nil, code.ErrorDBQuery
	}

	var project *domain.Project
	if !entry.IsUncategorized() {
		project, err = s.projectRepo.GetByID(ctx, entry.ProjectID)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorDBQuery
		}
	}

	if !domain.CanAccessEntry(uid, entry, project) {
		return nil, code.ErrorNotFound
	}
	return entry, nil
}

// Create 创建条目
// 归属项目时要求请求者是项目成员
func (s *entryService) Create(ctx context.Context, uid int64, params *dto.EntryCreateRequest) (*dto.EntryDTO, error) {
	if params.ProjectID != 0 {
		project, err := s.projectRepo.GetByID(ctx, params.ProjectID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, code.ErrorNotFound
			}
			return nil, code.ErrorDBQuery
		}
		if !domain.CanAccessProject(uid, project, domain.ActionUpdate) {
			return nil, code.ErrorNotFound
		}
	}

	entry, err := s.entryRepo.Create(ctx, &domain.Entry{
		Title:      params.Title,
		Content:    params.Content,
		Researcher: params.Researcher,
		Tags:       params.Tags,
		Attachment: params.Attachment,
		ProjectID:  params.ProjectID,
		AuthorUID:  uid,
	})
	if err != nil {
		return nil, code.ErrorEntryCreate.WithDetails(err.Error())
	}
	return s.domainToDTO(entry), nil
}

// Get 获取条目详情
func (s *entryService) Get(ctx context.Context, uid int64, id int64) (*dto.EntryDTO, error) {
	entry, err := s.loadAccessible(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	return s.domainToDTO(entry), nil
}

// List 获取条目列表
// 过滤指向无权访问或不存在的项目时返回空列表而非错误
func (s *entryService) List(ctx context.Context, uid int64, projectID string) ([]*dto.EntryDTO, error) {
	var entries []*domain.Entry
	var err error

	switch projectID {
	case "", EntryFilterAll:
		projects, perr := s.projectRepo.ListByMember(ctx, uid)
		if perr != nil {
			return nil, code.ErrorDBQuery
		}
		ids := make([]int64, 0, len(projects))
		for _, p := range projects {
			ids = append(ids, p.ID)
		}
		entries, err = s.entryRepo.ListAccessible(ctx, uid, ids)

	case EntryFilterUncategorized:
		entries, err = s.entryRepo.ListByAuthor(ctx, uid)

	default:
		id, perr := strconv.ParseInt(projectID, 10, 64)
		if perr != nil || id <= 0 {
			return []*dto.EntryDTO{}, nil
		}
		project, perr2 := s.projectRepo.GetByID(ctx, id)
		if perr2 != nil {
			if errors.Is(perr2, gorm.ErrRecordNotFound) {
				return []*dto.EntryDTO{}, nil
			}
			return nil, code.ErrorDBQuery
		}
		if !domain.CanAccessProject(uid, project, domain.ActionRead) {
			return []*dto.EntryDTO{}, nil
		}
		entries, err = s.entryRepo.ListByProject(ctx, id)
	}

	if err != nil {
		return nil, code.ErrorDBQuery
	}

	list := make([]*dto.EntryDTO, 0, len(entries))
	for _, entry := range entries {
		list = append(list, s.domainToDTO(entry))
	}
	return list, nil
}

// Update 修改条目
// 变更前状态与字段覆盖在同一事务内完成
func (s *entryService) Update(ctx context.Context, uid int64, id int64, params *dto.EntryUpdateRequest) (*dto.EntryDTO, error) {
	entry, err := s.loadAccessible(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	snapshot := snapshotOf(entry, uid)

	entry.Title = params.Title
	entry.Content = params.Content
	entry.Researcher = params.Researcher
	entry.Tags = params.Tags
	entry.Attachment = params.Attachment

	updated, err := s.entryRepo.ApplyWithSnapshot(ctx, snapshot, entry)
	if err != nil {
		return nil, code.ErrorEntryUpdate.WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

// Delete 删除条目及其全部版本
func (s *entryService) Delete(ctx context.Context, uid int64, id int64) error {
	entry, err := s.loadAccessible(ctx, uid, id)
	if err != nil {
		return err
	}
	if err := s.entryRepo.Delete(ctx, entry.ID); err != nil {
		return code.ErrorEntryDelete.WithDetails(err.Error())
	}
	return nil
}

// ExportMarkdown 导出条目为 Markdown 文档
// 元信息以 front matter 形式置于文档头部
func (s *entryService) ExportMarkdown(ctx context.Context, uid int64, id int64) (*dto.EntryExportDTO, error) {
	entry, err := s.loadAccessible(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "title: %q\n", entry.Title)
	if entry.Researcher != "" {
		fmt.Fprintf(&b, "researcher: %q\n", entry.Researcher)
	}
	if len(entry.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range entry.Tags {
			fmt.Fprintf(&b, "  - %q\n", tag)
		}
	}
	fmt.Fprintf(&b, "created: %s\n", entry.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "updated: %s\n", entry.UpdatedAt.Format(time.RFC3339))
	b.WriteString("---\n\n")
	fmt.Fprintf(&b, "# %s\n\n", entry.Title)
	b.WriteString(entry.Content)
	if !strings.HasSuffix(entry.Content, "\n") {
		b.WriteString("\n")
	}

	return &dto.EntryExportDTO{
		Filename: exportFilename(entry.Title),
		Markdown: b.String(),
	}, nil
}

// snapshotOf 从条目当前状态生成版本快照
func snapshotOf(entry *domain.Entry, modifiedBy int64) *domain.EntryVersion {
	return &domain.EntryVersion{
		EntryID:    entry.ID,
		Title:      entry.Title,
		Content:    entry.Content,
		Researcher: entry.Researcher,
		Tags:       entry.Tags,
		ModifiedBy: modifiedBy,
		SnapshotAt: time.Now(),
	}
}

// exportFilename 将条目标题规整为导出文件名
func exportFilename(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			b.WriteRune('_')
		default:
			b.WriteRune(r)
		}
	}
	name := strings.TrimSpace(b.String())
	if name == "" {
		name = "entry"
	}
	return name + ".md"
}

// 确保 entryService 实现了 EntryService 接口
var _ EntryService = (*entryService)(nil)
