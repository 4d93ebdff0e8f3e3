package service

import (
	"context"
	"errors"
	"time"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/dto"
	"github.com/labnote/labnote-service/pkg/code"
	"github.com/labnote/labnote-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// EntryVersionService 定义条目版本业务服务接口
type EntryVersionService interface {
	// List 获取条目的版本列表，按快照时间倒序
	List(ctx context.Context, uid int64, entryID int64) ([]*dto.EntryVersionDTO, error)

	// Restore 将条目恢复到指定版本
	// 恢复前当前状态先存为新快照，恢复本身可被再次恢复撤销
	Restore(ctx context.Context, uid int64, entryID int64, versionID int64) (*dto.EntryDTO, error)
}

// entryVersionService 实现 EntryVersionService 接口
type entryVersionService struct {
	entryRepo   domain.EntryRepository
	versionRepo domain.EntryVersionRepository
	projectRepo domain.ProjectRepository
	logger      *zap.Logger
}

// NewEntryVersionService 创建 EntryVersionService 实例
func NewEntryVersionService(
	entryRepo domain.EntryRepository,
	versionRepo domain.EntryVersionRepository,
	projectRepo domain.ProjectRepository,
	logger *zap.Logger,
) EntryVersionService {
	return &entryVersionService{
		entryRepo:   entryRepo,
		versionRepo: versionRepo,
		projectRepo: projectRepo,
		logger:      logger,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *entryVersionService) domainToDTO(version *domain.EntryVersion) *dto.EntryVersionDTO {
	if version == nil {
		return nil
	}
	tags := version.Tags
	if tags == nil {
		tags = []string{}
	}
	return &dto.EntryVersionDTO{
		ID:         version.ID,
		EntryID:    version.EntryID,
		Title:      version.Title,
		Content:    version.Content,
		Researcher: version.Researcher,
		Tags:       tags,
		ModifiedBy: version.ModifiedBy,
		SnapshotAt: timex.Time(version.SnapshotAt),
	}
}

// entryToDTO 将条目领域模型转换为 DTO
func (s *entryVersionService) entryToDTO(entry *domain.Entry) *dto.EntryDTO {
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
// 版本操作沿用条目本身的访问规则
func (s *entryVersionService) loadAccessible(ctx context.Context, uid int64, entryID int64) (*domain.Entry, error) {
	entry, err := s.entryRepo.GetByID(ctx, entryID)
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

// List 获取条目的版本列表
func (s *entryVersionService) List(ctx context.Context, uid int64, entryID int64) ([]*dto.EntryVersionDTO, error) {
	entry, err := s.loadAccessible(ctx, uid, entryID)
	if err != nil {
		return nil, err
	}

	versions, err := s.versionRepo.ListByEntryID(ctx, entry.ID)
	if err != nil {
		return nil, code.ErrorDBQuery
	}

	list := make([]*dto.EntryVersionDTO, 0, len(versions))
	for _, version := range versions {
		list = append(list, s.domainToDTO(version))
	}
	return list, nil
}

// Restore 将条目恢复到指定版本
// 版本属于其他条目时按资源不存在处理，不泄露版本归属
func (s *entryVersionService) Restore(ctx context.Context, uid int64, entryID int64, versionID int64) (*dto.EntryDTO, error) {
	entry, err := s.loadAccessible(ctx, uid, entryID)
	if err != nil {
		return nil, err
	}

	version, err := s.versionRepo.GetByID(ctx, versionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorVersionNotFound
		}
		return nil, code.ErrorDBQuery
	}
	if !version.BelongsTo(entry.ID) {
		return nil, code.ErrorNotFound
	}

	// 恢复前当前状态先入快照，恢复后可沿版本链回退
	snapshot := &domain.EntryVersion{
		EntryID:    entry.ID,
		Title:      entry.Title,
		Content:    entry.Content,
		Researcher: entry.Researcher,
		Tags:       entry.Tags,
		ModifiedBy: uid,
		SnapshotAt: time.Now(),
	}

	entry.Title = version.Title
	entry.Content = version.Content
	entry.Researcher = version.Researcher
	entry.Tags = version.Tags

	restored, err := s.entryRepo.ApplyWithSnapshot(ctx, snapshot, entry)
	if err != nil {
		return nil, code.ErrorEntryRestore.WithDetails(err.Error())
	}
	return s.entryToDTO(restored), nil
}

// 确保 entryVersionService 实现了 EntryVersionService 接口
var _ EntryVersionService = (*entryVersionService)(nil)
