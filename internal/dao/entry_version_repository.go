package dao

import (
	"context"
	"time"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/model"
)

// entryVersionRepository 实现 domain.EntryVersionRepository 接口
// 版本快照只由 EntryRepository.ApplyWithSnapshot 写入，这里仅提供读取
type entryVersionRepository struct {
	dao *Dao
}

// NewEntryVersionRepository 创建 EntryVersionRepository 实例
func NewEntryVersionRepository(dao *Dao) domain.EntryVersionRepository {
	return &entryVersionRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *entryVersionRepository) toDomain(m *model.EntryVersion) *domain.EntryVersion {
	if m == nil {
		return nil
	}
	return &domain.EntryVersion{
		ID:         m.ID,
		EntryID:    m.EntryID,
		Title:      m.Title,
		Content:    m.Content,
		Researcher: m.Researcher,
		Tags:       decodeTags(m.Tags),
		ModifiedBy: m.ModifiedBy,
		SnapshotAt: time.Time(m.SnapshotAt),
		CreatedAt:  time.Time(m.CreatedAt),
	}
}

// GetByID 根据ID获取版本
func (r *entryVersionRepository) GetByID(ctx context.Context, id int64) (*domain.EntryVersion, error) {
	var m model.EntryVersion
	err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// ListByEntryID 获取条目的版本列表，按快照时间倒序
func (r *entryVersionRepository) ListByEntryID(ctx context.Context, entryID int64) ([]*domain.EntryVersion, error) {
	var ms []*model.EntryVersion
	err := r.dao.db.WithContext(ctx).
		Where("entry_id = ?", entryID).
		Order("snapshot_at DESC, id DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.EntryVersion, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// CountByEntryID 获取条目的版本数量
func (r *entryVersionRepository) CountByEntryID(ctx context.Context, entryID int64) (int64, error) {
	var count int64
	err := r.dao.db.WithContext(ctx).Model(&model.EntryVersion{}).
		Where("entry_id = ?", entryID).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// 确保 entryVersionRepository 实现了 domain.EntryVersionRepository 接口
var _ domain.EntryVersionRepository = (*entryVersionRepository)(nil)
