package dao

import (
	"context"
	"encoding/json"
	"time"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/model"
	"github.com/labnote/labnote-service/pkg/timex"

	"gorm.io/gorm"
)

// entryRepository 实现 domain.EntryRepository 接口
type entryRepository struct {
	dao *Dao
}

// NewEntryRepository 创建 EntryRepository 实例
func NewEntryRepository(dao *Dao) domain.EntryRepository {
	return &entryRepository{dao: dao}
}

// encodeTags 将标签集合编码为 JSON 数组字符串
func encodeTags(tags []string) string {
	if len(tags) == 0 {
		return "[]"
	}
	b, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// decodeTags 将 JSON 数组字符串解码为标签集合
func decodeTags(s string) []string {
	if s == "" {
		return []string{}
	}
	var tags []string
	if err := json.Unmarshal([]byte(s), &tags); err != nil {
		return []string{}
	}
	return tags
}

// toDomain 将数据库模型转换为领域模型
func (r *entryRepository) toDomain(m *model.Entry) *domain.Entry {
	if m == nil {
		return nil
	}
	return &domain.Entry{
		ID:         m.ID,
		Title:      m.Title,
		Content:    m.Content,
		Researcher: m.Researcher,
		Tags:       decodeTags(m.Tags),
		Attachment: m.Attachment,
		ProjectID:  m.ProjectID,
		AuthorUID:  m.AuthorUID,
		CreatedAt:  time.Time(m.CreatedAt),
		UpdatedAt:  time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *entryRepository) toModel(entry *domain.Entry) *model.Entry {
	if entry == nil {
		return nil
	}
	return &model.Entry{
		ID:         entry.ID,
		Title:      entry.Title,
		Content:    entry.Content,
		Researcher: entry.Researcher,
		Tags:       encodeTags(entry.Tags),
		Attachment: entry.Attachment,
		ProjectID:  entry.ProjectID,
		AuthorUID:  entry.AuthorUID,
		CreatedAt:  timex.Time(entry.CreatedAt),
		UpdatedAt:  timex.Time(entry.UpdatedAt),
	}
}

// GetByID 根据ID获取条目
func (r *entryRepository) GetByID(ctx context.Context, id int64) (*domain.Entry, error) {
	var m model.Entry
	err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建条目
func (r *entryRepository) Create(ctx context.Context, entry *domain.Entry) (*domain.Entry, error) {
	m := r.toModel(entry)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ApplyWithSnapshot 在单个事务内先写入变更前快照、再覆盖条目字段
// 更新与恢复共用该原子操作，快照与覆盖要么同时生效、要么同时回滚
func (r *entryRepository) ApplyWithSnapshot(ctx context.Context, snapshot *domain.EntryVersion, entry *domain.Entry) (*domain.Entry, error) {
	m := r.toModel(entry)
	m.UpdatedAt = timex.Now()

	err := r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		v := &model.EntryVersion{
			EntryID:    snapshot.EntryID,
			Title:      snapshot.Title,
			Content:    snapshot.Content,
			Researcher: snapshot.Researcher,
			Tags:       encodeTags(snapshot.Tags),
			ModifiedBy: snapshot.ModifiedBy,
			SnapshotAt: timex.Time(snapshot.SnapshotAt),
			CreatedAt:  timex.Now(),
		}
		if err := tx.Create(v).Error; err != nil {
			return err
		}
		return tx.Model(&model.Entry{}).
			Where("id = ?", m.ID).
			Updates(map[string]interface{}{
				"title":      m.Title,
				"content":    m.Content,
				"researcher": m.Researcher,
				"tags":       m.Tags,
				"attachment": m.Attachment,
				"updated_at": m.UpdatedAt,
			}).Error
	})
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByAuthor 获取用户的未归类条目列表
func (r *entryRepository) ListByAuthor(ctx context.Context, authorUID int64) ([]*domain.Entry, error) {
	var ms []*model.Entry
	err := r.dao.db.WithContext(ctx).
		Where("author_uid = ? AND project_id = 0", authorUID).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// ListByProject 获取项目下的条目列表
func (r *entryRepository) ListByProject(ctx context.Context, projectID int64) ([]*domain.Entry, error) {
	var ms []*model.Entry
	err := r.dao.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("updated_at DESC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// ListAccessible 获取用户可访问的全部条目（本人未归类条目 + 参与项目的条目）
func (r *entryRepository) ListAccessible(ctx context.Context, uid int64, projectIDs []int64) ([]*domain.Entry, error) {
	var ms []*model.Entry
	db := r.dao.db.WithContext(ctx)
	if len(projectIDs) > 0 {
		db = db.Where("(author_uid = ? AND project_id = 0) OR project_id IN ?", uid, projectIDs)
	} else {
		db = db.Where("author_uid = ? AND project_id = 0", uid)
	}
	err := db.Order("updated_at DESC").Find(&ms).Error
	if err != nil {
		return nil, err
	}
	return r.toDomainList(ms), nil
}

// UnlinkProject 将项目下条目的项目归属清空（项目删除时条目退回未归类）
func (r *entryRepository) UnlinkProject(ctx context.Context, projectID int64) error {
	return r.dao.db.WithContext(ctx).Model(&model.Entry{}).
		Where("project_id = ?", projectID).
		Updates(map[string]interface{}{
			"project_id": 0,
			"updated_at": timex.Now(),
		}).Error
}

// Delete 删除条目并级联删除其版本
func (r *entryRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", id).Delete(&model.EntryVersion{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Entry{}).Error
	})
}

// DeleteByAuthor 删除用户的全部条目及版本（注销账户时级联）
func (r *entryRepository) DeleteByAuthor(ctx context.Context, authorUID int64) error {
	return r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		var ids []int64
		err := tx.Model(&model.Entry{}).Where("author_uid = ?", authorUID).Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := tx.Where("entry_id IN ?", ids).Delete(&model.EntryVersion{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("author_uid = ?", authorUID).Delete(&model.Entry{}).Error
	})
}

func (r *entryRepository) toDomainList(ms []*model.Entry) []*domain.Entry {
	list := make([]*domain.Entry, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list
}

// 确保 entryRepository 实现了 domain.EntryRepository 接口
var _ domain.EntryRepository = (*entryRepository)(nil)
