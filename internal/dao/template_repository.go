package dao

import (
	"context"
	"time"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/model"
	"github.com/labnote/labnote-service/pkg/timex"
)

// templateRepository 实现 domain.TemplateRepository 接口
type templateRepository struct {
	dao *Dao
}

// NewTemplateRepository 创建 TemplateRepository 实例
func NewTemplateRepository(dao *Dao) domain.TemplateRepository {
	return &templateRepository{dao: dao}
}

func (r *templateRepository) toDomain(m *model.Template) *domain.Template {
	if m == nil {
		return nil
	}
	return &domain.Template{
		ID:        m.ID,
		Name:      m.Name,
		Content:   m.Content,
		OwnerUID:  m.OwnerUID,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

func (r *templateRepository) toModel(template *domain.Template) *model.Template {
	if template == nil {
		return nil
	}
	return &model.Template{
		ID:        template.ID,
		Name:      template.Name,
		Content:   template.Content,
		OwnerUID:  template.OwnerUID,
		CreatedAt: timex.Time(template.CreatedAt),
		UpdatedAt: timex.Time(template.UpdatedAt),
	}
}

// GetByID 根据ID获取模板
func (r *templateRepository) GetByID(ctx context.Context, id int64) (*domain.Template, error) {
	var m model.Template
	err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建模板
func (r *templateRepository) Create(ctx context.Context, template *domain.Template) (*domain.Template, error) {
	m := r.toModel(template)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新模板
func (r *templateRepository) Update(ctx context.Context, template *domain.Template) (*domain.Template, error) {
	m := r.toModel(template)
	m.UpdatedAt = timex.Now()

	err := r.dao.db.WithContext(ctx).Model(&model.Template{}).
		Where("id = ?", m.ID).
		Updates(map[string]interface{}{
			"name":       m.Name,
			"content":    m.Content,
			"updated_at": m.UpdatedAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// ListByOwner 获取用户的模板列表
func (r *templateRepository) ListByOwner(ctx context.Context, ownerUID int64) ([]*domain.Template, error) {
	var ms []*model.Template
	err := r.dao.db.WithContext(ctx).
		Where("owner_uid = ?", ownerUID).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}
	list := make([]*domain.Template, 0, len(ms))
	for _, m := range ms {
		list = append(list, r.toDomain(m))
	}
	return list, nil
}

// Delete 删除模板
func (r *templateRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Template{}).Error
}

// DeleteByOwner 删除用户的全部模板（注销账户时级联）
func (r *templateRepository) DeleteByOwner(ctx context.Context, ownerUID int64) error {
	return r.dao.db.WithContext(ctx).Where("owner_uid = ?", ownerUID).Delete(&model.Template{}).Error
}

// 确保 templateRepository 实现了 domain.TemplateRepository 接口
var _ domain.TemplateRepository = (*templateRepository)(nil)
