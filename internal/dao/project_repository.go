package dao

import (
	"context"
	"strings"
	"time"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/model"
	"github.com/labnote/labnote-service/pkg/timex"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// projectRepository 实现 domain.ProjectRepository 接口
type projectRepository struct {
	dao *Dao
}

// NewProjectRepository 创建 ProjectRepository 实例
func NewProjectRepository(dao *Dao) domain.ProjectRepository {
	return &projectRepository{dao: dao}
}

// toDomain 将数据库模型转换为领域模型
func (r *projectRepository) toDomain(m *model.Project, collaboratorUIDs []int64) *domain.Project {
	if m == nil {
		return nil
	}
	return &domain.Project{
		ID:               m.ID,
		Name:             m.Name,
		Description:      m.Description,
		OwnerUID:         m.OwnerUID,
		CollaboratorUIDs: collaboratorUIDs,
		CreatedAt:        time.Time(m.CreatedAt),
		UpdatedAt:        time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *projectRepository) toModel(project *domain.Project) *model.Project {
	if project == nil {
		return nil
	}
	return &model.Project{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		OwnerUID:    project.OwnerUID,
		CreatedAt:   timex.Time(project.CreatedAt),
		UpdatedAt:   timex.Time(project.UpdatedAt),
	}
}

// collaboratorUIDs 获取项目的协作者UID集合
func (r *projectRepository) collaboratorUIDs(ctx context.Context, projectID int64) ([]int64, error) {
	var uids []int64
	err := r.dao.db.WithContext(ctx).Model(&model.ProjectCollaborator{}).
		Where("project_id = ?", projectID).
		Order("id ASC").
		Pluck("uid", &uids).Error
	if err != nil {
		return nil, err
	}
	return uids, nil
}

// GetByID 根据ID获取项目（含协作者集合）
func (r *projectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var m model.Project
	err := r.dao.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if err != nil {
		return nil, err
	}
	uids, err := r.collaboratorUIDs(ctx, m.ID)
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m, uids), nil
}

// Create 创建项目
func (r *projectRepository) Create(ctx context.Context, project *domain.Project) (*domain.Project, error) {
	m := r.toModel(project)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m, nil), nil
}

// ListByMember 获取用户拥有或参与协作的项目列表
func (r *projectRepository) ListByMember(ctx context.Context, uid int64) ([]*domain.Project, error) {
	var ms []*model.Project
	err := r.dao.db.WithContext(ctx).Model(&model.Project{}).
		Where("owner_uid = ? OR id IN (?)", uid,
			r.dao.db.Model(&model.ProjectCollaborator{}).Select("project_id").Where("uid = ?", uid)).
		Order("id ASC").
		Find(&ms).Error
	if err != nil {
		return nil, err
	}

	list := make([]*domain.Project, 0, len(ms))
	for _, m := range ms {
		uids, err := r.collaboratorUIDs(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		list = append(list, r.toDomain(m, uids))
	}
	return list, nil
}

// AddCollaborator 将用户加入项目协作者集合
// 集合语义由联合唯一索引保证，重复添加视为成功
func (r *projectRepository) AddCollaborator(ctx context.Context, projectID, uid int64) error {
	m := &model.ProjectCollaborator{
		ProjectID: projectID,
		UID:       uid,
		CreatedAt: timex.Now(),
	}
	err := r.dao.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
	if err != nil && isDuplicateKeyError(err) {
		return nil
	}
	return err
}

// Delete 删除项目及其协作者关系
func (r *projectRepository) Delete(ctx context.Context, id int64) error {
	return r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&model.ProjectCollaborator{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Project{}).Error
	})
}

// DeleteByOwner 删除用户拥有的全部项目（注销账户时级联）
func (r *projectRepository) DeleteByOwner(ctx context.Context, ownerUID int64) error {
	return r.dao.Transaction(ctx, func(tx *gorm.DB) error {
		var ids []int64
		err := tx.Model(&model.Project{}).Where("owner_uid = ?", ownerUID).Pluck("id", &ids).Error
		if err != nil {
			return err
		}
		if len(ids) > 0 {
			if err := tx.Where("project_id IN ?", ids).Delete(&model.ProjectCollaborator{}).Error; err != nil {
				return err
			}
		}
		return tx.Where("owner_uid = ?", ownerUID).Delete(&model.Project{}).Error
	})
}

// DeleteCollaboratorsByUID 删除用户在所有项目中的协作者关系（注销账户时级联）
func (r *projectRepository) DeleteCollaboratorsByUID(ctx context.Context, uid int64) error {
	return r.dao.db.WithContext(ctx).
		Where("uid = ?", uid).
		Delete(&model.ProjectCollaborator{}).Error
}

// isDuplicateKeyError 判断是否唯一约束冲突
// sqlite/mysql/postgres 的驱动错误文本不同，这里统一按关键字识别
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") ||
		strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "constraint failed")
}

// 确保 projectRepository 实现了 domain.ProjectRepository 接口
var _ domain.ProjectRepository = (*projectRepository)(nil)
