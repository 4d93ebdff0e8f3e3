package dao

import (
	"context"
	"time"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/model"
	"github.com/labnote/labnote-service/pkg/timex"
)

// userRepository 实现 domain.UserRepository 接口
type userRepository struct {
	dao *Dao
}

// NewUserRepository 创建 UserRepository 实例
func NewUserRepository(dao *Dao) domain.UserRepository {
	return &userRepository{dao: dao}
}

// emailColumn 将邮箱转换为可空列值，未填写时存 NULL
// 唯一索引不约束 NULL，纯密码注册可以都不带邮箱
func emailColumn(email string) *string {
	if email == "" {
		return nil
	}
	return &email
}

// toDomain 将数据库模型转换为领域模型
func (r *userRepository) toDomain(m *model.User) *domain.User {
	if m == nil {
		return nil
	}
	email := ""
	if m.Email != nil {
		email = *m.Email
	}
	return &domain.User{
		UID:       m.UID,
		Username:  m.Username,
		Email:     email,
		Password:  m.Password,
		Avatar:    m.Avatar,
		Provider:  m.Provider,
		CreatedAt: time.Time(m.CreatedAt),
		UpdatedAt: time.Time(m.UpdatedAt),
	}
}

// toModel 将领域模型转换为数据库模型
func (r *userRepository) toModel(user *domain.User) *model.User {
	if user == nil {
		return nil
	}
	return &model.User{
		UID:       user.UID,
		Username:  user.Username,
		Email:     emailColumn(user.Email),
		Password:  user.Password,
		Avatar:    user.Avatar,
		Provider:  user.Provider,
		CreatedAt: timex.Time(user.CreatedAt),
		UpdatedAt: timex.Time(user.UpdatedAt),
	}
}

// GetByUID 根据UID获取用户
func (r *userRepository) GetByUID(ctx context.Context, uid int64) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).Where("uid = ?", uid).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByEmail 根据邮箱获取用户
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).Where("email = ?", email).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// GetByUsername 根据用户名获取用户
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m model.User
	err := r.dao.db.WithContext(ctx).Where("username = ?", username).First(&m).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(&m), nil
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	m.CreatedAt = timex.Now()
	m.UpdatedAt = timex.Now()

	if err := r.dao.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Update 更新用户资料
func (r *userRepository) Update(ctx context.Context, user *domain.User) (*domain.User, error) {
	m := r.toModel(user)
	m.UpdatedAt = timex.Now()

	err := r.dao.db.WithContext(ctx).Model(&model.User{}).
		Where("uid = ?", m.UID).
		Updates(map[string]interface{}{
			"username":   m.Username,
			"email":      m.Email,
			"password":   m.Password,
			"avatar":     m.Avatar,
			"provider":   m.Provider,
			"updated_at": m.UpdatedAt,
		}).Error
	if err != nil {
		return nil, err
	}
	return r.toDomain(m), nil
}

// Delete 删除用户
func (r *userRepository) Delete(ctx context.Context, uid int64) error {
	return r.dao.db.WithContext(ctx).Where("uid = ?", uid).Delete(&model.User{}).Error
}

// 确保 userRepository 实现了 domain.UserRepository 接口
var _ domain.UserRepository = (*userRepository)(nil)
