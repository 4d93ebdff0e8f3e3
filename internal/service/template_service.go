package service

import (
	"context"
	"errors"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/dto"
	"github.com/labnote/labnote-service/pkg/code"
	"github.com/labnote/labnote-service/pkg/timex"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// TemplateService 定义条目模板业务服务接口
type TemplateService interface {
	// Create 创建模板
	Create(ctx context.Context, uid int64, params *dto.TemplateCreateRequest) (*dto.TemplateDTO, error)

	// Get 获取模板详情
	Get(ctx context.Context, uid int64, id int64) (*dto.TemplateDTO, error)

	// List 获取用户的模板列表
	List(ctx context.Context, uid int64) ([]*dto.TemplateDTO, error)

	// Update 修改模板
	Update(ctx context.Context, uid int64, id int64, params *dto.TemplateUpdateRequest) (*dto.TemplateDTO, error)

	// Delete 删除模板
	Delete(ctx context.Context, uid int64, id int64) error
}

// templateService 实现 TemplateService 接口
type templateService struct {
	templateRepo domain.TemplateRepository
	logger       *zap.Logger
}

// NewTemplateService 创建 TemplateService 实例
func NewTemplateService(templateRepo domain.TemplateRepository, logger *zap.Logger) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		logger:       logger,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *templateService) domainToDTO(template *domain.Template) *dto.TemplateDTO {
	if template == nil {
		return nil
	}
	return &dto.TemplateDTO{
		ID:        template.ID,
		Name:      template.Name,
		Content:   template.Content,
		OwnerUID:  template.OwnerUID,
		UpdatedAt: timex.Time(template.UpdatedAt),
		CreatedAt: timex.Time(template.CreatedAt),
	}
}

// loadOwned 加载模板并校验归属
// 模板是私有资源，非本人模板按不存在处理
func (s *templateService) loadOwned(ctx context.Context, uid int64, id int64) (*domain.Template, error) {
	template, err := s.templateRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNotFound
		}
		return nil, code.ErrorDBQuery
	}
	if !template.IsOwner(uid) {
		return nil, code.ErrorNotFound
	}
	return template, nil
}

// Create 创建模板
func (s *templateService) Create(ctx context.Context, uid int64, params *dto.TemplateCreateRequest) (*dto.TemplateDTO, error) {
	template, err := s.templateRepo.Create(ctx, &domain.Template{
		Name:     params.Name,
		Content:  params.Content,
		OwnerUID: uid,
	})
	if err != nil {
		return nil, code.ErrorTemplateCreate.WithDetails(err.Error())
	}
	return s.domainToDTO(template), nil
}

// Get 获取模板详情
func (s *templateService) Get(ctx context.Context, uid int64, id int64) (*dto.TemplateDTO, error) {
	template, err := s.loadOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	return s.domainToDTO(template), nil
}

// List 获取用户的模板列表
func (s *templateService) List(ctx context.Context, uid int64) ([]*dto.TemplateDTO, error) {
	templates, err := s.templateRepo.ListByOwner(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	list := make([]*dto.TemplateDTO, 0, len(templates))
	for _, template := range templates {
		list = append(list, s.domainToDTO(template))
	}
	return list, nil
}

// Update 修改模板
func (s *templateService) Update(ctx context.Context, uid int64, id int64, params *dto.TemplateUpdateRequest) (*dto.TemplateDTO, error) {
	template, err := s.loadOwned(ctx, uid, id)
	if err != nil {
		return nil, err
	}

	template.Name = params.Name
	template.Content = params.Content

	updated, err := s.templateRepo.Update(ctx, template)
	if err != nil {
		return nil, code.ErrorTemplateUpdate.WithDetails(err.Error())
	}
	return s.domainToDTO(updated), nil
}

// Delete 删除模板
func (s *templateService) Delete(ctx context.Context, uid int64, id int64) error {
	template, err := s.loadOwned(ctx, uid, id)
	if err != nil {
		return err
	}
	if err := s.templateRepo.Delete(ctx, template.ID); err != nil {
		return code.ErrorTemplateDelete.WithDetails(err.Error())
	}
	return nil
}

// 确保 templateService 实现了 TemplateService 接口
var _ TemplateService = (*templateService)(nil)
