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

// ProjectService 定义项目业务服务接口
type ProjectService interface {
	// Create 创建项目，创建者即所有者
	Create(ctx context.Context, uid int64, params *dto.ProjectCreateRequest) (*dto.ProjectDTO, error)

	// Get 获取项目详情
	Get(ctx context.Context, uid int64, id int64) (*dto.ProjectDTO, error)

	// List 获取用户拥有或参与协作的项目列表
	List(ctx context.Context, uid int64) ([]*dto.ProjectDTO, error)

	// Delete 删除项目，仅所有者可执行，项目下条目退回未归类
	Delete(ctx context.Context, uid int64, id int64) error

	// AddCollaborator 添加协作者，仅所有者可执行，重复添加是无操作
	AddCollaborator(ctx context.Context, uid int64, projectID int64, params *dto.CollaboratorAddRequest) (*dto.ProjectDTO, error)

	// ListCollaborators 获取项目协作者列表
	ListCollaborators(ctx context.Context, uid int64, projectID int64) ([]*dto.CollaboratorDTO, error)
}

// projectService 实现 ProjectService 接口
type projectService struct {
	projectRepo domain.ProjectRepository
	entryRepo   domain.EntryRepository
	userRepo    domain.UserRepository
	logger      *zap.Logger
}

// NewProjectService 创建 ProjectService 实例
func NewProjectService(
	projectRepo domain.ProjectRepository,
	entryRepo domain.EntryRepository,
	userRepo domain.UserRepository,
	logger *zap.Logger,
) ProjectService {
	return &projectService{
		projectRepo: projectRepo,
		entryRepo:   entryRepo,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *projectService) domainToDTO(project *domain.Project) *dto.ProjectDTO {
	if project == nil {
		return nil
	}
	uids := project.CollaboratorUIDs
	if uids == nil {
		uids = []int64{}
	}
	return &dto.ProjectDTO{
		ID:               project.ID,
		Name:             project.Name,
		Description:      project.Description,
		OwnerUID:         project.OwnerUID,
		CollaboratorUIDs: uids,
		UpdatedAt:        timex.Time(project.UpdatedAt),
		CreatedAt:        timex.Time(project.CreatedAt),
	}
}

// loadReadable 加载项目并执行读取访问决策
// 项目不存在与无权访问返回同一错误
func (s *projectService) loadReadable(ctx context.Context, uid int64, id int64) (*domain.Project, error) {
	project, err := s.projectRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorNotFound
		}
		return nil, code.ErrorDBQuery
	}
	if !domain.CanAccessProject(uid, project, domain.ActionRead) {
		return nil, code.ErrorNotFound
	}
	return project, nil
}

// Create 创建项目
func (s *projectService) Create(ctx context.Context, uid int64, params *dto.ProjectCreateRequest) (*dto.ProjectDTO, error) {
	project, err := s.projectRepo.Create(ctx, &domain.Project{
		Name:        params.Name,
		Description: params.Description,
		OwnerUID:    uid,
	})
	if err != nil {
		return nil, code.ErrorProjectCreate.WithDetails(err.Error())
	}
	return s.domainToDTO(project), nil
}

// Get 获取项目详情
func (s *projectService) Get(ctx context.Context, uid int64, id int64) (*dto.ProjectDTO, error) {
	project, err := s.loadReadable(ctx, uid, id)
	if err != nil {
		return nil, err
	}
	return s.domainToDTO(project), nil
}

// List 获取用户拥有或参与协作的项目列表
func (s *projectService) List(ctx context.Context, uid int64) ([]*dto.ProjectDTO, error) {
	projects, err := s.projectRepo.ListByMember(ctx, uid)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	list := make([]*dto.ProjectDTO, 0, len(projects))
	for _, project := range projects {
		list = append(list, s.domainToDTO(project))
	}
	return list, nil
}

// Delete 删除项目
// 仅所有者可执行；项目下条目不随项目删除，全部退回未归类
func (s *projectService) Delete(ctx context.Context, uid int64, id int64) error {
	project, err := s.loadReadable(ctx, uid, id)
	if err != nil {
		return err
	}
	if !domain.CanAccessProject(uid, project, domain.ActionDelete) {
		return code.ErrorProjectNotOwner
	}

	if err := s.entryRepo.UnlinkProject(ctx, project.ID); err != nil {
		return code.ErrorDBQuery
	}
	if err := s.projectRepo.Delete(ctx, project.ID); err != nil {
		return code.ErrorDBQuery
	}
	return nil
}

// AddCollaborator 添加协作者，候选人按邮箱查找
// 决策由领域层统一给出：非所有者、查无此人、添加自己分别对应不同错误
func (s *projectService) AddCollaborator(ctx context.Context, uid int64, projectID int64, params *dto.CollaboratorAddRequest) (*dto.ProjectDTO, error) {
	project, err := s.loadReadable(ctx, uid, projectID)
	if err != nil {
		return nil, err
	}

	candidate, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}

	switch domain.CanManageCollaborator(uid, project, candidate) {
	case domain.CollaboratorNotOwner:
		return nil, code.ErrorProjectNotOwner
	case domain.CollaboratorUnknownUser:
		return nil, code.ErrorCollaboratorUnknownUser
	case domain.CollaboratorSelfReference:
		return nil, code.ErrorCollaboratorSelfReference
	}

	if err := s.projectRepo.AddCollaborator(ctx, project.ID, candidate.UID); err != nil {
		return nil, code.ErrorDBQuery
	}

	updated, err := s.projectRepo.GetByID(ctx, project.ID)
	if err != nil {
		return nil, code.ErrorDBQuery
	}
	return s.domainToDTO(updated), nil
}

// ListCollaborators 获取项目协作者列表
func (s *projectService) ListCollaborators(ctx context.Context, uid int64, projectID int64) ([]*dto.CollaboratorDTO, error) {
	project, err := s.loadReadable(ctx, uid, projectID)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.CollaboratorDTO, 0, len(project.CollaboratorUIDs))
	for _, cuid := range project.CollaboratorUIDs {
		user, err := s.userRepo.GetByUID(ctx, cuid)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, code.ErrorDBQuery
		}
		list = append(list, &dto.CollaboratorDTO{
			UID:      user.UID,
			Username: user.Username,
			Avatar:   user.Avatar,
		})
	}
	return list, nil
}

// 确保 projectService 实现了 ProjectService 接口
var _ ProjectService = (*projectService)(nil)
