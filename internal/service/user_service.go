// Package service 实现业务逻辑层
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/internal/dto"
	"github.com/labnote/labnote-service/pkg/app"
	"github.com/labnote/labnote-service/pkg/code"
	"github.com/labnote/labnote-service/pkg/timex"
	"github.com/labnote/labnote-service/pkg/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// FederatedIdentity 联合登录提供方返回的身份信息
// 展示字段（头像等）只透传给客户端，授权决策不使用
type FederatedIdentity struct {
	Provider string
	Email    string
	Name     string
	Avatar   string
}

// UserService 定义用户业务服务接口
type UserService interface {
	// Register 用户注册
	Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error)

	// Login 用户登录
	Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.UserDTO, error)

	// CheckUsername 检查用户名是否可用
	CheckUsername(ctx context.Context, username string) (*dto.UsernameAvailableDTO, error)

	// GetInfo 获取用户信息
	GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error)

	// UpdateMe 更新当前用户资料，用户名变更时重新签发 Token
	UpdateMe(ctx context.Context, uid int64, params *dto.UserUpdateRequest) (*dto.UserDTO, error)

	// DeleteMe 注销账户并级联删除名下数据
	DeleteMe(ctx context.Context, uid int64) error

	// ResolveOrCreateFederated 联合登录身份绑定
	// 幂等：同一邮箱多次登录命中同一账户，不存在时创建
	ResolveOrCreateFederated(ctx context.Context, identity *FederatedIdentity) (*dto.UserDTO, error)
}

// userService 实现 UserService 接口
type userService struct {
	userRepo     domain.UserRepository
	entryRepo    domain.EntryRepository
	projectRepo  domain.ProjectRepository
	templateRepo domain.TemplateRepository
	tokenManager app.TokenManager
	logger       *zap.Logger
	config       *ServiceConfig
	sf           *singleflight.Group
}

// NewUserService 创建 UserService 实例
func NewUserService(
	userRepo domain.UserRepository,
	entryRepo domain.EntryRepository,
	projectRepo domain.ProjectRepository,
	templateRepo domain.TemplateRepository,
	tokenManager app.TokenManager,
	logger *zap.Logger,
	config *ServiceConfig,
) UserService {
	return &userService{
		userRepo:     userRepo,
		entryRepo:    entryRepo,
		projectRepo:  projectRepo,
		templateRepo: templateRepo,
		tokenManager: tokenManager,
		logger:       logger,
		config:       config,
		sf:           &singleflight.Group{},
	}
}

// domainToDTO 将领域模型转换为 DTO
func (s *userService) domainToDTO(user *domain.User) *dto.UserDTO {
	if user == nil {
		return nil
	}
	return &dto.UserDTO{
		UID:       user.UID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
		Provider:  user.Provider,
		UpdatedAt: timex.Time(user.UpdatedAt),
		CreatedAt: timex.Time(user.CreatedAt),
	}
}

// issueToken 为用户签发 Token
func (s *userService) issueToken(user *domain.User) (string, error) {
	return s.tokenManager.Generate(user.UID, user.Username, app.DisplayClaims{
		Email:    user.Email,
		Avatar:   user.Avatar,
		Provider: user.Provider,
	})
}

// Register 用户注册
func (s *userService) Register(ctx context.Context, params *dto.UserCreateRequest) (*dto.UserDTO, error) {
	// 检查注册是否启用
	if s.config == nil || !s.config.User.RegisterIsEnable {
		return nil, code.ErrorUserRegisterIsDisable
	}

	// 验证用户名格式
	if !util.IsValidUsername(params.Username) {
		return nil, code.ErrorUserUsernameNotValid
	}

	// 检查邮箱是否已存在（邮箱可选）
	if params.Email != "" {
		emailUser, err := s.userRepo.GetByEmail(ctx, params.Email)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorDBQuery
		}
		if emailUser != nil {
			return nil, code.ErrorUserEmailAlreadyExists
		}
	}

	// 检查用户名是否已存在
	nameUser, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if nameUser != nil {
		return nil, code.ErrorUserAlreadyExists
	}

	// 生成密码哈希
	password, err := util.GeneratePasswordHash(params.Password)
	if err != nil {
		return nil, code.ErrorPasswordNotValid
	}

	// 创建用户
	newUser := &domain.User{
		Username: params.Username,
		Email:    params.Email,
		Password: password,
	}

	user, err := s.userRepo.Create(ctx, newUser)
	if err != nil {
		return nil, code.ErrorUserRegister.WithDetails(err.Error())
	}

	// 生成 Token
	token, err := s.issueToken(user)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	d := s.domainToDTO(user)
	d.Token = token
	return d, nil
}

// Login 用户登录
func (s *userService) Login(ctx context.Context, params *dto.UserLoginRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUsername(ctx, params.Username)
	if err != nil {
		// 安全考虑：不暴露用户是否存在，统一返回用户名或密码错误
		return nil, code.ErrorUserLoginPasswordFailed
	}

	// 验证密码
	if !util.CheckPasswordHash(user.Password, params.Password) {
		return nil, code.ErrorUserLoginPasswordFailed
	}

	// 生成 Token
	token, err := s.issueToken(user)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	d := s.domainToDTO(user)
	d.Token = token
	return d, nil
}

// CheckUsername 检查用户名是否可用
func (s *userService) CheckUsername(ctx context.Context, username string) (*dto.UsernameAvailableDTO, error) {
	if !util.IsValidUsername(username) {
		return &dto.UsernameAvailableDTO{Username: username, Available: false}, nil
	}

	_, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &dto.UsernameAvailableDTO{Username: username, Available: true}, nil
		}
		return nil, code.ErrorDBQuery
	}
	return &dto.UsernameAvailableDTO{Username: username, Available: false}, nil
}

// GetInfo 获取用户信息
func (s *userService) GetInfo(ctx context.Context, uid int64) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery
	}
	return s.domainToDTO(user), nil
}

// UpdateMe 更新当前用户资料
// 用户名变更后旧 Token 中的声明过时，重新签发并随响应返回
func (s *userService) UpdateMe(ctx context.Context, uid int64, params *dto.UserUpdateRequest) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorUserNotFound
		}
		return nil, code.ErrorDBQuery
	}

	renamed := false
	if params.Username != "" && params.Username != user.Username {
		if !util.IsValidUsername(params.Username) {
			return nil, code.ErrorUserUsernameNotValid
		}
		nameUser, err := s.userRepo.GetByUsername(ctx, params.Username)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, code.ErrorDBQuery
		}
		if nameUser != nil {
			return nil, code.ErrorUserAlreadyExists
		}
		user.Username = params.Username
		renamed = true
	}
	if params.Avatar != "" {
		user.Avatar = params.Avatar
	}

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, code.ErrorUserUpdate.WithDetails(err.Error())
	}

	d := s.domainToDTO(updated)
	if renamed {
		token, err := s.issueToken(updated)
		if err != nil {
			return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
		}
		d.Token = token
	}
	return d, nil
}

// DeleteMe 注销账户并级联删除名下数据
// 本人拥有的项目删除前，先将项目下其他人的条目退回未归类
func (s *userService) DeleteMe(ctx context.Context, uid int64) error {
	_, err := s.userRepo.GetByUID(ctx, uid)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code.ErrorUserNotFound
		}
		return code.ErrorDBQuery
	}

	projects, err := s.projectRepo.ListByMember(ctx, uid)
	if err != nil {
		return code.ErrorDBQuery
	}
	for _, project := range projects {
		if !project.IsOwner(uid) {
			continue
		}
		if err := s.entryRepo.UnlinkProject(ctx, project.ID); err != nil {
			return code.ErrorUserDelete.WithDetails(err.Error())
		}
	}

	if err := s.entryRepo.DeleteByAuthor(ctx, uid); err != nil {
		return code.ErrorUserDelete.WithDetails(err.Error())
	}
	if err := s.projectRepo.DeleteByOwner(ctx, uid); err != nil {
		return code.ErrorUserDelete.WithDetails(err.Error())
	}
	// 清理本人在他人项目中的协作者关系，不留悬空成员
	if err := s.projectRepo.DeleteCollaboratorsByUID(ctx, uid); err != nil {
		return code.ErrorUserDelete.WithDetails(err.Error())
	}
	if err := s.templateRepo.DeleteByOwner(ctx, uid); err != nil {
		return code.ErrorUserDelete.WithDetails(err.Error())
	}
	if err := s.userRepo.Delete(ctx, uid); err != nil {
		return code.ErrorUserDelete.WithDetails(err.Error())
	}
	return nil
}

// ResolveOrCreateFederated 联合登录身份绑定
// singleflight 按提供方+邮箱合并并发回调，数据库唯一约束兜底
func (s *userService) ResolveOrCreateFederated(ctx context.Context, identity *FederatedIdentity) (*dto.UserDTO, error) {
	if identity == nil || identity.Email == "" {
		return nil, code.ErrorOAuthLoginFailed
	}

	key := identity.Provider + ":" + identity.Email
	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		return s.resolveFederated(ctx, identity)
	})
	if err != nil {
		return nil, err
	}
	user := v.(*domain.User)

	token, err := s.issueToken(user)
	if err != nil {
		return nil, code.ErrorTokenGenerate.WithDetails(err.Error())
	}

	d := s.domainToDTO(user)
	d.Token = token
	return d, nil
}

// resolveFederated 查找或创建联合登录账户
func (s *userService) resolveFederated(ctx context.Context, identity *FederatedIdentity) (*domain.User, error) {
	user, err := s.userRepo.GetByEmail(ctx, identity.Email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, code.ErrorDBQuery
	}
	if user != nil {
		return s.bindFederated(ctx, user, identity)
	}

	created, err := s.createFederated(ctx, identity)
	if err == nil {
		return created, nil
	}

	// 并发创建撞上邮箱唯一约束时，重查一次即可命中已存在账户
	user, retryErr := s.userRepo.GetByEmail(ctx, identity.Email)
	if retryErr == nil && user != nil {
		return s.bindFederated(ctx, user, identity)
	}
	return nil, err
}

// bindFederated 将提供方信息绑定到已存在账户
// 重复绑定是无操作，保证回调重放安全
func (s *userService) bindFederated(ctx context.Context, user *domain.User, identity *FederatedIdentity) (*domain.User, error) {
	if user.Provider == identity.Provider && (identity.Avatar == "" || user.Avatar == identity.Avatar) {
		return user, nil
	}
	user.Provider = identity.Provider
	if identity.Avatar != "" {
		user.Avatar = identity.Avatar
	}
	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, code.ErrorUserUpdate.WithDetails(err.Error())
	}
	return updated, nil
}

// createFederated 为联合登录身份创建新账户
// 密码设置为随机 UUID 的哈希，账户无法用密码登录
func (s *userService) createFederated(ctx context.Context, identity *FederatedIdentity) (*domain.User, error) {
	password, err := util.GeneratePasswordHash(uuid.NewString())
	if err != nil {
		return nil, code.ErrorOAuthLoginFailed
	}

	username, err := s.deriveUsername(ctx, identity)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.Create(ctx, &domain.User{
		Username: username,
		Email:    identity.Email,
		Password: password,
		Avatar:   identity.Avatar,
		Provider: identity.Provider,
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// deriveUsername 从联合登录身份推导唯一用户名
func (s *userService) deriveUsername(ctx context.Context, identity *FederatedIdentity) (string, error) {
	base := sanitizeUsername(identity.Name)
	if base == "" {
		base = sanitizeUsername(strings.SplitN(identity.Email, "@", 2)[0])
	}
	if base == "" {
		base = "researcher"
	}

	candidate := base
	for i := 0; i < 5; i++ {
		_, err := s.userRepo.GetByUsername(ctx, candidate)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return candidate, nil
		}
		if err != nil {
			return "", code.ErrorDBQuery
		}
		candidate = fmt.Sprintf("%s_%s", base, strings.ToLower(util.GetRandomString(4)))
	}
	return "", code.ErrorOAuthLoginFailed
}

// sanitizeUsername 将外部名称规整为合法用户名
func sanitizeUsername(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '.':
			b.WriteRune('_')
		}
	}
	out := b.String()
	if len(out) > 16 {
		out = out[:16]
	}
	if len(out) < 3 {
		return ""
	}
	return out
}

// 确保 userService 实现了 UserService 接口
var _ UserService = (*userService)(nil)
