package service

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/labnote/labnote-service/internal/dto"
	"github.com/labnote/labnote-service/pkg/code"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
)

// OAuthService 定义联合登录服务接口
type OAuthService interface {
	// AuthCodeURL 生成提供方授权跳转地址
	AuthCodeURL(provider string, state string) (string, error)

	// HandleCallback 处理授权回调：换取令牌、拉取身份、绑定账户
	HandleCallback(ctx context.Context, params *dto.OAuthCallbackRequest) (*dto.UserDTO, error)
}

// oauthService 实现 OAuthService 接口
type oauthService struct {
	userService UserService
	logger      *zap.Logger
	config      *ServiceConfig
}

// NewOAuthService 创建 OAuthService 实例
func NewOAuthService(userService UserService, logger *zap.Logger, config *ServiceConfig) OAuthService {
	return &oauthService{
		userService: userService,
		logger:      logger,
		config:      config,
	}
}

// providerUserInfo 提供方用户信息端点的通用响应
// 各提供方字段名不尽相同，这里兼容常见的几种
type providerUserInfo struct {
	Email     string `json:"email"`
	Name      string `json:"name"`
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	Picture   string `json:"picture"`
}

// oauthConfig 构造提供方的 oauth2 配置
func (s *oauthService) oauthConfig(provider string) (*oauth2.Config, *OAuthProviderConfig, error) {
	if s.config == nil {
		return nil, nil, code.ErrorOAuthLoginFailed
	}
	pc, ok := s.config.OAuth.Providers[provider]
	if !ok {
		return nil, nil, code.ErrorOAuthLoginFailed
	}
	return &oauth2.Config{
		ClientID:     pc.ClientID,
		ClientSecret: pc.ClientSecret,
		RedirectURL:  pc.RedirectURL,
		Scopes:       pc.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:  pc.AuthURL,
			TokenURL: pc.TokenURL,
		},
	}, &pc, nil
}

// AuthCodeURL 生成提供方授权跳转地址
func (s *oauthService) AuthCodeURL(provider string, state string) (string, error) {
	conf, _, err := s.oauthConfig(provider)
	if err != nil {
		return "", err
	}
	return conf.AuthCodeURL(state), nil
}

// HandleCallback 处理授权回调
func (s *oauthService) HandleCallback(ctx context.Context, params *dto.OAuthCallbackRequest) (*dto.UserDTO, error) {
	conf, pc, err := s.oauthConfig(params.Provider)
	if err != nil {
		return nil, err
	}

	token, err := conf.Exchange(ctx, params.Code)
	if err != nil {
		s.logger.Warn("oauth code exchange failed",
			zap.String("provider", params.Provider),
			zap.Error(err),
		)
		return nil, code.ErrorOAuthLoginFailed
	}

	info, err := s.fetchUserInfo(ctx, conf, token, pc.UserInfoURL)
	if err != nil {
		s.logger.Warn("oauth userinfo fetch failed",
			zap.String("provider", params.Provider),
			zap.Error(err),
		)
		return nil, code.ErrorOAuthLoginFailed
	}
	if info.Email == "" {
		return nil, code.ErrorOAuthLoginFailed
	}

	name := info.Name
	if name == "" {
		name = info.Login
	}
	avatar := info.AvatarURL
	if avatar == "" {
		avatar = info.Picture
	}

	return s.userService.ResolveOrCreateFederated(ctx, &FederatedIdentity{
		Provider: params.Provider,
		Email:    info.Email,
		Name:     name,
		Avatar:   avatar,
	})
}

// fetchUserInfo 使用访问令牌拉取提供方用户信息
func (s *oauthService) fetchUserInfo(ctx context.Context, conf *oauth2.Config, token *oauth2.Token, url string) (*providerUserInfo, error) {
	reqCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client := conf.Client(reqCtx, token)
	resp, err := client.Get(url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, code.ErrorOAuthLoginFailed
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, err
	}

	var info providerUserInfo
	if err := json.Unmarshal(body, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// 确保 oauthService 实现了 OAuthService 接口
var _ OAuthService = (*oauthService)(nil)
