// Package service 实现业务逻辑层
package service

// ServiceConfig 服务层配置
type ServiceConfig struct {
	User  UserServiceConfig  // 用户相关配置
	OAuth OAuthServiceConfig // 联合登录相关配置
}

// UserServiceConfig 用户服务配置
type UserServiceConfig struct {
	RegisterIsEnable bool // 注册是否启用
}

// OAuthServiceConfig 联合登录服务配置
// 每个提供方一组 OAuth2 端点和凭据
type OAuthServiceConfig struct {
	Providers map[string]OAuthProviderConfig
}

// OAuthProviderConfig 单个联合登录提供方配置
type OAuthProviderConfig struct {
	ClientID     string   // 客户端ID
	ClientSecret string   // 客户端密钥
	AuthURL      string   // 授权端点
	TokenURL     string   // 令牌端点
	UserInfoURL  string   // 用户信息端点
	RedirectURL  string   // 回调地址
	Scopes       []string // 请求的权限范围
}
