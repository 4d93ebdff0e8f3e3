package app

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// 默认 Token 签发者
const DefaultTokenIssuer = "labnote-service"

// DefaultTokenExpiry 默认 Token 过期时间
const DefaultTokenExpiry = 24 * time.Hour

// TokenConfig 定义 Token 管理器的配置
// SecretKey 由配置注入，进程启动后不再变化
type TokenConfig struct {
	SecretKey string        `yaml:"secret-key"` // JWT 签名密钥
	Expiry    time.Duration `yaml:"expiry"`     // Token 过期时间，默认 24 小时
	Issuer    string        `yaml:"issuer"`     // Token 签发者
}

// DisplayClaims 展示用声明
// 仅供客户端展示使用，服务端授权决策不读取这些字段
type DisplayClaims struct {
	Email    string `json:"email,omitempty"`
	Avatar   string `json:"avatar,omitempty"`
	Provider string `json:"provider,omitempty"`
}

// UserEntity JWT 中存储的用户声明
type UserEntity struct {
	UID      int64  `json:"uid"`
	Username string `json:"username"`
	DisplayClaims
	jwt.RegisteredClaims
}

// TokenManager 定义 Token 管理接口
type TokenManager interface {
	// Generate 为用户签发 Token，display 为可选的展示用声明
	Generate(uid int64, username string, display DisplayClaims) (string, error)

	// Parse 验签并解析 Token，过期或格式错误返回 error
	Parse(token string) (*UserEntity, error)

	// Validate 验证 Token 是否有效
	Validate(token string) error

	// GetSecretKey 获取签名密钥
	GetSecretKey() string
}

// tokenManager 实现 TokenManager 接口
type tokenManager struct {
	config TokenConfig
}

// NewTokenManager 创建一个新的 TokenManager 实例
func NewTokenManager(cfg TokenConfig) TokenManager {
	// 设置默认值
	if cfg.Expiry == 0 {
		cfg.Expiry = DefaultTokenExpiry
	}
	if cfg.Issuer == "" {
		cfg.Issuer = DefaultTokenIssuer
	}
	return &tokenManager{config: cfg}
}

// Generate 生成一个新的 JWT Token
func (t *tokenManager) Generate(uid int64, username string, display DisplayClaims) (string, error) {
	now := time.Now()
	claims := &UserEntity{
		UID:           uid,
		Username:      username,
		DisplayClaims: display,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.Expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    t.config.Issuer,
			Subject:   username,
			ID:        fmt.Sprintf("%d", uid),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.SecretKey))
}

// Parse 解析 JWT Token 并返回用户声明
func (t *tokenManager) Parse(token string) (*UserEntity, error) {
	return ParseTokenWithKey(token, t.config.SecretKey)
}

// Validate 验证 Token 是否有效
func (t *tokenManager) Validate(token string) error {
	_, err := t.Parse(token)
	return err
}

// GetSecretKey 获取密钥
func (t *tokenManager) GetSecretKey() string {
	return t.config.SecretKey
}

// ParseTokenWithKey 使用指定密钥解析 Token
func ParseTokenWithKey(tokenString string, secretKey string) (*UserEntity, error) {
	claims := &UserEntity{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}

// GetUID extracts the user ID from the request context.
func GetUID(ctx *gin.Context) (out int64) {
	user, exist := ctx.Get("user_token")
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.UID
		}
	}
	return
}

// GetUsername extracts the username from the request context.
func GetUsername(ctx *gin.Context) (out string) {
	user, exist := ctx.Get("user_token")
	if exist {
		if userEntity, ok := user.(*UserEntity); ok {
			out = userEntity.Username
		}
	}
	return
}
