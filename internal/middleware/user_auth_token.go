package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/labnote/labnote-service/internal/domain"
	"github.com/labnote/labnote-service/pkg/app"
	"github.com/labnote/labnote-service/pkg/code"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// PrincipalLookup 按 UID 解析当前用户行，查无此人时返回 gorm.ErrRecordNotFound
type PrincipalLookup func(ctx context.Context, uid int64) (*domain.User, error)

// extractToken 从请求中提取认证 Token
// 优先请求头 Authorization（兼容 Bearer 前缀），其次查询参数
func extractToken(c *gin.Context) string {
	var token string

	if s := c.GetHeader("Authorization"); len(s) != 0 {
		token = s
	} else if s := c.GetHeader("authorization"); len(s) != 0 {
		token = s
	} else if s, exist := c.GetQuery("authorization"); exist {
		token = s
	} else if s, exist := c.GetQuery("token"); exist {
		token = s
	} else if s := c.GetHeader("Token"); len(s) != 0 {
		token = s
	}

	token = strings.TrimSpace(token)
	if strings.HasPrefix(token, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	}
	return token
}

// UserAuthTokenWithLookup 用户 Token 认证中间件（使用注入的密钥）
// 验签通过后按 UID 重新解析用户行，已注销账户的 Token 一律拒绝；
// 请求主体以用户行为准，Token 中的展示声明不参与授权
func UserAuthTokenWithLookup(secretKey string, lookup PrincipalLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := app.NewResponse(c)

		token := extractToken(c)
		if token == "" {
			response.ToResponse(code.ErrorNotUserAuthToken)
			c.Abort()
			return
		}

		claims, err := app.ParseTokenWithKey(token, secretKey)
		if err != nil {
			// 过期与格式错误区分上报，均不放行
			if errors.Is(err, jwt.ErrTokenExpired) {
				response.ToResponse(code.ErrorExpiredUserAuthToken)
			} else {
				response.ToResponse(code.ErrorInvalidUserAuthToken)
			}
			c.Abort()
			return
		}

		user, err := lookup(c.Request.Context(), claims.UID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				response.ToResponse(code.ErrorInvalidUserAuthToken)
			} else {
				response.ToResponse(code.ErrorDBQuery)
			}
			c.Abort()
			return
		}

		// 主体字段以用户行为准，改名后旧 Token 携带的声明被覆盖
		claims.UID = user.UID
		claims.Username = user.Username
		claims.Email = user.Email
		claims.Avatar = user.Avatar
		claims.Provider = user.Provider
		c.Set("user_token", claims)

		c.Next()
	}
}
