package api_router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/labnote/labnote-service/internal/app"
	"github.com/labnote/labnote-service/internal/dto"
	pkgapp "github.com/labnote/labnote-service/pkg/app"
	"github.com/labnote/labnote-service/pkg/code"
	apperrors "github.com/labnote/labnote-service/pkg/errors"
	"github.com/labnote/labnote-service/pkg/util"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler 认证 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type AuthHandler struct {
	*Handler
}

// NewAuthHandler 创建 AuthHandler 实例
func NewAuthHandler(a *app.App) *AuthHandler {
	return &AuthHandler{
		Handler: NewHandler(a),
	}
}

// Register 用户注册
// @Summary 用户注册
// @Description 处理用户注册 HTTP 请求，验证参数并调用 UserService。注册功能可能在服务器设置中被禁用。
// @Tags Auth
// @Accept json
// @Produce json
// @Param params body dto.UserCreateRequest true "Register Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Registration Disabled / User Already Exists"
// @Router /api/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AuthHandler.Register.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	// 获取请求上下文（包含 Trace ID）
	ctx := c.Request.Context()

	// 调用 UserService 执行注册
	userDTO, err := h.App.UserService.Register(ctx, params)
	if err != nil {
		h.logError(ctx, "AuthHandler.Register", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(userDTO))
}

// Login 用户登录
// @Summary 用户登录
// @Description 处理用户登录 HTTP 请求，验证参数并返回认证 Token。
// @Tags Auth
// @Accept json
// @Produce json
// @Param params body dto.UserLoginRequest true "Login Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Failure 401 {object} pkgapp.Res "Invalid Credentials"
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserLoginRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AuthHandler.Login.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	// 调用 UserService 执行登录
	userDTO, err := h.App.UserService.Login(ctx, params)
	if err != nil {
		h.logError(ctx, "AuthHandler.Login", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(userDTO))
}

// CheckUsername 检查用户名是否可用
// @Summary 检查用户名是否可用
// @Description 注册前校验用户名格式与占用情况。
// @Tags Auth
// @Produce json
// @Param username query string true "Username"
// @Success 200 {object} pkgapp.Res{data=dto.UsernameAvailableDTO} "Success"
// @Router /api/auth/check-username [get]
func (h *AuthHandler) CheckUsername(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserCheckUsernameRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AuthHandler.CheckUsername.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	ctx := c.Request.Context()

	result, err := h.App.UserService.CheckUsername(ctx, params.Username)
	if err != nil {
		h.logError(ctx, "AuthHandler.CheckUsername", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(result))
}

// OAuthLogin 联合登录跳转
// @Summary 联合登录跳转
// @Description 重定向到提供方授权页面。
// @Tags Auth
// @Produce json
// @Param provider path string true "Provider"
// @Success 302 "Redirect"
// @Failure 401 {object} pkgapp.Res "Unknown Provider"
// @Router /api/auth/oauth/{provider} [get]
func (h *AuthHandler) OAuthLogin(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	provider := c.Param("provider")
	if provider == "" {
		response.ToResponse(code.ErrorInvalidParams)
		return
	}

	// state 用于回调时的请求关联，防范跨站请求伪造
	state := util.GetRandomString(16)
	url, err := h.App.OAuthService.AuthCodeURL(provider, state)
	if err != nil {
		h.logError(c.Request.Context(), "AuthHandler.OAuthLogin", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	c.SetCookie("oauth_state", state, 600, "/", "", false, true)
	c.Redirect(http.StatusFound, url)
}

// federatedRedirectURL 构造联合登录成功后的前端跳转地址，Token 作为查询参数携带
func federatedRedirectURL(frontendURL, token string) string {
	return strings.TrimSuffix(frontendURL, "/") + "/oauth2/redirect?token=" + url.QueryEscape(token)
}

// OAuthCallback 联合登录回调
// @Summary 联合登录回调
// @Description 用授权码换取令牌，拉取身份信息并绑定或创建账户，携带认证 Token 跳转回前端。
// @Tags Auth
// @Produce json
// @Param provider path string true "Provider"
// @Param code query string true "Authorization Code"
// @Param state query string false "State"
// @Success 302 "Redirect To Frontend With Token"
// @Failure 401 {object} pkgapp.Res "Federated Login Failed"
// @Router /api/auth/oauth/{provider}/callback [get]
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.OAuthCallbackRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("AuthHandler.OAuthCallback.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}
	params.Provider = c.Param("provider")

	// 校验回调 state 与跳转时的一致
	if cookieState, err := c.Cookie("oauth_state"); err == nil && cookieState != "" && params.State != cookieState {
		response.ToResponse(code.ErrorOAuthLoginFailed)
		return
	}

	ctx := c.Request.Context()

	userDTO, err := h.App.OAuthService.HandleCallback(ctx, params)
	if err != nil {
		h.logError(ctx, "AuthHandler.OAuthCallback", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	c.Redirect(http.StatusFound, federatedRedirectURL(h.App.Config().App.FrontendURL, userDTO.Token))
}
