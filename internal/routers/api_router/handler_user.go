package api_router

import (
	"github.com/labnote/labnote-service/internal/app"
	"github.com/labnote/labnote-service/internal/dto"
	pkgapp "github.com/labnote/labnote-service/pkg/app"
	"github.com/labnote/labnote-service/pkg/code"
	apperrors "github.com/labnote/labnote-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserHandler 用户 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type UserHandler struct {
	*Handler
}

// NewUserHandler 创建 UserHandler 实例
func NewUserHandler(a *app.App) *UserHandler {
	return &UserHandler{
		Handler: NewHandler(a),
	}
}

// Me 获取当前用户信息
// @Summary 获取当前用户信息
// @Tags User
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/user/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	// 获取用户 ID
	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("UserHandler.Me err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	userDTO, err := h.App.UserService.GetInfo(ctx, uid)
	if err != nil {
		h.logError(ctx, "UserHandler.Me", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(userDTO))
}

// UpdateMe 更新当前用户资料
// @Summary 更新当前用户资料
// @Description 更新用户名或头像。用户名变更时返回新签发的 Token。
// @Tags User
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param params body dto.UserUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.UserDTO} "Success"
// @Failure 400 {object} pkgapp.Res "Invalid Parameters / Username Already Exists"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/user/me [put]
func (h *UserHandler) UpdateMe(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.UserUpdateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("UserHandler.UpdateMe.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("UserHandler.UpdateMe err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	userDTO, err := h.App.UserService.UpdateMe(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "UserHandler.UpdateMe", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate.WithData(userDTO))
}

// DeleteMe 注销当前账户
// @Summary 注销当前账户
// @Description 删除账户及名下条目、版本、项目与模板。
// @Tags User
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 401 {object} pkgapp.Res "Unauthorized"
// @Router /api/user/me [delete]
func (h *UserHandler) DeleteMe(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	if uid == 0 {
		h.App.Logger().Error("UserHandler.DeleteMe err uid=0")
		response.ToResponse(code.ErrorNotUserAuthToken)
		return
	}

	ctx := c.Request.Context()

	if err := h.App.UserService.DeleteMe(ctx, uid); err != nil {
		h.logError(ctx, "UserHandler.DeleteMe", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}
