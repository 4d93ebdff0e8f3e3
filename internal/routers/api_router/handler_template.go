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

// TemplateHandler 条目模板 API 路由处理器
type TemplateHandler struct {
	*Handler
}

// NewTemplateHandler 创建 TemplateHandler 实例
func NewTemplateHandler(a *app.App) *TemplateHandler {
	return &TemplateHandler{
		Handler: NewHandler(a),
	}
}

// bindTemplateID 绑定路由中的模板 ID
func (h *TemplateHandler) bindTemplateID(c *gin.Context) (int64, bool) {
	response := pkgapp.NewResponse(c)
	params := &dto.TemplateIDRequest{}
	if err := c.ShouldBindUri(params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return 0, false
	}
	return params.ID, true
}

// Create 创建模板
// @Summary 创建模板
// @Tags Template
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param params body dto.TemplateCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.TemplateDTO} "Success"
// @Router /api/templates [post]
func (h *TemplateHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.TemplateCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TemplateHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	templateDTO, err := h.App.TemplateService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "TemplateHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(templateDTO))
}

// Get 获取模板详情
// @Summary 获取模板详情
// @Tags Template
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Template ID"
// @Success 200 {object} pkgapp.Res{data=dto.TemplateDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/templates/{id} [get]
func (h *TemplateHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindTemplateID(c)
	if !ok {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	templateDTO, err := h.App.TemplateService.Get(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "TemplateHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(templateDTO))
}

// List 获取模板列表
// @Summary 获取模板列表
// @Tags Template
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Success 200 {object} pkgapp.Res{data=[]dto.TemplateDTO} "Success"
// @Router /api/templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	list, err := h.App.TemplateService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "TemplateHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Update 修改模板
// @Summary 修改模板
// @Tags Template
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Template ID"
// @Param params body dto.TemplateUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.TemplateDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/templates/{id} [put]
func (h *TemplateHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindTemplateID(c)
	if !ok {
		return
	}

	params := &dto.TemplateUpdateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("TemplateHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	templateDTO, err := h.App.TemplateService.Update(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "TemplateHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate.WithData(templateDTO))
}

// Delete 删除模板
// @Summary 删除模板
// @Tags Template
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Template ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/templates/{id} [delete]
func (h *TemplateHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindTemplateID(c)
	if !ok {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	if err := h.App.TemplateService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "TemplateHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}
