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

// EntryHandler 条目 API 路由处理器
// 使用 App Container 注入依赖，支持统一错误处理
type EntryHandler struct {
	*Handler
}

// NewEntryHandler 创建 EntryHandler 实例
func NewEntryHandler(a *app.App) *EntryHandler {
	return &EntryHandler{
		Handler: NewHandler(a),
	}
}

// bindEntryID 绑定路由中的条目 ID
func (h *EntryHandler) bindEntryID(c *gin.Context) (int64, bool) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryIDRequest{}
	if err := c.ShouldBindUri(params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return 0, false
	}
	return params.ID, true
}

// Create 创建条目
// @Summary 创建条目
// @Description 创建实验条目，可归属到请求者参与的项目，或保持未归类。
// @Tags Entry
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param params body dto.EntryCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.EntryDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Project Not Found"
// @Router /api/entries [post]
func (h *EntryHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryCreateRequest{}

	// 参数绑定和验证
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	entryDTO, err := h.App.EntryService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "EntryHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entryDTO))
}

// Get 获取条目详情
// @Summary 获取条目详情
// @Tags Entry
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Entry ID"
// @Success 200 {object} pkgapp.Res{data=dto.EntryDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/entries/{id} [get]
func (h *EntryHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindEntryID(c)
	if !ok {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	entryDTO, err := h.App.EntryService.Get(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "EntryHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(entryDTO))
}

// List 获取条目列表
// @Summary 获取条目列表
// @Description projectId 支持 all（默认）、uncategorized 或具体项目ID。指向无权访问的项目时返回空列表。
// @Tags Entry
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param projectId query string false "Project Filter"
// @Success 200 {object} pkgapp.Res{data=[]dto.EntryDTO} "Success"
// @Router /api/entries [get]
func (h *EntryHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryListRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.List.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	list, err := h.App.EntryService.List(ctx, uid, params.ProjectID)
	if err != nil {
		h.logError(ctx, "EntryHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Update 修改条目
// @Summary 修改条目
// @Description 覆盖条目内容字段，变更前状态自动保存为版本快照。
// @Tags Entry
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Entry ID"
// @Param params body dto.EntryUpdateRequest true "Update Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.EntryDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/entries/{id} [put]
func (h *EntryHandler) Update(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindEntryID(c)
	if !ok {
		return
	}

	params := &dto.EntryUpdateRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("EntryHandler.Update.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	entryDTO, err := h.App.EntryService.Update(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "EntryHandler.Update", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate.WithData(entryDTO))
}

// Delete 删除条目
// @Summary 删除条目
// @Description 删除条目及其全部版本快照。
// @Tags Entry
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Entry ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/entries/{id} [delete]
func (h *EntryHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindEntryID(c)
	if !ok {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	if err := h.App.EntryService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "EntryHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}

// Export 导出条目为 Markdown
// @Summary 导出条目为 Markdown
// @Tags Entry
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Entry ID"
// @Success 200 {object} pkgapp.Res{data=dto.EntryExportDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/entries/{id}/export [get]
func (h *EntryHandler) Export(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindEntryID(c)
	if !ok {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	exportDTO, err := h.App.EntryService.ExportMarkdown(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "EntryHandler.Export", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(exportDTO))
}
