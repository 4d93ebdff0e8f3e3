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

// ProjectHandler 项目 API 路由处理器
type ProjectHandler struct {
	*Handler
}

// NewProjectHandler 创建 ProjectHandler 实例
func NewProjectHandler(a *app.App) *ProjectHandler {
	return &ProjectHandler{
		Handler: NewHandler(a),
	}
}

// bindProjectID 绑定路由中的项目 ID
func (h *ProjectHandler) bindProjectID(c *gin.Context) (int64, bool) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProjectIDRequest{}
	if err := c.ShouldBindUri(params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return 0, false
	}
	return params.ID, true
}

// Create 创建项目
// @Summary 创建项目
// @Description 创建项目，创建者成为项目所有者。
// @Tags Project
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param params body dto.ProjectCreateRequest true "Create Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.ProjectDTO} "Success"
// @Router /api/projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.ProjectCreateRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProjectHandler.Create.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	projectDTO, err := h.App.ProjectService.Create(ctx, uid, params)
	if err != nil {
		h.logError(ctx, "ProjectHandler.Create", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(projectDTO))
}

// Get 获取项目详情
// @Summary 获取项目详情
// @Tags Project
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Project ID"
// @Success 200 {object} pkgapp.Res{data=dto.ProjectDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindProjectID(c)
	if !ok {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	projectDTO, err := h.App.ProjectService.Get(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "ProjectHandler.Get", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(projectDTO))
}

// List 获取项目列表
// @Summary 获取项目列表
// @Description 返回请求者拥有或参与协作的全部项目。
// @Tags Project
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Success 200 {object} pkgapp.Res{data=[]dto.ProjectDTO} "Success"
// @Router /api/projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	list, err := h.App.ProjectService.List(ctx, uid)
	if err != nil {
		h.logError(ctx, "ProjectHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Delete 删除项目
// @Summary 删除项目
// @Description 仅所有者可删除。项目下条目不会删除，全部退回未归类。
// @Tags Project
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Project ID"
// @Success 200 {object} pkgapp.Res "Success"
// @Failure 403 {object} pkgapp.Res "Not Owner"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindProjectID(c)
	if !ok {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	if err := h.App.ProjectService.Delete(ctx, uid, id); err != nil {
		h.logError(ctx, "ProjectHandler.Delete", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessDelete)
}

// AddCollaborator 添加协作者
// @Summary 添加协作者
// @Description 仅所有者可添加，候选人以邮箱标识。重复添加是无操作，不能添加自己。
// @Tags Project
// @Accept json
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Project ID"
// @Param params body dto.CollaboratorAddRequest true "Collaborator Parameters"
// @Success 200 {object} pkgapp.Res{data=dto.ProjectDTO} "Success"
// @Failure 403 {object} pkgapp.Res "Not Owner"
// @Failure 404 {object} pkgapp.Res "Not Found / Unknown User"
// @Router /api/projects/{id}/collaborators [post]
func (h *ProjectHandler) AddCollaborator(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindProjectID(c)
	if !ok {
		return
	}

	params := &dto.CollaboratorAddRequest{}
	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		h.App.Logger().Error("ProjectHandler.AddCollaborator.BindAndValid errs", zap.Error(errs))
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.ErrorsToString()).WithData(errs.MapsToString()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	projectDTO, err := h.App.ProjectService.AddCollaborator(ctx, uid, id, params)
	if err != nil {
		h.logError(ctx, "ProjectHandler.AddCollaborator", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(projectDTO))
}

// ListCollaborators 获取协作者列表
// @Summary 获取协作者列表
// @Tags Project
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Project ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.CollaboratorDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/projects/{id}/collaborators [get]
func (h *ProjectHandler) ListCollaborators(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	id, ok := h.bindProjectID(c)
	if !ok {
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	list, err := h.App.ProjectService.ListCollaborators(ctx, uid, id)
	if err != nil {
		h.logError(ctx, "ProjectHandler.ListCollaborators", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}
