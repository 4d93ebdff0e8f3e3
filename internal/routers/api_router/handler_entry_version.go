package api_router

import (
	"github.com/labnote/labnote-service/internal/app"
	"github.com/labnote/labnote-service/internal/dto"
	pkgapp "github.com/labnote/labnote-service/pkg/app"
	"github.com/labnote/labnote-service/pkg/code"
	apperrors "github.com/labnote/labnote-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// EntryVersionHandler 条目版本 API 路由处理器
type EntryVersionHandler struct {
	*Handler
}

// NewEntryVersionHandler 创建 EntryVersionHandler 实例
func NewEntryVersionHandler(a *app.App) *EntryVersionHandler {
	return &EntryVersionHandler{
		Handler: NewHandler(a),
	}
}

// List 获取条目的版本列表
// @Summary 获取条目的版本列表
// @Description 按快照时间倒序返回条目的全部版本。
// @Tags EntryVersion
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Entry ID"
// @Success 200 {object} pkgapp.Res{data=[]dto.EntryVersionDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found"
// @Router /api/entries/{id}/versions [get]
func (h *EntryVersionHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryIDRequest{}
	if err := c.ShouldBindUri(params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	list, err := h.App.EntryVersionService.List(ctx, uid, params.ID)
	if err != nil {
		h.logError(ctx, "EntryVersionHandler.List", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(list))
}

// Restore 恢复条目到指定版本
// @Summary 恢复条目到指定版本
// @Description 恢复前条目当前状态先存为新快照，恢复操作可被再次恢复撤销。
// @Tags EntryVersion
// @Produce json
// @Security UserAuthToken
// @Param Authorization header string true "Auth Token"
// @Param id path int true "Entry ID"
// @Param versionId path int true "Version ID"
// @Success 200 {object} pkgapp.Res{data=dto.EntryDTO} "Success"
// @Failure 404 {object} pkgapp.Res "Not Found / Version Not Found"
// @Router /api/entries/{id}/versions/{versionId}/restore [post]
func (h *EntryVersionHandler) Restore(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.EntryVersionIDRequest{}
	if err := c.ShouldBindUri(params); err != nil {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(err.Error()))
		return
	}

	uid := pkgapp.GetUID(c)
	ctx := c.Request.Context()

	entryDTO, err := h.App.EntryVersionService.Restore(ctx, uid, params.ID, params.VersionID)
	if err != nil {
		h.logError(ctx, "EntryVersionHandler.Restore", err)
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.SuccessUpdate.WithData(entryDTO))
}
