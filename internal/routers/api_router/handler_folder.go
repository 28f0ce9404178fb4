package api_router

import (
	"github.com/haierkeys/fast-note-folder-service/internal/app"
	"github.com/haierkeys/fast-note-folder-service/internal/dto"
	pkgapp "github.com/haierkeys/fast-note-folder-service/pkg/app"
	"github.com/haierkeys/fast-note-folder-service/pkg/code"
	apperrors "github.com/haierkeys/fast-note-folder-service/pkg/errors"

	"github.com/gin-gonic/gin"
)

// FolderHandler 文件夹与笔记归属接口处理器
type FolderHandler struct {
	*Handler
}

// NewFolderHandler 创建文件夹处理器实例
func NewFolderHandler(a *app.App) *FolderHandler {
	return &FolderHandler{Handler: NewHandler(a)}
}

// List lists every folder of the current user
// @Summary 获取文件夹列表
// @Tags Folder
// @Security UserAuthToken
// @Produce json
// @Success 200 {object} pkgapp.Res{data=dto.FolderListResponse}
// @Router /api/folders [get]
func (h *FolderHandler) List(c *gin.Context) {
	response := pkgapp.NewResponse(c)

	uid := pkgapp.NewAuthContext(c).UID()
	folders, err := h.App.FolderService.ListAllFolders(c.Request.Context(), uid)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(&dto.FolderListResponse{Folders: folders}))
}

// Notes lists the notes filed under a folder
// @Summary 获取文件夹下的笔记
// @Tags Folder
// @Security UserAuthToken
// @Produce json
// @Param folderId path string true "Folder ID"
// @Success 200 {object} pkgapp.Res{data=dto.NoteListResponse}
// @Router /api/folder/{folderId}/notes [get]
func (h *FolderHandler) Notes(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FolderNotesRequest{FolderID: c.Param("folderId")}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.NewAuthContext(c).UID()
	notes, err := h.App.FolderService.ListNotes(c.Request.Context(), uid, params.FolderID)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(&dto.NoteListResponse{Notes: notes}))
}

// Rename renames a folder
// @Summary 重命名文件夹
// @Tags Folder
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param folderId path string true "Folder ID"
// @Param params body dto.FolderRenameRequest true "New name"
// @Success 200 {object} pkgapp.Res
// @Router /api/folder/{folderId} [put]
func (h *FolderHandler) Rename(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.FolderRenameRequest{FolderID: c.Param("folderId")}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.NewAuthContext(c).UID()
	if err := h.App.FolderService.Rename(c.Request.Context(), uid, params.FolderID, params.Name); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// MoveNote files a note under another folder
// @Summary 移动笔记到文件夹
// @Tags Note
// @Security UserAuthToken
// @Accept json
// @Produce json
// @Param noteId path string true "Note ID"
// @Param params body dto.NoteMoveRequest true "Target folder"
// @Success 200 {object} pkgapp.Res
// @Router /api/note/{noteId}/folder [put]
func (h *FolderHandler) MoveNote(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.NoteMoveRequest{NoteID: c.Param("noteId")}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.NewAuthContext(c).UID()
	if err := h.App.FolderService.MoveNote(c.Request.Context(), uid, params.NoteID, params.FolderID); err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success)
}

// Search searches note content and folder names of the current user
// @Summary 关键字搜索
// @Tags Folder
// @Security UserAuthToken
// @Produce json
// @Param keyword query string false "Keyword"
// @Success 200 {object} pkgapp.Res{data=dto.SearchResult}
// @Router /api/search [get]
func (h *FolderHandler) Search(c *gin.Context) {
	response := pkgapp.NewResponse(c)
	params := &dto.SearchRequest{}

	valid, errs := pkgapp.BindAndValid(c, params)
	if !valid {
		response.ToResponse(code.ErrorInvalidParams.WithDetails(errs.Errors()...))
		return
	}

	uid := pkgapp.NewAuthContext(c).UID()
	res, err := h.App.FolderService.SearchKeyword(c.Request.Context(), uid, params.Keyword)
	if err != nil {
		apperrors.ErrorResponse(c, err)
		return
	}

	response.ToResponse(code.Success.WithData(res))
}
