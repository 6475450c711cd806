package handlers

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kairo_backend/internal/services"
	"kairo_backend/pkg/apperrors"
)

type UploadHandler struct {
	*BaseHandler
	uploadService services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploadService services.UploadService) *UploadHandler {
	return &UploadHandler{BaseHandler: base, uploadService: uploadService}
}

// RegisterRoutes expects rg to be behind the session gate.
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup, requireApplicant gin.HandlerFunc) {
	uploads := rg.Group("/uploads")
	{
		uploads.POST("/resume", requireApplicant, h.UploadResume)
		uploads.DELETE("/resume", requireApplicant, h.RemoveResume)
		uploads.POST("/picture", h.UploadPicture)
		uploads.DELETE("/picture", h.RemovePicture)
	}
}

// RegisterFileRoutes mounts the public file read endpoint.
func (h *UploadHandler) RegisterFileRoutes(rg *gin.RouterGroup) {
	rg.GET("/files/*path", h.ServeFile)
}

func (h *UploadHandler) UploadResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file field"))
		return
	}
	defer file.Close()

	resp, err := h.uploadService.UploadResume(c.Request.Context(), h.GetDB(c), userID,
		file, header.Size, header.Header.Get("Content-Type"), header.Filename)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UploadHandler) UploadPicture(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Missing file field"))
		return
	}
	defer file.Close()

	resp, err := h.uploadService.UploadPicture(c.Request.Context(), h.GetDB(c), userID,
		file, header.Size, header.Header.Get("Content-Type"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *UploadHandler) RemoveResume(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.RemoveResume(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UploadHandler) RemovePicture(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.uploadService.RemovePicture(c.Request.Context(), h.GetDB(c), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *UploadHandler) ServeFile(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	reader, err := h.uploadService.ServeFile(c.Request.Context(), path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	contentType := "application/octet-stream"
	switch {
	case strings.HasSuffix(path, ".pdf"):
		contentType = "application/pdf"
	case strings.HasSuffix(path, ".jpg"), strings.HasSuffix(path, ".jpeg"):
		contentType = "image/jpeg"
	case strings.HasSuffix(path, ".png"):
		contentType = "image/png"
	case strings.HasSuffix(path, ".webp"):
		contentType = "image/webp"
	}

	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, reader)
}
