package handlers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/storage"
	"smarthr_backend/pkg/apperrors"
)

// FileHandler streams stored objects when the storage backend has no
// public URL of its own (local filesystem).
type FileHandler struct {
	*BaseHandler
	store storage.Storage
}

func NewFileHandler(base *BaseHandler, store storage.Storage) *FileHandler {
	return &FileHandler{BaseHandler: base, store: store}
}

// Serve handles GET /files/*path.
func (h *FileHandler) Serve(c *gin.Context) {
	path := c.Param("path")
	if len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	if path == "" {
		apperrors.HandleError(c, apperrors.NewBadRequestError("missing file path"))
		return
	}

	ctx := c.Request.Context()

	exists, err := h.store.Exists(ctx, path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}

	reader, err := h.store.Get(ctx, path)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	defer reader.Close()

	contentType := mime.TypeByExtension(filepath.Ext(path))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)

	if _, err := io.Copy(c.Writer, reader); err != nil {
		logger.CtxWithError(ctx, "Failed to stream file", err, "path", path)
	}
}
