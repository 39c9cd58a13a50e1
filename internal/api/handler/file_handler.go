package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/netooze/jobapi/internal/api/domain"
	"github.com/netooze/jobapi/internal/api/dto"
	"github.com/netooze/jobapi/internal/api/model"
	"github.com/netooze/jobapi/shared/metrics"
)

// UploadFile handles POST /v1/file
// Accepts a multipart upload, dedups on the sha256 of the bytes, and stores
// the content on disk with its metadata in the store. The hash doubles as
// the externally visible file id.
func (h *FileHandler) UploadFile(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		writeError(c, http.StatusUnprocessableEntity, "missing required field: file")
		return
	}

	if fileHeader.Size > h.cfg.MaxSize {
		writeError(c, http.StatusUnprocessableEntity,
			fmt.Sprintf("file exceeds maximum size of %d bytes", h.cfg.MaxSize))
		return
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !h.allowedExtension(ext) {
		writeError(c, http.StatusUnprocessableEntity,
			fmt.Sprintf("unsupported file extension %q", ext))
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		writeError(c, http.StatusUnprocessableEntity, "unreadable upload")
		return
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, h.cfg.MaxSize+1))
	if err != nil {
		writeError(c, http.StatusUnprocessableEntity, "unreadable upload")
		return
	}
	if int64(len(data)) > h.cfg.MaxSize {
		writeError(c, http.StatusUnprocessableEntity,
			fmt.Sprintf("file exceeds maximum size of %d bytes", h.cfg.MaxSize))
		return
	}

	sum := sha256.Sum256(data)
	hash := hex.EncodeToString(sum[:])

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	record := &model.File{
		Hash:        hash,
		Name:        filepath.Base(fileHeader.Filename),
		ContentType: contentType,
		Size:        int64(len(data)),
		Path:        filepath.Join(h.cfg.Dir, hash+ext),
		CreatedAt:   time.Now().UTC(),
	}

	// The bytes go to disk before the row. A row without its file would make
	// the dedup conflict permanent for content that was never stored.
	if err := writeFileAtomic(record.Path, data); err != nil {
		h.logger.Error("Failed to persist uploaded file",
			slog.String("hash", hash),
			slog.String("path", record.Path),
			slog.Any("error", err),
		)
		writeError(c, http.StatusServiceUnavailable, "failed to persist file")
		return
	}

	if err := h.store.CreateFile(c.Request.Context(), record); err != nil {
		if errors.Is(err, domain.ErrDuplicateFile) {
			// Same content, so the write above was a byte-identical rewrite.
			// Only clean up when the recorded copy lives at a different path.
			if existing, lookErr := h.store.GetFile(c.Request.Context(), hash); lookErr == nil && existing.Path != record.Path {
				os.Remove(record.Path)
			}
			writeError(c, http.StatusConflict, "identical file already uploaded")
			return
		}
		os.Remove(record.Path)
		h.logger.Error("Failed to record file upload",
			slog.String("hash", hash),
			slog.Any("error", err),
		)
		writeError(c, http.StatusServiceUnavailable, "file store unavailable")
		return
	}

	metrics.FilesUploaded.Inc()
	h.logger.Info("File uploaded",
		slog.String("hash", hash),
		slog.String("name", record.Name),
		slog.Int64("size", record.Size),
	)

	c.JSON(http.StatusCreated, dto.FileDTO{
		ID:   hash,
		Name: record.Name,
		Size: record.Size,
	})
}

// GetFile handles GET /v1/file/:id
func (h *FileHandler) GetFile(c *gin.Context) {
	hash := c.Param("id")

	record, err := h.store.GetFile(c.Request.Context(), hash)
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			writeError(c, http.StatusNotFound, "no file found for id")
			return
		}
		h.logger.Error("Failed to look up file",
			slog.String("hash", hash),
			slog.Any("error", err),
		)
		writeError(c, http.StatusServiceUnavailable, "file store unavailable")
		return
	}

	c.JSON(http.StatusOK, dto.FileDTO{
		ID:        record.Hash,
		Name:      record.Name,
		Size:      record.Size,
		Timestamp: record.CreatedAt.Format(time.RFC3339),
	})
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it into place, so the final path never holds a partial write.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}

	return nil
}

func (h *FileHandler) allowedExtension(ext string) bool {
	for _, allowed := range h.cfg.AllowedExtensions {
		if ext == strings.ToLower(allowed) {
			return true
		}
	}
	return false
}
