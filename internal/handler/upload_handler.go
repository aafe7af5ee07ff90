package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"kanban-board-api/internal/dto"
	"kanban-board-api/internal/response"
	"kanban-board-api/internal/service"
)

// multipartOverhead is allowed on top of the file size limit for the
// multipart boundaries and headers.
const multipartOverhead = 1 << 20

type UploadHandler struct {
	uploadService service.UploadService
	maxSize       int64
	logger        *zap.Logger
}

func NewUploadHandler(uploadService service.UploadService, maxSize int64, logger *zap.Logger) *UploadHandler {
	return &UploadHandler{
		uploadService: uploadService,
		maxSize:       maxSize,
		logger:        logger,
	}
}

// Upload godoc
// @Summary      Upload a file
// @Description  Stores upload metadata and mirrors the file when a mirror is configured.
// @Description  The local copy is always discarded. gdriveUrl is present only when mirrored.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "File"
// @Success      200 {object} dto.UploadResponse
// @Failure      400 {object} response.ErrorResponse "No file uploaded"
// @Failure      401 {object} response.ErrorResponse
// @Failure      413 {object} response.ErrorResponse "File too large"
// @Failure      500 {object} response.ErrorResponse
// @Router       /upload [post]
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.maxSize > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxSize+multipartOverhead)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || strings.Contains(err.Error(), "request body too large") {
			response.SendError(c, http.StatusRequestEntityTooLarge, response.ErrCodeTooLarge, "File too large")
			return
		}
		response.SendError(c, http.StatusBadRequest, response.ErrCodeValidation, "No file uploaded")
		return
	}

	file, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open multipart file", zap.String("filename", header.Filename), zap.Error(err))
		response.SendError(c, http.StatusInternalServerError, response.ErrCodeInternal, "Internal server error")
		return
	}
	defer file.Close()

	result, err := h.uploadService.Upload(c.Request.Context(), &service.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Body:        file,
	})
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	resp := dto.UploadResponse{
		Success:  true,
		ID:       result.Upload.ID,
		Filename: result.Upload.Filename,
		Mirrored: result.Mirrored(),
	}
	if result.Mirrored() {
		resp.GDriveURL = *result.Upload.MirrorURL
		resp.Backend = *result.Upload.MirrorBackend
	}
	c.JSON(http.StatusOK, resp)
}

// ListUploads godoc
// @Summary      Recent uploads
// @Description  Up to 50 upload records, newest first
// @Tags         uploads
// @Produce      json
// @Success      200 {array} domain.Upload
// @Failure      401 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /uploads [get]
func (h *UploadHandler) ListUploads(c *gin.Context) {
	uploads, err := h.uploadService.ListUploads(c.Request.Context())
	if err != nil {
		handleServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, uploads)
}
