package api

import (
	"net/http"
	"time"

	"liftlog/api/internal/service"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	exportService service.ExportService
}

func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

type ExportResponse struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

// CreateExport writes the caller's data to object storage and returns a short-lived download link.
// Returns 503 when no bucket is configured.
func (h *ExportHandler) CreateExport(c *gin.Context) {
	session, ok := mustSession(c)
	if !ok {
		return
	}
	res, err := h.exportService.Export(c.Request.Context(), session)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ExportResponse{
		ObjectKey:   res.ObjectKey,
		DownloadURL: res.DownloadURL,
		ExpiresAt:   res.ExpiresAt,
	})
}
