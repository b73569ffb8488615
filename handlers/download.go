package handlers

import (
	"fmt"
	"net/http"

	"sopwriter/services/export"
	"sopwriter/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DownloadForm is posted by the download buttons.
type DownloadForm struct {
	Content string `form:"sop_content" json:"sop_content"`
	Name    string `form:"name" json:"name"`
}

// DownloadHandler turns assembled content into file attachments.
type DownloadHandler struct {
	exporters map[string]export.Exporter
}

func NewDownloadHandler(exporters map[string]export.Exporter) *DownloadHandler {
	return &DownloadHandler{exporters: exporters}
}

// Download returns the handler for one format.
func (h *DownloadHandler) Download(format string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := getLogger(c)

		exporter, ok := h.exporters[format]
		if !ok {
			utils.JSONError(c, logger, http.StatusNotFound, fmt.Sprintf("unsupported format %q", format))
			return
		}

		var form DownloadForm
		if err := c.ShouldBind(&form); err != nil {
			status, msg := describeBindError(err)
			utils.JSONError(c, logger, status, msg)
			return
		}

		artifact, err := exporter.Export(form.Content, form.Name)
		if err != nil {
			utils.JSONError(c, logger, http.StatusInternalServerError, err.Error())
			return
		}

		logger.Info("Serving download",
			zap.String("format", format),
			zap.String("filename", artifact.Filename),
			zap.Int("bytes", len(artifact.Data)),
		)
		c.Header("Content-Disposition", `attachment; filename="`+artifact.Filename+`"`)
		c.Data(http.StatusOK, artifact.ContentType, artifact.Data)
	}
}
