package handlers

import (
	"context"
	"net/http"

	"sopwriter/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ModelChecker reports whether the configured model can be used.
type ModelChecker interface {
	Check(ctx context.Context) models.ModelStatus
}

type ModelHandler struct {
	Checker ModelChecker
}

func NewModelHandler(checker ModelChecker) *ModelHandler {
	return &ModelHandler{Checker: checker}
}

// CheckModelHandler always answers 200; failures are carried in the body.
func (h *ModelHandler) CheckModelHandler(c *gin.Context) {
	status := h.Checker.Check(c.Request.Context())
	if !status.Success && status.Error != nil {
		getLogger(c).Warn("Model not ready", zap.String("reason", *status.Error))
	}
	c.JSON(http.StatusOK, status)
}
