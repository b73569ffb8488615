package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"sopwriter/models"

	"go.uber.org/zap"
)

// HealthService checks that the configured model is installed on the server.
type HealthService struct {
	client ModelClient
	model  string
	logger *zap.Logger
}

func NewHealthService(client ModelClient, model string, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{client: client, model: model, logger: logger}
}

// Check never fails; problems are reported inside the returned status.
func (h *HealthService) Check(ctx context.Context) models.ModelStatus {
	names, err := h.client.ListModels(ctx)
	if err != nil {
		h.logger.Warn("Model check failed", zap.String("provider", h.client.Provider()), zap.Error(err))
		return models.ModelUnavailable(describeCheckError(h.client.Provider(), err))
	}

	for _, name := range names {
		if name == h.model {
			return models.ModelAvailable(h.model)
		}
	}
	return models.ModelUnavailable(fmt.Sprintf("Model %s not found. Available models: %s",
		h.model, strings.Join(names, ", ")))
}

func describeCheckError(provider string, err error) string {
	var unavailable *UnavailableError
	if errors.As(err, &unavailable) {
		return fmt.Sprintf("Failed to connect to %s API: %v", providerLabel(provider), unavailable.Err)
	}
	return err.Error()
}
