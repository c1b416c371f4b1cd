package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"GoldPulse/internal/domain/models"
	drepo "GoldPulse/internal/domain/repository"
	applogger "GoldPulse/pkg/logger"
)

// AnalysisEventHandler consumes published analysis events and archives
// them. Malformed payloads are dropped so they do not loop forever.
type AnalysisEventHandler struct {
	topic  string
	store  drepo.ReportStore
	logger *applogger.Logger
}

// NewAnalysisEventHandler creates the archiving consumer handler.
func NewAnalysisEventHandler(topic string, store drepo.ReportStore, logger *applogger.Logger) *AnalysisEventHandler {
	return &AnalysisEventHandler{topic: topic, store: store, logger: logger}
}

// Topic returns the subscribed topic.
func (h *AnalysisEventHandler) Topic() string {
	return h.topic
}

// Handle stores one event. A decode failure is logged and swallowed;
// a store failure is returned so the consumer retries it.
func (h *AnalysisEventHandler) Handle(ctx context.Context, data []byte) error {
	var event models.AnalysisEvent
	if err := json.Unmarshal(data, &event); err != nil {
		h.logger.Warn("dropping malformed analysis event", applogger.Error(err))
		return nil
	}
	if event.Code == "" {
		h.logger.Warn("dropping analysis event without code")
		return nil
	}

	if err := h.store.Store(ctx, &event); err != nil {
		return fmt.Errorf("archive analysis event: %w", err)
	}

	h.logger.Debug("analysis event archived",
		applogger.String("code", event.Code),
		applogger.Int("final_score", event.FinalScore),
	)
	return nil
}
