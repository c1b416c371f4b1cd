package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"GoldPulse/internal/domain/models"
	applogger "GoldPulse/pkg/logger"
)

type fakeReportStore struct {
	stored []*models.AnalysisEvent
	fail   bool
}

func (f *fakeReportStore) Init(context.Context) error { return nil }

func (f *fakeReportStore) Store(_ context.Context, e *models.AnalysisEvent) error {
	if f.fail {
		return fmt.Errorf("clickhouse down")
	}
	f.stored = append(f.stored, e)
	return nil
}

func (f *fakeReportStore) Latest(context.Context, string) (*models.AnalysisEvent, error) {
	return nil, fmt.Errorf("not found")
}

func (f *fakeReportStore) Health(context.Context) error { return nil }
func (f *fakeReportStore) Close() error                 { return nil }

func TestHandleArchivesEvent(t *testing.T) {
	store := &fakeReportStore{}
	h := NewAnalysisEventHandler("analysis-events", store, applogger.Nop())

	if h.Topic() != "analysis-events" {
		t.Fatalf("topic = %q", h.Topic())
	}

	event := &models.AnalysisEvent{
		Code:           "gld",
		Kind:           models.KindGold,
		GeneratedAt:    time.Now().UTC(),
		Price:          185.2,
		TechnicalScore: 72,
		FinalScore:     68,
		Signal:         models.SignalBuy,
		Report:         "## gld",
	}
	data, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	if err := h.Handle(context.Background(), data); err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if len(store.stored) != 1 || store.stored[0].Code != "gld" {
		t.Fatalf("event not archived: %+v", store.stored)
	}
}

func TestHandleDropsMalformedPayload(t *testing.T) {
	store := &fakeReportStore{}
	h := NewAnalysisEventHandler("analysis-events", store, applogger.Nop())

	if err := h.Handle(context.Background(), []byte("not json")); err != nil {
		t.Fatalf("malformed payload should be dropped, got %v", err)
	}
	if err := h.Handle(context.Background(), []byte(`{"final_score":50}`)); err != nil {
		t.Fatalf("payload without code should be dropped, got %v", err)
	}
	if len(store.stored) != 0 {
		t.Fatalf("nothing should be archived")
	}
}

func TestHandleReturnsStoreErrors(t *testing.T) {
	store := &fakeReportStore{fail: true}
	h := NewAnalysisEventHandler("analysis-events", store, applogger.Nop())

	data, _ := json.Marshal(&models.AnalysisEvent{Code: "gld"})
	if err := h.Handle(context.Background(), data); err == nil {
		t.Fatalf("store failure should propagate for retry")
	}
}
