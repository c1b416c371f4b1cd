package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"GoldPulse/internal/domain/models"
	"GoldPulse/internal/usecase"
	xhttp "GoldPulse/pkg/http"
	applogger "GoldPulse/pkg/logger"
)

type fakeTrigger struct {
	codes  []string
	err    error
	called int
}

func (f *fakeTrigger) RunAsync(_ context.Context, codes []string) error {
	f.called++
	f.codes = codes
	return f.err
}

type fakeStore struct {
	latest map[string]*models.AnalysisEvent
}

func (f *fakeStore) Init(context.Context) error { return nil }

func (f *fakeStore) Store(context.Context, *models.AnalysisEvent) error { return nil }

func (f *fakeStore) Health(context.Context) error { return nil }

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) Latest(_ context.Context, code string) (*models.AnalysisEvent, error) {
	e, ok := f.latest[code]
	if !ok {
		return nil, fmt.Errorf("no report for %s", code)
	}
	return e, nil
}

type fakeMacro struct {
	assessment *models.MacroAssessment
	err        error
}

func (f *fakeMacro) Assessment(context.Context) (*models.MacroAssessment, error) {
	return f.assessment, f.err
}

func newTestHandler(trigger *fakeTrigger, store *fakeStore, macro *fakeMacro) (*echo.Echo, *Handler) {
	e := echo.New()
	h := NewHandler(trigger, store, macro, []string{"gld", "aapl"}, applogger.Nop())
	h.RegisterRoutes(e)
	return e, h
}

func doRequest(e *echo.Echo, method, target, body string) (*httptest.ResponseRecorder, *xhttp.APIResponse) {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var resp xhttp.APIResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	return rec, &resp
}

func TestAnalyzeAccepted(t *testing.T) {
	trigger := &fakeTrigger{}
	e, _ := newTestHandler(trigger, &fakeStore{}, &fakeMacro{})

	rec, resp := doRequest(e, http.MethodPost, "/api/analyze", `{"codes":["gld"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("http status = %d", rec.Code)
	}
	if resp.Status != http.StatusAccepted {
		t.Fatalf("envelope status = %d, want 202", resp.Status)
	}
	if trigger.called != 1 || len(trigger.codes) != 1 || trigger.codes[0] != "gld" {
		t.Fatalf("trigger called with %v", trigger.codes)
	}
}

func TestAnalyzeDefaultsToConfiguredCodes(t *testing.T) {
	trigger := &fakeTrigger{}
	e, _ := newTestHandler(trigger, &fakeStore{}, &fakeMacro{})

	_, resp := doRequest(e, http.MethodPost, "/api/analyze", `{}`)
	if resp.Status != http.StatusAccepted {
		t.Fatalf("envelope status = %d, want 202", resp.Status)
	}
	if len(trigger.codes) != 2 {
		t.Fatalf("expected configured codes, got %v", trigger.codes)
	}
}

func TestAnalyzeConflict(t *testing.T) {
	trigger := &fakeTrigger{err: usecase.ErrRunInProgress}
	e, _ := newTestHandler(trigger, &fakeStore{}, &fakeMacro{})

	_, resp := doRequest(e, http.MethodPost, "/api/analyze", `{"codes":["gld"]}`)
	if resp.Status != http.StatusConflict {
		t.Fatalf("envelope status = %d, want 409", resp.Status)
	}
}

func TestLatestReport(t *testing.T) {
	store := &fakeStore{latest: map[string]*models.AnalysisEvent{
		"gld": {
			Code:        "gld",
			Kind:        models.KindGold,
			GeneratedAt: time.Now().UTC(),
			FinalScore:  68,
			Signal:      models.SignalBuy,
		},
	}}
	e, _ := newTestHandler(&fakeTrigger{}, store, &fakeMacro{})

	_, resp := doRequest(e, http.MethodGet, "/api/reports/latest?code=gld", "")
	if resp.Status != http.StatusOK {
		t.Fatalf("envelope status = %d, want 200", resp.Status)
	}

	_, resp = doRequest(e, http.MethodGet, "/api/reports/latest?code=unknown", "")
	if resp.Status != http.StatusNotFound {
		t.Fatalf("envelope status = %d, want 404", resp.Status)
	}

	_, resp = doRequest(e, http.MethodGet, "/api/reports/latest", "")
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400 when code missing", resp.Status)
	}
}

func TestMacroEndpoint(t *testing.T) {
	macro := &fakeMacro{assessment: &models.MacroAssessment{
		Score:   65,
		Summary: "macro backdrop leans supportive for gold (3 bullish vs 1 bearish)",
	}}
	e, _ := newTestHandler(&fakeTrigger{}, &fakeStore{}, macro)

	_, resp := doRequest(e, http.MethodGet, "/api/macro", "")
	if resp.Status != http.StatusOK {
		t.Fatalf("envelope status = %d", resp.Status)
	}

	e, _ = newTestHandler(&fakeTrigger{}, &fakeStore{}, &fakeMacro{err: fmt.Errorf("upstream down")})
	_, resp = doRequest(e, http.MethodGet, "/api/macro", "")
	if resp.Status != http.StatusInternalServerError {
		t.Fatalf("envelope status = %d, want 500", resp.Status)
	}
}

func TestHealth(t *testing.T) {
	e, _ := newTestHandler(&fakeTrigger{}, &fakeStore{}, &fakeMacro{})
	rec, resp := doRequest(e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || resp.Status != http.StatusOK {
		t.Fatalf("health status = %d/%d", rec.Code, resp.Status)
	}
}
