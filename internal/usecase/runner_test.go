package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"GoldPulse/internal/analysis"
	"GoldPulse/internal/domain/models"
	"GoldPulse/pkg/cache"
	applogger "GoldPulse/pkg/logger"
)

func makeCandles(n int, start, step, volume float64) []models.Candle {
	candles := make([]models.Candle, n)
	day := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		close := start + step*float64(i)
		candles[i] = models.Candle{
			Day:    day.AddDate(0, 0, i),
			Open:   close - step/2,
			High:   close + step,
			Low:    close - step,
			Close:  close,
			Volume: volume,
		}
	}
	return candles
}

type fakeCandleSource struct {
	candles []models.Candle
	err     error
	calls   int
}

func (f *fakeCandleSource) DailyCandles(context.Context, string, int) ([]models.Candle, error) {
	f.calls++
	return f.candles, f.err
}

type fakeMacroSource struct {
	assessment *models.MacroAssessment
	err        error
}

func (f *fakeMacroSource) Assessment(context.Context) (*models.MacroAssessment, error) {
	return f.assessment, f.err
}

type fakeNewsSource struct {
	digest  *models.NewsDigest
	err     error
	enabled bool
}

func (f *fakeNewsSource) Search(context.Context, string) (*models.NewsDigest, error) {
	return f.digest, f.err
}

func (f *fakeNewsSource) Enabled() bool { return f.enabled }

type fakeNarrator struct {
	text    string
	enabled bool
}

func (f *fakeNarrator) Narrate(context.Context, *models.AnalysisResult, *models.MacroAssessment, *models.NewsDigest) (string, error) {
	return f.text, nil
}

func (f *fakeNarrator) Enabled() bool { return f.enabled }

type fakeNotifier struct {
	titles   []string
	bodies   []string
	failWith error
}

func (f *fakeNotifier) Send(_ context.Context, title, markdown string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.titles = append(f.titles, title)
	f.bodies = append(f.bodies, markdown)
	return nil
}

type fakePublisher struct {
	events []*models.AnalysisEvent
}

func (f *fakePublisher) Publish(_ context.Context, e *models.AnalysisEvent) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakePublisher) Close() error { return nil }

type stubMetrics struct {
	runs   map[string]int
	errors map[string]int
}

func newStubMetrics() *stubMetrics {
	return &stubMetrics{runs: map[string]int{}, errors: map[string]int{}}
}

func (m *stubMetrics) RecordRun(code, result string) { m.runs[code+":"+result]++ }
func (m *stubMetrics) RecordError(kind string)       { m.errors[kind]++ }

func (m *stubMetrics) RecordLastPrice(string, float64)     {}
func (m *stubMetrics) RecordScore(string, string, float64) {}
func (m *stubMetrics) RecordNotification(string)           {}
func (m *stubMetrics) RecordLatency(string, float64)       {}

func newTestRunner(candles *fakeCandleSource, macro *fakeMacroSource, news *fakeNewsSource, notifier *fakeNotifier, publisher *fakePublisher, metrics *stubMetrics, locks cache.Service) *Runner {
	return NewRunner(candles, macro, news, &fakeNarrator{}, notifier, publisher, locks, metrics, applogger.Nop())
}

func TestRunAllStock(t *testing.T) {
	candles := &fakeCandleSource{candles: makeCandles(30, 100, 0.5, 1000)}
	notifier := &fakeNotifier{}
	publisher := &fakePublisher{}
	metrics := newStubMetrics()
	locks := cache.NewMemoryCache()
	defer locks.Close()

	r := newTestRunner(candles, nil, nil, notifier, publisher, metrics, locks)
	if err := r.RunAll(context.Background(), []string{"aapl"}); err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(publisher.events))
	}
	e := publisher.events[0]
	if e.Kind != models.KindStock {
		t.Fatalf("kind = %s", e.Kind)
	}
	if e.MacroScore != nil || e.NewsScore != nil {
		t.Fatalf("stock event should not carry macro or news scores")
	}
	if e.FinalScore != e.TechnicalScore {
		t.Fatalf("stock final score %d should equal technical %d", e.FinalScore, e.TechnicalScore)
	}
	if e.Report == "" {
		t.Fatalf("event should carry the rendered report")
	}

	if len(notifier.titles) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.titles))
	}
	if metrics.runs["aapl:ok"] != 1 {
		t.Fatalf("run metric missing: %v", metrics.runs)
	}
}

func TestRunAllGoldBlendsScores(t *testing.T) {
	data := makeCandles(30, 100, 0.5, 1000)
	candles := &fakeCandleSource{candles: data}
	macro := &fakeMacroSource{assessment: &models.MacroAssessment{
		Score:   65,
		Summary: "macro backdrop leans supportive for gold (3 bullish vs 1 bearish)",
		Factors: []models.MacroFactor{{Name: "dollar_index", Score: 70, Impact: models.ImpactBullish}},
	}}
	news := &fakeNewsSource{enabled: true, digest: &models.NewsDigest{
		Score:     60,
		Headlines: []models.Headline{{Title: "gold rally continues", Source: "wire"}},
	}}
	publisher := &fakePublisher{}
	locks := cache.NewMemoryCache()
	defer locks.Close()

	r := newTestRunner(candles, macro, news, &fakeNotifier{}, publisher, newStubMetrics(), locks)
	if err := r.RunAll(context.Background(), []string{"gld"}); err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	if len(publisher.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(publisher.events))
	}
	e := publisher.events[0]
	if e.Kind != models.KindGold {
		t.Fatalf("kind = %s", e.Kind)
	}

	// news 60 and structured 65 blend to 64
	if e.MacroScore == nil || *e.MacroScore != 64 {
		t.Fatalf("macro score = %v, want 64", e.MacroScore)
	}
	if e.NewsScore == nil || *e.NewsScore != 60 {
		t.Fatalf("news score = %v, want 60", e.NewsScore)
	}

	result, err := analysis.NewAnalyzer("gld").Analyze("gld", data)
	if err != nil {
		t.Fatalf("reference analysis: %v", err)
	}
	wantFinal := analysis.FinalScore(result.TechnicalScore, 64)
	if e.FinalScore != wantFinal {
		t.Fatalf("final score = %d, want %d", e.FinalScore, wantFinal)
	}
	if e.Signal != analysis.SignalFor(wantFinal) {
		t.Fatalf("signal = %s", e.Signal)
	}
}

func TestRunAllGoldNewsFailureDegrades(t *testing.T) {
	candles := &fakeCandleSource{candles: makeCandles(30, 100, 0.5, 1000)}
	macro := &fakeMacroSource{assessment: &models.MacroAssessment{Score: 65}}
	news := &fakeNewsSource{enabled: true, err: fmt.Errorf("provider down")}
	publisher := &fakePublisher{}
	metrics := newStubMetrics()
	locks := cache.NewMemoryCache()
	defer locks.Close()

	r := newTestRunner(candles, macro, news, &fakeNotifier{}, publisher, metrics, locks)
	if err := r.RunAll(context.Background(), []string{"gld"}); err != nil {
		t.Fatalf("RunAll: %v", err)
	}

	e := publisher.events[0]
	if e.NewsScore != nil {
		t.Fatalf("failed news stage should leave news score empty")
	}
	// neutral news 50 against structured 65 blends to 61
	if e.MacroScore == nil || *e.MacroScore != 61 {
		t.Fatalf("macro score = %v, want 61", e.MacroScore)
	}
	if metrics.errors["news"] != 1 {
		t.Fatalf("news error not recorded: %v", metrics.errors)
	}
}

func TestRunAllSkipsWhenLocked(t *testing.T) {
	locks := cache.NewMemoryCache()
	defer locks.Close()

	ctx := context.Background()
	if ok, err := locks.TryLock(ctx, runLockKey, time.Minute); err != nil || !ok {
		t.Fatalf("prime lock: ok=%v err=%v", ok, err)
	}

	candles := &fakeCandleSource{candles: makeCandles(30, 100, 0.5, 1000)}
	r := newTestRunner(candles, nil, nil, &fakeNotifier{}, &fakePublisher{}, newStubMetrics(), locks)
	if err := r.RunAll(ctx, []string{"aapl"}); err != ErrRunInProgress {
		t.Fatalf("expected ErrRunInProgress, got %v", err)
	}
	if candles.calls != 0 {
		t.Fatalf("locked run should not fetch candles")
	}
}

func TestRunAllReleasesLock(t *testing.T) {
	locks := cache.NewMemoryCache()
	defer locks.Close()

	candles := &fakeCandleSource{candles: makeCandles(30, 100, 0.5, 1000)}
	r := newTestRunner(candles, nil, nil, &fakeNotifier{}, &fakePublisher{}, newStubMetrics(), locks)

	ctx := context.Background()
	if err := r.RunAll(ctx, []string{"aapl"}); err != nil {
		t.Fatalf("first RunAll: %v", err)
	}
	if err := r.RunAll(ctx, []string{"aapl"}); err != nil {
		t.Fatalf("second RunAll should reacquire the lock: %v", err)
	}
}

func TestRunAllAllCodesFailing(t *testing.T) {
	candles := &fakeCandleSource{err: fmt.Errorf("upstream down")}
	locks := cache.NewMemoryCache()
	defer locks.Close()

	r := newTestRunner(candles, nil, nil, &fakeNotifier{}, &fakePublisher{}, newStubMetrics(), locks)
	if err := r.RunAll(context.Background(), []string{"aapl", "gld"}); err == nil {
		t.Fatalf("expected error when every instrument fails")
	}
}
