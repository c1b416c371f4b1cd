package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GoldPulse/internal/analysis"
	"GoldPulse/internal/domain/models"
	drepo "GoldPulse/internal/domain/repository"
	"GoldPulse/internal/report"
	"GoldPulse/pkg/cache"
	applogger "GoldPulse/pkg/logger"
	"GoldPulse/pkg/util"
)

const runLockKey = "analysis:run_lock"

// ErrRunInProgress is returned when a run is already holding the lock.
var ErrRunInProgress = errors.New("analysis run already in progress")

// Runner executes the per-instrument analysis pipeline. Optional stages
// degrade by omission: a failed macro, news, narration, notification or
// publish step is logged and skipped, never aborting the run.
type Runner struct {
	candles    drepo.CandleSource
	macro      drepo.MacroSource
	news       drepo.NewsSource
	narrator   drepo.Narrator
	notifier   drepo.Notifier
	publisher  drepo.Publisher
	locks      cache.Service
	metrics    drepo.Metrics
	logger     *applogger.Logger
	candleDays int
	lockTTL    time.Duration
}

// RunnerOption configures Runner.
type RunnerOption func(*Runner)

// NewRunner wires the pipeline stages together.
func NewRunner(
	candles drepo.CandleSource,
	macro drepo.MacroSource,
	news drepo.NewsSource,
	narrator drepo.Narrator,
	notifier drepo.Notifier,
	publisher drepo.Publisher,
	locks cache.Service,
	metrics drepo.Metrics,
	logger *applogger.Logger,
	opts ...RunnerOption,
) *Runner {
	r := &Runner{
		candles:    candles,
		macro:      macro,
		news:       news,
		narrator:   narrator,
		notifier:   notifier,
		publisher:  publisher,
		locks:      locks,
		metrics:    metrics,
		logger:     logger,
		candleDays: 90,
		lockTTL:    10 * time.Minute,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// WithCandleDays sets how many daily candles each run fetches.
func WithCandleDays(days int) RunnerOption {
	return func(r *Runner) {
		if days > 0 {
			r.candleDays = days
		}
	}
}

// WithLockTTL sets how long the run lock survives a crashed run.
func WithLockTTL(ttl time.Duration) RunnerOption {
	return func(r *Runner) {
		if ttl > 0 {
			r.lockTTL = ttl
		}
	}
}

// RunAll analyzes every code under a single run lock. A run that cannot
// take the lock returns ErrRunInProgress.
func (r *Runner) RunAll(ctx context.Context, codes []string) error {
	if err := r.acquireLock(ctx); err != nil {
		return err
	}
	defer r.releaseLock(ctx)
	return r.runLocked(ctx, codes)
}

// RunAsync takes the run lock synchronously, then analyzes in the
// background. The caller learns about a lock conflict immediately.
func (r *Runner) RunAsync(ctx context.Context, codes []string) error {
	if err := r.acquireLock(ctx); err != nil {
		return err
	}

	go func() {
		bg := context.WithoutCancel(ctx)
		defer r.releaseLock(bg)
		if err := r.runLocked(bg, codes); err != nil {
			r.logger.Error("background run failed", applogger.Error(err))
		}
	}()
	return nil
}

func (r *Runner) acquireLock(ctx context.Context) error {
	ok, err := r.locks.TryLock(ctx, runLockKey, r.lockTTL)
	if err != nil {
		return fmt.Errorf("acquire run lock: %w", err)
	}
	if !ok {
		r.logger.Info("skipping run, another run holds the lock")
		return ErrRunInProgress
	}
	return nil
}

func (r *Runner) releaseLock(ctx context.Context) {
	if err := r.locks.Unlock(context.WithoutCancel(ctx), runLockKey); err != nil {
		r.logger.Warn("release run lock failed", applogger.Error(err))
	}
}

func (r *Runner) runLocked(ctx context.Context, codes []string) error {
	start := time.Now()
	var failed int
	for _, code := range codes {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.RunCode(ctx, code); err != nil {
			failed++
			r.logger.Error("analysis failed",
				applogger.String("code", code),
				applogger.Error(err),
			)
			r.metrics.RecordRun(code, "error")
			r.metrics.RecordError("analysis")
		}
	}
	r.metrics.RecordLatency("run_all", time.Since(start).Seconds())

	r.logger.Info("analysis run finished",
		applogger.Int("codes", len(codes)),
		applogger.Int("failed", failed),
		applogger.Duration("elapsed", time.Since(start)),
	)
	if failed == len(codes) && len(codes) > 0 {
		return fmt.Errorf("all %d instruments failed", failed)
	}
	return nil
}

// RunCode executes the full pipeline for one instrument.
func (r *Runner) RunCode(ctx context.Context, code string) error {
	start := time.Now()

	candles, err := r.candles.DailyCandles(ctx, code, r.candleDays)
	if err != nil {
		return fmt.Errorf("fetch candles: %w", err)
	}

	analyzer := analysis.NewAnalyzer(code)
	result, err := analyzer.Analyze(code, candles)
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	event := &models.AnalysisEvent{
		Code:           code,
		Kind:           result.Kind,
		GeneratedAt:    result.GeneratedAt,
		Price:          result.Snapshot.Close,
		TechnicalScore: result.TechnicalScore,
		FinalScore:     result.TechnicalScore,
		Signal:         result.Signal,
	}

	in := &report.Input{
		Result:     result,
		FinalScore: result.TechnicalScore,
		Signal:     result.Signal,
	}

	if result.Kind == models.KindGold {
		r.enrichGold(ctx, event, in)
	}

	if r.narrator != nil && r.narrator.Enabled() {
		commentary, err := r.narrator.Narrate(ctx, result, in.Macro, in.News)
		if err != nil {
			r.logger.Warn("narration skipped",
				applogger.String("code", code),
				applogger.Error(err),
			)
			r.metrics.RecordError("narration")
		} else {
			in.Commentary = commentary
		}
	}

	markdown := report.Render(in)
	event.Report = markdown

	title := report.Title(code, util.DayKey(result.GeneratedAt))
	if r.notifier != nil {
		if err := r.notifier.Send(ctx, title, markdown); err != nil {
			r.logger.Warn("notification skipped",
				applogger.String("code", code),
				applogger.Error(err),
			)
			r.metrics.RecordError("notification")
		}
	}

	if r.publisher != nil {
		if err := r.publisher.Publish(ctx, event); err != nil {
			r.logger.Warn("event publish skipped",
				applogger.String("code", code),
				applogger.Error(err),
			)
			r.metrics.RecordError("publish")
		}
	}

	r.metrics.RecordRun(code, "ok")
	r.metrics.RecordLastPrice(code, result.Snapshot.Close)
	r.metrics.RecordScore(code, "technical", float64(result.TechnicalScore))
	r.metrics.RecordScore(code, "final", float64(event.FinalScore))
	r.metrics.RecordLatency("run_code", time.Since(start).Seconds())

	r.logger.Info("analysis completed",
		applogger.String("code", code),
		applogger.String("signal", string(event.Signal)),
		applogger.Int("technical_score", result.TechnicalScore),
		applogger.Int("final_score", event.FinalScore),
	)
	return nil
}

// enrichGold blends macro and news scores into the final score. Missing
// macro data leaves the technical score in charge.
func (r *Runner) enrichGold(ctx context.Context, event *models.AnalysisEvent, in *report.Input) {
	if r.macro == nil {
		return
	}

	assessment, err := r.macro.Assessment(ctx)
	if err != nil {
		r.logger.Warn("macro assessment skipped",
			applogger.String("code", event.Code),
			applogger.Error(err),
		)
		r.metrics.RecordError("macro")
		return
	}
	in.Macro = assessment

	newsScore := 50
	if r.news != nil && r.news.Enabled() {
		digest, err := r.news.Search(ctx, event.Code)
		if err != nil {
			r.logger.Warn("news search skipped",
				applogger.String("code", event.Code),
				applogger.Error(err),
			)
			r.metrics.RecordError("news")
		} else {
			in.News = digest
			newsScore = digest.Score
			event.NewsScore = &digest.Score
		}
	}

	macroScore := analysis.MacroBlend(newsScore, assessment.Score)
	event.MacroScore = &macroScore
	event.FinalScore = analysis.FinalScore(in.Result.TechnicalScore, macroScore)
	event.Signal = analysis.SignalFor(event.FinalScore)

	in.MacroScore = &macroScore
	in.FinalScore = event.FinalScore
	in.Signal = event.Signal

	r.metrics.RecordScore(event.Code, "macro", float64(macroScore))
}
