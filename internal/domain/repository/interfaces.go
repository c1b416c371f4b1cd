package repository

import (
	"context"

	"GoldPulse/internal/domain/models"
)

// CandleSource fetches daily candles for an instrument.
type CandleSource interface {
	DailyCandles(ctx context.Context, code string, days int) ([]models.Candle, error)
}

// QuoteStream is an optional live quote feed.
type QuoteStream interface {
	Connect(ctx context.Context) error
	Subscribe(ctx context.Context, codes []string) error
	Read(ctx context.Context) (<-chan *models.Quote, <-chan error)
	Reconnect(ctx context.Context) error
	Close() error
	IsConnected() bool
}

// MacroSource produces the structured macro assessment.
type MacroSource interface {
	Assessment(ctx context.Context) (*models.MacroAssessment, error)
}

// NewsSource searches gold-related headlines and scores them.
// Enabled reports whether a credential is configured; when false the
// pipeline skips the stage.
type NewsSource interface {
	Search(ctx context.Context, code string) (*models.NewsDigest, error)
	Enabled() bool
}

// Narrator asks a language model to comment on the analysis.
type Narrator interface {
	Narrate(ctx context.Context, result *models.AnalysisResult, macro *models.MacroAssessment, news *models.NewsDigest) (string, error)
	Enabled() bool
}

// Notifier fans a rendered report out to configured endpoints.
type Notifier interface {
	Send(ctx context.Context, title, markdown string) error
}

// Publisher emits analysis events to the message bus.
type Publisher interface {
	Publish(ctx context.Context, e *models.AnalysisEvent) error
	Close() error
}

// ReportStore archives analysis events and serves the latest per code.
type ReportStore interface {
	Init(ctx context.Context) error
	Store(ctx context.Context, e *models.AnalysisEvent) error
	Latest(ctx context.Context, code string) (*models.AnalysisEvent, error)
	Health(ctx context.Context) error
	Close() error
}

// Metrics records operational measurements.
type Metrics interface {
	RecordRun(code, result string)
	RecordError(kind string)
	RecordLastPrice(code string, price float64)
	RecordScore(code, kind string, value float64)
	RecordNotification(result string)
	RecordLatency(op string, seconds float64)
}
