package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"GoldPulse/internal/domain/models"
	"GoldPulse/pkg/clickhouse"
)

var reportSchema = []string{
	`CREATE TABLE IF NOT EXISTS analysis_reports (
		code            LowCardinality(String),
		kind            LowCardinality(String),
		generated_at    DateTime64(3, 'UTC'),
		price           Float64,
		technical_score Int32,
		macro_score     Nullable(Int32),
		news_score      Nullable(Int32),
		final_score     Int32,
		signal          LowCardinality(String),
		report          String
	) ENGINE = MergeTree()
	PARTITION BY toYYYYMM(generated_at)
	ORDER BY (code, generated_at)
	TTL toDateTime(generated_at) + INTERVAL 180 DAY`,
}

// ReportStore archives analysis events in ClickHouse.
type ReportStore struct {
	client *clickhouse.Client
}

// NewReportStore creates a ClickHouse backed report archive.
func NewReportStore(client *clickhouse.Client) *ReportStore {
	return &ReportStore{client: client}
}

// Init ensures the report table exists.
func (s *ReportStore) Init(ctx context.Context) error {
	return s.client.InitSchema(ctx, reportSchema)
}

// Store inserts one analysis event.
func (s *ReportStore) Store(ctx context.Context, e *models.AnalysisEvent) error {
	const q = `INSERT INTO analysis_reports
		(code, kind, generated_at, price, technical_score, macro_score, news_score, final_score, signal, report)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.client.DB().ExecContext(ctx, q,
		e.Code, string(e.Kind), e.GeneratedAt, e.Price,
		int32(e.TechnicalScore), nullableScore(e.MacroScore), nullableScore(e.NewsScore),
		int32(e.FinalScore), string(e.Signal), e.Report,
	)
	if err != nil {
		return fmt.Errorf("store report for %s: %w", e.Code, err)
	}
	return nil
}

// Latest returns the most recent report for a code, or sql.ErrNoRows
// wrapped when none exists.
func (s *ReportStore) Latest(ctx context.Context, code string) (*models.AnalysisEvent, error) {
	const q = `SELECT code, kind, generated_at, price, technical_score, macro_score, news_score, final_score, signal, report
		FROM analysis_reports
		WHERE code = ?
		ORDER BY generated_at DESC
		LIMIT 1`

	var (
		e          models.AnalysisEvent
		kind       string
		signal     string
		macroScore sql.NullInt32
		newsScore  sql.NullInt32
		techScore  int32
		finalScore int32
		ts         time.Time
	)
	err := s.client.DB().QueryRowContext(ctx, q, code).Scan(
		&e.Code, &kind, &ts, &e.Price, &techScore, &macroScore, &newsScore, &finalScore, &signal, &e.Report,
	)
	if err != nil {
		return nil, fmt.Errorf("latest report for %s: %w", code, err)
	}

	e.Kind = models.InstrumentKind(kind)
	e.Signal = models.Signal(signal)
	e.GeneratedAt = ts
	e.TechnicalScore = int(techScore)
	e.FinalScore = int(finalScore)
	if macroScore.Valid {
		v := int(macroScore.Int32)
		e.MacroScore = &v
	}
	if newsScore.Valid {
		v := int(newsScore.Int32)
		e.NewsScore = &v
	}
	return &e, nil
}

// Health checks the backing connection.
func (s *ReportStore) Health(ctx context.Context) error {
	return s.client.Health(ctx)
}

// Close releases the connection pool.
func (s *ReportStore) Close() error {
	return s.client.Close()
}

func nullableScore(v *int) interface{} {
	if v == nil {
		return nil
	}
	return int32(*v)
}
