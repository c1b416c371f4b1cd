package macro

import (
	"context"
	"errors"
	"fmt"
	"time"

	"GoldPulse/internal/domain/models"
	"GoldPulse/internal/service/marketdata"
	"GoldPulse/pkg/cache"
	applogger "GoldPulse/pkg/logger"
)

// IndexSource serves index quotes (DXY, VIX, treasury yields).
type IndexSource interface {
	Quote(ctx context.Context, symbol string) (*marketdata.IndexQuote, error)
}

// TTLs holds per-factor cache staleness windows.
type TTLs struct {
	DXY          time.Duration
	Treasury     time.Duration
	Inflation    time.Duration
	CentralBank  time.Duration
	Volatility   time.Duration
	Geopolitical time.Duration
}

// DefaultTTLs mirrors the staleness each factor tolerates.
func DefaultTTLs() TTLs {
	return TTLs{
		DXY:          time.Hour,
		Treasury:     time.Hour,
		Inflation:    24 * time.Hour,
		CentralBank:  24 * time.Hour,
		Volatility:   time.Hour,
		Geopolitical: time.Hour,
	}
}

// Provider assembles the structured macro assessment from cached factors.
// A factor whose fetch fails is omitted rather than aborting the run.
type Provider struct {
	market IndexSource
	stats  StatsSource
	cache  cache.Service
	ttl    TTLs
	logger *applogger.Logger
}

// NewProvider creates a macro assessment provider.
func NewProvider(market IndexSource, stats StatsSource, c cache.Service, ttl TTLs, l *applogger.Logger) *Provider {
	if c == nil {
		c = cache.NewMemoryCache()
	}
	return &Provider{market: market, stats: stats, cache: c, ttl: ttl, logger: l}
}

// Assessment fetches and scores all available factors.
func (p *Provider) Assessment(ctx context.Context) (*models.MacroAssessment, error) {
	type fetcher struct {
		name  string
		fetch func(context.Context) (models.MacroFactor, error)
	}

	fetchers := []fetcher{
		{FactorDXY, p.dxyFactor},
		{FactorRealRate, p.realRateFactor},
		{FactorInflation, p.inflationFactor},
		{FactorCentralBank, p.centralBankFactor},
		{FactorVolatility, p.volatilityFactor},
		{FactorGeopolitical, p.geopoliticalFactor},
	}

	factors := make([]models.MacroFactor, 0, len(fetchers))
	for _, f := range fetchers {
		factor, err := f.fetch(ctx)
		if err != nil {
			if p.logger != nil {
				p.logger.Warn("macro factor unavailable",
					applogger.String("factor", f.name),
					applogger.Error(err),
				)
			}
			continue
		}
		factors = append(factors, factor)
	}

	return &models.MacroAssessment{
		Factors:     factors,
		Score:       StructuredScore(factors),
		Summary:     Summarize(factors),
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func (p *Provider) quoteCached(ctx context.Context, key, symbol string, ttl time.Duration) (*marketdata.IndexQuote, error) {
	var q marketdata.IndexQuote
	if err := p.cache.Get(ctx, key, &q); err == nil {
		return &q, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) && p.logger != nil {
		p.logger.Warn("macro cache read failed", applogger.String("key", key), applogger.Error(err))
	}

	got, err := p.market.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}
	_ = p.cache.Set(ctx, key, got, ttl)
	return got, nil
}

func (p *Provider) floatCached(ctx context.Context, key string, ttl time.Duration, fetch func(context.Context) (float64, error)) (float64, error) {
	var v float64
	if err := p.cache.Get(ctx, key, &v); err == nil {
		return v, nil
	} else if !errors.Is(err, cache.ErrCacheMiss) && p.logger != nil {
		p.logger.Warn("macro cache read failed", applogger.String("key", key), applogger.Error(err))
	}

	v, err := fetch(ctx)
	if err != nil {
		return 0, err
	}
	_ = p.cache.Set(ctx, key, v, ttl)
	return v, nil
}

func (p *Provider) dxyFactor(ctx context.Context) (models.MacroFactor, error) {
	q, err := p.quoteCached(ctx, "macro:dxy", "DXY", p.ttl.DXY)
	if err != nil {
		return models.MacroFactor{}, err
	}
	score := ScoreDXYChange(q.ChangePct)
	return models.MacroFactor{
		Name:      FactorDXY,
		Value:     q.Price,
		Score:     score,
		Impact:    ImpactFor(score),
		Detail:    fmt.Sprintf("day change %+.2f%%", q.ChangePct),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (p *Provider) realRateFactor(ctx context.Context) (models.MacroFactor, error) {
	yield, err := p.quoteCached(ctx, "macro:treasury10y", "US10Y", p.ttl.Treasury)
	if err != nil {
		return models.MacroFactor{}, err
	}
	cpi, err := p.floatCached(ctx, "macro:inflation", p.ttl.Inflation, p.stats.Inflation)
	if err != nil {
		return models.MacroFactor{}, err
	}

	real := yield.Price - cpi
	score := ScoreRealRate(real)
	return models.MacroFactor{
		Name:      FactorRealRate,
		Value:     real,
		Score:     score,
		Impact:    ImpactFor(score),
		Detail:    fmt.Sprintf("10Y %.2f%% minus CPI %.2f%%", yield.Price, cpi),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (p *Provider) inflationFactor(ctx context.Context) (models.MacroFactor, error) {
	cpi, err := p.floatCached(ctx, "macro:inflation", p.ttl.Inflation, p.stats.Inflation)
	if err != nil {
		return models.MacroFactor{}, err
	}
	score := ScoreInflation(cpi)
	return models.MacroFactor{
		Name:      FactorInflation,
		Value:     cpi,
		Score:     score,
		Impact:    ImpactFor(score),
		Detail:    fmt.Sprintf("CPI %.2f%% YoY", cpi),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (p *Provider) centralBankFactor(ctx context.Context) (models.MacroFactor, error) {
	tonnes, err := p.floatCached(ctx, "macro:central_bank", p.ttl.CentralBank, p.stats.CentralBankPurchases)
	if err != nil {
		return models.MacroFactor{}, err
	}
	score := ScoreCentralBank(tonnes)
	return models.MacroFactor{
		Name:      FactorCentralBank,
		Value:     tonnes,
		Score:     score,
		Impact:    ImpactFor(score),
		Detail:    fmt.Sprintf("%.0f tonnes this quarter", tonnes),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (p *Provider) volatilityFactor(ctx context.Context) (models.MacroFactor, error) {
	q, err := p.quoteCached(ctx, "macro:vix", "VIX", p.ttl.Volatility)
	if err != nil {
		return models.MacroFactor{}, err
	}
	score := ScoreVolatility(q.Price)
	return models.MacroFactor{
		Name:      FactorVolatility,
		Value:     q.Price,
		Score:     score,
		Impact:    ImpactFor(score),
		Detail:    fmt.Sprintf("volatility index at %.1f", q.Price),
		FetchedAt: time.Now().UTC(),
	}, nil
}

func (p *Provider) geopoliticalFactor(ctx context.Context) (models.MacroFactor, error) {
	index, err := p.floatCached(ctx, "macro:geopolitical", p.ttl.Geopolitical, p.stats.Geopolitical)
	if err != nil {
		return models.MacroFactor{}, err
	}
	score := ScoreGeopolitical(index)
	return models.MacroFactor{
		Name:      FactorGeopolitical,
		Value:     index,
		Score:     score,
		Impact:    ImpactFor(score),
		Detail:    fmt.Sprintf("risk index at %.0f", index),
		FetchedAt: time.Now().UTC(),
	}, nil
}
