package di

import (
	"context"
	"fmt"
	"time"

	drepo "GoldPulse/internal/domain/repository"
	"GoldPulse/internal/handler/api"
	internalrepo "GoldPulse/internal/repository"
	"GoldPulse/internal/service/llm"
	"GoldPulse/internal/service/macro"
	"GoldPulse/internal/service/marketdata"
	"GoldPulse/internal/service/news"
	"GoldPulse/internal/service/notify"
	"GoldPulse/internal/usecase"
	"GoldPulse/pkg/cache"
	pkgch "GoldPulse/pkg/clickhouse"
	"GoldPulse/pkg/config"
	xhttp "GoldPulse/pkg/http"
	pkgkafka "GoldPulse/pkg/kafka"
	applogger "GoldPulse/pkg/logger"
	"GoldPulse/pkg/metrics"
	"GoldPulse/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*applogger.Logger, error) {
	level := "info"
	if cfg.Environment == "development" {
		level = "debug"
	}
	return applogger.New(&applogger.Config{
		Level:  level,
		Format: "console",
		Output: "stdout",
	})
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() drepo.Metrics {
	return metrics.New()
}

// ProvideCache creates the shared cache. Redis when configured,
// in-process otherwise.
func ProvideCache(cfg *config.Config) (cache.Service, error) {
	if !cfg.Macro.Redis.Enabled {
		return cache.NewMemoryCache(), nil
	}

	c, err := cache.NewRedisCache(
		cache.WithRedisAddr(cfg.Macro.Redis.Addr),
		cache.WithRedisPassword(cfg.Macro.Redis.Password),
		cache.WithRedisDB(cfg.Macro.Redis.DB),
	)
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	return c, nil
}

// ProvideMarketDataClient creates the market data REST client.
func ProvideMarketDataClient(cfg *config.Config) *marketdata.Client {
	return marketdata.NewClient(cfg.MarketData.BaseURL, cfg.MarketData.APIKey, cfg.MarketData.Timeout)
}

// ProvideCandleSource exposes the market data client as a candle feed.
func ProvideCandleSource(client *marketdata.Client) drepo.CandleSource {
	return client
}

// ProvideQuoteStream creates the optional live quote stream. Without a
// stream URL the app runs on scheduled pulls only.
func ProvideQuoteStream(cfg *config.Config) drepo.QuoteStream {
	if cfg.MarketData.StreamURL == "" {
		return nil
	}
	return marketdata.NewStream(
		cfg.MarketData.APIKey,
		cfg.MarketData.StreamURL,
		cfg.MarketData.ReconnectDelay,
		cfg.MarketData.PingInterval,
	)
}

// ProvideMacroSource assembles the macro factor provider.
func ProvideMacroSource(client *marketdata.Client, c cache.Service, cfg *config.Config, l *applogger.Logger) drepo.MacroSource {
	stats := macro.NewStatsClient(cfg.Stats.BaseURL, cfg.Stats.APIKey, cfg.Stats.Timeout)

	ttl := macro.DefaultTTLs()
	if v := cfg.Macro.CacheTTL.DXY; v > 0 {
		ttl.DXY = v
	}
	if v := cfg.Macro.CacheTTL.Treasury; v > 0 {
		ttl.Treasury = v
	}
	if v := cfg.Macro.CacheTTL.Inflation; v > 0 {
		ttl.Inflation = v
	}
	if v := cfg.Macro.CacheTTL.CentralBank; v > 0 {
		ttl.CentralBank = v
	}
	if v := cfg.Macro.CacheTTL.Volatility; v > 0 {
		ttl.Volatility = v
	}
	if v := cfg.Macro.CacheTTL.Geopolitical; v > 0 {
		ttl.Geopolitical = v
	}

	return macro.NewProvider(client, stats, c, ttl, l)
}

// ProvideNewsSource creates the headline search client.
func ProvideNewsSource(cfg *config.Config, l *applogger.Logger) drepo.NewsSource {
	return news.NewClient(cfg.News.BaseURL, cfg.News.APIKey, cfg.News.Timeout, cfg.News.MaxResults, l)
}

// ProvideNarrator creates the commentary client.
func ProvideNarrator(cfg *config.Config) drepo.Narrator {
	return llm.NewClient(cfg.LLM.BaseURL, cfg.LLM.APIKey, cfg.LLM.Model, cfg.LLM.Timeout, cfg.LLM.MaxTokens)
}

// ProvideNotifier creates the webhook fan-out.
func ProvideNotifier(cfg *config.Config, l *applogger.Logger, m drepo.Metrics) drepo.Notifier {
	return notify.NewWebhookNotifier(cfg.Notify.Webhooks, cfg.Notify.Timeout, l, m)
}

// ProvideClickHouseClient creates a ClickHouse client.
func ProvideClickHouseClient(cfg *config.Config) (*pkgch.Client, error) {
	client, err := pkgch.NewClient(
		pkgch.WithHost(cfg.ClickHouse.Host),
		pkgch.WithPort(cfg.ClickHouse.Port),
		pkgch.WithDatabase(cfg.ClickHouse.Database),
		pkgch.WithCredentials(cfg.ClickHouse.User, cfg.ClickHouse.Password),
		pkgch.WithMaxConnections(10, 5),
		pkgch.WithHTTP(cfg.ClickHouse.UseHTTP),
		pkgch.WithAsyncInsert(cfg.ClickHouse.AsyncInsert, cfg.ClickHouse.WaitForAsync),
		pkgch.WithTimeouts(cfg.ClickHouse.DialTimeout, cfg.ClickHouse.ReadTimeout, cfg.ClickHouse.WriteTimeout),
		pkgch.WithMaxExecutionTime(cfg.ClickHouse.MaxExecutionTime),
	)
	if err != nil {
		return nil, fmt.Errorf("clickhouse client: %w", err)
	}
	return client, nil
}

// ProvideReportStore creates the report archive and ensures its schema.
func ProvideReportStore(chClient *pkgch.Client) (drepo.ReportStore, error) {
	store := internalrepo.NewReportStore(chClient)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.Init(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("report schema: %w", err)
	}
	return store, nil
}

// ProvideKafkaProducer creates a Kafka producer.
func ProvideKafkaProducer(cfg *config.Config) (*pkgkafka.Producer, error) {
	producer, err := pkgkafka.NewProducer(
		pkgkafka.WithBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithCompression(cfg.Kafka.Compression),
		pkgkafka.WithRequiredAcks(cfg.Kafka.RequiredAcks),
		pkgkafka.WithBatchSize(cfg.Kafka.Producer.BatchSize),
		pkgkafka.WithBatchBytes(cfg.Kafka.Producer.BatchBytes),
		pkgkafka.WithBatchTimeout(cfg.Kafka.Producer.Linger),
		pkgkafka.WithTimeouts(cfg.Kafka.Producer.WriteTimeout, cfg.Kafka.Producer.ReadTimeout),
		pkgkafka.WithMaxAttempts(cfg.Kafka.Producer.MaxAttempts),
		pkgkafka.WithAsync(cfg.Kafka.Producer.Async),
		pkgkafka.WithHashByKey(true),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka producer: %w", err)
	}
	return producer, nil
}

// ProvidePublisher creates the Kafka event publisher.
func ProvidePublisher(producer *pkgkafka.Producer, cfg *config.Config) drepo.Publisher {
	return internalrepo.NewEventPublisher(producer, cfg.Kafka.Topic)
}

// ProvideKafkaConsumer creates a Kafka consumer configured from YAML.
func ProvideKafkaConsumer(cfg *config.Config) (*pkgkafka.Consumer, error) {
	consumer, err := pkgkafka.NewConsumer(
		pkgkafka.WithConsumerBrokers(cfg.Kafka.Brokers),
		pkgkafka.WithConsumerGroupID(cfg.Kafka.Consumer.GroupID),
		pkgkafka.WithConsumerWorkers(cfg.Kafka.Consumer.Workers),
		pkgkafka.WithConsumerBufferSize(cfg.Kafka.Consumer.BufferSize),
		pkgkafka.WithConsumerRetry(cfg.Kafka.Consumer.RetryMax, cfg.Kafka.Consumer.BackoffMin, cfg.Kafka.Consumer.BackoffMax),
		pkgkafka.WithConsumerDLQ(cfg.Kafka.Consumer.DLQTopic),
		pkgkafka.WithConsumerFetch(cfg.Kafka.Consumer.MinBytes, cfg.Kafka.Consumer.MaxBytes),
	)
	if err != nil {
		return nil, fmt.Errorf("kafka consumer: %w", err)
	}
	return consumer, nil
}

// ProvideEventsHandler creates the archiving consumer handler.
func ProvideEventsHandler(store drepo.ReportStore, cfg *config.Config, l *applogger.Logger) pkgkafka.MessageHandler {
	return usecase.NewAnalysisEventHandler(cfg.Kafka.Topic, store, l)
}

// ProvideRunner wires the analysis pipeline.
func ProvideRunner(
	candles drepo.CandleSource,
	macroSrc drepo.MacroSource,
	newsSrc drepo.NewsSource,
	narrator drepo.Narrator,
	notifier drepo.Notifier,
	publisher drepo.Publisher,
	locks cache.Service,
	m drepo.Metrics,
	l *applogger.Logger,
	cfg *config.Config,
) *usecase.Runner {
	return usecase.NewRunner(
		candles, macroSrc, newsSrc, narrator, notifier, publisher, locks, m, l,
		usecase.WithCandleDays(cfg.Instruments.CandleDays),
		usecase.WithLockTTL(cfg.Schedule.RunLockTTL),
	)
}

// ProvideAPIHandler creates the HTTP API handler.
func ProvideAPIHandler(runner *usecase.Runner, store drepo.ReportStore, macroSrc drepo.MacroSource, cfg *config.Config, l *applogger.Logger) xhttp.Handler {
	return api.NewHandler(runner, store, macroSrc, cfg.Instruments.Codes, l)
}

// ProvideApp creates the application server.
func ProvideApp(
	cfg *config.Config,
	runner *usecase.Runner,
	handler xhttp.Handler,
	consumer *pkgkafka.Consumer,
	kh pkgkafka.MessageHandler,
	stream drepo.QuoteStream,
	store drepo.ReportStore,
	publisher drepo.Publisher,
	m drepo.Metrics,
	l *applogger.Logger,
) *server.App {
	return server.New(cfg, runner, handler, consumer, kh, stream, store, publisher, m, l)
}
