package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/consumer"
	"github.com/radieske/bet-settlement-engine/internal/settlement/engine"
	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	kpub "github.com/radieske/bet-settlement-engine/internal/settlement/producer"
	"github.com/radieske/bet-settlement-engine/internal/settlement/provider"
	"github.com/radieske/bet-settlement-engine/internal/settlement/repo"
	"github.com/radieske/bet-settlement-engine/internal/settlement/teams"
	sharedcache "github.com/radieske/bet-settlement-engine/internal/shared/cache"
	"github.com/radieske/bet-settlement-engine/internal/shared/clock"
	"github.com/radieske/bet-settlement-engine/internal/shared/config"
	"github.com/radieske/bet-settlement-engine/internal/shared/db"
	"github.com/radieske/bet-settlement-engine/internal/shared/kafka"
	"github.com/radieske/bet-settlement-engine/internal/shared/logger"
	"github.com/radieske/bet-settlement-engine/internal/shared/metrics"
)

func main() {
	cfg := config.LoadFor("settlement-worker")
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	// Inicializa dependências: Postgres e Redis
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	var rdb *redis.Client
	if cfg.StatProviderCacheTTL > 0 {
		if rdb, err = sharedcache.ConnectRedis(cfg.RedisAddr); err != nil {
			log.Warn("redis unavailable, provider cache disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// Kafka: consome game_final (consumer group settlement-worker), publica bet_settled
	reader := kafka.NewReader(cfg.KafkaBrokers, cfg.TopicGameFinal, cfg.GroupSettlement)
	defer reader.Close()
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer writer.Close()

	var dlq *kafka.Writer
	if cfg.TopicGameFinalDLQ != "" {
		dlq = kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicGameFinalDLQ)
		defer dlq.Close()
	}

	m := metrics.NewSettlement(prometheus.DefaultRegisterer)
	publ := kpub.NewKafkaPublisher(writer)
	publ.OnError = m.ObserveError

	prov := provider.NewCached(
		provider.NewHTTPClient(cfg.StatProviderURL, cfg.StatProviderAPIKey, cfg.StatProviderTimeout),
		rdb, cfg.StatProviderCacheTTL, log,
	)
	eng := engine.New(repo.NewPostgres(pg), prov, teams.DefaultNBA(), clock.System{}, log, engine.Config{
		Workers:         cfg.SettlementWorkers,
		ProviderTimeout: cfg.StatProviderTimeout,
		AllowDraws:      cfg.AllowDraws,
		Location:        clock.LoadLocation(cfg.SettlementTimezone),
	})
	eng.Publisher = publ
	eng.Hooks = engine.Hooks{
		OnSettled: func(mode engine.Mode, r model.Outcome) { m.ObserveSettled(string(mode), string(r)) },
		OnIssue:   func(k engine.IssueKind) { m.ObserveIssue(string(k)) },
		OnPass:    func(mode engine.Mode, d time.Duration) { m.ObservePass(string(mode), d) },
	}

	proc := &consumer.GameFinalConsumer{
		Log:        log,
		Reader:     reader,
		Checker:    eng,
		Retries:    3,
		Backoff:    300 * time.Millisecond,
		OnConsumed: func() { m.Consumed.Inc() },
		OnError:    m.ObserveError,
	}
	if dlq != nil {
		proc.DLQ = dlq
	}

	// Servidor HTTP para métricas e health check
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		return nil
	})
	defer metricsSrv.Close()

	// Sinalização para shutdown gracioso (SIGINT/SIGTERM)
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	log.Info("settlement-worker started",
		zap.String("consume", cfg.TopicGameFinal),
		zap.String("publish", cfg.TopicBetSettled),
	)
	if err := proc.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatal("consumer stopped with error", zap.Error(err))
	}
	log.Info("settlement-worker stopped")
}
