package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/engine"
	shttp "github.com/radieske/bet-settlement-engine/internal/settlement/http"
	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	kpub "github.com/radieske/bet-settlement-engine/internal/settlement/producer"
	"github.com/radieske/bet-settlement-engine/internal/settlement/provider"
	"github.com/radieske/bet-settlement-engine/internal/settlement/repo"
	"github.com/radieske/bet-settlement-engine/internal/settlement/teams"
	sharedcache "github.com/radieske/bet-settlement-engine/internal/shared/cache"
	"github.com/radieske/bet-settlement-engine/internal/shared/clock"
	"github.com/radieske/bet-settlement-engine/internal/shared/config"
	"github.com/radieske/bet-settlement-engine/internal/shared/cron"
	"github.com/radieske/bet-settlement-engine/internal/shared/db"
	"github.com/radieske/bet-settlement-engine/internal/shared/kafka"
	"github.com/radieske/bet-settlement-engine/internal/shared/logger"
	"github.com/radieske/bet-settlement-engine/internal/shared/metrics"
)

func main() {
	cfg := config.LoadFor("settlement-service")
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Postgres
	pg, err := db.ConnectPostgres(cfg.PostgresDSN)
	if err != nil {
		log.Fatal("postgres connect", zap.Error(err))
	}
	defer pg.Close()

	// Redis é só cache do provedor: sem ele o serviço segue sem cache
	var rdb *redis.Client
	if cfg.StatProviderCacheTTL > 0 {
		if rdb, err = sharedcache.ConnectRedis(cfg.RedisAddr); err != nil {
			log.Warn("redis unavailable, provider cache disabled", zap.Error(err))
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// Kafka writer (topic bet_settled)
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicBetSettled)
	defer writer.Close()

	m := metrics.NewSettlement(prometheus.DefaultRegisterer)
	publ := kpub.NewKafkaPublisher(writer)
	publ.OnError = m.ObserveError

	prov := provider.NewCached(
		provider.NewHTTPClient(cfg.StatProviderURL, cfg.StatProviderAPIKey, cfg.StatProviderTimeout),
		rdb, cfg.StatProviderCacheTTL, log,
	)
	store := repo.NewPostgres(pg)
	eng := engine.New(store, prov, teams.DefaultNBA(), clock.System{}, log, engine.Config{
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

	// checagem periódica das apostas pendentes até hoje
	runner := cron.New(log, ctx)
	if cfg.SettlementCron != "" {
		if _, err := runner.Add("normal-check", cfg.SettlementCron, func(ctx context.Context) {
			if _, err := eng.RunNormalCheck(ctx, model.DateScope{}); err != nil {
				log.Error("scheduled normal check failed", zap.Error(err))
				m.ObserveError("cron")
			}
		}); err != nil {
			log.Fatal("invalid SETTLEMENT_CRON", zap.String("spec", cfg.SettlementCron), zap.Error(err))
		}
		runner.Start()
		defer runner.Stop()
	}

	// metrics/health
	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(ctx context.Context) error {
		if err := pg.PingContext(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
		return nil
	})
	log.Info("metrics/health", zap.String("addr", metricsSrv.Addr))

	// HTTP público
	api := shttp.NewServer(log, eng, store)
	apiSrv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer scancel()
		_ = apiSrv.Shutdown(sctx)
		_ = metricsSrv.Shutdown(sctx)
	}()

	log.Info("settlement-service listening", zap.String("addr", apiSrv.Addr))
	if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("api", zap.Error(err))
	}
	log.Info("settlement-service stopped")
}
