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
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/shared/clock"
	"github.com/radieske/bet-settlement-engine/internal/shared/config"
	"github.com/radieske/bet-settlement-engine/internal/shared/kafka"
	"github.com/radieske/bet-settlement-engine/internal/shared/logger"
	"github.com/radieske/bet-settlement-engine/internal/shared/metrics"
	simulator "github.com/radieske/bet-settlement-engine/internal/stat-simulator"
	"github.com/radieske/bet-settlement-engine/pkg/contracts/events"
)

var (
	// Métricas Prometheus para monitoramento de conexões e mensagens
	wsConnections = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "simulator_ws_connections",
		Help: "Clientes WebSocket conectados",
	})
	wsMessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_ws_messages_sent_total",
		Help: "Total de mensagens WS enviadas",
	})
	gamesFinished = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "simulator_games_finished_total",
		Help: "Jogos encerrados e publicados em game_final",
	})
)

func main() {
	cfg := config.LoadFor("stat-provider-simulator")
	log, err := logger.New(cfg.ServiceName, cfg.Env, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	prometheus.MustRegister(wsConnections, wsMessagesSent, gamesFinished)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// o slate simula os jogos de hoje no fuso de liquidação
	today := clock.Today(clock.System{}, clock.LoadLocation(cfg.SettlementTimezone))
	slate := simulator.NewSlate(today, time.Now().UnixNano(), simulator.Catalog, simulator.Roster)

	hub := simulator.NewHub(log)
	hub.OnConnect = func(d int) { wsConnections.Add(float64(d)) }
	hub.OnSent = wsMessagesSent.Inc

	// Kafka producer: avisa o settlement-worker quando um jogo encerra
	writer := kafka.NewWriter(cfg.KafkaBrokers, cfg.TopicGameFinal)
	defer writer.Close()

	// Avança o relógio de jogo a cada tick e publica os encerramentos
	go func() {
		every := cfg.SimulatorTick
		if every <= 0 {
			every = 3 * time.Second
		}
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		tick := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			tick++
			for _, g := range slate.Advance() {
				ev := events.GameFinal{GameID: g.ID, Date: g.Date, HomeTeam: g.HomeTeam, AwayTeam: g.AwayTeam, Status: g.Status}
				if err := kafka.PublishJSON(ctx, writer, g.ID, ev); err != nil {
					log.Warn("game_final publish failed", zap.String("gameId", g.ID), zap.Error(err))
					continue
				}
				gamesFinished.Inc()
				log.Info("game final",
					zap.String("gameId", g.ID),
					zap.String("score", fmt.Sprintf("%s %d x %d %s", g.HomeTeam, g.HomeScore, g.AwayScore, g.AwayTeam)),
				)
			}
			hub.Broadcast(simulator.GameUpdate{Tick: tick, Games: slate.Games(today)})
		}
	}()

	metricsSrv := metrics.StartMetricsServer(cfg.MetricsPort, func(context.Context) error { return nil })
	defer metricsSrv.Close()

	// Servidor público (API do provedor + WS)
	api := simulator.NewServer(log, slate, hub, cfg.StatProviderAPIKey)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:           api.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		sctx, scancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer scancel()
		_ = srv.Shutdown(sctx)
	}()

	log.Info("stat provider simulator running",
		zap.String("addr", srv.Addr),
		zap.String("date", today),
		zap.String("paths", "/games,/games/{id}/players/{pid}/boxscore,/ws"),
	)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal("public server error", zap.Error(err))
	}
}
