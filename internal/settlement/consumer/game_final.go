package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/engine"
	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	sharedkafka "github.com/radieske/bet-settlement-engine/internal/shared/kafka"
	"github.com/radieske/bet-settlement-engine/pkg/contracts/events"
)

// MessageReader é o subconjunto do *kafka.Reader usado aqui
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
}

// Checker executa a checagem normal para um intervalo de datas
type Checker interface {
	RunNormalCheck(ctx context.Context, scope model.DateScope) (engine.Report, error)
}

// GameFinalConsumer lê game_final e dispara a checagem normal do dia do jogo.
// O commit só acontece depois da checagem (ou do envio para a DLQ).
type GameFinalConsumer struct {
	Log     *zap.Logger
	Reader  MessageReader
	Checker Checker
	DLQ     sharedkafka.MessageWriter // opcional

	Retries int           // tentativas extras antes da DLQ
	Backoff time.Duration // espera base entre tentativas

	OnConsumed func()       // métricas (counter++)
	OnError    func(string) // métricas por fase
}

func (c *GameFinalConsumer) fail(stage string) {
	if c.OnError != nil {
		c.OnError(stage)
	}
}

// Run inicia o loop principal; retorna quando o contexto é cancelado
func (c *GameFinalConsumer) Run(ctx context.Context) error {
	for {
		m, err := c.Reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.Log.Warn("kafka read failed", zap.Error(err))
			c.fail("read")
			if !sleep(ctx, 500*time.Millisecond) {
				return ctx.Err()
			}
			continue
		}
		if c.OnConsumed != nil {
			c.OnConsumed()
		}

		c.handle(ctx, m)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if err := c.Reader.CommitMessages(ctx, m); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			c.Log.Warn("kafka commit failed", zap.Int64("offset", m.Offset), zap.Error(err))
			c.fail("commit")
		}
	}
}

func (c *GameFinalConsumer) handle(ctx context.Context, m kafka.Message) {
	var ev events.GameFinal
	if err := json.Unmarshal(m.Value, &ev); err != nil {
		c.Log.Warn("invalid message", zap.Error(err))
		c.fail("decode")
		c.deadLetter(ctx, m)
		return
	}
	log := c.Log.With(zap.String("gameId", ev.GameID), zap.String("date", ev.Date))

	if ev.Status != "" && !(model.Game{Status: ev.Status}).IsFinal() {
		log.Debug("game not final, ignoring", zap.String("status", ev.Status))
		return
	}
	scope := model.DateScope{From: ev.Date, To: ev.Date}
	if err := scope.Validate(); ev.Date == "" || err != nil {
		log.Warn("invalid game date", zap.Error(err))
		c.fail("decode")
		c.deadLetter(ctx, m)
		return
	}

	var err error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		if attempt > 0 && !sleep(ctx, c.Backoff*time.Duration(attempt)) {
			return
		}
		var rep engine.Report
		if rep, err = c.Checker.RunNormalCheck(ctx, scope); err == nil {
			log.Info("game final processed",
				zap.String("passId", rep.PassID),
				zap.Int("settled", rep.Settled),
				zap.Int("stillPending", rep.StillPending),
			)
			return
		}
		log.Warn("normal check failed", zap.Int("attempt", attempt+1), zap.Error(err))
	}
	c.fail("check")
	c.deadLetter(ctx, m)
}

func (c *GameFinalConsumer) deadLetter(ctx context.Context, m kafka.Message) {
	if c.DLQ == nil {
		return
	}
	if err := sharedkafka.WriteJSON(ctx, c.DLQ, string(m.Key), m.Value); err != nil {
		c.Log.Error("dlq publish failed", zap.Error(err))
		c.fail("dlq")
	}
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
