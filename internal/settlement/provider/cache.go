package provider

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

// Cached é um read-through em Redis na frente do provedor.
// Falhas do Redis nunca derrubam a chamada; caem direto para o provedor.
// ErrNotFound e erros não são cacheados.
// Box score só é cacheado depois que o jogo foi visto final por ListGames;
// antes disso toda leitura vai ao provedor, pois a linha ainda muda.
type Cached struct {
	Inner StatProvider
	R     *redis.Client
	TTL   time.Duration
	Log   *zap.Logger
}

// NewCached cria o decorador; TTL <= 0 desliga o cache
func NewCached(inner StatProvider, r *redis.Client, ttl time.Duration, log *zap.Logger) StatProvider {
	if r == nil || ttl <= 0 {
		return inner
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Cached{Inner: inner, R: r, TTL: ttl, Log: log}
}

func keyGames(date string) string { return "provider:games:" + date }

func keyBox(gameID, playerID string) string { return "provider:box:" + gameID + ":" + playerID }

// keyFinal marca um jogo já visto encerrado
func keyFinal(gameID string) string { return "provider:final:" + gameID }

// ListGames tenta o cache antes do provedor
func (c *Cached) ListGames(ctx context.Context, date string) ([]model.Game, error) {
	var games []model.Game
	if ok := c.get(ctx, keyGames(date), &games); ok {
		return games, nil
	}
	games, err := c.Inner.ListGames(ctx, date)
	if err != nil {
		return nil, err
	}
	c.markFinal(ctx, games)
	c.set(ctx, keyGames(date), games)
	return games, nil
}

// GetPlayerBoxScore tenta o cache antes do provedor
func (c *Cached) GetPlayerBoxScore(ctx context.Context, gameID, playerID string) (*model.BoxScoreStat, error) {
	if !c.isFinal(ctx, gameID) {
		return c.Inner.GetPlayerBoxScore(ctx, gameID, playerID)
	}
	var box model.BoxScoreStat
	if ok := c.get(ctx, keyBox(gameID, playerID), &box); ok {
		return &box, nil
	}
	b, err := c.Inner.GetPlayerBoxScore(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if b != nil {
		c.set(ctx, keyBox(gameID, playerID), b)
	}
	return b, nil
}

// markFinal grava a marca antes da lista, então todo box cacheado é posterior ao final
func (c *Cached) markFinal(ctx context.Context, games []model.Game) {
	pipe := c.R.Pipeline()
	n := 0
	for _, g := range games {
		if g.IsFinal() {
			pipe.Set(ctx, keyFinal(g.ID), "1", c.TTL)
			n++
		}
	}
	if n == 0 {
		return
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.Log.Warn("provider cache mark final failed", zap.Error(err))
	}
}

// isFinal falha fechado: sem a marca (ou sem Redis) o box não passa pelo cache
func (c *Cached) isFinal(ctx context.Context, gameID string) bool {
	n, err := c.R.Exists(ctx, keyFinal(gameID)).Result()
	if err != nil {
		c.Log.Warn("provider cache exists failed", zap.String("gameId", gameID), zap.Error(err))
		return false
	}
	return n == 1
}

func (c *Cached) get(ctx context.Context, key string, dst any) bool {
	b, err := c.R.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		c.Log.Warn("provider cache get failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		c.Log.Warn("provider cache decode failed", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (c *Cached) set(ctx context.Context, key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.R.Set(ctx, key, b, c.TTL).Err(); err != nil {
		c.Log.Warn("provider cache set failed", zap.String("key", key), zap.Error(err))
	}
}
