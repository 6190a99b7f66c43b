package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	"github.com/radieske/bet-settlement-engine/internal/settlement/provider"
	"github.com/radieske/bet-settlement-engine/internal/settlement/repo"
	"github.com/radieske/bet-settlement-engine/internal/settlement/resolver"
	"github.com/radieske/bet-settlement-engine/internal/settlement/teams"
	"github.com/radieske/bet-settlement-engine/internal/shared/clock"
	"github.com/radieske/bet-settlement-engine/pkg/contracts/events"
)

var (
	// ErrProviderUnavailable agrupa falhas de rede/timeout com o provedor
	ErrProviderUnavailable = provider.ErrUnavailable
	// ErrInvalidScope indica datas inválidas ou ausentes na chamada
	ErrInvalidScope = errors.New("invalid date scope")
)

// Config ajusta o pool de workers e os limites de chamada ao provedor
type Config struct {
	Workers         int           // apostas processadas em paralelo
	ProviderTimeout time.Duration // limite por chamada ao provedor
	AllowDraws      bool          // empate em prop de jogo vira void em vez de erro
	Location        *time.Location
}

// Publisher recebe os eventos de liquidação gravados
type Publisher interface {
	PublishBetSettled(ctx context.Context, e events.BetSettled) error
}

// Hooks são callbacks de métricas, todos opcionais
type Hooks struct {
	OnSettled func(mode Mode, result model.Outcome)
	OnIssue   func(kind IssueKind)
	OnPass    func(mode Mode, d time.Duration)
}

// Engine é o orquestrador da liquidação: única parte que altera apostas e pernas
type Engine struct {
	Store     repo.Store
	Provider  provider.StatProvider
	Resolver  *resolver.Resolver
	Clock     clock.Clock
	Publisher Publisher
	Log       *zap.Logger
	Cfg       Config
	Hooks     Hooks
}

// New monta o engine. O provedor é embrulhado com o timeout por chamada
// e o resolver usa o mesmo provedor limitado na varredura de fallback.
func New(store repo.Store, prov provider.StatProvider, dir *teams.Directory, clk clock.Clock, log *zap.Logger, cfg Config) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	if clk == nil {
		clk = clock.System{}
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 8
	}
	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 5 * time.Second
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	bounded := &boundedProvider{inner: prov, timeout: cfg.ProviderTimeout}
	return &Engine{
		Store:    store,
		Provider: bounded,
		Resolver: resolver.New(dir, bounded),
		Clock:    clk,
		Log:      log,
		Cfg:      cfg,
	}
}

// Today é a data corrente no fuso configurado
func (e *Engine) Today() string {
	return clock.Today(e.Clock, e.Cfg.Location)
}

// boundedProvider aplica o timeout por chamada exigido em toda chamada ao provedor.
// Timeout vira ErrUnavailable: a perna fica pendente, o lote continua.
type boundedProvider struct {
	inner   provider.StatProvider
	timeout time.Duration
}

func (b *boundedProvider) ListGames(ctx context.Context, date string) ([]model.Game, error) {
	cctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	games, err := b.inner.ListGames(cctx, date)
	return games, classify(err)
}

func (b *boundedProvider) GetPlayerBoxScore(ctx context.Context, gameID, playerID string) (*model.BoxScoreStat, error) {
	cctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()
	box, err := b.inner.GetPlayerBoxScore(cctx, gameID, playerID)
	return box, classify(err)
}

func classify(err error) error {
	if err == nil || errors.Is(err, provider.ErrNotFound) || errors.Is(err, provider.ErrUnavailable) {
		return err
	}
	return errors.Join(provider.ErrUnavailable, err)
}

// forEach roda fn para cada aposta com no máximo Workers em paralelo.
// fn nunca aborta o lote: falhas por aposta viram Issues no relatório.
func (e *Engine) forEach(ctx context.Context, bets []model.Bet, fn func(context.Context, model.Bet)) {
	g := new(errgroup.Group)
	g.SetLimit(e.Cfg.Workers)
	for _, b := range bets {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			fn(ctx, b)
			return nil
		})
	}
	_ = g.Wait()
}

// publish envia o evento; falha de publicação é logada e nunca desfaz a gravação
func (e *Engine) publish(ctx context.Context, rb *reportBuilder, b model.Bet) {
	if e.Publisher == nil {
		return
	}
	ev := events.BetSettled{
		EventID:       uuid.NewString(),
		BetID:         b.ID,
		Status:        string(b.Status),
		Result:        string(b.Result),
		RealizedValue: b.RealizedValue,
		Mode:          string(rb.mode),
		PassID:        rb.passID,
		Legs:          make([]events.LegSettled, 0, len(b.Legs)),
		Ts:            e.Clock.Now().UTC(),
	}
	for _, l := range b.Legs {
		ev.Legs = append(ev.Legs, events.LegSettled{LegID: l.ID, Result: string(l.LegResult), ActualValue: l.ActualValue})
	}
	if err := e.Publisher.PublishBetSettled(ctx, ev); err != nil {
		e.Log.Warn("publish bet_settled failed", zap.String("betId", b.ID), zap.Error(err))
	}
}

// save grava a aposta se ela ainda estiver como prev e dispara evento e métricas.
// Conflito quer dizer que outra passada gravou antes: a aposta é pulada sem issue.
func (e *Engine) save(ctx context.Context, rb *reportBuilder, prev, b model.Bet) bool {
	err := e.Store.SaveSettlement(ctx, repo.PriorOf(prev), b)
	if errors.Is(err, repo.ErrConflict) {
		e.Log.Info("bet changed by another pass, skipped", zap.String("passId", rb.passID), zap.String("betId", b.ID))
		return false
	}
	if err != nil {
		e.Log.Warn("save settlement failed", zap.String("betId", b.ID), zap.Error(err))
		rb.issue(Issue{BetID: b.ID, Kind: IssueStoreWrite, Detail: err.Error()})
		return false
	}
	if e.Hooks.OnSettled != nil {
		e.Hooks.OnSettled(rb.mode, b.Result)
	}
	e.publish(ctx, rb, b)
	return true
}

func (e *Engine) finish(rb *reportBuilder) Report {
	r := rb.build(e.Clock.Now())
	if e.Hooks.OnPass != nil {
		e.Hooks.OnPass(r.Mode, r.FinishedAt.Sub(r.StartedAt))
	}
	e.Log.Info("settlement pass finished",
		zap.String("passId", r.PassID),
		zap.String("mode", string(r.Mode)),
		zap.Int("scanned", r.Scanned),
		zap.Int("settled", r.Settled),
		zap.Int("changed", r.Changed),
		zap.Int("reset", r.Reset),
		zap.Int("stillPending", r.StillPending),
		zap.Int("issues", len(r.Issues)),
	)
	return r
}
