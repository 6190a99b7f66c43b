package engine

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	"github.com/radieske/bet-settlement-engine/internal/settlement/parlay"
	"github.com/radieske/bet-settlement-engine/internal/settlement/repo"
)

// RunNormalCheck liquida as apostas pendentes do escopo.
// Sem limite superior, o escopo vai até hoje (no fuso configurado): jogos futuros não podem estar finais.
// Se o início já está no futuro, a passada termina vazia.
// Rodar de novo é no-op para apostas que já chegaram a estado terminal.
func (e *Engine) RunNormalCheck(ctx context.Context, scope model.DateScope) (Report, error) {
	if err := scope.Validate(); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidScope, err)
	}
	if scope.To == "" {
		today := e.Today()
		if scope.From > today {
			// começa no futuro: nada pode estar final, passada vazia
			return e.finish(newReport(ModeNormalCheck, scope, e.Clock.Now(), e.Hooks.OnIssue)), nil
		}
		scope.To = today
	}
	rb := newReport(ModeNormalCheck, scope, e.Clock.Now(), e.Hooks.OnIssue)
	e.Log.Info("settlement pass started", zap.String("passId", rb.passID), zap.String("mode", string(rb.mode)),
		zap.String("from", scope.From), zap.String("to", scope.To))

	bets, err := e.Store.ListBets(ctx, repo.BetFilter{Status: model.StatusPending, Scope: scope})
	if err != nil {
		return Report{}, fmt.Errorf("list pending bets: %w", err)
	}
	rb.add(func(r *Report) { r.Scanned = len(bets) })

	slate := newGameSlate(e.Provider)
	e.forEach(ctx, bets, func(ctx context.Context, b model.Bet) {
		e.checkBet(ctx, rb, slate, b)
	})
	return e.finish(rb), nil
}

// checkBet avalia todas as pernas (em paralelo) e grava a aposta apenas se ela ficar terminal.
// Uma perna sem jogo final mantém a aposta inteira pendente e nada é gravado.
func (e *Engine) checkBet(ctx context.Context, rb *reportBuilder, slate *gameSlate, b model.Bet) {
	if b.Status != model.StatusPending {
		return
	}
	updated := b.Clone()
	evals := make([]legEval, len(updated.Legs))

	var wg sync.WaitGroup
	for i, l := range updated.Legs {
		if l.LegResult == model.OutcomeVoid {
			// void é definitivo: nunca é reavaliado
			evals[i] = legEval{outcome: model.OutcomeVoid, actual: l.ActualValue}
			continue
		}
		wg.Add(1)
		go func(i int, l model.Leg) {
			defer wg.Done()
			evals[i] = e.evaluateLeg(ctx, slate, b, l)
		}(i, l)
	}
	wg.Wait()

	for i, ev := range evals {
		updated.Legs[i].LegResult = ev.outcome
		updated.Legs[i].ActualValue = ev.actual
		if ev.issue != nil {
			rb.issue(*ev.issue)
		}
	}

	res := parlay.Settle(&updated)
	if res == model.OutcomePending {
		if parlay.DecidedLoss(parlay.LegOutcomes(updated)) {
			e.Log.Debug("parlay already lost, waiting on remaining legs", zap.String("betId", b.ID))
		}
		rb.add(func(r *Report) { r.StillPending++ })
		return
	}

	if e.save(ctx, rb, b, updated) {
		rb.add(func(r *Report) { r.Settled++ })
		e.Log.Info("bet settled", zap.String("betId", b.ID), zap.String("result", string(res)), zap.Int("legs", len(updated.Legs)))
	}
}
