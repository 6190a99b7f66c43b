package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/evaluator"
	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	"github.com/radieske/bet-settlement-engine/internal/settlement/parlay"
	"github.com/radieske/bet-settlement-engine/internal/settlement/repo"
)

// RunRecalculation reavalia apostas concluídas com linha inteira pela regra atual (empate = vitória).
// Só grava quando a decisão muda; apostas void e apostas apenas com linhas fracionárias nunca são tocadas.
// Rodar duas vezes seguidas não gera mudança na segunda.
func (e *Engine) RunRecalculation(ctx context.Context, scope model.DateScope) (Report, error) {
	if err := scope.Validate(); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidScope, err)
	}
	rb := newReport(ModeRecalculation, scope, e.Clock.Now(), e.Hooks.OnIssue)
	e.Log.Info("settlement pass started", zap.String("passId", rb.passID), zap.String("mode", string(rb.mode)),
		zap.String("from", scope.From), zap.String("to", scope.To))

	bets, err := e.Store.ListBets(ctx, repo.BetFilter{Status: model.StatusCompleted, Scope: scope})
	if err != nil {
		return Report{}, fmt.Errorf("list completed bets: %w", err)
	}
	rb.add(func(r *Report) { r.Scanned = len(bets) })

	slate := newGameSlate(e.Provider)
	e.forEach(ctx, bets, func(ctx context.Context, b model.Bet) {
		e.recalcBet(ctx, rb, slate, b)
	})
	return e.finish(rb), nil
}

// affectedByPushRule indica se a perna é afetada pela regra de arredondamento
func affectedByPushRule(l model.Leg) bool {
	if l.IsGameProp {
		return false
	}
	if l.LegResult != model.OutcomeWin && l.LegResult != model.OutcomeLoss {
		return false
	}
	return evaluator.IsWholeLine(l.Line)
}

func (e *Engine) recalcBet(ctx context.Context, rb *reportBuilder, slate *gameSlate, b model.Bet) {
	if b.Status != model.StatusCompleted || b.Result == model.OutcomeVoid {
		return
	}
	updated := b.Clone()
	touched := false
	for i, l := range updated.Legs {
		if !affectedByPushRule(l) {
			continue
		}
		touched = true

		var actual float64
		if l.ActualValue != nil {
			actual = *l.ActualValue
		} else {
			// valor realizado não foi guardado na época: busca de novo no provedor
			ev := e.evaluateLeg(ctx, slate, b, l)
			if ev.issue != nil {
				rb.issue(*ev.issue)
				return
			}
			if ev.actual == nil {
				rb.issue(Issue{BetID: b.ID, LegID: l.ID, Kind: IssueNotFound, Detail: "no realized value available"})
				return
			}
			actual = *ev.actual
		}

		out, err := evaluator.Evaluate(actual, l.Line, l.OverUnder)
		if err != nil {
			rb.issue(Issue{BetID: b.ID, LegID: l.ID, Kind: IssueInvalidLeg, Detail: err.Error()})
			return
		}
		v := actual
		updated.Legs[i].LegResult = out
		updated.Legs[i].ActualValue = &v
	}
	if !touched {
		return
	}

	res := parlay.Settle(&updated)
	if res == model.OutcomePending {
		rb.issue(Issue{BetID: b.ID, Kind: IssueInvalidLeg, Detail: "completed bet has pending legs"})
		return
	}
	if !decisionChanged(b, updated) {
		return
	}
	if e.save(ctx, rb, b, updated) {
		rb.add(func(r *Report) { r.Changed++ })
		e.Log.Info("bet recalculated",
			zap.String("betId", b.ID),
			zap.String("from", string(b.Result)),
			zap.String("to", string(res)),
		)
	}
}

// decisionChanged compara o resultado da aposta e de cada perna.
// Preencher um actualValue ausente sem mudar decisão não conta como mudança.
func decisionChanged(before, after model.Bet) bool {
	if before.Result != after.Result {
		return true
	}
	for i := range before.Legs {
		if before.Legs[i].LegResult != after.Legs[i].LegResult {
			return true
		}
	}
	return false
}
