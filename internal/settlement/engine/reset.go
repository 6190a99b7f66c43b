package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	"github.com/radieske/bet-settlement-engine/internal/settlement/repo"
)

// ResetBets é a rota administrativa de reparo: volta para pending as apostas concluídas
// (win/loss) do intervalo, para que a checagem normal as refaça depois.
// Pernas void continuam void; apostas void não são tocadas.
// to vazio significa "só o dia from".
func (e *Engine) ResetBets(ctx context.Context, from, to string) (Report, error) {
	if from == "" {
		return Report{}, fmt.Errorf("%w: reset requires a start date", ErrInvalidScope)
	}
	if to == "" {
		to = from
	}
	scope := model.DateScope{From: from, To: to}
	if err := scope.Validate(); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrInvalidScope, err)
	}
	rb := newReport(ModeReset, scope, e.Clock.Now(), e.Hooks.OnIssue)
	e.Log.Warn("bet reset requested", zap.String("passId", rb.passID), zap.String("from", from), zap.String("to", to))

	bets, err := e.Store.ListBets(ctx, repo.BetFilter{Status: model.StatusCompleted, Scope: scope})
	if err != nil {
		return Report{}, fmt.Errorf("list completed bets: %w", err)
	}
	rb.add(func(r *Report) { r.Scanned = len(bets) })

	e.forEach(ctx, bets, func(ctx context.Context, b model.Bet) {
		if b.Result != model.OutcomeWin && b.Result != model.OutcomeLoss {
			return
		}
		updated := resetBet(b)
		if e.save(ctx, rb, b, updated) {
			rb.add(func(r *Report) { r.Reset++ })
			e.Log.Info("bet reset", zap.String("betId", b.ID), zap.String("previous", string(b.Result)))
		}
	})
	return e.finish(rb), nil
}

func resetBet(b model.Bet) model.Bet {
	out := b.Clone()
	out.Status = model.StatusPending
	out.Result = model.OutcomePending
	out.RealizedValue = nil
	for i, l := range out.Legs {
		if l.LegResult == model.OutcomeVoid {
			continue
		}
		out.Legs[i].LegResult = model.OutcomePending
		out.Legs[i].ActualValue = nil
	}
	return out
}
