package parlay

import (
	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

// Aggregate combina os resultados das pernas no resultado da aposta.
// Aposta simples é um parlay de tamanho 1.
//
//   - todas void (ou nenhuma perna)   -> void
//   - alguma não-void ainda pendente  -> pending (nunca resolve parcialmente)
//   - todas as não-void win           -> win
//   - caso contrário                  -> loss
func Aggregate(legs []model.Outcome) model.Outcome {
	nonVoid := 0
	pending := false
	for _, o := range legs {
		switch o {
		case model.OutcomeVoid:
			continue
		case model.OutcomeWin, model.OutcomeLoss:
		default:
			// qualquer valor fora do conjunto terminal é tratado como pendente
			pending = true
		}
		nonVoid++
	}
	if nonVoid == 0 {
		return model.OutcomeVoid
	}
	if pending {
		return model.OutcomePending
	}
	for _, o := range legs {
		// primeira derrota decide
		if o == model.OutcomeLoss {
			return model.OutcomeLoss
		}
	}
	return model.OutcomeWin
}

// DecidedLoss indica se alguma perna já perdeu, independentemente das pendentes.
// Serve só para diagnóstico: a aposta continua pending até todas as pernas resolverem.
func DecidedLoss(legs []model.Outcome) bool {
	for _, o := range legs {
		if o == model.OutcomeLoss {
			return true
		}
	}
	return false
}

// LegOutcomes extrai os resultados das pernas na ordem da aposta
func LegOutcomes(b model.Bet) []model.Outcome {
	out := make([]model.Outcome, len(b.Legs))
	for i, l := range b.Legs {
		out[i] = l.LegResult
	}
	return out
}

// Settle aplica o resultado agregado aos campos da aposta.
// Status, Result e RealizedValue mudam juntos para manter o invariante.
func Settle(b *model.Bet) model.Outcome {
	res := Aggregate(LegOutcomes(*b))
	b.Result = res
	b.RealizedValue = model.RealizedValueFor(res)
	if res == model.OutcomePending {
		b.Status = model.StatusPending
	} else {
		b.Status = model.StatusCompleted
	}
	return res
}
