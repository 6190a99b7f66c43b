package evaluator

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

var (
	// ErrInvalidDirection indica over/under fora do conjunto conhecido
	ErrInvalidDirection = errors.New("invalid over/under direction")
	// ErrUnexpectedDraw indica empate em um esporte que não admite empate
	ErrUnexpectedDraw = errors.New("unexpected draw")
)

// IsWholeLine indica se a linha é inteira (line mod 1 == 0).
// Decimal evita que 7.0000000001 vindo de um float seja tratado como inteiro ou vice-versa.
func IsWholeLine(line float64) bool {
	return decimal.NewFromFloat(line).IsInteger()
}

// Evaluate decide win/loss de uma prop de estatística.
//
// Linhas fracionárias nunca empatam: over vence se actual > line, under se actual < line.
// Linhas inteiras admitem empate e o empate conta como vitória para os dois lados
// (over vence se actual >= line, under se actual <= line).
func Evaluate(actual, line float64, ou model.OverUnder) (model.Outcome, error) {
	a := decimal.NewFromFloat(actual)
	l := decimal.NewFromFloat(line)
	whole := l.IsInteger()

	var win bool
	switch ou {
	case model.Over:
		if whole {
			win = a.GreaterThanOrEqual(l)
		} else {
			win = a.GreaterThan(l)
		}
	case model.Under:
		if whole {
			win = a.LessThanOrEqual(l)
		} else {
			win = a.LessThan(l)
		}
	default:
		return model.OutcomePending, fmt.Errorf("%w: %q", ErrInvalidDirection, string(ou))
	}

	if win {
		return model.OutcomeWin, nil
	}
	return model.OutcomeLoss, nil
}

// Moneyline decide uma prop de jogo pela margem binária do placar.
// team é o lado apostado; teamIsHome diz de qual lado do placar ele está.
// Margem zero não é empate de linha: é um empate literal, void se o esporte admite, senão erro.
func Moneyline(g model.Game, teamIsHome, allowDraws bool) (model.Outcome, error) {
	margin := g.HomeScore - g.AwayScore
	if !teamIsHome {
		margin = -margin
	}
	switch {
	case margin > 0:
		return model.OutcomeWin, nil
	case margin < 0:
		return model.OutcomeLoss, nil
	case allowDraws:
		return model.OutcomeVoid, nil
	default:
		return model.OutcomePending, fmt.Errorf("%w: game %s ended %d-%d", ErrUnexpectedDraw, g.ID, g.HomeScore, g.AwayScore)
	}
}
