package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/radieske/bet-settlement-engine/internal/settlement/evaluator"
	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	"github.com/radieske/bet-settlement-engine/internal/settlement/provider"
	"github.com/radieske/bet-settlement-engine/internal/settlement/resolver"
	"github.com/radieske/bet-settlement-engine/internal/settlement/stats"
)

// gameSlate memoriza listGames(date) durante uma execução.
// Apostas do mesmo dia compartilham uma única chamada; erros não são memorizados.
type gameSlate struct {
	prov  provider.StatProvider
	sf    singleflight.Group
	mu    sync.Mutex
	games map[string][]model.Game
}

func newGameSlate(p provider.StatProvider) *gameSlate {
	return &gameSlate{prov: p, games: make(map[string][]model.Game)}
}

func (s *gameSlate) get(ctx context.Context, date string) ([]model.Game, error) {
	s.mu.Lock()
	if g, ok := s.games[date]; ok {
		s.mu.Unlock()
		return g, nil
	}
	s.mu.Unlock()

	v, err, _ := s.sf.Do(date, func() (any, error) {
		s.mu.Lock()
		if g, ok := s.games[date]; ok {
			s.mu.Unlock()
			return g, nil
		}
		s.mu.Unlock()
		games, err := s.prov.ListGames(ctx, date)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.games[date] = games
		s.mu.Unlock()
		return games, nil
	})
	if err != nil {
		return nil, err
	}
	return v.([]model.Game), nil
}

// legEval é o resultado da avaliação de uma perna.
// issue != nil significa que a perna não pôde ser resolvida e continua pendente.
type legEval struct {
	outcome model.Outcome
	actual  *float64
	issue   *Issue
}

func pendingWith(b model.Bet, l model.Leg, kind IssueKind, err error) legEval {
	return legEval{
		outcome: model.OutcomePending,
		issue:   &Issue{BetID: b.ID, LegID: l.ID, Kind: kind, Detail: err.Error()},
	}
}

// evaluateLeg resolve o jogo, extrai a estatística e aplica a regra da linha
func (e *Engine) evaluateLeg(ctx context.Context, slate *gameSlate, b model.Bet, l model.Leg) legEval {
	log := e.Log.With(zap.String("betId", b.ID), zap.String("legId", l.ID))

	var stat stats.StatType
	if !l.IsGameProp {
		st, err := stats.ParseStatType(l.StatType)
		if err != nil {
			// erro de cadastro: alto e claro, só esta perna falha
			log.Error("unknown stat type", zap.String("statType", l.StatType), zap.Error(err))
			return pendingWith(b, l, IssueUnknownStatType, err)
		}
		stat = st
	}

	date := l.DateFor(b)
	games, err := slate.get(ctx, date)
	if err != nil {
		log.Warn("list games failed", zap.String("date", date), zap.Error(err))
		return pendingWith(b, l, IssueProviderUnavailable, err)
	}

	res, err := e.Resolver.Resolve(ctx, l, date, games)
	switch {
	case errors.Is(err, resolver.ErrGameNotFinal):
		log.Debug("game not final", zap.String("gameId", res.Game.ID), zap.String("status", res.Game.Status))
		return pendingWith(b, l, IssueNotFinal, err)
	case errors.Is(err, resolver.ErrGameNotFound):
		log.Warn("game not found", zap.String("team", l.Team), zap.String("opponent", l.Opponent), zap.String("date", date))
		return pendingWith(b, l, IssueNotFound, err)
	case err != nil:
		log.Warn("resolve game failed", zap.Error(err))
		return pendingWith(b, l, IssueProviderUnavailable, err)
	}

	if l.IsGameProp {
		return e.evaluateGameProp(log, b, l, res.Game)
	}
	return e.evaluatePlayerProp(ctx, log, b, l, stat, res, games)
}

func (e *Engine) evaluateGameProp(log *zap.Logger, b model.Bet, l model.Leg, g model.Game) legEval {
	switch strings.ToLower(strings.TrimSpace(l.Market)) {
	case "", "moneyline", "ml", "h2h":
	default:
		err := fmt.Errorf("unsupported game market %q", l.Market)
		log.Error("invalid leg", zap.Error(err))
		return pendingWith(b, l, IssueInvalidLeg, err)
	}
	out, err := evaluator.Moneyline(g, e.Resolver.TeamIsHome(l, g), e.Cfg.AllowDraws)
	if err != nil {
		log.Error("unexpected draw", zap.String("gameId", g.ID), zap.Error(err))
		return pendingWith(b, l, IssueUnexpectedDraw, err)
	}
	return legEval{outcome: out}
}

func (e *Engine) evaluatePlayerProp(ctx context.Context, log *zap.Logger, b model.Bet, l model.Leg, stat stats.StatType, res resolver.Resolution, games []model.Game) legEval {
	box := res.Box
	if box == nil {
		var err error
		box, err = e.Provider.GetPlayerBoxScore(ctx, res.Game.ID, l.PlayerID)
		if errors.Is(err, provider.ErrNotFound) {
			// o time da perna pode estar desatualizado: procura o jogador nos outros jogos do dia
			others := make([]model.Game, 0, len(games))
			for _, g := range games {
				if g.ID != res.Game.ID {
					others = append(others, g)
				}
			}
			alt, serr := e.Resolver.Resolve(ctx, model.Leg{PlayerID: l.PlayerID}, l.DateFor(b), others)
			switch {
			case serr == nil:
				log.Info("player found in another game", zap.String("gameId", alt.Game.ID))
				box, err = alt.Box, nil
			case errors.Is(serr, resolver.ErrGameNotFinal):
				return pendingWith(b, l, IssueNotFinal, serr)
			case errors.Is(serr, resolver.ErrGameNotFound):
				box, err = nil, nil
			default:
				return pendingWith(b, l, IssueProviderUnavailable, serr)
			}
		}
		if err != nil {
			log.Warn("box score fetch failed", zap.String("gameId", res.Game.ID), zap.Error(err))
			return pendingWith(b, l, IssueProviderUnavailable, err)
		}
	}
	if box == nil || !box.Played() {
		// jogo final sem participação do jogador: perna anulada
		log.Info("player did not play, leg void", zap.String("playerId", l.PlayerID), zap.String("gameId", res.Game.ID))
		return legEval{outcome: model.OutcomeVoid}
	}

	actual, err := stats.Extract(stat, *box)
	if err != nil {
		log.Error("extract stat failed", zap.Error(err))
		return pendingWith(b, l, IssueUnknownStatType, err)
	}
	out, err := evaluator.Evaluate(actual, l.Line, l.OverUnder)
	if err != nil {
		log.Error("invalid leg", zap.Error(err))
		return pendingWith(b, l, IssueInvalidLeg, err)
	}
	return legEval{outcome: out, actual: &actual}
}
