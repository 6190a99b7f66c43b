package resolver

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
	"github.com/radieske/bet-settlement-engine/internal/settlement/provider"
	"github.com/radieske/bet-settlement-engine/internal/settlement/teams"
)

var (
	// ErrGameNotFound: nenhuma estratégia (times nem varredura por jogador) achou o jogo
	ErrGameNotFound = errors.New("game not found")
	// ErrGameNotFinal: jogo achado mas ainda não encerrado; a perna continua pendente
	ErrGameNotFinal = errors.New("game not final")
)

// Strategy identifica como o jogo foi resolvido
type Strategy string

const (
	ByTeams      Strategy = "teams"
	ByPlayerScan Strategy = "player_scan"
)

// BoxScoreFetcher é o pedaço do provedor usado na varredura de fallback
type BoxScoreFetcher interface {
	GetPlayerBoxScore(ctx context.Context, gameID, playerID string) (*model.BoxScoreStat, error)
}

// Resolution é o jogo encontrado para uma perna.
// Box vem preenchido quando o fallback já buscou o box score do jogador.
type Resolution struct {
	Game     model.Game
	Strategy Strategy
	Box      *model.BoxScoreStat
}

// Resolver mapeia uma perna para exatamente um jogo do provedor
type Resolver struct {
	Teams *teams.Directory
	Boxes BoxScoreFetcher
}

// New cria o resolver com o diretório de times e o provedor de box scores
func New(dir *teams.Directory, boxes BoxScoreFetcher) *Resolver {
	if dir == nil {
		dir = teams.NewDirectory(nil)
	}
	return &Resolver{Teams: dir, Boxes: boxes}
}

// Resolve encontra o jogo da perna entre os candidatos.
//
// Primeiro compara {team, opponent} com {home, away} como conjunto (abreviação ou nome completo).
// Se falhar e for prop de jogador, varre os jogos da data pedindo o box score do jogador:
// o primeiro jogo com box score não vazio é o jogo da perna. Props de jogo não têm fallback.
//
// Um jogo achado mas não final retorna a Resolution junto com ErrGameNotFinal.
func (r *Resolver) Resolve(ctx context.Context, leg model.Leg, date string, candidates []model.Game) (Resolution, error) {
	onDate := make([]model.Game, 0, len(candidates))
	for _, g := range candidates {
		if sameDay(g.Date, date) {
			onDate = append(onDate, g)
		}
	}

	if g, ok := r.matchTeams(leg, onDate); ok {
		return final(Resolution{Game: g, Strategy: ByTeams})
	}

	if leg.IsGameProp || strings.TrimSpace(leg.PlayerID) == "" || r.Boxes == nil {
		return Resolution{}, fmt.Errorf("%w: %s vs %s on %s", ErrGameNotFound, leg.Team, leg.Opponent, date)
	}

	res, err := r.scanForPlayer(ctx, leg.PlayerID, onDate)
	if err != nil {
		return Resolution{}, err
	}
	if res == nil {
		return Resolution{}, fmt.Errorf("%w: player %s on %s", ErrGameNotFound, leg.PlayerID, date)
	}
	return final(*res)
}

func final(res Resolution) (Resolution, error) {
	if !res.Game.IsFinal() {
		return res, fmt.Errorf("%w: game %s status %q", ErrGameNotFinal, res.Game.ID, res.Game.Status)
	}
	return res, nil
}

// matchTeams aplica a estratégia primária.
// Sem adversário informado, aceita o único jogo da data em que o time aparece.
func (r *Resolver) matchTeams(leg model.Leg, games []model.Game) (model.Game, bool) {
	if strings.TrimSpace(leg.Team) == "" {
		return model.Game{}, false
	}
	if strings.TrimSpace(leg.Opponent) == "" {
		var found []model.Game
		for _, g := range games {
			if r.Teams.Same(leg.Team, g.HomeTeam) || r.Teams.Same(leg.Team, g.AwayTeam) {
				found = append(found, g)
			}
		}
		if len(found) == 1 {
			return found[0], true
		}
		return model.Game{}, false
	}
	for _, g := range games {
		direct := r.Teams.Same(leg.Team, g.HomeTeam) && r.Teams.Same(leg.Opponent, g.AwayTeam)
		swapped := r.Teams.Same(leg.Team, g.AwayTeam) && r.Teams.Same(leg.Opponent, g.HomeTeam)
		if direct || swapped {
			return g, true
		}
	}
	return model.Game{}, false
}

// scanForPlayer ignora os times e pergunta ao provedor jogo a jogo.
// Erros de provedor sem nenhum acerto sobem para o chamador (perna fica pendente, não vira NotFound).
func (r *Resolver) scanForPlayer(ctx context.Context, playerID string, games []model.Game) (*Resolution, error) {
	var firstErr error
	for _, g := range games {
		box, err := r.Boxes.GetPlayerBoxScore(ctx, g.ID, playerID)
		if err != nil {
			if errors.Is(err, provider.ErrNotFound) {
				continue
			}
			if ctx.Err() != nil {
				return nil, err
			}
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		if box == nil {
			continue
		}
		return &Resolution{Game: g, Strategy: ByPlayerScan, Box: box}, nil
	}
	if firstErr != nil {
		return nil, fmt.Errorf("player scan: %w", firstErr)
	}
	return nil, nil
}

// TeamIsHome indica de que lado do placar está o time da perna
func (r *Resolver) TeamIsHome(leg model.Leg, g model.Game) bool {
	return r.Teams.Same(leg.Team, g.HomeTeam)
}

// sameDay compara só a parte YYYY-MM-DD (provedores às vezes mandam data com hora)
func sameDay(gameDate, date string) bool {
	if len(gameDate) < len(model.DateLayout) {
		return gameDate == date
	}
	return gameDate[:len(model.DateLayout)] == date
}
