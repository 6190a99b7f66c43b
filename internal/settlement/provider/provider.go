package provider

import (
	"context"
	"errors"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

var (
	// ErrNotFound: o provedor não tem box score para o par (jogo, jogador)
	ErrNotFound = errors.New("not found")
	// ErrUnavailable: falha de rede, timeout ou resposta inesperada do provedor
	ErrUnavailable = errors.New("stat provider unavailable")
)

// StatProvider é o colaborador externo que fornece jogos e box scores.
// Os objetos retornados são somente leitura.
type StatProvider interface {
	ListGames(ctx context.Context, date string) ([]model.Game, error)
	GetPlayerBoxScore(ctx context.Context, gameID, playerID string) (*model.BoxScoreStat, error)
}
