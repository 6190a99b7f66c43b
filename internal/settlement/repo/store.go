package repo

import (
	"context"
	"errors"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

var (
	// ErrBetNotFound é retornado quando a aposta não existe no store
	ErrBetNotFound = errors.New("bet not found")
	// ErrConflict indica que a aposta mudou depois de lida (outra passada já gravou)
	ErrConflict = errors.New("bet changed since it was read")
)

// Prior é o estado da aposta no momento da leitura.
// SaveSettlement só grava se a aposta ainda estiver nele.
type Prior struct {
	Status model.Status
	Result model.Outcome
}

// PriorOf captura o estado atual de b
func PriorOf(b model.Bet) Prior { return Prior{Status: b.Status, Result: b.Result} }

// BetFilter seleciona apostas por status e intervalo de data do jogo
type BetFilter struct {
	Status model.Status // vazio = qualquer status
	Scope  model.DateScope
}

// Store é o único recurso compartilhado da liquidação.
// SaveSettlement substitui atomicamente status/result/realizedValue da aposta
// e legResult/actualValue de cada perna: nenhum leitor vê um sem o outro.
// Se a aposta não estiver mais em prior, nada é gravado e o retorno é ErrConflict.
type Store interface {
	ListBets(ctx context.Context, f BetFilter) ([]model.Bet, error)
	GetBet(ctx context.Context, id string) (model.Bet, error)
	SaveSettlement(ctx context.Context, prior Prior, b model.Bet) error
}
