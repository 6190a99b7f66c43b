package repo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

// Memory é um Store em memória, usado em testes e no ambiente local
type Memory struct {
	mu   sync.RWMutex
	bets map[string]model.Bet
	now  func() time.Time
}

// NewMemory cria o store com as apostas iniciais
func NewMemory(bets ...model.Bet) *Memory {
	m := &Memory{bets: make(map[string]model.Bet, len(bets)), now: time.Now}
	m.Put(bets...)
	return m
}

// Put insere ou substitui apostas
func (m *Memory) Put(bets ...model.Bet) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range bets {
		m.bets[b.ID] = b.Clone()
	}
}

// ListBets retorna cópias ordenadas por data do jogo e id
func (m *Memory) ListBets(_ context.Context, f BetFilter) ([]model.Bet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]model.Bet, 0, len(m.bets))
	for _, b := range m.bets {
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		if !f.Scope.Contains(b.GameDate) {
			continue
		}
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].GameDate != out[j].GameDate {
			return out[i].GameDate < out[j].GameDate
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// GetBet retorna uma cópia da aposta
func (m *Memory) GetBet(_ context.Context, id string) (model.Bet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bets[id]
	if !ok {
		return model.Bet{}, ErrBetNotFound
	}
	return b.Clone(), nil
}

// SaveSettlement compara e grava os campos de resultado sob o mesmo lock
func (m *Memory) SaveSettlement(_ context.Context, prior Prior, b model.Bet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.bets[b.ID]
	if !ok {
		return ErrBetNotFound
	}
	if PriorOf(cur) != prior {
		return ErrConflict
	}
	upd := b.Clone()
	cur.Status = upd.Status
	cur.Result = upd.Result
	cur.RealizedValue = upd.RealizedValue
	cur.UpdatedAt = m.now().UTC()

	results := make(map[string]model.Leg, len(upd.Legs))
	for _, l := range upd.Legs {
		results[l.ID] = l
	}
	legs := make([]model.Leg, len(cur.Legs))
	for i, l := range cur.Legs {
		if u, ok := results[l.ID]; ok {
			l.LegResult = u.LegResult
			l.ActualValue = u.ActualValue
		}
		legs[i] = l
	}
	cur.Legs = legs
	m.bets[b.ID] = cur
	return nil
}
