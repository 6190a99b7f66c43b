package dto

import "github.com/radieske/bet-settlement-engine/internal/settlement/model"

// ScopeRequest é o corpo de /settlement/check, /recalculate e /reset.
// Datas no formato YYYY-MM-DD; vazias significam sem limite (reset exige From).
type ScopeRequest struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

func (r ScopeRequest) Scope() model.DateScope {
	return model.DateScope{From: r.From, To: r.To}
}
