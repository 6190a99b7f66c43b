package dto

import "github.com/radieske/bet-settlement-engine/internal/settlement/model"

type ErrorResponse struct {
	Error string `json:"error"`
}

// BetResponse é a aposta com as pernas, como gravada
type BetResponse struct {
	model.Bet
	Settled bool `json:"settled"`
}

func NewBetResponse(b model.Bet) BetResponse {
	return BetResponse{Bet: b, Settled: b.Status == model.StatusCompleted}
}
