package events

import "time"

// LegSettled é o resultado de uma perna dentro de BetSettled
type LegSettled struct {
	LegID       string   `json:"legId"`
	Result      string   `json:"result"` // pending | win | loss | void
	ActualValue *float64 `json:"actualValue,omitempty"`
}

// Evento publicado no tópico "bet_settled" sempre que o resultado de uma aposta é gravado
type BetSettled struct {
	EventID       string       `json:"eventId"`
	BetID         string       `json:"betId"`
	Status        string       `json:"status"` // pending | completed
	Result        string       `json:"result"`
	RealizedValue *float64     `json:"realizedValue"`
	Mode          string       `json:"mode"` // normal_check | recalculation | reset
	PassID        string       `json:"passId"`
	Legs          []LegSettled `json:"legs"`
	Ts            time.Time    `json:"ts"`
}
