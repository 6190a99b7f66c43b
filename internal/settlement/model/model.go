package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout é o formato de data usado em apostas, jogos e escopos (YYYY-MM-DD)
const DateLayout = "2006-01-02"

// Status é o ciclo de vida da aposta
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// Outcome é o resultado categórico de uma aposta ou de uma perna
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeWin     Outcome = "win"
	OutcomeLoss    Outcome = "loss"
	OutcomeVoid    Outcome = "void"
)

// Terminal indica se o resultado já é definitivo (win, loss ou void)
func (o Outcome) Terminal() bool {
	return o == OutcomeWin || o == OutcomeLoss || o == OutcomeVoid
}

// OverUnder é a direção escolhida sobre a linha
type OverUnder string

const (
	Over  OverUnder = "over"
	Under OverUnder = "under"
)

// Bet é uma aposta simples (1 perna) ou múltipla (parlay, N pernas).
// Invariante: Result != pending <=> Status == completed; RealizedValue == nil <=> Result == pending.
type Bet struct {
	ID            string    `json:"id"`
	PlacedDate    string    `json:"placedDate"`
	GameDate      string    `json:"gameDate"`
	Legs          []Leg     `json:"legs"`
	Status        Status    `json:"status"`
	Result        Outcome   `json:"result"`
	RealizedValue *float64  `json:"realizedValue"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// Leg é uma proposição dentro da aposta.
// Props de jogador usam PlayerID/StatType/Line/OverUnder; props de jogo usam Team/Opponent/Market.
type Leg struct {
	ID         string    `json:"id"`
	IsGameProp bool      `json:"isGameProp"`
	PlayerID   string    `json:"playerId,omitempty"`
	PlayerName string    `json:"playerName,omitempty"`
	Team       string    `json:"team"`
	Opponent   string    `json:"opponent"`
	StatType   string    `json:"statType,omitempty"`
	Line       float64   `json:"line,omitempty"`
	OverUnder  OverUnder `json:"overUnder,omitempty"`
	Market     string    `json:"market,omitempty"`
	GameDate   string    `json:"gameDate,omitempty"` // vazio = herda a data da aposta
	LegResult  Outcome   `json:"legResult"`
	// ActualValue é o valor realizado da estatística (nil enquanto pendente ou para props de jogo)
	ActualValue *float64 `json:"actualValue,omitempty"`
}

// DateFor retorna a data do jogo da perna, herdando da aposta quando ausente
func (l Leg) DateFor(b Bet) string {
	if strings.TrimSpace(l.GameDate) != "" {
		return l.GameDate
	}
	return b.GameDate
}

// Game é um jogo vindo do provedor de estatísticas (somente leitura)
type Game struct {
	ID        string `json:"id"`
	HomeTeam  string `json:"homeTeam"`
	AwayTeam  string `json:"awayTeam"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
}

// IsFinal é o único sinal confiável de jogo encerrado: status contém "final" (sem diferenciar caixa)
func (g Game) IsFinal() bool {
	return strings.Contains(strings.ToLower(g.Status), "final")
}

// BoxScoreStat são as estatísticas de um jogador em um jogo.
// Estatísticas compostas não são armazenadas; são calculadas na leitura.
type BoxScoreStat struct {
	GameID        string  `json:"gameId"`
	PlayerID      string  `json:"playerId"`
	Pts           float64 `json:"pts"`
	Reb           float64 `json:"reb"`
	Ast           float64 `json:"ast"`
	Stl           float64 `json:"stl"`
	Blk           float64 `json:"blk"`
	Fg3m          float64 `json:"fg3m"`
	MinutesPlayed float64 `json:"minutesPlayed"`
}

// Played indica se o jogador efetivamente entrou em quadra
func (s BoxScoreStat) Played() bool {
	if s.MinutesPlayed > 0 {
		return true
	}
	return s.Pts != 0 || s.Reb != 0 || s.Ast != 0 || s.Stl != 0 || s.Blk != 0 || s.Fg3m != 0
}

// DateScope restringe uma operação a um intervalo de datas de jogo (inclusivo).
// Campos vazios significam "sem limite" naquele lado.
type DateScope struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

// Validate confere o formato das datas e a ordem do intervalo
func (s DateScope) Validate() error {
	if s.From != "" {
		if _, err := time.Parse(DateLayout, s.From); err != nil {
			return fmt.Errorf("invalid from date %q: %w", s.From, err)
		}
	}
	if s.To != "" {
		if _, err := time.Parse(DateLayout, s.To); err != nil {
			return fmt.Errorf("invalid to date %q: %w", s.To, err)
		}
	}
	if s.From != "" && s.To != "" && s.From > s.To {
		return fmt.Errorf("from %s after to %s", s.From, s.To)
	}
	return nil
}

// Contains indica se a data (YYYY-MM-DD) está dentro do escopo.
// Comparação léxica funciona porque o layout é de largura fixa.
func (s DateScope) Contains(date string) bool {
	if s.From != "" && date < s.From {
		return false
	}
	if s.To != "" && date > s.To {
		return false
	}
	return true
}

// RealizedValueFor retorna o indicador numérico de vitória (1 win, 0 caso contrário, nil pendente)
func RealizedValueFor(o Outcome) *float64 {
	switch o {
	case OutcomeWin:
		v := 1.0
		return &v
	case OutcomeLoss, OutcomeVoid:
		v := 0.0
		return &v
	default:
		return nil
	}
}

// Clone devolve uma cópia profunda da aposta (pernas e ponteiros incluídos)
func (b Bet) Clone() Bet {
	out := b
	if b.RealizedValue != nil {
		v := *b.RealizedValue
		out.RealizedValue = &v
	}
	out.Legs = make([]Leg, len(b.Legs))
	for i, l := range b.Legs {
		if l.ActualValue != nil {
			v := *l.ActualValue
			l.ActualValue = &v
		}
		out.Legs[i] = l
	}
	return out
}
