package simulator

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

const (
	StatusScheduled  = "Scheduled"
	StatusInProgress = "In Progress"
	StatusFinal      = "Final"
	StatusFinalOT    = "Final/OT"
)

// Player é um jogador do catálogo; Out = não entra em quadra (DNP)
type Player struct {
	ID   string
	Team string
	Out  bool
}

// Matchup é um jogo do catálogo (times em abreviação oficial)
type Matchup struct {
	Home, Away string
	StartTick  int // ticks até o início
	LiveTicks  int // ticks de jogo
}

// Catalog é o jogo/elenco fixo usado pelo simulador
var Catalog = []Matchup{
	{Home: "BOS", Away: "NYK", StartTick: 1, LiveTicks: 6},
	{Home: "LAL", Away: "GSW", StartTick: 2, LiveTicks: 8},
	{Home: "DEN", Away: "MIA", StartTick: 4, LiveTicks: 6},
}

var Roster = []Player{
	{ID: "towns", Team: "NYK"}, {ID: "brunson", Team: "NYK"}, {ID: "hart", Team: "NYK"}, {ID: "robinson", Team: "NYK", Out: true},
	{ID: "tatum", Team: "BOS"}, {ID: "brown", Team: "BOS"}, {ID: "white", Team: "BOS"},
	{ID: "james", Team: "LAL"}, {ID: "davis", Team: "LAL"},
	{ID: "curry", Team: "GSW"}, {ID: "green", Team: "GSW"},
	{ID: "jokic", Team: "DEN"}, {ID: "murray", Team: "DEN"},
	{ID: "butler", Team: "MIA"}, {ID: "adebayo", Team: "MIA"},
}

type simGame struct {
	model.Game
	m     Matchup
	boxes map[string]*model.BoxScoreStat
}

// Slate guarda os jogos simulados de um dia e avança o relógio de jogo por tick
type Slate struct {
	mu    sync.RWMutex
	date  string
	tick  int
	rnd   *rand.Rand
	games []*simGame
	team  map[string]string // jogador -> time
}

func NewSlate(date string, seed int64, matchups []Matchup, roster []Player) *Slate {
	s := &Slate{date: date, rnd: rand.New(rand.NewSource(seed)), team: make(map[string]string, len(roster))}
	for _, p := range roster {
		s.team[p.ID] = p.Team
	}
	for i, m := range matchups {
		g := &simGame{
			Game: model.Game{
				ID:       fmt.Sprintf("%s-%03d", date, i+1),
				HomeTeam: m.Home,
				AwayTeam: m.Away,
				Date:     date,
				Status:   StatusScheduled,
			},
			m:     m,
			boxes: make(map[string]*model.BoxScoreStat),
		}
		for _, p := range roster {
			if p.Team != m.Home && p.Team != m.Away {
				continue
			}
			b := &model.BoxScoreStat{GameID: g.ID, PlayerID: p.ID}
			if p.Out {
				b.MinutesPlayed = -1 // fora do jogo: aparece zerado
			}
			g.boxes[p.ID] = b
		}
		s.games = append(s.games, g)
	}
	return s
}

func (s *Slate) Date() string { return s.date }

// Advance executa um tick e devolve os jogos que acabaram de encerrar
func (s *Slate) Advance() []model.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tick++

	var finished []model.Game
	for _, g := range s.games {
		if g.IsFinal() {
			continue
		}
		switch {
		case s.tick < g.m.StartTick:
			continue
		case s.tick < g.m.StartTick+g.m.LiveTicks:
			g.Status = StatusInProgress
			s.play(g)
		default:
			s.play(g)
			g.Status = StatusFinal
			if g.HomeScore == g.AwayScore {
				// basquete não termina empatado
				g.HomeScore += 2
				g.Status = StatusFinalOT
			}
			finished = append(finished, g.Game)
		}
	}
	return finished
}

func (s *Slate) play(g *simGame) {
	ids := make([]string, 0, len(g.boxes))
	for id := range g.boxes {
		ids = append(ids, id)
	}
	sort.Strings(ids) // ordem estável para o mesmo seed
	for _, id := range ids {
		b := g.boxes[id]
		if b.MinutesPlayed < 0 {
			continue
		}
		pts := float64(s.rnd.Intn(5))
		b.Pts += pts
		b.Reb += float64(s.rnd.Intn(3))
		b.Ast += float64(s.rnd.Intn(3))
		if s.rnd.Intn(4) == 0 {
			b.Stl++
		}
		if s.rnd.Intn(5) == 0 {
			b.Blk++
		}
		if pts >= 3 && s.rnd.Intn(2) == 0 {
			b.Fg3m++
		}
		b.MinutesPlayed += 4
		if s.team[id] == g.HomeTeam {
			g.HomeScore += int(pts)
		} else {
			g.AwayScore += int(pts)
		}
	}
}

// Games devolve um snapshot dos jogos do dia; outra data devolve lista vazia
func (s *Slate) Games(date string) []model.Game {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Game, 0, len(s.games))
	if date != s.date {
		return out
	}
	for _, g := range s.games {
		out = append(out, g.Game)
	}
	return out
}

// BoxScore devolve o box score do jogador no jogo; ok=false se ele não está no jogo
func (s *Slate) BoxScore(gameID, playerID string) (model.BoxScoreStat, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, g := range s.games {
		if g.ID != gameID {
			continue
		}
		b, ok := g.boxes[playerID]
		if !ok {
			return model.BoxScoreStat{}, false
		}
		out := *b
		if out.MinutesPlayed < 0 {
			out.MinutesPlayed = 0
		}
		return out, true
	}
	return model.BoxScoreStat{}, false
}
