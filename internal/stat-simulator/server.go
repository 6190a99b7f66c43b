package simulator

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type gameJSON struct {
	ID        string `json:"id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

type boxJSON struct {
	GameID   string  `json:"game_id"`
	PlayerID string  `json:"player_id"`
	Pts      float64 `json:"pts"`
	Reb      float64 `json:"reb"`
	Ast      float64 `json:"ast"`
	Stl      float64 `json:"stl"`
	Blk      float64 `json:"blk"`
	Fg3m     float64 `json:"fg3m"`
	Min      float64 `json:"min"`
}

// Server expõe o slate com a mesma API REST do provedor de estatísticas
type Server struct {
	log    *zap.Logger
	slate  *Slate
	hub    *Hub
	apiKey string // vazio aceita qualquer chamada
}

func NewServer(log *zap.Logger, slate *Slate, hub *Hub, apiKey string) *Server {
	return &Server{log: log, slate: slate, hub: hub, apiKey: apiKey}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/games", s.auth(s.listGames)) // GET /games?date=
	mux.HandleFunc("/games/", s.auth(s.boxScore)) // GET /games/{id}/players/{pid}/boxscore
	if s.hub != nil {
		mux.Handle("/ws", s.hub)
	}
	return mux
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.apiKey != "" && r.Header.Get("Authorization") != s.apiKey {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}

func (s *Server) listGames(w http.ResponseWriter, r *http.Request) {
	date := r.URL.Query().Get("date")
	if date == "" {
		http.Error(w, "date required", http.StatusBadRequest)
		return
	}
	games := s.slate.Games(date)
	out := struct {
		Games []gameJSON `json:"games"`
	}{Games: make([]gameJSON, 0, len(games))}
	for _, g := range games {
		out.Games = append(out.Games, gameJSON{
			ID: g.ID, HomeTeam: g.HomeTeam, AwayTeam: g.AwayTeam, Date: g.Date,
			Status: g.Status, HomeScore: g.HomeScore, AwayScore: g.AwayScore,
		})
	}
	writeJSON(w, out)
}

func (s *Server) boxScore(w http.ResponseWriter, r *http.Request) {
	// path: /games/{id}/players/{pid}/boxscore
	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	if len(parts) != 5 || parts[0] != "games" || parts[2] != "players" || parts[4] != "boxscore" {
		http.NotFound(w, r)
		return
	}
	b, ok := s.slate.BoxScore(parts[1], parts[3])
	if !ok {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, boxJSON{
		GameID: b.GameID, PlayerID: b.PlayerID,
		Pts: b.Pts, Reb: b.Reb, Ast: b.Ast, Stl: b.Stl, Blk: b.Blk, Fg3m: b.Fg3m,
		Min: b.MinutesPlayed,
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
