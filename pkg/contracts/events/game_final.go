package events

// Evento consumido do tópico "game_final": o provedor viu um jogo encerrar
type GameFinal struct {
	GameID   string `json:"game_id"`
	Date     string `json:"date"` // YYYY-MM-DD
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`
	Status   string `json:"status"`
}
