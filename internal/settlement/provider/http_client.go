package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

// gameDTO é o formato de jogo na API do provedor
type gameDTO struct {
	ID        string `json:"id"`
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
}

type gamesResponse struct {
	Games []gameDTO `json:"games"`
}

// boxScoreDTO é o formato de box score; campos ausentes chegam como 0
type boxScoreDTO struct {
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

// HTTPClient fala com a API REST do provedor de estatísticas
type HTTPClient struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
}

// NewHTTPClient cria o cliente com timeout por chamada
func NewHTTPClient(base, apiKey string, timeout time.Duration) *HTTPClient {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HTTPClient{
		BaseURL: strings.TrimSuffix(base, "/"),
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: timeout},
	}
}

// ListGames busca os jogos de uma data (GET /games?date=YYYY-MM-DD)
func (c *HTTPClient) ListGames(ctx context.Context, date string) ([]model.Game, error) {
	u := c.BaseURL + "/games?date=" + url.QueryEscape(date)
	var out gamesResponse
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	games := make([]model.Game, 0, len(out.Games))
	for _, g := range out.Games {
		games = append(games, model.Game{
			ID:        g.ID,
			HomeTeam:  g.HomeTeam,
			AwayTeam:  g.AwayTeam,
			Date:      g.Date,
			Status:    g.Status,
			HomeScore: g.HomeScore,
			AwayScore: g.AwayScore,
		})
	}
	return games, nil
}

// GetPlayerBoxScore busca o box score do jogador no jogo (GET /games/{id}/players/{pid}/boxscore).
// 404 vira ErrNotFound.
func (c *HTTPClient) GetPlayerBoxScore(ctx context.Context, gameID, playerID string) (*model.BoxScoreStat, error) {
	u := fmt.Sprintf("%s/games/%s/players/%s/boxscore", c.BaseURL, url.PathEscape(gameID), url.PathEscape(playerID))
	var out boxScoreDTO
	if err := c.getJSON(ctx, u, &out); err != nil {
		return nil, err
	}
	if out.GameID == "" {
		out.GameID = gameID
	}
	if out.PlayerID == "" {
		out.PlayerID = playerID
	}
	return &model.BoxScoreStat{
		GameID:        out.GameID,
		PlayerID:      out.PlayerID,
		Pts:           out.Pts,
		Reb:           out.Reb,
		Ast:           out.Ast,
		Stl:           out.Stl,
		Blk:           out.Blk,
		Fg3m:          out.Fg3m,
		MinutesPlayed: out.Min,
	}, nil
}

func (c *HTTPClient) getJSON(ctx context.Context, u string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", c.APIKey)
	}
	res, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer res.Body.Close()
	if res.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if res.StatusCode >= 300 {
		return fmt.Errorf("%w: provider http %d", ErrUnavailable, res.StatusCode)
	}
	if err := json.NewDecoder(res.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}
	return nil
}
