package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

// Postgres implementa o Store de apostas e pernas em banco Postgres
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório de apostas
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

const selectBets = `
	SELECT id, to_char(placed_date, 'YYYY-MM-DD'), to_char(game_date, 'YYYY-MM-DD'),
	       status, result, realized_value, updated_at
	FROM bets`

const selectLegs = `
	SELECT id, bet_id, is_game_prop, player_id, player_name, team, opponent,
	       stat_type, line, over_under, market,
	       COALESCE(to_char(game_date, 'YYYY-MM-DD'), ''), leg_result, actual_value
	FROM bet_legs
	WHERE bet_id = ANY($1)
	ORDER BY bet_id, position`

// ListBets busca as apostas do filtro e depois todas as pernas em uma única query
func (p *Postgres) ListBets(ctx context.Context, f BetFilter) ([]model.Bet, error) {
	var (
		where []string
		args  []any
	)
	if f.Status != "" {
		args = append(args, string(f.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if f.Scope.From != "" {
		args = append(args, f.Scope.From)
		where = append(where, fmt.Sprintf("game_date >= $%d::date", len(args)))
	}
	if f.Scope.To != "" {
		args = append(args, f.Scope.To)
		where = append(where, fmt.Sprintf("game_date <= $%d::date", len(args)))
	}
	q := selectBets
	if len(where) > 0 {
		q += " WHERE " + strings.Join(where, " AND ")
	}
	q += " ORDER BY game_date, id"

	rows, err := p.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query bets: %w", err)
	}
	defer rows.Close()

	var bets []model.Bet
	for rows.Next() {
		b, err := scanBet(rows)
		if err != nil {
			return nil, err
		}
		bets = append(bets, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate bets: %w", err)
	}
	if len(bets) == 0 {
		return bets, nil
	}
	if err := p.attachLegs(ctx, bets); err != nil {
		return nil, err
	}
	return bets, nil
}

// GetBet retorna uma aposta com as pernas
func (p *Postgres) GetBet(ctx context.Context, id string) (model.Bet, error) {
	row := p.db.QueryRowContext(ctx, selectBets+" WHERE id = $1", id)
	b, err := scanBet(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bet{}, ErrBetNotFound
	}
	if err != nil {
		return model.Bet{}, err
	}
	bets := []model.Bet{b}
	if err := p.attachLegs(ctx, bets); err != nil {
		return model.Bet{}, err
	}
	return bets[0], nil
}

// SaveSettlement grava aposta e pernas na mesma transação.
// O UPDATE da aposta só casa se status/result ainda forem os de prior.
func (p *Postgres) SaveSettlement(ctx context.Context, prior Prior, b model.Bet) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op após Commit

	res, err := tx.ExecContext(ctx, `
		UPDATE bets SET status=$1, result=$2, realized_value=$3, updated_at=NOW()
		WHERE id=$4 AND status=$5 AND result=$6`,
		string(b.Status), string(b.Result), b.RealizedValue, b.ID,
		string(prior.Status), string(prior.Result),
	)
	if err != nil {
		return fmt.Errorf("update bet: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update bet: %w", err)
	}
	if n == 0 {
		var exists bool
		if err := tx.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM bets WHERE id=$1)`, b.ID).Scan(&exists); err != nil {
			return fmt.Errorf("check bet: %w", err)
		}
		if !exists {
			return ErrBetNotFound
		}
		return ErrConflict
	}
	for _, l := range b.Legs {
		if _, err := tx.ExecContext(ctx, `
			UPDATE bet_legs SET leg_result=$1, actual_value=$2
			WHERE id=$3 AND bet_id=$4`,
			string(l.LegResult), l.ActualValue, l.ID, b.ID,
		); err != nil {
			return fmt.Errorf("update leg %s: %w", l.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBet(r rowScanner) (model.Bet, error) {
	var (
		b        model.Bet
		status   string
		result   string
		realized sql.NullFloat64
		updated  sql.NullTime
	)
	if err := r.Scan(&b.ID, &b.PlacedDate, &b.GameDate, &status, &result, &realized, &updated); err != nil {
		return model.Bet{}, err
	}
	b.Status = model.Status(status)
	b.Result = model.Outcome(result)
	if realized.Valid {
		v := realized.Float64
		b.RealizedValue = &v
	}
	if updated.Valid {
		b.UpdatedAt = updated.Time
	}
	return b, nil
}

func (p *Postgres) attachLegs(ctx context.Context, bets []model.Bet) error {
	ids := make([]string, len(bets))
	pos := make(map[string]int, len(bets))
	for i, b := range bets {
		ids[i] = b.ID
		pos[b.ID] = i
	}
	rows, err := p.db.QueryContext(ctx, selectLegs, pq.Array(ids))
	if err != nil {
		return fmt.Errorf("query legs: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			l      model.Leg
			betID  string
			ou     string
			result string
			actual sql.NullFloat64
		)
		if err := rows.Scan(&l.ID, &betID, &l.IsGameProp, &l.PlayerID, &l.PlayerName, &l.Team, &l.Opponent,
			&l.StatType, &l.Line, &ou, &l.Market, &l.GameDate, &result, &actual); err != nil {
			return fmt.Errorf("scan leg: %w", err)
		}
		l.OverUnder = model.OverUnder(ou)
		l.LegResult = model.Outcome(result)
		if actual.Valid {
			v := actual.Float64
			l.ActualValue = &v
		}
		if i, ok := pos[betID]; ok {
			bets[i].Legs = append(bets[i].Legs, l)
		}
	}
	return rows.Err()
}
