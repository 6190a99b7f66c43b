package stats

import (
	"errors"
	"fmt"
	"strings"

	"github.com/radieske/bet-settlement-engine/internal/settlement/model"
)

// ErrUnknownStatType indica um tipo de estatística fora do conjunto conhecido.
// Nunca vira 0 silenciosamente: isso precificaria a aposta errado.
var ErrUnknownStatType = errors.New("unknown stat type")

// StatType é o conjunto fechado de mercados suportados
type StatType string

const (
	Pts  StatType = "pts"
	Reb  StatType = "reb"
	Ast  StatType = "ast"
	Stl  StatType = "stl"
	Blk  StatType = "blk"
	Fg3m StatType = "fg3m"

	// compostas
	PRA StatType = "pra" // pts + reb + ast
	PR  StatType = "pr"  // pts + reb
	PA  StatType = "pa"  // pts + ast
	RA  StatType = "ra"  // reb + ast
)

// aliases cobre as grafias vistas nos feeds de odds
var aliases = map[string]StatType{
	"pts": Pts, "points": Pts, "point": Pts,
	"reb": Reb, "rebounds": Reb, "rebound": Reb, "reb_total": Reb,
	"ast": Ast, "assists": Ast, "assist": Ast,
	"stl": Stl, "steals": Stl, "steal": Stl,
	"blk": Blk, "blocks": Blk, "block": Blk,
	"fg3m": Fg3m, "threes": Fg3m, "3pm": Fg3m, "3ptm": Fg3m, "three_pointers_made": Fg3m,
	"pra": PRA, "pts+reb+ast": PRA, "points+rebounds+assists": PRA,
	"pr": PR, "pts+reb": PR, "points+rebounds": PR,
	"pa": PA, "pts+ast": PA, "points+assists": PA,
	"ra": RA, "reb+ast": RA, "rebounds+assists": RA,
}

// ParseStatType normaliza a grafia do mercado para o StatType canônico
func ParseStatType(s string) (StatType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, " ", "")
	if t, ok := aliases[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatType, s)
}

// IsComposite indica se o tipo é derivado de mais de um campo bruto
func (t StatType) IsComposite() bool {
	switch t {
	case PRA, PR, PA, RA:
		return true
	}
	return false
}

// Extract retorna o valor realizado para o tipo de estatística.
// Campos brutos ausentes valem 0; compostas são somas dos brutos.
func Extract(t StatType, s model.BoxScoreStat) (float64, error) {
	switch t {
	case Pts:
		return s.Pts, nil
	case Reb:
		return s.Reb, nil
	case Ast:
		return s.Ast, nil
	case Stl:
		return s.Stl, nil
	case Blk:
		return s.Blk, nil
	case Fg3m:
		return s.Fg3m, nil
	case PRA:
		return s.Pts + s.Reb + s.Ast, nil
	case PR:
		return s.Pts + s.Reb, nil
	case PA:
		return s.Pts + s.Ast, nil
	case RA:
		return s.Reb + s.Ast, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatType, string(t))
	}
}

// ExtractValue combina ParseStatType e Extract para o statType bruto da perna
func ExtractValue(statType string, s model.BoxScoreStat) (float64, error) {
	t, err := ParseStatType(statType)
	if err != nil {
		return 0, err
	}
	return Extract(t, s)
}
