package clock

import "time"

// Clock é a fonte de "agora", injetada para que a liquidação seja determinística em teste
type Clock interface {
	Now() time.Time
}

// System usa o relógio do sistema
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed devolve sempre o mesmo instante
type Fixed time.Time

func (f Fixed) Now() time.Time { return time.Time(f) }

// Today retorna a data corrente (YYYY-MM-DD) no fuso informado
func Today(c Clock, loc *time.Location) string {
	if c == nil {
		c = System{}
	}
	if loc == nil {
		loc = time.UTC
	}
	return c.Now().In(loc).Format("2006-01-02")
}

// LoadLocation carrega o fuso pelo nome, caindo para UTC quando inválido
func LoadLocation(name string) *time.Location {
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}
