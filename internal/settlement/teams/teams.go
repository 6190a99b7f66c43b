package teams

import (
	"strings"
)

// Team é a entrada canônica do diretório
type Team struct {
	ID      string   // id canônico, ex: "1610612747"
	Abbr    string   // abreviação usada nos feeds, ex: "LAL"
	Name    string   // nome completo, ex: "Los Angeles Lakers"
	Aliases []string // grafias alternativas aceitas
}

// Directory é a consulta bidirecional abreviação <-> id canônico <-> nome completo.
// Um único Directory é injetado no resolver; nenhuma comparação de nomes fica espalhada.
type Directory struct {
	byID  map[string]Team
	index map[string]string // forma normalizada -> id canônico
}

// NewDirectory monta o diretório a partir das entradas.
// Abreviação, nome completo, apelido (última palavra do nome) e aliases apontam para o mesmo id.
func NewDirectory(teams []Team) *Directory {
	d := &Directory{
		byID:  make(map[string]Team, len(teams)),
		index: make(map[string]string, len(teams)*4),
	}
	for _, t := range teams {
		d.byID[t.ID] = t
		d.add(t.ID, t.ID)
		d.add(t.Abbr, t.ID)
		d.add(t.Name, t.ID)
		if f := strings.Fields(t.Name); len(f) > 1 {
			d.add(f[len(f)-1], t.ID)
		}
		for _, a := range t.Aliases {
			d.add(a, t.ID)
		}
	}
	return d
}

func (d *Directory) add(form, id string) {
	k := Normalize(form)
	if k == "" {
		return
	}
	// a primeira associação vence; apelidos repetidos não sobrescrevem abreviações
	if _, exists := d.index[k]; !exists {
		d.index[k] = id
	}
}

// Normalize deixa o nome em minúsculas, sem pontuação de borda e com espaços colapsados
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, ".,")
	return strings.Join(strings.Fields(s), " ")
}

// Lookup retorna a entrada para qualquer forma conhecida (abreviação, nome, alias ou id)
func (d *Directory) Lookup(form string) (Team, bool) {
	if d == nil {
		return Team{}, false
	}
	id, ok := d.index[Normalize(form)]
	if !ok {
		return Team{}, false
	}
	t, ok := d.byID[id]
	return t, ok
}

// Canonical retorna a chave de comparação de um nome de time.
// Nomes fora do diretório caem para a forma normalizada, para que "XYZ" ainda compare com "xyz".
func (d *Directory) Canonical(form string) string {
	if t, ok := d.Lookup(form); ok {
		return "id:" + t.ID
	}
	return Normalize(form)
}

// Same indica se duas grafias se referem ao mesmo time
func (d *Directory) Same(a, b string) bool {
	ca, cb := d.Canonical(a), d.Canonical(b)
	return ca != "" && ca == cb
}

// Abbr retorna a abreviação canônica, ou a entrada original se desconhecida
func (d *Directory) Abbr(form string) string {
	if t, ok := d.Lookup(form); ok {
		return t.Abbr
	}
	return form
}

// FullName retorna o nome completo canônico, ou a entrada original se desconhecida
func (d *Directory) FullName(form string) string {
	if t, ok := d.Lookup(form); ok {
		return t.Name
	}
	return form
}
