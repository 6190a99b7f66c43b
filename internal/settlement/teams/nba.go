package teams

// NBA é a tabela estática de times (ids oficiais da liga)
var NBA = []Team{
	{ID: "1610612737", Abbr: "ATL", Name: "Atlanta Hawks"},
	{ID: "1610612738", Abbr: "BOS", Name: "Boston Celtics"},
	{ID: "1610612751", Abbr: "BKN", Name: "Brooklyn Nets", Aliases: []string{"BRK", "NJN"}},
	{ID: "1610612766", Abbr: "CHA", Name: "Charlotte Hornets", Aliases: []string{"CHO"}},
	{ID: "1610612741", Abbr: "CHI", Name: "Chicago Bulls"},
	{ID: "1610612739", Abbr: "CLE", Name: "Cleveland Cavaliers", Aliases: []string{"Cavs"}},
	{ID: "1610612742", Abbr: "DAL", Name: "Dallas Mavericks", Aliases: []string{"Mavs"}},
	{ID: "1610612743", Abbr: "DEN", Name: "Denver Nuggets"},
	{ID: "1610612765", Abbr: "DET", Name: "Detroit Pistons"},
	{ID: "1610612744", Abbr: "GSW", Name: "Golden State Warriors", Aliases: []string{"GS", "Golden State"}},
	{ID: "1610612745", Abbr: "HOU", Name: "Houston Rockets"},
	{ID: "1610612754", Abbr: "IND", Name: "Indiana Pacers"},
	{ID: "1610612746", Abbr: "LAC", Name: "LA Clippers", Aliases: []string{"Los Angeles Clippers"}},
	{ID: "1610612747", Abbr: "LAL", Name: "Los Angeles Lakers", Aliases: []string{"LA Lakers"}},
	{ID: "1610612763", Abbr: "MEM", Name: "Memphis Grizzlies"},
	{ID: "1610612748", Abbr: "MIA", Name: "Miami Heat"},
	{ID: "1610612749", Abbr: "MIL", Name: "Milwaukee Bucks"},
	{ID: "1610612750", Abbr: "MIN", Name: "Minnesota Timberwolves", Aliases: []string{"Wolves"}},
	{ID: "1610612740", Abbr: "NOP", Name: "New Orleans Pelicans", Aliases: []string{"NO", "NOR"}},
	{ID: "1610612752", Abbr: "NYK", Name: "New York Knicks", Aliases: []string{"NY"}},
	{ID: "1610612760", Abbr: "OKC", Name: "Oklahoma City Thunder"},
	{ID: "1610612753", Abbr: "ORL", Name: "Orlando Magic"},
	{ID: "1610612755", Abbr: "PHI", Name: "Philadelphia 76ers", Aliases: []string{"Sixers"}},
	{ID: "1610612756", Abbr: "PHX", Name: "Phoenix Suns", Aliases: []string{"PHO"}},
	{ID: "1610612757", Abbr: "POR", Name: "Portland Trail Blazers", Aliases: []string{"Blazers"}},
	{ID: "1610612758", Abbr: "SAC", Name: "Sacramento Kings"},
	{ID: "1610612759", Abbr: "SAS", Name: "San Antonio Spurs", Aliases: []string{"SA"}},
	{ID: "1610612761", Abbr: "TOR", Name: "Toronto Raptors"},
	{ID: "1610612762", Abbr: "UTA", Name: "Utah Jazz", Aliases: []string{"UTAH"}},
	{ID: "1610612764", Abbr: "WAS", Name: "Washington Wizards", Aliases: []string{"WSH"}},
}

// DefaultNBA devolve o diretório padrão da NBA
func DefaultNBA() *Directory { return NewDirectory(NBA) }
