package domain

type Game struct {
	ID          int    `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Genre       string `json:"genre" yaml:"genre"`
	Featured    bool   `json:"featured,omitempty" yaml:"featured,omitempty"`
	About       string `json:"about" yaml:"about"`
	Link        string `json:"link" yaml:"link"`
	Popularity  string `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	ReleaseDate string `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	Build       string `json:"build,omitempty" yaml:"build,omitempty"`
	Developer   string `json:"developer,omitempty" yaml:"developer,omitempty"`
	Controls    string `json:"controls,omitempty" yaml:"controls,omitempty"`
}

// Document is the on-disk shape of a catalog: { "games": [...] }.
type Document struct {
	Games []Game `json:"games" yaml:"games"`
}

// Catalog is the ordered, immutable list of games loaded at startup.
type Catalog struct {
	games []Game
	index map[int]int
}

// NewCatalog keeps the first occurrence of every id and reports the ids it dropped.
func NewCatalog(games []Game) (Catalog, []int) {
	c := Catalog{
		games: make([]Game, 0, len(games)),
		index: make(map[int]int, len(games)),
	}
	var dropped []int
	for _, g := range games {
		if _, seen := c.index[g.ID]; seen {
			dropped = append(dropped, g.ID)
			continue
		}
		c.index[g.ID] = len(c.games)
		c.games = append(c.games, g)
	}
	return c, dropped
}

func (c Catalog) Len() int { return len(c.games) }

// Games returns a copy so callers cannot reorder the catalog.
func (c Catalog) Games() []Game {
	out := make([]Game, len(c.games))
	copy(out, c.games)
	return out
}

func (c Catalog) Find(id int) (Game, bool) {
	idx, ok := c.index[id]
	if !ok {
		return Game{}, false
	}
	return c.games[idx], true
}

// Categories lists distinct categories in first-seen order.
func (c Catalog) Categories() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, g := range c.games {
		if g.Category == "" {
			continue
		}
		if _, ok := seen[g.Category]; ok {
			continue
		}
		seen[g.Category] = struct{}{}
		out = append(out, g.Category)
	}
	return out
}
