package domain

import (
	"strings"

	"golang.org/x/text/cases"
)

type Section string

const (
	SectionHome      Section = "home"
	SectionNew       Section = "new"
	SectionTrending  Section = "trending"
	SectionFavorites Section = "favorites"
	SectionRecent    Section = "recent"
)

// Sections in navigation order.
var Sections = []Section{SectionHome, SectionNew, SectionTrending, SectionFavorites, SectionRecent}

const (
	CategoryAll = "all"
	// NewGameThreshold marks ids above it as new. It is a catalog convention,
	// not a release date comparison.
	NewGameThreshold = 480
)

// ParseSection maps unknown names to home.
func ParseSection(name string) Section {
	s := Section(strings.ToLower(strings.TrimSpace(name)))
	switch s {
	case SectionNew, SectionTrending, SectionFavorites, SectionRecent:
		return s
	default:
		return SectionHome
	}
}

func (s Section) Title() string {
	switch s {
	case SectionNew:
		return "New Games"
	case SectionTrending:
		return "Trending Games"
	case SectionFavorites:
		return "Favorite Games"
	case SectionRecent:
		return "Recently Played"
	default:
		return "All Games"
	}
}

type Query struct {
	Section  Section
	Category string
	Search   string
}

type Selection struct {
	Section Section
	Title   string
	Games   []Game
}

// Select narrows the catalog by section, then category, then search text.
// Every stage keeps catalog order.
func Select(catalog Catalog, q Query, favorites, recents []int) Selection {
	section := ParseSection(string(q.Section))
	games := filterSection(catalog.games, section, favorites, recents)

	if category := strings.TrimSpace(q.Category); category != "" && category != CategoryAll {
		games = filter(games, func(g Game) bool { return g.Category == category })
	}

	if term := strings.TrimSpace(q.Search); term != "" {
		fold := cases.Fold()
		needle := fold.String(term)
		games = filter(games, func(g Game) bool {
			return strings.Contains(fold.String(g.Name), needle) ||
				strings.Contains(fold.String(g.Genre), needle)
		})
	}

	return Selection{Section: section, Title: section.Title(), Games: games}
}

func filterSection(games []Game, section Section, favorites, recents []int) []Game {
	switch section {
	case SectionNew:
		return filter(games, func(g Game) bool { return g.ID > NewGameThreshold })
	case SectionTrending:
		return filter(games, func(g Game) bool { return g.Featured })
	case SectionFavorites:
		set := toSet(favorites)
		return filter(games, func(g Game) bool { _, ok := set[g.ID]; return ok })
	case SectionRecent:
		set := toSet(recents)
		return filter(games, func(g Game) bool { _, ok := set[g.ID]; return ok })
	default:
		return filter(games, func(Game) bool { return true })
	}
}

func filter(games []Game, keep func(Game) bool) []Game {
	out := make([]Game, 0, len(games))
	for _, g := range games {
		if keep(g) {
			out = append(out, g)
		}
	}
	return out
}

func toSet(ids []int) map[int]struct{} {
	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
