package domain

import (
	"fmt"
	"strings"
)

const (
	RecentCapacity = 10
	DefaultTheme   = "default"

	KeyFavorites = "favorites"
	KeyRecents   = "recentGames"
	KeyTheme     = "theme"
)

// Themes lists the selectable theme names in display order.
var Themes = []string{DefaultTheme, "light", "midnight", "forest", "sunset"}

func ValidateTheme(name string) error {
	name = strings.TrimSpace(name)
	for _, t := range Themes {
		if t == name {
			return nil
		}
	}
	return fmt.Errorf("theme %q: choose one of %s", name, strings.Join(Themes, ", "))
}

// State is the persisted user state. Favorites keep insertion order for display;
// Recents is most-recent-first and never longer than RecentCapacity.
type State struct {
	Favorites []int
	Recents   []int
	Theme     string
}

func New() State {
	return State{Favorites: []int{}, Recents: []int{}, Theme: DefaultTheme}
}

func (s State) IsFavorite(id int) bool {
	return indexOf(s.Favorites, id) >= 0
}

func (s State) IsRecent(id int) bool {
	return indexOf(s.Recents, id) >= 0
}

// ToggleFavorite adds id when absent and removes it when present.
// It reports whether id is a favorite afterwards.
func (s *State) ToggleFavorite(id int) bool {
	if idx := indexOf(s.Favorites, id); idx >= 0 {
		s.Favorites = append(s.Favorites[:idx:idx], s.Favorites[idx+1:]...)
		return false
	}
	s.Favorites = append(s.Favorites, id)
	return true
}

// RecordRecent inserts id at the front only when it is not already present,
// evicting the oldest entry past RecentCapacity. Repeat visits keep their slot.
func (s *State) RecordRecent(id int) bool {
	if s.IsRecent(id) {
		return false
	}
	recents := make([]int, 0, len(s.Recents)+1)
	recents = append(recents, id)
	recents = append(recents, s.Recents...)
	if len(recents) > RecentCapacity {
		recents = recents[:RecentCapacity]
	}
	s.Recents = recents
	return true
}

// Normalize repairs state read back from storage: duplicate ids collapse,
// recents are capped, and an empty or unknown theme becomes the default.
func (s State) Normalize() State {
	out := State{
		Favorites: dedupe(s.Favorites),
		Recents:   dedupe(s.Recents),
		Theme:     strings.TrimSpace(s.Theme),
	}
	if len(out.Recents) > RecentCapacity {
		out.Recents = out.Recents[:RecentCapacity]
	}
	if ValidateTheme(out.Theme) != nil {
		out.Theme = DefaultTheme
	}
	return out
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}

func dedupe(ids []int) []int {
	out := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
