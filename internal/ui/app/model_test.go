package app

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	catalogdto "niamverse/internal/modules/catalog/dto"
	sessiondto "niamverse/internal/modules/session/dto"
	userstatedto "niamverse/internal/modules/userstate/dto"
	apperrors "niamverse/internal/platform/errors"
	"niamverse/internal/ui/components"
	catalogview "niamverse/internal/ui/views/catalog"
	detailview "niamverse/internal/ui/views/detail"
	settingsview "niamverse/internal/ui/views/settings"
)

type fakeBackend struct {
	games     []catalogdto.GameOutput
	favorites map[int]bool
	browsed   []string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		games: []catalogdto.GameOutput{
			{ID: 1, Name: "Slope", Category: "arcade"},
			{ID: 500, Name: "Retro Bowl", Category: "sports"},
		},
		favorites: map[int]bool{},
	}
}

func (f *fakeBackend) Load(context.Context) (catalogdto.LoadOutput, error) {
	return catalogdto.LoadOutput{Games: len(f.games)}, nil
}

func (f *fakeBackend) Browse(_ context.Context, section, _, _ string) (catalogdto.BrowseOutput, error) {
	f.browsed = append(f.browsed, section)
	var out []catalogdto.GameOutput
	for _, g := range f.games {
		if section == "favorites" && !f.favorites[g.ID] {
			continue
		}
		g.Favorite = f.favorites[g.ID]
		out = append(out, g)
	}
	return catalogdto.BrowseOutput{Section: section, Games: out, Empty: len(out) == 0, FavoriteCount: len(f.favorites)}, nil
}

func (f *fakeBackend) GetGame(_ context.Context, id int) (catalogdto.GameOutput, error) {
	for _, g := range f.games {
		if g.ID == id {
			return g, nil
		}
	}
	return catalogdto.GameOutput{}, apperrors.ErrNotFound
}

func (f *fakeBackend) Categories(context.Context) ([]string, error) {
	return []string{"arcade", "sports"}, nil
}

func (f *fakeBackend) Open(_ context.Context, id int, _ bool) (sessiondto.OpenOutput, error) {
	return sessiondto.OpenOutput{Entry: sessiondto.EntryOutput{Open: true, GameID: id}}, nil
}
func (f *fakeBackend) Close(context.Context) (sessiondto.CloseOutput, error) {
	return sessiondto.CloseOutput{Closed: true}, nil
}
func (f *fakeBackend) SetRating(context.Context, int) (sessiondto.EntryOutput, error) {
	return sessiondto.EntryOutput{}, nil
}
func (f *fakeBackend) SetNotes(context.Context, string) (sessiondto.EntryOutput, error) {
	return sessiondto.EntryOutput{}, nil
}
func (f *fakeBackend) Submit(context.Context, string) (sessiondto.SubmitOutput, error) {
	return sessiondto.SubmitOutput{}, apperrors.ErrRatingRequired
}
func (f *fakeBackend) Share(context.Context) (sessiondto.ShareOutput, error) {
	return sessiondto.ShareOutput{}, nil
}
func (f *fakeBackend) Cloak(context.Context) (sessiondto.CloakOutput, error) {
	return sessiondto.CloakOutput{Title: "NiamVerse", Icon: "logo.png"}, nil
}
func (f *fakeBackend) ApplyCloak(_ context.Context, title, icon string) (sessiondto.CloakOutput, error) {
	return sessiondto.CloakOutput{Title: title, Icon: icon, Message: "Tab cloaking applied!"}, nil
}
func (f *fakeBackend) Embed(_ context.Context, url string) (sessiondto.EmbedOutput, error) {
	if url == "" {
		return sessiondto.EmbedOutput{}, apperrors.ErrURLRequired
	}
	return sessiondto.EmbedOutput{URL: url}, nil
}

func (f *fakeBackend) ToggleFavorite(_ context.Context, id int) (userstatedto.ToggleFavoriteOutput, error) {
	if f.favorites[id] {
		delete(f.favorites, id)
	} else {
		f.favorites[id] = true
	}
	return userstatedto.ToggleFavoriteOutput{GameID: id, Favorite: f.favorites[id], FavoriteCount: len(f.favorites)}, nil
}
func (f *fakeBackend) Themes(context.Context) ([]userstatedto.ThemeOutput, error) {
	return []userstatedto.ThemeOutput{{Name: "default", Active: true}}, nil
}
func (f *fakeBackend) SetTheme(_ context.Context, name string) ([]userstatedto.ThemeOutput, error) {
	return []userstatedto.ThemeOutput{{Name: name, Active: true}}, nil
}

func newTestModel() (Model, *fakeBackend) {
	b := newFakeBackend()
	return NewModel(b, b, b, "default"), b
}

// drain runs cmd and feeds the resulting messages back into the model,
// skipping batches and anything that is not one of our own messages.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0 && steps < 50; steps++ {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		switch msg.(type) {
		case catalogview.BrowsedMsg, catalogview.CategoriesMsg,
			detailview.OpenedMsg, detailview.FavoriteMsg, detailview.SubmittedMsg, detailview.ClosedMsg,
			settingsview.ThemeChangedMsg, settingsview.CloakMsg, settingsview.EmbedMsg,
			components.PaletteSubmitMsg, CatalogReloadedMsg:
			updated, c := m.Update(msg)
			m = updated.(Model)
			queue = append(queue, c)
		}
	}
	return m
}

func TestFavoriteToggleOnFavoritesTabRecomputes(t *testing.T) {
	m, backend := newTestModel()
	m = drain(t, m, m.catalogView.Refresh())

	cmd := m.switchTab(tabFavorites)
	m = drain(t, m, cmd)
	if m.catalogView.Query().Section != "favorites" {
		t.Fatalf("expected favorites section, got %s", m.catalogView.Query().Section)
	}
	if _, ok := m.catalogView.SelectedGame(); ok {
		t.Fatalf("favorites should start empty")
	}

	m = drain(t, m, detailview.ToggleFavoriteCmd(m.detailView.Port(), 500))
	if m.favorites != 1 {
		t.Fatalf("badge should show 1 favorite, got %d", m.favorites)
	}
	g, ok := m.catalogView.SelectedGame()
	if !ok || g.ID != 500 {
		t.Fatalf("favorites list not recomputed: %+v %t", g, ok)
	}
	if last := backend.browsed[len(backend.browsed)-1]; last != "favorites" {
		t.Fatalf("expected favorites browse, got %s", last)
	}
	if !strings.Contains(m.renderTabBar(), "Favorites (1)") {
		t.Fatalf("tab bar missing badge: %q", m.renderTabBar())
	}
}

func TestSubmitWithoutRatingShowsAlert(t *testing.T) {
	m, _ := newTestModel()
	updated, _ := m.Update(detailview.SubmittedMsg{Err: apperrors.ErrRatingRequired})
	if got := updated.(Model).status; got != "Please select a rating before submitting." {
		t.Fatalf("unexpected status %q", got)
	}
	updated, _ = m.Update(settingsview.EmbedMsg{Err: apperrors.ErrURLRequired})
	if got := updated.(Model).status; got != "Please enter a URL to embed." {
		t.Fatalf("unexpected status %q", got)
	}
}

func TestCloakSetsWindowTitle(t *testing.T) {
	m, _ := newTestModel()
	updated, cmd := m.Update(settingsview.CloakMsg{
		Out:     sessiondto.CloakOutput{Title: "Docs", Icon: "logo.png", Message: "Tab cloaking applied!"},
		Applied: true,
	})
	if got := updated.(Model).status; got != "Tab cloaking applied!" {
		t.Fatalf("unexpected status %q", got)
	}
	if cmd == nil {
		t.Fatalf("expected a window title command")
	}
}

func TestPaletteCommands(t *testing.T) {
	m, _ := newTestModel()
	m = drain(t, m, func() tea.Msg { return components.PaletteSubmitMsg{Input: "section trending"} })
	if m.activeTab != tabTrending {
		t.Fatalf("expected trending tab, got %d", m.activeTab)
	}
	m = drain(t, m, func() tea.Msg { return components.PaletteSubmitMsg{Input: "section nowhere"} })
	if m.activeTab != tabHome {
		t.Fatalf("unknown section should fall back to home, got %d", m.activeTab)
	}
	m = drain(t, m, func() tea.Msg { return components.PaletteSubmitMsg{Input: "open 1"} })
	if !m.detailView.IsOpen() || m.detailView.Game().Name != "Slope" {
		t.Fatalf("open did not show the game")
	}
	m = drain(t, m, func() tea.Msg { return components.PaletteSubmitMsg{Input: "bogus"} })
	if m.status != "unknown command: bogus" {
		t.Fatalf("unexpected status %q", m.status)
	}
}

func TestCatalogReloadStatus(t *testing.T) {
	m, _ := newTestModel()
	updated, cmd := m.Update(CatalogReloadedMsg{Out: catalogdto.LoadOutput{Fallback: true, Reason: "boom"}})
	if got := updated.(Model).status; got != "catalog unavailable: boom" {
		t.Fatalf("unexpected status %q", got)
	}
	if cmd == nil {
		t.Fatalf("reload should refresh the list")
	}
}

func TestPaletteFavTogglesGameWithIDZero(t *testing.T) {
	m, backend := newTestModel()
	backend.games = append([]catalogdto.GameOutput{{ID: 0, Name: "Zero", Category: "arcade"}}, backend.games...)
	m = drain(t, m, m.catalogView.Refresh())
	if g, ok := m.catalogView.SelectedGame(); !ok || g.ID != 0 {
		t.Fatalf("expected id 0 selected, got %+v %t", g, ok)
	}

	m = drain(t, m, func() tea.Msg { return components.PaletteSubmitMsg{Input: "fav"} })
	if !backend.favorites[0] {
		t.Fatalf("fav should toggle the selected id 0 game, status %q", m.status)
	}

	m = drain(t, m, func() tea.Msg { return components.PaletteSubmitMsg{Input: "fav 0"} })
	if backend.favorites[0] {
		t.Fatalf("fav 0 should toggle id 0 back off")
	}
}

func TestPaletteFavWithoutSelection(t *testing.T) {
	m, backend := newTestModel()
	backend.games = nil
	m = drain(t, m, m.catalogView.Refresh())
	m = drain(t, m, func() tea.Msg { return components.PaletteSubmitMsg{Input: "fav"} })
	if m.status != "no game selected" {
		t.Fatalf("unexpected status %q", m.status)
	}
	if len(backend.favorites) != 0 {
		t.Fatalf("nothing should be toggled: %v", backend.favorites)
	}
}
