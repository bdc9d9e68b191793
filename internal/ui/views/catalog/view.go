package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "niamverse/internal/modules/catalog/dto"
	"niamverse/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Browse(ctx context.Context, section, category, search string) (catalogdto.BrowseOutput, error)
	Categories(ctx context.Context) ([]string, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type BrowsedMsg struct {
	Query  Query
	Output catalogdto.BrowseOutput
	Err    error
}

type CategoriesMsg struct {
	Categories []string
	Err        error
}

// Query is the filter state the view browses with.
type Query struct {
	Section  string
	Category string
	Search   string
}

// ─── list item ───────────────────────────────────────────────────────────────

type gameItem struct {
	game catalogdto.GameOutput
}

func (i gameItem) Title() string {
	title := i.game.Name
	if i.game.Favorite {
		title = "♥ " + title
	}
	return title
}

func (i gameItem) Description() string {
	parts := []string{i.game.Category}
	if i.game.Genre != "" {
		parts = append(parts, i.game.Genre)
	}
	if i.game.Featured {
		parts = append(parts, "featured")
	}
	return fmt.Sprintf("#%d  %s", i.game.ID, strings.Join(parts, " · "))
}

func (i gameItem) FilterValue() string { return i.game.Name }

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port       Port
	list       list.Model
	search     textinput.Model
	spinner    spinner.Model
	query      Query
	title      string
	categories []string
	empty      bool
	favorites  int
	loading    bool
	err        error
	width      int
	height     int
}

func New(port Port) Model {
	l := list.New(nil, newDelegate(), 0, 0)
	l.SetShowStatusBar(true)
	// search is driven by our own input so it reaches the selection engine
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)

	ti := textinput.New()
	ti.Placeholder = "Search games…"
	ti.Prompt = "/ "
	ti.CharLimit = 128

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		port:    port,
		list:    l,
		search:  ti,
		spinner: sp,
		query:   Query{Section: "home", Category: "all"},
		loading: true,
	}
}

func newDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = d.Styles.SelectedTitle.Foreground(theme.Lavender).BorderForeground(theme.Lavender)
	d.Styles.SelectedDesc = d.Styles.SelectedDesc.Foreground(theme.Sapphire).BorderForeground(theme.Lavender)
	return d
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.Refresh(), m.categoriesCmd(), m.spinner.Tick)
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case BrowsedMsg:
		// results for a query the user already moved past are dropped
		if msg.Query != m.query {
			return m, nil
		}
		m.loading = false
		m.err = msg.Err
		if msg.Err != nil {
			return m, nil
		}
		m.title = msg.Output.Title
		m.empty = msg.Output.Empty
		m.favorites = msg.Output.FavoriteCount
		items := make([]list.Item, len(msg.Output.Games))
		for i, g := range msg.Output.Games {
			items[i] = gameItem{game: g}
		}
		return m, m.list.SetItems(items)

	case CategoriesMsg:
		if msg.Err == nil {
			m.categories = msg.Categories
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.search.Focused() {
			switch msg.String() {
			case "esc", "enter":
				m.search.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.search, cmd = m.search.Update(msg)
			cmds = append(cmds, cmd)
			if term := m.search.Value(); term != m.query.Search {
				m.query.Search = term
				cmds = append(cmds, m.Refresh())
			}
			return m, tea.Batch(cmds...)
		}
		switch msg.String() {
		case "/":
			cmd := m.search.Focus()
			return m, cmd
		case "c":
			cmd := m.CycleCategory()
			return m, cmd
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if m.loading {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			m.spinner.View()+" Loading games…")
	}

	header := theme.Title.Render(m.title) + "  " +
		theme.Muted.Render("category: ") + theme.Hot.Render(m.query.Category)
	search := m.search.View()

	var body string
	switch {
	case m.err != nil:
		body = theme.Hot.Render("error: " + m.err.Error())
	case m.empty:
		body = lipgloss.Place(m.width, m.listHeight(), lipgloss.Center, lipgloss.Center,
			theme.Title.Render("No games found")+"\n"+
				theme.Muted.Render("Try adjusting your filters or search terms"))
	default:
		body = m.list.View()
	}
	hints := theme.Muted.Render("/ search  c category  enter open  f favorite")
	return lipgloss.JoinVertical(lipgloss.Left, header, search, body, hints)
}

// SetSection switches the section and re-browses.
func (m *Model) SetSection(section string) tea.Cmd {
	m.query.Section = section
	m.list.ResetSelected()
	return m.Refresh()
}

func (m *Model) SetCategory(category string) tea.Cmd {
	if strings.TrimSpace(category) == "" {
		category = "all"
	}
	m.query.Category = category
	m.list.ResetSelected()
	return m.Refresh()
}

func (m *Model) SetSearch(term string) tea.Cmd {
	m.search.SetValue(term)
	m.query.Search = term
	return m.Refresh()
}

// CycleCategory steps through "all" followed by every catalog category.
func (m *Model) CycleCategory() tea.Cmd {
	options := append([]string{"all"}, m.categories...)
	next := 0
	for i, c := range options {
		if c == m.query.Category {
			next = (i + 1) % len(options)
			break
		}
	}
	return m.SetCategory(options[next])
}

// Refresh re-runs the current query, e.g. after favorites or the catalog changed.
func (m Model) Refresh() tea.Cmd {
	q := m.query
	port := m.port
	return func() tea.Msg {
		out, err := port.Browse(context.Background(), q.Section, q.Category, q.Search)
		return BrowsedMsg{Query: q, Output: out, Err: err}
	}
}

// RefreshCategories reloads the category list after a catalog reload.
func (m Model) RefreshCategories() tea.Cmd { return m.categoriesCmd() }

func (m Model) Query() Query { return m.query }

func (m Model) FavoriteCount() int { return m.favorites }

// Searching reports whether the search input has focus; global keys yield then.
func (m Model) Searching() bool { return m.search.Focused() }

func (m Model) SelectedGame() (catalogdto.GameOutput, bool) {
	if m.empty {
		return catalogdto.GameOutput{}, false
	}
	if item, ok := m.list.SelectedItem().(gameItem); ok {
		return item.game, true
	}
	return catalogdto.GameOutput{}, false
}

// Restyle rebuilds styles after a theme switch.
func (m *Model) Restyle() {
	m.list.SetDelegate(newDelegate())
	m.spinner.Style = lipgloss.NewStyle().Foreground(theme.Lavender)
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m Model) listHeight() int {
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) resize() {
	m.list.SetSize(m.width, m.listHeight())
	m.search.Width = m.width - 4
}

func (m Model) categoriesCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		cats, err := port.Categories(context.Background())
		return CategoriesMsg{Categories: cats, Err: err}
	}
}
