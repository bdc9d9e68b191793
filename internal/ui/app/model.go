package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	catalogdto "niamverse/internal/modules/catalog/dto"
	sessiondto "niamverse/internal/modules/session/dto"
	userstatedto "niamverse/internal/modules/userstate/dto"
	apperrors "niamverse/internal/platform/errors"
	"niamverse/internal/ui/components"
	"niamverse/internal/ui/theme"
	catalogview "niamverse/internal/ui/views/catalog"
	detailview "niamverse/internal/ui/views/detail"
	settingsview "niamverse/internal/ui/views/settings"
)

// ─── ports ───────────────────────────────────────────────────────────────────
// Each port is the minimal interface that this orchestration layer requires.
// Sub-view ports are defined in their own packages and narrowed further.

type catalogPort interface {
	Load(ctx context.Context) (catalogdto.LoadOutput, error)
	Browse(ctx context.Context, section, category, search string) (catalogdto.BrowseOutput, error)
	GetGame(ctx context.Context, id int) (catalogdto.GameOutput, error)
	Categories(ctx context.Context) ([]string, error)
}

type sessionPort interface {
	Open(ctx context.Context, gameID int, launch bool) (sessiondto.OpenOutput, error)
	Close(ctx context.Context) (sessiondto.CloseOutput, error)
	SetRating(ctx context.Context, stars int) (sessiondto.EntryOutput, error)
	SetNotes(ctx context.Context, notes string) (sessiondto.EntryOutput, error)
	Submit(ctx context.Context, notes string) (sessiondto.SubmitOutput, error)
	Share(ctx context.Context) (sessiondto.ShareOutput, error)
	Cloak(ctx context.Context) (sessiondto.CloakOutput, error)
	ApplyCloak(ctx context.Context, title, icon string) (sessiondto.CloakOutput, error)
	Embed(ctx context.Context, url string) (sessiondto.EmbedOutput, error)
}

type statePort interface {
	ToggleFavorite(ctx context.Context, gameID int) (userstatedto.ToggleFavoriteOutput, error)
	Themes(ctx context.Context) ([]userstatedto.ThemeOutput, error)
	SetTheme(ctx context.Context, name string) ([]userstatedto.ThemeOutput, error)
}

// ─── tab index ───────────────────────────────────────────────────────────────

type tabID int

const (
	tabHome tabID = iota
	tabNew
	tabTrending
	tabFavorites
	tabRecent
	tabSettings
	tabCount
)

var tabLabels = [tabCount]string{
	"Home", "New", "Trending", "Favorites", "Recent", "Settings",
}

var tabSections = [tabSettings]string{
	"home", "new", "trending", "favorites", "recent",
}

func tabForSection(section string) (tabID, bool) {
	for i, s := range tabSections {
		if s == section {
			return tabID(i), true
		}
	}
	return 0, false
}

// ─── async messages ───────────────────────────────────────────────────────────

// CatalogReloadedMsg is sent into the program when the catalog source changed
// on disk, or after a manual reload.
type CatalogReloadedMsg struct {
	Out catalogdto.LoadOutput
	Err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	Tab      key.Binding
	Help     key.Binding
	Palette  key.Binding
	Quit     key.Binding
	Enter    key.Binding
	Launch   key.Binding
	Favorite key.Binding
	Search   key.Binding
	Category key.Binding
	Rate     key.Binding
	Submit   key.Binding
	Close    key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Tab:      key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next section")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Palette:  key.NewBinding(key.WithKeys(":"), key.WithHelp(":", "palette")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
		Enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open game")),
		Launch:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "open and launch")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle favorite")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Category: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "next category")),
		Rate:     key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "rate open game")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit rating")),
		Close:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close game")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Help, k.Palette, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Tab, k.Enter, k.Launch, k.Favorite},
		{k.Search, k.Category},
		{k.Rate, k.Submit, k.Close},
		{k.Help, k.Palette, k.Quit},
	}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the root Bubble Tea model. It owns tab routing, the open-game
// overlay, the help overlay and the command palette. Business logic lives
// behind the ports; rendering is delegated to sub-views.
type Model struct {
	catalog catalogPort
	session sessionPort
	state   statePort

	catalogView  catalogview.Model
	detailView   detailview.Model
	settingsView settingsview.Model

	activeTab tabID
	favorites int
	keys      keyMap
	help      help.Model
	showHelp  bool
	palette   components.Palette
	status    string
	width     int
	height    int
}

// NewModel builds the root model. activeTheme is painted before the first frame.
func NewModel(catalog catalogPort, session sessionPort, state statePort, activeTheme string) Model {
	theme.Apply(activeTheme)
	bridge := detailBridge{catalog: catalog, session: session, state: state}
	return Model{
		catalog:      catalog,
		session:      session,
		state:        state,
		catalogView:  catalogview.New(catalog),
		detailView:   detailview.New(bridge),
		settingsView: settingsview.New(settingsBridge{session: session, state: state}),
		activeTab:    tabHome,
		keys:         defaultKeys(),
		help:         help.New(),
		palette:      components.NewPalette(),
		status:       "ready",
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.catalogView.Init(),
		m.settingsView.Init(),
		m.detailView.Init(),
	)
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// The palette intercepts all input while open.
	if m.palette.Visible() {
		if _, isKey := msg.(tea.KeyMsg); isKey {
			var cmd tea.Cmd
			m.palette, cmd = m.palette.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.palette.SetWidth(min(m.width-4, 80))
		m.help.Width = m.width
		m.propagateSize()
		return m, nil

	case CatalogReloadedMsg:
		switch {
		case msg.Err != nil:
			m.status = "reload failed: " + msg.Err.Error()
		case msg.Out.Fallback:
			m.status = "catalog unavailable: " + msg.Out.Reason
		default:
			m.status = fmt.Sprintf("catalog reloaded: %d games", msg.Out.Games)
		}
		return m, tea.Batch(m.catalogView.Refresh(), m.catalogView.RefreshCategories())

	case catalogview.BrowsedMsg, catalogview.CategoriesMsg:
		var cmd tea.Cmd
		m.catalogView, cmd = m.catalogView.Update(msg)
		if b, ok := msg.(catalogview.BrowsedMsg); ok && b.Err == nil {
			m.favorites = b.Output.FavoriteCount
		}
		return m, cmd

	case detailview.OpenedMsg:
		m.detailView, _ = m.detailView.Update(msg)
		if msg.Err != nil {
			m.status = alertText(msg.Err)
			return m, nil
		}
		m.status = "playing " + msg.Game.Name
		if msg.Open.Launched {
			m.status += " (launched)"
		}
		// recents may have changed
		return m, m.catalogView.Refresh()

	case detailview.ClosedMsg:
		m.detailView, _ = m.detailView.Update(msg)
		if msg.Err != nil {
			m.status = alertText(msg.Err)
		} else if msg.Out.Closed {
			m.status = "closed " + msg.Out.Name
		}
		return m, nil

	case detailview.EntryMsg:
		m.detailView, _ = m.detailView.Update(msg)
		if msg.Err != nil {
			m.status = alertText(msg.Err)
		}
		return m, nil

	case detailview.SubmittedMsg:
		m.detailView, _ = m.detailView.Update(msg)
		if msg.Err != nil {
			m.status = alertText(msg.Err)
		} else {
			m.status = msg.Out.Message
		}
		return m, nil

	case detailview.SharedMsg:
		if msg.Err != nil {
			m.status = alertText(msg.Err)
		} else {
			m.status = strings.TrimSpace(msg.Out.Text + " " + msg.Out.Link)
		}
		return m, nil

	case detailview.FavoriteMsg:
		m.detailView, _ = m.detailView.Update(msg)
		if msg.Err != nil {
			m.status = alertText(msg.Err)
			return m, nil
		}
		m.favorites = msg.Out.FavoriteCount
		if msg.Out.Favorite {
			m.status = fmt.Sprintf("added #%d to favorites", msg.Out.GameID)
		} else {
			m.status = fmt.Sprintf("removed #%d from favorites", msg.Out.GameID)
		}
		return m, m.catalogView.Refresh()

	case settingsview.ThemesMsg:
		m.settingsView, _ = m.settingsView.Update(msg)
		return m, nil

	case settingsview.ThemeChangedMsg:
		m.settingsView, _ = m.settingsView.Update(msg)
		if msg.Err != nil {
			m.status = alertText(msg.Err)
			return m, nil
		}
		theme.Apply(msg.Name)
		m.catalogView.Restyle()
		m.detailView.Restyle()
		m.status = "theme: " + msg.Name
		return m, nil

	case settingsview.CloakMsg:
		m.settingsView, _ = m.settingsView.Update(msg)
		if msg.Err != nil {
			m.status = alertText(msg.Err)
			return m, nil
		}
		if msg.Applied {
			m.status = msg.Out.Message
		}
		return m, tea.SetWindowTitle(msg.Out.Title)

	case settingsview.EmbedMsg:
		if msg.Err != nil {
			m.status = alertText(msg.Err)
		} else {
			m.status = "embedded " + msg.Out.URL
		}
		return m, nil

	case components.PaletteSubmitMsg:
		return m.executePalette(msg.Input)

	case components.PaletteCancelMsg:
		m.status = "ready"
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Anything else (spinner ticks, cursor blinks) goes to the visible view.
	var cmd tea.Cmd
	switch {
	case m.detailView.IsOpen():
		m.detailView, cmd = m.detailView.Update(msg)
	case m.activeTab == tabSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	default:
		m.catalogView, cmd = m.catalogView.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// Text inputs own the keyboard while focused.
	var cmd tea.Cmd
	switch {
	case m.detailView.IsOpen():
		if !m.detailView.Editing() && msg.String() == ":" {
			cmd = m.palette.Open()
			return m, cmd
		}
		m.detailView, cmd = m.detailView.Update(msg)
		return m, cmd
	case m.activeTab == tabSettings && m.settingsView.Editing():
		m.settingsView, cmd = m.settingsView.Update(msg)
		return m, cmd
	case m.activeTab != tabSettings && m.catalogView.Searching():
		m.catalogView, cmd = m.catalogView.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		cmd = m.switchTab((m.activeTab + 1) % tabCount)
		return m, cmd
	case "shift+tab":
		cmd = m.switchTab((m.activeTab + tabCount - 1) % tabCount)
		return m, cmd
	case "?":
		m.showHelp = true
		return m, nil
	case ":":
		cmd = m.palette.Open()
		return m, cmd
	}

	if m.activeTab == tabSettings {
		m.settingsView, cmd = m.settingsView.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "enter", "L":
		if g, ok := m.catalogView.SelectedGame(); ok {
			return m, m.detailView.OpenCmd(g.ID, msg.String() == "L")
		}
		return m, nil
	case "f":
		if g, ok := m.catalogView.SelectedGame(); ok {
			return m, detailview.ToggleFavoriteCmd(m.detailView.Port(), g.ID)
		}
		return m, nil
	}
	m.catalogView, cmd = m.catalogView.Update(msg)
	return m, cmd
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	tabBar := m.renderTabBar()
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(tabBar) - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).
			Render(m.help.View(m.keys))
	case m.palette.Visible():
		content = lipgloss.Place(m.width, contentH,
			lipgloss.Center, lipgloss.Center, m.palette.View())
	case m.detailView.IsOpen():
		content = m.detailView.View()
	case m.activeTab == tabSettings:
		content = m.settingsView.View()
	default:
		content = m.catalogView.View()
	}

	return theme.App.Width(m.width).Render(
		lipgloss.JoinVertical(lipgloss.Left, tabBar, content, statusBar))
}

func (m Model) renderTabBar() string {
	parts := make([]string, tabCount)
	for i := tabID(0); i < tabCount; i++ {
		label := tabLabels[i]
		if i == tabFavorites {
			label = fmt.Sprintf("%s (%d)", label, m.favorites)
		}
		if i == m.activeTab {
			parts[i] = theme.Hot.Render(" " + label + " ")
		} else {
			parts[i] = theme.Muted.Render(" " + label + " ")
		}
	}
	sep := theme.Muted.Render(" │ ")
	bar := theme.Title.Render("NiamVerse") + "  " + strings.Join(parts, sep)
	return theme.Bar.Width(m.width).Render(bar) + "\n"
}

func (m Model) renderStatusBar() string {
	left := m.status
	if m.detailView.IsOpen() {
		left = theme.Hot.Render("● "+m.detailView.Game().Name) + "  " + left
	}
	right := theme.Muted.Render("?:help  tab:section  :::palette  q:quit")
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return "\n" + theme.Bar.Width(m.width).Render(left+strings.Repeat(" ", gap)+right)
}

// ─── palette execution ────────────────────────────────────────────────────────

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	if strings.TrimSpace(input) == "" {
		return m, nil
	}
	parts := strings.Fields(input)
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))

	switch parts[0] {
	case "open":
		if len(parts) < 2 {
			m.status = "usage: open <id> [launch]"
			return m, nil
		}
		id, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid game id"
			return m, nil
		}
		return m, m.detailView.OpenCmd(id, len(parts) > 2 && parts[2] == "launch")

	case "fav":
		id, selected := m.detailView.Game().ID, m.detailView.IsOpen()
		if !selected {
			if g, ok := m.catalogView.SelectedGame(); ok {
				id, selected = g.ID, true
			}
		}
		if len(parts) >= 2 {
			parsed, err := strconv.Atoi(parts[1])
			if err != nil {
				m.status = "invalid game id"
				return m, nil
			}
			id, selected = parsed, true
		}
		if !selected {
			m.status = "no game selected"
			return m, nil
		}
		return m, detailview.ToggleFavoriteCmd(m.detailView.Port(), id)

	case "rate":
		if len(parts) < 2 {
			m.status = "usage: rate <1-5>"
			return m, nil
		}
		stars, err := strconv.Atoi(parts[1])
		if err != nil {
			m.status = "invalid rating"
			return m, nil
		}
		return m, m.detailView.RateCmd(stars)

	case "notes":
		cmd := m.detailView.NotesCmd(rest)
		return m, cmd

	case "submit":
		return m, m.detailView.SubmitCmd()

	case "share":
		return m, m.detailView.ShareCmd()

	case "close":
		return m, m.detailView.CloseCmd()

	case "section":
		tab, ok := tabForSection(rest)
		if !ok {
			tab = tabHome
		}
		cmd := m.switchTab(tab)
		return m, cmd

	case "category":
		cmd := m.catalogView.SetCategory(rest)
		return m, cmd

	case "search":
		cmd := m.catalogView.SetSearch(rest)
		return m, cmd

	case "theme":
		if rest == "" {
			m.status = "usage: theme <name>"
			return m, nil
		}
		return m, m.settingsView.SetThemeCmd(rest)

	case "cloak":
		var title, icon string
		if len(parts) >= 2 {
			title = parts[1]
		}
		if len(parts) >= 3 {
			icon = parts[2]
		}
		return m, m.settingsView.ApplyCloakCmd(title, icon)

	case "embed":
		return m, m.settingsView.EmbedCmd(rest)

	case "reload":
		return m, m.reloadCmd()

	default:
		m.status = "unknown command: " + parts[0]
	}
	return m, nil
}

// ─── helpers ─────────────────────────────────────────────────────────────────

func (m *Model) switchTab(tab tabID) tea.Cmd {
	m.activeTab = tab
	if tab == tabSettings {
		return nil
	}
	return m.catalogView.SetSection(tabSections[tab])
}

func (m *Model) propagateSize() {
	sz := tea.WindowSizeMsg{Width: m.width - 4, Height: m.height - 6}
	m.catalogView, _ = m.catalogView.Update(sz)
	m.detailView, _ = m.detailView.Update(sz)
	m.settingsView, _ = m.settingsView.Update(sz)
}

func (m Model) reloadCmd() tea.Cmd {
	catalog := m.catalog
	return func() tea.Msg {
		out, err := catalog.Load(context.Background())
		return CatalogReloadedMsg{Out: out, Err: err}
	}
}

// alertText turns user-facing sentinel errors into the sentences the UI shows.
func alertText(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrRatingRequired):
		return "Please select a rating before submitting."
	case errors.Is(err, apperrors.ErrURLRequired):
		return "Please enter a URL to embed."
	case errors.Is(err, apperrors.ErrNoOpenEntry):
		return "Open a game first."
	}
	return err.Error()
}

// ─── port bridges ─────────────────────────────────────────────────────────────

type detailBridge struct {
	catalog catalogPort
	session sessionPort
	state   statePort
}

func (b detailBridge) GetGame(ctx context.Context, id int) (catalogdto.GameOutput, error) {
	return b.catalog.GetGame(ctx, id)
}
func (b detailBridge) Open(ctx context.Context, id int, launch bool) (sessiondto.OpenOutput, error) {
	return b.session.Open(ctx, id, launch)
}
func (b detailBridge) Close(ctx context.Context) (sessiondto.CloseOutput, error) {
	return b.session.Close(ctx)
}
func (b detailBridge) SetRating(ctx context.Context, stars int) (sessiondto.EntryOutput, error) {
	return b.session.SetRating(ctx, stars)
}
func (b detailBridge) SetNotes(ctx context.Context, notes string) (sessiondto.EntryOutput, error) {
	return b.session.SetNotes(ctx, notes)
}
func (b detailBridge) Submit(ctx context.Context, notes string) (sessiondto.SubmitOutput, error) {
	return b.session.Submit(ctx, notes)
}
func (b detailBridge) Share(ctx context.Context) (sessiondto.ShareOutput, error) {
	return b.session.Share(ctx)
}
func (b detailBridge) ToggleFavorite(ctx context.Context, id int) (userstatedto.ToggleFavoriteOutput, error) {
	return b.state.ToggleFavorite(ctx, id)
}

type settingsBridge struct {
	session sessionPort
	state   statePort
}

func (b settingsBridge) Themes(ctx context.Context) ([]userstatedto.ThemeOutput, error) {
	return b.state.Themes(ctx)
}
func (b settingsBridge) SetTheme(ctx context.Context, name string) ([]userstatedto.ThemeOutput, error) {
	return b.state.SetTheme(ctx, name)
}
func (b settingsBridge) Cloak(ctx context.Context) (sessiondto.CloakOutput, error) {
	return b.session.Cloak(ctx)
}
func (b settingsBridge) ApplyCloak(ctx context.Context, title, icon string) (sessiondto.CloakOutput, error) {
	return b.session.ApplyCloak(ctx, title, icon)
}
func (b settingsBridge) Embed(ctx context.Context, url string) (sessiondto.EmbedOutput, error) {
	return b.session.Embed(ctx, url)
}
