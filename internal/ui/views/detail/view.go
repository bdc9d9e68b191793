package detail

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	catalogdto "niamverse/internal/modules/catalog/dto"
	sessiondto "niamverse/internal/modules/session/dto"
	userstatedto "niamverse/internal/modules/userstate/dto"
	"niamverse/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	GetGame(ctx context.Context, id int) (catalogdto.GameOutput, error)
	Open(ctx context.Context, gameID int, launch bool) (sessiondto.OpenOutput, error)
	Close(ctx context.Context) (sessiondto.CloseOutput, error)
	SetRating(ctx context.Context, stars int) (sessiondto.EntryOutput, error)
	SetNotes(ctx context.Context, notes string) (sessiondto.EntryOutput, error)
	Submit(ctx context.Context, notes string) (sessiondto.SubmitOutput, error)
	Share(ctx context.Context) (sessiondto.ShareOutput, error)
	ToggleFavorite(ctx context.Context, gameID int) (userstatedto.ToggleFavoriteOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type OpenedMsg struct {
	Game catalogdto.GameOutput
	Open sessiondto.OpenOutput
	Err  error
}

type ClosedMsg struct {
	Out sessiondto.CloseOutput
	Err error
}

type EntryMsg struct {
	Entry sessiondto.EntryOutput
	Err   error
}

type SubmittedMsg struct {
	Out sessiondto.SubmitOutput
	Err error
}

type SharedMsg struct {
	Out sessiondto.ShareOutput
	Err error
}

type FavoriteMsg struct {
	Out userstatedto.ToggleFavoriteOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type Model struct {
	port     Port
	game     catalogdto.GameOutput
	entry    sessiondto.EntryOutput
	notes    textinput.Model
	viewport viewport.Model
	renderer *glamour.TermRenderer
	width    int
	height   int
}

func New(port Port) Model {
	ti := textinput.New()
	ti.Placeholder = "Leave a note (optional)"
	ti.Prompt = "notes: "
	ti.CharLimit = 500

	m := Model{
		port:     port,
		notes:    ti,
		viewport: viewport.New(0, 0),
	}
	m.Restyle()
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// IsOpen reports whether a game is showing.
func (m Model) IsOpen() bool { return m.entry.Open }

// Editing reports whether the notes input has focus; global keys yield then.
func (m Model) Editing() bool { return m.notes.Focused() }

func (m Model) Game() catalogdto.GameOutput { return m.game }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case OpenedMsg:
		if msg.Err != nil {
			return m, nil
		}
		m.game = msg.Game
		m.entry = msg.Open.Entry
		m.notes.SetValue("")
		m.refreshContent()
		return m, nil

	case ClosedMsg:
		m.entry = sessiondto.EntryOutput{}
		m.game = catalogdto.GameOutput{}
		m.notes.Blur()
		m.notes.SetValue("")
		return m, nil

	case EntryMsg:
		if msg.Err == nil {
			m.entry = msg.Entry
			m.refreshContent()
		}
		return m, nil

	case SubmittedMsg:
		if msg.Err == nil {
			m.entry.Rating = 0
			m.entry.Notes = ""
			m.notes.SetValue("")
			m.refreshContent()
		}
		return m, nil

	case FavoriteMsg:
		if msg.Err == nil && msg.Out.GameID == m.game.ID {
			m.game.Favorite = msg.Out.Favorite
			m.refreshContent()
		}
		return m, nil

	case tea.KeyMsg:
		if !m.entry.Open {
			return m, nil
		}
		if m.notes.Focused() {
			switch msg.String() {
			case "enter", "esc":
				m.notes.Blur()
				return m, m.setNotesCmd(m.notes.Value())
			}
			var cmd tea.Cmd
			m.notes, cmd = m.notes.Update(msg)
			return m, cmd
		}
		switch s := msg.String(); s {
		case "1", "2", "3", "4", "5":
			return m, m.setRatingCmd(int(s[0] - '0'))
		case "n":
			cmd := m.notes.Focus()
			return m, cmd
		case "enter":
			return m, m.submitCmd(m.notes.Value())
		case "f":
			return m, m.ToggleFavorite()
		case "s":
			return m, m.ShareCmd()
		case "esc":
			return m, m.CloseCmd()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if !m.entry.Open {
		return theme.Muted.Render("No game open")
	}
	footer := lipgloss.JoinVertical(lipgloss.Left,
		m.ratingLine(),
		m.notes.View(),
		theme.Muted.Render("1-5 rate  n notes  enter submit  f favorite  s share  esc close"),
	)
	return lipgloss.JoinVertical(lipgloss.Left, theme.PaneActive.Width(m.width-2).Render(m.viewport.View()), footer)
}

// ─── commands ────────────────────────────────────────────────────────────────

// OpenCmd opens a game by id; launch hands its link to the launcher as well.
func (m Model) OpenCmd(gameID int, launch bool) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		ctx := context.Background()
		game, err := port.GetGame(ctx, gameID)
		if err != nil {
			return OpenedMsg{Err: err}
		}
		out, err := port.Open(ctx, gameID, launch)
		return OpenedMsg{Game: game, Open: out, Err: err}
	}
}

func (m Model) CloseCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.Close(context.Background())
		return ClosedMsg{Out: out, Err: err}
	}
}

func (m Model) setRatingCmd(stars int) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		entry, err := port.SetRating(context.Background(), stars)
		return EntryMsg{Entry: entry, Err: err}
	}
}

// RateCmd sets the rating from outside the view (the palette).
func (m Model) RateCmd(stars int) tea.Cmd { return m.setRatingCmd(stars) }

func (m Model) setNotesCmd(notes string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		entry, err := port.SetNotes(context.Background(), notes)
		return EntryMsg{Entry: entry, Err: err}
	}
}

// NotesCmd replaces the notes draft from outside the view (the palette).
func (m *Model) NotesCmd(notes string) tea.Cmd {
	m.notes.SetValue(notes)
	return m.setNotesCmd(notes)
}

func (m Model) submitCmd(notes string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.Submit(context.Background(), notes)
		return SubmittedMsg{Out: out, Err: err}
	}
}

func (m Model) SubmitCmd() tea.Cmd { return m.submitCmd(m.notes.Value()) }

func (m Model) ShareCmd() tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.Share(context.Background())
		return SharedMsg{Out: out, Err: err}
	}
}

func (m Model) ToggleFavorite() tea.Cmd {
	return ToggleFavoriteCmd(m.port, m.game.ID)
}

// ToggleFavoriteCmd flips a game's favorite flag without the game being open.
func ToggleFavoriteCmd(port Port, gameID int) tea.Cmd {
	return func() tea.Msg {
		out, err := port.ToggleFavorite(context.Background(), gameID)
		return FavoriteMsg{Out: out, Err: err}
	}
}

// Restyle rebuilds the markdown renderer for the active theme.
func (m *Model) Restyle() {
	width := m.width - 6
	if width < 20 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(theme.GlamourStyle()),
		glamour.WithWordWrap(width),
	)
	if err == nil {
		m.renderer = r
	}
	m.notes.PromptStyle = lipgloss.NewStyle().Foreground(theme.Lavender)
	m.viewport.Style = lipgloss.NewStyle().Foreground(theme.Text)
	if m.entry.Open {
		m.refreshContent()
	}
}

// ─── rendering ───────────────────────────────────────────────────────────────

func (m *Model) resize() {
	m.viewport.Width = m.width - 6
	m.viewport.Height = m.height - 8
	if m.viewport.Height < 3 {
		m.viewport.Height = 3
	}
	m.notes.Width = m.width - 12
	m.Restyle()
}

func (m *Model) refreshContent() {
	m.viewport.SetContent(m.renderContent())
}

func (m Model) renderContent() string {
	g := m.game
	var sb strings.Builder
	heart := theme.Muted.Render("♡")
	if g.Favorite {
		heart = theme.Heart.Render("♥")
	}
	sb.WriteString(theme.Title.Render(g.Name) + "  " + heart + "\n\n")

	about := g.About
	if about == "" {
		about = "_No description available._"
	}
	if m.renderer != nil {
		if out, err := m.renderer.Render(about); err == nil {
			about = out
		}
	}
	sb.WriteString(about + "\n")

	for _, row := range [][2]string{
		{"category", g.Category},
		{"genre", g.Genre},
		{"popularity", g.Popularity},
		{"released", g.ReleaseDate},
		{"build", g.Build},
		{"developer", g.Developer},
		{"controls", g.Controls},
		{"link", g.Link},
	} {
		if row[1] == "" {
			continue
		}
		sb.WriteString(theme.Muted.Render(fmt.Sprintf("%-11s", row[0]+":")) + row[1] + "\n")
	}
	return sb.String()
}

func (m Model) ratingLine() string {
	return theme.Muted.Render("rating: ") + Stars(m.entry.Rating)
}

// Stars draws a 5-star gauge with the first n filled.
func Stars(n int) string {
	var sb strings.Builder
	for i := 1; i <= 5; i++ {
		if i <= n {
			sb.WriteString(theme.Star.Render("★"))
		} else {
			sb.WriteString(theme.Muted.Render("☆"))
		}
	}
	return sb.String()
}

// Port exposes the view's port so callers can issue favorite toggles for
// games that are not open.
func (m Model) Port() Port { return m.port }
