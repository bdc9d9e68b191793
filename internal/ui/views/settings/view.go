package settings

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	sessiondto "niamverse/internal/modules/session/dto"
	userstatedto "niamverse/internal/modules/userstate/dto"
	"niamverse/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type Port interface {
	Themes(ctx context.Context) ([]userstatedto.ThemeOutput, error)
	SetTheme(ctx context.Context, name string) ([]userstatedto.ThemeOutput, error)
	Cloak(ctx context.Context) (sessiondto.CloakOutput, error)
	ApplyCloak(ctx context.Context, title, icon string) (sessiondto.CloakOutput, error)
	Embed(ctx context.Context, url string) (sessiondto.EmbedOutput, error)
}

// ─── messages ────────────────────────────────────────────────────────────────

type ThemesMsg struct {
	Options []userstatedto.ThemeOutput
	Err     error
}

// ThemeChangedMsg carries the options after a switch; the root model repaints.
type ThemeChangedMsg struct {
	Name    string
	Options []userstatedto.ThemeOutput
	Err     error
}

type CloakMsg struct {
	Out     sessiondto.CloakOutput
	Applied bool
	Err     error
}

type EmbedMsg struct {
	Out sessiondto.EmbedOutput
	Err error
}

// ─── model ───────────────────────────────────────────────────────────────────

type field int

const (
	fieldThemes field = iota
	fieldTitle
	fieldIcon
	fieldEmbed
)

type Model struct {
	port    Port
	options []userstatedto.ThemeOutput
	cursor  int
	focus   field
	title   textinput.Model
	icon    textinput.Model
	embed   textinput.Model
	cloak   sessiondto.CloakOutput
	width   int
	height  int
}

func New(port Port) Model {
	newInput := func(prompt, placeholder string) textinput.Model {
		ti := textinput.New()
		ti.Prompt = prompt
		ti.Placeholder = placeholder
		ti.CharLimit = 256
		return ti
	}
	return Model{
		port:  port,
		title: newInput("title: ", "NiamVerse"),
		icon:  newInput("icon:  ", "logo.png"),
		embed: newInput("url:   ", "https://…"),
	}
}

func (m Model) Init() tea.Cmd {
	port := m.port
	return tea.Batch(
		func() tea.Msg {
			options, err := port.Themes(context.Background())
			return ThemesMsg{Options: options, Err: err}
		},
		func() tea.Msg {
			out, err := port.Cloak(context.Background())
			return CloakMsg{Out: out, Err: err}
		},
	)
}

// Editing reports whether a text input has focus; global keys yield then.
func (m Model) Editing() bool { return m.focus != fieldThemes }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, in := range []*textinput.Model{&m.title, &m.icon, &m.embed} {
			in.Width = m.width - 12
		}
		return m, nil

	case ThemesMsg:
		if msg.Err == nil {
			m.setOptions(msg.Options)
		}
		return m, nil

	case ThemeChangedMsg:
		if msg.Err == nil {
			m.setOptions(msg.Options)
		}
		return m, nil

	case CloakMsg:
		if msg.Err == nil {
			m.cloak = msg.Out
		}
		return m, nil

	case tea.KeyMsg:
		if m.focus != fieldThemes {
			return m.updateInput(msg)
		}
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			if m.cursor < len(m.options) {
				return m, m.SetThemeCmd(m.options[m.cursor].Name)
			}
		case "t":
			cmd := m.focusField(fieldTitle)
			return m, cmd
		case "i":
			cmd := m.focusField(fieldIcon)
			return m, cmd
		case "e":
			cmd := m.focusField(fieldEmbed)
			return m, cmd
		}
	}
	return m, nil
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Theme") + "\n")
	for i, o := range m.options {
		cursor := "  "
		if i == m.cursor && m.focus == fieldThemes {
			cursor = theme.Hot.Render("> ")
		}
		name := o.Name
		if o.Active {
			name = theme.Hot.Render(name + " ✓")
		}
		sb.WriteString(cursor + name + "\n")
	}

	sb.WriteString("\n" + theme.Title.Render("Tab cloak") + "  " +
		theme.Muted.Render("current: "+m.cloak.Title+" / "+m.cloak.Icon) + "\n")
	sb.WriteString(m.title.View() + "\n")
	sb.WriteString(m.icon.View() + "\n")

	sb.WriteString("\n" + theme.Title.Render("Embed") + "\n")
	sb.WriteString(m.embed.View() + "\n\n")

	sb.WriteString(theme.Muted.Render("↑/↓ choose  enter apply  t title  i icon  e embed  esc back"))
	return lipgloss.NewStyle().Width(m.width).Render(sb.String())
}

// ─── commands ────────────────────────────────────────────────────────────────

func (m Model) SetThemeCmd(name string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		options, err := port.SetTheme(context.Background(), name)
		return ThemeChangedMsg{Name: name, Options: options, Err: err}
	}
}

func (m Model) ApplyCloakCmd(title, icon string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.ApplyCloak(context.Background(), title, icon)
		return CloakMsg{Out: out, Applied: true, Err: err}
	}
}

func (m Model) EmbedCmd(url string) tea.Cmd {
	port := m.port
	return func() tea.Msg {
		out, err := port.Embed(context.Background(), url)
		return EmbedMsg{Out: out, Err: err}
	}
}

// ─── private ─────────────────────────────────────────────────────────────────

func (m *Model) setOptions(options []userstatedto.ThemeOutput) {
	m.options = options
	for i, o := range options {
		if o.Active {
			m.cursor = i
		}
	}
}

func (m *Model) focusField(f field) tea.Cmd {
	m.focus = f
	switch f {
	case fieldTitle:
		return m.title.Focus()
	case fieldIcon:
		return m.icon.Focus()
	case fieldEmbed:
		return m.embed.Focus()
	}
	return nil
}

func (m Model) updateInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	active := m.activeInput()
	switch msg.String() {
	case "esc":
		active.Blur()
		m.focus = fieldThemes
		return m, nil
	case "enter":
		active.Blur()
		f := m.focus
		m.focus = fieldThemes
		if f == fieldEmbed {
			url := m.embed.Value()
			return m, m.EmbedCmd(url)
		}
		return m, m.ApplyCloakCmd(m.title.Value(), m.icon.Value())
	}
	var cmd tea.Cmd
	*active, cmd = active.Update(msg)
	return m, cmd
}

func (m *Model) activeInput() *textinput.Model {
	switch m.focus {
	case fieldIcon:
		return &m.icon
	case fieldEmbed:
		return &m.embed
	}
	return &m.title
}
