package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-2048/internal/registry"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 90  // Minimum width to show the variant sidebar
	sidebarWidth       = 24  // Width of variant sidebar
	maxScores          = 100 // Max scores to load
)

var (
	borderColor = lipgloss.Color("240")
	accentColor = lipgloss.Color("229")
	mutedColor  = lipgloss.Color("241")
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "scroll down"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab/→", "next board"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab/←", "prev board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	games       []registry.GameInfo
	gameCursor  int
	store       *storage.Store
	scores      []storage.ScoreEntry
	stats       *storage.GameStats
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	embedded    bool // Owned by a session model; never quits the program itself
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		games:       registry.List(),
		store:       store,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	m.table = m.createTable()
	if len(m.games) > 0 {
		m.loadScores(m.games[0].ID)
	}

	return m
}

// createTable creates a new table sized for the current window.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Tile", Width: 6},
		{Title: "Moves", Width: 6},
		{Title: "Date", Width: 12},
	}

	tableWidth := m.width - 4
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	// Give spare room to the date column
	if spare := tableWidth - 47; spare > 0 {
		columns[4].Width += min(spare, 8)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-10)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(borderColor).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(accentColor).
		Background(lipgloss.Color("130")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadScores loads scores and aggregate stats for the given game ID.
func (m *ScoreboardModel) loadScores(gameID string) {
	m.scores = nil
	m.stats = nil

	if m.store != nil {
		if scores, err := m.store.TopScores(gameID, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(gameID); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	m.table.SetRows(scoreRows(m.scores))
	m.table.GotoTop()
}

// scoreRows formats score entries as table rows.
func scoreRows(scores []storage.ScoreEntry) []table.Row {
	rows := make([]table.Row, len(scores))
	for i, s := range scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.MaxTile),
			strconv.Itoa(s.Moves),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, m.exit()

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, m.exit()

		case key.Matches(msg, m.keys.NextGame):
			m.selectGame(m.gameCursor + 1)
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			m.selectGame(m.gameCursor - 1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling and everything else goes to the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// exit ends a standalone scoreboard program.
func (m ScoreboardModel) exit() tea.Cmd {
	if m.embedded {
		return nil
	}
	return tea.Quit
}

// selectGame moves the cursor to index i, wrapping around.
func (m *ScoreboardModel) selectGame(i int) {
	if len(m.games) == 0 {
		return
	}
	m.gameCursor = (i + len(m.games)) % len(m.games)
	m.loadScores(m.games[m.gameCursor].ID)
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(accentColor)

	title := "HIGH SCORES"
	if len(m.games) > 0 {
		title = fmt.Sprintf("HIGH SCORES - %s", m.games[m.gameCursor].Title)
	}

	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(m.statsLine()))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(mutedColor).Render(m.help.View(m.keys)))

	return b.String()
}

// statsLine summarizes the selected variant.
func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.GamesCount == 0 {
		return "No games finished yet"
	}
	s := m.stats
	return fmt.Sprintf("Games: %d  Best: %d  Best tile: %d  Avg: %.0f  Moves: %d  Last: %s",
		s.GamesCount, s.HighScore, s.BestTile, s.AvgScore, s.TotalMoves,
		s.LastPlayed.Format("Jan 02 15:04"))
}

// renderWideLayout renders the scoreboard with a sidebar listing variants.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Boards\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, g := range m.games {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.gameCursor {
			cursor = "> "
			style = style.Bold(true).Foreground(accentColor)
		}
		sidebar.WriteString(style.Render(cursor + truncate(g.Title, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the scoreboard with the current variant above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	if len(m.games) > 0 {
		tab := fmt.Sprintf("< %s (%d/%d) >", m.games[m.gameCursor].Title, m.gameCursor+1, len(m.games))
		b.WriteString(centerText(tab, m.width))
		b.WriteString("\n\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))

	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(mutedColor).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nFinish a game to set a high score!")
	}

	return m.table.View()
}

// truncate shortens s to at most n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n || n < 2 {
		return s
	}
	return string(r[:n-1]) + "."
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard screen.
// Returns true if user wants to go back to menu, false if quitting.
func RunScoreboard(store *storage.Store, width, height int, opts ...tea.ProgramOption) (goBack bool, err error) {
	model := NewScoreboardModel(store, width, height)

	p := tea.NewProgram(model, append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)...)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(ScoreboardModel)
	if !ok {
		return false, nil
	}

	return m.IsGoingBack(), nil
}
