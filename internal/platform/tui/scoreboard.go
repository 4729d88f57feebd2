package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vkoshelev/snowline/internal/storage"
)

// maxRuns caps how many runs the table loads.
const maxRuns = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
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

var (
	scoreboardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("14")).
				Padding(0, 1)

	scoreboardStatsStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245")).
				Padding(0, 1)

	scoreboardBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))
)

// ScoreboardModel displays the run history in a scrollable table.
type ScoreboardModel struct {
	store    *storage.Store
	table    table.Model
	keys     ScoreboardKeyMap
	help     help.Model
	stats    *storage.Stats
	quitting bool
	width    int
	height   int
}

// NewScoreboardModel creates a scoreboard backed by the given store.
func NewScoreboardModel(store *storage.Store) ScoreboardModel {
	m := ScoreboardModel{
		store: store,
		keys:  DefaultScoreboardKeyMap(),
		help:  help.New(),
	}
	m.reload()
	return m
}

// reload fetches runs and rebuilds the table.
func (m *ScoreboardModel) reload() {
	columns := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Distance", Width: 10},
		{Title: "Max spd", Width: 8},
		{Title: "Airtime", Width: 8},
		{Title: "Fate", Width: 8},
		{Title: "Date", Width: 17},
	}

	var rows []table.Row
	if m.store != nil {
		runs, err := m.store.TopRuns(maxRuns)
		if err == nil {
			for i, run := range runs {
				fate := "caught"
				if !run.Caught {
					fate = "escaped"
				}
				rows = append(rows, table.Row{
					fmt.Sprintf("%d", i+1),
					fmt.Sprintf("%d", run.Score),
					fmt.Sprintf("%.0f m", run.Distance),
					fmt.Sprintf("%.1f", run.MaxSpeed),
					fmt.Sprintf("%d", run.AirTicks),
					fate,
					run.CreatedAt.Format("2006-01-02 15:04"),
				})
			}
		}
		if stats, err := m.store.GetStats(); err == nil {
			m.stats = stats
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).Foreground(lipgloss.Color("14"))
	styles.Selected = styles.Selected.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("14"))
	t.SetStyles(styles)

	m.table = t
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if msg.Height > 10 {
			m.table.SetHeight(msg.Height - 8)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Back):
			m.quitting = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	title := scoreboardTitleStyle.Render("Snowline · Best Runs")

	statsLine := ""
	if m.stats != nil && m.stats.RunCount > 0 {
		statsLine = scoreboardStatsStyle.Render(fmt.Sprintf(
			"%d runs  |  best %d  |  avg %.0f  |  %.0f m total",
			m.stats.RunCount, m.stats.HighScore, m.stats.AvgScore, m.stats.TotalDistance,
		))
	}

	body := scoreboardBorderStyle.Render(m.table.View())
	if len(m.table.Rows()) == 0 {
		body = scoreboardStatsStyle.Render("No runs recorded yet. Play 'snowline play' to set the first one!")
	}

	helpView := m.help.View(m.keys)

	return lipgloss.JoinVertical(lipgloss.Left, title, statsLine, body, helpView)
}

// RunScoreboard starts the interactive scoreboard.
func RunScoreboard(store *storage.Store) error {
	p := tea.NewProgram(NewScoreboardModel(store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
