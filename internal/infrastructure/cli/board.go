package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Interactive TUI board of ideas and features",
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("COMPASS_SKIP_BOARD_RUN") == "true" {
			return nil
		}
		p := tea.NewProgram(initialBoardModel())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("board run failed: %w", err)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(boardCmd)
}

// Styles
var boardBaseStyle = lipgloss.NewStyle().
	BorderStyle(lipgloss.NormalBorder()).
	BorderForeground(lipgloss.Color("240"))

var boardHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("#FAFAFA")).
	Background(lipgloss.Color("#2563EB")).
	PaddingLeft(1).
	PaddingRight(1)

var boardDoneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
var boardWIPStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))

type boardModel struct {
	ideas    table.Model
	features table.Model
	active   int
	product  string
	latest   string
	err      error
}

func initialBoardModel() boardModel {
	services, err := loadServices()
	if err != nil {
		return boardModel{err: err}
	}

	productName := "compass"
	if p, perr := services.Org.GetProduct(); perr == nil {
		productName = p.Name
	}

	ranked, err := services.Idea.Rank()
	if err != nil {
		return boardModel{err: err}
	}
	features, err := services.Feature.List()
	if err != nil {
		return boardModel{err: err}
	}
	latest, _ := services.Release.LatestVersion()

	ideaColumns := []table.Column{
		{Title: "ID", Width: 12},
		{Title: "Idea", Width: 36},
		{Title: "Status", Width: 10},
		{Title: "Priority", Width: 8},
		{Title: "RICE", Width: 9},
		{Title: "Votes", Width: 6},
	}
	ideaRows := []table.Row{}
	for _, i := range ranked {
		d := i.Display()
		score := "-"
		if d.Scored() {
			score = fmt.Sprintf("%.1f", *d.RICE)
		}
		ideaRows = append(ideaRows, table.Row{i.ID, i.Title, string(i.Status), string(d.Manual), score, fmt.Sprintf("%d", i.Votes)})
	}

	featureColumns := []table.Column{
		{Title: "ID", Width: 12},
		{Title: "Feature", Width: 36},
		{Title: "Status", Width: 12},
		{Title: "Release", Width: 12},
		{Title: "Tasks", Width: 6},
	}
	featureRows := []table.Row{}
	for _, f := range features {
		releaseID := "-"
		if f.ReleaseID != nil {
			releaseID = *f.ReleaseID
		}
		featureRows = append(featureRows, table.Row{f.ID, f.Title, string(f.Status), releaseID, fmt.Sprintf("%d", len(f.Tasks))})
	}

	ideaTable := table.New(
		table.WithColumns(ideaColumns),
		table.WithRows(ideaRows),
		table.WithFocused(true),
		table.WithHeight(8),
	)
	featureTable := table.New(
		table.WithColumns(featureColumns),
		table.WithRows(featureRows),
		table.WithHeight(8),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240"))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229"))
	ideaTable.SetStyles(s)
	featureTable.SetStyles(s)

	return boardModel{
		ideas:    ideaTable,
		features: featureTable,
		product:  productName,
		latest:   latest,
	}
}

func (m boardModel) Init() tea.Cmd { return nil }

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "tab":
			m.active = (m.active + 1) % 2
			if m.active == 0 {
				m.ideas.Focus()
				m.features.Blur()
			} else {
				m.ideas.Blur()
				m.features.Focus()
			}
			return m, nil
		}
	}
	if m.active == 0 {
		m.ideas, cmd = m.ideas.Update(msg)
	} else {
		m.features, cmd = m.features.Update(msg)
	}
	return m, cmd
}

func (m boardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error loading board: %v\nPress q to quit.", m.err)
	}

	header := boardHeaderStyle.Render(fmt.Sprintf("%s  v%s", m.product, m.latest))

	return boardBaseStyle.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header,
			boardWIPStyle.Render("\nBacklog (by RICE):"),
			m.ideas.View(),
			boardDoneStyle.Render("\nDelivery Board:"),
			m.features.View(),
			"\n[tab] Switch  [q] Quit  [Up/Down] Navigate",
		),
	) + "\n"
}
