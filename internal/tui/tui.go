package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/kosynka/internal/randutil"
	"github.com/lox/kosynka/internal/solitaire"
)

// DecayMsg asks the model to apply one score decay tick
type DecayMsg struct{}

// Model is the Bubble Tea model for a game of solitaire
type Model struct {
	game    *solitaire.Game
	logger  *log.Logger
	newSeed func() int64

	// UI components
	logViewport viewport.Model
	input       textinput.Model

	gameLog     []string
	quitting    bool
	focusedPane int // 0 = log, 1 = input

	width       int
	height      int
	initialized bool
}

// NewModel creates a model playing game
func NewModel(game *solitaire.Game, logger *log.Logger) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "d to draw, m 3 5 to move, f w to build, help for more"
	ti.Focus()
	ti.CharLimit = 40
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Bold(true)
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	ti.Prompt = "> "

	m := &Model{
		game:        game,
		logger:      logger.WithPrefix("tui"),
		newSeed:     randutil.NewSeed,
		logViewport: vp,
		input:       ti,
		focusedPane: 1,
	}
	m.AddLogEntry(InfoStyle.Render(fmt.Sprintf("Dealt game %d. Type 'help' for commands.", game.Seed())))
	return m
}

// Game returns the game being played
func (m *Model) Game() *solitaire.Game {
	return m.game
}

// Log returns the entries written to the log pane
func (m *Model) Log() []string {
	return m.gameLog
}

// Init initializes the TUI model
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case DecayMsg:
		m.game.DecreaseScore()
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		case "tab":
			if m.focusedPane == 0 {
				m.focusedPane = 1
				m.input.Focus()
			} else {
				m.focusedPane = 0
				m.input.Blur()
			}
		case "enter":
			if m.focusedPane == 1 {
				quit := m.Execute(m.input.Value())
				m.input.SetValue("")
				if quit {
					return m, tea.Sequence(tea.ClearScreen, tea.Quit)
				}
			}
		case "up", "k":
			if m.focusedPane == 0 {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == 0 {
				m.logViewport.ScrollDown(1)
			}
		case "home", "g":
			if m.focusedPane == 0 {
				m.logViewport.GotoTop()
			}
		case "end", "G":
			if m.focusedPane == 0 {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == 1 {
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// Execute runs one line of input against the game and logs the outcome. It
// reports whether the user asked to quit.
func (m *Model) Execute(input string) bool {
	input = strings.TrimSpace(input)
	if input == "" {
		return false
	}
	m.AddLogEntry(InfoStyle.Render("> " + input))

	cmd, err := ParseCommand(input)
	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(err.Error()))
		return false
	}

	wasWon := m.game.Status() == solitaire.Won
	switch cmd.Kind {
	case CmdQuit:
		m.quitting = true
		return true
	case CmdHelp:
		m.AddLogEntry(HelpText)
		return false
	case CmdNew:
		seed := m.newSeed()
		if cmd.Seed != nil {
			seed = *cmd.Seed
		}
		m.game.NewGame(seed)
		m.AddLogEntry(SuccessStyle.Render(fmt.Sprintf("Dealt game %d", seed)))
		return false
	case CmdDraw:
		err = m.game.DrawFromStock()
	case CmdRecycle:
		err = m.game.RecycleWaste()
	case CmdFoundation:
		err = m.game.MoveToFoundation(cmd.Source)
	case CmdMove:
		err = m.game.MoveToTableau(cmd.Source, cmd.Column)
	}

	if err != nil {
		m.AddLogEntry(ErrorStyle.Render(describeError(err)))
		return false
	}
	if !wasWon && m.game.Status() == solitaire.Won {
		m.AddLogEntry(SuccessStyle.Render(fmt.Sprintf("You won with %d points! 'n' deals again.", m.game.Score())))
	}
	return false
}

func describeError(err error) string {
	switch {
	case errors.Is(err, solitaire.ErrGameOver):
		return "The game is over, 'n' deals a new one"
	case errors.Is(err, solitaire.ErrIllegalMove), errors.Is(err, solitaire.ErrInvalidRef):
		return "Can't do that: " + err.Error()
	default:
		return err.Error()
	}
}

// AddLogEntry appends a line to the log pane and scrolls to it
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.GotoBottom()
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	board := RenderBoard(m.game.Snapshot())
	boardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#1B5E20")).
		Padding(0, 1)
	boardPane := boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, HeaderStyle.Render("Kosynka"), "", board))

	actionContent := m.renderActionPane()
	actionStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#04B575")).
		Width(max(m.width-2, 1))
	actionPane := actionStyle.Render(actionContent)

	logWidth := max(m.width-lipgloss.Width(boardPane)-2, 1)
	logHeight := max(m.height-lipgloss.Height(actionPane)-2, 1)
	m.logViewport.Width = logWidth
	m.logViewport.Height = logHeight
	if !m.initialized && logWidth > 1 && logHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}

	logStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#626262")).
		Width(logWidth).
		Height(logHeight)
	if m.focusedPane == 0 {
		logStyle = logStyle.BorderForeground(lipgloss.Color("#04B575"))
	}
	logPane := logStyle.Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, boardPane, logPane)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, actionPane)
}

func (m *Model) renderActionPane() string {
	var content strings.Builder
	content.WriteString(m.input.View())
	content.WriteString("\n")

	hint := "Tab to scroll log • Enter to submit • Ctrl+C to quit"
	if m.focusedPane == 0 {
		hint = "Log focused: ↑↓ scroll, Home/End, Tab to input"
	}
	content.WriteString(InfoStyle.Render(hint))
	return content.String()
}
