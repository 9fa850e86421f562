// Package tui renders the table to the terminal with Bubble Tea. The
// model never owns game state: it polls controller snapshots on a
// timer and translates keystrokes into controller commands.
package tui

import (
	"fmt"
	rand "math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/ammadhh/gemini-test-chips/internal/deck"
	"github.com/ammadhh/gemini-test-chips/internal/evaluator"
	"github.com/ammadhh/gemini-test-chips/internal/randutil"
	"github.com/ammadhh/gemini-test-chips/internal/stats"
	"github.com/ammadhh/gemini-test-chips/internal/table"
)

type screen int

const (
	screenName screen = iota
	screenTable
)

const refreshInterval = 100 * time.Millisecond

// tickMsg drives the snapshot refresh loop.
type tickMsg time.Time

// Model is the Bubble Tea model for a single table session.
type Model struct {
	ctrl    *table.Controller
	session *stats.Shared
	logger  *log.Logger

	screen    screen
	nameInput textinput.Model
	betInput  textinput.Model
	betting   bool

	history     []string
	historyView viewport.Model
	lastSeen    string

	snap     table.Snapshot
	errMsg   string
	width    int
	height   int
	quitting bool

	rng       *rand.Rand
	equity    float64
	equityKey string
}

// New builds a model bound to a running controller.
func New(ctrl *table.Controller, session *stats.Shared, logger *log.Logger) *Model {
	name := textinput.New()
	name.Placeholder = "Your name"
	name.Focus()
	name.CharLimit = 24
	name.Width = 24
	name.Prompt = "> "
	name.PromptStyle = ActingStyle

	bet := textinput.New()
	bet.Placeholder = "amount"
	bet.CharLimit = 8
	bet.Width = 12
	bet.Prompt = "$ "
	bet.PromptStyle = WarningStyle

	vp := viewport.New(60, 6)

	return &Model{
		ctrl:        ctrl,
		session:     session,
		logger:      logger.WithPrefix("tui"),
		screen:      screenName,
		nameInput:   name,
		betInput:    bet,
		historyView: vp,
		snap:        ctrl.Snapshot(),
		rng:         randutil.New(time.Now().UnixNano()),
	}
}

// SkipNameEntry bypasses the name prompt and starts play at once,
// for sessions where the name came from flags or config.
func (m *Model) SkipNameEntry() {
	if m.screen != screenName {
		return
	}
	if err := m.ctrl.SetupNewRound(); err != nil {
		m.logger.Error("starting first round", "error", err)
	}
	m.screen = screenTable
	m.refresh()
}

// Init initializes the model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.tick())
}

func (m *Model) tick() tea.Cmd {
	return tea.Tick(refreshInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.refresh()
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.historyView.Width = max(20, m.width-4)
		m.historyView.Height = 6

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateInputs(msg)
}

// refresh pulls the latest snapshot and folds new table activity into
// the history pane.
func (m *Model) refresh() {
	m.snap = m.ctrl.Snapshot()
	if m.snap.LastAction != "" && m.snap.LastAction != m.lastSeen {
		m.lastSeen = m.snap.LastAction
		m.history = append(m.history, m.snap.LastAction)
		m.historyView.SetContent(strings.Join(m.history, "\n"))
		m.historyView.GotoBottom()
	}
	m.updateEquity()
}

// updateEquity recomputes the human seat's win estimate when the
// visible situation changes (new hand, new street, opponents folding).
func (m *Model) updateEquity() {
	seat := m.humanSeat()
	if m.snap.Phase != table.InRound || seat == nil || seat.Folded || len(seat.Hand) != 2 {
		m.equity = 0
		m.equityKey = ""
		return
	}

	opponents := 0
	for _, s := range m.snap.Seats {
		if !s.Human && !s.Folded {
			opponents++
		}
	}
	if opponents == 0 {
		m.equity = 0
		m.equityKey = ""
		return
	}

	key := fmt.Sprintf("%v|%d|%d|%s", m.snap.Street, len(m.snap.CommunityCards), opponents, seat.Hand[0])
	if key == m.equityKey {
		return
	}
	m.equityKey = key
	m.equity = evaluator.Estimate(m.rng, seat.Hand, m.snap.CommunityCards, opponents, 1000)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)
	}

	switch m.screen {
	case screenName:
		return m.handleNameKey(msg)
	case screenTable:
		return m.handleTableKey(msg)
	}
	return m, nil
}

func (m *Model) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "enter" {
		name := strings.TrimSpace(m.nameInput.Value())
		if name != "" {
			if err := m.ctrl.SetHumanName(name); err != nil {
				m.errMsg = "name not accepted"
				return m, nil
			}
		}
		if err := m.ctrl.SetupNewRound(); err != nil {
			m.logger.Error("starting first round", "error", err)
		}
		m.screen = screenTable
		m.errMsg = ""
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.snap.Phase == table.GameOver {
		switch msg.String() {
		case "n", "enter":
			if err := m.ctrl.ResetGame(); err != nil {
				m.logger.Error("resetting game", "error", err)
				return m, nil
			}
			if err := m.ctrl.SetupNewRound(); err != nil {
				m.logger.Error("starting new game", "error", err)
			}
			m.history = nil
			m.lastSeen = ""
			m.historyView.SetContent("")
			m.errMsg = ""
			m.refresh()
		case "q":
			m.quitting = true
			return m, tea.Sequence(tea.ClearScreen, tea.Quit)
		}
		return m, nil
	}

	if m.betting {
		return m.handleBetKey(msg)
	}

	switch msg.String() {
	case "q":
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)
	case "f":
		m.command("fold", m.ctrl.Fold)
	case "c":
		m.command("check", m.ctrl.Check)
	case "a":
		m.command("call", m.ctrl.Call)
	case "b", "r":
		if !m.humanTurn() {
			m.errMsg = "not your turn"
			return m, nil
		}
		m.betting = true
		m.errMsg = ""
		m.betInput.SetValue("")
		m.betInput.Placeholder = m.betPlaceholder()
		m.betInput.Focus()
		return m, textinput.Blink
	}
	return m, nil
}

func (m *Model) handleBetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.betting = false
		m.betInput.Blur()
		return m, nil
	case "enter":
		amount, err := strconv.Atoi(strings.TrimSpace(m.betInput.Value()))
		if err != nil || amount <= 0 {
			m.errMsg = "enter a chip amount"
			return m, nil
		}
		if m.snap.TableBet == 0 {
			m.command(fmt.Sprintf("bet %d", amount), func() error { return m.ctrl.Bet(amount) })
		} else {
			m.command(fmt.Sprintf("raise to %d", amount), func() error { return m.ctrl.Raise(amount) })
		}
		if m.errMsg == "" {
			m.betting = false
			m.betInput.Blur()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.betInput, cmd = m.betInput.Update(msg)
	return m, cmd
}

// command runs a controller action and surfaces rejections without
// ending the session.
func (m *Model) command(name string, fn func() error) {
	if err := fn(); err != nil {
		m.logger.Debug("command rejected", "command", name, "error", err)
		m.errMsg = fmt.Sprintf("can't %s right now", name)
		return
	}
	m.errMsg = ""
	m.refresh()
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	if m.screen == screenName {
		m.nameInput, cmd = m.nameInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.betting {
		m.betInput, cmd = m.betInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.historyView, cmd = m.historyView.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *Model) humanTurn() bool {
	return m.snap.Phase == table.InRound &&
		m.snap.ActingSeat >= 0 &&
		m.snap.Seats[m.snap.ActingSeat].Human
}

func (m *Model) humanSeat() *table.SeatView {
	for i := range m.snap.Seats {
		if m.snap.Seats[i].Human {
			return &m.snap.Seats[i]
		}
	}
	return nil
}

func (m *Model) betPlaceholder() string {
	seat := m.humanSeat()
	if seat == nil {
		return "amount"
	}
	if m.snap.TableBet == 0 {
		return fmt.Sprintf("bet 1-%d", seat.Chips)
	}
	return fmt.Sprintf("raise to %d-%d", m.snap.TableBet+1, seat.CurrentBet+seat.Chips)
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.screen == screenName {
		return m.renderNameEntry()
	}
	return m.renderTable()
}

func (m *Model) renderNameEntry() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Texas Hold'em"))
	b.WriteString("\n\n")
	b.WriteString("Take a seat. What should we call you?\n\n")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n\n")
	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}
	b.WriteString(InfoStyle.Render("Enter to sit down • Ctrl+C to quit"))
	return b.String()
}

func (m *Model) renderTable() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Texas Hold'em"))
	b.WriteString("  ")
	b.WriteString(InfoStyle.Render(m.snap.Street.Label()))
	b.WriteString("\n\n")

	b.WriteString(m.renderSeats())
	b.WriteString("\n")
	b.WriteString(m.renderBoard())
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(PaneStyle.Render(m.historyView.View()))
	b.WriteString("\n")
	b.WriteString(m.renderActionBar())

	if m.snap.Phase == table.GameOver {
		return lipgloss.JoinVertical(lipgloss.Left, b.String(), m.renderGameOver())
	}
	return b.String()
}

func (m *Model) renderSeats() string {
	var rows []string
	for i, s := range m.snap.Seats {
		marker := "  "
		if i == m.snap.ActingSeat {
			marker = ActingStyle.Render("▶ ")
		}

		name := s.Name
		if s.Folded {
			name = FoldedStyle.Render(name)
		} else if s.Human {
			name = HandInfoStyle.Render(name)
		}

		line := fmt.Sprintf("%s%s  $%d  %s", marker, name, s.Chips, m.formatCards(s.Hand))
		if s.CurrentBet > 0 {
			line += WarningStyle.Render(fmt.Sprintf("  bet $%d", s.CurrentBet))
		}
		rows = append(rows, line)
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderBoard() string {
	if len(m.snap.CommunityCards) == 0 {
		return InfoStyle.Render("Board: (no cards yet)")
	}
	return "Board: " + m.formatCards(m.snap.CommunityCards)
}

func (m *Model) renderStatus() string {
	var b strings.Builder
	b.WriteString(WarningStyle.Render(fmt.Sprintf("Pot: $%d", m.snap.Pot)))
	if m.snap.TableBet > 0 {
		b.WriteString(WarningStyle.Render(fmt.Sprintf("  Bet to match: $%d", m.snap.TableBet)))
	}

	if m.equity > 0 {
		b.WriteString(HandInfoStyle.Render(fmt.Sprintf("  Win chance: %.0f%%", m.equity*100)))
	}

	view := m.session.View()
	if view.HandsPlayed > 0 {
		b.WriteString(InfoStyle.Render(fmt.Sprintf(
			"   Hands: %d  Won: %d (%.1f%%)  Avg pot: $%d",
			view.HandsPlayed, view.GamesWon, view.WinLossRatio(), view.AveragePotWon())))
	}
	return b.String()
}

func (m *Model) renderActionBar() string {
	if m.betting {
		label := "Bet"
		if m.snap.TableBet > 0 {
			label = "Raise to"
		}
		return fmt.Sprintf("%s %s  %s", ActionsStyle.Render(label), m.betInput.View(),
			InfoStyle.Render("Enter to confirm • Esc to cancel"))
	}

	var b strings.Builder
	if m.errMsg != "" {
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	if !m.humanTurn() {
		b.WriteString(InfoStyle.Render("Waiting... • q to quit"))
		return b.String()
	}

	seat := m.snap.Seats[m.snap.ActingSeat]
	toCall := m.snap.TableBet - seat.CurrentBet

	var actions []string
	actions = append(actions, ErrorStyle.Render("[f]old"))
	if toCall == 0 {
		actions = append(actions, SuccessStyle.Render("[c]heck"))
	}
	if toCall > 0 && seat.Chips >= toCall {
		actions = append(actions, SuccessStyle.Render(fmt.Sprintf("c[a]ll $%d", toCall)))
	}
	if m.snap.TableBet == 0 && seat.Chips > 0 {
		actions = append(actions, WarningStyle.Render("[b]et"))
	}
	if m.snap.TableBet > 0 && seat.Chips > toCall {
		actions = append(actions, WarningStyle.Render("[r]aise"))
	}

	b.WriteString(ActionsStyle.Render("Your move: "))
	b.WriteString(strings.Join(actions, " "))
	return b.String()
}

func (m *Model) renderGameOver() string {
	view := m.session.View()
	body := fmt.Sprintf(
		"GAME OVER\n\n%s\n\nHands played: %d\nGames won: %d (%.1f%%)\nTotal winnings: $%d\n\n[n] new game   [q] quit",
		m.snap.LastAction, view.HandsPlayed, view.GamesWon, view.WinLossRatio(), view.TotalWinnings)
	return OverlayStyle.Render(body)
}

// formatCards formats cards with suit colors, hiding face-down cards.
func (m *Model) formatCards(cards []deck.Card) string {
	if len(cards) == 0 {
		return InfoStyle.Render("[--]")
	}

	var formatted []string
	for _, card := range cards {
		switch {
		case !card.FaceUp:
			formatted = append(formatted, InfoStyle.Render("??"))
		case card.IsRed():
			formatted = append(formatted, RedCardStyle.Render(card.String()))
		default:
			formatted = append(formatted, BlackCardStyle.Render(card.String()))
		}
	}
	return "[" + strings.Join(formatted, " ") + "]"
}
