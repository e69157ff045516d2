package tui

import (
	"fmt"
	rand "math/rand/v2"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/randutil"
	"github.com/sjoves/poker-shootout/poker"
)

// gridColumns is the card grid width; a full deck makes four rows
const gridColumns = 13

// tickMsg drives the one-second game clock
type tickMsg time.Time

// Model is the Bubble Tea model for a locally played session
type Model struct {
	logger *log.Logger
	sess   game.Session
	rng    *rand.Rand

	cursor  int
	history viewport.Model
	results []string
	status  string

	width    int
	height   int
	quitting bool
}

// NewModel creates a model playing the given mode. A zero seed draws a
// fresh one.
func NewModel(mode game.Mode, cfg game.Config, seed int64, logger *log.Logger) *Model {
	if seed == 0 {
		seed = randutil.Seed()
	}
	rng := randutil.New(seed)

	vp := viewport.New(34, 10)
	vp.SetContent("")

	return &Model{
		logger:  logger.WithPrefix("tui"),
		sess:    game.NewSession(mode, cfg, rng),
		rng:     rng,
		history: vp,
	}
}

// Init starts the game clock
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update handles messages in the TUI
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.logger.Debug("Updating dimensions", "width", msg.Width, "height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

		historyWidth := m.width / 3
		if historyWidth < 20 {
			historyWidth = 20
		}
		historyHeight := m.height - 18
		if historyHeight < 4 {
			historyHeight = 4
		}
		m.history.Width = historyWidth
		m.history.Height = historyHeight
		return m, nil

	case tickMsg:
		was := m.sess.Status
		m.sess = game.Tick(m.sess)
		m.noteTransition(was)
		if m.sess.Status.Terminal() {
			return m, nil
		}
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Sequence(tea.ClearScreen, tea.Quit)
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-gridColumns)
	case "down", "j":
		m.moveCursor(gridColumns)
	case " ":
		m.selectUnderCursor()
	case "u":
		m.deselectLast()
	case "x":
		m.clearSelection()
	case "enter", "s":
		m.submitHand()
	case "1":
		m.usePowerUp(game.PowerUpSharpshooter)
	case "2":
		m.usePowerUp(game.PowerUpTimeShift)
	case "3":
		m.usePowerUp(game.PowerUpRedraw)
	case "a":
		m.advance()
	case "f":
		m.finishEarly()
	}
	return m, nil
}

// visible returns the selectable cards. Bonus rounds deal from the window
// at the top of the deck; everything else spreads the whole pool.
func (m *Model) visible() []poker.Card {
	if m.sess.Status == game.StatusBonusRound && len(m.sess.Pool) > poker.BonusWindow {
		return m.sess.Pool[:poker.BonusWindow]
	}
	return m.sess.Pool
}

func (m *Model) moveCursor(delta int) {
	cards := m.visible()
	if len(cards) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor >= len(cards) {
		m.cursor = len(cards) - 1
	}
}

func (m *Model) clampCursor() {
	cards := m.visible()
	if m.cursor >= len(cards) {
		m.cursor = len(cards) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m *Model) selectUnderCursor() {
	cards := m.visible()
	if len(cards) == 0 {
		return
	}
	m.clampCursor()

	next, err := game.Select(m.sess, cards[m.cursor].ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.sess = next
	m.status = ""
	m.clampCursor()
}

func (m *Model) deselectLast() {
	if len(m.sess.Selected) == 0 {
		return
	}
	last := m.sess.Selected[len(m.sess.Selected)-1]
	next, err := game.Deselect(m.sess, last.ID)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.sess = next
	m.status = ""
}

func (m *Model) clearSelection() {
	for len(m.sess.Selected) > 0 {
		last := m.sess.Selected[len(m.sess.Selected)-1]
		next, err := game.Deselect(m.sess, last.ID)
		if err != nil {
			m.status = err.Error()
			return
		}
		m.sess = next
	}
	m.status = ""
}

func (m *Model) submitHand() {
	before := m.sess.Score
	next, hr, err := game.Submit(m.sess)
	if err != nil {
		m.status = err.Error()
		return
	}
	m.sess = next
	m.logResult(hr, next.Score-before)
	m.status = ""
	m.clampCursor()
}

func (m *Model) usePowerUp(p game.PowerUp) {
	next, ok := game.UsePowerUp(m.sess, p, m.rng)
	if !ok {
		m.status = fmt.Sprintf("%s not available", p)
		return
	}
	m.logger.Debug("Power-up used", "powerUp", p)
	m.sess = next
	m.status = fmt.Sprintf("used %s", p)
	m.clampCursor()
}

func (m *Model) advance() {
	next := game.AdvanceLevel(m.sess, m.rng)
	if next.Status == m.sess.Status && next.Level == m.sess.Level {
		return
	}
	m.logger.Debug("Advancing", "level", next.Level, "status", next.Status)
	m.sess = next
	m.cursor = 0
	m.status = ""
}

func (m *Model) finishEarly() {
	next := game.Finish(m.sess)
	if next.Status == m.sess.Status {
		m.status = "only a classic run can be cashed out early"
		return
	}
	m.sess = next
}

// noteTransition records clock-driven status changes in the history log
func (m *Model) noteTransition(was game.Status) {
	now := m.sess.Status
	if was == now {
		return
	}
	switch {
	case was == game.StatusBonusRound && now == game.StatusLevelComplete:
		m.appendHistory(SuccessStyle.Render("Bonus round cleared!"))
	case now == game.StatusBonusFailed:
		m.appendHistory(ErrorStyle.Render("Bonus round slipped away"))
	case now == game.StatusComplete:
		m.appendHistory(SuccessStyle.Render("Time! Final score settled"))
	case now == game.StatusGameOver:
		m.appendHistory(ErrorStyle.Render("Out of time"))
	}
}

func (m *Model) logResult(hr poker.HandResult, awarded int) {
	line := fmt.Sprintf("%s  +%d", hr.Category, awarded)
	if m.sess.Mode == game.Challenge && m.sess.Streak > 1 {
		line += fmt.Sprintf("  (streak x%.1f)", game.StreakMultiplier(m.sess.Streak))
	}
	m.appendHistory(line)
}

func (m *Model) appendHistory(line string) {
	m.results = append(m.results, line)
	m.history.SetContent(strings.Join(m.results, "\n"))
	if m.history.Height > 0 {
		m.history.GotoBottom()
	}
}

// View renders the TUI
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	header := m.renderHeader()

	var body string
	switch m.sess.Status {
	case game.StatusLevelComplete:
		body = m.renderLevelComplete()
	case game.StatusBonusFailed:
		body = m.renderBonusFailed()
	case game.StatusComplete, game.StatusGameOver:
		body = m.renderGameOver()
	default:
		body = m.renderTable()
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, m.renderFooter())
}

func (m *Model) renderHeader() string {
	parts := []string{
		HeaderStyle.Render("POKER SHOOTOUT " + m.sess.Mode.String()),
		ScoreStyle.Render(fmt.Sprintf("Score %d", m.sess.Score)),
		fmt.Sprintf("Hands %d", m.sess.HandsPlayed),
	}

	if m.sess.Mode == game.Challenge {
		parts = append(parts,
			fmt.Sprintf("Level %d (%s)", m.sess.Level, m.sess.Phase),
			fmt.Sprintf("Goal %d/%d", m.sess.LevelScore, m.sess.Goal))
		if m.sess.Streak > 1 {
			parts = append(parts,
				WarningStyle.Render(fmt.Sprintf("Streak x%.1f", game.StreakMultiplier(m.sess.Streak))))
		}
	}

	parts = append(parts, m.renderClock())
	return strings.Join(parts, "  ")
}

func (m *Model) renderClock() string {
	if m.sess.Mode == game.Classic {
		return TimerStyle.Render("Elapsed " + fmtClock(m.sess.TimeElapsed))
	}
	remaining := fmtClock(m.sess.TimeRemaining)
	if m.sess.TimeRemaining > 0 && m.sess.TimeRemaining <= game.FinalStretchSeconds {
		return FinalStretchStyle.Render("Time " + remaining + " x2!")
	}
	return TimerStyle.Render("Time " + remaining)
}

func (m *Model) renderTable() string {
	grid := PaneStyle.Render(m.renderGrid())
	sidebar := PaneStyle.Render(m.renderSidebar())
	return lipgloss.JoinHorizontal(lipgloss.Top, grid, sidebar)
}

// renderGrid lays the visible pool out in rows, cursor highlighted
func (m *Model) renderGrid() string {
	cards := m.visible()
	if len(cards) == 0 {
		return InfoStyle.Render("no cards left")
	}

	var rows []string
	for start := 0; start < len(cards); start += gridColumns {
		end := start + gridColumns
		if end > len(cards) {
			end = len(cards)
		}
		var cells []string
		for i := start; i < end; i++ {
			cells = append(cells, m.renderCell(cards[i], i == m.cursor))
		}
		rows = append(rows, strings.Join(cells, " "))
	}

	if m.sess.Status == game.StatusBonusRound && len(m.sess.Pool) > poker.BonusWindow {
		rows = append(rows, "", InfoStyle.Render(
			fmt.Sprintf("bonus window: %d of %d cards shown", poker.BonusWindow, len(m.sess.Pool))))
	}

	return strings.Join(rows, "\n")
}

func (m *Model) renderCell(c poker.Card, underCursor bool) string {
	label := fmt.Sprintf("%-3s", c.String())
	if underCursor {
		return CursorCardStyle.Render(label)
	}
	if c.IsRed() {
		return RedCardStyle.Render(label)
	}
	return BlackCardStyle.Render(label)
}

func (m *Model) renderSidebar() string {
	var b strings.Builder

	b.WriteString(HandInfoStyle.Render("Selected"))
	b.WriteString("\n")
	if len(m.sess.Selected) == 0 {
		b.WriteString(InfoStyle.Render("(pick five cards)"))
		b.WriteString("\n")
	} else {
		var cells []string
		for _, c := range m.sess.Selected {
			cells = append(cells, SelectedCardStyle.Render(fmt.Sprintf("%-3s", c.String())))
		}
		b.WriteString(strings.Join(cells, " "))
		b.WriteString("\n")

		preview := game.Preview(m.sess)
		b.WriteString(HandInfoStyle.Render(
			fmt.Sprintf("%s  %d pts", preview.Category, preview.TotalPoints)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(ActionsStyle.Render("Power-ups"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("1 sharpshooter x%d  2 time shift x%d  3 redraw x%d\n",
		m.sess.Charges.Sharpshooter, m.sess.Charges.TimeShift, m.sess.Charges.Redraw))
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString(ErrorStyle.Render(m.status))
		b.WriteString("\n\n")
	}

	if len(m.results) > 0 {
		b.WriteString(InfoStyle.Render("Recent hands"))
		b.WriteString("\n")
		b.WriteString(m.history.View())
	}

	return b.String()
}

func (m *Model) renderLevelComplete() string {
	var b strings.Builder
	b.WriteString(SuccessStyle.Render(fmt.Sprintf("Level %d complete!", m.sess.Level)))
	b.WriteString("\n\n")
	b.WriteString(StarStyle.Render(strings.Repeat("★ ", m.sess.Stars) + strings.Repeat("☆ ", 3-m.sess.Stars)))
	b.WriteString("\n\n")
	b.WriteString(fmt.Sprintf("Level score %d against a goal of %d\n", m.sess.LevelScore, m.sess.Goal))
	if m.sess.BonusPending {
		b.WriteString(WarningStyle.Render("Bonus round up next!"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(InfoStyle.Render("press a to continue"))
	return PaneStyle.Render(b.String())
}

func (m *Model) renderBonusFailed() string {
	var b strings.Builder
	b.WriteString(ErrorStyle.Render("Bonus round missed"))
	b.WriteString("\n\n")
	b.WriteString("No hands scored before the bonus clock ran out.\n")
	b.WriteString("The cleared level still counts.\n\n")
	b.WriteString(InfoStyle.Render("press a to continue"))
	return PaneStyle.Render(b.String())
}

func (m *Model) renderGameOver() string {
	var b strings.Builder

	switch m.sess.Mode {
	case game.Blitz:
		b.WriteString(HeaderStyle.Render("TIME!"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%d raw points x %d hands\n", m.sess.RawScore, m.sess.HandsPlayed))
	case game.Classic:
		b.WriteString(HeaderStyle.Render("DECK DONE"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Cleared in %s with %d hands\n", fmtClock(m.sess.TimeElapsed), m.sess.HandsPlayed))
	case game.Challenge:
		b.WriteString(HeaderStyle.Render("GAME OVER"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("Reached level %d\n", m.sess.Level))
	}

	b.WriteString("\n")
	b.WriteString(ScoreStyle.Render(fmt.Sprintf("Final score: %d", m.sess.Score)))
	b.WriteString("\n\n")
	b.WriteString(InfoStyle.Render("press q to quit"))
	return PaneStyle.Render(b.String())
}

func (m *Model) renderFooter() string {
	switch m.sess.Status {
	case game.StatusLevelComplete, game.StatusBonusFailed:
		return InfoStyle.Render("a continue • q quit")
	case game.StatusComplete, game.StatusGameOver:
		return InfoStyle.Render("q quit")
	}

	help := "←↓↑→ move • space select • u undo • x clear • enter submit • 1/2/3 power-ups • q quit"
	if m.sess.Mode == game.Classic {
		help += " • f cash out"
	}
	return InfoStyle.Render(help)
}

// fmtClock formats whole seconds as M:SS
func fmtClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
