// Package tui provides the interactive Bubble Tea dashboard for budgetterrr.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mikeintech/budgetterrr/internal/cli"
	"github.com/mikeintech/budgetterrr/internal/engine"
	"github.com/mikeintech/budgetterrr/internal/goal"
	"github.com/mikeintech/budgetterrr/internal/model"
	"github.com/mikeintech/budgetterrr/internal/sim"
	"github.com/mikeintech/budgetterrr/internal/store"
	"github.com/mikeintech/budgetterrr/internal/tui/components"
	"github.com/mikeintech/budgetterrr/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the snapshot finishes loading from the store.
type DataLoadedMsg struct {
	Data     model.UserData
	Empty    bool
	CaughtUp int // pay periods applied on load
	Err      error
	LoadTime time.Duration
}

// SavedMsg reports the result of a background snapshot save.
type SavedMsg struct {
	Err error
}

// App is the root Bubble Tea model.
type App struct {
	// Data
	data     model.UserData
	loaded   bool
	loadErr  error
	loadTime time.Duration
	caughtUp int

	dbPath     string
	thresholds goal.AlertThresholds

	// What-if state, rebuilt from the snapshot on load and toggle
	simState sim.State

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab cursors
	goalCursor int
	debtCursor int
	simCursor  int

	settings settingsState

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
	saveErr error
	ticks   int
}

const (
	minTerminalWidth = 80
	compactWidth     = 110
	maxContentWidth  = 160
	minContentHeight = 5

	// Reload the snapshot this often so daemon writes show up.
	reloadTicks = 30 // at 1s per tick
)

// NewApp creates the TUI app model for the given database path.
func NewApp(dbPath string, thresholds goal.AlertThresholds) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		dbPath:     dbPath,
		thresholds: thresholds,
		spinner:    sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath),
		a.spinner.Tick,
		tickCmd(),
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}

		switch msg.Button {
		case tea.MouseButtonWheelUp:
			a.moveCursor(-1)
			return a, nil
		case tea.MouseButtonWheelDown:
			a.moveCursor(1)
			return a, nil
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)

	case DataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		a.caughtUp = msg.CaughtUp
		if msg.Err == nil {
			a.data = msg.Data
			a.simState = rebuildSim(a.data, a.simState.ActiveScenarios)
			a.clampCursors()
		}

		if msg.Empty && !a.needSetup {
			a.needSetup = true
			a.setupForm = newSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case SavedMsg:
		a.saveErr = msg.Err
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil

	case tickMsg:
		a.ticks++
		cmds := []tea.Cmd{tickCmd()}
		if a.loaded && !a.needSetup && a.ticks >= reloadTicks {
			a.ticks = 0
			cmds = append(cmds, loadDataCmd(a.dbPath))
		}
		return a, tea.Batch(cmds...)
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return a, tea.Quit
	}

	if !a.loaded {
		return a, nil
	}

	// First-run setup wizard intercepts all keys
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	// Settings tab text input intercepts all keys while editing
	if a.activeTab == 4 && a.settings.editing {
		return a.updateSettingsInput(msg)
	}

	if key == "?" {
		a.showHelp = !a.showHelp
		return a, nil
	}
	if a.showHelp {
		a.showHelp = false
		return a, nil
	}

	switch key {
	case "q":
		return a, tea.Quit
	case "r":
		return a, loadDataCmd(a.dbPath)
	case "j", "down":
		if a.activeTab == 4 {
			if a.settings.cursor < settingsFieldCount-1 {
				a.settings.cursor++
			}
			return a, nil
		}
		a.moveCursor(1)
		return a, nil
	case "k", "up":
		if a.activeTab == 4 {
			if a.settings.cursor > 0 {
				a.settings.cursor--
			}
			return a, nil
		}
		a.moveCursor(-1)
		return a, nil
	case "home":
		a.setCursor(0)
		return a, nil
	case "end":
		a.setCursor(1 << 30)
		return a, nil
	case "enter", " ":
		switch a.activeTab {
		case 3:
			a.toggleScenario()
			return a, nil
		case 4:
			return a.settingsStartEdit()
		}
		return a, nil
	case "left":
		a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		return a, nil
	case "right":
		a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		return a, nil
	}

	// Tab shortcut keys
	if len(key) == 1 {
		if idx := components.TabIdxByKey(rune(key[0])); idx >= 0 {
			a.activeTab = idx
		}
	}
	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		now := time.Now()
		a.data = buildSetupData(a.setupVals, now)
		_ = saveSetupTheme(a.setupVals.theme)
		a.simState = rebuildSim(a.data, nil)
		a.needSetup = false
		a.setupForm = nil
		return a, saveDataCmd(a.dbPath, a.data)
	}

	if a.setupForm.State == huh.StateAborted {
		a.needSetup = false
		a.setupForm = nil
		return a, nil
	}

	return a, cmd
}

// moveCursor moves the active tab's list cursor by delta, clamped.
func (a *App) moveCursor(delta int) {
	switch a.activeTab {
	case 1:
		a.goalCursor = clamp(a.goalCursor+delta, 0, len(a.data.SavingsGoal.Goals)-1)
	case 2:
		a.debtCursor = clamp(a.debtCursor+delta, 0, len(a.data.Debts)-1)
	case 3:
		a.simCursor = clamp(a.simCursor+delta, 0, len(a.simState.Scenarios)-1)
	}
}

func (a *App) setCursor(pos int) {
	switch a.activeTab {
	case 1:
		a.goalCursor = clamp(pos, 0, len(a.data.SavingsGoal.Goals)-1)
	case 2:
		a.debtCursor = clamp(pos, 0, len(a.data.Debts)-1)
	case 3:
		a.simCursor = clamp(pos, 0, len(a.simState.Scenarios)-1)
	}
}

func (a *App) clampCursors() {
	a.goalCursor = clamp(a.goalCursor, 0, len(a.data.SavingsGoal.Goals)-1)
	a.debtCursor = clamp(a.debtCursor, 0, len(a.data.Debts)-1)
	a.simCursor = clamp(a.simCursor, 0, len(a.simState.Scenarios)-1)
}

// toggleScenario flips the scenario under the cursor. Scenario effects
// don't invert cleanly, so turning one off rebuilds the state from the
// live snapshot and re-applies what remains.
func (a *App) toggleScenario() {
	if a.simCursor < 0 || a.simCursor >= len(a.simState.Scenarios) {
		return
	}
	id := a.simState.Scenarios[a.simCursor].ID

	if !a.simState.IsActive(id) {
		a.simState = sim.Apply(a.simState, id)
		return
	}

	remaining := make([]string, 0, len(a.simState.ActiveScenarios))
	for _, active := range a.simState.ActiveScenarios {
		if active != id {
			remaining = append(remaining, active)
		}
	}
	a.simState = rebuildSim(a.data, remaining)
}

func rebuildSim(data model.UserData, active []string) sim.State {
	state := sim.NewState(data.Budget, data.SavingsGoal)
	for _, id := range active {
		state = sim.Apply(state, id)
	}
	return state
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  budgetterrr needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(2, 4)

	logoStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(logoStyle.Render("◈ budgetterrr"))
	b.WriteString(subtitleStyle.Render(" · Paycheck Budgeting"))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface).Render(a.spinner.View()))
	b.WriteString(subtitleStyle.Render(" Loading your snapshot..."))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.BorderAccent).
		Background(t.Surface).
		Padding(1, 3)

	titleStyle := lipgloss.NewStyle().
		Foreground(t.AccentBright).
		Background(t.Surface).
		Bold(true)

	sectionStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Background(t.Surface).
		Bold(true)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Cyan).
		Background(t.Surface).
		Bold(true)

	descStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Background(t.Surface)

	dimStyle := lipgloss.NewStyle().
		Foreground(t.TextDim).
		Background(t.Surface)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Keyboard Shortcuts"))
	b.WriteString("\n\n")

	b.WriteString(sectionStyle.Render("Navigation"))
	b.WriteString("\n")
	navBindings := []struct{ key, desc string }{
		{"o g d s x", "Jump to tab"},
		{"← →", "Previous / Next tab"},
		{"j k", "Navigate lists"},
		{"Home End", "First / Last entry"},
	}
	for _, bind := range navBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(sectionStyle.Render("Actions"))
	b.WriteString("\n")
	actionBindings := []struct{ key, desc string }{
		{"Enter", "Toggle scenario / Edit setting"},
		{"Esc", "Cancel edit"},
		{"r", "Reload snapshot"},
		{"?", "Toggle help"},
		{"q", "Quit"},
	}
	for _, bind := range actionBindings {
		fmt.Fprintf(&b, "  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-10s", bind.key)),
			descStyle.Render(bind.desc))
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Press any key to close"))

	card := cardStyle.Render(b.String())

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	statusBar := components.RenderStatusBar(w,
		cli.FormatMoney(a.data.Budget.CurrentCash),
		cli.FormatMoney(a.data.SavingsGoal.CurrentAmount))

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderGoalsTab(cw)
	case 2:
		content = a.renderDebtsTab(cw)
	case 3:
		content = a.renderSimulateTab(cw)
	case 4:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

type tickMsg struct{}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

// loadDataCmd loads the snapshot, applying any elapsed pay periods and
// persisting the advanced state before handing it to the UI.
func loadDataCmd(dbPath string) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()

		st, err := store.Open(dbPath)
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}
		defer func() { _ = st.Close() }()

		empty, err := st.Empty()
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		data, err := st.Load()
		if err != nil {
			return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
		}

		now := time.Now()
		caughtUp := engine.PeriodsElapsed(data, now)
		if caughtUp > 0 {
			data = engine.CatchUp(data, now)
			if err := st.Save(data); err != nil {
				return DataLoadedMsg{Err: err, LoadTime: time.Since(start)}
			}
		}

		return DataLoadedMsg{
			Data:     data,
			Empty:    empty,
			CaughtUp: caughtUp,
			LoadTime: time.Since(start),
		}
	}
}

// saveDataCmd persists the snapshot in the background.
func saveDataCmd(dbPath string, data model.UserData) tea.Cmd {
	return func() tea.Msg {
		st, err := store.Open(dbPath)
		if err != nil {
			return SavedMsg{Err: err}
		}
		defer func() { _ = st.Close() }()
		return SavedMsg{Err: st.Save(data)}
	}
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Split(s, "\n")
	if len(lines) >= h {
		return s
	}
	return s + strings.Repeat("\n", h-len(lines))
}

// fillLinesWithBackground pads each line to width w with background color
// so gaps between cards and empty lines keep a uniform fill.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	lines := strings.Split(s, "\n")

	var result strings.Builder
	for i, line := range lines {
		placed := lipgloss.PlaceHorizontal(w, lipgloss.Left, line,
			lipgloss.WithWhitespaceBackground(bg))
		result.WriteString(placed)
		if i < len(lines)-1 {
			result.WriteString("\n")
		}
	}
	return result.String()
}

// tabAtX returns the tab index at the given X coordinate, or -1.
// Hitboxes must walk the bar with the same widths RenderTabBar uses.
func (a App) tabAtX(x int) int {
	pos := 0
	for i, tab := range components.Tabs {
		tabW := components.TabVisualWidth(tab, i == a.activeTab)
		if x >= pos && x < pos+tabW {
			return i
		}
		pos += tabW
	}
	return -1
}
