package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/f3rmion/tenpai/internal/analyzer"
	"github.com/f3rmion/tenpai/internal/clipboard"
	"github.com/f3rmion/tenpai/internal/mahjong"
	"github.com/f3rmion/tenpai/internal/render"
)

// Analyzer runs one analysis.
type Analyzer interface {
	Analyze(ctx context.Context, req analyzer.Request) (analyzer.Outcome, error)
}

// Options wires optional collaborators into the app.
type Options struct {
	// Record is called after every successful analysis.
	Record func(req analyzer.Request, out analyzer.Outcome)
	// Copy defaults to the system clipboard.
	Copy func(text string) error
}

const (
	focusHand = iota
	focusDora
)

// analysisMsg carries a finished analysis back to Update.
type analysisMsg struct {
	seq int
	req analyzer.Request
	out analyzer.Outcome
	err error
}

type clearCopiedMsg struct{}

func clearCopiedAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearCopiedMsg{}
	})
}

// AppModel is the interactive hand analysis model.
type AppModel struct {
	ctx      context.Context
	analyzer Analyzer
	opts     Options

	handInput textinput.Model
	doraInput textinput.Model
	focus     int

	scenario mahjong.Scenario
	only     string // scenario filter, empty for all

	running bool
	seq     int
	outcome *analyzer.Outcome
	err     error
	copied  bool

	width    int
	height   int
	showHelp bool
}

// NewApp creates the interactive app. base supplies the initial winds.
func NewApp(ctx context.Context, a Analyzer, base mahjong.Scenario, opts Options) AppModel {
	if opts.Copy == nil {
		opts.Copy = clipboard.Write
	}

	hand := newInput("Hand, e.g. 234m456p678s11z55z", 60)
	hand.Focus()
	dora := newInput("Dora indicators, e.g. 3s", 30)

	return AppModel{
		ctx:       ctx,
		analyzer:  a,
		opts:      opts,
		handInput: hand,
		doraInput: dora,
		scenario:  base,
	}
}

func newInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = 44
	ti.PromptStyle = lipgloss.NewStyle().Foreground(render.ColorSecondary)
	ti.TextStyle = lipgloss.NewStyle().Foreground(render.ColorAccent)
	return ti
}

// Init initializes the model
func (m AppModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "?":
			if m.handInput.Value() == "" && m.doraInput.Value() == "" {
				m.showHelp = true
				return m, nil
			}
		case "tab", "shift+tab":
			m.toggleFocus()
			return m, nil
		case "enter":
			return m.startAnalysis()
		case "ctrl+s":
			m.scenario = m.scenario.WithSeatWind(m.scenario.SeatWind.Next())
			return m, nil
		case "ctrl+n":
			m.scenario = m.scenario.WithRoundWind(m.scenario.RoundWind.Next())
			return m, nil
		case "ctrl+t":
			m.scenario = m.scenario.WithSelfDraw(!m.scenario.SelfDraw)
			return m, nil
		case "ctrl+r":
			m.scenario = m.scenario.WithRiichi(!m.scenario.Riichi)
			return m, nil
		case "ctrl+f":
			m.only = nextFilter(m.only)
			return m, nil
		case "ctrl+y":
			if m.outcome != nil {
				if err := m.opts.Copy(string(m.outcome.Canonical)); err != nil {
					m.err = err
					return m, nil
				}
				m.copied = true
				return m, clearCopiedAfter(2 * time.Second)
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case analysisMsg:
		if msg.seq != m.seq {
			return m, nil
		}
		m.running = false
		if msg.err != nil {
			m.err = msg.err
			m.outcome = nil
			return m, nil
		}
		m.err = nil
		m.outcome = &msg.out
		if m.opts.Record != nil {
			m.opts.Record(msg.req, msg.out)
		}
		return m, nil

	case clearCopiedMsg:
		m.copied = false
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == focusHand {
		m.handInput, cmd = m.handInput.Update(msg)
	} else {
		m.doraInput, cmd = m.doraInput.Update(msg)
	}
	return m, cmd
}

func (m *AppModel) toggleFocus() {
	if m.focus == focusHand {
		m.focus = focusDora
		m.handInput.Blur()
		m.doraInput.Focus()
		return
	}
	m.focus = focusHand
	m.doraInput.Blur()
	m.handInput.Focus()
}

func nextFilter(only string) string {
	labels := mahjong.ScenarioLabels()
	if only == "" {
		return labels[0]
	}
	for i, l := range labels {
		if l == only && i+1 < len(labels) {
			return labels[i+1]
		}
	}
	return ""
}

// startAnalysis launches the analysis in a command so the UI stays live
// while the oracle answers.
func (m AppModel) startAnalysis() (tea.Model, tea.Cmd) {
	tiles := strings.Fields(m.handInput.Value())
	if len(tiles) == 0 {
		return m, nil
	}

	req := analyzer.Request{
		Tiles:    tiles,
		Dora:     strings.Fields(m.doraInput.Value()),
		Scenario: m.scenario,
	}
	m.seq++
	m.running = true
	m.err = nil

	seq, ctx, a := m.seq, m.ctx, m.analyzer
	return m, func() tea.Msg {
		out, err := a.Analyze(ctx, req)
		return analysisMsg{seq: seq, req: req, out: out, err: err}
	}
}

// View renders the UI
func (m AppModel) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder

	b.WriteString(TitleStyle.Render("tenpai"))
	b.WriteString(" ")
	b.WriteString(SubtitleStyle.Render("riichi hand analysis"))
	b.WriteString("\n\n")

	handBox, doraBox := InputBoxStyle, InputBoxStyle
	if m.focus == focusHand {
		handBox = InputBoxActiveStyle
	} else {
		doraBox = InputBoxActiveStyle
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		handBox.Render(m.handInput.View()),
		" ",
		doraBox.Render(m.doraInput.View()),
	))
	b.WriteString("\n")
	b.WriteString(m.renderToggles())
	b.WriteString("\n")

	switch {
	case m.running:
		b.WriteString("\n")
		b.WriteString(LoadingStyle.Render("Asking the scoring oracle..."))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	case m.outcome != nil:
		b.WriteString("\n")
		var out strings.Builder
		if err := render.Outcome(&out, *m.outcome, m.only); err != nil {
			b.WriteString(ErrorStyle.Render(err.Error()))
		} else {
			b.WriteString(out.String())
		}
	}

	b.WriteString("\n")
	help := "enter: analyze • tab: switch input • ctrl+y: copy • ?: help • esc: quit"
	if m.copied {
		b.WriteString(CopiedStyle.Render("Copied!"))
		b.WriteString("  ")
	}
	b.WriteString(HelpStyle.Render(help))

	return ContentStyle.Render(b.String())
}

func (m AppModel) renderToggles() string {
	toggle := func(name string, on bool) string {
		if on {
			return ToggleOnStyle.Render("[x] " + name)
		}
		return ToggleOffStyle.Render("[ ] " + name)
	}

	only := "all"
	if m.only != "" {
		only = m.only
	}

	return strings.Join([]string{
		fmt.Sprintf("seat %s", m.scenario.SeatWind),
		fmt.Sprintf("round %s", m.scenario.RoundWind),
		toggle("tsumo", m.scenario.SelfDraw),
		toggle("riichi", m.scenario.Riichi),
		"scenarios: " + only,
	}, "   ")
}

// renderHelp renders the help overlay
func (m AppModel) renderHelp() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(render.ColorAccent).
		Width(10)

	descStyle := lipgloss.NewStyle().
		Foreground(render.ColorText)

	rows := [][2]string{
		{"enter", "Analyze the hand"},
		{"tab", "Switch between hand and dora"},
		{"ctrl+s", "Next seat wind"},
		{"ctrl+n", "Next round wind"},
		{"ctrl+t", "Toggle tsumo (complete hands)"},
		{"ctrl+r", "Toggle riichi (complete hands)"},
		{"ctrl+f", "Cycle scenario filter"},
		{"ctrl+y", "Copy canonical hand"},
		{"esc", "Quit"},
	}

	helpText := TitleStyle.Render("tenpai") + "\n\n"
	for _, r := range rows {
		helpText += keyStyle.Render(r[0]) + descStyle.Render(r[1]) + "\n"
	}
	helpText += "\n" + HelpStyle.Italic(true).Render("Press any key to close")

	box := render.BoxStyle.Padding(1, 2).Width(50).Render(helpText)
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
