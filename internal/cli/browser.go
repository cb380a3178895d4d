package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexanderramin/gradeplan/internal/cli/formatter"
	"github.com/alexanderramin/gradeplan/internal/domain"
)

type browserKeyMap struct {
	Next key.Binding
	Prev key.Binding
	Top  key.Binding
	Quit key.Binding
}

func newBrowserKeyMap() browserKeyMap {
	return browserKeyMap{
		Next: key.NewBinding(key.WithKeys("right", "n", "l"), key.WithHelp("→/n", "next plan")),
		Prev: key.NewBinding(key.WithKeys("left", "p", "h"), key.WithHelp("←/p", "prev plan")),
		Top:  key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k browserKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Top, k.Quit}
}

// chromeLines is the number of rows used by the title and footer.
const chromeLines = 3

// planBrowser pages through ranked plans, one plan per screen with a
// scrollable body.
type planBrowser struct {
	plans      []domain.RankedPlan
	maxCredits int
	current    int

	vp    viewport.Model
	keys  browserKeyMap
	help  help.Model
	ready bool
}

func newPlanBrowser(plans []domain.RankedPlan, maxCredits int) *planBrowser {
	vp := viewport.New(0, 0)
	vp.KeyMap = browserViewportKeyMap()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &planBrowser{
		plans:      plans,
		maxCredits: maxCredits,
		vp:         vp,
		keys:       newBrowserKeyMap(),
		help:       help.New(),
	}
}

func runPlanBrowser(plans []domain.RankedPlan, maxCredits int) error {
	_, err := tea.NewProgram(newPlanBrowser(plans, maxCredits), tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}

// browserViewportKeyMap leaves letter keys free for plan navigation.
func browserViewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown", " ")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func (m *planBrowser) Init() tea.Cmd { return nil }

func (m *planBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-chromeLines, 1)
		m.help.Width = msg.Width
		m.ready = true
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.show(m.current + 1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.show(m.current - 1)
			return m, nil
		case key.Matches(msg, m.keys.Top):
			m.vp.GotoTop()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// show switches to plan i, wrapping around both ends.
func (m *planBrowser) show(i int) {
	if len(m.plans) == 0 {
		return
	}
	m.current = (i%len(m.plans) + len(m.plans)) % len(m.plans)
	m.refresh()
	m.vp.GotoTop()
}

func (m *planBrowser) refresh() {
	if len(m.plans) == 0 {
		m.vp.SetContent(formatter.Dim("No plans to show."))
		return
	}
	m.vp.SetContent(formatter.FormatPlan(m.plans[m.current], m.maxCredits))
}

func (m *planBrowser) View() string {
	if !m.ready {
		return "loading..."
	}
	var b strings.Builder
	title := formatter.Header("Plans")
	if len(m.plans) > 0 {
		title += "  " + formatter.Dim(fmt.Sprintf("%d/%d", m.current+1, len(m.plans)))
	}
	b.WriteString(title + "\n")
	b.WriteString(m.vp.View() + "\n")
	b.WriteString(scrollIndicator(m.vp) + "  " + m.help.ShortHelpView(m.keys.ShortHelp()))
	return b.String()
}

// scrollIndicator returns a dim scroll position for the footer.
func scrollIndicator(vp viewport.Model) string {
	if vp.AtTop() {
		return formatter.Dim("[TOP]")
	}
	if vp.AtBottom() {
		return formatter.Dim("[END]")
	}
	return formatter.Dim(fmt.Sprintf("[%d%%]", int(vp.ScrollPercent()*100)))
}
