// Package tui is the live terminal view of the streak. It redraws on every
// engine update, so a day rollover shows up without any key press.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/help"
	"github.com/charmbracelet/bubbles/v2/key"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/streak/pkg/calendar"
	"tableflip.dev/streak/pkg/day"
	"tableflip.dev/streak/pkg/streak"
	"tableflip.dev/streak/pkg/tui/theme"
)

// Engine is what the UI drives.
type Engine interface {
	Snapshot() streak.Snapshot
	Updates() <-chan streak.Snapshot
	Policy() calendar.Policy
	RecordRelapse(ctx context.Context, on ...day.Day) error
	ForceRefresh(ctx context.Context) error
	Resume(ctx context.Context) error
}

type mode int

const (
	modeNormal mode = iota
	modeConfirmRelapse
)

// Model is the Bubble Tea model for the streak view.
type Model struct {
	ctx   context.Context
	eng   Engine
	theme theme.Theme
	keys  keyMap
	help  help.Model

	snap   streak.Snapshot
	offset int
	mode   mode
	status string
	err    error

	width  int
	height int
}

// New builds a Model showing the engine's current snapshot.
func New(ctx context.Context, eng Engine, th theme.Theme) Model {
	h := help.New()
	if th.Footer.Keys != nil {
		h.Styles = *th.Footer.Keys
	}
	return Model{
		ctx:   ctx,
		eng:   eng,
		theme: th,
		keys:  defaultKeys(),
		help:  h,
		snap:  eng.Snapshot(),
	}
}

type snapshotMsg struct {
	snap streak.Snapshot
}

type updatesClosedMsg struct{}

type commandDoneMsg struct {
	status string
	err    error
}

func (m Model) Init() tea.Cmd {
	return waitForUpdate(m.eng.Updates())
}

func waitForUpdate(ch <-chan streak.Snapshot) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		if snap, ok := <-ch; ok {
			return snapshotMsg{snap: snap}
		}
		return updatesClosedMsg{}
	}
}

func (m Model) run(status string, fn func(ctx context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return commandDoneMsg{status: status, err: fn(ctx)}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case snapshotMsg:
		m.snap = msg.snap
		return m, waitForUpdate(m.eng.Updates())
	case updatesClosedMsg:
		return m, tea.Quit
	case commandDoneMsg:
		m.err = msg.err
		m.status = msg.status
		if msg.err == nil {
			m.snap = m.eng.Snapshot()
		}
	case tea.FocusMsg:
		return m, m.run("resumed", m.eng.Resume)
	case tea.KeyPressMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Force) {
		return m, tea.Quit
	}
	if m.mode == modeConfirmRelapse {
		m.mode = modeNormal
		if key.Matches(msg, m.keys.Confirm) {
			return m, m.run("relapse recorded", func(ctx context.Context) error {
				return m.eng.RecordRelapse(ctx)
			})
		}
		m.status = "relapse cancelled"
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Relapse):
		m.mode = modeConfirmRelapse
		m.err = nil
		m.status = ""
	case key.Matches(msg, m.keys.Refresh):
		return m, m.run("refreshed", m.eng.ForceRefresh)
	case key.Matches(msg, m.keys.Prev):
		m.offset--
	case key.Matches(msg, m.keys.Next):
		if m.offset < 0 {
			m.offset++
		}
	case key.Matches(msg, m.keys.Today):
		m.offset = 0
	}
	return m, nil
}

// Month is the first day of the month on screen.
func (m Model) Month() day.Day {
	today := m.snap.Today
	return day.New(today.Year(), today.Month()+time.Month(m.offset), 1)
}

func (m Model) View() string {
	th := m.theme

	count := th.Streak.Count
	if m.snap.Streak == 0 {
		count = th.Streak.Broken
	} else if th.Streak.Gradient {
		count = count.Foreground(theme.MilestoneColor(streak.Progress(m.snap.Streak)))
	}
	_, next := streak.NextMilestone(m.snap.Streak)
	unit := "days"
	if m.snap.Streak == 1 {
		unit = "day"
	}
	header := lipgloss.JoinVertical(lipgloss.Left,
		th.Panel.Title.Render("Recovery"),
		count.Render(fmt.Sprintf("%d", m.snap.Streak))+" "+th.Streak.Label.Render(unit+" clean"),
		th.Streak.Label.Render("since "+m.snap.StartDate.String()),
		th.Streak.Label.Render(fmt.Sprintf("next milestone: %d (%d to go)", next, next-m.snap.Streak)),
	)

	cal := calendar.Render(m.Month(), m.snap.Marked, th.Calendar)
	body := th.Panel.Frame.Render(lipgloss.JoinVertical(lipgloss.Left, header, "", cal))

	return lipgloss.JoinVertical(lipgloss.Left, body, m.footer())
}

func (m Model) footer() string {
	th := m.theme.Footer
	var lines []string
	switch {
	case m.mode == modeConfirmRelapse:
		lines = append(lines, th.Prompt.Render("Record a relapse for today? (y/n)"))
	case m.err != nil:
		lines = append(lines, th.Error.Render(m.wrap("ERR: "+m.err.Error())))
	case m.status != "":
		lines = append(lines, th.Status.Render(m.wrap(m.status)))
	}
	lines = append(lines, m.help.View(m.keys))
	return strings.Join(lines, "\n")
}

func (m Model) wrap(s string) string {
	if m.width <= 0 {
		return s
	}
	return wordwrap.String(s, m.width)
}

// Run launches the interactive program until the user quits.
func Run(ctx context.Context, eng Engine) error {
	p := tea.NewProgram(New(ctx, eng, theme.Default()),
		tea.WithAltScreen(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	_, err := p.Run()
	return err
}
