// Package tui implements the live timer view behind `tempo watch`.
package tui

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"tempo-tracker/internal/api"
	"tempo-tracker/internal/domain"
	"tempo-tracker/internal/errors"
	"tempo-tracker/internal/format"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const tickInterval = time.Second

// tickMsg carries the generation of the tick chain that produced it so
// ticks from a cancelled chain are dropped
type tickMsg struct {
	generation int
	at         time.Time
}

type statusMsg struct {
	status *api.Status
	err    error
}

// Model is the watch view. It only reads the elapsed time on each tick; the
// start time is never touched.
type Model struct {
	ctx  context.Context
	api  api.BusinessAPI
	help help.Model

	status     *api.Status
	err        error
	ticking    bool
	generation int
	width      int
}

// NewModel creates the watch model
func NewModel(ctx context.Context, b api.BusinessAPI) Model {
	h := help.New()
	h.ShowAll = false
	return Model{ctx: ctx, api: b, help: h}
}

// Run starts the watch view and blocks until the user quits
func Run(ctx context.Context, b api.BusinessAPI, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewModel(ctx, b),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	_, err := p.Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return m.loadStatus()
}

func (m Model) loadStatus() tea.Cmd {
	return func() tea.Msg {
		status, err := m.api.GetStatus(m.ctx)
		return statusMsg{status: status, err: err}
	}
}

// runAction performs a mutation and then reports the resulting status
func (m Model) runAction(action func(ctx context.Context) error) tea.Cmd {
	return func() tea.Msg {
		if err := action(m.ctx); err != nil {
			return statusMsg{status: m.status, err: err}
		}
		status, err := m.api.GetStatus(m.ctx)
		return statusMsg{status: status, err: err}
	}
}

func (m Model) tick() tea.Cmd {
	generation := m.generation
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{generation: generation, at: t}
	})
}

func (m Model) running() bool {
	return m.status != nil && m.status.State == domain.RunningTimer
}

// Ticking reports whether a tick chain is scheduled
func (m Model) Ticking() bool {
	return m.ticking
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case statusMsg:
		m.err = msg.err
		if msg.status != nil {
			m.status = msg.status
		}
		return m.syncTicker()

	case tickMsg:
		if !m.ticking || msg.generation != m.generation {
			return m, nil
		}
		return m, tea.Batch(m.loadStatus(), m.tick())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.ticking = false
			m.generation++
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, keys.Start):
			return m, m.runAction(func(ctx context.Context) error {
				_, err := m.api.StartTimer(ctx)
				return err
			})
		case key.Matches(msg, keys.Stop):
			return m, m.runAction(func(ctx context.Context) error {
				_, err := m.api.StopTimer(ctx)
				return err
			})
		case key.Matches(msg, keys.Billable):
			return m, m.runAction(func(ctx context.Context) error {
				_, err := m.api.ToggleDraftBillable(ctx)
				return err
			})
		case key.Matches(msg, keys.Refresh):
			return m, m.runAction(m.api.Refresh)
		}
	}
	return m, nil
}

// syncTicker starts a tick chain when a timer runs and cancels it when none does
func (m Model) syncTicker() (tea.Model, tea.Cmd) {
	switch {
	case m.running() && !m.ticking:
		m.ticking = true
		m.generation++
		return m, m.tick()
	case !m.running() && m.ticking:
		m.ticking = false
		m.generation++
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	if m.status == nil {
		b.WriteString(subtitleStyle.Render("Loading..."))
	} else {
		b.WriteString(titleStyle.Render(m.status.Title))
		b.WriteString("\n\n")
		b.WriteString(m.timerView())
		b.WriteString("\n")
		b.WriteString(m.detailView())
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(errors.GetUserMessage(m.err)))
	}

	content := panelStyle.Render(b.String())
	return lipgloss.JoinVertical(lipgloss.Left, content, m.help.View(keys))
}

func (m Model) timerView() string {
	switch m.status.State {
	case domain.RunningTimer:
		return timerRunningStyle.Render(format.Duration(m.status.Elapsed))
	case domain.DraftTimer:
		return timerIdleStyle.Render(format.Duration(0)) + "  " + draftStyle.Render("draft")
	default:
		return timerIdleStyle.Render(format.Duration(0))
	}
}

func (m Model) detailView() string {
	active := m.status.Active
	if active == nil {
		return subtitleStyle.Render("No timer. Press s to start one.")
	}

	description := active.Description
	if description == "" {
		description = "No description"
	}
	project := Swatch("") + " No Project"
	if m.status.Project != nil {
		project = Swatch(m.status.Project.Color) + " " + m.status.Project.Name
	}
	billable := "non-billable"
	if active.Billable() {
		billable = "billable"
	}
	if active.IsRunning() {
		billable = fmt.Sprintf("%s @ %.2f/h", billable, active.Rate())
	}
	return fmt.Sprintf("%s\n%s\n%s", description, project, subtitleStyle.Render(billable))
}
