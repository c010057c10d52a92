// Package ui renders a batch run's per-file progress as a terminal UI:
// a spinner, a gradient progress bar, and one status row per file,
// driven by events off a channel instead of by polling.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"movefix/internal/batch"
)

// Event is one stage transition for one file, the unit the progress
// model consumes off its channel.
type Event struct {
	Path   string
	Stage  batch.Stage
	Status batch.Status
}

// Reporter turns a batch.ProgressFunc call into an Event sent on ch.
// The batch driver calls its ProgressFunc concurrently from several
// goroutines, so the send must not block; Reporter drops events once
// the receiver stops listening rather than deadlock the batch run.
func Reporter(ch chan<- Event) batch.ProgressFunc {
	return func(path string, stage batch.Stage, status batch.Status) {
		select {
		case ch <- Event{Path: path, Stage: stage, Status: status}:
		default:
		}
	}
}

type fileItem struct {
	path   string
	status string
	done   bool
}

type eventMsg Event
type doneMsg struct{}

type progressModel struct {
	title   string
	events  <-chan Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

// NewProgressModel returns a Bubble Tea model rendering the progress of
// a batch run over files, fed by events.
func NewProgressModel(title string, files []string, events <-chan Event) tea.Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: "queued"})
		index[file] = i
	}
	return &progressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		cmd := m.applyEvent(Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		next, cmd := m.prog.Update(msg)
		m.prog = next.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *progressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = fmt.Sprintf("done: %s", header)
	} else {
		header = fmt.Sprintf("%s %s", m.spinner.View(), header)
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	statusWidth := 12
	nameWidth := m.width - statusWidth - 4
	if nameWidth < 20 {
		nameWidth = 20
	}

	for _, item := range m.items {
		name := truncate(item.path, nameWidth)
		statusStyled := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		b.WriteString(fmt.Sprintf("  %s %s\n", statusStyled, name))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")

	return b.String()
}

func (m *progressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return doneMsg{}
		}
		return eventMsg(ev)
	}
}

func (m *progressModel) applyEvent(ev Event) tea.Cmd {
	idx, ok := m.index[ev.Path]
	if !ok {
		return nil
	}
	label, finished := statusLabel(ev.Stage, ev.Status)
	m.items[idx].status = label
	m.items[idx].done = m.items[idx].done || finished

	total := 0.0
	for _, item := range m.items {
		if item.done {
			total += 1.0
		} else {
			total += progressFromStage(ev.Stage)
		}
	}
	return m.prog.SetPercent(total / float64(len(m.items)))
}

func progressFromStage(stage batch.Stage) float64 {
	switch stage {
	case batch.StageCacheLookup:
		return 0.2
	case batch.StageParse:
		return 0.4
	case batch.StageAnalyze:
		return 0.6
	case batch.StagePlan:
		return 0.8
	case batch.StageWrite:
		return 0.9
	default:
		return 0.0
	}
}

// statusLabel returns the row label for a stage/status pair and
// whether that pair marks the file as finished (counts as 100% done).
func statusLabel(stage batch.Stage, status batch.Status) (string, bool) {
	switch status {
	case batch.StatusError:
		return "error", true
	case batch.StatusCacheHit:
		return "cached", true
	case batch.StatusDone:
		if stage == batch.StageWrite {
			return "written", true
		}
		return stage.String(), false
	default:
		return stage.String(), false
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "written", "cached":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "queued":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return value
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
