package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 40

// stepper hands out a bar per build stage.
type stepper struct {
	theme    *Theme
	headless *HeadlessManager
	out      io.Writer
}

// NewProgress creates a Progress that writes to w. In headless mode, or
// when color is off, it prints one "[n/total] title" line per step.
func NewProgress(theme *Theme, hm *HeadlessManager, w io.Writer) Progress {
	return &stepper{theme: theme, headless: hm, out: w}
}

// Start creates a determinate progress bar with the given total.
func (s *stepper) Start(title string, total int) ProgressBar {
	if s.headless.IsHeadless() || s.theme.NoColor {
		return &lineBar{label: title, total: total, out: s.out}
	}
	return startAnimatedBar(s.theme, title, total, s.out)
}

// Messages understood by barModel.
type (
	stepMsg   int
	labelMsg  string
	finishMsg struct{}
)

// barModel renders "<bar> [n/total] label" and quits on finishMsg.
type barModel struct {
	bar      progress.Model
	label    lipgloss.Style
	title    string
	step     int
	total    int
	finished bool
}

func newBarModel(theme *Theme, title string, total int) barModel {
	opts := []progress.Option{progress.WithWidth(barWidth), progress.WithoutPercentage()}
	if theme.NoColor {
		opts = append(opts, progress.WithDefaultGradient())
	} else {
		opts = append(opts, progress.WithGradient(theme.Colors.Primary, theme.Colors.Secondary))
	}
	label := lipgloss.NewStyle()
	if !theme.NoColor {
		label = label.Foreground(lipgloss.Color(theme.Colors.Muted))
	}
	return barModel{bar: progress.New(opts...), label: label, title: title, total: total}
}

func (m barModel) Init() tea.Cmd { return nil }

func (m barModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stepMsg:
		m.step = min(m.step+int(msg), m.total)
	case labelMsg:
		m.title = string(msg)
	case finishMsg:
		m.step = m.total
		m.finished = true
		return m, tea.Quit
	case progress.FrameMsg:
		next, cmd := m.bar.Update(msg)
		m.bar = next.(progress.Model)
		return m, cmd
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.finished = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m barModel) View() string {
	if m.finished {
		return ""
	}
	var ratio float64
	if m.total > 0 {
		ratio = float64(m.step) / float64(m.total)
	}
	return fmt.Sprintf("%s [%d/%d] %s\n", m.bar.ViewAs(ratio), m.step, m.total, m.label.Render(m.title))
}

// animatedBar drives a barModel running in its own tea.Program.
type animatedBar struct {
	program *tea.Program
	stop    sync.Once
}

// @MX:WARN: [AUTO] The program runs in its own goroutine; Done must be called or the goroutine outlives the build.
func startAnimatedBar(theme *Theme, title string, total int, w io.Writer) *animatedBar {
	p := tea.NewProgram(newBarModel(theme, title, total), tea.WithOutput(w))
	go func() {
		_, _ = p.Run()
	}()
	return &animatedBar{program: p}
}

func (b *animatedBar) Increment(n int)       { b.program.Send(stepMsg(n)) }
func (b *animatedBar) SetTitle(title string) { b.program.Send(labelMsg(title)) }

// Done fills the bar and waits for the program to exit. Later calls are
// no-ops.
func (b *animatedBar) Done() {
	b.stop.Do(func() {
		b.program.Send(finishMsg{})
		b.program.Wait()
	})
}

// lineBar prints one line per increment, for logs and CI output.
type lineBar struct {
	label string
	step  int
	total int
	out   io.Writer
}

func (b *lineBar) Increment(n int) {
	b.step = min(b.step+n, b.total)
	b.print()
}

func (b *lineBar) SetTitle(title string) { b.label = title }

// Done prints the final line unless the last increment already did.
func (b *lineBar) Done() {
	if b.step == b.total {
		return
	}
	b.step = b.total
	b.print()
}

func (b *lineBar) print() {
	_, _ = fmt.Fprintf(b.out, "[%d/%d] %s\n", b.step, b.total, b.label)
}
