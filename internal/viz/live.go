package viz

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ma3ke/bibber/internal/engine"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(14)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// StepMsg carries one progress sample from the simulation loop.
type StepMsg struct {
	Step        int
	TimePs      float64
	Temperature float64
	Kinetic     float64
}

// DoneMsg signals the end of the run.
type DoneMsg struct {
	Err error
}

// Stream bridges the integrator loop and the TUI. It observes steps on
// the simulation goroutine and forwards throttled samples; when the UI
// falls behind, samples are dropped rather than stalling the loop. The
// run result itself is never dropped: Finish records it and Wait joins
// the loop.
type Stream struct {
	ch     chan tea.Msg
	done   chan struct{}
	err    error
	stride int
}

// NewStream samples every stride-th step.
func NewStream(stride int) *Stream {
	if stride < 1 {
		stride = 1
	}
	return &Stream{
		ch:     make(chan tea.Msg, 64),
		done:   make(chan struct{}),
		stride: stride,
	}
}

// OnStep implements engine.Observer.
func (s *Stream) OnStep(sys *engine.System, step int) {
	if step%s.stride != 0 {
		return
	}
	msg := StepMsg{
		Step:        step,
		TimePs:      sys.Time().Picoseconds(),
		Temperature: sys.Temperature(),
		Kinetic:     sys.KineticEnergy(),
	}
	select {
	case s.ch <- msg:
	default:
	}
}

// Finish records the run result and closes the stream. Called exactly
// once, on the simulation goroutine, after the run has returned.
func (s *Stream) Finish(err error) {
	s.err = err
	close(s.done)
	close(s.ch)
}

// Wait blocks until Finish has been called and returns the run result.
func (s *Stream) Wait() error {
	<-s.done
	return s.err
}

// LiveModel is the bubbletea model for `bibber live`.
type LiveModel struct {
	title   string
	target  float64
	stream  *Stream
	cancel  context.CancelFunc
	history []float64
	latest  StepMsg
	done    bool
	err     error
}

// NewLiveModel builds the live view. cancel stops the simulation when
// the user quits early.
func NewLiveModel(title string, target float64, stream *Stream, cancel context.CancelFunc) LiveModel {
	return LiveModel{
		title:   title,
		target:  target,
		stream:  stream,
		cancel:  cancel,
		history: make([]float64, 0, historyCapacity),
	}
}

func (m LiveModel) Init() tea.Cmd { return m.wait() }

func (m LiveModel) wait() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.stream.ch
		if !ok {
			return DoneMsg{Err: m.stream.Wait()}
		}
		return msg
	}
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}
	case StepMsg:
		m.latest = msg
		m.history = append(m.history, msg.Temperature)
		if len(m.history) > historyCapacity {
			m.history = m.history[len(m.history)-historyCapacity:]
		}
		return m, m.wait()
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		return m, tea.Quit
	}
	return m, nil
}

func (m LiveModel) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(m.title) + "\n")

	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("step", fmt.Sprintf("%d", m.latest.Step))
	row("time", fmt.Sprintf("%.3f ps", m.latest.TimePs))
	row("temperature", fmt.Sprintf("%.2f K (target %.2f K)", m.latest.Temperature, m.target))
	row("kinetic", fmt.Sprintf("%.4e J", m.latest.Kinetic))

	if graph := Spark(m.history); graph != "" {
		b.WriteString(graphStyle.Render(graph) + "\n")
	}

	if m.done {
		if m.err != nil {
			b.WriteString(doneStyle.Render(fmt.Sprintf("run failed: %v", m.err)) + "\n")
		} else {
			b.WriteString(doneStyle.Render("run complete") + "\n")
		}
	} else {
		b.WriteString(helpStyle.Render("q: stop and quit") + "\n")
	}

	return b.String()
}
