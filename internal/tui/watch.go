package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theopenlane/rapidrecon/internal/recon"
)

const tickInterval = 200 * time.Millisecond

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type eventMsg recon.Event

type doneMsg struct {
	out *recon.Outcome
	err error
}

type tickMsg time.Time

type watchModel struct {
	domain     string
	jobID      string
	status     string
	attempt    int
	retries    int
	frame      int
	started    time.Time
	now        time.Time
	cancel     context.CancelFunc
	cancelling bool
	done       bool
	err        error
}

func newWatchModel(domain string, cancel context.CancelFunc) watchModel {
	now := time.Now()

	return watchModel{
		domain:  domain,
		status:  "submitting",
		started: now,
		now:     now,
		cancel:  cancel,
	}
}

func (m watchModel) Init() tea.Cmd {
	return tickCmd()
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			if !m.cancelling && m.cancel != nil {
				m.cancel()
			}

			m.cancelling = true
		}

	case eventMsg:
		m = m.apply(recon.Event(msg))

	case doneMsg:
		m.done = true
		m.err = msg.err

		return m, tea.Quit

	case tickMsg:
		m.now = time.Time(msg)
		m.frame = (m.frame + 1) % len(spinnerFrames)

		if !m.done {
			return m, tickCmd()
		}
	}

	return m, nil
}

func (m watchModel) apply(e recon.Event) watchModel {
	if e.JobID != "" {
		m.jobID = e.JobID
	}

	if e.Attempt > 0 {
		m.attempt = e.Attempt
	}

	switch e.Stage {
	case recon.EventSubmitted:
		m.status = "queued"
	case recon.EventRetrying:
		m.retries++
	case recon.EventFetched:
		m.status = "fetching results"
	default:
		if e.Status != "" {
			m.status = string(e.Status)
		}
	}

	return m
}

func (m watchModel) View() string {
	// failures are reported by the caller once the view is gone
	if m.done {
		if m.err != nil {
			return ""
		}

		return successStyle.Render(fmt.Sprintf("scan of %s finished", m.domain)) + "\n"
	}

	var b strings.Builder

	fmt.Fprintf(&b, "%s scanning %s\n", progressStyle.Render(spinnerFrames[m.frame]), labelStyle.Render(m.domain))

	if m.jobID != "" {
		fmt.Fprintf(&b, "  job      %s\n", m.jobID)
	}

	fmt.Fprintf(&b, "  status   %s", m.status)

	if m.attempt > 0 {
		fmt.Fprintf(&b, " (poll %d)", m.attempt)
	}

	if m.retries > 0 {
		fmt.Fprintf(&b, ", %d retried", m.retries)
	}

	fmt.Fprintf(&b, "\n  elapsed  %s\n\n", m.now.Sub(m.started).Truncate(time.Second))

	if m.cancelling {
		b.WriteString(infoStyle.Render("cancelling..."))
	} else {
		b.WriteString(infoStyle.Render("press q to cancel"))
	}

	b.WriteString("\n")

	return b.String()
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Watch runs the scan in a background goroutine while showing its progress;
// quitting the view cancels the scan
func Watch(ctx context.Context, runner *recon.Runner, req recon.Request, opts ...tea.ProgramOption) (*recon.Outcome, error) {
	if runner == nil {
		return nil, ErrNoRunner
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	p := tea.NewProgram(newWatchModel(req.Domain, cancel), opts...)

	var (
		out    *recon.Outcome
		runErr error
		done   = make(chan struct{})
	)

	go func() {
		defer close(done)

		out, runErr = runner.Run(runCtx, req, func(e recon.Event) {
			p.Send(eventMsg(e))
		})

		p.Send(doneMsg{out: out, err: runErr})
	}()

	_, viewErr := p.Run()

	cancel()
	<-done

	// a view that failed on its own cancelled the scan; report the view instead
	if viewErr != nil && ctx.Err() == nil && errors.Is(runErr, recon.ErrCancelled) {
		return nil, fmt.Errorf("%w: %v", ErrView, viewErr)
	}

	return out, runErr
}
