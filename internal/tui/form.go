package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/theopenlane/rapidrecon/internal/recon"
)

const (
	fieldKey = iota
	fieldDomain
	fieldCount
)

type formModel struct {
	values    [fieldCount]string
	focus     int
	submitted bool
	cancelled bool
}

func newFormModel(initial recon.Request) formModel {
	m := formModel{}
	m.values[fieldKey] = initial.APIKey
	m.values[fieldDomain] = initial.Domain

	// jump straight to the domain when the key came from config
	if initial.APIKey != "" && initial.Domain == "" {
		m.focus = fieldDomain
	}

	return m
}

func (m formModel) Init() tea.Cmd {
	return nil
}

func (m formModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true

		return m, tea.Quit
	case tea.KeyTab, tea.KeyDown:
		m.focus = (m.focus + 1) % fieldCount
	case tea.KeyShiftTab, tea.KeyUp:
		m.focus = (m.focus + fieldCount - 1) % fieldCount
	case tea.KeyEnter:
		if m.focus < fieldCount-1 {
			m.focus++

			return m, nil
		}

		m.submitted = true

		return m, tea.Quit
	case tea.KeyBackspace:
		if r := []rune(m.values[m.focus]); len(r) > 0 {
			m.values[m.focus] = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		m.values[m.focus] = ""
	case tea.KeyRunes, tea.KeySpace:
		m.values[m.focus] += string(key.Runes)
	}

	return m, nil
}

func (m formModel) View() string {
	if m.submitted || m.cancelled {
		return ""
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Subdomain scanner"))
	b.WriteString("\n\n")
	b.WriteString(m.field(fieldKey, "RapidAPI key", strings.Repeat("•", len([]rune(m.values[fieldKey])))))
	b.WriteString(m.field(fieldDomain, "Domain", m.values[fieldDomain]))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render("tab switch field • enter submit • esc cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m formModel) field(idx int, label, value string) string {
	cursor := "  "
	if m.focus == idx {
		cursor = focusStyle.Render("> ")
		value += focusStyle.Render("_")
	}

	return fmt.Sprintf("%s%s %s\n", cursor, labelStyle.Render(label+":"), value)
}

func (m formModel) request() recon.Request {
	return recon.NewRequest(m.values[fieldKey], m.values[fieldDomain])
}

// Collect opens the input form pre-filled with initial and returns what the operator entered
func Collect(ctx context.Context, initial recon.Request, opts ...tea.ProgramOption) (recon.Request, error) {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)

	final, err := tea.NewProgram(newFormModel(initial), opts...).Run()
	switch {
	case errors.Is(err, tea.ErrProgramKilled):
		return recon.Request{}, ErrInputCancelled
	case err != nil:
		return recon.Request{}, fmt.Errorf("%w: %v", ErrView, err)
	}

	m, ok := final.(formModel)
	if !ok || m.cancelled || !m.submitted {
		return recon.Request{}, ErrInputCancelled
	}

	return m.request(), nil
}
