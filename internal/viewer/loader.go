package viewer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/hoyotext/internal/model"
)

var errLoadCancelled = errors.New("cancelled")

// FetchFunc scrapes the records the loader waits on.
type FetchFunc func(ctx context.Context) ([]model.CanonicalRecord, error)

type fetchDoneMsg struct {
	records []model.CanonicalRecord
	err     error
}

type loaderModel struct {
	label   string
	fetchFn FetchFunc
	timeout time.Duration
	spinner spinner.Model
	result  []model.CanonicalRecord
	err     error
	done    bool
}

func newLoaderModel(label string, timeout time.Duration, fetchFn FetchFunc) loaderModel {
	return loaderModel{
		label:   label,
		fetchFn: fetchFn,
		timeout: timeout,
		spinner: spinner.New(
			spinner.WithSpinner(spinner.MiniDot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("33"))),
		),
	}
}

func (m loaderModel) Init() tea.Cmd {
	return tea.Batch(m.doFetch(), m.spinner.Tick)
}

func (m loaderModel) doFetch() tea.Cmd {
	fetchFn := m.fetchFn
	timeout := m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		records, err := fetchFn(ctx)
		return fetchDoneMsg{records: records, err: err}
	}
}

func (m loaderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchDoneMsg:
		m.result = msg.records
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = errLoadCancelled
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m loaderModel) View() string {
	if m.done {
		return ""
	}
	return fmt.Sprintf("%s Fetching %s...\n", m.spinner.View(), m.label)
}

// RunLoader shows a spinner while fetchFn runs. It renders inline (no alt screen).
func RunLoader(label string, timeout time.Duration, fetchFn FetchFunc) ([]model.CanonicalRecord, error) {
	p := tea.NewProgram(newLoaderModel(label, timeout, fetchFn))
	result, err := p.Run()
	if err != nil {
		return nil, err
	}
	final := result.(loaderModel)
	return final.result, final.err
}
