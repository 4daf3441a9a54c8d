package viewer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/hoyotext/internal/model"
)

// Rows used by the picker's title and hint lines.
const pickerChrome = 5

var (
	pickerTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("39")).
				Padding(1, 0, 1, 2)

	pickerRowStyle  = lipgloss.NewStyle().PaddingLeft(4)
	pickerMetaStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	pickerCursorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("39")).
				Bold(true).
				PaddingLeft(2)

	pickerHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Padding(1, 0, 0, 2)
)

type pickerModel struct {
	items  []model.ArchivedRecord
	cursor int
	offset int // first visible row
	height int // visible rows, 0 until the first WindowSizeMsg
	chosen int
	quit   bool
}

func newPickerModel(items []model.ArchivedRecord) pickerModel {
	return pickerModel{items: items, chosen: -1}
}

func (m pickerModel) Init() tea.Cmd {
	return nil
}

func (m pickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-pickerChrome, 1)
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quit = true
			return m, tea.Quit
		case "up", "k":
			m.cursor--
		case "down", "j":
			m.cursor++
		case "home", "g":
			m.cursor = 0
		case "end", "G":
			m.cursor = len(m.items) - 1
		case "enter":
			if len(m.items) > 0 {
				m.chosen = m.cursor
				return m, tea.Quit
			}
		}
	}
	m.cursor = clamp(m.cursor, 0, len(m.items)-1)
	m.scrollToCursor()
	return m, nil
}

func (m *pickerModel) scrollToCursor() {
	if m.height <= 0 {
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

func (m pickerModel) visible() (int, int) {
	if m.height <= 0 {
		return 0, len(m.items)
	}
	return m.offset, min(m.offset+m.height, len(m.items))
}

func (m pickerModel) View() string {
	var b strings.Builder
	b.WriteString(pickerTitleStyle.Render(fmt.Sprintf("Archived records (%d)", len(m.items))))
	b.WriteString("\n")

	from, to := m.visible()
	for i := from; i < to; i++ {
		row := pickerLabel(m.items[i])
		if i == m.cursor {
			b.WriteString(pickerCursorStyle.Render("> " + row))
		} else {
			b.WriteString(pickerRowStyle.Render(row))
		}
		b.WriteString("\n")
	}

	b.WriteString(pickerHintStyle.Render("↑/↓ move  g/G first/last  enter open  q quit"))
	return b.String()
}

func pickerLabel(it model.ArchivedRecord) string {
	meta := fmt.Sprintf("%s · %s #%d · %s",
		it.Record.Type, it.Family, it.PageID, it.ScrapedAt.Local().Format("2006-01-02 15:04"))
	return it.Record.Name + "  " + pickerMetaStyle.Render(meta)
}

// RunRecordPicker lets the user choose one archived record.
// It returns the chosen index, or -1 when the user quits.
func RunRecordPicker(items []model.ArchivedRecord) (int, error) {
	result, err := tea.NewProgram(newPickerModel(items)).Run()
	if err != nil {
		return -1, err
	}
	final := result.(pickerModel)
	if final.quit {
		return -1, nil
	}
	return final.chosen, nil
}
