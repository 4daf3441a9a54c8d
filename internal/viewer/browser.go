// Package viewer renders canonical records in the terminal.
package viewer

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/amishk599/hoyotext/internal/model"
)

// Lines per section item in the list pane (title + subtitle + blank separator).
const sectionItemHeight = 3

type viewState int

const (
	viewList viewState = iota
	viewDetail
)

var (
	activeBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("39")) // bright blue

	inactiveBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")) // dim gray

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1)

	activeHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("39"))

	inactiveHeaderStyle = headerStyle.
				Foreground(lipgloss.Color("240"))

	statusBarStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236"))

	itemTitleStyle = lipgloss.NewStyle().
			Bold(true)

	itemSubtitleStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("245"))

	selectedItemTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				Background(lipgloss.Color("24"))

	selectedItemSubtitleStyle = lipgloss.NewStyle().
					Foreground(lipgloss.Color("252")).
					Background(lipgloss.Color("24"))

	labelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")).
			Width(14)

	fieldKeyStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("15")).
				MarginBottom(1)

	bodyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Italic(true)
)

// section is one entry of the list pane: the record overview or a module.
type section struct {
	title    string
	subtitle string
	module   *model.ModuleRecord // nil for the overview
}

type browserModel struct {
	record        model.CanonicalRecord
	sections      []section
	listViewport  viewport.Model
	bodyViewport  viewport.Model
	activePane    int // 0=list, 1=body
	cursor        int
	width, height int
	ready         bool

	view           viewState
	detailViewport viewport.Model

	wantQuit bool
}

func newBrowserModel(rec model.CanonicalRecord) browserModel {
	return browserModel{record: rec, sections: buildSections(rec)}
}

func buildSections(rec model.CanonicalRecord) []section {
	sections := []section{{title: "Overview", subtitle: rec.Type}}
	for i := range rec.Modules {
		mod := &rec.Modules[i]
		sections = append(sections, section{
			title:    mod.Name,
			subtitle: fmt.Sprintf("%d fields", len(mod.Fields)),
			module:   mod,
		})
	}
	return sections
}

func (m browserModel) Init() tea.Cmd {
	return nil
}

func (m browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		if m.view == viewDetail {
			m.detailViewport.Width = m.width - 4
			m.detailViewport.Height = m.height - 4
			m.detailViewport.SetContent(m.renderSection(m.width - 8))
		}
		return m, nil

	case tea.KeyMsg:
		if m.view == viewDetail {
			return m.updateDetailView(msg)
		}
		return m.updateListView(msg)
	}

	return m, nil
}

func (m browserModel) updateListView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "b":
		m.wantQuit = false
		return m, tea.Quit
	case "tab", "left", "right":
		m.activePane = 1 - m.activePane
		return m, nil
	case "enter":
		return m.openDetailView()
	}

	if m.activePane == 0 {
		switch msg.String() {
		case "up", "k":
			m.moveCursor(-1)
			m.recalcContent()
			m.ensureCursorVisible()
			return m, nil
		case "down", "j":
			m.moveCursor(1)
			m.recalcContent()
			m.ensureCursorVisible()
			return m, nil
		}
	}

	// Forward other keys (pgup/pgdn/home/end, arrows in the body) to the active viewport.
	var cmd tea.Cmd
	if m.activePane == 0 {
		m.listViewport, cmd = m.listViewport.Update(msg)
	} else {
		m.bodyViewport, cmd = m.bodyViewport.Update(msg)
	}
	return m, cmd
}

func (m browserModel) updateDetailView(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.wantQuit = true
		return m, tea.Quit
	case "esc", "backspace":
		m.view = viewList
		return m, nil
	}

	var cmd tea.Cmd
	m.detailViewport, cmd = m.detailViewport.Update(msg)
	return m, cmd
}

func (m *browserModel) moveCursor(delta int) {
	m.cursor = clamp(m.cursor+delta, 0, max(len(m.sections)-1, 0))
}

func (m *browserModel) ensureCursorVisible() {
	vp := &m.listViewport
	cursorTop := m.cursor * sectionItemHeight
	cursorBottom := cursorTop + sectionItemHeight - 1

	if cursorTop < vp.YOffset {
		vp.SetYOffset(cursorTop)
	} else if cursorBottom >= vp.YOffset+vp.Height {
		vp.SetYOffset(cursorBottom - vp.Height + 1)
	}
}

func (m browserModel) openDetailView() (tea.Model, tea.Cmd) {
	if len(m.sections) == 0 {
		return m, nil
	}
	m.view = viewDetail
	m.detailViewport = viewport.New(m.width-4, m.height-4)
	m.detailViewport.SetContent(m.renderSection(m.width - 8))
	return m, nil
}

func (m *browserModel) recalcLayout() {
	// The list pane takes a third of the width; 2 border chars per pane + 1 gap.
	listWidth := max((m.width-5)/3, 20)
	bodyWidth := max(m.width-5-listWidth, 20)

	// Header (1 line) + border top/bottom (2) + status bar (1) = 4 lines overhead.
	paneHeight := max(m.height-4, 5)

	if !m.ready {
		m.listViewport = viewport.New(listWidth, paneHeight)
		m.bodyViewport = viewport.New(bodyWidth, paneHeight)
		m.ready = true
	} else {
		m.listViewport.Width = listWidth
		m.listViewport.Height = paneHeight
		m.bodyViewport.Width = bodyWidth
		m.bodyViewport.Height = paneHeight
	}

	m.recalcContent()
}

func (m *browserModel) recalcContent() {
	m.listViewport.SetContent(renderSections(m.sections, m.cursor, m.activePane == 0))
	m.bodyViewport.SetContent(m.renderSection(max(m.bodyViewport.Width-2, 20)))
	m.bodyViewport.SetYOffset(0)
}

func (m browserModel) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.view == viewDetail {
		return m.viewDetail()
	}
	return m.viewList()
}

func (m browserModel) viewList() string {
	listHeader := fmt.Sprintf(" %s (%d modules)", m.record.Name, len(m.record.Modules))
	bodyHeader := " " + m.sections[m.cursor].title

	var listHeaderRendered, bodyHeaderRendered string
	var listBorder, bodyBorder lipgloss.Style

	if m.activePane == 0 {
		listHeaderRendered = activeHeaderStyle.Render(listHeader)
		bodyHeaderRendered = inactiveHeaderStyle.Render(bodyHeader)
		listBorder = activeBorderStyle.Width(m.listViewport.Width)
		bodyBorder = inactiveBorderStyle.Width(m.bodyViewport.Width)
	} else {
		listHeaderRendered = inactiveHeaderStyle.Render(listHeader)
		bodyHeaderRendered = activeHeaderStyle.Render(bodyHeader)
		listBorder = inactiveBorderStyle.Width(m.listViewport.Width)
		bodyBorder = activeBorderStyle.Width(m.bodyViewport.Width)
	}

	headerRow := lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(m.listViewport.Width+2).Render(listHeaderRendered),
		" ",
		lipgloss.NewStyle().Width(m.bodyViewport.Width+2).Render(bodyHeaderRendered),
	)

	panes := lipgloss.JoinHorizontal(lipgloss.Top,
		listBorder.Render(m.listViewport.View()),
		" ",
		bodyBorder.Render(m.bodyViewport.View()),
	)

	statusText := fmt.Sprintf(" %s · %s    ←/→/Tab switch  ↑/↓ move  Enter expand  Esc back  q quit",
		m.record.Type, m.record.Name)
	statusBar := statusBarStyle.Width(m.width).Render(statusText)

	return headerRow + "\n" + panes + "\n" + statusBar
}

func (m browserModel) viewDetail() string {
	title := detailTitleStyle.Render(m.record.Name + " / " + m.sections[m.cursor].title)
	content := activeBorderStyle.Width(m.width - 2).Render(m.detailViewport.View())
	statusBar := statusBarStyle.Width(m.width).Render(" esc/backspace back  ↑/↓ scroll  q quit")
	return title + "\n" + content + "\n" + statusBar
}

// renderSection renders the section under the cursor wrapped to width.
func (m browserModel) renderSection(width int) string {
	if len(m.sections) == 0 {
		return ""
	}
	sec := m.sections[m.cursor]
	if sec.module == nil {
		return renderOverview(m.record, width)
	}
	return renderFields(sec.module.Fields, width)
}

func renderOverview(rec model.CanonicalRecord, width int) string {
	var b strings.Builder

	addField := func(label, value string) {
		if value == "" {
			return
		}
		b.WriteString(labelStyle.Render(label))
		b.WriteString(value)
		b.WriteByte('\n')
	}

	addField("Name", rec.Name)
	addField("Type", rec.Type)
	addField("Path", rec.Path)
	addField("Faction", rec.Faction)
	addField("Rarity", rec.Rarity)
	addField("Combat Type", rec.CombatType)

	b.WriteByte('\n')
	if rec.Description == "" {
		b.WriteString(hintStyle.Render("  no description") + "\n")
	} else {
		b.WriteString(bodyStyle.Render(wordWrap(rec.Description, width)) + "\n")
	}
	return b.String()
}

func renderFields(fields []model.Field, width int) string {
	if len(fields) == 0 {
		return hintStyle.Render("  (no fields)")
	}

	var b strings.Builder
	for i, f := range fields {
		key := f.Key
		if key == "" {
			key = "(untitled)"
		}
		b.WriteString(fieldKeyStyle.Render(key))
		b.WriteByte('\n')
		if f.Value != "" {
			b.WriteString(bodyStyle.Render(wordWrap(f.Value, width)))
			b.WriteByte('\n')
		}
		if i < len(fields)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func renderSections(sections []section, cursor int, isActive bool) string {
	var b strings.Builder
	for i, s := range sections {
		isSelected := i == cursor

		titleSt := itemTitleStyle
		subtitleSt := itemSubtitleStyle
		prefix := "  "
		if isSelected {
			prefix = "> "
			if isActive {
				titleSt = selectedItemTitleStyle
				subtitleSt = selectedItemSubtitleStyle
			}
		}

		b.WriteString(prefix)
		b.WriteString(titleSt.Render(s.title))
		b.WriteByte('\n')
		b.WriteString(prefix)
		b.WriteString(subtitleSt.Render(s.subtitle))
		b.WriteByte('\n')

		if i < len(sections)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func wordWrap(text string, width int) string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if len(line)+1+len(w) <= width {
				line += " " + w
			} else {
				out = append(out, line)
				line = w
			}
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// RunBrowser launches the interactive record browser.
// Returns wantQuit=true if the user pressed q/ctrl+c, false if they pressed
// esc to go back to a picker.
func RunBrowser(rec model.CanonicalRecord) (bool, error) {
	p := tea.NewProgram(newBrowserModel(rec), tea.WithAltScreen())
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	final := result.(browserModel)
	return final.wantQuit, nil
}
