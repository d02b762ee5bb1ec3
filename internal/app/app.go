// Package app is the Bubble Tea board: six day columns, a cursor, and a
// keyboard grab/drop gesture that stands in for pointer drag-and-drop.
package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/pdrmenezes/basic-todo/internal/board"
	"github.com/pdrmenezes/basic-todo/internal/keys"
	"github.com/pdrmenezes/basic-todo/internal/model"
	"github.com/pdrmenezes/basic-todo/internal/theme"
)

// mode tracks what the keyboard is currently driving.
type mode int

const (
	modeBoard mode = iota
	modeForm
	modeDragging
)

// Model is the root Bubble Tea model for the board.
type Model struct {
	board *board.Board
	keys  *keys.KeyMap
	form  *todoForm
	mode  mode

	// Cursor position: column index into model.Days, row within it.
	col int
	row int

	// Drag state, valid while mode == modeDragging.
	grabbedID string
	dropCol   int
	dropRow   int

	width  int
	height int
}

// New creates the board UI over b.
func New(b *board.Board) Model {
	return Model{
		board: b,
		keys:  keys.DefaultKeyMap(),
		width: 120, height: 32,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeDragging:
		return m.updateDragging(msg)
	default:
		return m.updateBoard(msg)
	}
}

func (m Model) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(keyMsg, m.keys.Left):
		m.moveColumn(-1)
	case key.Matches(keyMsg, m.keys.Right):
		m.moveColumn(1)
	case key.Matches(keyMsg, m.keys.Down):
		m.moveRow(1)
	case key.Matches(keyMsg, m.keys.Up):
		m.moveRow(-1)

	case key.Matches(keyMsg, m.keys.Toggle):
		if t, ok := m.focused(); ok {
			m.board.Toggle(t.ID)
		}

	case key.Matches(keyMsg, m.keys.Delete):
		if t, ok := m.focused(); ok {
			m.board.Delete(t.ID)
			m.clampRow()
		}

	case key.Matches(keyMsg, m.keys.Add):
		m.form = newTodoForm("", m.focusedDay())
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(keyMsg, m.keys.Edit):
		if t, ok := m.focused(); ok {
			m.form = newTodoForm(t.Text, t.Day)
			m.form.editID = t.ID
			m.mode = modeForm
			return m, m.form.Init()
		}

	case key.Matches(keyMsg, m.keys.Grab):
		if t, ok := m.focused(); ok {
			m.grabbedID = t.ID
			m.dropCol = m.col
			m.dropRow = m.row
			m.mode = modeDragging
		}

	case key.Matches(keyMsg, m.keys.Reload):
		m.board.Reload()
		m.clampRow()
	}

	return m, nil
}

// updateDragging moves the drop target and resolves the gesture on drop.
func (m Model) updateDragging(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Back):
		// Cancelled gesture: no drop target.
		m.board.ResolveDrop(board.DragEvent{ActiveID: m.grabbedID})
		m.stopDragging()

	case key.Matches(keyMsg, m.keys.Left):
		if m.dropCol > 0 {
			m.dropCol--
			m.dropRow = 0
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.dropCol < len(model.Days)-1 {
			m.dropCol++
			m.dropRow = 0
		}
	case key.Matches(keyMsg, m.keys.Down):
		if max := len(m.board.ForDay(model.Days[m.dropCol])) - 1; m.dropRow < max {
			m.dropRow++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.dropRow > 0 {
			m.dropRow--
		}

	case key.Matches(keyMsg, m.keys.Drop):
		m.board.ResolveDrop(board.DragEvent{
			ActiveID: m.grabbedID,
			OverID:   m.dropTarget(),
		})
		m.stopDragging()

	case key.Matches(keyMsg, m.keys.Quit):
		return m, tea.Quit
	}

	return m, nil
}

// dropTarget converts the drop cursor into the gesture's over id: a day
// column when dropping on another day, otherwise the todo under the cursor.
func (m Model) dropTarget() string {
	day := model.Days[m.dropCol]
	grabbed, ok := m.todoByID(m.grabbedID)
	if !ok {
		return ""
	}
	if day != grabbed.Day {
		return string(day)
	}
	bucket := m.board.ForDay(day)
	if m.dropRow >= 0 && m.dropRow < len(bucket) {
		return bucket[m.dropRow].ID
	}
	return string(day)
}

func (m *Model) stopDragging() {
	m.grabbedID = ""
	m.mode = modeBoard
	m.clampRow()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := m.form.Update(msg)
	m.form = form

	switch m.form.State() {
	case formCancelled:
		m.mode = modeBoard
	case formSubmitted:
		if m.form.editID != "" {
			m.board.Edit(m.form.editID, m.form.Text())
			m.board.ChangeDay(m.form.editID, m.form.Day())
		} else {
			m.board.Add(m.form.Text(), m.form.Day())
			m.row = len(m.board.ForDay(m.form.Day())) - 1
		}
		m.mode = modeBoard
	}
	return m, cmd
}

func (m *Model) moveColumn(delta int) {
	m.col += delta
	if m.col < 0 {
		m.col = 0
	}
	if m.col > len(model.Days)-1 {
		m.col = len(model.Days) - 1
	}
	m.clampRow()
}

func (m *Model) moveRow(delta int) {
	m.row += delta
	m.clampRow()
}

func (m *Model) clampRow() {
	max := len(m.board.ForDay(m.focusedDay())) - 1
	if m.row > max {
		m.row = max
	}
	if m.row < 0 {
		m.row = 0
	}
}

func (m Model) focusedDay() model.Day {
	return model.Days[m.col]
}

func (m Model) focused() (model.Todo, bool) {
	bucket := m.board.ForDay(m.focusedDay())
	if m.row < 0 || m.row >= len(bucket) {
		return model.Todo{}, false
	}
	return bucket[m.row], true
}

func (m Model) todoByID(id string) (model.Todo, bool) {
	for _, t := range m.board.Todos() {
		if t.ID == id {
			return t, true
		}
	}
	return model.Todo{}, false
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(theme.HeaderStyle.Render("basic todo"))
	b.WriteString("\n")

	if msg := m.board.Err(); msg != "" {
		b.WriteString(theme.ErrorStyle.Render(fmt.Sprintf("%s — press r to try again", msg)))
		b.WriteString("\n")
	}

	if m.mode == modeForm {
		b.WriteString(m.form.View())
		return b.String()
	}

	columns := make([]string, 0, len(model.Days))
	colWidth := m.width/len(model.Days) - 4
	if colWidth < 12 {
		colWidth = 12
	}
	for i, day := range model.Days {
		columns = append(columns, m.renderColumn(i, day, colWidth))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, columns...))
	b.WriteString("\n")
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) renderColumn(idx int, day model.Day, width int) string {
	var rows []string
	rows = append(rows, theme.ColumnTitleStyle.Render(string(day)))

	for i, t := range m.board.ForDay(day) {
		text := t.Text
		if r := []rune(text); len(r) > width {
			text = string(r[:width-1]) + "…"
		}
		mark := "[ ]"
		if t.Completed {
			mark = "[x]"
			text = theme.CompletedStyle.Render(text)
		}
		line := fmt.Sprintf("%s %s", mark, text)

		switch {
		case t.ID == m.grabbedID:
			line = theme.GrabbedItemStyle.Render("⇅ " + line)
		case m.mode == modeDragging && idx == m.dropCol && i == m.dropRow:
			line = theme.SelectedItemStyle.Render("→ " + line)
		case m.mode == modeBoard && idx == m.col && i == m.row:
			line = theme.SelectedItemStyle.Render(line)
		default:
			line = theme.ItemStyle.Render(line)
		}
		rows = append(rows, line)
	}

	if len(rows) == 1 {
		rows = append(rows, theme.HelpStyle.Render("(empty)"))
	}

	style := theme.ColumnStyle
	if (m.mode == modeBoard && idx == m.col) ||
		(m.mode == modeDragging && idx == m.dropCol) {
		style = theme.FocusedColumnStyle
	}
	return style.Width(width).Render(strings.Join(rows, "\n"))
}

func (m Model) helpLine() string {
	if m.mode == modeDragging {
		return theme.HelpStyle.Render("h/l j/k move target · enter drop · esc cancel")
	}
	return theme.HelpStyle.Render("h/l j/k navigate · a add · e edit · d delete · space toggle · g grab · r reload · q quit")
}
