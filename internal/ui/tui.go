// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/nibzard/thingstodo/internal/todo"
)

const (
	title    = "Things To Do"
	subtitle = "Plan · Edit · Drag"
)

// focus is the pane receiving key input.
type focus int

const (
	focusInput focus = iota
	focusList
	focusEdit
)

// RunTUI runs the editor on an already loaded manager until the user quits.
func RunTUI(ctx context.Context, mgr *todo.Manager, logger *log.Logger) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}
	program := tea.NewProgram(newModel(mgr, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

type model struct {
	mgr    *todo.Manager
	logger *log.Logger

	keys   keyMap
	help   help.Model
	input  textinput.Model
	editor textarea.Model
	styles styles

	focus  focus
	cursor int
	width  int
	err    error
	status string
}

func newModel(mgr *todo.Manager, logger *log.Logger) *model {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	input := textinput.New()
	input.Placeholder = "What needs doing?"
	input.Prompt = "+ "
	input.CharLimit = 500
	input.SetValue(mgr.Pending())
	input.Focus()

	editor := textarea.New()
	editor.ShowLineNumbers = false
	editor.SetHeight(3)

	return &model{
		mgr:    mgr,
		logger: logger,
		keys:   defaultKeyMap(),
		help:   help.New(),
		input:  input,
		editor: editor,
		styles: newStyles(mgr.Dark()),
		focus:  focusInput,
	}
}

func (m *model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		if w := msg.Width - 12; w > 10 {
			m.input.Width = w
			m.editor.SetWidth(w)
		}
		return m, nil
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			return m, tea.Quit
		}
		m.status = ""
		switch m.focus {
		case focusInput:
			return m, m.updateInput(msg)
		case focusEdit:
			return m, m.updateEdit(msg)
		default:
			return m, m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusInput:
		m.input, cmd = m.input.Update(msg)
	case focusEdit:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m *model) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Add):
		m.mgr.SetPending(m.input.Value())
		before := m.mgr.Len()
		m.report(m.mgr.AddPending())
		if m.mgr.Len() > before {
			m.input.SetValue("")
			m.cursor = m.mgr.Len() - 1
			m.logger.Debug("item added", "count", m.mgr.Len())
		}
		return nil
	case key.Matches(msg, m.keys.Focus), key.Matches(msg, m.keys.Close):
		return m.setFocus(focusList)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.mgr.SetPending(m.input.Value())
	return cmd
}

func (m *model) updateList(msg tea.KeyMsg) tea.Cmd {
	items := m.mgr.Items()
	current := func() (int64, bool) {
		if m.cursor < 0 || m.cursor >= len(items) {
			return 0, false
		}
		return items[m.cursor].ID, true
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Focus):
		if m.mgr.Edit().Open {
			return m.setFocus(focusEdit)
		}
		return m.setFocus(focusInput)
	case key.Matches(msg, m.keys.Toggle):
		if id, ok := current(); ok {
			m.report(m.mgr.ToggleDone(id))
		}
	case key.Matches(msg, m.keys.Edit):
		id, ok := current()
		if !ok {
			return nil
		}
		m.mgr.BeginEdit(id)
		if edit := m.mgr.Edit(); edit.Open {
			m.editor.SetValue(edit.Draft)
			return m.setFocus(focusEdit)
		}
		m.editor.Blur()
	case key.Matches(msg, m.keys.Move):
		id, ok := current()
		if !ok {
			return nil
		}
		dragged, dragging := m.mgr.Dragging()
		if !dragging {
			m.mgr.StartDrag(id)
			m.status = "Moving item: pick a spot and press m to drop it there"
			return nil
		}
		m.report(m.mgr.Drop(id))
		m.cursor = m.indexOf(dragged)
	case key.Matches(msg, m.keys.Close):
		if _, dragging := m.mgr.Dragging(); dragging {
			m.mgr.CancelDrag()
			m.status = "Move cancelled"
		} else if m.mgr.Edit().Open {
			m.mgr.CloseEdit()
		}
	case key.Matches(msg, m.keys.ClearAll):
		m.report(m.mgr.ClearAll())
		m.cursor = 0
		m.logger.Debug("list cleared")
	case key.Matches(msg, m.keys.Theme):
		m.report(m.mgr.ToggleTheme())
		m.styles = newStyles(m.mgr.Dark())
	}
	return nil
}

func (m *model) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Save):
		m.mgr.SetDraft(m.editor.Value())
		m.report(m.mgr.CommitEdit())
		if !m.mgr.Edit().Open {
			return m.setFocus(focusList)
		}
		m.status = "Text cannot be empty"
		return nil
	case key.Matches(msg, m.keys.Delete):
		m.report(m.mgr.DeleteEdited())
		m.clampCursor()
		return m.setFocus(focusList)
	case key.Matches(msg, m.keys.Close):
		m.mgr.CloseEdit()
		return m.setFocus(focusList)
	case key.Matches(msg, m.keys.Focus):
		return m.setFocus(focusList)
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.mgr.SetDraft(m.editor.Value())
	return cmd
}

func (m *model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.input.Blur()
	m.editor.Blur()
	switch f {
	case focusInput:
		return m.input.Focus()
	case focusEdit:
		return m.editor.Focus()
	}
	return nil
}

// report records the outcome of a persisted change.
func (m *model) report(err error) {
	m.err = err
	if err != nil {
		m.logger.Error("save failed", "err", err)
	}
}

func (m *model) indexOf(id int64) int {
	for i, it := range m.mgr.Items() {
		if it.ID == id {
			return i
		}
	}
	return m.cursor
}

func (m *model) clampCursor() {
	if n := m.mgr.Len(); m.cursor >= n {
		m.cursor = max(n-1, 0)
	}
}

func (m *model) View() string {
	var b strings.Builder
	m.writeHeader(&b)
	m.writeInput(&b)
	m.writeItems(&b)
	m.writeEditPanel(&b)
	m.writeStatus(&b)

	m.keys.focus = m.focus
	_, m.keys.dragActive = m.mgr.Dragging()
	b.WriteString(m.help.View(m.keys))
	return m.styles.App.Render(b.String())
}

func (m *model) writeHeader(b *strings.Builder) {
	b.WriteString(m.styles.Title.Render(title))
	if m.mgr.Len() > 0 {
		b.WriteString(" ")
		b.WriteString(m.styles.Badge.Render(fmt.Sprintf("%d left", m.mgr.Remaining())))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(subtitle))
	b.WriteString("\n\n")
}

func (m *model) writeInput(b *strings.Builder) {
	b.WriteString(m.styles.Input.Render(m.input.View()))
	b.WriteString("\n\n")
}

func (m *model) writeItems(b *strings.Builder) {
	items := m.mgr.Items()
	if len(items) == 0 {
		b.WriteString(m.styles.Empty.Render("Nothing to do. Add something above."))
		b.WriteString("\n\n")
		return
	}

	dragged, dragging := m.mgr.Dragging()
	edit := m.mgr.Edit()
	for i, it := range items {
		marker := "  "
		if m.focus == focusList && i == m.cursor {
			marker = m.styles.Cursor.Render("› ")
		}
		check := "[ ]"
		if it.Done {
			check = "[x]"
		}
		text := strings.ReplaceAll(it.Text, "\n", " ")

		style := m.styles.Item
		switch {
		case dragging && it.ID == dragged:
			style = m.styles.Dragged
			text = "↕ " + text
		case edit.Open && it.ID == edit.Target:
			style = m.styles.Editing
		case it.Done:
			style = m.styles.Done
		}
		b.WriteString(marker + check + " " + style.Render(text) + "\n")
	}
	b.WriteString("\n")
}

func (m *model) writeEditPanel(b *strings.Builder) {
	if !m.mgr.Edit().Open {
		return
	}
	var panel strings.Builder
	panel.WriteString(m.styles.Title.Render("Edit item"))
	panel.WriteString("\n")
	panel.WriteString(m.editor.View())
	panel.WriteString("\n")
	panel.WriteString(m.styles.Status.Render("ctrl+s save · ctrl+d delete · esc close"))
	b.WriteString(m.styles.Panel.Render(panel.String()))
	b.WriteString("\n\n")
}

func (m *model) writeStatus(b *strings.Builder) {
	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n\n")
		return
	}
	if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n\n")
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
