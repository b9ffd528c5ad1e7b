package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/thingstodo/internal/store"
	"github.com/nibzard/thingstodo/internal/todo"
)

func newTestModel(t *testing.T) (*model, *store.Memory) {
	t.Helper()
	mem := store.NewMemory()
	mgr := todo.NewManager(mem)
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return newModel(mgr, nil), mem
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func keyType(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

var space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}

func press(m *model, msgs ...tea.Msg) *model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(*model)
	}
	return m
}

func typeText(m *model, s string) *model {
	for _, r := range s {
		m = press(m, runes(string(r)))
	}
	return m
}

func itemIDs(m *model) []int64 {
	var out []int64
	for _, it := range m.mgr.Items() {
		out = append(out, it.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddFromInput(t *testing.T) {
	m, mem := newTestModel(t)

	m = typeText(m, "Water the plants")
	if got := m.mgr.Pending(); got != "Water the plants" {
		t.Fatalf("Pending: got %q", got)
	}
	m = press(m, keyType(tea.KeyEnter))

	if m.mgr.Len() != 5 {
		t.Fatalf("Len: got %d, want 5", m.mgr.Len())
	}
	last := m.mgr.Items()[4]
	if last.Text != "Water the plants" || last.Done {
		t.Errorf("new item: got %+v", last)
	}
	if m.input.Value() != "" || m.mgr.Pending() != "" {
		t.Errorf("input should be cleared, got %q / %q", m.input.Value(), m.mgr.Pending())
	}
	if raw, _, _ := mem.Get(todo.ItemsKey); !strings.Contains(raw, "Water the plants") {
		t.Errorf("item not persisted: %s", raw)
	}
}

func TestAddEmptyInputIsIgnored(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, keyType(tea.KeyEnter))
	if m.mgr.Len() != 4 {
		t.Errorf("Len: got %d, want 4", m.mgr.Len())
	}
}

func TestInputKeysDoNotTriggerListActions(t *testing.T) {
	m, _ := newTestModel(t)
	m = typeText(m, "qt")
	if m.focus != focusInput {
		t.Fatalf("focus: got %v, want input", m.focus)
	}
	if m.mgr.Dark() {
		t.Error("t in the input should not toggle the theme")
	}
	if m.input.Value() != "qt" {
		t.Errorf("input: got %q, want qt", m.input.Value())
	}
}

func TestToggleDoneFromList(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, keyType(tea.KeyTab))
	if m.focus != focusList {
		t.Fatalf("focus: got %v, want list", m.focus)
	}

	m = press(m, space)
	if it, _ := m.mgr.Item(1); it.Done {
		t.Error("item 1 should be undone")
	}
	m = press(m, keyType(tea.KeyDown), runes("x"))
	if it, _ := m.mgr.Item(2); !it.Done {
		t.Error("item 2 should be done")
	}
}

func TestEditCommit(t *testing.T) {
	m, mem := newTestModel(t)
	m = press(m, keyType(tea.KeyTab), keyType(tea.KeyDown), runes("e"))

	edit := m.mgr.Edit()
	if !edit.Open || edit.Target != 2 {
		t.Fatalf("edit state: got %+v", edit)
	}
	if m.focus != focusEdit {
		t.Fatalf("focus: got %v, want edit", m.focus)
	}
	if m.editor.Value() != "Prepare the project report" {
		t.Errorf("editor seeded with %q", m.editor.Value())
	}

	m = typeText(m, " today")
	if m.mgr.Edit().Draft != "Prepare the project report today" {
		t.Errorf("draft: got %q", m.mgr.Edit().Draft)
	}
	m = press(m, keyType(tea.KeyCtrlS))

	if it, _ := m.mgr.Item(2); it.Text != "Prepare the project report today" {
		t.Errorf("text: got %q", it.Text)
	}
	if m.mgr.Edit().Open || m.focus != focusList {
		t.Error("panel should close and focus return to the list")
	}
	if raw, _, _ := mem.Get(todo.ItemsKey); !strings.Contains(raw, "report today") {
		t.Errorf("edit not persisted: %s", raw)
	}
}

func TestEditEmptyDraftKeepsPanelOpen(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, keyType(tea.KeyTab), runes("e"))
	m.editor.SetValue("")
	m = press(m, keyType(tea.KeyCtrlS))

	if !m.mgr.Edit().Open {
		t.Error("panel should stay open on empty draft")
	}
	if it, _ := m.mgr.Item(1); it.Text != "Check email and reply to messages" {
		t.Errorf("text changed to %q", it.Text)
	}
	if !strings.Contains(m.View(), "Text cannot be empty") {
		t.Error("view should explain why nothing was saved")
	}
}

func TestEditDelete(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, keyType(tea.KeyTab), keyType(tea.KeyDown), keyType(tea.KeyDown), keyType(tea.KeyDown))
	m = press(m, runes("e"), keyType(tea.KeyCtrlD))

	if !equalIDs(itemIDs(m), []int64{1, 2, 3}) {
		t.Errorf("ids: got %v", itemIDs(m))
	}
	if m.cursor != 2 {
		t.Errorf("cursor: got %d, want 2", m.cursor)
	}
	if m.mgr.Edit().Open {
		t.Error("panel should be closed")
	}
}

func TestEditEscapeDiscardsDraft(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, keyType(tea.KeyTab), runes("e"))
	m = typeText(m, "zzz")
	m = press(m, keyType(tea.KeyEsc))

	if m.mgr.Edit().Open {
		t.Error("panel should be closed")
	}
	if it, _ := m.mgr.Item(1); strings.Contains(it.Text, "zzz") {
		t.Errorf("draft leaked into item: %q", it.Text)
	}
}

func TestOneEditPanelAtATime(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, keyType(tea.KeyTab), runes("e"))
	// Back to the list with the panel still open.
	m = press(m, keyType(tea.KeyTab))
	if !m.mgr.Edit().Open || m.focus != focusList {
		t.Fatalf("panel should stay open while browsing, edit=%+v focus=%v", m.mgr.Edit(), m.focus)
	}

	m = press(m, keyType(tea.KeyDown), runes("e"))
	if edit := m.mgr.Edit(); !edit.Open || edit.Target != 2 {
		t.Fatalf("panel should switch to item 2, got %+v", edit)
	}
	if m.editor.Value() != "Prepare the project report" {
		t.Errorf("editor: got %q", m.editor.Value())
	}

	m = press(m, keyType(tea.KeyTab), runes("e"))
	if m.mgr.Edit().Open {
		t.Error("edit on the open item should close the panel")
	}
}

func TestMoveItem(t *testing.T) {
	m, mem := newTestModel(t)
	m = press(m, keyType(tea.KeyTab), keyType(tea.KeyDown), keyType(tea.KeyDown))
	m = press(m, runes("m"))

	if id, ok := m.mgr.Dragging(); !ok || id != 3 {
		t.Fatalf("dragging: got %d %v", id, ok)
	}
	if !strings.Contains(m.View(), "↕ Call the client") {
		t.Error("dragged item should be highlighted")
	}

	m = press(m, keyType(tea.KeyUp), keyType(tea.KeyUp), runes("m"))
	if !equalIDs(itemIDs(m), []int64{3, 1, 2, 4}) {
		t.Errorf("ids: got %v", itemIDs(m))
	}
	if m.cursor != 0 {
		t.Errorf("cursor should follow the moved item, got %d", m.cursor)
	}
	if _, ok := m.mgr.Dragging(); ok {
		t.Error("drag should be consumed")
	}
	if raw, _, _ := mem.Get(todo.ItemsKey); !strings.HasPrefix(raw, `[{"id":3`) {
		t.Errorf("order not persisted: %s", raw)
	}
}

func TestMoveCancel(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(m, keyType(tea.KeyTab), runes("m"), keyType(tea.KeyDown), keyType(tea.KeyEsc))

	if _, ok := m.mgr.Dragging(); ok {
		t.Error("drag should be cancelled")
	}
	if !equalIDs(itemIDs(m), []int64{1, 2, 3, 4}) {
		t.Errorf("ids: got %v", itemIDs(m))
	}
	if !strings.Contains(m.View(), "Move cancelled") {
		t.Error("view should report the cancelled move")
	}
}

func TestClearAllAndTheme(t *testing.T) {
	m, mem := newTestModel(t)
	m = press(m, keyType(tea.KeyTab), runes("t"))
	if !m.mgr.Dark() {
		t.Fatal("theme should be dark")
	}
	if v, _, _ := mem.Get(todo.ThemeKey); v != "true" {
		t.Errorf("theme not persisted: %q", v)
	}

	m = press(m, keyType(tea.KeyCtrlX))
	if m.mgr.Len() != 0 {
		t.Fatalf("Len: got %d, want 0", m.mgr.Len())
	}
	view := m.View()
	if !strings.Contains(view, "Nothing to do") {
		t.Error("empty list message missing")
	}
	if strings.Contains(view, " left") {
		t.Error("badge should be hidden on an empty list")
	}
}

func TestViewHeader(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	for _, want := range []string{title, subtitle, "3 left", "[x]", "Check email"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestQuit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := m.Update(keyType(tea.KeyCtrlC))
	if cmd == nil {
		t.Fatal("ctrl+c should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit from the input")
	}

	m = press(m, keyType(tea.KeyTab))
	_, cmd = m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("q should return a command in the list")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit from the list")
	}
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, nil }
func (failingStore) Set(string, string) error       { return errors.New("disk full") }

func TestSaveErrorIsShown(t *testing.T) {
	mgr := todo.NewManager(failingStore{})
	if err := mgr.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m := newModel(mgr, nil)
	m = press(m, keyType(tea.KeyTab), space)

	if !strings.Contains(m.View(), "disk full") {
		t.Error("save error should be shown")
	}
	if it, _ := mgr.Item(1); it.Done {
		t.Error("in-memory change should stand")
	}
}

func TestIsTTY(t *testing.T) {
	if IsTTY(&bytes.Buffer{}) {
		t.Error("buffer is not a TTY")
	}
}
