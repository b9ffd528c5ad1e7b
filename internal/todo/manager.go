package todo

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
)

// Store is the key-value port the Manager persists through.
type Store interface {
	// Get returns the value for key. ok is false when the key is absent.
	Get(key string) (value string, ok bool, err error)
	// Set stores value under key.
	Set(key, value string) error
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock overrides the time source used for new item ids.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// WithLogger sets the logger used for recovery diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithDefaultTheme sets the theme used when none is stored.
func WithDefaultTheme(dark bool) Option {
	return func(m *Manager) {
		m.defaultDark = dark
	}
}

// Manager holds the task list and its transient editing state.
type Manager struct {
	store       Store
	logger      *log.Logger
	now         func() time.Time
	defaultDark bool

	items   []Item
	edit    EditState
	drag    *int64
	dark    bool
	pending string
}

// NewManager creates a Manager backed by store. Call Load before use.
func NewManager(store Store, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		logger: log.New(io.Discard),
		now:    time.Now,
		items:  []Item{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Load reads the persisted snapshot. Unreadable or empty item lists are
// replaced by SeedItems; an unreadable theme falls back to the default.
// Only store access failures are returned.
func (m *Manager) Load() error {
	items, err := m.loadItems()
	switch {
	case errors.Is(err, ErrPersistedDataUnreadable):
		m.logger.Debug("using seed items", "reason", err)
		items = SeedItems()
	case err != nil:
		return err
	case len(items) == 0:
		m.logger.Debug("stored list is empty, using seed items")
		items = SeedItems()
	}

	dark, err := m.loadTheme()
	if err != nil {
		return err
	}

	m.items = items
	m.dark = dark
	m.edit = EditState{}
	m.drag = nil
	m.pending = ""
	return nil
}

func (m *Manager) loadItems() ([]Item, error) {
	raw, ok, err := m.store.Get(ItemsKey)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ItemsKey, err)
	}
	if !ok {
		return nil, fmt.Errorf("%w: %s not found", ErrPersistedDataUnreadable, ItemsKey)
	}
	return DecodeItems([]byte(raw))
}

func (m *Manager) loadTheme() (bool, error) {
	raw, ok, err := m.store.Get(ThemeKey)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", ThemeKey, err)
	}
	if !ok {
		return m.defaultDark, nil
	}
	dark, err := DecodeTheme(raw)
	if err != nil {
		m.logger.Debug("using default theme", "reason", err)
		return m.defaultDark, nil
	}
	return dark, nil
}

// save writes the list and the theme flag through to the store.
func (m *Manager) save() error {
	data, err := EncodeItems(m.items)
	if err != nil {
		return err
	}
	if err := m.store.Set(ItemsKey, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", ItemsKey, err)
	}
	if err := m.store.Set(ThemeKey, EncodeTheme(m.dark)); err != nil {
		return fmt.Errorf("save %s: %w", ThemeKey, err)
	}
	m.logger.Debug("saved", "items", len(m.items), "dark", m.dark)
	return nil
}

// Items returns a copy of the list in display order.
func (m *Manager) Items() []Item {
	return slices.Clone(m.items)
}

// Item returns the item with id.
func (m *Manager) Item(id int64) (Item, bool) {
	i := m.indexOf(id)
	if i < 0 {
		return Item{}, false
	}
	return m.items[i], true
}

// Len returns the number of items.
func (m *Manager) Len() int {
	return len(m.items)
}

// Remaining returns the number of items not marked done.
func (m *Manager) Remaining() int {
	n := 0
	for _, it := range m.items {
		if !it.Done {
			n++
		}
	}
	return n
}

// Dark reports whether the dark theme is selected.
func (m *Manager) Dark() bool {
	return m.dark
}

// Pending returns the text typed for the next new item.
func (m *Manager) Pending() string {
	return m.pending
}

// Edit returns the current edit panel state.
func (m *Manager) Edit() EditState {
	return m.edit
}

// Dragging returns the id of the item being dragged, if any.
func (m *Manager) Dragging() (int64, bool) {
	if m.drag == nil {
		return 0, false
	}
	return *m.drag, true
}

func (m *Manager) indexOf(id int64) int {
	return slices.IndexFunc(m.items, func(it Item) bool { return it.ID == id })
}

// nextID derives an id from the clock, stepping past ids already in use.
func (m *Manager) nextID() int64 {
	id := m.now().UnixMilli()
	for m.indexOf(id) >= 0 {
		id++
	}
	return id
}

// SetPending updates the new-item text.
func (m *Manager) SetPending(text string) {
	m.pending = text
}

// Add appends a new item. Empty text is ignored.
func (m *Manager) Add(text string) error {
	if text == "" {
		return nil
	}
	m.items = append(m.items, Item{ID: m.nextID(), Text: text})
	m.pending = ""
	return m.save()
}

// AddPending adds the pending text as a new item.
func (m *Manager) AddPending() error {
	return m.Add(m.pending)
}

// BeginEdit opens the edit panel for id with the item's text as draft.
// Calling it for the item already being edited closes the panel; calling it
// for another item moves the panel there.
func (m *Manager) BeginEdit(id int64) {
	i := m.indexOf(id)
	if i < 0 {
		return
	}
	if m.edit.Open && m.edit.Target == id {
		m.CloseEdit()
		return
	}
	m.edit = EditState{Target: id, Draft: m.items[i].Text, Open: true}
}

// CloseEdit closes the edit panel and discards the draft.
func (m *Manager) CloseEdit() {
	m.edit = EditState{}
}

// SetDraft updates the draft text of the open edit panel.
func (m *Manager) SetDraft(text string) {
	if !m.edit.Open {
		return
	}
	m.edit.Draft = text
}

// CommitEdit writes the draft into the edited item and closes the panel.
// An empty draft leaves everything unchanged.
func (m *Manager) CommitEdit() error {
	if !m.edit.Open || m.edit.Draft == "" {
		return nil
	}
	i := m.indexOf(m.edit.Target)
	if i < 0 {
		m.CloseEdit()
		return nil
	}
	m.items[i].Text = m.edit.Draft
	m.CloseEdit()
	return m.save()
}

// DeleteEdited removes the item being edited and closes the panel.
func (m *Manager) DeleteEdited() error {
	if !m.edit.Open {
		return nil
	}
	i := m.indexOf(m.edit.Target)
	m.CloseEdit()
	if i < 0 {
		return nil
	}
	m.items = slices.Delete(m.items, i, i+1)
	m.clearDragIfGone()
	return m.save()
}

// ToggleDone flips the done flag of id. Unknown ids are ignored.
func (m *Manager) ToggleDone(id int64) error {
	i := m.indexOf(id)
	if i < 0 {
		return nil
	}
	m.items[i].Done = !m.items[i].Done
	return m.save()
}

// StartDrag marks id as the dragged item.
func (m *Manager) StartDrag(id int64) {
	if m.indexOf(id) < 0 {
		return
	}
	m.drag = &id
}

// CancelDrag ends a drag without moving anything.
func (m *Manager) CancelDrag() {
	m.drag = nil
}

// Drop moves the dragged item in front of target.
func (m *Manager) Drop(target int64) error {
	if m.drag == nil {
		return nil
	}
	return m.Reorder(*m.drag, target)
}

// Reorder moves dragged immediately before droppedOn, keeping the relative
// order of every other item. It requires dragged to be the active drag and
// consumes it. Equal ids leave the list unchanged.
func (m *Manager) Reorder(dragged, droppedOn int64) error {
	if m.drag == nil || *m.drag != dragged {
		return nil
	}
	m.drag = nil
	if dragged == droppedOn {
		return nil
	}

	from := m.indexOf(dragged)
	if from < 0 || m.indexOf(droppedOn) < 0 {
		return nil
	}
	item := m.items[from]
	m.items = slices.Delete(m.items, from, from+1)
	m.items = slices.Insert(m.items, m.indexOf(droppedOn), item)
	return m.save()
}

// ClearAll removes every item.
func (m *Manager) ClearAll() error {
	m.items = []Item{}
	m.edit = EditState{}
	m.drag = nil
	return m.save()
}

// SetTheme selects the dark (true) or light (false) theme.
func (m *Manager) SetTheme(dark bool) error {
	m.dark = dark
	return m.save()
}

// ToggleTheme switches between light and dark.
func (m *Manager) ToggleTheme() error {
	return m.SetTheme(!m.dark)
}

func (m *Manager) clearDragIfGone() {
	if m.drag != nil && m.indexOf(*m.drag) < 0 {
		m.drag = nil
	}
}
