package mapstate

import "errors"

// EditorState is the per-field edit/view state.
type EditorState string

const (
	StateViewing EditorState = "VIEWING"
	StateEditing EditorState = "EDITING"
)

var (
	ErrNotEditing      = errors.New("editor: not in editing state")
	ErrAlreadyEditing  = errors.New("editor: already editing")
	ErrIndexOutOfRange = errors.New("editor: entry index out of range")
)

// SlotEditor implements the per-field state machine: Viewing shows the
// committed value, Editing holds a mutable draft seeded from it. Save commits
// the draft (filtering blank entries for the multi-entry slot), Cancel
// discards it. There is no terminal state.
type SlotEditor struct {
	state     EditorState
	committed []string
	draft     []string
	multi     bool
}

// NewTextEditor creates an editor for a single free-text slot.
func NewTextEditor(value string) *SlotEditor {
	return &SlotEditor{state: StateViewing, committed: []string{value}}
}

// NewEntryEditor creates an editor for the multi-entry slot (slot 2).
func NewEntryEditor(entries []string) *SlotEditor {
	committed := make([]string, len(entries))
	copy(committed, entries)
	return &SlotEditor{state: StateViewing, committed: committed, multi: true}
}

func (e *SlotEditor) State() EditorState { return e.state }

// Committed returns the last committed value(s).
func (e *SlotEditor) Committed() []string {
	out := make([]string, len(e.committed))
	copy(out, e.committed)
	return out
}

// Draft returns the current draft buffer. Only meaningful while editing.
func (e *SlotEditor) Draft() []string {
	out := make([]string, len(e.draft))
	copy(out, e.draft)
	return out
}

// Edit transitions Viewing -> Editing, seeding the draft from the committed
// value.
func (e *SlotEditor) Edit() error {
	if e.state == StateEditing {
		return ErrAlreadyEditing
	}
	e.draft = make([]string, len(e.committed))
	copy(e.draft, e.committed)
	e.state = StateEditing
	return nil
}

// SetDraft replaces the draft buffer while editing.
func (e *SlotEditor) SetDraft(values []string) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.draft = make([]string, len(values))
	copy(e.draft, values)
	return nil
}

// AddEntry appends a blank entry to the draft of a multi-entry slot.
func (e *SlotEditor) AddEntry() error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.draft = append(e.draft, "")
	return nil
}

// RemoveEntry deletes the draft entry at index, preserving the order of the
// rest.
func (e *SlotEditor) RemoveEntry(index int) error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	if index < 0 || index >= len(e.draft) {
		return ErrIndexOutOfRange
	}
	e.draft = append(e.draft[:index], e.draft[index+1:]...)
	return nil
}

// Save commits the draft and returns to Viewing. For the multi-entry slot
// blank entries are filtered out before the commit.
func (e *SlotEditor) Save() ([]string, error) {
	if e.state != StateEditing {
		return nil, ErrNotEditing
	}
	if e.multi {
		e.committed = FilterBlank(e.draft)
	} else {
		e.committed = make([]string, len(e.draft))
		copy(e.committed, e.draft)
	}
	e.draft = nil
	e.state = StateViewing
	return e.Committed(), nil
}

// Cancel discards the draft and reverts to the last committed value.
func (e *SlotEditor) Cancel() error {
	if e.state != StateEditing {
		return ErrNotEditing
	}
	e.draft = nil
	e.state = StateViewing
	return nil
}
