// Package history defines the entries of a board's undo/redo log. Every
// action records the selection as it stood right after the action, so that
// stepping through the log can restore it.
package history

import (
	"slices"
	"time"

	"LocalCanvas/internal/canvas"
)

type Kind string

const (
	KindCreateElements  Kind = "create-elements"
	KindDeleteElements  Kind = "delete-elements"
	KindSelectionChange Kind = "selection-change"
)

// Action is one entry of the log. Consumers switch on the concrete type.
type Action interface {
	Kind() Kind
	// Time is the moment of the action in Unix milliseconds.
	Time() int64
	SelectionAfter() canvas.Elements
}

// Header carries the fields shared by every action.
type Header struct {
	Timestamp            int64           `json:"timestamp"`
	SelectionAfterAction canvas.Elements `json:"selectionAfterAction"`
}

func (h Header) Time() int64 { return h.Timestamp }

// SelectionAfter returns a copy of the selection snapshot.
func (h Header) SelectionAfter() canvas.Elements {
	return slices.Clone(h.SelectionAfterAction)
}

func newHeader(ts int64, selection []canvas.Element) Header {
	return Header{Timestamp: ts, SelectionAfterAction: clone(selection)}
}

type CreateElements struct {
	Header
	Elements canvas.Elements `json:"elements"`
}

type DeleteElements struct {
	Header
	Elements canvas.Elements `json:"elements"`
}

type SelectionChange struct {
	Header
}

var (
	_ Action = (*CreateElements)(nil)
	_ Action = (*DeleteElements)(nil)
	_ Action = (*SelectionChange)(nil)
)

func NewCreateElements(ts int64, elements, selection []canvas.Element) *CreateElements {
	return &CreateElements{Header: newHeader(ts, selection), Elements: clone(elements)}
}

func NewDeleteElements(ts int64, elements, selection []canvas.Element) *DeleteElements {
	return &DeleteElements{Header: newHeader(ts, selection), Elements: clone(elements)}
}

func NewSelectionChange(ts int64, selection []canvas.Element) *SelectionChange {
	return &SelectionChange{Header: newHeader(ts, selection)}
}

func (*CreateElements) Kind() Kind  { return KindCreateElements }
func (*DeleteElements) Kind() Kind  { return KindDeleteElements }
func (*SelectionChange) Kind() Kind { return KindSelectionChange }

// Now returns the current time in the unit used by Action.Time.
func Now() int64 {
	return time.Now().UnixMilli()
}

func clone(es []canvas.Element) canvas.Elements {
	out := make(canvas.Elements, len(es))
	copy(out, es)
	return out
}
