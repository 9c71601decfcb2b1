// Package state holds a live board: the elements on the canvas, the current
// selection and the undo/redo log that records how both got there.
package state

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"

	"LocalCanvas/internal/canvas"
	"LocalCanvas/internal/geom"
	"LocalCanvas/internal/history"
)

var (
	ErrNotEmpty         = errors.New("board is not empty")
	ErrUnknownElement   = errors.New("unknown element")
	ErrDuplicateElement = errors.New("element already on board")
)

// Board is safe for concurrent use.
type Board struct {
	id         string
	hitPadding float64
	clock      Clock

	mu        sync.RWMutex
	elements  []canvas.Element
	selection []canvas.Element
	log       history.Log
	cursor    int // number of log entries currently applied
}

// NewBoard returns an empty board. hitPadding widens the area in which
// ElementAt finds an element.
func NewBoard(hitPadding float64) *Board {
	return &Board{
		id:         uuid.NewString(),
		hitPadding: hitPadding,
	}
}

func (b *Board) ID() string { return b.id }

func (b *Board) logger() *slog.Logger {
	return Logger().With("board", b.id)
}

// Add puts those of elems that are not yet on the board on top of the
// canvas and selects them. It returns nil when nothing new was added.
func (b *Board) Add(elems ...canvas.Element) *history.CreateElements {
	b.mu.Lock()
	defer b.mu.Unlock()

	fresh := make([]canvas.Element, 0, len(elems))
	for _, e := range elems {
		if !slices.Contains(b.elements, e) && !slices.Contains(fresh, e) {
			fresh = append(fresh, e)
		}
	}
	if len(fresh) == 0 {
		return nil
	}
	b.elements = append(b.elements, fresh...)
	b.selection = slices.Clone(fresh)
	a := history.NewCreateElements(b.clock.Tick(), fresh, b.selection)
	b.record(a)
	b.logger().Debug("[board] elements created", "count", len(fresh))
	return a
}

// Delete removes those of elems that are on the board. Deleted elements
// leave the selection. It returns nil when nothing was removed.
func (b *Board) Delete(elems ...canvas.Element) *history.DeleteElements {
	b.mu.Lock()
	defer b.mu.Unlock()

	var removed []canvas.Element
	kept := b.elements[:0:0]
	for _, e := range b.elements {
		if slices.Contains(elems, e) {
			removed = append(removed, e)
		} else {
			kept = append(kept, e)
		}
	}
	if len(removed) == 0 {
		return nil
	}
	b.elements = kept
	b.selection = without(b.selection, removed)
	a := history.NewDeleteElements(b.clock.Tick(), removed, b.selection)
	b.record(a)
	b.logger().Debug("[board] elements deleted", "count", len(removed))
	return a
}

// Select replaces the selection with the elements of elems that are on the
// board. Nothing is recorded when the selection would stay the same, in
// which case Select returns nil.
func (b *Board) Select(elems ...canvas.Element) *history.SelectionChange {
	b.mu.Lock()
	defer b.mu.Unlock()

	next := make([]canvas.Element, 0, len(elems))
	for _, e := range elems {
		if slices.Contains(b.elements, e) && !slices.Contains(next, e) {
			next = append(next, e)
		}
	}
	if canvas.ContainSameElements(b.selection, next) {
		return nil
	}
	b.selection = next
	a := history.NewSelectionChange(b.clock.Tick(), next)
	b.record(a)
	b.logger().Debug("[board] selection changed", "count", len(next))
	return a
}

// record appends a to the log, dropping any undone entries.
func (b *Board) record(a history.Action) {
	b.log = append(b.log[:b.cursor], a)
	b.cursor = len(b.log)
}

// Undo reverts the latest applied action and restores the selection that
// was recorded before it. Elements brought back by undoing a deletion go on
// top of the canvas.
func (b *Board) Undo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cursor == 0 {
		return false
	}
	a := b.log[b.cursor-1]
	switch a := a.(type) {
	case *history.CreateElements:
		b.elements = without(b.elements, a.Elements)
	case *history.DeleteElements:
		b.elements = append(b.elements, a.Elements...)
	case *history.SelectionChange:
	default:
		b.logger().Warn("[board] undo of unhandled action", "kind", a.Kind())
	}
	b.cursor--
	b.selection = nil
	if b.cursor > 0 {
		b.selection = b.log[b.cursor-1].SelectionAfter()
	}
	b.logger().Debug("[board] undo", "kind", a.Kind(), "remaining", b.cursor)
	return true
}

// Redo reapplies the next undone action.
func (b *Board) Redo() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.cursor == len(b.log) {
		return false
	}
	a := b.log[b.cursor]
	b.apply(a)
	b.cursor++
	b.logger().Debug("[board] redo", "kind", a.Kind(), "remaining", len(b.log)-b.cursor)
	return true
}

func (b *Board) apply(a history.Action) {
	switch a := a.(type) {
	case *history.CreateElements:
		b.elements = append(b.elements, a.Elements...)
	case *history.DeleteElements:
		b.elements = without(b.elements, a.Elements)
	case *history.SelectionChange:
	default:
		b.logger().Warn("[board] apply of unhandled action", "kind", a.Kind())
	}
	b.selection = a.SelectionAfter()
}

// Replay rebuilds an empty board from a decoded log. Elements that appear
// more than once in the log, as payload and in selection snapshots, are
// matched by ID so that they become a single element on the board.
func (b *Board) Replay(log history.Log) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.log) > 0 || len(b.elements) > 0 {
		return ErrNotEmpty
	}
	known := make(map[string]canvas.Element)
	resolve := func(es canvas.Elements, create bool) ([]canvas.Element, error) {
		out := make([]canvas.Element, 0, len(es))
		for _, e := range es {
			id := e.ElementID()
			live, ok := known[id]
			switch {
			case ok && create && (slices.Contains(b.elements, live) || slices.Contains(out, live)):
				return nil, fmt.Errorf("element %s: %w", id, ErrDuplicateElement)
			case ok:
				out = append(out, live)
			case create:
				known[id] = e
				out = append(out, e)
			default:
				return nil, fmt.Errorf("element %s: %w", id, ErrUnknownElement)
			}
		}
		return out, nil
	}

	for i, a := range log {
		var err error
		var payload, sel []canvas.Element
		switch a := a.(type) {
		case *history.CreateElements:
			payload, err = resolve(a.Elements, true)
		case *history.DeleteElements:
			payload, err = resolve(a.Elements, false)
		}
		if err == nil {
			sel, err = resolve(a.SelectionAfter(), false)
		}
		if err != nil {
			b.reset()
			return fmt.Errorf("replay action %d (%s): %w", i, a.Kind(), err)
		}

		switch a.(type) {
		case *history.CreateElements:
			a = history.NewCreateElements(a.Time(), payload, sel)
		case *history.DeleteElements:
			a = history.NewDeleteElements(a.Time(), payload, sel)
		case *history.SelectionChange:
			a = history.NewSelectionChange(a.Time(), sel)
		}
		b.clock.Update(a.Time())
		b.apply(a)
		b.record(a)
	}
	b.logger().Info("[board] replayed log", "actions", len(log), "elements", len(b.elements))
	return nil
}

func (b *Board) reset() {
	b.elements, b.selection, b.log, b.cursor = nil, nil, nil, 0
}

// ElementAt returns the topmost element whose bounding box, widened by the
// hit padding and half its stroke width, strictly contains p. Dots and
// straight horizontal or vertical strokes are widened the same way.
func (b *Board) ElementAt(p geom.Point) (canvas.Element, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, e := range slices.Backward(b.elements) {
		pad := b.hitPadding
		if s, ok := e.(*canvas.BrushStroke); ok {
			pad += s.Style.StrokeWidth / 2
		}
		if geom.RectContainsPoint(hitBox(e.Bounds(), pad), p) {
			return e, true
		}
	}
	return nil, false
}

// hitBox widens r by pad on every side. ExpandRect leaves a flat axis
// alone, so such an axis is widened here.
func hitBox(r geom.Rect, pad float64) geom.Rect {
	box := geom.ExpandRect(r.Normalize(), pad)
	if box.Width() == 0 {
		box.X1, box.X2 = box.X1-pad, box.X2+pad
	}
	if box.Height() == 0 {
		box.Y1, box.Y2 = box.Y1-pad, box.Y2+pad
	}
	return box
}

// ElementsIn returns, bottom to top, the elements whose bounding box lies
// strictly inside r.
func (b *Board) ElementsIn(r geom.Rect) []canvas.Element {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var out []canvas.Element
	for _, e := range b.elements {
		if geom.RectContainsRect(r, e.Bounds()) {
			out = append(out, e)
		}
	}
	return out
}

// Elements returns the elements, bottom to top.
func (b *Board) Elements() []canvas.Element {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.elements)
}

func (b *Board) Selection() []canvas.Element {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.selection)
}

// History returns the applied part of the log, oldest first.
func (b *Board) History() history.Log {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return slices.Clone(b.log[:b.cursor])
}

// CanUndo and CanRedo report whether Undo and Redo would do anything.
func (b *Board) CanUndo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor > 0
}

func (b *Board) CanRedo() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor < len(b.log)
}

func without(es []canvas.Element, drop []canvas.Element) []canvas.Element {
	out := make([]canvas.Element, 0, len(es))
	for _, e := range es {
		if !slices.Contains(drop, e) {
			out = append(out, e)
		}
	}
	return out
}
