package state

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalCanvas/internal/canvas"
	"LocalCanvas/internal/geom"
	"LocalCanvas/internal/history"
)

var style = canvas.StrokeAndFillStyling{StrokeWidth: 2, StrokeColor: 0x000000, FillColor: -1}

func square(x, y, size float64) *canvas.BrushStroke {
	return canvas.NewBrushStroke([]geom.Point{
		{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size}, {X: x, Y: y + size},
	}, style)
}

func fixedBoard(t *testing.T) *Board {
	t.Helper()
	b := NewBoard(1)
	var now int64 = 1000
	b.clock.now = func() int64 { return now }
	return b
}

func TestAddSelectsCreated(t *testing.T) {
	b := fixedBoard(t)
	s1, s2 := square(0, 0, 10), square(20, 0, 10)

	a := b.Add(s1, s2)
	require.NotNil(t, a)
	assert.Equal(t, history.KindCreateElements, a.Kind())
	assert.Equal(t, []canvas.Element{s1, s2}, b.Elements())
	assert.Equal(t, []canvas.Element{s1, s2}, b.Selection())
	assert.Equal(t, canvas.Elements{s1, s2}, a.SelectionAfter())

	assert.Nil(t, b.Add())
	assert.Len(t, b.History(), 1)
}

func TestTimestampsIncrease(t *testing.T) {
	b := fixedBoard(t)
	b.Add(square(0, 0, 1))
	b.Add(square(5, 5, 1))
	b.Select()
	h := b.History()
	require.Len(t, h, 3)
	assert.Equal(t, int64(1000), h[0].Time())
	assert.Equal(t, int64(1001), h[1].Time())
	assert.Equal(t, int64(1002), h[2].Time())
}

func TestSelectSkipsSameSelection(t *testing.T) {
	b := fixedBoard(t)
	s1, s2 := square(0, 0, 10), square(20, 0, 10)
	b.Add(s1, s2)

	assert.Nil(t, b.Select(s2, s1), "same elements in another order")
	a := b.Select(s1)
	require.NotNil(t, a)
	assert.Equal(t, canvas.Elements{s1}, a.SelectionAfter())

	stranger := square(50, 50, 1)
	assert.Nil(t, b.Select(s1, stranger, s1), "elements off the board are ignored")
	assert.Len(t, b.History(), 2)
}

func TestDelete(t *testing.T) {
	b := fixedBoard(t)
	s1, s2, s3 := square(0, 0, 10), square(20, 0, 10), square(40, 0, 10)
	b.Add(s1, s2, s3)

	a := b.Delete(s3, s1)
	require.NotNil(t, a)
	assert.Equal(t, canvas.Elements{s1, s3}, a.Elements, "board order")
	assert.Equal(t, []canvas.Element{s2}, b.Elements())
	assert.Equal(t, []canvas.Element{s2}, b.Selection())

	assert.Nil(t, b.Delete(s1))
}

func TestUndoRedo(t *testing.T) {
	b := fixedBoard(t)
	s1, s2 := square(0, 0, 10), square(20, 0, 10)
	assert.False(t, b.Undo())

	b.Add(s1)
	b.Add(s2)
	b.Select(s1)
	b.Delete(s1)

	require.True(t, b.Undo()) // delete
	assert.Equal(t, []canvas.Element{s2, s1}, b.Elements())
	assert.Equal(t, []canvas.Element{s1}, b.Selection())

	require.True(t, b.Undo()) // select
	assert.Equal(t, []canvas.Element{s2}, b.Selection())

	require.True(t, b.Undo()) // add s2
	assert.Equal(t, []canvas.Element{s1}, b.Elements())
	assert.Equal(t, []canvas.Element{s1}, b.Selection())

	require.True(t, b.Undo()) // add s1
	assert.Empty(t, b.Elements())
	assert.Empty(t, b.Selection())
	assert.False(t, b.Undo())
	assert.True(t, b.CanRedo())

	require.True(t, b.Redo())
	require.True(t, b.Redo())
	assert.Equal(t, []canvas.Element{s1, s2}, b.Elements())
	assert.Equal(t, []canvas.Element{s2}, b.Selection())
	assert.Len(t, b.History(), 2)

	// a new action discards the redo tail
	b.Select(s1, s2)
	assert.False(t, b.CanRedo())
	assert.False(t, b.Redo())
	assert.Len(t, b.History(), 3)
}

func TestElementAt(t *testing.T) {
	b := fixedBoard(t) // padding 1, stroke width 2 → reach of 2
	low, high := square(0, 0, 10), square(5, 5, 10)
	b.Add(low, high)

	e, ok := b.ElementAt(geom.Pt(7, 7))
	require.True(t, ok)
	assert.Same(t, high, e)

	e, ok = b.ElementAt(geom.Pt(1, 1))
	require.True(t, ok)
	assert.Same(t, low, e)

	e, ok = b.ElementAt(geom.Pt(-1.5, 3))
	require.True(t, ok)
	assert.Same(t, low, e)

	_, ok = b.ElementAt(geom.Pt(-2, 3))
	assert.False(t, ok, "boundary of the widened box")

	dot := canvas.NewBrushStroke([]geom.Point{{X: 100, Y: 100}}, style)
	line := canvas.NewBrushStroke([]geom.Point{{X: 200, Y: 50}, {X: 260, Y: 50}}, style)
	b.Add(dot, line)

	e, ok = b.ElementAt(geom.Pt(101, 99))
	require.True(t, ok)
	assert.Same(t, dot, e)

	e, ok = b.ElementAt(geom.Pt(230, 51.5))
	require.True(t, ok)
	assert.Same(t, line, e)

	_, ok = b.ElementAt(geom.Pt(230, 52))
	assert.False(t, ok, "boundary of the widened line")
}

func TestAddSkipsElementsOnBoard(t *testing.T) {
	b := fixedBoard(t)
	s1, s2 := square(0, 0, 10), square(20, 0, 10)

	require.NotNil(t, b.Add(s1))
	assert.Nil(t, b.Add(s1))
	assert.Len(t, b.History(), 1)

	a := b.Add(s1, s2, s2)
	require.NotNil(t, a)
	assert.Equal(t, canvas.Elements{s2}, a.Elements)
	assert.Equal(t, []canvas.Element{s1, s2}, b.Elements())
	assert.Equal(t, []canvas.Element{s2}, b.Selection())

	require.True(t, b.Undo())
	assert.Equal(t, []canvas.Element{s1}, b.Elements())
	require.True(t, b.Undo())
	assert.Empty(t, b.Elements())
	require.True(t, b.Redo())
	assert.Equal(t, []canvas.Element{s1}, b.Elements())
}

func TestElementsIn(t *testing.T) {
	b := fixedBoard(t)
	s1, s2 := square(0, 0, 10), square(20, 0, 10)
	dot := canvas.NewBrushStroke([]geom.Point{{X: 5, Y: 30}}, style)
	b.Add(s1, s2, dot)

	got := b.ElementsIn(geom.Rect{X1: 15, Y1: 40, X2: -1, Y2: -1})
	assert.Equal(t, []canvas.Element{s1, dot}, got)
	assert.Empty(t, b.ElementsIn(geom.Rect{X1: 0, Y1: 0, X2: 10, Y2: 10}), "touching the edge is not inside")
}

func TestReplay(t *testing.T) {
	src := fixedBoard(t)
	s1, s2 := square(0, 0, 10), square(20, 0, 10)
	src.Add(s1, s2)
	src.Select(s2)
	src.Delete(s1)

	data, err := json.Marshal(src.History())
	require.NoError(t, err)
	var log history.Log
	require.NoError(t, json.Unmarshal(data, &log))

	dst := NewBoard(0)
	require.NoError(t, dst.Replay(log))
	require.Len(t, dst.Elements(), 1)
	require.Len(t, dst.Selection(), 1)
	assert.Same(t, dst.Elements()[0], dst.Selection()[0], "selection refers to the live element")
	assert.Equal(t, s2.ID, dst.Elements()[0].ElementID())

	require.True(t, dst.Undo())
	assert.Len(t, dst.Elements(), 2)
	assert.Greater(t, dst.clock.Tick(), src.History()[2].Time())

	assert.ErrorIs(t, dst.Replay(log), ErrNotEmpty)
}

func TestReplayUnknownElement(t *testing.T) {
	ghost := square(0, 0, 1)
	log := history.Log{history.NewDeleteElements(1, []canvas.Element{ghost}, nil)}

	b := NewBoard(0)
	assert.ErrorIs(t, b.Replay(log), ErrUnknownElement)
	assert.Empty(t, b.History())

	log = history.Log{history.NewSelectionChange(1, []canvas.Element{ghost})}
	assert.ErrorIs(t, b.Replay(log), ErrUnknownElement)
}

func TestReplayDuplicateCreate(t *testing.T) {
	s := square(0, 0, 10)
	roundTrip := func(log history.Log) history.Log {
		t.Helper()
		data, err := json.Marshal(log)
		require.NoError(t, err)
		var out history.Log
		require.NoError(t, json.Unmarshal(data, &out))
		return out
	}

	b := NewBoard(0)
	log := roundTrip(history.Log{
		history.NewCreateElements(1, []canvas.Element{s}, nil),
		history.NewCreateElements(2, []canvas.Element{s}, nil),
	})
	assert.ErrorIs(t, b.Replay(log), ErrDuplicateElement)
	assert.Empty(t, b.Elements())

	log = roundTrip(history.Log{history.NewCreateElements(1, []canvas.Element{s, s}, nil)})
	assert.ErrorIs(t, b.Replay(log), ErrDuplicateElement)

	log = roundTrip(history.Log{
		history.NewCreateElements(1, []canvas.Element{s}, nil),
		history.NewDeleteElements(2, []canvas.Element{s}, nil),
		history.NewCreateElements(3, []canvas.Element{s}, []canvas.Element{s}),
	})
	require.NoError(t, b.Replay(log))
	require.Len(t, b.Elements(), 1)
	assert.Equal(t, s.ID, b.Elements()[0].ElementID())

	require.True(t, b.Undo())
	assert.Empty(t, b.Elements())
	require.True(t, b.Undo())
	assert.Len(t, b.Elements(), 1)
}

func TestConcurrentUse(t *testing.T) {
	b := NewBoard(0)
	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s := square(float64(i)*20, 0, 10)
			b.Add(s)
			b.ElementAt(geom.Pt(float64(i)*20+5, 5))
			b.Select(s)
			b.ElementsIn(geom.Rect{X1: -1, Y1: -1, X2: 200, Y2: 20})
		}()
	}
	wg.Wait()
	assert.Len(t, b.Elements(), 8)
	assert.GreaterOrEqual(t, len(b.History()), 8)
	assert.LessOrEqual(t, len(b.History()), 16)
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	b := NewBoard(0)
	b.Add(square(0, 0, 1))
	assert.Contains(t, buf.String(), "[board] elements created")
	assert.Contains(t, buf.String(), "board="+b.ID())

	SetLogger(nil)
	buf.Reset()
	b.Add(square(0, 0, 1))
	assert.Empty(t, buf.String())
}
