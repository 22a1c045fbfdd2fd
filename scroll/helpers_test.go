package scroll

import (
	"bytes"
	"testing"

	"github.com/agiangrant/listview/retained"
	"github.com/rs/zerolog"
)

const (
	testView = 660
	testItem = 220
	frame    = float32(1.0 / 60)
)

// fillLog records FillItemData calls and panics on panicAt.
type fillLog struct {
	calls   []int
	panicAt int
}

func (f *fillLog) FillItemData(it *Item, index int) {
	if index == f.panicAt {
		panic("bind failed")
	}
	f.calls = append(f.calls, index)
}

func newTestRegion(t *testing.T, total int, mutate func(*Options)) (*Region, *fillLog) {
	t.Helper()
	src := &fillLog{panicAt: -1}
	return newRegionWith(t, total, src, mutate), src
}

func newRegionWith(t *testing.T, total int, src ItemSource, mutate func(*Options)) *Region {
	t.Helper()
	opts := DefaultOptions()
	opts.TotalCount = total
	opts.Template = retained.NewNode("cell", 400, testItem)
	if mutate != nil {
		mutate(&opts)
	}
	view := retained.NewNode("view", 400, testView)
	content := retained.NewNode("content", 0, 0)
	r, err := New(view, content, src, opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(r.Close)
	return r
}

func bufferLogger(buf *bytes.Buffer) *zerolog.Logger {
	l := zerolog.New(buf)
	return &l
}

func step(r *Region, frames int) {
	for i := 0; i < frames; i++ {
		r.Tick(frame)
	}
}

func drag(r *Region, from, to retained.Vec2) {
	start := retained.NewPointerEvent(retained.EventDragStart, from, retained.MouseButtonLeft)
	r.HandleDragStart(start)
	start.Release()
	move := retained.NewPointerEvent(retained.EventDragMove, to, retained.MouseButtonLeft)
	r.HandleDrag(move)
	move.Release()
}

func release(r *Region, at retained.Vec2) {
	end := retained.NewPointerEvent(retained.EventDragEnd, at, retained.MouseButtonLeft)
	r.HandleDragEnd(end)
	end.Release()
}

// checkWindow verifies the live window is contiguous and matches its bounds.
func checkWindow(t *testing.T, r *Region) {
	t.Helper()
	if got, want := len(r.items), r.itemEnd-r.itemStart; got != want {
		t.Fatalf("live items = %d, want ItemEnd-ItemStart = %d", got, want)
	}
	for i, it := range r.items {
		if it.index != r.itemStart+i {
			t.Fatalf("items[%d].index = %d, want %d", i, it.index, r.itemStart+i)
		}
		if it.region != r {
			t.Fatalf("items[%d] region not set", i)
		}
	}
}

func approx(a, b, eps float32) bool {
	return abs(a-b) <= eps
}
