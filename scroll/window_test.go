package scroll

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/agiangrant/listview/pool"
	"github.com/agiangrant/listview/retained"
)

func TestNewErrors(t *testing.T) {
	view := retained.NewNode("view", 100, 100)
	content := retained.NewNode("content", 0, 0)
	src := SourceFunc(func(*Item, int) {})
	tpl := retained.NewNode("cell", 100, 10)

	tests := []struct {
		name    string
		view    *retained.Node
		content *retained.Node
		source  ItemSource
		opts    func(*Options)
		want    error
	}{
		{"no content", view, nil, src, nil, ErrNoContent},
		{"no source", view, content, nil, nil, ErrNoSource},
		{"no template", view, content, src, func(o *Options) { o.Template = nil }, ErrNoTemplate},
		{"bad direction", view, content, src, func(o *Options) { o.Direction = 9 }, ErrInvalidAxis},
		{"negative total", view, content, src, func(o *Options) { o.TotalCount = -1 }, ErrInvalidConfig},
		{"recovery pool", view, content, src, func(o *Options) { o.PoolMode = pool.ModeRecovery }, ErrInvalidConfig},
		{"missing named template", view, content, src, func(o *Options) {
			o.Template = nil
			o.TemplateName = "row"
			o.Loader = retained.NewCatalog()
		}, ErrNoTemplate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Template = tpl
			if tt.opts != nil {
				tt.opts(&opts)
			}
			_, err := New(tt.view, tt.content, tt.source, opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("New() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestNewParentsContent(t *testing.T) {
	r, _ := newTestRegion(t, 10, nil)
	if r.Content().Parent() != r.View() {
		t.Error("content not parented under view")
	}
	if r.ItemStart() != 0 || r.ItemEnd() != 0 {
		t.Errorf("window before fill = [%d, %d), want empty", r.ItemStart(), r.ItemEnd())
	}
}

func TestFillCells(t *testing.T) {
	r, src := newTestRegion(t, 100, nil)
	var filled int
	r.OnFilled(func(*Region) { filled++ })
	r.FillCells(0)

	if r.ItemStart() != 0 {
		t.Errorf("ItemStart = %d, want 0", r.ItemStart())
	}
	if n := r.ItemEnd() - r.ItemStart(); n < 3 || n > 4 {
		t.Errorf("live items = %d, want 3 or 4", n)
	}
	if len(src.calls) != r.ItemEnd() {
		t.Errorf("FillItemData calls = %v, want one per live item", src.calls)
	}
	if filled != 1 {
		t.Errorf("OnFilled fired %d times, want 1", filled)
	}
	checkWindow(t, r)

	lo, hi := r.contentSpan()
	if lo > 0 || hi < testView {
		t.Errorf("content span = [%v, %v], want it to cover [0, %d]", lo, hi, testView)
	}
}

func TestFillCellsOffset(t *testing.T) {
	tests := []struct {
		name      string
		offset    int
		wantStart int
	}{
		{"middle", 40, 40},
		{"negative clamps", -5, 0},
		{"past end clamps", 500, 97},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegion(t, 100, nil)
			r.FillCells(tt.offset)
			if r.ItemStart() != tt.wantStart {
				t.Errorf("ItemStart = %d, want %d", r.ItemStart(), tt.wantStart)
			}
			checkWindow(t, r)
		})
	}
}

func TestFillReverse(t *testing.T) {
	r, _ := newTestRegion(t, 100, func(o *Options) { o.Direction = BottomToTop })
	r.FillCells(0)

	if r.ItemStart() != 97 || r.ItemEnd() != 100 {
		t.Fatalf("window = [%d, %d), want [97, 100)", r.ItemStart(), r.ItemEnd())
	}
	checkWindow(t, r)
	last := r.liveItem(99)
	lo, hi := r.itemSpan(last)
	if lo != testView-testItem || hi != testView {
		t.Errorf("item 99 span = [%v, %v], want it at the bottom of the view", lo, hi)
	}
}

func TestFillGrid(t *testing.T) {
	r, _ := newTestRegion(t, 20, func(o *Options) {
		o.CellCount = 3
		o.CellSize = retained.Vec2{X: 100, Y: 100}
	})
	r.View().SetPreferredSize(300, 250)
	r.FillCells(0)

	if r.ItemStart() != 0 || r.ItemEnd() != 9 {
		t.Fatalf("window = [%d, %d), want 3 lines of 3", r.ItemStart(), r.ItemEnd())
	}
	if got, want := r.liveItem(4).Node().Position(), (retained.Vec2{X: 100, Y: 100}); got != want {
		t.Errorf("item 4 position = %v, want %v", got, want)
	}
}

func TestGridFillAlignsOffset(t *testing.T) {
	r, _ := newTestRegion(t, 20, func(o *Options) {
		o.CellCount = 3
		o.CellSize = retained.Vec2{X: 100, Y: 100}
	})
	r.View().SetPreferredSize(300, 250)
	r.FillCells(7)
	if r.ItemStart() != 6 {
		t.Errorf("ItemStart = %d, want 6", r.ItemStart())
	}
}

func TestWindowFollowsContent(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(0)

	for _, pos := range []float32{-100, -500, -1500, -3000, -2000, -40, 0} {
		r.setContentPosition(pos, true)
		checkWindow(t, r)
		lo, hi := r.contentSpan()
		if lo > 0 || hi < testView {
			t.Fatalf("at %v span = [%v, %v], want it to cover the view", pos, lo, hi)
		}
		if lo < -r.threshold || hi > testView+r.threshold {
			t.Fatalf("at %v span = [%v, %v], want overscan within %v", pos, lo, hi, r.threshold)
		}
	}
}

func TestWindowKeepsScreenStable(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(0)
	r.setContentPosition(-1000, true)

	it := r.GetFirstShow()
	lo, _ := r.itemSpan(it)
	want := float32(it.Index())*testItem - 1000
	if lo != want {
		t.Errorf("item %d at %v, want %v", it.Index(), lo, want)
	}
}

func TestRefreshCells(t *testing.T) {
	r, src := newTestRegion(t, 100, nil)
	r.FillCells(0)
	src.calls = nil

	r.RefreshCells()
	if len(src.calls) != 3 {
		t.Errorf("rebinds = %v, want 3", src.calls)
	}

	var recycled []int
	r.OnItemRecycled(func(it *Item) { recycled = append(recycled, it.Index()) })
	r.SetTotalCount(2)
	r.RefreshCells()
	if r.ItemEnd() != 2 {
		t.Errorf("ItemEnd = %d, want 2", r.ItemEnd())
	}
	if len(recycled) != 1 || recycled[0] != 2 {
		t.Errorf("recycled = %v, want [2]", recycled)
	}
	checkWindow(t, r)
}

func TestRefreshCellsShrinkRefillsView(t *testing.T) {
	tests := []struct {
		name     string
		movement MovementType
	}{
		{"elastic", MovementElastic},
		{"clamped", MovementClamped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRegion(t, 100, func(o *Options) { o.Movement = tt.movement })
			r.FillCells(50)
			r.SetTotalCount(52)
			r.RefreshCells()
			if r.ItemStart() != 50 || r.ItemEnd() != 52 {
				t.Fatalf("window = [%d, %d), want [50, 52)", r.ItemStart(), r.ItemEnd())
			}

			step(r, 300)
			lo, hi := r.contentSpan()
			if lo > 1e-3 || hi < testView-1e-3 {
				t.Errorf("content span = [%v, %v], want the %d view covered", lo, hi, testView)
			}
			if r.ItemStart() != 49 || r.ItemEnd() != 52 {
				t.Errorf("window = [%d, %d), want [49, 52)", r.ItemStart(), r.ItemEnd())
			}
			checkWindow(t, r)
		})
	}
}

func TestClearCells(t *testing.T) {
	r, _ := newTestRegion(t, 5, func(o *Options) { o.Template = retained.NewNode("cell", 400, testView/5) })
	r.FillCells(0)
	if n := len(r.ShowItems()); n != 5 {
		t.Fatalf("live items = %d, want 5", n)
	}
	if len(r.pools.Names()) == 0 {
		t.Fatal("no pool after fill")
	}

	recycled := 0
	r.OnItemRecycled(func(*Item) { recycled++ })
	r.ClearCells(true)
	if recycled != 5 {
		t.Errorf("recycled = %d, want 5", recycled)
	}
	if r.ItemStart() != 0 || r.ItemEnd() != 0 {
		t.Errorf("window = [%d, %d), want [0, 0)", r.ItemStart(), r.ItemEnd())
	}
	if n := len(r.ShowItems()); n != 0 {
		t.Errorf("live items = %d, want 0", n)
	}
	if names := r.pools.Names(); len(names) != 0 {
		t.Errorf("pools = %v, want none", names)
	}
}

func TestClearCellsKeepsPools(t *testing.T) {
	r, _ := newTestRegion(t, 5, nil)
	r.FillCells(0)
	r.ClearCells(false)
	if len(r.pools.Names()) != 1 {
		t.Errorf("pools = %v, want the item pool kept", r.pools.Names())
	}
	r.FillCells(0)
	checkWindow(t, r)
}

func TestSharedRegistry(t *testing.T) {
	shared := NewItemRegistry(nil, 0)
	t.Cleanup(shared.Close)
	mutate := func(o *Options) { o.Pools = shared }

	a, _ := newTestRegion(t, 10, mutate)
	b, _ := newTestRegion(t, 10, mutate)
	a.FillCells(0)
	b.FillCells(0)

	if names := shared.Names(); len(names) != 1 {
		t.Errorf("pools = %v, want one shared pool", names)
	}
	a.ClearCells(false)
	b.setContentPosition(-300, true)
	checkWindow(t, b)
}

func TestCallbackPanicIsolated(t *testing.T) {
	var buf bytes.Buffer
	src := &fillLog{panicAt: 1}
	r := newRegionWith(t, 10, src, func(o *Options) { o.Logger = bufferLogger(&buf) })
	r.FillCells(0)

	if r.ItemEnd() != 3 {
		t.Errorf("ItemEnd = %d, want 3", r.ItemEnd())
	}
	if !strings.Contains(buf.String(), "callback panicked") {
		t.Errorf("log = %q, want a panic entry", buf.String())
	}
	if !strings.Contains(buf.String(), `"index":1`) {
		t.Errorf("log = %q, want the failing index", buf.String())
	}
}

func TestTemplateProvider(t *testing.T) {
	catalog := retained.NewCatalog().
		Register("header", retained.NewNode("header", 400, 60))
	src := &headerSource{}
	r := newRegionWith(t, 10, src, func(o *Options) { o.Loader = catalog })
	r.FillCells(0)

	if got := r.liveItem(0).Height(); got != 60 {
		t.Errorf("item 0 height = %v, want header height 60", got)
	}
	if got := r.liveItem(1).Height(); got != testItem {
		t.Errorf("item 1 height = %v, want default %d", got, testItem)
	}
	if got := r.liveItem(0).PoolName(); got != "header" {
		t.Errorf("item 0 pool = %q, want header", got)
	}
}

type headerSource struct{}

func (headerSource) FillItemData(*Item, int) {}

func (headerSource) TemplateName(index int) string {
	if index == 0 {
		return "header"
	}
	return ""
}

func TestLoopWindow(t *testing.T) {
	r, _ := newTestRegion(t, 4, func(o *Options) { o.Loop = true })
	r.FillCells(0)
	r.setContentPosition(300, true)
	checkWindow(t, r)
	if r.ItemStart() >= 0 {
		t.Errorf("ItemStart = %d, want negative raw index", r.ItemStart())
	}
	for _, it := range r.ShowItems() {
		if b := r.BoundIndex(it.Index()); b < 0 || b >= 4 {
			t.Errorf("BoundIndex(%d) = %d, want in [0, 4)", it.Index(), b)
		}
	}
}

func TestBoundIndex(t *testing.T) {
	tests := []struct {
		index, count, want int
	}{
		{0, 5, 0},
		{4, 5, 4},
		{5, 5, 0},
		{12, 5, 2},
		{-1, 5, 4},
		{-5, 5, 0},
		{-6, 5, 4},
		{-7, 5, 3},
		{3, 0, -1},
	}
	for _, tt := range tests {
		if got := BoundIndex(tt.index, tt.count); got != tt.want {
			t.Errorf("BoundIndex(%d, %d) = %d, want %d", tt.index, tt.count, got, tt.want)
		}
	}
}

func TestItemRecycleDeactivates(t *testing.T) {
	r, _ := newTestRegion(t, 100, nil)
	r.FillCells(0)
	first := r.GetShowItem(0)
	r.setContentPosition(-1000, true)

	if first.Region() == r {
		// Respawned into the window under a new index.
		if got := r.liveItem(first.Index()); got != first {
			t.Errorf("respawned item %d is not live", first.Index())
		}
		return
	}
	if first.Region() != nil {
		t.Error("recycled item still reports a region")
	}
	if first.Node().Active() {
		t.Error("recycled item node still active")
	}
}
