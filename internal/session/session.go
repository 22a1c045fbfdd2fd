// Package session assembles a scroll region, its frame loop and its input
// routing from a listview.toml configuration. Both the headless CLI and the
// desktop demo drive a Session.
package session

import (
	"fmt"

	"github.com/agiangrant/listview/config"
	"github.com/agiangrant/listview/internal/logging"
	"github.com/agiangrant/listview/retained"
	"github.com/agiangrant/listview/scroll"
)

const rowTemplate = "row"

// Row is the record shown by one list item.
type Row struct {
	Index int
	Label string
}

// Rows generates n labelled records.
func Rows(n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{Index: i, Label: fmt.Sprintf("Item %d", i)}
	}
	return rows
}

// rowBinder stores the bound Row as the node payload for renderers.
type rowBinder struct {
	item *scroll.Item
}

func (b *rowBinder) Initialize(item *scroll.Item) { b.item = item }

func (b *rowBinder) Bind(row Row, _ int) { b.item.Node().SetData(row) }

func (b *rowBinder) Reset() { b.item.Node().SetData(nil) }

func (b *rowBinder) Release() { b.item = nil }

func newRowBinder() scroll.Binder[Row] { return &rowBinder{} }

// Session owns one region and everything that drives it.
type Session struct {
	Config config.Config
	Loop   *retained.Loop
	Region *scroll.Region
	List   *scroll.Controller[Row]
	Input  *retained.DragTracker
	Bar    *scroll.Bar

	log *logging.Logger
}

// New builds a session from cfg and fills the window at index 0.
func New(cfg config.Config, log *logging.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	size := cfg.ItemSize()
	if opts.CellCount > 1 {
		size = cfg.CellSize()
	}
	opts.Template = nil
	opts.TemplateName = rowTemplate
	opts.Loader = retained.NewCatalog().Register(rowTemplate, retained.NewNode(rowTemplate, size.X, size.Y))
	if log != nil {
		opts.Logger = log.Zerolog()
	}

	s := &Session{
		Config: cfg,
		Loop:   retained.NewLoop(retained.DefaultLoopConfig()),
		List:   &scroll.Controller[Row]{},
		Bar:    &scroll.Bar{},
		log:    log,
	}
	view := retained.NewNode("view", cfg.View.Width, cfg.View.Height)
	content := retained.NewNode("content", 0, 0)
	s.Region, err = scroll.New(view, content, s.List, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create region: %w", err)
	}
	s.Input = retained.NewDragTracker(s.Region)
	s.Loop.Add(s.Region)

	s.List.Initialize(s.Region, newRowBinder, Rows(cfg.List.TotalCount))
	s.Region.SetScrollbar(s.Bar)
	if log != nil {
		log.Debug().
			Int("total", s.Region.TotalCount()).
			Int("item_start", s.Region.ItemStart()).
			Int("item_end", s.Region.ItemEnd()).
			Msg("session ready")
	}
	return s, nil
}

// Step advances the loop by frames frames of dt seconds each.
func (s *Session) Step(frames int, dt float32) {
	for i := 0; i < frames; i++ {
		s.Loop.Step(dt)
	}
}

// Settle steps until the region is at rest or limit frames have run. It
// returns the number of frames stepped.
func (s *Session) Settle(limit int, dt float32) int {
	for i := 0; i < limit; i++ {
		if s.Idle() {
			return i
		}
		s.Loop.Step(dt)
	}
	return limit
}

// Idle reports whether nothing is moving the content.
func (s *Session) Idle() bool {
	r := s.Region
	if r.Dragging() || r.Velocity() != 0 || r.Snap().Moving {
		return false
	}
	switch r.State() {
	case scroll.StateStop, scroll.StatePause, scroll.StateMoveComplete:
	default:
		return false
	}
	return r.CalculateOffset(0) == 0 || r.Options().Movement == scroll.MovementUnrestricted
}

// Press, Move and Release feed raw pointer input through the drag tracker.
func (s *Session) Press(at retained.Vec2) {
	s.dispatch(retained.NewPointerEvent(retained.EventMouseDown, at, retained.MouseButtonLeft))
}

func (s *Session) Move(to retained.Vec2) {
	s.dispatch(retained.NewPointerEvent(retained.EventMouseMove, to, retained.MouseButtonLeft))
}

func (s *Session) Release(at retained.Vec2) {
	s.dispatch(retained.NewPointerEvent(retained.EventMouseUp, at, retained.MouseButtonLeft))
}

// Wheel feeds a wheel notch at the view origin.
func (s *Session) Wheel(delta retained.Vec2) {
	s.dispatch(retained.NewWheelEvent(retained.Vec2{}, delta))
}

func (s *Session) dispatch(e *retained.PointerEvent) {
	s.Input.Dispatch(e)
	e.Release()
}

// Fling drags from one point to another over frames frames and lets go,
// leaving the release velocity to inertia.
func (s *Session) Fling(from, to retained.Vec2, frames int, dt float32) {
	frames = max(1, frames)
	s.Press(from)
	step := to.Sub(from).Scale(1 / float32(frames))
	at := from
	for i := 0; i < frames; i++ {
		at = at.Add(step)
		s.Move(at)
		s.Loop.Step(dt)
	}
	s.Release(to)
}

// Close tears the region down.
func (s *Session) Close() {
	s.List.Release()
	s.Region.Close()
}

// Snapshot captures the observable region state.
type Snapshot struct {
	Frame      uint64
	Position   float32
	Velocity   float32
	State      scroll.MoveState
	ItemStart  int
	ItemEnd    int
	Normalized float32
	Nearest    int
	BarValue   float32
	BarVisible bool
}

// Snapshot returns the current state.
func (s *Session) Snapshot() Snapshot {
	r := s.Region
	return Snapshot{
		Frame:      s.Loop.Stats().FrameCount,
		Position:   r.Position(),
		Velocity:   r.Velocity(),
		State:      r.State(),
		ItemStart:  r.ItemStart(),
		ItemEnd:    r.ItemEnd(),
		Normalized: r.NormalizedPosition(),
		Nearest:    r.SnapNearestIndex(),
		BarValue:   s.Bar.Value,
		BarVisible: s.Bar.Visible,
	}
}

func (p Snapshot) String() string {
	return fmt.Sprintf("frame=%d pos=%.1f vel=%.1f state=%s window=[%d,%d) np=%.3f",
		p.Frame, p.Position, p.Velocity, p.State, p.ItemStart, p.ItemEnd, p.Normalized)
}
