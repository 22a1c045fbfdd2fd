package retained

import "sync"

// ============================================================================
// Event Types
// ============================================================================

// EventType identifies the kind of event.
type EventType uint8

const (
	// Mouse events
	EventMouseDown EventType = iota + 1
	EventMouseUp
	EventMouseMove
	EventMouseWheel

	// Drag events
	EventDragStart
	EventDragMove
	EventDragEnd
)

// String returns a readable event name.
func (t EventType) String() string {
	switch t {
	case EventMouseDown:
		return "mousedown"
	case EventMouseUp:
		return "mouseup"
	case EventMouseMove:
		return "mousemove"
	case EventMouseWheel:
		return "wheel"
	case EventDragStart:
		return "dragstart"
	case EventDragMove:
		return "drag"
	case EventDragEnd:
		return "dragend"
	}
	return "unknown"
}

// MouseButton identifies which mouse button was pressed.
type MouseButton uint8

const (
	MouseButtonNone MouseButton = iota
	MouseButtonLeft
	MouseButtonRight
	MouseButtonMiddle
)

// Modifier keys
type Modifiers uint8

const (
	ModShift Modifiers = 1 << iota
	ModCtrl
	ModAlt
	ModSuper // Cmd on Mac, Win on Windows
)

func (m Modifiers) Shift() bool { return m&ModShift != 0 }
func (m Modifiers) Ctrl() bool  { return m&ModCtrl != 0 }
func (m Modifiers) Alt() bool   { return m&ModAlt != 0 }
func (m Modifiers) Super() bool { return m&ModSuper != 0 }

// ============================================================================
// Pointer Events
// ============================================================================

// PointerEvent carries pointer input in view-local coordinates.
type PointerEvent struct {
	eventType EventType
	handled   bool

	Position  Vec2 // Pointer position
	Delta     Vec2 // Movement since the previous event, or wheel delta
	Button    MouseButton
	Modifiers Modifiers
}

// Type returns the event type.
func (e *PointerEvent) Type() EventType { return e.eventType }

// SetHandled marks the event as consumed.
func (e *PointerEvent) SetHandled() { e.handled = true }

// Handled reports whether a receiver consumed the event.
func (e *PointerEvent) Handled() bool { return e.handled }

// NewPointerEvent creates a pointer event. Uses object pool for high-frequency events.
func NewPointerEvent(eventType EventType, pos Vec2, button MouseButton) *PointerEvent {
	e := pointerEventPool.Get().(*PointerEvent)
	*e = PointerEvent{
		eventType: eventType,
		Position:  pos,
		Button:    button,
	}
	return e
}

// NewWheelEvent creates a wheel event with the given scroll delta.
func NewWheelEvent(pos, delta Vec2) *PointerEvent {
	e := NewPointerEvent(EventMouseWheel, pos, MouseButtonNone)
	e.Delta = delta
	return e
}

// Release returns the event to the pool. Don't use after calling.
func (e *PointerEvent) Release() {
	pointerEventPool.Put(e)
}

var pointerEventPool = sync.Pool{
	New: func() interface{} {
		return &PointerEvent{}
	},
}

// ============================================================================
// Drag Tracking
// ============================================================================

// DragThreshold is the distance the pointer must travel with a button held
// before a press turns into a drag.
const DragThreshold float32 = 4

// DragReceiver consumes the drag-start / drag / drag-end / wheel stream.
type DragReceiver interface {
	HandleDragStart(e *PointerEvent)
	HandleDrag(e *PointerEvent)
	HandleDragEnd(e *PointerEvent)
	HandleScroll(e *PointerEvent)
}

// DragTracker converts raw mouse down/move/up/wheel input into drag events
// for a receiver.
type DragTracker struct {
	receiver DragReceiver

	pressed  bool
	dragging bool
	button   MouseButton
	origin   Vec2
	last     Vec2
}

// NewDragTracker creates a tracker feeding receiver.
func NewDragTracker(receiver DragReceiver) *DragTracker {
	return &DragTracker{receiver: receiver}
}

// Dragging reports whether a drag is in progress.
func (d *DragTracker) Dragging() bool { return d.dragging }

// Dispatch routes a raw event. The event is not released.
func (d *DragTracker) Dispatch(e *PointerEvent) {
	switch e.eventType {
	case EventMouseDown:
		if d.pressed {
			return
		}
		d.pressed = true
		d.button = e.Button
		d.origin = e.Position
		d.last = e.Position

	case EventMouseMove:
		if !d.pressed {
			return
		}
		if !d.dragging {
			if e.Position.Sub(d.origin).Len() < DragThreshold {
				return
			}
			d.dragging = true
			d.emit(EventDragStart, d.origin, Vec2{})
		}
		delta := e.Position.Sub(d.last)
		d.last = e.Position
		d.emit(EventDragMove, e.Position, delta)

	case EventMouseUp:
		if !d.pressed || e.Button != d.button {
			return
		}
		if d.dragging {
			d.emit(EventDragEnd, e.Position, e.Position.Sub(d.last))
		}
		d.pressed = false
		d.dragging = false

	case EventMouseWheel:
		d.receiver.HandleScroll(e)
	}
}

func (d *DragTracker) emit(t EventType, pos, delta Vec2) {
	e := NewPointerEvent(t, pos, d.button)
	e.Delta = delta
	switch t {
	case EventDragStart:
		d.receiver.HandleDragStart(e)
	case EventDragMove:
		d.receiver.HandleDrag(e)
	case EventDragEnd:
		d.receiver.HandleDragEnd(e)
	}
	e.Release()
}
