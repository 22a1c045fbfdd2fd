package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/agiangrant/listview/internal/session"
	"github.com/agiangrant/listview/retained"
	"github.com/agiangrant/listview/scroll"
)

const (
	statusHeight = 20
	barWidth     = 6
	rowInset     = 2
)

var (
	colorBackground = color.RGBA{0x18, 0x18, 0x1c, 0xff}
	colorRowEven    = color.RGBA{0x2a, 0x2d, 0x36, 0xff}
	colorRowOdd     = color.RGBA{0x33, 0x37, 0x42, 0xff}
	colorBar        = color.RGBA{0x9a, 0xa0, 0xb0, 0xc0}
)

// game adapts a session to ebiten. Mouse input runs through the session's
// drag tracker, the arrow keys page when snapping is enabled, and the loop advances one
// step per tick.
type game struct {
	s       *session.Session
	pressed bool
}

func newGame(s *session.Session) *game {
	return &game{s: s}
}

func (g *game) Update() error {
	x, y := ebiten.CursorPosition()
	at := retained.Vec2{X: float32(x), Y: float32(y)}

	switch {
	case inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft):
		g.pressed = true
		g.s.Press(at)
	case inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft):
		g.pressed = false
		g.s.Release(at)
	case g.pressed:
		g.s.Move(at)
	}
	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		g.s.Wheel(retained.Vec2{X: float32(wx), Y: float32(wy)})
	}

	r := g.s.Region
	snap := r.Options().EnableSnap
	switch {
	case snap && (inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight)):
		r.ScrollGrid(true, false)
	case snap && (inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft)):
		r.ScrollGrid(false, false)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		r.ScrollToView(0, true, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		r.ScrollToView(r.TotalCount()-1, true, 0)
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		r.StopMovement(0, false)
	}

	g.s.Loop.Step(1 / float32(ebiten.TPS()))
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	r := g.s.Region
	view := r.View()
	for _, it := range r.ShowItems() {
		g.drawItem(screen, view, it)
	}
	g.drawBar(screen, r)

	p := g.s.Snapshot()
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("[%d,%d) of %d  %s  np=%.2f", p.ItemStart, p.ItemEnd, r.TotalCount(), p.State, p.Normalized),
		4, int(view.PreferredSize().Y)+2)
}

func (g *game) drawItem(screen *ebiten.Image, view *retained.Node, it *scroll.Item) {
	pos := it.Node().WorldPosition().Sub(view.WorldPosition())
	size := it.Size()
	vs := view.PreferredSize()
	if pos.X+size.X < 0 || pos.Y+size.Y < 0 || pos.X > vs.X || pos.Y > vs.Y {
		return
	}

	fill := colorRowEven
	if scroll.BoundIndex(it.Index(), max(1, g.s.Region.TotalCount()))%2 == 1 {
		fill = colorRowOdd
	}
	vector.DrawFilledRect(screen, pos.X+rowInset, pos.Y+rowInset,
		size.X-2*rowInset, size.Y-2*rowInset, fill, false)

	if row, ok := it.Node().Data().(session.Row); ok {
		ebitenutil.DebugPrintAt(screen, row.Label, int(pos.X)+8, int(pos.Y)+8)
	}
}

func (g *game) drawBar(screen *ebiten.Image, r *scroll.Region) {
	bar := g.s.Bar
	if !bar.Visible {
		return
	}
	vs := r.View().PreferredSize()
	if r.Direction().Horizontal() {
		w := vs.X * bar.Size
		x := (vs.X - w) * bar.Value
		if r.Direction().Reverse() {
			x = vs.X - w - x
		}
		vector.DrawFilledRect(screen, x, vs.Y-barWidth, w, barWidth, colorBar, false)
		return
	}
	h := vs.Y * bar.Size
	y := (vs.Y - h) * bar.Value
	if r.Direction().Reverse() {
		y = vs.Y - h - y
	}
	vector.DrawFilledRect(screen, vs.X-barWidth, y, barWidth, h, colorBar, false)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	vs := g.s.Region.View().PreferredSize()
	return int(vs.X), int(vs.Y) + statusHeight
}
