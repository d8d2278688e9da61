package debugdraw

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/common"
	"github.com/milk9111/triggers/interaction"
	"golang.org/x/image/colornames"
)

var (
	regionColor   color.Color = colornames.Limegreen
	occupiedColor color.Color = colornames.Orangered
	flushedColor  color.Color = colornames.Gray
	probeColor    color.Color = colornames.Deepskyblue
)

// Options tweak what DrawRouter renders.
type Options struct {
	Labels bool
}

// DrawRouter outlines every live region and probe, shifted by the camera.
// Occupied regions are highlighted and flushed ones greyed out.
func DrawRouter(screen *ebiten.Image, rt *interaction.Router, camera cp.Vector, opts Options) {
	if screen == nil || rt == nil {
		return
	}
	for _, r := range rt.Regions() {
		clr := regionColor
		switch {
		case r.IsFlushed():
			clr = flushedColor
		case !rt.IsEmpty(r):
			clr = occupiedColor
		}
		world := r.WorldRect()
		strokeRect(screen, world, camera, clr)
		if opts.Labels {
			ebitenutil.DebugPrintAt(screen, r.Name(), int(world.L-camera.X), int(world.B-camera.Y)-14)
		}
	}
	for _, p := range rt.Probes() {
		drawProbe(screen, p, camera)
	}
}

func drawProbe(screen *ebiten.Image, p *interaction.Probe, camera cp.Vector) {
	pos := p.Owner().Position()
	if p.IsRect() {
		strokeRect(screen, common.OffsetRect(p.Rect(), pos), camera, probeColor)
		return
	}
	for _, c := range p.Circles() {
		x := c.Center.X + pos.X - camera.X
		y := c.Center.Y + pos.Y - camera.Y
		vector.StrokeCircle(screen, float32(x), float32(y), float32(c.Radius), 1, probeColor, true)
	}
}

func strokeRect(screen *ebiten.Image, r cp.BB, camera cp.Vector, clr color.Color) {
	vector.StrokeRect(screen,
		float32(r.L-camera.X), float32(r.B-camera.Y),
		float32(common.RectWidth(r)), float32(common.RectHeight(r)),
		1, clr, false)
}
