package common

import "github.com/jakecoffman/cp"

// Rects are cp.BB values read as x0=L, y0=B, x1=R, y1=T. The game uses
// screen coordinates, so B is the top edge on screen, but nothing here
// depends on that.

// Circle is a circle in some entity's local space.
type Circle struct {
	Center cp.Vector
	Radius float64
}

func RectWidth(r cp.BB) float64  { return r.R - r.L }
func RectHeight(r cp.BB) float64 { return r.T - r.B }

// OffsetRect translates r by v.
func OffsetRect(r cp.BB, v cp.Vector) cp.BB {
	return cp.BB{L: r.L + v.X, B: r.B + v.Y, R: r.R + v.X, T: r.T + v.Y}
}

// MirrorRectX reflects r across the local vertical axis x=0.
func MirrorRectX(r cp.BB) cp.BB {
	return cp.BB{L: -r.R, B: r.B, R: -r.L, T: r.T}
}

// RectsOverlap is a closed interval test: touching edges overlap.
func RectsOverlap(a, b cp.BB) bool {
	return !(a.L > b.R || a.R < b.L || a.B > b.T || a.T < b.B)
}

// RectContainsPoint is inclusive on every edge.
func RectContainsPoint(r cp.BB, p cp.Vector) bool {
	return p.X >= r.L && p.X <= r.R && p.Y >= r.B && p.Y <= r.T
}

// CircleOverlapsRect reports whether c overlaps r, treating the circle
// as the rect grown by the radius on every side.
func CircleOverlapsRect(c Circle, r cp.BB) bool {
	grown := cp.BB{L: r.L - c.Radius, B: r.B - c.Radius, R: r.R + c.Radius, T: r.T + c.Radius}
	return RectContainsPoint(grown, c.Center)
}

// CircleBounds returns the smallest rect containing every circle.
func CircleBounds(circles []Circle) cp.BB {
	if len(circles) == 0 {
		return cp.BB{}
	}
	c := circles[0]
	out := cp.BB{L: c.Center.X - c.Radius, B: c.Center.Y - c.Radius, R: c.Center.X + c.Radius, T: c.Center.Y + c.Radius}
	for _, c := range circles[1:] {
		out.L = min(out.L, c.Center.X-c.Radius)
		out.B = min(out.B, c.Center.Y-c.Radius)
		out.R = max(out.R, c.Center.X+c.Radius)
		out.T = max(out.T, c.Center.Y+c.Radius)
	}
	return out
}
