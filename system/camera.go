package system

import (
	"math"
	"math/rand/v2"

	"github.com/jakecoffman/cp"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Camera follows the player inside the stage bounds. It only computes a
// view offset; drawing is left to the caller.
type Camera struct {
	PosX float64
	PosY float64

	screenW float64
	screenH float64
	// smoothing factor (0..1). higher -> faster follow.
	smooth float64
	bounds cp.BB

	shake  *gween.Tween
	shakeX float64
	shakeY float64
}

// NewCamera creates a camera for a screen of the given size.
func NewCamera(screenW, screenH int, bounds cp.BB) *Camera {
	return &Camera{
		screenW: float64(screenW),
		screenH: float64(screenH),
		smooth:  0.15,
		bounds:  bounds,
		PosX:    float64(screenW) / 2,
		PosY:    float64(screenH) / 2,
	}
}

// Update moves the camera toward the target and advances any shake.
func (c *Camera) Update(target cp.Vector) {
	c.PosX += (target.X - c.PosX) * c.smooth
	c.PosY += (target.Y - c.PosY) * c.smooth
	c.clamp()

	c.shakeX, c.shakeY = 0, 0
	if c.shake == nil {
		return
	}
	mag, done := c.shake.Update(1)
	if done {
		c.shake = nil
		return
	}
	angle := rand.Float64() * 2 * math.Pi
	c.shakeX = math.Cos(angle) * float64(mag)
	c.shakeY = math.Sin(angle) * float64(mag)
}

// SnapTo places the camera without smoothing, e.g. after a stage load.
func (c *Camera) SnapTo(target cp.Vector) {
	c.PosX, c.PosY = target.X, target.Y
	c.clamp()
}

// StartShake shakes the view with the given magnitude decaying over frames.
func (c *Camera) StartShake(magnitude float64, frames int) {
	if c == nil || frames <= 0 {
		return
	}
	c.shake = gween.New(float32(magnitude), 0, float32(frames), ease.OutQuad)
}

// Shaking reports whether a shake is in progress.
func (c *Camera) Shaking() bool { return c.shake != nil }

// ViewTopLeft returns the world-space top-left of the view, shake included.
func (c *Camera) ViewTopLeft() cp.Vector {
	return cp.Vector{
		X: math.Round(c.PosX - c.screenW/2 + c.shakeX),
		Y: math.Round(c.PosY - c.screenH/2 + c.shakeY),
	}
}

func (c *Camera) clamp() {
	halfW, halfH := c.screenW/2, c.screenH/2
	if c.bounds.R-c.bounds.L < c.screenW {
		c.PosX = (c.bounds.L + c.bounds.R) / 2
	} else {
		c.PosX = clampf(c.PosX, c.bounds.L+halfW, c.bounds.R-halfW)
	}
	if c.bounds.T-c.bounds.B < c.screenH {
		c.PosY = (c.bounds.B + c.bounds.T) / 2
	} else {
		c.PosY = clampf(c.PosY, c.bounds.B+halfH, c.bounds.T-halfH)
	}
}
