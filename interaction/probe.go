package interaction

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/common"
)

// Probe is a hit shape attached to an entity: either one rect or a union
// of circles, both in the owner's local space.
type Probe struct {
	Flushable

	owner   Positioned
	target  Listener
	rect    cp.BB
	circles []common.Circle
	isRect  bool

	// bounds is fixed at construction.
	bounds cp.BB

	blink bool
}

// NewRectProbe builds a rect probe. Owner and target are required.
func NewRectProbe(owner Positioned, target Listener, rect cp.BB) *Probe {
	checkProbe(owner, target)
	checkRect("probe", rect)
	return &Probe{owner: owner, target: target, rect: rect, isRect: true, bounds: rect}
}

// NewCircleProbe builds a probe from a non-empty circle list. The slice is
// kept as is, so callers may move circles later, but the local bounds are
// computed here once and never refreshed.
func NewCircleProbe(owner Positioned, target Listener, circles []common.Circle) *Probe {
	checkProbe(owner, target)
	if len(circles) == 0 {
		panic("interaction: circle probe requires at least one circle")
	}
	for i, c := range circles {
		if c.Radius < 0 {
			panic(fmt.Sprintf("interaction: circle %d has negative radius %v", i, c.Radius))
		}
	}
	return &Probe{owner: owner, target: target, circles: circles, bounds: common.CircleBounds(circles)}
}

func checkProbe(owner Positioned, target Listener) {
	if owner == nil {
		panic("interaction: probe requires an owner")
	}
	if target == nil {
		panic("interaction: probe requires a target listener")
	}
}

// Owner returns the entity the probe is attached to.
func (p *Probe) Owner() Positioned {
	if p == nil {
		return nil
	}
	return p.owner
}

func (p *Probe) Target() Listener         { return p.target }
func (p *Probe) IsRect() bool             { return p.isRect }
func (p *Probe) Rect() cp.BB              { return p.rect }
func (p *Probe) Circles() []common.Circle { return p.circles }
func (p *Probe) Bounds() cp.BB            { return p.bounds }

// WorldBounds is the local bounds translated by the owner's position.
func (p *Probe) WorldBounds() cp.BB {
	return common.OffsetRect(p.bounds, p.owner.Position())
}
