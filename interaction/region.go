package interaction

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/common"
)

// RegionConfig describes a region at construction time.
type RegionConfig struct {
	Name string
	// Rect is in the parent's local space, or world space without a parent.
	Rect   cp.BB
	Parent Positioned
	// Target, when set, receives every event for this region. Otherwise
	// events go to the listener of the probe that entered or exited.
	Target     Listener
	EnterEvent string
	ExitEvent  string
}

// Region is a named axis-aligned interaction area.
type Region struct {
	Flushable

	name       string
	rect       cp.BB
	parent     Positioned
	target     Listener
	enterEvent string
	exitEvent  string

	blink bool
}

// NewRegion builds a region. It panics on a missing name, a missing
// event pair or an inverted rect, since the router cannot guess what a
// malformed trigger was meant to do.
func NewRegion(cfg RegionConfig) *Region {
	if cfg.Name == "" {
		panic("interaction: region requires a name")
	}
	if cfg.EnterEvent == "" && cfg.ExitEvent == "" {
		panic(fmt.Sprintf("interaction: region %q declares neither an enter nor an exit event", cfg.Name))
	}
	checkRect(cfg.Name, cfg.Rect)
	return &Region{
		name:       cfg.Name,
		rect:       cfg.Rect,
		parent:     cfg.Parent,
		target:     cfg.Target,
		enterEvent: cfg.EnterEvent,
		exitEvent:  cfg.ExitEvent,
	}
}

func checkRect(name string, r cp.BB) {
	if r.L > r.R || r.B > r.T {
		panic(fmt.Sprintf("interaction: %q has an inverted rect %v", name, r))
	}
}

func (r *Region) Name() string       { return r.name }
func (r *Region) Rect() cp.BB        { return r.rect }
func (r *Region) Parent() Positioned { return r.parent }
func (r *Region) Target() Listener   { return r.target }
func (r *Region) EnterEvent() string { return r.enterEvent }
func (r *Region) ExitEvent() string  { return r.exitEvent }

// UpdateRect replaces the local rect wholesale.
func (r *Region) UpdateRect(rect cp.BB) {
	checkRect(r.name, rect)
	r.rect = rect
}

// SetParent reattaches the region. A nil parent orphans it, after which
// its world rect is its local rect.
func (r *Region) SetParent(p Positioned) {
	r.parent = p
}

// WorldRect mirrors the local rect when the parent has turned, then
// translates it by the parent's position.
func (r *Region) WorldRect() cp.BB {
	if r.parent == nil {
		return r.rect
	}
	local := r.rect
	if r.parent.HasTurned() {
		local = common.MirrorRectX(local)
	}
	return common.OffsetRect(local, r.parent.Position())
}

// Overlaps tests the probe, placed at probePos, against the region's
// world rect. A circle probe overlaps if any of its circles does.
func (r *Region) Overlaps(probePos cp.Vector, p *Probe) bool {
	if p == nil {
		return false
	}
	world := r.WorldRect()
	if p.IsRect() {
		return common.RectsOverlap(world, common.OffsetRect(p.rect, probePos))
	}
	for _, c := range p.circles {
		c.Center = c.Center.Add(probePos)
		if common.CircleOverlapsRect(c, world) {
			return true
		}
	}
	return false
}

func (r *Region) String() string {
	return r.name
}
