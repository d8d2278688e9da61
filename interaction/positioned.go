package interaction

import "github.com/jakecoffman/cp"

// Positioned is anything regions and probes can be attached to.
type Positioned interface {
	Position() cp.Vector
	HasTurned() bool
}

// Listener receives enter/exit events. The event name is whatever the
// region declared; the router never interprets it.
type Listener interface {
	OnInteraction(event string, r *Region, p *Probe)
}

// ListenerFunc adapts a plain function to Listener.
type ListenerFunc func(event string, r *Region, p *Probe)

func (f ListenerFunc) OnInteraction(event string, r *Region, p *Probe) {
	f(event, r, p)
}

// Owned is implemented by values that wrap a Positioned owner.
type Owned interface {
	Owner() Positioned
}

// Anchor is a fixed position, used for regions and probes that belong to
// static stage geometry rather than a moving entity.
type Anchor struct {
	X, Y   float64
	Turned bool
}

func (a *Anchor) Position() cp.Vector { return cp.Vector{X: a.X, Y: a.Y} }
func (a *Anchor) HasTurned() bool     { return a.Turned }
