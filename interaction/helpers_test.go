package interaction

import (
	"io"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
)

type body struct {
	pos    cp.Vector
	turned bool
}

func newBody(x, y float64) *body {
	return &body{pos: cp.Vector{X: x, Y: y}}
}

func (b *body) Position() cp.Vector { return b.pos }
func (b *body) HasTurned() bool     { return b.turned }

type call struct {
	event  string
	region *Region
	probe  *Probe
}

type recorder struct {
	calls []call
	on    func(event string, r *Region, p *Probe)
}

func (rec *recorder) OnInteraction(event string, r *Region, p *Probe) {
	rec.calls = append(rec.calls, call{event: event, region: r, probe: p})
	if rec.on != nil {
		rec.on(event, r, p)
	}
}

func (rec *recorder) take() []call {
	out := rec.calls
	rec.calls = nil
	return out
}

func (rec *recorder) count(event string) int {
	n := 0
	for _, c := range rec.calls {
		if c.event == event {
			n++
		}
	}
	return n
}

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestRouter() *Router {
	return NewRouter(RouterConfig{Logger: quietLogger()})
}

func rect(x0, y0, x1, y1 float64) cp.BB {
	return cp.BB{L: x0, B: y0, R: x1, T: y1}
}

var stage = rect(0, 0, 1200, 1200)
