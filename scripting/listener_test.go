package scripting

import (
	"io"
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/interaction"
	"github.com/sirupsen/logrus"
)

type actor struct {
	name string
	pos  cp.Vector
}

func (a *actor) Position() cp.Vector { return a.pos }
func (a *actor) HasTurned() bool     { return false }
func (a *actor) Name() string        { return a.name }

func quiet() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPlateScriptCountsOccupants(t *testing.T) {
	l, err := Load("plate.tengo", quiet())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	rt := interaction.NewRouter(interaction.RouterConfig{Logger: quiet()})
	plate := interaction.NewRegion(interaction.RegionConfig{
		Name:       "plate",
		Rect:       cp.BB{L: 0, B: 0, R: 50, T: 10},
		Target:     l,
		EnterEvent: "press",
		ExitEvent:  "release",
	})
	rt.AddRegion(plate)

	ignore := interaction.ListenerFunc(func(string, *interaction.Region, *interaction.Probe) {})
	a := &actor{name: "player", pos: cp.Vector{X: 10, Y: 5}}
	b := &actor{name: "crate", pos: cp.Vector{X: 30, Y: 5}}
	rt.AddProbe(interaction.NewRectProbe(a, ignore, cp.BB{L: -1, B: -1, R: 1, T: 1}))
	rt.AddProbe(interaction.NewRectProbe(b, ignore, cp.BB{L: -1, B: -1, R: 1, T: 1}))

	bounds := cp.BB{L: 0, B: 0, R: 400, T: 400}
	rt.Update(bounds)
	actions := l.Drain()
	if len(actions) != 1 || actions[0].Name != "open_gate" || actions[0].Arg != "plate" || actions[0].Event != "press" {
		t.Fatalf("actions after two presses = %+v", actions)
	}
	if v, ok := l.State("count"); !ok || v != int64(2) {
		t.Fatalf("count = %v %v", v, ok)
	}

	a.pos.X = 300
	rt.Update(bounds)
	if actions := l.Drain(); len(actions) != 0 {
		t.Fatalf("gate should stay open with one occupant, got %+v", actions)
	}

	b.pos.X = 300
	rt.Update(bounds)
	actions = l.Drain()
	if len(actions) != 1 || actions[0].Name != "close_gate" || actions[0].Trigger != "plate" {
		t.Fatalf("actions after last release = %+v", actions)
	}
}

func TestDoorScriptChecksOwner(t *testing.T) {
	l, err := Load("door.tengo", quiet())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	door := interaction.NewRegion(interaction.RegionConfig{Name: "exit_door", Rect: cp.BB{R: 10, T: 10}, Target: l, EnterEvent: "exit_stage"})
	ignore := interaction.ListenerFunc(func(string, *interaction.Region, *interaction.Probe) {})

	cases := []struct {
		owner string
		want  int
	}{
		{"slime", 0},
		{"player", 1},
	}
	for _, c := range cases {
		t.Run(c.owner, func(t *testing.T) {
			p := interaction.NewRectProbe(&actor{name: c.owner}, ignore, cp.BB{R: 1, T: 1})
			l.OnInteraction("exit_stage", door, p)
			if got := len(l.Drain()); got != c.want {
				t.Fatalf("actions = %d, want %d", got, c.want)
			}
		})
	}
}

func TestScriptErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"syntax", "on_event := func(engine, state, ev) {"},
		{"missing_on_event", "x := 1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := New(c.name, []byte(c.src), quiet()); err == nil {
				t.Fatalf("expected compile error")
			}
		})
	}
	if _, err := Load("missing.tengo", quiet()); err == nil {
		t.Fatalf("expected load error")
	}
}

func TestRuntimeErrorIsContained(t *testing.T) {
	l, err := New("bad", []byte(`on_event := func(engine, state, ev) { ev.name() }`), quiet())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := interaction.NewRegion(interaction.RegionConfig{Name: "r", Rect: cp.BB{R: 1, T: 1}, Target: l, EnterEvent: "in"})
	p := interaction.NewRectProbe(&actor{}, l, cp.BB{R: 1, T: 1})
	l.OnInteraction("in", r, p)
	if got := l.Drain(); len(got) != 0 {
		t.Fatalf("failed run should not emit, got %+v", got)
	}
}
