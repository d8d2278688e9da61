package scripting

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/triggers/interaction"
	"github.com/milk9111/triggers/prefabs"
	"github.com/sirupsen/logrus"
)

// Action is something a script asked the game to do.
type Action struct {
	Name    string
	Arg     string
	Trigger string
	Event   string
}

// Named is implemented by probe owners that want scripts to see a name.
type Named interface {
	Name() string
}

const dispatchScript = `
on_event(__engine, __state, __event)
`

// Listener runs a tengo script for every event routed to it. The script
// defines on_event(engine, state, ev); state persists between events and
// engine.emit(name, arg) queues an Action for the game.
type Listener struct {
	path     string
	compiled *tengo.Compiled
	state    *tengo.Map
	actions  []Action
	log      logrus.FieldLogger

	current Action
}

// Load compiles a script from the prefabs scripts directory.
func Load(path string, log logrus.FieldLogger) (*Listener, error) {
	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, fmt.Errorf("scripting: load %s: %w", path, err)
	}
	return New(path, src, log)
}

// New compiles src. The path is only used in log fields and errors.
func New(path string, src []byte, log logrus.FieldLogger) (*Listener, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	script := tengo.NewScript(append(append([]byte(nil), src...), dispatchScript...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	_ = script.Add("__event", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("scripting: compile %s: %w", path, err)
	}
	if !compiled.IsDefined("on_event") {
		return nil, fmt.Errorf("scripting: %s does not define on_event", path)
	}
	return &Listener{
		path:     path,
		compiled: compiled,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
		log:      log.WithField("script", path),
	}, nil
}

func (l *Listener) Path() string { return l.path }

// OnInteraction runs the script. Script errors are logged, never raised,
// since a broken trigger script must not stop the frame.
func (l *Listener) OnInteraction(event string, r *interaction.Region, p *interaction.Probe) {
	if l == nil || l.compiled == nil || r == nil || p == nil {
		return
	}
	l.current = Action{Trigger: r.Name(), Event: event}

	pos := p.Owner().Position()
	ev := map[string]tengo.Object{
		"name":   &tengo.String{Value: event},
		"region": &tengo.String{Value: r.Name()},
		"owner":  &tengo.String{Value: ownerName(p.Owner())},
		"x":      &tengo.Float{Value: pos.X},
		"y":      &tengo.Float{Value: pos.Y},
	}
	if err := l.run(&tengo.ImmutableMap{Value: ev}); err != nil {
		l.log.WithError(err).WithField("event", event).Warn("trigger script failed")
	}
}

// Drain returns the actions queued since the last call.
func (l *Listener) Drain() []Action {
	out := l.actions
	l.actions = nil
	return out
}

// State returns a script state value, for tests and debug overlays.
func (l *Listener) State(key string) (any, bool) {
	obj, ok := l.state.Value[key]
	if !ok {
		return nil, false
	}
	return tengo.ToInterface(obj), true
}

func (l *Listener) run(ev *tengo.ImmutableMap) error {
	if err := l.compiled.Set("__engine", l.engine()); err != nil {
		return err
	}
	if err := l.compiled.Set("__state", l.state); err != nil {
		return err
	}
	if err := l.compiled.Set("__event", ev); err != nil {
		return err
	}
	return l.compiled.Run()
}

func (l *Listener) engine() *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["emit"] = &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" {
			return tengo.FalseValue, nil
		}
		a := l.current
		a.Name = name
		if len(args) > 1 {
			a.Arg = objectAsString(args[1])
		}
		l.actions = append(l.actions, a)
		return tengo.TrueValue, nil
	}}

	values["log"] = &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		l.log.Info(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func objectAsString(o tengo.Object) string {
	if s, ok := tengo.ToString(o); ok {
		return s
	}
	return ""
}

func ownerName(p interaction.Positioned) string {
	if n, ok := p.(Named); ok {
		return n.Name()
	}
	return ""
}
