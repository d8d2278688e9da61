package system

import (
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/component"
	"github.com/milk9111/triggers/interaction"
	"github.com/milk9111/triggers/prefabs"
	"github.com/milk9111/triggers/scripting"
	"github.com/sirupsen/logrus"
)

// Input is one frame of player intent.
type Input struct {
	Left, Right bool
	Up, Down    bool
	Attack      bool
}

// Options configure a World.
type Options struct {
	// BruteForce disables the router's grid.
	BruteForce bool
	// ScreenW and ScreenH size the camera view. Zero uses the stage size.
	ScreenW, ScreenH int
	Logger           logrus.FieldLogger
}

// World owns a stage: its router, its triggers and the entities that
// register probes and regions with it.
type World struct {
	Spec     *prefabs.StageSpec
	Router   *interaction.Router
	Resolver *component.CombatResolver
	Camera   *Camera
	Player   *Player
	Monsters []*Monster
	Triggers []prefabs.Trigger

	GateOpen     bool
	Coins        int
	StageCleared bool

	stageName string
	scripts   []*scripting.Listener
	opts      Options
	log       logrus.FieldLogger
}

// NewWorld creates a new world and loads the requested stage.
func NewWorld(stageName string, opts Options) (*World, error) {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	w := &World{opts: opts, log: opts.Logger}
	if err := w.Load(stageName); err != nil {
		return nil, err
	}
	return w, nil
}

// Load builds stageName and, only once it has built, tears down the
// current stage. A stage that fails to load leaves the world as it was.
func (w *World) Load(stageName string) error {
	if w == nil {
		return errors.New("world is nil")
	}
	spec, err := prefabs.LoadStageSpec(stageName)
	if err != nil {
		return err
	}

	// The resolver reads w.Camera lazily, so it can be built before the
	// swap.
	resolver := newCombatResolver(w)
	triggers, scripts, err := w.buildTriggers(spec, resolver)
	if err != nil {
		return err
	}

	if w.Router != nil {
		w.Router.OrphanAllRegions()
		w.Router.Reset()
	}

	cfg := spec.RouterConfig(w.log.WithField("stage", spec.Name))
	cfg.BruteForce = w.opts.BruteForce

	w.Spec = spec
	w.stageName = stageName
	w.Router = interaction.NewRouter(cfg)
	w.Camera = w.newCamera()
	w.Resolver = resolver
	w.Monsters = nil
	w.GateOpen = false
	w.Coins = 0
	w.StageCleared = false

	w.spawnPlayer()
	w.spawnMonsters()
	w.registerTriggers(triggers, scripts)
	w.Camera.SnapTo(w.Player.Position())
	w.log.WithFields(logrus.Fields{
		"stage":    spec.Name,
		"triggers": len(w.Triggers),
		"monsters": len(w.Monsters),
	}).Info("stage loaded")
	return nil
}

// ReloadTriggers rebuilds the stage's triggers from disk without touching
// entities. Old triggers are removed through the router so anything inside
// them still gets its exit. If the new triggers fail to build, the old
// ones stay in place.
func (w *World) ReloadTriggers() error {
	spec, err := prefabs.LoadStageSpec(w.stageName)
	if err != nil {
		return err
	}
	triggers, scripts, err := w.buildTriggers(spec, w.Resolver)
	if err != nil {
		return fmt.Errorf("reload %s: %w", w.stageName, err)
	}
	for _, t := range w.Triggers {
		w.Router.RemoveRegion(t.Region)
		w.Resolver.UnregisterAttack(t.Region)
	}
	w.Spec.Triggers = spec.Triggers
	w.registerTriggers(triggers, scripts)
	w.log.WithField("triggers", len(w.Triggers)).Info("triggers reloaded")
	return nil
}

// Bounds is the play area handed to the router each frame.
func (w *World) Bounds() cp.BB {
	return w.Spec.BoundsBB()
}

// Update advances the stage by one frame.
func (w *World) Update(in Input, dt float64) {
	w.Player.Update(in)
	for _, m := range w.Monsters {
		m.Update(dt)
	}
	w.Resolver.Tick()

	w.Router.Update(w.Bounds())
	w.Camera.Update(w.Player.Position())

	for _, s := range w.scripts {
		for _, a := range s.Drain() {
			w.applyAction(a)
		}
	}
}

// GameOver reports whether the player has died.
func (w *World) GameOver() bool {
	return !w.Player.Health().IsAlive()
}

func (w *World) newCamera() *Camera {
	b := w.Bounds()
	sw, sh := w.opts.ScreenW, w.opts.ScreenH
	if sw <= 0 || sh <= 0 {
		sw, sh = int(b.R-b.L), int(b.T-b.B)
	}
	return NewCamera(sw, sh, b)
}

func (w *World) applyAction(a scripting.Action) {
	log := w.log.WithFields(logrus.Fields{"action": a.Name, "trigger": a.Trigger})
	switch a.Name {
	case "open_gate":
		w.GateOpen = true
	case "close_gate":
		w.GateOpen = false
	case "next_stage":
		w.StageCleared = true
	case "heal":
		amount := 1
		if n, err := strconv.Atoi(a.Arg); err == nil {
			amount = n
		}
		log = log.WithField("healed", w.Player.Health().Heal(amount))
	default:
		log.Warn("unknown script action")
		return
	}
	log.Debug("script action")
}

// collect removes a pickup trigger. It runs inside router dispatch, which
// is why the removal is deferred by the router to the next update.
func (w *World) collect(r *interaction.Region) {
	for i, t := range w.Triggers {
		if t.Region == r && t.Spec.Kind == "pickup" {
			w.Router.RemoveRegion(r)
			w.Triggers = slices.Delete(w.Triggers, i, i+1)
			w.Coins++
			return
		}
	}
}

func (w *World) trigger(name string) (prefabs.Trigger, bool) {
	for _, t := range w.Triggers {
		if t.Spec.Name == name {
			return t, true
		}
	}
	return prefabs.Trigger{}, false
}

// LiveMonsters returns the monsters still registered with the router.
func (w *World) LiveMonsters() []*Monster {
	out := make([]*Monster, 0, len(w.Monsters))
	for _, m := range w.Monsters {
		if m.Health().IsAlive() {
			out = append(out, m)
		}
	}
	return out
}
