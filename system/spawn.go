package system

import (
	"fmt"

	"github.com/milk9111/triggers/component"
	"github.com/milk9111/triggers/interaction"
	"github.com/milk9111/triggers/prefabs"
	"github.com/milk9111/triggers/scripting"
)

// TargetHazards routes a trigger's events to the combat resolver.
const TargetHazards = "hazards"

var hazardDamage = component.Damage{
	Amount:         1,
	CooldownFrames: 30,
	IFrameFrames:   30,
	Faction:        component.FactionEnvironment,
}

func (w *World) spawnPlayer() {
	w.Player = newPlayer(w, w.Spec.Player)
	w.Router.AddProbe(w.Player.Probe)
}

func (w *World) spawnMonsters() {
	for _, ms := range w.Spec.Monsters {
		m := newMonster(w, ms)
		w.Monsters = append(w.Monsters, m)
		w.Router.AddProbe(m.Probe)
		w.Router.AddRegion(m.AttackRegion)
	}
}

// buildTriggers builds spec's triggers and compiles their scripts without
// registering anything, so a failure leaves the world untouched.
func (w *World) buildTriggers(spec *prefabs.StageSpec, resolver *component.CombatResolver) ([]prefabs.Trigger, []*scripting.Listener, error) {
	var scripts []*scripting.Listener
	triggers, err := prefabs.BuildTriggers(spec, func(t prefabs.TriggerSpec) (interaction.Listener, error) {
		switch {
		case t.Script != "":
			l, err := scripting.Load(t.Script, w.log)
			if err != nil {
				return nil, err
			}
			scripts = append(scripts, l)
			return l, nil
		case t.Target == TargetHazards:
			return resolver, nil
		case t.Target != "":
			return nil, fmt.Errorf("unknown target %q", t.Target)
		}
		return nil, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return triggers, scripts, nil
}

func (w *World) registerTriggers(triggers []prefabs.Trigger, scripts []*scripting.Listener) {
	for _, t := range triggers {
		if t.Spec.Target == TargetHazards {
			w.Resolver.RegisterAttack(t.Region, nil, hazardDamage)
		}
		w.Router.AddRegion(t.Region)
	}
	w.Triggers = triggers
	w.scripts = scripts
}
