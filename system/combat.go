package system

import (
	"github.com/milk9111/triggers/component"
	"github.com/sirupsen/logrus"
)

// newCombatResolver wires the resolver's events into the stage log and,
// for hits on the player, the camera shake.
func newCombatResolver(w *World) *component.CombatResolver {
	resolver := component.NewCombatResolver()
	em := &component.CombatEventEmitter{}
	em.Handlers = append(em.Handlers, func(evt component.CombatEvent) {
		if evt.Type == component.EventHit {
			return
		}
		w.log.WithFields(logrus.Fields{
			"type":     evt.Type,
			"attacker": evt.Attacker,
			"target":   evt.Target,
			"damage":   evt.Damage,
			"trigger":  evt.Trigger,
			"frame":    evt.Frame,
		}).Debug("combat")
	})
	em.Handlers = append(em.Handlers, func(evt component.CombatEvent) {
		if evt.Type == component.EventDamageApplied && evt.Target == "player" {
			w.Camera.StartShake(6.0, 12)
		}
	})
	resolver.Emitter = em
	return resolver
}
