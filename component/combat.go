package component

import "github.com/milk9111/triggers/interaction"

// Faction identifies teams for friendly-fire checks.
type Faction int

const (
	FactionNeutral Faction = iota
	FactionPlayer
	FactionEnemy
	FactionEnvironment
)

// Router event names the combat resolver reacts to.
const (
	EventDamage = "damage"
	EventHazard = "hazard"
)

// CombatEventType defines the kind of combat event.
type CombatEventType string

const (
	EventHit           CombatEventType = "hit"
	EventDamageApplied CombatEventType = "damage_applied"
	EventDeath         CombatEventType = "death"
)

// CombatEvent is emitted during combat resolution.
type CombatEvent struct {
	Type     CombatEventType
	Attacker string
	Target   string
	Damage   int
	Trigger  string
	Frame    uint64
	PosX     float64
	PosY     float64
}

// CombatEventHandler handles combat events.
type CombatEventHandler func(evt CombatEvent)

// CombatEventEmitter allows components to emit combat events.
type CombatEventEmitter struct {
	Handlers []CombatEventHandler
}

// Emit sends a combat event to all handlers.
func (e *CombatEventEmitter) Emit(evt CombatEvent) {
	if e == nil || len(e.Handlers) == 0 {
		return
	}
	for _, h := range e.Handlers {
		if h != nil {
			h(evt)
		}
	}
}

// Damage describes damage parameters.
type Damage struct {
	Amount         int
	CooldownFrames int
	IFrameFrames   int
	Faction        Faction
}

// Combatant is a probe owner that can be hurt.
type Combatant interface {
	interaction.Positioned
	Name() string
	Faction() Faction
	Health() *Health
}
