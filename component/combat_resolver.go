package component

import "github.com/milk9111/triggers/interaction"

type hitKey struct {
	region *interaction.Region
	target Combatant
}

type attack struct {
	owner  Combatant
	damage Damage
}

// CombatResolver applies damage when a probe enters an attack or hazard
// region. Register it as the fixed target of those regions.
type CombatResolver struct {
	Emitter *CombatEventEmitter

	frame    uint64
	attacks  map[*interaction.Region]attack
	lastHits map[hitKey]uint64
}

// NewCombatResolver creates a resolver instance.
func NewCombatResolver() *CombatResolver {
	return &CombatResolver{
		attacks:  make(map[*interaction.Region]attack),
		lastHits: make(map[hitKey]uint64),
	}
}

// RegisterAttack records what region deals when something enters it. The
// owner may be nil for stage hazards.
func (r *CombatResolver) RegisterAttack(region *interaction.Region, owner Combatant, dmg Damage) {
	if r == nil || region == nil {
		return
	}
	r.attacks[region] = attack{owner: owner, damage: dmg}
}

// UnregisterAttack forgets region and its cooldowns.
func (r *CombatResolver) UnregisterAttack(region *interaction.Region) {
	if r == nil {
		return
	}
	delete(r.attacks, region)
	for k := range r.lastHits {
		if k.region == region {
			delete(r.lastHits, k)
		}
	}
}

// Tick advances internal frame counters (call once per game frame).
func (r *CombatResolver) Tick() {
	if r == nil {
		return
	}
	r.frame++
}

func (r *CombatResolver) OnInteraction(event string, region *interaction.Region, probe *interaction.Probe) {
	if event != EventDamage && event != EventHazard {
		return
	}
	r.Resolve(region, probe)
}

// Resolve applies the region's damage to the probe's owner. Returns true
// if any damage was applied.
func (r *CombatResolver) Resolve(region *interaction.Region, probe *interaction.Probe) bool {
	if r == nil || region == nil || probe == nil {
		return false
	}
	atk, ok := r.attacks[region]
	if !ok {
		return false
	}
	target, ok := probe.Owner().(Combatant)
	if !ok || target == atk.owner {
		return false
	}
	health := target.Health()
	if !health.IsAlive() || !factionCanHit(atk.damage.Faction, target.Faction()) {
		return false
	}

	pos := probe.Owner().Position()
	evt := CombatEvent{
		Type:    EventHit,
		Target:  target.Name(),
		Damage:  atk.damage.Amount,
		Trigger: region.Name(),
		Frame:   r.frame,
		PosX:    pos.X,
		PosY:    pos.Y,
	}
	if atk.owner != nil {
		evt.Attacker = atk.owner.Name()
	}
	r.Emitter.Emit(evt)

	key := hitKey{region: region, target: target}
	if r.isOnCooldown(key, atk.damage) {
		return false
	}
	if !health.ApplyDamage(atk.damage.Amount, evt) {
		return false
	}
	r.lastHits[key] = r.frame
	health.StartIFrames(atk.damage.IFrameFrames)

	evt.Type = EventDamageApplied
	r.Emitter.Emit(evt)
	if !health.IsAlive() {
		evt.Type = EventDeath
		r.Emitter.Emit(evt)
	}
	return true
}

func (r *CombatResolver) isOnCooldown(key hitKey, dmg Damage) bool {
	if dmg.CooldownFrames <= 0 {
		return false
	}
	last, ok := r.lastHits[key]
	if !ok {
		return false
	}
	return r.frame-last < uint64(dmg.CooldownFrames)
}

func factionCanHit(attacker Faction, target Faction) bool {
	if attacker == FactionNeutral || target == FactionNeutral {
		return true
	}
	return attacker != target
}
