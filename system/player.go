package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/component"
	"github.com/milk9111/triggers/interaction"
	"github.com/milk9111/triggers/prefabs"
)

const (
	attackActiveFrames = 10
	// comboFrames keeps the attack region registered after a swing so a
	// quick follow-up re-arms it instead of re-adding it.
	comboFrames = 15
)

// Player is the controllable entity. It owns one rect probe and an attack
// region that stays registered from a swing until the combo window closes.
type Player struct {
	X, Y   float64
	Turned bool

	Climbing bool
	ladders  int

	spec   prefabs.PlayerSpec
	health *component.Health
	world  *World

	Probe        *interaction.Probe
	AttackRegion *interaction.Region
	attackTimer  int
	comboTimer   int
	attackArmed  bool
}

func newPlayer(w *World, spec prefabs.PlayerSpec) *Player {
	p := &Player{
		X:      spec.Spawn.X,
		Y:      spec.Spawn.Y,
		spec:   spec,
		health: component.NewHealth(spec.Health),
		world:  w,
	}
	p.Probe = interaction.NewRectProbe(p, p, spec.Probe.BB())
	p.AttackRegion = interaction.NewRegion(interaction.RegionConfig{
		Name:       "player_attack",
		Rect:       spec.Attack.Local(),
		Parent:     p,
		Target:     w.Resolver,
		EnterEvent: component.EventDamage,
	})
	w.Resolver.RegisterAttack(p.AttackRegion, p, component.Damage{
		Amount:         spec.Attack.Damage,
		CooldownFrames: spec.Attack.CooldownFrames,
		Faction:        component.FactionPlayer,
	})
	return p
}

func (p *Player) Position() cp.Vector        { return cp.Vector{X: p.X, Y: p.Y} }
func (p *Player) HasTurned() bool            { return p.Turned }
func (p *Player) Name() string               { return "player" }
func (p *Player) Faction() component.Faction { return component.FactionPlayer }
func (p *Player) Health() *component.Health  { return p.health }
func (p *Player) OnLadder() bool             { return p.ladders > 0 }
func (p *Player) Attacking() bool            { return p.attackTimer > 0 }

// Update applies one frame of input.
func (p *Player) Update(in Input) {
	p.health.Tick()
	if !p.health.IsAlive() {
		return
	}

	speed := p.spec.MoveSpeed
	dx := 0.0
	if in.Left {
		dx -= speed
	}
	if in.Right {
		dx += speed
	}
	if dx != 0 {
		p.Turned = dx < 0
	}
	p.X += dx

	p.Climbing = p.OnLadder() && (in.Up || in.Down)
	if p.Climbing {
		if in.Up {
			p.Y -= speed
		}
		if in.Down {
			p.Y += speed
		}
	}

	b := p.world.Bounds()
	p.X = clampf(p.X, b.L, b.R)
	p.Y = clampf(p.Y, b.B, b.T)

	p.updateAttack(in.Attack)
}

func (p *Player) updateAttack(pressed bool) {
	rt := p.world.Router
	if pressed && p.attackTimer == 0 {
		p.attackTimer = attackActiveFrames
		p.comboTimer = 0
		if p.attackArmed {
			rt.FlushRegion(p.AttackRegion)
		} else {
			rt.AddRegion(p.AttackRegion)
			p.attackArmed = true
		}
		return
	}
	if p.attackTimer > 0 {
		p.attackTimer--
		if p.attackTimer == 0 {
			p.comboTimer = comboFrames
		}
		return
	}
	if p.comboTimer > 0 {
		p.comboTimer--
		if p.comboTimer == 0 {
			rt.RemoveRegion(p.AttackRegion)
			p.attackArmed = false
		}
	}
}

// OnInteraction handles events from triggers that have no fixed target.
func (p *Player) OnInteraction(event string, r *interaction.Region, _ *interaction.Probe) {
	switch event {
	case "ladder":
		p.ladders++
	case "ladderexit":
		p.ladders = max(p.ladders-1, 0)
		if p.ladders == 0 {
			p.Climbing = false
		}
	case "pickup":
		p.world.collect(r)
	}
}

func clampf(v, lo, hi float64) float64 {
	return max(lo, min(v, hi))
}
