package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/common"
	"github.com/milk9111/triggers/component"
	"github.com/milk9111/triggers/interaction"
	"github.com/milk9111/triggers/prefabs"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

const monsterIFrames = 20

// Monster patrols its path back and forth and hurts whatever walks into
// its attack region. Its probe is a union of two circles.
type Monster struct {
	X, Y   float64
	Turned bool

	spec   prefabs.MonsterSpec
	health *component.Health
	world  *World

	Probe        *interaction.Probe
	AttackRegion *interaction.Region

	segment int
	dir     int
	tween   *gween.Tween
}

func newMonster(w *World, spec prefabs.MonsterSpec) *Monster {
	start := spec.Path[0]
	m := &Monster{
		X:      start.X,
		Y:      start.Y,
		spec:   spec,
		health: component.NewHealth(spec.Health),
		world:  w,
		dir:    1,
	}
	m.health.OnDeath = func(*component.Health, component.CombatEvent) { m.despawn() }

	r := spec.Radius
	m.Probe = interaction.NewCircleProbe(m, m, []common.Circle{
		{Radius: r},
		{Center: cp.Vector{Y: -r}, Radius: r * 0.6},
	})
	m.AttackRegion = interaction.NewRegion(interaction.RegionConfig{
		Name:       spec.Name + "_attack",
		Rect:       spec.Attack.Local(),
		Parent:     m,
		Target:     w.Resolver,
		EnterEvent: component.EventDamage,
	})
	w.Resolver.RegisterAttack(m.AttackRegion, m, component.Damage{
		Amount:         spec.Attack.Damage,
		CooldownFrames: spec.Attack.CooldownFrames,
		IFrameFrames:   monsterIFrames,
		Faction:        component.FactionEnemy,
	})
	m.startSegment()
	return m
}

func (m *Monster) Position() cp.Vector        { return cp.Vector{X: m.X, Y: m.Y} }
func (m *Monster) HasTurned() bool            { return m.Turned }
func (m *Monster) Name() string               { return m.spec.Name }
func (m *Monster) Faction() component.Faction { return component.FactionEnemy }
func (m *Monster) Health() *component.Health  { return m.health }
func (m *Monster) Radius() float64            { return m.spec.Radius }

// OnInteraction receives events of untargeted triggers the monster walks
// through. Monsters ignore them.
func (m *Monster) OnInteraction(string, *interaction.Region, *interaction.Probe) {}

// Update moves the monster along its patrol path by dt seconds.
func (m *Monster) Update(dt float64) {
	m.health.Tick()
	if !m.health.IsAlive() || m.tween == nil {
		return
	}
	t, done := m.tween.Update(float32(dt))
	from, to := m.endpoints()
	m.X = common.Lerp(from.X, to.X, float64(t))
	m.Y = common.Lerp(from.Y, to.Y, float64(t))
	if to.X != from.X {
		m.Turned = to.X < from.X
	}
	if done {
		m.advance()
	}
}

func (m *Monster) endpoints() (cp.Vector, cp.Vector) {
	path := m.spec.Path
	return path[m.segment].Vector(), path[m.segment+m.dir].Vector()
}

func (m *Monster) advance() {
	m.segment += m.dir
	next := m.segment + m.dir
	if next < 0 || next >= len(m.spec.Path) {
		m.dir = -m.dir
	}
	m.startSegment()
}

func (m *Monster) startSegment() {
	legs := len(m.spec.Path) - 1
	if legs < 1 {
		m.tween = nil
		return
	}
	period := m.spec.Period
	if period <= 0 {
		period = 1
	}
	m.tween = gween.New(0, 1, float32(period/float64(legs)), ease.InOutQuad)
}

// despawn runs from inside router dispatch when the monster dies. The
// router defers the removals to its next update.
func (m *Monster) despawn() {
	m.world.Router.RemoveProbe(m)
	m.world.Router.RemoveRegion(m.AttackRegion)
	m.world.Resolver.UnregisterAttack(m.AttackRegion)
	m.world.log.WithField("monster", m.spec.Name).Info("monster defeated")
}
