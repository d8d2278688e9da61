package system

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/milk9111/triggers/logging"
	"github.com/milk9111/triggers/prefabs"
)

// playerOnly is a stage with a player at (100,100) and nothing else; tests
// append their own triggers and monsters.
const playerOnly = `
name: test
bounds: {x: 0, y: 0, width: 800, height: 600}
grid: {cols: 8, rows: 6}
player:
  spawn: {x: 100, y: 100}
  move_speed: 4
  health: 5
  probe: {x: -10, y: -20, width: 20, height: 20}
  attack: {width: 28, height: 24, offset_x: 10, offset_y: -20, damage: 1, cooldown_frames: 0}
`

func writeStage(t *testing.T, name, body string) {
	t.Helper()
	dir := t.TempDir()
	old := prefabs.Dir
	prefabs.Dir = dir
	t.Cleanup(func() { prefabs.Dir = old })
	if err := os.WriteFile(filepath.Join(dir, name+".yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write stage: %v", err)
	}
}

func newTestWorld(t *testing.T, body string) *World {
	t.Helper()
	writeStage(t, "stage_test", body)
	w, err := NewWorld("stage_test", Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	return w
}

func step(w *World, in Input, n int) {
	for range n {
		w.Update(in, 1.0/60)
	}
}

func TestWorldLoadsDemoStage(t *testing.T) {
	w, err := NewWorld("stage_demo", Options{Logger: logging.Discard()})
	if err != nil {
		t.Fatalf("NewWorld: %v", err)
	}
	if got := len(w.Triggers); got != 6 {
		t.Fatalf("triggers = %d, want 6", got)
	}
	if got := len(w.Monsters); got != 1 {
		t.Fatalf("monsters = %d, want 1", got)
	}
	// six triggers plus the slime's attack region
	if got := len(w.Router.Regions()); got != 7 {
		t.Fatalf("regions = %d, want 7", got)
	}
	if got := len(w.Router.Probes()); got != 2 {
		t.Fatalf("probes = %d, want 2", got)
	}
	step(w, Input{Right: true}, 30)
	if w.GameOver() {
		t.Fatalf("player died walking 30 frames")
	}
}

func TestUnknownTargetFailsLoad(t *testing.T) {
	writeStage(t, "stage_test", playerOnly+`
triggers:
  - name: odd
    rect: {x: 0, y: 0, width: 10, height: 10}
    enter: poke
    target: nobody
`)
	if _, err := NewWorld("stage_test", Options{Logger: logging.Discard()}); err == nil {
		t.Fatalf("expected error for unknown target")
	}
}

func TestInvalidHitboxFailsLoad(t *testing.T) {
	writeStage(t, "stage_test", strings.Replace(playerOnly, "attack: {width: 28", "attack: {width: -28", 1))
	_, err := NewWorld("stage_test", Options{Logger: logging.Discard()})
	if err == nil || !strings.Contains(err.Error(), "player: attack") {
		t.Fatalf("negative attack width should fail validation, got %v", err)
	}
}

func TestLadderClimbing(t *testing.T) {
	w := newTestWorld(t, playerOnly+`
triggers:
  - name: ladder
    rect: {x: 90, y: 0, width: 20, height: 200}
    enter: ladder
    exit: ladderexit
`)
	p := w.Player

	step(w, Input{}, 1)
	if !p.OnLadder() {
		t.Fatalf("player should be on the ladder after the first update")
	}

	step(w, Input{Up: true}, 1)
	if !p.Climbing || p.Y != 96 {
		t.Fatalf("climbing=%v y=%v, want true 96", p.Climbing, p.Y)
	}

	// probe spans x-10..x+10; the ladder ends at 110
	step(w, Input{Right: true}, 6)
	if p.OnLadder() || p.Climbing {
		t.Fatalf("player left the ladder but onLadder=%v climbing=%v", p.OnLadder(), p.Climbing)
	}
}

func TestCoinPickupRemovesRegion(t *testing.T) {
	w := newTestWorld(t, playerOnly+`
triggers:
  - name: coin
    kind: pickup
    rect: {x: 95, y: 90, width: 10, height: 10}
    enter: pickup
`)
	coin, ok := w.trigger("coin")
	if !ok {
		t.Fatalf("coin trigger missing")
	}

	step(w, Input{}, 1)
	if w.Coins != 1 {
		t.Fatalf("coins = %d, want 1", w.Coins)
	}
	step(w, Input{}, 1)
	for _, r := range w.Router.Regions() {
		if r == coin.Region {
			t.Fatalf("coin region still registered")
		}
	}
	step(w, Input{}, 5)
	if w.Coins != 1 {
		t.Fatalf("coin collected twice: %d", w.Coins)
	}
}

func TestHazardHurtsPlayer(t *testing.T) {
	w := newTestWorld(t, playerOnly+`
triggers:
  - name: spikes
    rect: {x: 80, y: 95, width: 40, height: 10}
    enter: hazard
    target: hazards
`)
	step(w, Input{}, 1)
	h := w.Player.Health()
	if h.Current != 4 {
		t.Fatalf("health = %d, want 4", h.Current)
	}
	if !w.Camera.Shaking() {
		t.Fatalf("camera should shake when the player is hurt")
	}
	// standing still never re-enters, so no further damage
	step(w, Input{}, 60)
	if h.Current != 4 {
		t.Fatalf("health = %d after standing in hazard, want 4", h.Current)
	}
}

func TestPlateScriptTogglesGate(t *testing.T) {
	w := newTestWorld(t, playerOnly+`
triggers:
  - name: plate
    rect: {x: 90, y: 95, width: 20, height: 10}
    enter: press
    exit: release
    script: plate.tengo
`)
	step(w, Input{}, 1)
	if !w.GateOpen {
		t.Fatalf("gate should open while standing on the plate")
	}
	w.Player.X = 400
	step(w, Input{}, 1)
	if w.GateOpen {
		t.Fatalf("gate should close after leaving the plate")
	}
}

func TestDoorClearsStageAndReloadResets(t *testing.T) {
	w := newTestWorld(t, playerOnly+`
triggers:
  - name: door
    rect: {x: 90, y: 80, width: 20, height: 40}
    enter: exit_stage
    script: door.tengo
`)
	step(w, Input{}, 1)
	if !w.StageCleared {
		t.Fatalf("door should clear the stage")
	}

	old := w.Router
	if err := w.Load("stage_test"); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if w.StageCleared || w.Router == old {
		t.Fatalf("reload should build a fresh stage")
	}
	if len(old.Regions()) != 0 || len(old.Probes()) != 0 {
		t.Fatalf("old router not reset")
	}
}

const monsterAtReach = `
monsters:
  - name: dummy
    path: [{x: 124, y: 100}]
    radius: 5
    health: %d
    attack: {width: 2, height: 2, damage: 0}
`

func TestPlayerAttackKillsMonster(t *testing.T) {
	w := newTestWorld(t, playerOnly+fmt.Sprintf(monsterAtReach, 1))
	m := w.Monsters[0]

	step(w, Input{Attack: true}, 1)
	if m.Health().IsAlive() {
		t.Fatalf("monster should die from one hit")
	}
	step(w, Input{}, 1)
	if _, ok := w.Router.ProbeOf(m); ok {
		t.Fatalf("dead monster's probe still registered")
	}
	if len(w.LiveMonsters()) != 0 {
		t.Fatalf("live monsters = %d", len(w.LiveMonsters()))
	}
}

func TestFollowUpSwingReArmsAttack(t *testing.T) {
	w := newTestWorld(t, playerOnly+fmt.Sprintf(monsterAtReach, 3))
	m := w.Monsters[0]

	step(w, Input{Attack: true}, 1)
	if m.Health().Current != 2 {
		t.Fatalf("health after first swing = %d, want 2", m.Health().Current)
	}

	// the swing ends but the region stays registered for the combo window
	step(w, Input{}, attackActiveFrames)
	if m.Health().Current != 2 {
		t.Fatalf("monster hit without a swing: %d", m.Health().Current)
	}

	step(w, Input{Attack: true}, 1)
	if m.Health().Current != 1 {
		t.Fatalf("health after follow-up = %d, want 1", m.Health().Current)
	}

	step(w, Input{}, attackActiveFrames+comboFrames)
	for _, r := range w.Router.Regions() {
		if r == w.Player.AttackRegion {
			t.Fatalf("attack region should be removed after the combo window")
		}
	}
}

func TestAttackMirrorsWhenTurned(t *testing.T) {
	w := newTestWorld(t, playerOnly+fmt.Sprintf(monsterAtReach, 1))
	m := w.Monsters[0]

	// face left: the swing lands on the other side
	step(w, Input{Left: true, Attack: true}, 1)
	if !m.Health().IsAlive() {
		t.Fatalf("swing facing away should miss")
	}
}

func TestMonsterPatrol(t *testing.T) {
	w := newTestWorld(t, playerOnly+`
monsters:
  - name: walker
    path: [{x: 300, y: 400}, {x: 400, y: 400}]
    period: 1
    radius: 5
    health: 1
    attack: {width: 2, height: 2, damage: 0}
`)
	m := w.Monsters[0]

	m.Update(0.5)
	if math.Abs(m.X-350) > 1e-3 {
		t.Fatalf("x = %v at half period, want 350", m.X)
	}
	m.Update(0.5)
	if math.Abs(m.X-400) > 1e-3 {
		t.Fatalf("x = %v at the end of the leg, want 400", m.X)
	}
	m.Update(0.25)
	if math.Abs(m.X-387.5) > 1e-3 || !m.Turned {
		t.Fatalf("x = %v turned = %v on the way back", m.X, m.Turned)
	}
}

func TestReloadTriggersEmitsExits(t *testing.T) {
	w := newTestWorld(t, playerOnly+`
triggers:
  - name: zone
    rect: {x: 90, y: 0, width: 20, height: 200}
    enter: ladder
    exit: ladderexit
`)
	step(w, Input{}, 1)
	if !w.Player.OnLadder() {
		t.Fatalf("player should start inside the zone")
	}

	moved := playerOnly + `
triggers:
  - name: zone
    rect: {x: 600, y: 0, width: 20, height: 200}
    enter: ladder
    exit: ladderexit
`
	if err := os.WriteFile(filepath.Join(prefabs.Dir, "stage_test.yaml"), []byte(moved), 0o644); err != nil {
		t.Fatalf("rewrite stage: %v", err)
	}
	if err := w.ReloadTriggers(); err != nil {
		t.Fatalf("ReloadTriggers: %v", err)
	}
	step(w, Input{}, 1)
	if w.Player.OnLadder() {
		t.Fatalf("removed zone should have sent its exit")
	}
	zone, _ := w.trigger("zone")
	if zone.Region.Rect().L != 600 {
		t.Fatalf("zone not rebuilt: %v", zone.Region.Rect())
	}
}

const zoneStage = playerOnly + `
triggers:
  - name: zone
    rect: {x: 90, y: 0, width: 20, height: 200}
    enter: ladder
    exit: ladderexit
`

func writeScript(t *testing.T, name, src string) {
	t.Helper()
	dir := filepath.Join(prefabs.Dir, "scripts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir scripts: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
}

func TestReloadWithBrokenScriptKeepsTriggers(t *testing.T) {
	w := newTestWorld(t, zoneStage)
	step(w, Input{}, 1)
	zone, _ := w.trigger("zone")

	writeScript(t, "broken.tengo", "on_event := func(engine, state, ev) {\n")
	broken := zoneStage + `  - name: lever
    rect: {x: 300, y: 0, width: 10, height: 10}
    enter: pull
    script: broken.tengo
`
	if err := os.WriteFile(filepath.Join(prefabs.Dir, "stage_test.yaml"), []byte(broken), 0o644); err != nil {
		t.Fatalf("rewrite stage: %v", err)
	}
	if err := w.ReloadTriggers(); err == nil {
		t.Fatalf("reload with a script that does not compile should fail")
	}

	if len(w.Triggers) != 1 || w.Triggers[0].Region != zone.Region {
		t.Fatalf("old triggers replaced by a failed reload: %+v", w.Triggers)
	}
	if len(w.Spec.Triggers) != 1 {
		t.Fatalf("spec updated by a failed reload: %d triggers", len(w.Spec.Triggers))
	}
	step(w, Input{}, 1)
	if !w.Player.OnLadder() || w.Router.IsEmpty(zone.Region) {
		t.Fatalf("zone should still hold the player after a failed reload")
	}
}

func TestFailedLoadKeepsStage(t *testing.T) {
	w := newTestWorld(t, zoneStage)
	step(w, Input{}, 1)
	rt, player := w.Router, w.Player

	writeScript(t, "broken.tengo", "on_event := func(engine, state, ev) {\n")
	bad := zoneStage + `  - name: lever
    rect: {x: 300, y: 0, width: 10, height: 10}
    enter: pull
    script: broken.tengo
`
	if err := os.WriteFile(filepath.Join(prefabs.Dir, "stage_test.yaml"), []byte(bad), 0o644); err != nil {
		t.Fatalf("rewrite stage: %v", err)
	}
	if err := w.Load("stage_test"); err == nil {
		t.Fatalf("Load with a script that does not compile should fail")
	}
	if w.Router != rt || w.Player != player || len(rt.Regions()) != 1 || len(rt.Probes()) != 1 {
		t.Fatalf("failed load tore down the running stage")
	}
	step(w, Input{}, 1)
	if !w.Player.OnLadder() {
		t.Fatalf("player should still be in the zone")
	}
}

func TestHeartScriptHealsOnce(t *testing.T) {
	w := newTestWorld(t, playerOnly+`
triggers:
  - name: heart
    kind: heal
    rect: {x: 95, y: 90, width: 10, height: 10}
    enter: heal
    script: heal.tengo
`)
	h := w.Player.Health()
	h.Current = 2

	step(w, Input{}, 1)
	if h.Current != 4 {
		t.Fatalf("health = %d after the heart, want 4", h.Current)
	}

	// step off and back on; the heart is spent
	w.Player.X = 400
	step(w, Input{}, 1)
	w.Player.X = 100
	step(w, Input{}, 1)
	if h.Current != 4 {
		t.Fatalf("spent heart healed again: %d", h.Current)
	}
}
