package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/triggers/common"
	"github.com/milk9111/triggers/debugdraw"
	"github.com/milk9111/triggers/prefabs"
	"github.com/milk9111/triggers/system"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"
)

const (
	baseWidth  = 1280
	baseHeight = 720
)

type Game struct {
	frames int
	debug  bool
	labels bool

	stage   string
	world   *system.World
	watcher *prefabs.Watcher
	log     logrus.FieldLogger
}

func NewGame(world *system.World, stage string, debug bool, log logrus.FieldLogger) *Game {
	return &Game{world: world, stage: stage, debug: debug, log: log}
}

func (g *Game) Update() error {
	g.frames++

	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.debug = !g.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF2) {
		g.labels = !g.labels
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.reload()
	}
	g.pollWatcher()

	g.world.Update(readInput(), 1/float64(ebiten.TPS()))

	if g.world.StageCleared || g.world.GameOver() {
		g.reload()
	}
	return nil
}

func readInput() system.Input {
	pressed := func(keys ...ebiten.Key) bool {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				return true
			}
		}
		return false
	}
	return system.Input{
		Left:   pressed(ebiten.KeyA, ebiten.KeyLeft),
		Right:  pressed(ebiten.KeyD, ebiten.KeyRight),
		Up:     pressed(ebiten.KeyW, ebiten.KeyUp),
		Down:   pressed(ebiten.KeyS, ebiten.KeyDown),
		Attack: inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsKeyJustPressed(ebiten.KeySpace),
	}
}

func (g *Game) reload() {
	if err := g.world.Load(g.stage); err != nil {
		g.log.WithError(err).Error("stage reload failed")
	}
}

func (g *Game) pollWatcher() {
	if g.watcher == nil {
		return
	}
	if err := g.watcher.Err(); err != nil {
		g.log.WithError(err).Warn("watcher error")
	}
	reload := false
	for _, c := range g.watcher.Poll() {
		if c.Affects(g.stage) {
			g.log.WithField("file", c.Path).Info("prefab changed")
			reload = true
		}
	}
	if !reload {
		return
	}
	if err := g.world.ReloadTriggers(); err != nil {
		g.log.WithError(err).Error("trigger reload failed")
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)
	cam := g.world.Camera.ViewTopLeft()

	for _, t := range g.world.Triggers {
		clr := t.Spec.Color.Color
		if clr == nil {
			clr = colornames.Slategray
		}
		fillRect(screen, t.Region.WorldRect(), cam, clr)
	}
	for _, m := range g.world.LiveMonsters() {
		clr := color.Color(colornames.Mediumpurple)
		if m.Health().IFrames > 0 {
			clr = colornames.White
		}
		pos := m.Position()
		vector.DrawFilledCircle(screen, float32(pos.X-cam.X), float32(pos.Y-cam.Y), float32(m.Radius()), clr, true)
	}

	p := g.world.Player
	playerClr := color.Color(colornames.Orange)
	if p.Health().IFrames > 0 {
		playerClr = colornames.White
	}
	fillRect(screen, common.OffsetRect(p.Probe.Rect(), p.Position()), cam, playerClr)
	if p.Attacking() {
		fillRect(screen, p.AttackRegion.WorldRect(), cam, colornames.Red)
	}

	if g.debug {
		debugdraw.DrawRouter(screen, g.world.Router, cam, debugdraw.Options{Labels: g.labels})
	}

	gate := "closed"
	if g.world.GateOpen {
		gate = "open"
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf(
		"FPS: %.2f  frame: %d\nHP: %d/%d  coins: %d  gate: %s  ladder: %v\nF1 debug  F2 labels  R reload",
		ebiten.ActualFPS(), g.world.Router.Frame(),
		p.Health().Current, p.Health().Max, g.world.Coins, gate, p.OnLadder(),
	))
}

func fillRect(screen *ebiten.Image, r cp.BB, cam cp.Vector, clr color.Color) {
	vector.DrawFilledRect(screen,
		float32(r.L-cam.X), float32(r.B-cam.Y),
		float32(common.RectWidth(r)), float32(common.RectHeight(r)),
		clr, false)
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return baseWidth, baseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
