package main

import (
	"flag"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/triggers/logging"
	"github.com/milk9111/triggers/prefabs"
	"github.com/milk9111/triggers/system"
)

func main() {
	stageName := flag.String("stage", "stage_demo", "stage name in prefabs/ (basename, .yaml optional)")
	debug := flag.Bool("debug", false, "draw router regions and probes")
	watch := flag.Bool("watch", false, "reload triggers when files under prefabs/ change")
	brute := flag.Bool("brute", false, "test every probe against every region instead of using the grid")
	flag.Parse()

	log := logging.New()

	world, err := system.NewWorld(*stageName, system.Options{
		BruteForce: *brute,
		ScreenW:    baseWidth,
		ScreenH:    baseHeight,
		Logger:     log,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to load stage")
	}

	game := NewGame(world, *stageName, *debug, log)
	if *watch {
		w, err := prefabs.WatchDir(prefabs.Dir)
		if err != nil {
			log.WithError(err).Warn("file watching disabled")
		} else {
			defer w.Close()
			game.watcher = w
		}
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth, baseHeight)
	ebiten.SetWindowTitle("triggers")

	if err := ebiten.RunGame(game); err != nil {
		log.WithError(err).Fatal("game exited")
	}
}
