// Command triggercheck validates stage files and dry-runs their triggers
// without opening a window.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/milk9111/triggers/logging"
	"github.com/milk9111/triggers/prefabs"
	"github.com/milk9111/triggers/system"
	"github.com/sirupsen/logrus"
)

func main() {
	frames := flag.Int("frames", 120, "frames to simulate per stage")
	brute := flag.Bool("brute", false, "disable the router grid")
	dir := flag.String("dir", prefabs.Dir, "directory checked for stage overrides")
	flag.Parse()

	log := logging.New()
	prefabs.Dir = *dir

	stages := flag.Args()
	if len(stages) == 0 {
		stages = []string{"stage_demo"}
	}

	failed := 0
	for _, name := range stages {
		if err := check(name, *frames, *brute, log); err != nil {
			log.WithError(err).WithField("stage", name).Error("check failed")
			failed++
		}
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "%d of %d stages failed\n", failed, len(stages))
		os.Exit(1)
	}
}

func check(name string, frames int, brute bool, log *logrus.Logger) error {
	w, err := system.NewWorld(name, system.Options{BruteForce: brute, Logger: log})
	if err != nil {
		return err
	}
	for range frames {
		w.Update(system.Input{}, 1.0/60)
	}

	occupied := 0
	for _, r := range w.Router.Regions() {
		if !w.Router.IsEmpty(r) {
			occupied++
		}
	}
	fields := logrus.Fields{
		"stage":    w.Spec.Name,
		"frames":   w.Router.Frame(),
		"regions":  len(w.Router.Regions()),
		"probes":   len(w.Router.Probes()),
		"occupied": occupied,
		"monsters": len(w.LiveMonsters()),
		"player":   w.Router.EnterEventNamesForOwner(w.Player),
	}
	if mt, ok := prefabs.ModTime(name); ok {
		fields["override"] = mt.Format("2006-01-02 15:04:05")
	}
	log.WithFields(fields).Info("stage ok")
	return nil
}
