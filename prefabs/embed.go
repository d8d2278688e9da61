package prefabs

import (
	"embed"
	"os"
	"path/filepath"
	"strings"
	"time"
)

//go:embed scripts/*.tengo
var ScriptsFS embed.FS

//go:embed *.yaml
var StagesFS embed.FS

// Dir is where on-disk overrides are looked up. Files found there win over
// the embedded copies so stages can be edited while the game runs.
var Dir = "prefabs"

// LoadScript returns a tengo script by name, e.g. "plate.tengo".
func LoadScript(name string) ([]byte, error) {
	return read(ScriptsFS, cleanScriptPath(name))
}

// Load returns a stage file by name; the .yaml extension is optional.
func Load(name string) ([]byte, error) {
	return read(StagesFS, cleanStagePath(name))
}

func read(fsys embed.FS, clean string) ([]byte, error) {
	if data, err := os.ReadFile(diskPath(clean)); err == nil {
		return data, nil
	}
	return fsys.ReadFile(clean)
}

// ModTime reports when the disk override of a stage was last written.
// Embedded-only stages report false.
func ModTime(name string) (time.Time, bool) {
	info, err := os.Stat(diskPath(cleanStagePath(name)))
	if err != nil {
		return time.Time{}, false
	}
	return info.ModTime(), true
}

func cleanStagePath(path string) string {
	if path == "" {
		return ""
	}
	s := strings.TrimPrefix(filepath.ToSlash(path), "prefabs/")
	if filepath.Ext(s) == "" {
		s += ".yaml"
	}
	return s
}

func cleanScriptPath(path string) string {
	if path == "" {
		return ""
	}
	s := filepath.ToSlash(path)
	for _, prefix := range []string{"prefabs/", "scripts/"} {
		s = strings.TrimPrefix(s, prefix)
	}
	return "scripts/" + s
}

func diskPath(clean string) string {
	return filepath.Join(Dir, filepath.FromSlash(clean))
}
