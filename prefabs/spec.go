package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// StageSpec is one stage's trigger layout.
type StageSpec struct {
	Name     string        `yaml:"name"`
	Bounds   RectSpec      `yaml:"bounds"`
	Grid     GridSpec      `yaml:"grid"`
	Player   PlayerSpec    `yaml:"player"`
	Triggers []TriggerSpec `yaml:"triggers"`
	Monsters []MonsterSpec `yaml:"monsters"`
}

func LoadStageSpec(name string) (*StageSpec, error) {
	spec, err := LoadSpec[StageSpec](name)
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", name, err)
	}
	return &spec, nil
}

// Validate reports malformed triggers, hitboxes and bounds before they
// reach the router, which treats them as programmer errors.
func (s *StageSpec) Validate() error {
	var errs []error
	if !(s.Bounds.Width > 0) || !(s.Bounds.Height > 0) || s.Bounds.check() != nil {
		errs = append(errs, fmt.Errorf("stage %q: bounds must have a positive size", s.Name))
	}
	seen := make(map[string]bool, len(s.Triggers))
	for i, t := range s.Triggers {
		label := t.Name
		if label == "" {
			label = "#" + strconv.Itoa(i)
			errs = append(errs, fmt.Errorf("trigger %s: missing name", label))
		}
		if seen[t.Name] && t.Name != "" {
			errs = append(errs, fmt.Errorf("trigger %s: duplicate name", label))
		}
		seen[t.Name] = true
		if t.Enter == "" && t.Exit == "" {
			errs = append(errs, fmt.Errorf("trigger %s: needs an enter or exit event", label))
		}
		if t.Target != "" && t.Script != "" {
			errs = append(errs, fmt.Errorf("trigger %s: target and script are exclusive", label))
		}
		if err := t.Rect.check(); err != nil {
			errs = append(errs, fmt.Errorf("trigger %s: %w", label, err))
		}
	}
	for i, m := range s.Monsters {
		if !(m.Radius > 0) {
			errs = append(errs, fmt.Errorf("monster %d (%s): radius must be positive", i, m.Name))
		}
		if len(m.Path) == 0 {
			errs = append(errs, fmt.Errorf("monster %d (%s): empty patrol path", i, m.Name))
		}
		for _, pt := range m.Path {
			if math.IsNaN(pt.X) || math.IsNaN(pt.Y) {
				errs = append(errs, fmt.Errorf("monster %d (%s): NaN patrol point", i, m.Name))
				break
			}
		}
		if err := m.Attack.check(); err != nil {
			errs = append(errs, fmt.Errorf("monster %d (%s): attack: %w", i, m.Name, err))
		}
	}
	if s.Player.Probe.Width <= 0 || s.Player.Probe.Height <= 0 {
		errs = append(errs, errors.New("player: probe must have a positive size"))
	} else if err := s.Player.Probe.check(); err != nil {
		errs = append(errs, fmt.Errorf("player: probe: %w", err))
	}
	if err := s.Player.Attack.check(); err != nil {
		errs = append(errs, fmt.Errorf("player: attack: %w", err))
	}
	return errors.Join(errs...)
}

func checkSize(w, h float64, nums ...float64) error {
	for _, v := range append(nums, w, h) {
		if math.IsNaN(v) {
			return errors.New("NaN coordinate")
		}
	}
	if w < 0 || h < 0 {
		return errors.New("negative size")
	}
	return nil
}

// BoundsBB returns the stage bounds as used by the router's grid.
func (s *StageSpec) BoundsBB() cp.BB {
	return s.Bounds.BB()
}

type GridSpec struct {
	Cols int `yaml:"cols"`
	Rows int `yaml:"rows"`
}

// RectSpec is a top-left + size rect.
type RectSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

func (r RectSpec) check() error {
	return checkSize(r.Width, r.Height, r.X, r.Y)
}

func (r RectSpec) BB() cp.BB {
	return cp.BB{L: r.X, B: r.Y, R: r.X + r.Width, T: r.Y + r.Height}
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func (p PointSpec) Vector() cp.Vector {
	return cp.Vector{X: p.X, Y: p.Y}
}

type PlayerSpec struct {
	Spawn     PointSpec `yaml:"spawn"`
	MoveSpeed float64   `yaml:"move_speed"`
	Health    int       `yaml:"health"`
	// Probe and Attack are relative to the player's position.
	Probe  RectSpec   `yaml:"probe"`
	Attack HitboxSpec `yaml:"attack"`
}

// TriggerSpec is a static region in world space.
type TriggerSpec struct {
	Name  string   `yaml:"name"`
	Kind  string   `yaml:"kind"`
	Rect  RectSpec `yaml:"rect"`
	Enter string   `yaml:"enter"`
	Exit  string   `yaml:"exit"`
	// Target names a listener registered by the game and Script a tengo
	// listener; with neither the event goes to whichever probe entered.
	Target string    `yaml:"target"`
	Script string    `yaml:"script"`
	Color  YAMLColor `yaml:"color"`
}

type MonsterSpec struct {
	Name   string      `yaml:"name"`
	Path   []PointSpec `yaml:"path"`
	Period float64     `yaml:"period"`
	Radius float64     `yaml:"radius"`
	Health int         `yaml:"health"`
	Attack HitboxSpec  `yaml:"attack"`
}

type HitboxSpec struct {
	Width          float64 `yaml:"width"`
	Height         float64 `yaml:"height"`
	OffsetX        float64 `yaml:"offset_x"`
	OffsetY        float64 `yaml:"offset_y"`
	Damage         int     `yaml:"damage"`
	CooldownFrames int     `yaml:"cooldown_frames"`
}

func (h HitboxSpec) check() error {
	return checkSize(h.Width, h.Height, h.OffsetX, h.OffsetY)
}

// Local returns the hitbox rect in its owner's local space.
func (h HitboxSpec) Local() cp.BB {
	return cp.BB{L: h.OffsetX, B: h.OffsetY, R: h.OffsetX + h.Width, T: h.OffsetY + h.Height}
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
