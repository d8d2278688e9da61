package prefabs

import (
	"errors"
	"fmt"

	"github.com/milk9111/triggers/interaction"
	"github.com/sirupsen/logrus"
)

// ListenerResolver returns the fixed listener for a trigger, or nil to
// route its events to the probe that entered.
type ListenerResolver func(t TriggerSpec) (interaction.Listener, error)

// Trigger is a region built from a TriggerSpec.
type Trigger struct {
	Spec   TriggerSpec
	Region *interaction.Region
}

// BuildTriggers turns the stage's trigger specs into regions. The regions
// are not registered; callers add them to the stage's router.
func BuildTriggers(stage *StageSpec, resolve ListenerResolver) ([]Trigger, error) {
	if stage == nil {
		return nil, errors.New("prefabs: nil stage")
	}
	if err := stage.Validate(); err != nil {
		return nil, err
	}

	out := make([]Trigger, 0, len(stage.Triggers))
	for _, t := range stage.Triggers {
		var target interaction.Listener
		if resolve != nil {
			l, err := resolve(t)
			if err != nil {
				return nil, fmt.Errorf("prefabs: trigger %s: %w", t.Name, err)
			}
			target = l
		}
		region := interaction.NewRegion(interaction.RegionConfig{
			Name:       t.Name,
			Rect:       t.Rect.BB(),
			Target:     target,
			EnterEvent: t.Enter,
			ExitEvent:  t.Exit,
		})
		out = append(out, Trigger{Spec: t, Region: region})
	}
	return out, nil
}

// RouterConfig sizes a router for the stage.
func (s *StageSpec) RouterConfig(log logrus.FieldLogger) interaction.RouterConfig {
	return interaction.RouterConfig{
		GridCols: s.Grid.Cols,
		GridRows: s.Grid.Rows,
		Logger:   log,
	}
}
