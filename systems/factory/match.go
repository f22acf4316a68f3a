package factory

import (
	"github.com/automoto/arena-mp/archetypes"
	"github.com/automoto/arena-mp/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateMatch spawns the round singleton that the round machine mirrors into.
func CreateMatch(ecs *ecs.ECS, id, phase string) *donburi.Entry {
	match := archetypes.Match.Spawn(ecs)
	components.Match.SetValue(match, components.MatchData{ID: id, Phase: phase})
	return match
}
