package systems

import (
	"fmt"
	"sort"
	"time"

	"github.com/automoto/arena-mp/bots"
	"github.com/automoto/arena-mp/chardef"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/physics"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/automoto/arena-mp/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// Sim is the simulation context owned by the tick loop. Nothing outside the
// loop mutates it, and every tick runs its systems in a fixed order.
type Sim struct {
	ECS       *ecs.ECS
	World     *physics.World
	Cooldowns *combat.CooldownTable
	Batches   *combat.BatchQueue
	Log       *zap.Logger

	// Now is the simulation clock, advanced by Step.
	Now           time.Duration
	BufferTimeout time.Duration
	HealthBarEase time.Duration

	// BotsActive lets scripted fighters act. While unset they hold nothing.
	BotsActive bool

	dt       float64
	fighters map[combat.FighterID]donburi.Entity
	inputs   map[combat.FighterID]components.Buttons
	bots     map[combat.FighterID]*bots.Brain
	nav      *bots.NavGrid
	anchors  map[anchorKey]gamemath.Vec
}

// NewSim builds an empty arena using the current config values.
func NewSim(log *zap.Logger) *Sim {
	if log == nil {
		log = zap.NewNop()
	}
	e := ecs.NewECS(donburi.NewWorld())
	space := factory.CreateSpace(e, gamemath.V(0, cfg.Physics.Gravity), cfg.Physics.Iterations)

	s := &Sim{
		ECS:           e,
		World:         components.Space.Get(space).World,
		Cooldowns:     combat.NewCooldownTable(),
		Batches:       combat.NewBatchQueue(),
		Log:           log,
		BufferTimeout: cfg.Combat.BufferTimeout,
		HealthBarEase: cfg.Combat.HealthBarEase,
		fighters:      make(map[combat.FighterID]donburi.Entity),
		inputs:        make(map[combat.FighterID]components.Buttons),
		bots:          make(map[combat.FighterID]*bots.Brain),
		anchors:       make(map[anchorKey]gamemath.Vec),
	}

	// Order is load-bearing: attacks read this tick's input, deferred batches
	// run after the attacks that created them, sync runs after the physics
	// step, and contacts are resolved against synced state.
	e.AddSystem(s.updateBots)
	e.AddSystem(s.updateInput)
	e.AddSystem(s.updateAttacks)
	e.AddSystem(s.updateDeferred)
	e.AddSystem(s.updateCooldowns)
	e.AddSystem(s.updatePhysics)
	e.AddSystem(s.updateSync)
	e.AddSystem(s.updateCollisions)
	e.AddSystem(s.updateDominance)
	e.AddSystem(s.updateLifetimes)
	e.AddSystem(s.updateDespawn)
	e.AddSystem(s.updateHealthBars)
	return s
}

// Step advances the simulation by dt seconds.
func (s *Sim) Step(dt float64) {
	s.dt = dt
	s.Now += time.Duration(dt * float64(time.Second))
	s.ECS.Update()
}

// LoadArena adds the level's walls and death zones.
func (s *Sim) LoadArena(level *leveldata.CollisionData) error {
	if err := factory.CreateArena(s.ECS, level); err != nil {
		return err
	}
	s.nav = bots.NewNavGrid(level, cfg.Bot.NavCell)
	return nil
}

// AddFighter spawns a fighter. Ids must be unique for the match.
func (s *Sim) AddFighter(id combat.FighterID, name string, ch *chardef.Character, pos gamemath.Vec) (*donburi.Entry, error) {
	if _, taken := s.fighters[id]; taken {
		return nil, fmt.Errorf("fighter %d already spawned", id)
	}
	entry, err := factory.CreateFighter(s.ECS, id, name, ch, pos)
	if err != nil {
		return nil, fmt.Errorf("spawn fighter %d (%s): %w", id, ch.Name, err)
	}
	s.fighters[id] = entry.Entity()
	s.Log.Info("fighter spawned",
		zap.Uint64("fighter", uint64(id)),
		zap.String("character", ch.Name),
		zap.String("name", name))
	return entry, nil
}

// RemoveFighter despawns a fighter and everything bound to it right away.
func (s *Sim) RemoveFighter(id combat.FighterID) {
	entry, ok := s.Fighter(id)
	if !ok {
		return
	}
	s.despawn(entry)
}

// Fighter returns the live entry for id.
func (s *Sim) Fighter(id combat.FighterID) (*donburi.Entry, bool) {
	ent, ok := s.fighters[id]
	if !ok {
		return nil, false
	}
	if !s.ECS.World.Valid(ent) {
		delete(s.fighters, id)
		return nil, false
	}
	return s.ECS.World.Entry(ent), true
}

// FighterIDs lists live fighters in ascending order.
func (s *Sim) FighterIDs() []combat.FighterID {
	ids := make([]combat.FighterID, 0, len(s.fighters))
	for id := range s.fighters {
		if _, ok := s.Fighter(id); ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// SetInput stores the buttons held by a fighter for the next tick. The last
// snapshot stays in effect until replaced.
func (s *Sim) SetInput(id combat.FighterID, b components.Buttons) {
	s.inputs[id] = b
}

func (s *Sim) updatePhysics(_ *ecs.ECS) {
	if s.dt > 0 {
		s.World.Step(s.dt)
	}
}

func (s *Sim) updateCooldowns(_ *ecs.ECS) {
	s.Cooldowns.Prune(s.Now)
}
