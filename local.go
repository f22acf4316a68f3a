package main

import (
	"fmt"
	"time"

	"github.com/automoto/arena-mp/assets"
	"github.com/automoto/arena-mp/chardef"
	"github.com/automoto/arena-mp/combat"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/controls"
	"github.com/automoto/arena-mp/render"
	"github.com/automoto/arena-mp/scenes"
	"github.com/automoto/arena-mp/settings"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// localSeat is a fighter driven from this machine's keyboard or gamepad.
type localSeat struct {
	id    combat.FighterID
	input *controls.Seat
}

// LocalScene runs a match in-process: two seats, each a human or a bot.
type LocalScene struct {
	arena   *scenes.Arena
	humans  []localSeat
	overFor time.Duration
	log     *zap.Logger
}

func NewLocalScene(catalog *chardef.Catalog, prefs settings.Settings, log *zap.Logger) (*LocalScene, error) {
	level, err := assets.Level(prefs.Arena)
	if err != nil {
		return nil, err
	}
	arena, err := scenes.NewArena(catalog, level, log)
	if err != nil {
		return nil, err
	}
	ls := &LocalScene{arena: arena, log: log}

	if err := ls.addHuman(1, "P1", prefs.Characters[0], prefs.Bindings[0]); err != nil {
		return nil, err
	}
	if prefs.VersusBot() {
		scripts, err := assets.Bots()
		if err != nil {
			return nil, err
		}
		script, ok := scripts[prefs.Bot]
		if !ok {
			return nil, fmt.Errorf("unknown bot %q", prefs.Bot)
		}
		if err := arena.JoinBot(2, "CPU", prefs.Characters[1], script); err != nil {
			return nil, err
		}
	} else if err := ls.addHuman(2, "P2", prefs.Characters[1], prefs.Bindings[1]); err != nil {
		return nil, err
	}

	seats := make([]*controls.Seat, len(ls.humans))
	for i := range ls.humans {
		seats[i] = ls.humans[i].input
	}
	controls.AssignGamepads(seats)
	return ls, nil
}

func (ls *LocalScene) addHuman(id combat.FighterID, name, character string, binding settings.Binding) error {
	keys, err := controls.Parse(binding)
	if err != nil {
		return fmt.Errorf("%s bindings: %w", name, err)
	}
	if err := ls.arena.Join(id, name, character); err != nil {
		return err
	}
	ls.humans = append(ls.humans, localSeat{id: id, input: &controls.Seat{Keys: keys}})
	return nil
}

func (ls *LocalScene) Update() error {
	dt := 1 / float64(ebiten.TPS())
	for _, h := range ls.humans {
		ls.arena.SetInput(h.id, h.input.Poll())
	}
	ls.arena.Update(dt)

	if ls.arena.Round.Phase() != scenes.PhaseOver {
		ls.overFor = 0
		return nil
	}
	ls.overFor += time.Duration(dt * float64(time.Second))
	if ls.overFor >= cfg.Match.Results {
		ls.overFor = 0
		return ls.arena.Restart()
	}
	return nil
}

func (ls *LocalScene) Frame() render.Frame {
	views := ls.arena.Sim.Projectiles()
	projectiles := make([]netcomponents.NetProjectileData, len(views))
	for i, v := range views {
		projectiles[i] = v.Data
	}
	return render.Frame{
		Level:       ls.arena.Level,
		Fighters:    ls.arena.Sim.Fighters(),
		Projectiles: projectiles,
		Match:       ls.arena.NetMatch(),
		HasMatch:    true,
		Colliders:   ls.arena.Sim.Colliders(),
	}
}
