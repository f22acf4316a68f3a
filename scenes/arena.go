// Package scenes holds the match scene: an arena level, its roster and the
// round lifecycle around a Sim. Nothing here renders, so the headless server
// and the local client share it.
package scenes

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/automoto/arena-mp/bots"
	"github.com/automoto/arena-mp/chardef"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/automoto/arena-mp/systems"
	"github.com/automoto/arena-mp/systems/factory"
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

var (
	ErrArenaFull = errors.New("arena is full")
	ErrTaken     = errors.New("fighter id already joined")
)

// Seat is one roster entry. It survives rounds; the fighter is respawned
// from it on every restart.
type Seat struct {
	ID        combat.FighterID
	Name      string
	Character string
	Bot       *bots.Script
	Spawn     int
}

// Arena runs rounds on one level.
type Arena struct {
	ID      uuid.UUID
	Sim     *systems.Sim
	Round   *Round
	Level   *leveldata.CollisionData
	Catalog *chardef.Catalog

	grid   *leveldata.SpawnGrid
	seats  map[combat.FighterID]*Seat
	match  *donburi.Entry
	rounds int
	root   *zap.Logger
	log    *zap.Logger
}

func NewArena(catalog *chardef.Catalog, level *leveldata.CollisionData, log *zap.Logger) (*Arena, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if len(level.SpawnPoints) == 0 {
		return nil, fmt.Errorf("arena %s: no spawn points", level.Name)
	}
	a := &Arena{
		Level:   level,
		Catalog: catalog,
		grid:    leveldata.NewSpawnGrid(level),
		seats:   make(map[combat.FighterID]*Seat),
		root:    log.With(zap.String("arena", level.Name)),
	}
	a.setID(uuid.New())
	a.Round = NewRound(cfg.Match.Countdown, a.root)
	if err := a.buildSim(); err != nil {
		return nil, err
	}
	return a, nil
}

func (a *Arena) setID(id uuid.UUID) {
	a.ID = id
	a.log = a.root.With(zap.String("match", id.String()))
}

func (a *Arena) buildSim() error {
	a.Sim = systems.NewSim(a.log)
	if err := a.Sim.LoadArena(a.Level); err != nil {
		return fmt.Errorf("load arena %s: %w", a.Level.Name, err)
	}
	a.match = factory.CreateMatch(a.Sim.ECS, a.ID.String(), a.Round.Phase())
	return nil
}

// Join seats a human fighter and spawns it right away.
func (a *Arena) Join(id combat.FighterID, name, character string) error {
	return a.join(&Seat{ID: id, Name: name, Character: character})
}

// JoinBot seats a fighter driven by script.
func (a *Arena) JoinBot(id combat.FighterID, name, character string, script *bots.Script) error {
	return a.join(&Seat{ID: id, Name: name, Character: character, Bot: script})
}

func (a *Arena) join(seat *Seat) error {
	if _, ok := a.seats[seat.ID]; ok {
		return fmt.Errorf("join %d: %w", seat.ID, ErrTaken)
	}
	if cfg.Match.MaxFighters > 0 && len(a.seats) >= cfg.Match.MaxFighters {
		return fmt.Errorf("join %d: %w", seat.ID, ErrArenaFull)
	}
	seat.Spawn = a.freeSpawn()
	if err := a.spawn(seat); err != nil {
		return err
	}
	a.seats[seat.ID] = seat
	return nil
}

// freeSpawn picks the lowest spawn index no seat holds, wrapping when there
// are more fighters than points.
func (a *Arena) freeSpawn() int {
	used := make(map[int]bool, len(a.seats))
	for _, s := range a.seats {
		used[s.Spawn] = true
	}
	for i := range a.Level.SpawnPoints {
		if !used[i] {
			return i
		}
	}
	return len(a.seats) % len(a.Level.SpawnPoints)
}

// SpawnPoint returns the clear spawn position for index i.
func (a *Arena) SpawnPoint(i int) gamemath.Vec {
	p := a.Level.SpawnPoints[i%len(a.Level.SpawnPoints)].Vec()
	at, ok := a.grid.SafeSpawn(p, cfg.Match.FighterW, cfg.Match.FighterH, cfg.Match.SpawnNudge, cfg.Match.SpawnNudgeMax)
	if !ok {
		a.log.Warn("spawn point blocked", zap.Int("spawn", i))
	}
	return at
}

func (a *Arena) spawn(seat *Seat) error {
	ch, err := a.Catalog.Get(seat.Character)
	if err != nil {
		return fmt.Errorf("join %d: %w", seat.ID, err)
	}
	if _, err := a.Sim.AddFighter(seat.ID, seat.Name, ch, a.SpawnPoint(seat.Spawn)); err != nil {
		return err
	}
	if seat.Bot != nil {
		a.Sim.AddBot(seat.ID, seat.Bot.NewBrain())
	}
	return nil
}

// Leave drops a seat and despawns its fighter.
func (a *Arena) Leave(id combat.FighterID) {
	if _, ok := a.seats[id]; !ok {
		return
	}
	delete(a.seats, id)
	a.Sim.RemoveFighter(id)
	a.log.Info("fighter left", zap.Uint64("fighter", uint64(id)))
}

// Seats lists the roster ordered by id.
func (a *Arena) Seats() []Seat {
	out := make([]Seat, 0, len(a.seats))
	for _, s := range a.seats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// SetInput forwards a fighter's buttons while the round is being fought.
// Outside of it the fighter holds nothing.
func (a *Arena) SetInput(id combat.FighterID, b components.Buttons) {
	if !a.Round.Fighting() {
		b = components.Buttons{}
	}
	a.Sim.SetInput(id, b)
}

// Update steps the simulation and the round by dt seconds.
func (a *Arena) Update(dt float64) {
	if !a.Round.Fighting() {
		for _, s := range a.seats {
			if !a.Sim.IsBot(s.ID) {
				a.Sim.SetInput(s.ID, components.Buttons{})
			}
		}
	}
	a.Sim.BotsActive = a.Round.Fighting()
	a.Sim.Step(dt)
	a.Round.Update(time.Duration(dt*float64(time.Second)), a.Sim.FighterIDs())
	a.mirror()
}

func (a *Arena) mirror() {
	if !a.match.Valid() {
		return
	}
	m := components.Match.Get(a.match)
	m.ID = a.ID.String()
	m.Phase = a.Round.Phase()
	m.Countdown = a.Round.Remaining()
	res, _ := a.Round.Result()
	m.Winner = res.Winner
	m.HasWinner = res.HasWinner
	m.Draw = res.Draw
}

// Match returns the mirrored round state.
func (a *Arena) Match() components.MatchData {
	return *components.Match.Get(a.match)
}

// NetMatch is Match in its replicated form.
func (a *Arena) NetMatch() netcomponents.NetMatchData {
	m := a.Match()
	return netcomponents.NetMatchData{
		MatchID:   m.ID,
		Arena:     a.Level.Name,
		Phase:     m.Phase,
		Countdown: m.Countdown.Seconds(),
		Winner:    uint64(m.Winner),
		HasWinner: m.HasWinner,
		Draw:      m.Draw,
	}
}

// Restart begins a new round with a fresh simulation and match id. Every
// seat is respawned with its character as currently defined in the catalog.
func (a *Arena) Restart() error {
	a.rounds++
	a.setID(uuid.New())
	a.Round.Reset()
	if err := a.buildSim(); err != nil {
		return err
	}
	for _, seat := range a.Seats() {
		s := seat
		if err := a.spawn(&s); err != nil {
			a.log.Warn("seat dropped on restart", zap.Uint64("fighter", uint64(s.ID)), zap.Error(err))
			delete(a.seats, s.ID)
		}
	}
	a.log.Info("round restarted", zap.Int("round", a.rounds))
	return nil
}
