package core

import (
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/scenes"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// trackFunc registers a freshly created net entity for syncing.
type trackFunc func(entity *donburi.Entity, comp donburi.IComponentType, interp bool) error

func networkSync(world donburi.World) trackFunc {
	return func(entity *donburi.Entity, comp donburi.IComponentType, interp bool) error {
		if interp {
			return srvsync.NetworkSync(world, entity, srvsync.WithInterp(comp))
		}
		return srvsync.NetworkSync(world, entity, comp)
	}
}

// Mirror copies the arena's simulation into the networked world, one net
// entity per fighter and projectile plus a match singleton.
type Mirror struct {
	world       donburi.World
	track       trackFunc
	fighters    map[combat.FighterID]donburi.Entity
	projectiles map[donburi.Entity]donburi.Entity
	match       donburi.Entity
	hasMatch    bool
	log         *zap.Logger
}

func NewMirror(world donburi.World, track trackFunc, log *zap.Logger) *Mirror {
	if log == nil {
		log = zap.NewNop()
	}
	return &Mirror{
		world:       world,
		track:       track,
		fighters:    make(map[combat.FighterID]donburi.Entity),
		projectiles: make(map[donburi.Entity]donburi.Entity),
		log:         log,
	}
}

// Sync brings the net world up to date with a.
func (m *Mirror) Sync(a *scenes.Arena) {
	m.syncMatch(a)

	seen := make(map[combat.FighterID]bool)
	for _, v := range a.Sim.Fighters() {
		id := combat.FighterID(v.FighterID)
		seen[id] = true
		e, ok := m.fighters[id]
		if !ok || !m.world.Valid(e) {
			e, ok = m.create(netcomponents.NetFighter, true)
			if !ok {
				continue
			}
			m.fighters[id] = e
		}
		netcomponents.NetFighter.SetValue(m.world.Entry(e), v)
	}
	for id, e := range m.fighters {
		if !seen[id] {
			m.remove(e)
			delete(m.fighters, id)
		}
	}

	live := make(map[donburi.Entity]bool)
	for _, p := range a.Sim.Projectiles() {
		live[p.Entity] = true
		e, ok := m.projectiles[p.Entity]
		if !ok || !m.world.Valid(e) {
			e, ok = m.create(netcomponents.NetProjectile, true)
			if !ok {
				continue
			}
			m.projectiles[p.Entity] = e
		}
		netcomponents.NetProjectile.SetValue(m.world.Entry(e), p.Data)
	}
	for simEntity, e := range m.projectiles {
		if !live[simEntity] {
			m.remove(e)
			delete(m.projectiles, simEntity)
		}
	}
}

func (m *Mirror) syncMatch(a *scenes.Arena) {
	if !m.hasMatch || !m.world.Valid(m.match) {
		e, ok := m.create(netcomponents.NetMatch, false)
		if !ok {
			return
		}
		m.match, m.hasMatch = e, true
	}
	netcomponents.NetMatch.SetValue(m.world.Entry(m.match), a.NetMatch())
}

func (m *Mirror) create(comp donburi.IComponentType, interp bool) (donburi.Entity, bool) {
	e := m.world.Create(comp)
	if err := m.track(&e, comp, interp); err != nil {
		m.log.Warn("failed to set up network sync", zap.Error(err))
		m.world.Remove(e)
		return 0, false
	}
	return e, true
}

func (m *Mirror) remove(e donburi.Entity) {
	if m.world.Valid(e) {
		m.world.Remove(e)
	}
}

// Reset drops every projectile entity. The simulation that owned them is
// gone after a restart and its entity ids mean nothing.
func (m *Mirror) Reset() {
	for simEntity, e := range m.projectiles {
		m.remove(e)
		delete(m.projectiles, simEntity)
	}
}

// NetworkID returns the synced id of a fighter's net entity.
func (m *Mirror) NetworkID(id combat.FighterID) (esync.NetworkId, bool) {
	e, ok := m.fighters[id]
	if !ok || !m.world.Valid(e) {
		return 0, false
	}
	nid := esync.GetNetworkId(m.world.Entry(e))
	if nid == nil {
		return 0, false
	}
	return *nid, true
}

// Len is the number of mirrored fighters and projectiles.
func (m *Mirror) Len() (fighters, projectiles int) {
	return len(m.fighters), len(m.projectiles)
}
