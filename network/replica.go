package network

import (
	"sort"

	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Entity is one decoded snapshot entry.
type Entity struct {
	ID         esync.NetworkId
	Components []any
}

// Decode turns a raw snapshot into component values. Components that fail to
// decode are skipped.
func Decode(snapshot esync.WorldSnapshot, log *zap.Logger) []Entity {
	out := make([]Entity, 0, len(snapshot))
	for _, ent := range snapshot {
		e := Entity{ID: ent.Id}
		for _, componentBytes := range ent.State {
			instance, err := esync.Mapper.Deserialize(componentBytes)
			if err != nil {
				if log != nil {
					log.Debug("skipping undecodable component", zap.Error(err))
				}
				continue
			}
			e.Components = append(e.Components, instance)
		}
		out = append(out, e)
	}
	return out
}

// Replica mirrors the server's synced entities into a local world and blends
// fighters and projectiles between snapshots.
type Replica struct {
	world    donburi.World
	tickRate int
	present  map[esync.NetworkId]bool
}

func NewReplica(world donburi.World, tickRate int) *Replica {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &Replica{
		world:    world,
		tickRate: tickRate,
		present:  make(map[esync.NetworkId]bool),
	}
}

func (r *Replica) World() donburi.World {
	return r.world
}

// Apply makes the world match a full snapshot: new ids are created, known
// ids are updated and ids missing from the snapshot are removed.
func (r *Replica) Apply(entities []Entity) {
	clear(r.present)

	for _, ent := range entities {
		r.present[ent.ID] = true

		entity := esync.FindByNetworkId(r.world, ent.ID)
		if !r.world.Valid(entity) {
			entity = r.world.Create(esync.NetworkIdComponent, components.NetInterp)
			esync.NetworkIdComponent.SetValue(r.world.Entry(entity), ent.ID)
		}
		entry := r.world.Entry(entity)
		for _, data := range ent.Components {
			r.applyComponent(entry, data)
		}
	}

	var stale []*donburi.Entry
	esync.NetworkEntityQuery.Each(r.world, func(entry *donburi.Entry) {
		id := esync.GetNetworkId(entry)
		if id == nil {
			return
		}
		if !r.present[*id] {
			stale = append(stale, entry)
		}
	})
	for _, entry := range stale {
		entry.Remove()
	}
}

func (r *Replica) applyComponent(entry *donburi.Entry, data any) {
	switch v := data.(type) {
	case netcomponents.NetFighterData:
		fresh := !entry.HasComponent(netcomponents.NetFighter)
		if fresh {
			entry.AddComponent(netcomponents.NetFighter)
		}
		interp := components.NetInterp.Get(entry)
		if fresh || !interp.Initialized {
			interp.Fighter = v
			interp.T = 1
			interp.Initialized = true
		} else {
			interp.Fighter = *netcomponents.LerpNetFighter(interp.Fighter, *netcomponents.NetFighter.Get(entry), interp.T)
			interp.T = 0
		}
		netcomponents.NetFighter.SetValue(entry, v)
	case netcomponents.NetProjectileData:
		fresh := !entry.HasComponent(netcomponents.NetProjectile)
		if fresh {
			entry.AddComponent(netcomponents.NetProjectile)
		}
		interp := components.NetInterp.Get(entry)
		if fresh || !interp.Initialized {
			interp.Projectile = v
			interp.T = 1
			interp.Initialized = true
		} else {
			interp.Projectile = *netcomponents.LerpNetProjectile(interp.Projectile, *netcomponents.NetProjectile.Get(entry), interp.T)
			interp.T = 0
		}
		netcomponents.NetProjectile.SetValue(entry, v)
	case netcomponents.NetMatchData:
		if !entry.HasComponent(netcomponents.NetMatch) {
			entry.AddComponent(netcomponents.NetMatch)
		}
		netcomponents.NetMatch.SetValue(entry, v)
	}
}

// Advance moves every blend forward by dt seconds. A blend completes in one
// server tick.
func (r *Replica) Advance(dt float64) {
	step := dt * float64(r.tickRate)
	components.NetInterp.Each(r.world, func(entry *donburi.Entry) {
		interp := components.NetInterp.Get(entry)
		interp.T = min(interp.T+step, 1)
	})
}

// Fighters returns the blended fighter states ordered by fighter id.
func (r *Replica) Fighters() []netcomponents.NetFighterData {
	var out []netcomponents.NetFighterData
	netcomponents.NetFighter.Each(r.world, func(entry *donburi.Entry) {
		target := *netcomponents.NetFighter.Get(entry)
		interp := components.NetInterp.Get(entry)
		out = append(out, *netcomponents.LerpNetFighter(interp.Fighter, target, interp.T))
	})
	sort.Slice(out, func(i, j int) bool { return out[i].FighterID < out[j].FighterID })
	return out
}

// Projectiles returns the blended projectile states.
func (r *Replica) Projectiles() []netcomponents.NetProjectileData {
	var out []netcomponents.NetProjectileData
	netcomponents.NetProjectile.Each(r.world, func(entry *donburi.Entry) {
		target := *netcomponents.NetProjectile.Get(entry)
		interp := components.NetInterp.Get(entry)
		out = append(out, *netcomponents.LerpNetProjectile(interp.Projectile, target, interp.T))
	})
	return out
}

// Match returns the replicated match singleton, if one has arrived.
func (r *Replica) Match() (netcomponents.NetMatchData, bool) {
	entry, ok := netcomponents.NetMatch.First(r.world)
	if !ok {
		return netcomponents.NetMatchData{}, false
	}
	return *netcomponents.NetMatch.Get(entry), true
}
