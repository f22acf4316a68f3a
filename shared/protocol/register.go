package protocol

import (
	"github.com/automoto/arena-mp/shared/netcomponents"
	"github.com/leap-fish/necs/esync"
)

// Sync ID constants - ID 1 is reserved by necs for NetworkId
const (
	SyncIDNetFighter    uint = 10
	SyncIDNetProjectile uint = 11
	SyncIDNetMatch      uint = 12
)

// Interpolation IDs (uint8 for WithInterpFn)
const (
	InterpIDNetFighter    uint8 = 10
	InterpIDNetProjectile uint8 = 11
)

// RegisterComponents registers all network components with necs for serialization.
// This must be called by both server and client before any network operations.
func RegisterComponents() error {
	if err := esync.RegisterComponent(
		SyncIDNetFighter,
		netcomponents.NetFighterData{},
		netcomponents.NetFighter,
		esync.WithInterpFn(InterpIDNetFighter, netcomponents.LerpNetFighter),
	); err != nil {
		return err
	}

	if err := esync.RegisterComponent(
		SyncIDNetProjectile,
		netcomponents.NetProjectileData{},
		netcomponents.NetProjectile,
		esync.WithInterpFn(InterpIDNetProjectile, netcomponents.LerpNetProjectile),
	); err != nil {
		return err
	}

	// Match: no interpolation (discrete state)
	if err := esync.RegisterComponent(
		SyncIDNetMatch,
		netcomponents.NetMatchData{},
		netcomponents.NetMatch,
	); err != nil {
		return err
	}

	return nil
}
