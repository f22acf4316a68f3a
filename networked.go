package main

import (
	"github.com/automoto/arena-mp/assets"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/controls"
	"github.com/automoto/arena-mp/network"
	"github.com/automoto/arena-mp/render"
	"github.com/automoto/arena-mp/settings"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// NetworkedScene draws a match hosted by a server and sends this player's
// buttons to it.
type NetworkedScene struct {
	client  *network.Client
	replica *network.Replica
	level   *leveldata.CollisionData
	input   *controls.Seat
	status  string
	log     *zap.Logger
}

func NewNetworkedScene(address, name string, prefs settings.Settings, log *zap.Logger) (*NetworkedScene, error) {
	keys, err := controls.Parse(prefs.Bindings[0])
	if err != nil {
		return nil, err
	}
	ns := &NetworkedScene{
		client: network.NewClient(log),
		input:  &controls.Seat{Keys: keys},
		status: "Connecting to " + address,
		log:    log,
	}
	controls.AssignGamepads([]*controls.Seat{ns.input})
	ns.client.Connect(address, cfg.Server.Version, name, prefs.Characters[0])
	return ns, nil
}

func (ns *NetworkedScene) Update() error {
	switch ns.client.State() {
	case network.StateError:
		ns.status = ns.client.LastError().Error()
		return nil
	case network.StateDisconnected:
		if ns.replica != nil {
			ns.status = "Disconnected"
		}
		return nil
	case network.StateJoinedGame:
	default:
		return nil
	}

	if ns.replica == nil {
		level, err := assets.Level(ns.client.Arena())
		if err != nil {
			ns.status = err.Error()
			return nil
		}
		ns.level = level
		ns.replica = network.NewReplica(donburi.NewWorld(), ns.client.TickRate())
		ns.status = ""
	}

	if snap := ns.client.LatestSnapshot(); snap != nil {
		ns.replica.Apply(network.Decode(*snap, ns.log))
	}
	ns.replica.Advance(1 / float64(ebiten.TPS()))

	if err := ns.client.SendInput(ns.input.Poll()); err != nil {
		ns.log.Debug("input not sent", zap.Error(err))
	}

	for _, evt := range ns.client.DrainRoundStarts() {
		ns.log.Info("round started", zap.String("match", evt.MatchID))
	}
	for _, evt := range ns.client.DrainRoundOvers() {
		ns.log.Info("round over", zap.String("match", evt.MatchID),
			zap.Uint64("winner", evt.Winner), zap.Bool("draw", evt.Draw))
	}
	for _, evt := range ns.client.DrainFighterLeft() {
		ns.log.Info("fighter out", zap.Uint64("fighter", evt.FighterID), zap.String("name", evt.Name))
	}
	return nil
}

func (ns *NetworkedScene) Frame() render.Frame {
	if ns.replica == nil {
		return render.Frame{Status: ns.status}
	}
	match, ok := ns.replica.Match()
	return render.Frame{
		Level:       ns.level,
		Fighters:    ns.replica.Fighters(),
		Projectiles: ns.replica.Projectiles(),
		Match:       match,
		HasMatch:    ok,
		Status:      ns.status,
	}
}

func (ns *NetworkedScene) Close() {
	ns.client.Disconnect()
}
