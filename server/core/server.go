package core

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/automoto/arena-mp/bots"
	"github.com/automoto/arena-mp/chardef"
	"github.com/automoto/arena-mp/combat"
	"github.com/automoto/arena-mp/components"
	"github.com/automoto/arena-mp/scenes"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/leap-fish/necs/esync/srvsync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"github.com/yohamta/donburi"
	"go.uber.org/zap"
)

// Options are the server settings that do not live in the arena.
type Options struct {
	Name     string
	Version  string
	TickRate int
	// Results is how long a finished round is shown before restarting.
	Results time.Duration
}

// sender is the part of a connected client the server talks to.
type sender interface {
	SendMessage(msg any) error
}

type peer struct {
	conn    sender
	fighter combat.FighterID
	joined  bool
	lastSeq uint32
}

// Server manages the game state and client connections
type Server struct {
	world     donburi.World
	arena     *scenes.Arena
	mirror    *Mirror
	loop      *GameLoop
	transport *transports.WsServerTransport
	commands  commandQueue
	opts      Options
	log       *zap.Logger

	// Everything below is owned by the tick goroutine.
	peers         map[string]*peer
	nextFighter   combat.FighterID
	phase         string
	overFor       time.Duration
	reloadPending bool

	players atomic.Int32
}

// NewServer wraps arena. The server owns the arena from here on; callers
// must not touch it once Start has been called.
func NewServer(arena *scenes.Arena, opts Options, log *zap.Logger) *Server {
	world := donburi.NewWorld()
	s := newServer(world, arena, opts, log, networkSync(world))

	// Set up the world for esync
	srvsync.UseEsync(world)

	s.setupRouterCallbacks()
	return s
}

func newServer(world donburi.World, arena *scenes.Arena, opts Options, log *zap.Logger, track trackFunc) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{
		world: world,
		arena: arena,
		opts:  opts,
		log:   log,
		peers: make(map[string]*peer),
		phase: arena.Round.Phase(),
	}
	s.mirror = NewMirror(world, track, log)
	s.loop = NewGameLoop(s, opts.TickRate)
	return s
}

// Start begins the server on the given port
func (s *Server) Start(port uint) error {
	go s.loop.Run()

	s.transport = transports.NewWsServerTransport(port, "", nil)
	return s.transport.Start()
}

// Stop gracefully shuts down the server
func (s *Server) Stop() {
	s.loop.Stop()
}

func (s *Server) setupRouterCallbacks() {
	router.OnConnect(func(client *router.NetworkClient) {
		s.commands.push(func() { s.handleConnect(client.Id(), client) })
	})

	router.OnDisconnect(func(client *router.NetworkClient, err error) {
		if err != nil {
			s.log.Info("client disconnected", zap.String("client", client.Id()), zap.Error(err))
		}
		s.commands.push(func() { s.handleDisconnect(client.Id()) })
	})

	router.On(func(client *router.NetworkClient, req messages.JoinRequest) {
		s.commands.push(func() { s.handleJoin(client.Id(), req) })
	})

	router.On(func(client *router.NetworkClient, input messages.FighterInput) {
		s.commands.push(func() { s.handleInput(client.Id(), input) })
	})

	router.OnError(func(client *router.NetworkClient, err error) {
		s.log.Warn("client error", zap.String("client", client.Id()), zap.Error(err))
	})
}

// AddBot seats a scripted fighter. It must be called before Start.
func (s *Server) AddBot(name, character string, script *bots.Script) error {
	s.nextFighter++
	if err := s.arena.JoinBot(s.nextFighter, name, character, script); err != nil {
		return err
	}
	s.log.Info("bot seated",
		zap.Uint64("fighter", uint64(s.nextFighter)),
		zap.String("script", script.Name),
		zap.String("character", character))
	return nil
}

// WatchCharacters reloads the character catalog before the next round
// whenever w reports a change.
func (s *Server) WatchCharacters(w *chardef.Watcher) {
	go func() {
		for {
			select {
			case name, ok := <-w.Events:
				if !ok {
					return
				}
				s.log.Info("character file changed", zap.String("file", name))
				s.commands.push(func() { s.reloadPending = true })
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				s.log.Warn("character watcher error", zap.Error(err))
			}
		}
	}()
}

func (s *Server) handleConnect(id string, conn sender) {
	s.peers[id] = &peer{conn: conn}
	s.log.Info("client connected", zap.String("client", id))
}

func (s *Server) handleDisconnect(id string) {
	p, ok := s.peers[id]
	if !ok {
		return
	}
	delete(s.peers, id)
	if p.joined {
		s.arena.Leave(p.fighter)
		s.players.Add(-1)
	}
	s.log.Info("client removed", zap.String("client", id))
}

func (s *Server) handleJoin(id string, req messages.JoinRequest) {
	p, ok := s.peers[id]
	if !ok {
		return
	}
	if p.joined {
		s.log.Debug("duplicate join request", zap.String("client", id))
		return
	}
	if s.opts.Version != "" && req.Version != s.opts.Version {
		s.reject(p, fmt.Sprintf("version mismatch: server %s, client %s", s.opts.Version, req.Version))
		return
	}

	character := req.Character
	if character == "" {
		if names := s.arena.Catalog.Names(); len(names) > 0 {
			character = names[0]
		}
	}

	s.nextFighter++
	fid := s.nextFighter
	if err := s.arena.Join(fid, req.PlayerName, character); err != nil {
		s.reject(p, err.Error())
		return
	}
	p.fighter, p.joined = fid, true
	s.players.Add(1)

	s.mirror.Sync(s.arena)
	nid, _ := s.mirror.NetworkID(fid)
	err := p.conn.SendMessage(messages.JoinAccepted{
		NetworkID:  nid,
		FighterID:  uint64(fid),
		ServerName: s.opts.Name,
		TickRate:   s.opts.TickRate,
		Arena:      s.arena.Level.Name,
		Characters: s.arena.Catalog.Names(),
	})
	if err != nil {
		s.log.Warn("failed to send join accepted", zap.String("client", id), zap.Error(err))
	}
	s.log.Info("client joined",
		zap.String("client", id),
		zap.Uint64("fighter", uint64(fid)),
		zap.String("character", character),
		zap.String("name", req.PlayerName))
}

func (s *Server) reject(p *peer, reason string) {
	s.log.Info("join rejected", zap.String("reason", reason))
	if err := p.conn.SendMessage(messages.JoinRejected{Reason: reason}); err != nil {
		s.log.Warn("failed to send join rejected", zap.Error(err))
	}
}

func (s *Server) handleInput(id string, in messages.FighterInput) {
	p, ok := s.peers[id]
	if !ok || !p.joined {
		return
	}
	if in.Sequence != 0 && in.Sequence <= p.lastSeq {
		s.log.Debug("stale input dropped",
			zap.Uint64("fighter", uint64(p.fighter)),
			zap.Uint32("sequence", in.Sequence))
		return
	}
	p.lastSeq = in.Sequence
	s.arena.SetInput(p.fighter, components.Buttons(in.Held()))
}

// Tick runs queued commands, steps the arena and mirrors the result.
func (s *Server) Tick(dt float64) {
	s.commands.drain()

	before := s.arena.Sim.FighterIDs()
	s.arena.Update(dt)
	s.announceKnockouts(before)

	phase := s.arena.Round.Phase()
	if phase != s.phase {
		s.onPhase(phase)
		s.phase = phase
	}
	if phase == scenes.PhaseOver {
		s.overFor += time.Duration(dt * float64(time.Second))
		if s.overFor >= s.opts.Results {
			s.restart()
		}
	}

	s.mirror.Sync(s.arena)
}

func (s *Server) announceKnockouts(before []combat.FighterID) {
	alive := make(map[combat.FighterID]bool)
	for _, id := range s.arena.Sim.FighterIDs() {
		alive[id] = true
	}
	for _, id := range before {
		if !alive[id] {
			s.broadcast(messages.FighterLeftEvent{FighterID: uint64(id), Name: s.seatName(id)})
		}
	}
}

func (s *Server) seatName(id combat.FighterID) string {
	for _, seat := range s.arena.Seats() {
		if seat.ID == id {
			return seat.Name
		}
	}
	return ""
}

func (s *Server) onPhase(phase string) {
	match := s.arena.Match()
	switch phase {
	case scenes.PhaseFighting:
		s.broadcast(messages.RoundStartEvent{MatchID: match.ID})
	case scenes.PhaseOver:
		s.overFor = 0
		s.broadcast(messages.RoundOverEvent{
			MatchID:   match.ID,
			Winner:    uint64(match.Winner),
			HasWinner: match.HasWinner,
			Draw:      match.Draw,
		})
	}
}

func (s *Server) restart() {
	if s.reloadPending {
		if err := s.arena.Catalog.Reload(); err != nil {
			s.log.Warn("character reload failed, keeping previous set", zap.Error(err))
		}
		s.reloadPending = false
	}
	if err := s.arena.Restart(); err != nil {
		s.log.Error("restart failed", zap.Error(err))
		return
	}
	s.mirror.Reset()
	s.overFor = 0
	s.phase = s.arena.Round.Phase()
}

func (s *Server) broadcast(msg any) {
	for id, p := range s.peers {
		if err := p.conn.SendMessage(msg); err != nil {
			s.log.Debug("broadcast failed", zap.String("client", id), zap.Error(err))
		}
	}
}

// World returns the networked ECS world
func (s *Server) World() donburi.World {
	return s.world
}

// PlayerCount returns the number of joined clients. Safe from any goroutine.
func (s *Server) PlayerCount() int {
	return int(s.players.Load())
}
