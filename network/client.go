package network

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/messages"
	"github.com/coder/websocket"
	"github.com/leap-fish/necs/esync"
	"github.com/leap-fish/necs/router"
	"github.com/leap-fish/necs/transports"
	"go.uber.org/zap"
)

type ClientState int

const (
	StateDisconnected ClientState = iota
	StateConnecting
	StateConnected
	StateJoinedGame
	StateError
)

var ErrNotConnected = errors.New("not connected")

// Client manages a WebSocket connection to the arena server.
// All shared fields are protected by mu (router callbacks run on necs goroutines).
type Client struct {
	mu sync.RWMutex

	state      ClientState
	lastError  error
	networkID  esync.NetworkId
	fighterID  uint64
	serverName string
	tickRate   int
	arena      string
	characters []string
	conn       *websocket.Conn
	sequence   uint32

	snapshotCh chan esync.WorldSnapshot // size-1 buffered; latest wins

	startCh chan messages.RoundStartEvent
	overCh  chan messages.RoundOverEvent
	leftCh  chan messages.FighterLeftEvent

	log *zap.Logger
}

func NewClient(log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		state:      StateDisconnected,
		snapshotCh: make(chan esync.WorldSnapshot, 1),
		startCh:    make(chan messages.RoundStartEvent, 4),
		overCh:     make(chan messages.RoundOverEvent, 4),
		leftCh:     make(chan messages.FighterLeftEvent, 8),
		log:        log.Named("client"),
	}
}

// Connect dials the server in a background goroutine and asks for a seat
// with the given character once the socket is up.
func (c *Client) Connect(address, version, playerName, character string) {
	c.mu.Lock()
	c.state = StateConnecting
	c.lastError = nil
	c.mu.Unlock()

	router.OnConnect(func(_ *router.NetworkClient) {
		c.log.Info("connected to server", zap.String("address", address))
		c.mu.Lock()
		c.state = StateConnected
		c.mu.Unlock()

		err := c.SendMessage(messages.JoinRequest{
			Version:    version,
			PlayerName: playerName,
			Character:  character,
		})
		if err != nil {
			c.setError(fmt.Errorf("send join request: %w", err))
		}
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinAccepted) {
		c.log.Info("join accepted",
			zap.Uint64("fighter", msg.FighterID),
			zap.String("server", msg.ServerName),
			zap.Int("tick_rate", msg.TickRate),
			zap.String("arena", msg.Arena))
		c.mu.Lock()
		c.networkID = msg.NetworkID
		c.fighterID = msg.FighterID
		c.serverName = msg.ServerName
		c.tickRate = msg.TickRate
		c.arena = msg.Arena
		c.characters = msg.Characters
		c.state = StateJoinedGame
		c.mu.Unlock()
	})

	router.On(func(_ *router.NetworkClient, msg messages.JoinRejected) {
		c.log.Warn("join rejected", zap.String("reason", msg.Reason))
		c.setError(fmt.Errorf("join rejected: %s", msg.Reason))
	})

	router.On(func(_ *router.NetworkClient, snapshot esync.WorldSnapshot) {
		select { // drain stale, push latest
		case <-c.snapshotCh:
		default:
		}
		c.snapshotCh <- snapshot
	})

	router.On(func(_ *router.NetworkClient, evt messages.RoundStartEvent) {
		offer(c.startCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.RoundOverEvent) {
		offer(c.overCh, evt)
	})

	router.On(func(_ *router.NetworkClient, evt messages.FighterLeftEvent) {
		offer(c.leftCh, evt)
	})

	router.OnDisconnect(func(_ *router.NetworkClient, err error) {
		c.log.Info("disconnected", zap.Error(err))
		c.mu.Lock()
		if c.state != StateError {
			c.state = StateDisconnected
		}
		c.conn = nil
		c.mu.Unlock()
	})

	router.OnError(func(_ *router.NetworkClient, err error) {
		c.log.Warn("router error", zap.Error(err))
	})

	go func() {
		transport := transports.NewWsClientTransport("ws://" + address)
		err := transport.Start(func(conn *websocket.Conn) {
			c.mu.Lock()
			c.conn = conn
			c.mu.Unlock()
		})
		if err != nil {
			c.setError(fmt.Errorf("connection failed: %w", err))
		}
	}()
}

func (c *Client) Disconnect() {
	c.mu.Lock()
	conn := c.conn
	c.state = StateDisconnected
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		_ = conn.CloseNow()
	}

	router.ResetRouter()
}

func (c *Client) State() ClientState {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Client) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastError
}

func (c *Client) NetworkID() esync.NetworkId {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.networkID
}

// FighterID is the seat the server gave us; zero before the join is accepted.
func (c *Client) FighterID() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fighterID
}

func (c *Client) Arena() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.arena
}

func (c *Client) ServerName() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.serverName
}

func (c *Client) TickRate() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tickRate
}

// LatestSnapshot returns the most recent WorldSnapshot, or nil. Non-blocking.
func (c *Client) LatestSnapshot() *esync.WorldSnapshot {
	select {
	case snap := <-c.snapshotCh:
		return &snap
	default:
		return nil
	}
}

// SendInput stamps held with the next sequence number and sends it.
func (c *Client) SendInput(held [cfg.ActionCount]bool) error {
	c.mu.Lock()
	c.sequence++
	seq := c.sequence
	c.mu.Unlock()

	in := messages.NewFighterInput(seq)
	in.Timestamp = time.Now().UnixMilli()
	for action, down := range held {
		if down {
			in.Actions[cfg.ActionID(action)] = true
		}
	}
	return c.SendMessage(in)
}

func (c *Client) SendMessage(msg any) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()

	if conn == nil {
		return ErrNotConnected
	}

	payload, err := router.Serialize(msg)
	if err != nil {
		return fmt.Errorf("serialize: %w", err)
	}

	return conn.Write(context.Background(), websocket.MessageBinary, payload)
}

func (c *Client) setError(err error) {
	c.mu.Lock()
	c.state = StateError
	c.lastError = err
	c.mu.Unlock()
}

// DrainRoundStarts returns all pending round start events, non-blocking.
func (c *Client) DrainRoundStarts() []messages.RoundStartEvent {
	return drainChan(c.startCh)
}

// DrainRoundOvers returns all pending round results, non-blocking.
func (c *Client) DrainRoundOvers() []messages.RoundOverEvent {
	return drainChan(c.overCh)
}

// DrainFighterLeft returns all pending knockout and leave events, non-blocking.
func (c *Client) DrainFighterLeft() []messages.FighterLeftEvent {
	return drainChan(c.leftCh)
}

func offer[T any](ch chan T, v T) {
	select {
	case ch <- v:
	default:
	}
}

func drainChan[T any](ch chan T) []T {
	var out []T
	for {
		select {
		case v := <-ch:
			out = append(out, v)
		default:
			return out
		}
	}
}
