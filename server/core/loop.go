package core

import (
	"time"

	"github.com/leap-fish/necs/esync/srvsync"
	"go.uber.org/zap"
)

type GameLoop struct {
	server   *Server
	tickRate int
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(server *Server, tickRate int) *GameLoop {
	if tickRate <= 0 {
		tickRate = 60
	}
	return &GameLoop{
		server:   server,
		tickRate: tickRate,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (g *GameLoop) Run() {
	defer close(g.done)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.server.log.Info("game loop started", zap.Int("tick_rate", g.tickRate))
	dt := 1 / float64(g.tickRate)

	for {
		select {
		case <-g.stopChan:
			g.server.log.Info("game loop stopped")
			return
		case <-ticker.C:
			g.tick(dt)
		}
	}
}

// Stop ends the loop and waits for the current tick to finish.
func (g *GameLoop) Stop() {
	close(g.stopChan)
	<-g.done
}

func (g *GameLoop) tick(dt float64) {
	g.server.Tick(dt)

	if err := srvsync.DoSync(); err != nil {
		g.server.log.Warn("sync error", zap.Error(err))
	}
}
