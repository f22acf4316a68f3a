package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/automoto/arena-mp/assets"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/fonts"
	"github.com/automoto/arena-mp/render"
	"github.com/automoto/arena-mp/settings"
	"github.com/automoto/arena-mp/shared/protocol"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"go.uber.org/zap"
)

type Scene interface {
	Update() error
	Frame() render.Frame
}

type Game struct {
	scene    Scene
	renderer *render.Renderer
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		g.renderer.Debug = !g.renderer.Debug
	}
	return g.scene.Update()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.scene.Frame())
}

func (g *Game) Layout(width, height int) (int, int) {
	return cfg.Client.Width, cfg.Client.Height
}

func main() {
	configPath := flag.String("config", "arena.toml", "Optional TOML config file")
	connect := flag.String("connect", "", "Server address (host:port); empty plays locally")
	name := flag.String("name", "Player", "Name shown above your fighter online")
	debug := flag.Bool("debug", false, "Development logging and collider overlay")
	flag.Parse()

	log, err := newLogger(*debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := cfg.Load(*configPath); err != nil {
		log.Fatal("failed to load config", zap.Error(err))
	}

	// Register network components for client-side deserialization
	if err := protocol.RegisterComponents(); err != nil {
		log.Fatal("failed to register network components", zap.Error(err))
	}
	fonts.LoadDefaults()

	prefs := settings.Defaults()
	if store, err := settings.Open("arena-mp", log); err != nil {
		log.Warn("could not open settings storage", zap.Error(err))
	} else {
		prefs = store.Load()
		if err := store.Save(prefs); err != nil {
			log.Warn("could not save settings", zap.Error(err))
		}
	}

	catalog, err := assets.Characters(log)
	if err != nil {
		log.Fatal("failed to load characters", zap.Error(err))
	}

	var scene Scene
	if *connect != "" {
		scene, err = NewNetworkedScene(*connect, *name, prefs, log)
	} else {
		scene, err = NewLocalScene(catalog, prefs, log)
	}
	if err != nil {
		log.Fatal("failed to start", zap.Error(err))
	}

	renderer := render.NewRenderer(catalog)
	renderer.Debug = *debug
	renderer.MaxScale = cfg.Client.PixelsPer

	ebiten.SetWindowSize(cfg.Client.Width, cfg.Client.Height)
	ebiten.SetWindowTitle(cfg.Client.Title)
	ebiten.SetTPS(cfg.Physics.TickRate)

	err = ebiten.RunGame(&Game{scene: scene, renderer: renderer})
	if closer, ok := scene.(interface{ Close() }); ok {
		closer.Close()
	}
	if err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal("game exited", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
