package main

import (
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/automoto/arena-mp/assets"
	"github.com/automoto/arena-mp/chardef"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/scenes"
	"github.com/automoto/arena-mp/server/core"
	"github.com/automoto/arena-mp/shared/leveldata"
	"github.com/automoto/arena-mp/shared/protocol"
	"go.uber.org/zap"
)

func main() {
	configPath := flag.String("config", "arena.toml", "Optional TOML config file")
	port := flag.Uint("port", 0, "Server port (overrides config)")
	tickRate := flag.Int("tickrate", 0, "Server tick rate (overrides config)")
	arenaName := flag.String("arena", "", "Arena map name (overrides config)")
	charsDir := flag.String("chars", "", "Character definition directory; empty uses the built-in set")
	levelsDir := flag.String("levels", "", "Arena map directory; empty uses the built-in set")
	botCount := flag.Int("bots", 0, "Number of scripted fighters to seat")
	botScript := flag.String("bot", "chaser", "Bot script name")
	watch := flag.Bool("watch", false, "Reload character definitions from -chars when they change")
	debug := flag.Bool("debug", false, "Development logging")
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
	applyFlags(*port, *tickRate, *arenaName, *charsDir, *levelsDir)
	if *watch {
		cfg.Server.Watch = true
	}

	if err := protocol.RegisterComponents(); err != nil {
		log.Fatal("failed to register components", zap.Error(err))
	}

	charFS, charDir := fsFor(cfg.Server.CharactersDir, assets.FS, assets.CharactersDir)
	catalog, err := chardef.LoadCatalog(charFS, charDir, log)
	if err != nil {
		log.Fatal("failed to load characters", zap.Error(err))
	}

	levelFS, levelDir := fsFor(cfg.Server.LevelsDir, assets.FS, assets.LevelsDir)
	level, err := leveldata.LoadCollisionData(levelFS, path.Join(levelDir, cfg.Server.Arena+".tmx"))
	if err != nil {
		log.Fatal("failed to load arena", zap.String("arena", cfg.Server.Arena), zap.Error(err))
	}

	arena, err := scenes.NewArena(catalog, level, log)
	if err != nil {
		log.Fatal("failed to set up arena", zap.Error(err))
	}

	server := core.NewServer(arena, core.Options{
		Name:     cfg.Server.Name,
		Version:  cfg.Server.Version,
		TickRate: cfg.Server.TickRate,
		Results:  cfg.Match.Results,
	}, log)

	if *botCount > 0 {
		scripts, err := assets.Bots()
		if err != nil {
			log.Fatal("failed to load bot scripts", zap.Error(err))
		}
		script, ok := scripts[*botScript]
		if !ok {
			log.Fatal("unknown bot script", zap.String("bot", *botScript))
		}
		names := catalog.Names()
		for i := 0; i < *botCount; i++ {
			character := names[i%len(names)]
			if err := server.AddBot(fmt.Sprintf("cpu-%d", i+1), character, script); err != nil {
				log.Fatal("failed to seat bot", zap.Error(err))
			}
		}
	}

	if cfg.Server.Watch && cfg.Server.CharactersDir != "" {
		watcher, err := chardef.NewWatcher(log, cfg.Server.CharactersDir)
		if err != nil {
			log.Fatal("failed to watch characters", zap.Error(err))
		}
		defer func() { _ = watcher.Close() }()
		server.WatchCharacters(watcher)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down server")
		server.Stop()
		_ = log.Sync()
		os.Exit(0)
	}()

	log.Info("starting arena server",
		zap.String("name", cfg.Server.Name),
		zap.Uint("port", cfg.Server.Port),
		zap.Int("tick_rate", cfg.Server.TickRate),
		zap.String("arena", level.Name),
		zap.Strings("characters", catalog.Names()),
		zap.String("match", arena.ID.String()))
	if err := server.Start(cfg.Server.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func applyFlags(port uint, tickRate int, arena, chars, levels string) {
	if port != 0 {
		cfg.Server.Port = port
	}
	if tickRate > 0 {
		cfg.Server.TickRate = tickRate
	}
	if arena != "" {
		cfg.Server.Arena = arena
	}
	if chars != "" {
		cfg.Server.CharactersDir = chars
	}
	if levels != "" {
		cfg.Server.LevelsDir = levels
	}
}

// fsFor serves dir from disk when set, otherwise the embedded fallback.
func fsFor(dir string, embedded fs.FS, embeddedDir string) (fs.FS, string) {
	if dir == "" {
		return embedded, embeddedDir
	}
	return os.DirFS(dir), "."
}
