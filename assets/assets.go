// Package assets embeds the data files the game ships with: character
// definitions, arena maps and bot scripts.
package assets

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/automoto/arena-mp/bots"
	"github.com/automoto/arena-mp/chardef"
	"github.com/automoto/arena-mp/shared/leveldata"
	"go.uber.org/zap"
)

const (
	CharactersDir = "characters"
	LevelsDir     = "levels"
	BotsDir       = "bots"
)

var (
	//go:embed all:characters all:levels all:bots
	FS embed.FS
)

// Characters compiles every embedded character definition.
func Characters(log *zap.Logger) (*chardef.Catalog, error) {
	return chardef.LoadCatalog(FS, CharactersDir, log)
}

// Levels parses every embedded arena, keyed by map name, plus the sorted
// names.
func Levels() (map[string]*leveldata.CollisionData, []string, error) {
	return leveldata.LoadAllLevels(FS, LevelsDir)
}

// Level returns one embedded arena by name.
func Level(name string) (*leveldata.CollisionData, error) {
	levels, _, err := Levels()
	if err != nil {
		return nil, err
	}
	lvl, ok := levels[name]
	if !ok {
		return nil, fmt.Errorf("arena %q: %w", name, fs.ErrNotExist)
	}
	return lvl, nil
}

// Bots compiles every embedded bot script, keyed by file name.
func Bots() (map[string]*bots.Script, error) {
	return bots.LoadScripts(FS, BotsDir)
}
