package chardef

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Catalog holds every character compiled from one directory.
type Catalog struct {
	fsys fs.FS
	dir  string
	log  *zap.Logger

	mu    sync.RWMutex
	chars map[string]*Character
}

// LoadCatalog reads every .yaml/.yml file in dir. One broken file fails the
// whole load.
func LoadCatalog(fsys fs.FS, dir string, log *zap.Logger) (*Catalog, error) {
	if log == nil {
		log = zap.NewNop()
	}
	c := &Catalog{fsys: fsys, dir: dir, log: log}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload rereads the directory. The previous characters stay in place if any
// file fails.
func (c *Catalog) Reload() error {
	entries, err := fs.ReadDir(c.fsys, c.dir)
	if err != nil {
		return fmt.Errorf("read characters %s: %w", c.dir, err)
	}

	chars := make(map[string]*Character)
	for _, e := range entries {
		if e.IsDir() || !isDefinitionFile(e.Name()) {
			continue
		}
		p := path.Join(c.dir, e.Name())
		data, err := fs.ReadFile(c.fsys, p)
		if err != nil {
			return fmt.Errorf("read character %s: %w", p, err)
		}
		def, err := Parse(data)
		if err != nil {
			return fmt.Errorf("parse character %s: %w", p, err)
		}
		ch, err := def.Build(c.log)
		if err != nil {
			return fmt.Errorf("build character %s: %w", p, err)
		}
		if _, dup := chars[ch.Name]; dup {
			return fmt.Errorf("%w: character %q defined twice", ErrInvalidDefinition, ch.Name)
		}
		chars[ch.Name] = ch
	}

	c.mu.Lock()
	c.chars = chars
	c.mu.Unlock()
	c.log.Info("characters loaded", zap.String("dir", c.dir), zap.Int("count", len(chars)))
	return nil
}

// Get returns the character with the given name.
func (c *Catalog) Get(name string) (*Character, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.chars[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharacter, name)
	}
	return ch, nil
}

// Names lists the loaded characters alphabetically.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.chars))
	for n := range c.chars {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func isDefinitionFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
