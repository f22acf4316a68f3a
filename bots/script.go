// Package bots drives CPU fighters from tengo scripts. A script reads the
// globals self, target and has_target, plus waypoint and has_waypoint from
// the arena's navigation grid, and assigns the button globals it wants held
// this tick.
package bots

import (
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/automoto/arena-mp/components"
	cfg "github.com/automoto/arena-mp/config"
	"github.com/automoto/arena-mp/shared/gamemath"
	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// Observation is what a script can see of one fighter.
type Observation struct {
	X, Y   float64
	VX, VY float64
	Health float64
	Jumps  uint32
}

func (o Observation) toMap() map[string]interface{} {
	return map[string]interface{}{
		"x":      o.X,
		"y":      o.Y,
		"vx":     o.VX,
		"vy":     o.VY,
		"health": o.Health,
		"jumps":  int64(o.Jumps),
	}
}

var buttonVars = [...]struct {
	name   string
	action cfg.ActionID
}{
	{"up", cfg.ActionUp},
	{"down", cfg.ActionDown},
	{"left", cfg.ActionLeft},
	{"right", cfg.ActionRight},
	{"attack_a", cfg.ActionAttackA},
	{"attack_b", cfg.ActionAttackB},
	{"reset", cfg.ActionReset},
}

// Script is a compiled bot source. Brains created from it share the bytecode.
type Script struct {
	Name     string
	compiled *tengo.Compiled
}

// Compile parses and compiles src. The math and rand stdlib modules are
// importable.
func Compile(name string, src []byte) (*Script, error) {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap("math", "rand"))
	_ = s.Add("self", map[string]interface{}{})
	_ = s.Add("target", map[string]interface{}{})
	_ = s.Add("has_target", false)
	_ = s.Add("waypoint", map[string]interface{}{})
	_ = s.Add("has_waypoint", false)
	_ = s.Add("tick", 0)
	_ = s.Add("memory", map[string]interface{}{})
	for _, b := range buttonVars {
		_ = s.Add(b.name, false)
	}

	compiled, err := s.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile bot %s: %w", name, err)
	}
	return &Script{Name: name, compiled: compiled}, nil
}

// NewBrain returns an independent instance with its own globals and memory.
func (s *Script) NewBrain() *Brain {
	c := s.compiled.Clone()
	mem := &tengo.Map{Value: map[string]tengo.Object{}}
	_ = c.Set("memory", mem)
	return &Brain{script: s.Name, compiled: c}
}

// Brain runs one fighter's copy of a script.
type Brain struct {
	script   string
	compiled *tengo.Compiled
	tick     int64
}

func (b *Brain) Script() string {
	return b.script
}

// Decide runs the script once and returns the buttons it left set. Outputs are
// cleared before every run.
func (b *Brain) Decide(self Observation, target *Observation) (components.Buttons, error) {
	return b.DecideAt(self, target, nil)
}

// DecideAt is Decide with the next navigation waypoint towards the target.
func (b *Brain) DecideAt(self Observation, target *Observation, waypoint *gamemath.Vec) (components.Buttons, error) {
	var out components.Buttons
	c := b.compiled

	for _, v := range buttonVars {
		if err := c.Set(v.name, false); err != nil {
			return out, err
		}
	}
	if err := c.Set("self", self.toMap()); err != nil {
		return out, err
	}
	if target != nil {
		if err := c.Set("target", target.toMap()); err != nil {
			return out, err
		}
	} else if err := c.Set("target", map[string]interface{}{}); err != nil {
		return out, err
	}
	if err := c.Set("has_target", target != nil); err != nil {
		return out, err
	}
	wp := map[string]interface{}{}
	if waypoint != nil {
		wp["x"], wp["y"] = waypoint.X, waypoint.Y
	}
	if err := c.Set("waypoint", wp); err != nil {
		return out, err
	}
	if err := c.Set("has_waypoint", waypoint != nil); err != nil {
		return out, err
	}
	if err := c.Set("tick", b.tick); err != nil {
		return out, err
	}
	b.tick++

	if err := c.Run(); err != nil {
		return out, fmt.Errorf("run bot %s: %w", b.script, err)
	}
	for _, v := range buttonVars {
		out[v.action] = c.Get(v.name).Bool()
	}
	return out, nil
}

// LoadScripts compiles every .tengo file in dir, keyed by file name without
// the extension.
func LoadScripts(fsys fs.FS, dir string) (map[string]*Script, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read bot dir %s: %w", dir, err)
	}
	scripts := make(map[string]*Script)
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".tengo" {
			continue
		}
		data, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read bot %s: %w", e.Name(), err)
		}
		name := strings.TrimSuffix(e.Name(), ".tengo")
		s, err := Compile(name, data)
		if err != nil {
			return nil, err
		}
		scripts[name] = s
	}
	return scripts, nil
}

// Names lists the scripts in a map from LoadScripts in sorted order.
func Names(scripts map[string]*Script) []string {
	names := make([]string, 0, len(scripts))
	for n := range scripts {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
