// Package levels provides level loading for the match-3 engine.
// This package depends on grid but grid does not depend on levels.
package levels

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/matchgrid/internal/catalog"
	"github.com/vovakirdan/matchgrid/internal/grid"
)

// Level represents a complete level definition.
type Level struct {
	ID          string
	Name        string
	Layout      grid.Layout
	Dimension   int
	Align       grid.Alignment
	RandomWalls bool
	Preview     int // -1 keeps the configured preview lines
	Colors      []grid.Color
	Grounds     map[grid.Coord]grid.Ground
	Walls       map[grid.Coord]grid.Wall
	Ramps       []Ramp
	Metadata    map[string]string
	FilePath    string
}

// Ramp is a hand-authored directional path.
type Ramp struct {
	Kind     grid.Ground
	From, To grid.Coord
	Entrance bool
	Exit     bool
}

// Build creates a grid from the level and fills it. Colors restrict the
// enemies drawn from cat. The level's preview overrides opts.Rules.
func (l *Level) Build(cat *catalog.Catalog, opts grid.Options) (*grid.Grid, error) {
	g, err := l.Topology(cat, opts)
	if err != nil {
		return nil, err
	}
	g.Create()
	return g, nil
}

// Topology creates a grid with the level's shape but no pieces.
func (l *Level) Topology(cat *catalog.Catalog, opts grid.Options) (*grid.Grid, error) {
	if cat != nil {
		restricted, err := cat.Restrict(l.Colors)
		if err != nil {
			return nil, fmt.Errorf("level %s: %w", l.ID, err)
		}
		opts.Catalog = restricted
	}
	if opts.Rules == (grid.Rules{}) {
		opts.Rules = grid.DefaultRules()
	}
	if l.Preview >= 0 {
		opts.Rules.PreviewLines = l.Preview
	}

	g := grid.New(opts)
	g.SetLayout(l.Dimension, l.Layout, l.Align, l.RandomWalls)

	for _, c := range sortedCoords(l.Grounds) {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("level %s: ground %s outside %dx%d", l.ID, c, g.Width(), g.Height())
		}
		if err := g.SetGround(c, l.Grounds[c]); err != nil {
			return nil, fmt.Errorf("level %s: %w", l.ID, err)
		}
	}
	for _, c := range sortedCoords(l.Walls) {
		if !g.InBounds(c) {
			return nil, fmt.Errorf("level %s: wall %s outside %dx%d", l.ID, c, g.Width(), g.Height())
		}
		if err := g.SetWall(c, l.Walls[c]); err != nil {
			return nil, fmt.Errorf("level %s: %w", l.ID, err)
		}
	}
	for _, r := range l.Ramps {
		if err := g.AddDirectionalRamp(r.Kind, r.From, r.To, r.Entrance, r.Exit); err != nil {
			return nil, fmt.Errorf("level %s: %w", l.ID, err)
		}
	}
	return g, nil
}

func sortedCoords[V any](m map[grid.Coord]V) []grid.Coord {
	out := make([]grid.Coord, 0, len(m))
	for c := range m {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Y != out[j].Y {
			return out[i].Y < out[j].Y
		}
		return out[i].X < out[j].X
	})
	return out
}

// Loader handles loading levels from a directory.
type Loader struct {
	Root   string
	Logger *log.Logger
}

// NewLoader creates a new level loader.
func NewLoader(root string) *Loader {
	return &Loader{Root: root}
}

// LoadAll recursively scans and loads all level files.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := filepath.WalkDir(l.Root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if !isSupportedExtension(ext) {
			return nil
		}

		level, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			if l.Logger != nil {
				l.Logger.Warn("skipping level", "path", path, "err", err)
			}
			return nil
		}

		levels = append(levels, level)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})

	return levels, nil
}

// LoadFile loads a single level file.
func (l *Loader) LoadFile(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !isSupportedExtension(ext) {
		return Level{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	level, err := ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("parsing file %s: %w", path, err)
	}
	level.FilePath = path
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("level not found: %s", id)
}

// ListIDs returns all level IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

func isSupportedExtension(ext string) bool {
	for _, supported := range catalog.FormatExtensions {
		if ext == supported {
			return true
		}
	}
	return false
}
