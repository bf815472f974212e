package levels

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/matchgrid/internal/catalog"
	"github.com/vovakirdan/matchgrid/internal/grid"
)

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Layout      string            `yaml:"layout"`
	Dimension   int               `yaml:"dimension"`
	Align       YAMLAlign         `yaml:"align,omitempty"`
	RandomWalls bool              `yaml:"random_walls,omitempty"`
	Preview     *int              `yaml:"preview,omitempty"`
	Colors      []string          `yaml:"colors,omitempty"`
	Grounds     []YAMLCell        `yaml:"grounds,omitempty"`
	Walls       []YAMLCell        `yaml:"walls,omitempty"`
	Ramps       []YAMLRamp        `yaml:"ramps,omitempty"`
	Metadata    map[string]string `yaml:"metadata,omitempty"`
}

// YAMLAlign places the grid inside its frame.
type YAMLAlign struct {
	H string `yaml:"h"`
	V string `yaml:"v"`
}

// YAMLCell is one cell override. Value is a ground name for grounds and a
// side list such as "N|E" for walls.
type YAMLCell struct {
	X int    `yaml:"x"`
	Y int    `yaml:"y"`
	V string `yaml:"v"`
}

// YAMLRamp is a straight ramp path.
type YAMLRamp struct {
	Kind     string `yaml:"kind"`
	From     [2]int `yaml:"from"`
	To       [2]int `yaml:"to"`
	Entrance bool   `yaml:"entrance,omitempty"`
	Exit     bool   `yaml:"exit,omitempty"`
}

// ParseYAML parses and validates a YAML level file.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if errs := Validate(yl); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return Level{}, errors.Join(joined...)
	}

	level := Level{
		ID:          yl.ID,
		Name:        yl.Name,
		Dimension:   yl.Dimension,
		RandomWalls: yl.RandomWalls,
		Preview:     -1,
		Grounds:     make(map[grid.Coord]grid.Ground),
		Walls:       make(map[grid.Coord]grid.Wall),
		Metadata:    yl.Metadata,
	}
	level.Layout, _ = grid.ParseLayout(layoutName(yl.Layout))
	level.Align.H, _ = ParseAlign(yl.Align.H)
	level.Align.V, _ = ParseAlign(yl.Align.V)
	if yl.Preview != nil {
		level.Preview = *yl.Preview
	}
	for _, name := range yl.Colors {
		c, _ := grid.ParseColor(name)
		level.Colors = append(level.Colors, c)
	}
	for _, cell := range yl.Grounds {
		level.Grounds[grid.C(cell.X, cell.Y)], _ = ParseGround(cell.V)
	}
	for _, cell := range yl.Walls {
		level.Walls[grid.C(cell.X, cell.Y)], _ = ParseWall(cell.V)
	}
	for _, r := range yl.Ramps {
		kind, _ := ParseGround(r.Kind)
		level.Ramps = append(level.Ramps, Ramp{
			Kind:     kind,
			From:     grid.C(r.From[0], r.From[1]),
			To:       grid.C(r.To[0], r.To[1]),
			Entrance: r.Entrance,
			Exit:     r.Exit,
		})
	}
	return level, nil
}

// Validate checks a decoded level and returns every failure.
// Cell coordinates are checked against the grid when the level is built.
func Validate(yl YAMLLevel) []catalog.ValidationError {
	var errs []catalog.ValidationError
	add := func(code, format string, args ...any) {
		errs = append(errs, catalog.ValidationError{Code: code, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(yl.ID) == "" {
		add("MISSING_ID", "level has no id")
	}
	if _, err := grid.ParseLayout(layoutName(yl.Layout)); err != nil {
		add("INVALID_LAYOUT", "%v", err)
	}
	if yl.Dimension < 0 {
		add("INVALID_DIMENSION", "dimension %d is negative", yl.Dimension)
	}
	if yl.Preview != nil && (*yl.Preview < 0 || *yl.Preview > 2) {
		add("INVALID_PREVIEW", "preview must be 0..2, got %d", *yl.Preview)
	}
	for _, a := range []string{yl.Align.H, yl.Align.V} {
		if _, err := ParseAlign(a); err != nil {
			add("INVALID_ALIGN", "%v", err)
		}
	}
	for _, name := range yl.Colors {
		c, err := grid.ParseColor(name)
		if err != nil || !c.Playable() {
			add("INVALID_COLOR", "color %q is not a playable color", name)
		}
	}
	for _, cell := range yl.Grounds {
		g, err := ParseGround(cell.V)
		if err != nil {
			add("INVALID_GROUND", "(%d,%d): %v", cell.X, cell.Y, err)
		} else if g.IsRamp() {
			add("INVALID_GROUND", "(%d,%d): ramps are declared under ramps", cell.X, cell.Y)
		}
	}
	for _, cell := range yl.Walls {
		if _, err := ParseWall(cell.V); err != nil {
			add("INVALID_WALL", "(%d,%d): %v", cell.X, cell.Y, err)
		}
	}
	for i, r := range yl.Ramps {
		g, err := ParseGround(r.Kind)
		if err != nil || !g.IsRamp() {
			add("INVALID_RAMP", "ramp %d: %q is not a ramp kind", i, r.Kind)
		}
	}
	return errs
}

func layoutName(name string) string {
	if name == "" {
		return grid.LayoutSquare.String()
	}
	return name
}

// ParseAlign resolves an alignment name. Empty means center.
func ParseAlign(name string) (grid.Align, error) {
	switch name {
	case "", "center":
		return grid.AlignCenter, nil
	case "start":
		return grid.AlignStart, nil
	case "end":
		return grid.AlignEnd, nil
	default:
		return grid.AlignCenter, fmt.Errorf("unknown alignment %q", name)
	}
}

// ParseGround resolves a ground name such as "fixed" or "ramp-left".
func ParseGround(name string) (grid.Ground, error) {
	for g := grid.GroundVoid; g.Valid(); g++ {
		if g.String() == name {
			return g, nil
		}
	}
	return grid.GroundVoid, fmt.Errorf("unknown ground %q", name)
}

// ParseWall resolves a side list such as "N|E". "-" and "" mean no wall.
func ParseWall(sides string) (grid.Wall, error) {
	if sides == "" || sides == "-" {
		return grid.WallNone, nil
	}
	var w grid.Wall
	for _, side := range strings.Split(sides, "|") {
		switch strings.TrimSpace(side) {
		case "N":
			w |= grid.WallNorth
		case "W":
			w |= grid.WallWest
		case "E":
			w |= grid.WallEast
		case "S":
			w |= grid.WallSouth
		default:
			return grid.WallNone, fmt.Errorf("unknown wall side %q", side)
		}
	}
	return w, nil
}
