package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/matchgrid/internal/grid"
)

//go:embed defaults/pieces.yaml
var defaultPiecesYAML []byte

// FormatExtensions lists the file extensions Load accepts.
var FormatExtensions = []string{".yaml", ".yml"}

// yamlFile is the on-disk catalog document.
type yamlFile struct {
	Pieces []yamlPiece `yaml:"pieces"`
}

type yamlPiece struct {
	ID       uint32 `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
	Color    string `yaml:"color,omitempty"`
	Effect   string `yaml:"effect,omitempty"`
	Tier     int    `yaml:"tier,omitempty"` // 0..3 for spread and rock bombs, 0..2 for squares
}

// Parse decodes a YAML catalog document.
func Parse(data []byte) (*Catalog, error) {
	var f yamlFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	entries := make([]Entry, 0, len(f.Pieces))
	for _, p := range f.Pieces {
		e, err := p.entry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return New(entries)
}

// Load reads and parses a catalog file.
func Load(path string) (*Catalog, error) {
	if !hasExtension(path) {
		return nil, fmt.Errorf("unsupported catalog format: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Parse(defaultPiecesYAML)
	if err != nil {
		panic(fmt.Sprintf("catalog: embedded pieces.yaml is invalid: %v", err))
	}
	return c
}

func hasExtension(path string) bool {
	lower := strings.ToLower(path)
	for _, ext := range FormatExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

func (p yamlPiece) entry() (Entry, error) {
	e := Entry{ID: grid.TypeID(p.ID), Name: p.Name}

	cat, err := ParseCategory(p.Category)
	if err != nil {
		return Entry{}, fmt.Errorf("piece %q: %w", p.Name, err)
	}
	e.Category = cat

	if p.Color != "" {
		if e.Color, err = grid.ParseColor(p.Color); err != nil {
			return Entry{}, fmt.Errorf("piece %q: %w", p.Name, err)
		}
	}
	if p.Effect != "" {
		if e.Effect, err = ParseEffect(p.Effect, p.Tier); err != nil {
			return Entry{}, fmt.Errorf("piece %q: %w", p.Name, err)
		}
	}
	return e, nil
}

// ParseCategory resolves a category name.
func ParseCategory(name string) (grid.Category, error) {
	for _, c := range []grid.Category{grid.CategoryEnemy, grid.CategoryPower, grid.CategoryRock, grid.CategoryItem} {
		if c.String() == name {
			return c, nil
		}
	}
	return 0, ValidationError{Code: "INVALID_CATEGORY", Message: fmt.Sprintf("unknown category %q", name)}
}

// ParseEffect resolves an effect name and tier into a power code.
func ParseEffect(name string, tier int) (grid.Effect, error) {
	base, maxTier := grid.EffectNone, 0
	switch name {
	case "row":
		base = grid.EffectRow
	case "column":
		base = grid.EffectColumn
	case "cross":
		base = grid.EffectCross
	case "square":
		base, maxTier = grid.EffectSquare, 2
	case "wall-breaker":
		base = grid.EffectWallBreaker
	case "spread":
		base, maxTier = grid.EffectSpread, 3
	case "rock-bomb":
		base, maxTier = grid.EffectRockBomb, 3
	default:
		return grid.EffectNone, ValidationError{Code: "INVALID_EFFECT", Message: fmt.Sprintf("unknown effect %q", name)}
	}
	if tier < 0 || tier > maxTier {
		return grid.EffectNone, ValidationError{
			Code:    "INVALID_EFFECT",
			Message: fmt.Sprintf("effect %q accepts tiers 0..%d, got %d", name, maxTier, tier),
		}
	}
	return base + grid.Effect(tier), nil
}
