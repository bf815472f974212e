// Package catalog provides the static piece catalog the grid spawns from.
// Entries are loaded from YAML and validated once; lookups never allocate.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/vovakirdan/matchgrid/internal/grid"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Entry is one piece type.
type Entry struct {
	ID       grid.TypeID
	Name     string
	Category grid.Category
	Color    grid.Color
	Effect   grid.Effect
}

// Catalog is an immutable set of piece types. It implements grid.Catalog.
type Catalog struct {
	entries map[grid.TypeID]Entry
	byCat   map[grid.Category][]grid.TypeID
}

// New validates entries and builds a catalog. Ids are listed in ascending
// order so spawn draws are reproducible.
func New(entries []Entry) (*Catalog, error) {
	if errs := Validate(entries); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, errors.Join(joined...)
	}

	c := &Catalog{
		entries: make(map[grid.TypeID]Entry, len(entries)),
		byCat:   make(map[grid.Category][]grid.TypeID),
	}
	for _, e := range entries {
		c.entries[e.ID] = e
		c.byCat[e.Category] = append(c.byCat[e.Category], e.ID)
	}
	for _, ids := range c.byCat {
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}
	return c, nil
}

// Validate checks every entry and returns all failures.
// Checks:
//   - Ids are non-zero and unique
//   - Enemies carry a playable color and no effect
//   - Powers carry an effect and no color, the color is rolled at spawn
//   - Rocks are rock colored, items are item colored
func Validate(entries []Entry) []ValidationError {
	var errs []ValidationError
	seen := make(map[grid.TypeID]string)

	for _, e := range entries {
		if e.ID == grid.NoType {
			errs = append(errs, ValidationError{
				Code:    "ZERO_ID",
				Message: fmt.Sprintf("piece %q has id 0, which marks an empty cell", e.Name),
			})
			continue
		}
		if other, dup := seen[e.ID]; dup {
			errs = append(errs, ValidationError{
				Code:    "DUPLICATE_ID",
				Message: fmt.Sprintf("pieces %q and %q share id %d", other, e.Name, e.ID),
			})
			continue
		}
		seen[e.ID] = e.Name

		switch e.Category {
		case grid.CategoryEnemy:
			if !e.Color.Playable() {
				errs = append(errs, ValidationError{
					Code:    "INVALID_COLOR",
					Message: fmt.Sprintf("enemy %q has color %s, not a playable color", e.Name, e.Color),
				})
			}
			if e.Effect != grid.EffectNone {
				errs = append(errs, ValidationError{
					Code:    "INVALID_EFFECT",
					Message: fmt.Sprintf("enemy %q carries an effect", e.Name),
				})
			}
		case grid.CategoryPower:
			if !e.Effect.IsPower() || e.Effect > grid.EffectRockBomb4 {
				errs = append(errs, ValidationError{
					Code:    "INVALID_EFFECT",
					Message: fmt.Sprintf("power %q has effect %d", e.Name, e.Effect),
				})
			}
			if e.Color != grid.ColorNone {
				errs = append(errs, ValidationError{
					Code:    "INVALID_COLOR",
					Message: fmt.Sprintf("power %q has color %s, powers take their color at spawn", e.Name, e.Color),
				})
			}
		case grid.CategoryRock:
			if e.Color != grid.ColorRock {
				errs = append(errs, ValidationError{
					Code:    "INVALID_COLOR",
					Message: fmt.Sprintf("rock %q has color %s", e.Name, e.Color),
				})
			}
		case grid.CategoryItem:
			if !e.Color.IsItem() {
				errs = append(errs, ValidationError{
					Code:    "INVALID_COLOR",
					Message: fmt.Sprintf("item %q has color %s, not an item color", e.Name, e.Color),
				})
			}
		default:
			errs = append(errs, ValidationError{
				Code:    "INVALID_CATEGORY",
				Message: fmt.Sprintf("piece %q has unknown category %d", e.Name, e.Category),
			})
		}
	}
	return errs
}

// ListIDs returns the ids of a category in ascending order.
func (c *Catalog) ListIDs(cat grid.Category) []grid.TypeID {
	return c.byCat[cat]
}

// Traits returns what the grid needs to know about a type.
func (c *Catalog) Traits(id grid.TypeID) (grid.Traits, bool) {
	e, ok := c.entries[id]
	if !ok {
		return grid.Traits{}, false
	}
	return grid.Traits{Color: e.Color, Effect: e.Effect, Category: e.Category}, true
}

// Entry returns the full record of a type.
func (c *Catalog) Entry(id grid.TypeID) (Entry, bool) {
	e, ok := c.entries[id]
	return e, ok
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.entries)
}

// Entries returns every entry sorted by id.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.entries))
	for _, e := range c.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Restrict returns a catalog whose enemies are limited to the given colors.
// Powers, rocks and items are kept. An empty color list keeps everything.
func (c *Catalog) Restrict(colors []grid.Color) (*Catalog, error) {
	if len(colors) == 0 {
		return c, nil
	}
	allowed := make(map[grid.Color]bool, len(colors))
	for _, col := range colors {
		allowed[col] = true
	}
	var kept []Entry
	enemies := 0
	for _, e := range c.Entries() {
		if e.Category == grid.CategoryEnemy {
			if !allowed[e.Color] {
				continue
			}
			enemies++
		}
		kept = append(kept, e)
	}
	if enemies == 0 {
		return nil, ValidationError{
			Code:    "NO_ENEMIES",
			Message: fmt.Sprintf("no enemy matches colors %v", colors),
		}
	}
	return New(kept)
}
