package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/matchgrid/internal/grid"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()

	assert.Equal(t, 15, c.Len())
	assert.Equal(t, []grid.TypeID{1, 2, 3, 4, 5, 6}, c.ListIDs(grid.CategoryEnemy))
	assert.Equal(t, []grid.TypeID{20, 21, 22, 23, 24}, c.ListIDs(grid.CategoryPower))
	assert.Equal(t, []grid.TypeID{40}, c.ListIDs(grid.CategoryRock))
	assert.Len(t, c.ListIDs(grid.CategoryItem), 3)

	tr, ok := c.Traits(24)
	require.True(t, ok)
	assert.Equal(t, grid.EffectRockBomb, tr.Effect)
	assert.Equal(t, grid.CategoryPower, tr.Category)

	_, ok = c.Traits(99)
	assert.False(t, ok)
}

func TestCatalogImplementsGridCatalog(t *testing.T) {
	var _ grid.Catalog = Default()

	g := grid.New(grid.Options{Catalog: Default()})
	g.SetLayout(6, grid.LayoutSquare, grid.Alignment{}, false)
	g.Create()
	for i := 0; i < g.Len(); i++ {
		assert.False(t, g.MatchAt(i).Empty(), "cell %d left empty", i)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		entry Entry
		code  string
	}{
		{"zero id", Entry{ID: 0, Name: "x", Category: grid.CategoryEnemy, Color: grid.ColorRed}, "ZERO_ID"},
		{"enemy without color", Entry{ID: 7, Name: "x", Category: grid.CategoryEnemy}, "INVALID_COLOR"},
		{"enemy with effect", Entry{ID: 7, Name: "x", Category: grid.CategoryEnemy, Color: grid.ColorRed, Effect: grid.EffectRow}, "INVALID_EFFECT"},
		{"power without effect", Entry{ID: 7, Name: "x", Category: grid.CategoryPower}, "INVALID_EFFECT"},
		{"colored power", Entry{ID: 7, Name: "x", Category: grid.CategoryPower, Color: grid.ColorRed, Effect: grid.EffectRow}, "INVALID_COLOR"},
		{"rock color", Entry{ID: 7, Name: "x", Category: grid.CategoryRock, Color: grid.ColorBlue}, "INVALID_COLOR"},
		{"item color", Entry{ID: 7, Name: "x", Category: grid.CategoryItem, Color: grid.ColorRock}, "INVALID_COLOR"},
		{"category", Entry{ID: 7, Name: "x", Category: grid.Category(9)}, "INVALID_CATEGORY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate([]Entry{tt.entry})
			require.Len(t, errs, 1)
			assert.Equal(t, tt.code, errs[0].Code)
		})
	}
}

func TestNewReportsEveryFailure(t *testing.T) {
	_, err := New([]Entry{
		{ID: 1, Name: "a", Category: grid.CategoryEnemy, Color: grid.ColorRed},
		{ID: 1, Name: "b", Category: grid.CategoryEnemy, Color: grid.ColorBlue},
		{ID: 0, Name: "c", Category: grid.CategoryEnemy, Color: grid.ColorBlue},
	})
	require.Error(t, err)

	var ve ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Contains(t, err.Error(), "DUPLICATE_ID")
	assert.Contains(t, err.Error(), "ZERO_ID")
}

func TestParseEffect(t *testing.T) {
	tests := []struct {
		name string
		tier int
		want grid.Effect
		ok   bool
	}{
		{"row", 0, grid.EffectRow, true},
		{"cross", 0, grid.EffectCross, true},
		{"square", 2, grid.EffectSquare3, true},
		{"spread", 3, grid.EffectSpread4, true},
		{"rock-bomb", 1, grid.EffectRockBomb + 1, true},
		{"row", 1, grid.EffectNone, false},
		{"spread", 4, grid.EffectNone, false},
		{"laser", 0, grid.EffectNone, false},
	}

	for _, tt := range tests {
		got, err := ParseEffect(tt.name, tt.tier)
		if !tt.ok {
			assert.Error(t, err, "%s/%d", tt.name, tt.tier)
			continue
		}
		require.NoError(t, err, "%s/%d", tt.name, tt.tier)
		assert.Equal(t, tt.want, got)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pieces.yaml")
	body := "pieces:\n  - {id: 1, name: A, category: enemy, color: red}\n  - {id: 9, name: B, category: power, effect: spread, tier: 2}\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	e, ok := c.Entry(9)
	require.True(t, ok)
	assert.Equal(t, "B", e.Name)
	assert.Equal(t, grid.EffectSpread+2, e.Effect)

	_, err = Load(filepath.Join(dir, "pieces.json"))
	assert.Error(t, err)
	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yml")
	require.NoError(t, os.WriteFile(bad, []byte("pieces:\n  - {id: 1, name: A, category: boss}\n"), 0o600))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestRestrict(t *testing.T) {
	c, err := Default().Restrict([]grid.Color{grid.ColorRed, grid.ColorBlue})
	require.NoError(t, err)
	assert.Equal(t, []grid.TypeID{1, 2}, c.ListIDs(grid.CategoryEnemy))
	assert.Len(t, c.ListIDs(grid.CategoryPower), 5)

	same, err := Default().Restrict(nil)
	require.NoError(t, err)
	assert.Equal(t, 15, same.Len())

	_, err = Default().Restrict([]grid.Color{grid.ColorRock})
	assert.Error(t, err)
}
