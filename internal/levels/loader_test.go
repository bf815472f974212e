package levels_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/matchgrid/internal/catalog"
	"github.com/vovakirdan/matchgrid/internal/grid"
	"github.com/vovakirdan/matchgrid/internal/levels"
	"github.com/vovakirdan/matchgrid/internal/rng"
)

const testdata = "testdata/levels"

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(testdata)

	lvls, err := loader.LoadAll()
	require.NoError(t, err)

	ids := make([]string, len(lvls))
	for i, l := range lvls {
		ids[i] = l.ID
	}
	// broken.yaml and notes.txt are skipped.
	assert.Equal(t, []string{"boss01", "lvl01", "lvl02", "lvl03"}, ids)
}

func TestLoaderListIDs(t *testing.T) {
	ids, err := levels.NewLoader(testdata).ListIDs()
	require.NoError(t, err)
	assert.Len(t, ids, 4)

	_, err = levels.NewLoader(filepath.Join(t.TempDir(), "missing")).ListIDs()
	assert.Error(t, err)
}

func TestLoaderLoadByID(t *testing.T) {
	loader := levels.NewLoader(testdata)

	lvl, err := loader.LoadByID("lvl01")
	require.NoError(t, err)
	assert.Equal(t, "Meadow", lvl.Name)
	assert.Equal(t, grid.LayoutSquare, lvl.Layout)
	assert.Equal(t, 6, lvl.Dimension)
	assert.Equal(t, -1, lvl.Preview)
	assert.Equal(t, []grid.Color{grid.ColorBlue, grid.ColorRed, grid.ColorGreen, grid.ColorYellow}, lvl.Colors)
	assert.Equal(t, grid.WallNorth|grid.WallEast, lvl.Walls[grid.C(2, 2)])
	assert.Equal(t, "score", lvl.Metadata["goal"])
	assert.Equal(t, filepath.Join(testdata, "lvl01.yaml"), lvl.FilePath)

	_, err = loader.LoadByID("lvl99")
	assert.Error(t, err)
}

func TestLoadFileErrors(t *testing.T) {
	loader := levels.NewLoader(testdata)

	_, err := loader.LoadFile(filepath.Join(testdata, "broken.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "INVALID_LAYOUT")
	assert.Contains(t, err.Error(), "INVALID_PREVIEW")

	_, err = loader.LoadFile(filepath.Join(testdata, "notes.txt"))
	assert.Error(t, err)
}

func TestBuildRestrictsColors(t *testing.T) {
	lvl, err := levels.NewLoader(testdata).LoadByID("lvl01")
	require.NoError(t, err)

	rules := grid.DefaultRules()
	rules.PowerChance = 0
	rules.RockChance = 0
	g, err := lvl.Build(catalog.Default(), grid.Options{Rules: rules, Random: rng.NewStreams(5)})
	require.NoError(t, err)

	allowed := map[grid.Color]bool{grid.ColorBlue: true, grid.ColorRed: true, grid.ColorGreen: true, grid.ColorYellow: true}
	for i := 0; i < g.Len(); i++ {
		c := g.MatchAt(i).Color
		assert.True(t, allowed[c], "cell %d has color %s", i, c)
	}
	assert.Equal(t, grid.WallNorth|grid.WallEast, g.Tile(grid.C(2, 2)).WallOrientation)
}

func TestBuildPreviewAndGround(t *testing.T) {
	lvl, err := levels.NewLoader(testdata).LoadByID("lvl02")
	require.NoError(t, err)
	assert.Equal(t, grid.Alignment{H: grid.AlignStart, V: grid.AlignEnd}, lvl.Align)

	g, err := lvl.Build(catalog.Default(), grid.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, g.PreviewLines())
	assert.Equal(t, grid.GroundFixed, g.Tile(grid.C(4, 4)).Ground)
	assert.Equal(t, grid.LayoutPlus, g.Layout())
}

func TestBuildRamps(t *testing.T) {
	lvl, err := levels.NewLoader(testdata).LoadByID("lvl03")
	require.NoError(t, err)

	g, err := lvl.Topology(nil, grid.Options{})
	require.NoError(t, err)
	require.Len(t, g.Ramps(), 1)
	assert.Equal(t, []grid.Coord{grid.C(0, 0)}, g.Entrances())
	assert.Equal(t, []grid.Coord{grid.C(5, 0)}, g.Exits())
	assert.Equal(t, grid.GroundRampRight, g.Tile(grid.C(3, 0)).Ground)
}

func TestBuildRejectsOutOfBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "far.yaml")
	body := "id: far\ndimension: 5\nwalls:\n  - {x: 9, y: 9, v: \"S\"}\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	lvl, err := levels.NewLoader(dir).LoadFile(path)
	require.NoError(t, err)
	_, err = lvl.Build(nil, grid.Options{})
	assert.Error(t, err)
}

func TestParseWall(t *testing.T) {
	tests := []struct {
		in   string
		want grid.Wall
		ok   bool
	}{
		{"", grid.WallNone, true},
		{"-", grid.WallNone, true},
		{"N|W|E|S", grid.WallAll, true},
		{"S | E", grid.WallSouth | grid.WallEast, true},
		{"X", grid.WallNone, false},
	}
	for _, tt := range tests {
		got, err := levels.ParseWall(tt.in)
		if !tt.ok {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}
