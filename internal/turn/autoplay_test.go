package turn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/matchgrid/internal/catalog"
	"github.com/vovakirdan/matchgrid/internal/grid"
	"github.com/vovakirdan/matchgrid/internal/rng"
	"github.com/vovakirdan/matchgrid/internal/turn"
)

func autoplay(t *testing.T, seed int64, layout grid.Layout) (turn.Run, []byte) {
	t.Helper()
	streams := rng.NewStreams(seed)
	g := grid.New(grid.Options{Catalog: catalog.Default(), Random: streams})
	g.SetLayout(8, layout, grid.Alignment{}, false)
	g.Create()

	c := turn.New(g, streams, turn.DefaultConfig())
	run := c.Autoplay(15)
	return run, g.Save()
}

func TestAutoplayDeterministic(t *testing.T) {
	first, saved1 := autoplay(t, 42, grid.LayoutSquare)
	second, saved2 := autoplay(t, 42, grid.LayoutSquare)

	assert.Equal(t, first, second)
	assert.Equal(t, saved1, saved2)
	assert.LessOrEqual(t, first.Turns, 15)
	if first.Turns > 0 {
		assert.Positive(t, first.Score)
	}
}

func TestAutoplayLayouts(t *testing.T) {
	for _, layout := range []grid.Layout{grid.LayoutPlus, grid.LayoutUTop, grid.LayoutBoss01, grid.LayoutBoss03} {
		t.Run(layout.String(), func(t *testing.T) {
			run, saved := autoplay(t, 3, layout)
			require.NotEmpty(t, saved)
			assert.GreaterOrEqual(t, run.Score, 0)
			assert.LessOrEqual(t, run.Turns, 15)
		})
	}
}
