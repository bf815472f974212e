package turn

import (
	"errors"

	"github.com/vovakirdan/matchgrid/internal/grid"
)

// Run summarizes an autoplay session.
type Run struct {
	Turns     int
	Score     int
	Cascades  int
	Collected int
	Shuffles  int
	Stuck     bool // No move was left, even after a shuffle
}

// Autoplay plays up to maxTurns swaps by following the hints. Items are
// collected first. When no hint is left the grid is shuffled once; a grid
// that still has no move ends the run.
func (c *Controller) Autoplay(maxTurns int) Run {
	var run Run
	start := c.score

	// Matches left by the initial fill settle without scoring.
	c.Settle(1)

	for run.Turns < maxTurns {
		hints := c.g.AllHints()
		if item, ok := firstOf(hints, grid.HintItem); ok {
			out, err := c.Collect(item.From)
			if err != nil {
				c.logger.Error("collect failed", "at", item.From, "err", err)
				break
			}
			run.Collected++
			run.Cascades += out.Cascades
			continue
		}

		out, ok := c.playFirst(hints)
		if !ok {
			if run.Shuffles > 0 && run.Stuck {
				break
			}
			run.Shuffles++
			run.Stuck = true
			c.Shuffle()
			c.Settle(1)
			continue
		}
		run.Stuck = false
		run.Turns++
		run.Cascades += out.Cascades
	}

	run.Score = c.score - start
	c.logger.Info("autoplay finished", "turns", run.Turns, "score", run.Score, "cascades", run.Cascades, "stuck", run.Stuck)
	return run
}

// playFirst swaps the first hint that stands.
func (c *Controller) playFirst(hints []grid.Hint) (Outcome, bool) {
	for _, h := range hints {
		if h.Kind == grid.HintItem {
			continue
		}
		out, err := c.Swap(h.From, h.To)
		if err == nil {
			return out, true
		}
		if !errors.Is(err, ErrNoMatch) {
			c.logger.Warn("hint rejected", "from", h.From, "to", h.To, "err", err)
		}
	}
	return Outcome{}, false
}

func firstOf(hints []grid.Hint, kind grid.HintKind) (grid.Hint, bool) {
	for _, h := range hints {
		if h.Kind == kind {
			return h, true
		}
	}
	return grid.Hint{}, false
}
