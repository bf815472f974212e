package presentation

import (
	"sort"
	"sync"

	"github.com/vovakirdan/matchgrid/internal/grid"
)

// Tutorial remembers which power types were already introduced and whether
// the rock tutorial ran. It implements grid.Tutorial.
type Tutorial struct {
	mu        sync.Mutex
	shown     map[grid.TypeID]bool
	rocksSeen bool
	sink      Sink
}

var _ grid.Tutorial = (*Tutorial)(nil)

// NewTutorial creates a tracker that reports to sink, which may be nil.
func NewTutorial(sink Sink) *Tutorial {
	return &Tutorial{shown: make(map[grid.TypeID]bool), sink: sink}
}

// PowerShown reports whether the power type was introduced.
func (t *Tutorial) PowerShown(id grid.TypeID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.shown[id]
}

// PowerHint marks the type as introduced and forwards the hint.
func (t *Tutorial) PowerHint(id grid.TypeID, at grid.Coord) {
	t.mu.Lock()
	first := !t.shown[id]
	t.shown[id] = true
	t.mu.Unlock()
	if first && t.sink != nil {
		t.sink.Send(PowerHintEvent{ID: id, At: at})
	}
}

// RockSpawned forwards the first rock only.
func (t *Tutorial) RockSpawned(at grid.Coord) {
	t.mu.Lock()
	first := !t.rocksSeen
	t.rocksSeen = true
	t.mu.Unlock()
	if first && t.sink != nil {
		t.sink.Send(RockTutorialEvent{At: at})
	}
}

// MarkShown restores saved progress.
func (t *Tutorial) MarkShown(ids ...grid.TypeID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, id := range ids {
		t.shown[id] = true
	}
}

// ShownIDs returns the introduced power types in ascending order.
func (t *Tutorial) ShownIDs() []grid.TypeID {
	t.mu.Lock()
	defer t.mu.Unlock()
	ids := make([]grid.TypeID, 0, len(t.shown))
	for id := range t.shown {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// RocksSeen reports whether the rock tutorial ran.
func (t *Tutorial) RocksSeen() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.rocksSeen
}
