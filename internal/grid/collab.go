package grid

// Catalog answers type lookups for spawning.
// Implementations must return ids in a stable order so replays stay deterministic.
type Catalog interface {
	ListIDs(cat Category) []TypeID
	Traits(id TypeID) (Traits, bool)
}

// Randomizer supplies draws in [0, n), one stream per purpose.
type Randomizer interface {
	Topology(n int) int // layout and wall seeding
	Spawn(n int) int    // piece generation
	Feature(n int) int  // level features such as power picks
}

// Presenter receives fire-and-forget notifications keyed by coordinate.
type Presenter interface {
	PieceCreated(at Coord, m Match, id TypeID)
	PieceMoved(from, to Coord)
	PieceDestroyed(at Coord)
	PiecesSwapped(a, b Coord)
	WallBroken(at Coord, side Wall)
}

// Tutorial isolates the one piece of game-progress state the engine touches.
type Tutorial interface {
	PowerShown(id TypeID) bool
	PowerHint(id TypeID, at Coord)
	RockSpawned(at Coord)
}

// NopPresenter ignores every notification.
type NopPresenter struct{}

func (NopPresenter) PieceCreated(Coord, Match, TypeID) {}
func (NopPresenter) PieceMoved(Coord, Coord)           {}
func (NopPresenter) PieceDestroyed(Coord)              {}
func (NopPresenter) PiecesSwapped(Coord, Coord)        {}
func (NopPresenter) WallBroken(Coord, Wall)            {}

type nopTutorial struct{}

func (nopTutorial) PowerShown(TypeID) bool  { return true }
func (nopTutorial) PowerHint(TypeID, Coord) {}
func (nopTutorial) RockSpawned(Coord)       {}
