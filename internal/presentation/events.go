// Package presentation turns grid notifications into events and delivers them
// to recorders, buffered streams and loggers.
package presentation

import "github.com/vovakirdan/matchgrid/internal/grid"

// Event is a notification emitted while the grid changes.
type Event interface {
	Kind() string
	presentationEvent()
}

// PieceCreatedEvent is sent when a piece spawns, enters from the preview or
// becomes a power.
type PieceCreatedEvent struct {
	At    grid.Coord
	Match grid.Match
	ID    grid.TypeID
}

func (PieceCreatedEvent) Kind() string       { return "created" }
func (PieceCreatedEvent) presentationEvent() {}

// PieceMovedEvent is sent when gravity or a ramp moves a piece.
type PieceMovedEvent struct {
	From, To grid.Coord
}

func (PieceMovedEvent) Kind() string       { return "moved" }
func (PieceMovedEvent) presentationEvent() {}

// PieceDestroyedEvent is sent when a piece is removed.
type PieceDestroyedEvent struct {
	At grid.Coord
}

func (PieceDestroyedEvent) Kind() string       { return "destroyed" }
func (PieceDestroyedEvent) presentationEvent() {}

// PiecesSwappedEvent is sent when a staged swap is confirmed.
type PiecesSwappedEvent struct {
	A, B grid.Coord
}

func (PiecesSwappedEvent) Kind() string       { return "swapped" }
func (PiecesSwappedEvent) presentationEvent() {}

// WallBrokenEvent is sent once per wall side cleared.
type WallBrokenEvent struct {
	At   grid.Coord
	Side grid.Wall
}

func (WallBrokenEvent) Kind() string       { return "wall" }
func (WallBrokenEvent) presentationEvent() {}

// PowerHintEvent is sent the first time a power type can be shown to the player.
type PowerHintEvent struct {
	ID grid.TypeID
	At grid.Coord
}

func (PowerHintEvent) Kind() string       { return "power-hint" }
func (PowerHintEvent) presentationEvent() {}

// RockTutorialEvent is sent for the first rock that spawns.
type RockTutorialEvent struct {
	At grid.Coord
}

func (RockTutorialEvent) Kind() string       { return "rock-tutorial" }
func (RockTutorialEvent) presentationEvent() {}

// Sink receives events. Send must not block.
type Sink interface {
	Send(evt Event)
}

// Emitter adapts a Sink to grid.Presenter.
type Emitter struct {
	Sink Sink
}

var _ grid.Presenter = Emitter{}

func (e Emitter) PieceCreated(at grid.Coord, m grid.Match, id grid.TypeID) {
	e.Sink.Send(PieceCreatedEvent{At: at, Match: m, ID: id})
}

func (e Emitter) PieceMoved(from, to grid.Coord) {
	e.Sink.Send(PieceMovedEvent{From: from, To: to})
}

func (e Emitter) PieceDestroyed(at grid.Coord) {
	e.Sink.Send(PieceDestroyedEvent{At: at})
}

func (e Emitter) PiecesSwapped(a, b grid.Coord) {
	e.Sink.Send(PiecesSwappedEvent{A: a, B: b})
}

func (e Emitter) WallBroken(at grid.Coord, side grid.Wall) {
	e.Sink.Send(WallBrokenEvent{At: at, Side: side})
}

// Fanout delivers every event to each sink in order.
type Fanout []Sink

func (f Fanout) Send(evt Event) {
	for _, s := range f {
		if s != nil {
			s.Send(evt)
		}
	}
}
