package presentation

import "github.com/charmbracelet/log"

// LogSink writes every event to a logger at debug level.
type LogSink struct {
	Logger *log.Logger
}

func (l LogSink) Send(evt Event) {
	if l.Logger == nil {
		return
	}
	switch e := evt.(type) {
	case PieceCreatedEvent:
		l.Logger.Debug(e.Kind(), "at", e.At, "color", e.Match.Color, "effect", e.Match.Effect, "id", e.ID)
	case PieceMovedEvent:
		l.Logger.Debug(e.Kind(), "from", e.From, "to", e.To)
	case PieceDestroyedEvent:
		l.Logger.Debug(e.Kind(), "at", e.At)
	case PiecesSwappedEvent:
		l.Logger.Debug(e.Kind(), "a", e.A, "b", e.B)
	case WallBrokenEvent:
		l.Logger.Debug(e.Kind(), "at", e.At, "side", e.Side)
	case PowerHintEvent:
		l.Logger.Info(e.Kind(), "id", e.ID, "at", e.At)
	case RockTutorialEvent:
		l.Logger.Info(e.Kind(), "at", e.At)
	default:
		l.Logger.Debug(evt.Kind())
	}
}
