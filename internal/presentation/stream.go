package presentation

import "sync"

// Stream is a Sink backed by a buffered channel, for a UI that animates
// events at its own pace.
type Stream struct {
	events   chan Event
	done     chan struct{}
	doneOnce sync.Once
}

// NewStream creates a stream.
// bufferSize controls how many events can be buffered before dropping.
func NewStream(bufferSize int) *Stream {
	if bufferSize < 1 {
		bufferSize = 256
	}
	return &Stream{
		events: make(chan Event, bufferSize),
		done:   make(chan struct{}),
	}
}

// Send queues an event.
// If the buffer is full, the oldest event is dropped to prevent blocking.
func (s *Stream) Send(evt Event) {
	select {
	case <-s.done:
		return
	default:
	}

	select {
	case s.events <- evt:
	default:
		select {
		case <-s.events:
		default:
		}
		select {
		case s.events <- evt:
		default:
		}
	}
}

// Events returns the channel to receive events from.
func (s *Stream) Events() <-chan Event {
	return s.events
}

// Done returns a channel closed by Close.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// Close stops accepting events.
// Safe to call multiple times.
func (s *Stream) Close() {
	s.doneOnce.Do(func() {
		close(s.done)
	})
}

// Drain returns the buffered events without blocking.
func (s *Stream) Drain() []Event {
	var out []Event
	for {
		select {
		case evt := <-s.events:
			out = append(out, evt)
		default:
			return out
		}
	}
}
