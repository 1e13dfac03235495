package pipeline

import (
	"io"

	"github.com/cwbudde/galnoise/noise"
)

// Source yields events in arrival order and io.EOF after the last one.
type Source interface {
	Next() (noise.Event, error)
}

// SliceSource serves events from memory.
type SliceSource struct {
	events []noise.Event
	next   int
}

// NewSliceSource returns a source over events.
func NewSliceSource(events []noise.Event) *SliceSource {
	return &SliceSource{events: events}
}

// Next implements Source.
func (s *SliceSource) Next() (noise.Event, error) {
	if s.next >= len(s.events) {
		return noise.Event{}, io.EOF
	}
	ev := s.events[s.next]
	s.next++
	return ev, nil
}
