package query

import "sync/atomic"

// Sequencer numbers outgoing fetches so that only the response to the most
// recently issued request is applied.
type Sequencer struct {
	latest atomic.Uint64
}

// Next issues a new sequence number, superseding all earlier ones.
func (s *Sequencer) Next() uint64 {
	return s.latest.Add(1)
}

// IsLatest reports whether seq is the most recently issued number.
func (s *Sequencer) IsLatest(seq uint64) bool {
	return seq != 0 && seq == s.latest.Load()
}

// Latest returns the most recently issued number, or 0 if none.
func (s *Sequencer) Latest() uint64 {
	return s.latest.Load()
}
