// Package animation turns a search trace into the ordered frame sequence a
// presentation layer replays: every visited cell first, then every cell of
// the shortest path. Frames are plain values; consuming them at any pace, or
// not at all, has no effect on the engine.
package animation

import (
	"iter"

	"github.com/beka-birhanu/vinom-pathfinder/pathfinding"
)

// Phase tells which part of the trace a frame belongs to.
type Phase string

const (
	PhaseVisited Phase = "visited"
	PhasePath    Phase = "path"
)

// Frame is one step of the replay.
type Frame struct {
	Step  int   `json:"step"`
	Phase Phase `json:"phase"`
	Row   int   `json:"row"`
	Col   int   `json:"col"`
}

// Options configures frame extraction.
type Options struct {
	// KeepEndpoints keeps start, finish and wall cells in the visited phase.
	KeepEndpoints bool
}

// Option mutates Options.
type Option func(*Options)

// WithEndpoints keeps endpoint cells in the visited phase.
func WithEndpoints() Option {
	return func(o *Options) { o.KeepEndpoints = true }
}

// Sequence is an ordered, replayable list of frames.
type Sequence []Frame

// Frames builds the replay sequence for t. By default the visited phase omits
// start, finish and wall cells, which a display styles on their own; the path
// phase always lists the full path.
func Frames(t pathfinding.Trace, opts ...Option) Sequence {
	var cfg Options
	for _, opt := range opts {
		opt(&cfg)
	}

	seq := make(Sequence, 0, len(t.Visited)+len(t.Path))
	for _, c := range t.Visited {
		if !cfg.KeepEndpoints && (c.IsEndpoint() || c.IsWall) {
			continue
		}
		seq = append(seq, Frame{Step: len(seq), Phase: PhaseVisited, Row: c.Row, Col: c.Col})
	}
	for _, c := range t.Path {
		seq = append(seq, Frame{Step: len(seq), Phase: PhasePath, Row: c.Row, Col: c.Col})
	}
	return seq
}

// All iterates the frames in order with their step number.
func (s Sequence) All() iter.Seq2[int, Frame] {
	return func(yield func(int, Frame) bool) {
		for _, f := range s {
			if !yield(f.Step, f) {
				return
			}
		}
	}
}

// Split returns the visited and path phases as separate slices.
func (s Sequence) Split() (visited, path Sequence) {
	for i, f := range s {
		if f.Phase == PhasePath {
			return s[:i:i], s[i:]
		}
	}
	return s, nil
}
