package engine

import (
	"math/rand"
	"time"
)

// UniformSource yields uniform draws in [0,1). One source backs exactly one
// run: the stream is consumed sequentially, so sharing a source across
// concurrent runs breaks reproducibility.
type UniformSource interface {
	Float64() float64
}

// NewSource returns a generator that replays the same stream for the same
// seed. Reproducibility is within this implementation only; cross-language
// bit parity is not a goal.
func NewSource(seed int64) UniformSource {
	return rand.New(rand.NewSource(seed))
}

// NewTimeSource seeds from the wall clock for non-reproducible runs.
func NewTimeSource() UniformSource {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
