// Package randutil derives reproducible random streams from a single game seed.
package randutil

import (
	rand "math/rand/v2"
	"time"
)

const goldenRatio64 = 0x9e3779b97f4a7c15

// Stream identifiers. Each consumer of randomness draws from its own stream
// so that, for example, a bot decision never shifts the next shuffle.
const (
	StreamDeck uint64 = iota
	StreamBots
	StreamFallback
)

// New returns a *rand.Rand seeded deterministically from seed.
func New(seed int64) *rand.Rand {
	return Derive(seed, StreamDeck)
}

// Derive returns the generator for one named stream of seed. Two calls with
// the same arguments always produce the same sequence.
func Derive(seed int64, stream uint64) *rand.Rand {
	u := uint64(seed) + stream*goldenRatio64*2
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// TimeSeed returns a seed for callers that did not ask for determinism.
func TimeSeed() int64 {
	return time.Now().UnixNano()
}

// splitmix64 finaliser
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}
