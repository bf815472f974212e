// Package rng provides the deterministic random streams the grid engine
// draws from. Each purpose gets its own stream so that, for example, wall
// seeding never shifts the sequence of spawned pieces.
package rng

// Channel names a random stream.
type Channel uint8

const (
	Topology Channel = iota // layout and wall seeding
	Spawn                   // piece generation
	Feature                 // level features such as power picks
	numChannels
)

// String returns the channel name.
func (c Channel) String() string {
	switch c {
	case Topology:
		return "topology"
	case Spawn:
		return "spawn"
	case Feature:
		return "feature"
	default:
		return "unknown"
	}
}

// Source is a deterministic pseudo-random number generator.
// Uses a 64-bit LCG with the MMIX constants.
type Source struct {
	state uint64
}

// NewSource creates a source with the given seed.
func NewSource(seed int64) *Source {
	s := uint64(seed) //#nosec G115 -- intentional conversion for RNG seeding
	if s == 0 {
		s = 1
	}
	return &Source{state: s}
}

// Next generates the next random uint64.
func (r *Source) Next() uint64 {
	r.state = r.state*6364136223846793005 + 1442695040888963407
	return r.state
}

// Intn returns a random int in [0, n). The high bits are used because the
// low bits of an LCG have short periods.
func (r *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int((r.Next() >> 33) % uint64(n)) //#nosec G115 -- n is always positive
}

// State returns the internal state for snapshots.
func (r *Source) State() uint64 { return r.state }

// Streams holds one Source per channel.
type Streams struct {
	seed    int64
	sources [numChannels]*Source
}

// NewStreams derives every channel from one seed.
func NewStreams(seed int64) *Streams {
	s := &Streams{seed: seed}
	for ch := Channel(0); ch < numChannels; ch++ {
		s.sources[ch] = NewSource(derive(seed, ch))
	}
	return s
}

// derive mixes the channel into the seed with a splitmix64 step.
func derive(seed int64, ch Channel) int64 {
	z := uint64(seed) + uint64(ch+1)*0x9e3779b97f4a7c15 //#nosec G115 -- bit mixing
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return int64(z ^ (z >> 31)) //#nosec G115 -- bit mixing
}

// Seed returns the seed the streams were derived from.
func (s *Streams) Seed() int64 { return s.seed }

// Next draws from a channel in [0, n).
func (s *Streams) Next(ch Channel, n int) int {
	if ch >= numChannels {
		return 0
	}
	return s.sources[ch].Intn(n)
}

// Topology draws from the topology channel.
func (s *Streams) Topology(n int) int { return s.Next(Topology, n) }

// Spawn draws from the spawn channel.
func (s *Streams) Spawn(n int) int { return s.Next(Spawn, n) }

// Feature draws from the feature channel.
func (s *Streams) Feature(n int) int { return s.Next(Feature, n) }
