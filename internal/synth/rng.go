package synth

// HashSeed derives a 32-bit seed from a string using FNV-1a. The same
// input always yields the same seed, which is what makes the whole
// synthesizer reproducible.
func HashSeed(s string) uint32 {
	h := uint32(2166136261)
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}

// lcg is a linear-congruential generator (Numerical Recipes constants).
// One independent generator is derived per prospect index so a single
// prospect never depends on iteration order elsewhere.
type lcg struct {
	state uint32
}

func newLCG(seed uint32) *lcg {
	if seed == 0 {
		seed = 1
	}
	return &lcg{state: seed}
}

func (g *lcg) next() uint32 {
	g.state = g.state*1664525 + 1013904223
	return g.state
}

// float64 returns a value in [0, 1).
func (g *lcg) float64() float64 {
	return float64(g.next()>>8) / float64(1<<24)
}

// intBetween returns an integer in [lo, hi] inclusive.
func (g *lcg) intBetween(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(g.float64()*float64(hi-lo+1))
}

func (g *lcg) pick(pool []string) string {
	if len(pool) == 0 {
		return ""
	}
	return pool[int(g.next())%len(pool)]
}
