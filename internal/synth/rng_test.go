package synth

import "testing"

func TestHashSeed_KnownValues(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 2166136261},
		{"a", 0xe40c292c},
		{"abc", 0x1a47e90b},
	}
	for _, tt := range tests {
		if got := HashSeed(tt.in); got != tt.want {
			t.Errorf("HashSeed(%q) = %#x, want %#x", tt.in, got, tt.want)
		}
	}
}

func TestLCG_Deterministic(t *testing.T) {
	a, b := newLCG(42), newLCG(42)
	for i := 0; i < 100; i++ {
		if a.next() != b.next() {
			t.Fatalf("generators diverged at step %d", i)
		}
	}
}

func TestLCG_Float64Range(t *testing.T) {
	g := newLCG(7)
	for i := 0; i < 1000; i++ {
		v := g.float64()
		if v < 0 || v >= 1 {
			t.Fatalf("float64() = %v, outside [0, 1)", v)
		}
	}
}

func TestLCG_IntBetweenInclusive(t *testing.T) {
	g := newLCG(99)
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		v := g.intBetween(3, 7)
		if v < 3 || v > 7 {
			t.Fatalf("intBetween(3, 7) = %d", v)
		}
		seen[v] = true
	}
	for v := 3; v <= 7; v++ {
		if !seen[v] {
			t.Errorf("value %d never drawn", v)
		}
	}
}

func TestLCG_ZeroSeed(t *testing.T) {
	if newLCG(0).state != 1 {
		t.Error("zero seed must be remapped to a nonzero state")
	}
}
