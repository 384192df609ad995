package testutil

import (
	"testing"
)

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 16, 4)
	b := DeterministicNoise(42, 1.0, 16, 4)
	if a.Samples() != 16 || a.Channels != 4 {
		t.Fatalf("shape = %dx%d, want 16x4", a.Samples(), a.Channels)
	}
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a.Data[i] < -1 || a.Data[i] >= 1 {
			t.Fatalf("Data[%d] = %v out of range", i, a.Data[i])
		}
	}
}

func TestDeterministicNoiseDifferentSeeds(t *testing.T) {
	a := DeterministicNoise(1, 1.0, 8, 2)
	b := DeterministicNoise(2, 1.0, 8, 2)
	same := true
	for i := range a.Data {
		if a.Data[i] != b.Data[i] {
			same = false
			break
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestQuantizedNoiseAlphabet(t *testing.T) {
	s := QuantizedNoise(3, 2, 200, 3)
	for i, v := range s.Data {
		if v != float32(int(v)) || v < -2 || v > 2 {
			t.Fatalf("Data[%d] = %v, want integer in [-2, 2]", i, v)
		}
	}
}

func TestSpikeShape(t *testing.T) {
	s := DeterministicNoise(1, 0, 10, 2)
	Spike(s, 5, 0, -10, 2, map[int]float32{1: 0.5})

	if s.At(5, 0) != -10 {
		t.Fatalf("peak = %v, want -10", s.At(5, 0))
	}
	if s.At(4, 0) >= 0 || s.At(4, 0) <= -10 {
		t.Fatalf("shoulder = %v, want between -10 and 0", s.At(4, 0))
	}
	if s.At(8, 0) != 0 {
		t.Fatalf("outside half-width = %v, want 0", s.At(8, 0))
	}
	if s.At(5, 1) != -5 {
		t.Fatalf("spread = %v, want -5", s.At(5, 1))
	}
}

func TestSpikeClipsAtEdges(t *testing.T) {
	s := DeterministicNoise(1, 0, 3, 1)
	Spike(s, 0, 0, 4, 3, nil) // must not panic
	if s.At(0, 0) != 4 {
		t.Fatalf("peak = %v, want 4", s.At(0, 0))
	}
}

func TestRandomGeometry(t *testing.T) {
	g := RandomGeometry(9, 5, 10, 20)
	if len(g) != 5 {
		t.Fatalf("len = %d, want 5", len(g))
	}
	for i, p := range g {
		if p.X < 0 || p.X >= 10 || p.Y < 0 || p.Y >= 20 {
			t.Fatalf("position %d = %+v out of bounds", i, p)
		}
	}
}

func TestOnes(t *testing.T) {
	for i, v := range Ones(3) {
		if v != 1 {
			t.Fatalf("Ones[%d] = %v", i, v)
		}
	}
}

func TestRequireEqualEquatesEmpty(t *testing.T) {
	RequireEqual(t, []int(nil), []int{})
	RequireEqual(t, map[string]int{"a": 1}, map[string]int{"a": 1})
}
