package peaks

import "testing"

func TestCollectorOrdersAndDeduplicates(t *testing.T) {
	var c Collector
	c.AddAll([]Event{
		{Sample: 5, Channel: 1, Amplitude: 1},
		{Sample: 2, Channel: 3, Amplitude: 2},
		{Sample: 5, Channel: 0, Amplitude: 3},
	})
	c.Add(Event{Sample: 2, Channel: 3, Amplitude: 9})
	c.AddAll(nil)

	if c.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 before Events", c.Len())
	}

	got := c.Events()
	want := []Event{
		{Sample: 2, Channel: 3, Amplitude: 2},
		{Sample: 5, Channel: 0, Amplitude: 3},
		{Sample: 5, Channel: 1, Amplitude: 1},
	}
	if len(got) != len(want) {
		t.Fatalf("Events() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Events()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestCollectorResetAndEmpty(t *testing.T) {
	var c Collector
	if got := c.Events(); got == nil || len(got) != 0 {
		t.Fatalf("empty Events() = %#v, want empty non-nil", got)
	}
	c.Add(Event{Sample: 1})
	c.Reset()
	if c.Len() != 0 || len(c.Events()) != 0 {
		t.Fatal("Reset must drop events")
	}
}

func TestCompare(t *testing.T) {
	a := Event{Sample: 1, Channel: 2}
	b := Event{Sample: 1, Channel: 3}
	c := Event{Sample: 2, Channel: 0}
	if Compare(a, b) >= 0 || Compare(b, c) >= 0 || Compare(c, a) <= 0 || Compare(a, a) != 0 {
		t.Fatal("Compare ordering wrong")
	}
}
