package buffer

import "testing"

func TestNewEmpty(t *testing.T) {
	b := New(4, 8)
	if b.Rows() != 0 {
		t.Fatalf("Rows() = %d, want 0", b.Rows())
	}
	if got := cap(b.Samples()); got != 32 {
		t.Fatalf("cap(Samples()) = %d, want 32", got)
	}
	if b.Channels() != 4 {
		t.Fatalf("Channels() = %d, want 4", b.Channels())
	}
}

func TestNewClampsArguments(t *testing.T) {
	b := New(0, -3)
	if b.Channels() != 1 || b.Rows() != 0 {
		t.Fatalf("Channels/Rows = %d/%d, want 1/0", b.Channels(), b.Rows())
	}
}

func TestGrowPreservesData(t *testing.T) {
	b := New(2, 1)
	b.AppendRows([]float32{42, 43})
	b.Grow(16)
	if got := cap(b.Samples()); got < 32 {
		t.Fatalf("cap(Samples()) = %d, want >= 32", got)
	}
	if b.Rows() != 1 {
		t.Fatalf("Rows() = %d, want 1 after Grow", b.Rows())
	}
	if b.Samples()[0] != 42 || b.Samples()[1] != 43 {
		t.Fatal("Grow did not preserve data")
	}
}

func TestAppendRowsIgnoresPartialRow(t *testing.T) {
	b := New(3, 0)
	b.AppendRows([]float32{1, 2, 3, 4, 5})
	if b.Rows() != 1 {
		t.Fatalf("Rows() = %d, want 1", b.Rows())
	}
	b.AppendRows([]float32{7, 8, 9})
	want := []float32{1, 2, 3, 7, 8, 9}
	for i, v := range want {
		if b.Samples()[i] != v {
			t.Fatalf("Samples()[%d] = %v, want %v", i, b.Samples()[i], v)
		}
	}
}

func TestTailAndKeepTail(t *testing.T) {
	b := New(2, 4)
	b.AppendRows([]float32{1, 1, 2, 2, 3, 3, 4, 4})

	tail := b.Tail(3)
	if len(tail) != 6 || tail[0] != 2 {
		t.Fatalf("Tail(3) = %v", tail)
	}
	if got := b.Tail(10); len(got) != 8 {
		t.Fatalf("Tail beyond Rows returned %d values, want 8", len(got))
	}
	if got := b.Tail(-1); len(got) != 0 {
		t.Fatalf("Tail(-1) returned %d values, want 0", len(got))
	}

	b.KeepTail(2)
	if b.Rows() != 2 {
		t.Fatalf("Rows() = %d after KeepTail, want 2", b.Rows())
	}
	want := []float32{3, 3, 4, 4}
	for i, v := range want {
		if b.Samples()[i] != v {
			t.Fatalf("Samples()[%d] = %v, want %v", i, b.Samples()[i], v)
		}
	}
}

func TestKeepTailZeroEmpties(t *testing.T) {
	b := New(1, 2)
	b.AppendRows([]float32{1, 2})
	b.KeepTail(0)
	if b.Rows() != 0 {
		t.Fatalf("Rows() = %d, want 0", b.Rows())
	}
}

func TestResetSwitchesChannels(t *testing.T) {
	b := New(2, 4)
	b.AppendRows([]float32{1, 2, 3, 4})
	b.Reset(4)
	if b.Rows() != 0 || b.Channels() != 4 {
		t.Fatalf("Rows/Channels = %d/%d, want 0/4", b.Rows(), b.Channels())
	}
}

func TestKeepTailThenAppendSlides(t *testing.T) {
	b := New(1, 6)
	backing := &b.Samples()[:1][0]
	b.AppendRows([]float32{1, 2, 3})
	for _, next := range [][]float32{{4, 5, 6}, {7}, {8, 9}} {
		b.KeepTail(2)
		b.AppendRows(next)
	}
	want := []float32{6, 7, 8, 9}
	if b.Rows() != len(want) {
		t.Fatalf("Rows() = %d, want %d", b.Rows(), len(want))
	}
	for i, v := range want {
		if b.Samples()[i] != v {
			t.Fatalf("Samples()[%d] = %v, want %v", i, b.Samples()[i], v)
		}
	}
	if &b.Samples()[0] != backing {
		t.Fatal("sliding within capacity should keep the backing array")
	}
}
