package tui

import (
	"strings"
	"testing"
)

func TestRingBuffer_PushAndSlice(t *testing.T) {
	rb := NewRingBuffer(3)

	if rb.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", rb.Len())
	}

	rb.Push(1)
	rb.Push(2)
	got := rb.Slice()
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("Slice() = %v, want [1 2]", got)
	}

	// Overflow evicts the oldest sample
	rb.Push(3)
	rb.Push(4)
	got = rb.Slice()
	if len(got) != 3 || got[0] != 2 || got[2] != 4 {
		t.Errorf("Slice() after overflow = %v, want [2 3 4]", got)
	}
}

func TestRingBuffer_Last(t *testing.T) {
	rb := NewRingBuffer(2)

	if rb.Last() != 0 {
		t.Errorf("Last() on empty buffer = %v, want 0", rb.Last())
	}

	rb.Push(7)
	rb.Push(9)
	rb.Push(11)
	if rb.Last() != 11 {
		t.Errorf("Last() = %v, want 11", rb.Last())
	}
}

func TestRingBuffer_Resize(t *testing.T) {
	rb := NewRingBuffer(5)
	for i := 1; i <= 5; i++ {
		rb.Push(float64(i))
	}

	// Shrinking keeps the most recent samples
	rb.Resize(3)
	got := rb.Slice()
	if len(got) != 3 || got[0] != 3 || got[2] != 5 {
		t.Errorf("Slice() after shrink = %v, want [3 4 5]", got)
	}
	if rb.Cap() != 3 {
		t.Errorf("Cap() = %d, want 3", rb.Cap())
	}

	// Growing preserves contents
	rb.Resize(6)
	got = rb.Slice()
	if len(got) != 3 || got[0] != 3 {
		t.Errorf("Slice() after grow = %v, want [3 4 5]", got)
	}

	rb.Push(6)
	if rb.Last() != 6 {
		t.Errorf("Last() after grow+push = %v, want 6", rb.Last())
	}
}

func TestRingBuffer_Reset(t *testing.T) {
	rb := NewRingBuffer(3)
	rb.Push(1)
	rb.Push(2)

	rb.Reset()
	if rb.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", rb.Len())
	}
	if rb.Cap() != 3 {
		t.Errorf("Cap() after Reset = %d, want 3", rb.Cap())
	}
}

func TestRingBuffer_MinimumCapacity(t *testing.T) {
	rb := NewRingBuffer(0)
	if rb.Cap() != 1 {
		t.Errorf("Cap() = %d, want 1", rb.Cap())
	}
	rb.Push(42)
	if rb.Last() != 42 {
		t.Errorf("Last() = %v, want 42", rb.Last())
	}
}

func TestRenderSparkline(t *testing.T) {
	t.Run("empty input pads with spaces", func(t *testing.T) {
		got := RenderSparkline(nil, 4)
		if got != "    " {
			t.Errorf("RenderSparkline(nil, 4) = %q, want four spaces", got)
		}
	})

	t.Run("zero width", func(t *testing.T) {
		if got := RenderSparkline([]float64{50}, 0); got != "" {
			t.Errorf("RenderSparkline(_, 0) = %q, want empty", got)
		}
	})

	t.Run("extremes map to lowest and highest blocks", func(t *testing.T) {
		got := RenderSparkline([]float64{0, 100}, 2)
		want := "▁█"
		if got != want {
			t.Errorf("RenderSparkline = %q, want %q", got, want)
		}
	})

	t.Run("out of range values are clamped", func(t *testing.T) {
		got := RenderSparkline([]float64{-10, 250}, 2)
		want := "▁█"
		if got != want {
			t.Errorf("RenderSparkline = %q, want %q", got, want)
		}
	})

	t.Run("right aligned when fewer values than width", func(t *testing.T) {
		got := RenderSparkline([]float64{100}, 3)
		if !strings.HasPrefix(got, "  ") || !strings.HasSuffix(got, "█") {
			t.Errorf("RenderSparkline = %q, want two spaces then full block", got)
		}
	})

	t.Run("truncates to the most recent values", func(t *testing.T) {
		got := RenderSparkline([]float64{0, 0, 0, 100, 100}, 2)
		want := "██"
		if got != want {
			t.Errorf("RenderSparkline = %q, want %q", got, want)
		}
	})
}
