package sysmon

import "testing"

func TestSample_ReturnsValidRanges(t *testing.T) {
	s := Sample()
	if s.CPUPercent < 0 || s.CPUPercent > 100 {
		t.Errorf("CPUPercent out of range: %f", s.CPUPercent)
	}
	if s.MemPercent < 0 || s.MemPercent > 100 {
		t.Errorf("MemPercent out of range: %f", s.MemPercent)
	}
}

func TestSample_MemPercentNonZero(t *testing.T) {
	s := Sample()
	if s.MemPercent == 0 {
		t.Error("expected non-zero MemPercent on a running system")
	}
}

func TestSample_RepeatedCallsStayInRange(t *testing.T) {
	// The first CPU reading uses interval=0 and may be zero; later deltas
	// must still land in range.
	for i := 0; i < 3; i++ {
		s := Sample()
		if s.CPUPercent < 0 || s.CPUPercent > 100 {
			t.Fatalf("sample %d: CPUPercent out of range: %f", i, s.CPUPercent)
		}
	}
}
