package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/certlab/certmeter/internal/cert/consistency"
	"github.com/certlab/certmeter/internal/cert/coordination"
	"github.com/certlab/certmeter/internal/ui"
)

func init() {
	// Stable, color-free output for assertions.
	ui.SetTheme("none")
}

func sampleConsistency() consistency.Result {
	return consistency.Result{
		AgentID:      "support-bot",
		PromptDigest: "abc123",
		Score:        0.9137,
		MeanDistance: 0.2,
		StdDistance:  0.0173,
		PairCount:    10,
	}
}

func TestDisplayConsistencyResult(t *testing.T) {
	t.Run("standard mode", func(t *testing.T) {
		var out bytes.Buffer
		DisplayConsistencyResult(&out, sampleConsistency(), OutputConfig{})

		got := out.String()
		for _, want := range []string{"support-bot", "0.9137", "Pairs compared:  10"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
		if strings.Contains(got, "abc123") {
			t.Error("prompt digest should only appear in verbose mode")
		}
	})

	t.Run("verbose mode includes digest", func(t *testing.T) {
		var out bytes.Buffer
		DisplayConsistencyResult(&out, sampleConsistency(), OutputConfig{Verbose: true})

		if !strings.Contains(out.String(), "abc123") {
			t.Error("verbose output should include the prompt digest")
		}
	})

	t.Run("quiet mode prints only the score", func(t *testing.T) {
		var out bytes.Buffer
		DisplayConsistencyResult(&out, sampleConsistency(), OutputConfig{Quiet: true})

		if got := out.String(); got != "0.9137\n" {
			t.Errorf("quiet output = %q, want %q", got, "0.9137\n")
		}
	})
}

func TestDisplayCoordinationResult(t *testing.T) {
	input := coordination.Input{
		AgentAID: "planner",
		AgentBID: "executor",
		Pattern:  coordination.PatternSequential,
	}
	result := coordination.Result{
		Effect:                   1.0667,
		BaselineReference:        0.825,
		Classification:           coordination.ClassSynergy,
		PerformanceChangePercent: 6.67,
	}

	t.Run("standard mode", func(t *testing.T) {
		var out bytes.Buffer
		DisplayCoordinationResult(&out, input, result, OutputConfig{})

		got := out.String()
		for _, want := range []string{"planner", "executor", "sequential", "1.0667", "synergy", "+6.67%"} {
			if !strings.Contains(got, want) {
				t.Errorf("output missing %q:\n%s", want, got)
			}
		}
	})

	t.Run("out-of-range warning", func(t *testing.T) {
		flagged := result
		flagged.OutOfRange = true

		var out bytes.Buffer
		DisplayCoordinationResult(&out, input, flagged, OutputConfig{})

		if !strings.Contains(out.String(), "[0,1]") {
			t.Error("output should warn about out-of-range inputs")
		}
	})

	t.Run("quiet mode", func(t *testing.T) {
		var out bytes.Buffer
		DisplayCoordinationResult(&out, input, result, OutputConfig{Quiet: true})

		if got := out.String(); got != "1.0667 synergy\n" {
			t.Errorf("quiet output = %q, want %q", got, "1.0667 synergy\n")
		}
	})
}

func TestWriteResultToFile(t *testing.T) {
	t.Run("empty path is a no-op", func(t *testing.T) {
		if err := WriteResultToFile("", sampleConsistency()); err != nil {
			t.Errorf("WriteResultToFile(\"\") error = %v", err)
		}
	})

	t.Run("writes round-trippable JSON", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "results", "out.json")
		if err := WriteResultToFile(path, sampleConsistency()); err != nil {
			t.Fatalf("WriteResultToFile() error = %v", err)
		}

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("read output: %v", err)
		}

		var got consistency.Result
		if err := json.Unmarshal(data, &got); err != nil {
			t.Fatalf("unmarshal output: %v", err)
		}
		if got != sampleConsistency() {
			t.Errorf("round-trip = %+v, want %+v", got, sampleConsistency())
		}
	})
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		name     string
		progress float64
		filled   int
	}{
		{"empty", 0.0, 0},
		{"half", 0.5, 5},
		{"full", 1.0, 10},
		{"overflow clamps", 1.5, 10},
		{"negative clamps", -0.5, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := progressBar(tt.progress, 10)
			if got := strings.Count(bar, "█"); got != tt.filled {
				t.Errorf("progressBar(%v, 10) filled = %d, want %d", tt.progress, got, tt.filled)
			}
			if runeLen := len([]rune(bar)); runeLen != 10 {
				t.Errorf("progressBar length = %d, want 10", runeLen)
			}
		})
	}
}
