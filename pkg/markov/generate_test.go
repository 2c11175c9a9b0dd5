package markov

import (
	"errors"
	"strings"
	"testing"
)

func TestGenerateSinglePath(t *testing.T) {
	m := newTestModel(t, "one fish two fish")

	// Every token has exactly one successor, so the walk is fully
	// determined despite the random draw.
	output, err := m.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if output != "one fish two fish" {
		t.Errorf("Generate() = %q, want %q", output, "one fish two fish")
	}
}

func TestGenerateEmptyModel(t *testing.T) {
	m := New()

	_, err := m.Generate()
	if !errors.Is(err, ErrDeadEnd) {
		t.Fatalf("expected ErrDeadEnd from an empty model, got %v", err)
	}
}

func TestGenerateNeverEmitsSentinels(t *testing.T) {
	m := newTestModel(t,
		"one fish two fish",
		"red fish blue fish",
		"one red fish swims",
	)

	for i := 0; i < 200; i++ {
		output, err := m.Generate()
		if err != nil {
			t.Fatalf("Generate failed on attempt %d: %v", i, err)
		}
		if output == "" {
			t.Fatal("Generate returned an empty sentence")
		}
		if strings.Contains(output, SOCToken) || strings.Contains(output, EOCToken) {
			t.Fatalf("Generate leaked a sentinel: %q", output)
		}
	}
}

func TestGenerateDeadEndMidWalk(t *testing.T) {
	// A table where "a" has no entry at all can only come from a
	// malformed or hand-built blob; the walk must fail, not hang or
	// return a partial sentence silently.
	blob := `{"version":1,"table":{"<SOC>":["a"]}}`
	m, err := Restore(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	_, err = m.Generate()
	if !errors.Is(err, ErrDeadEnd) {
		t.Fatalf("expected ErrDeadEnd, got %v", err)
	}
	if err != nil && !strings.Contains(err.Error(), `"a"`) {
		t.Errorf("error should name the dead-end token, got %q", err.Error())
	}
}

func TestGenerateMaxSteps(t *testing.T) {
	// A self-loop that never reaches <EOC>.
	blob := `{"version":1,"table":{"<SOC>":["a"],"a":["a"]}}`
	m, err := Restore(strings.NewReader(blob))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	_, err = m.Generate(WithMaxSteps(25))
	if !errors.Is(err, ErrMaxSteps) {
		t.Fatalf("expected ErrMaxSteps, got %v", err)
	}

	// The model-wide default applies when no per-call option is given.
	m2, err := Restore(strings.NewReader(blob), WithDefaultMaxSteps(10))
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if _, err = m2.Generate(); !errors.Is(err, ErrMaxSteps) {
		t.Fatalf("expected ErrMaxSteps from model default, got %v", err)
	}
}

func TestGenerateUncapped(t *testing.T) {
	m := newTestModel(t, "a b c d e")

	// WithMaxSteps(0) disables the cap; a terminating table must still
	// finish.
	output, err := m.Generate(WithMaxSteps(0))
	if err != nil {
		t.Fatalf("Generate without cap failed: %v", err)
	}
	if output != "a b c d e" {
		t.Errorf("Generate() = %q, want %q", output, "a b c d e")
	}
}

func BenchmarkGenerate(b *testing.B) {
	corpus := createBenchmarkCorpus()
	m := New()
	for _, sample := range corpus {
		if err := m.Ingest(sample); err != nil {
			b.Fatalf("Ingest setup failed: %v", err)
		}
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s, err := m.Generate()
		if err != nil {
			b.Fatalf("Generate failed: %v", err)
		}
		b.SetBytes(int64(len(s)))
	}
}
