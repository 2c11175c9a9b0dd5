package markov

import (
	"go/build"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// newTestModel creates a model and ingests the given samples, failing
// the test on any ingestion error.
func newTestModel(t *testing.T, samples ...string) *Model {
	t.Helper()
	m := New()
	for _, sample := range samples {
		if err := m.Ingest(sample); err != nil {
			t.Fatalf("Ingest(%q) failed: %v", sample, err)
		}
	}
	return m
}

var (
	benchmarkCorpus []string
	corpusOnce      sync.Once
)

// createBenchmarkCorpus reads Go source files and splits them into
// line-sized samples for benchmarking.
func createBenchmarkCorpus() []string {
	corpusOnce.Do(func() {
		goRoot := build.Default.GOROOT
		filesToRead := []string{
			filepath.Join(goRoot, "src/net/http/server.go"),
			filepath.Join(goRoot, "src/go/parser/parser.go"),
		}

		for _, file := range filesToRead {
			content, err := os.ReadFile(file)
			if err != nil {
				benchmarkCorpus = []string{"this is a fallback corpus for benchmarking. it is short but will prevent a crash."}
				return
			}
			for _, line := range strings.Split(string(content), "\n") {
				if strings.TrimSpace(line) != "" {
					benchmarkCorpus = append(benchmarkCorpus, line)
				}
			}
		}
	})
	return benchmarkCorpus
}
