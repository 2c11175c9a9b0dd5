package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/voleinikov/markov-twitter-cli/pkg/markov"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "markovtwitter: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := LoadConfig("./config.json")
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(config.LogLevel)}))

	if err = godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded, using environment variables only", "error", err)
	}

	if err = os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := initDB(config.CachePath)
	if err != nil {
		return fmt.Errorf("failed to initialize cache database: %w", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err = SetupCacheSchema(db); err != nil {
		return err
	}

	store, err := NewModelStore(db, logger)
	if err != nil {
		return fmt.Errorf("failed to create model store: %w", err)
	}
	defer store.Close()

	app := &App{
		config: config,
		logger: logger,
		store:  store,
		source: NewTimelineClient(config.APIBaseURL, logger),
		models: make(map[string]*markov.Model),
	}

	logger.Info("markovtwitter starting", "version", Version)
	return app.Loop(context.Background(), os.Stdin, os.Stdout)
}

// App holds the CLI state: one in-memory model per seed user, plus the
// cache store and timeline source behind it.
type App struct {
	config *Config
	logger *slog.Logger
	store  *ModelStore
	source SampleSource
	models map[string]*markov.Model
	seed   string
}

const menu = `
 [1] choose seed user
 [2] fetch timeline and train
 [3] generate sentences
 [4] model stats
 [5] prune model
 [6] save model to cache
 [7] load model from cache
 [8] forget cached model
 [9] list cached models
 [q] quit
`

// Loop runs the interactive menu until EOF or quit.
func (a *App) Loop(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	for {
		_, _ = fmt.Fprint(out, menu)
		_, _ = fmt.Fprintf(out, "[%s]> ", a.seedLabel())
		if !scanner.Scan() {
			return scanner.Err()
		}

		switch choice := strings.TrimSpace(scanner.Text()); choice {
		case "1":
			a.chooseSeed(scanner, out)
		case "2":
			a.fetchAndTrain(ctx, out)
		case "3":
			a.generate(out)
		case "4":
			a.stats(out)
		case "5":
			a.prune(scanner, out)
		case "6":
			a.saveCached(ctx, out)
		case "7":
			a.loadCached(ctx, out)
		case "8":
			a.forgetCached(ctx, out)
		case "9":
			a.listCached(ctx, out)
		case "q", "quit", "exit":
			return nil
		default:
			_, _ = fmt.Fprintf(out, "unknown option %q\n", choice)
		}
	}
}

func (a *App) seedLabel() string {
	if a.seed == "" {
		return "no seed"
	}
	return a.seed
}

// model returns the in-memory model for the current seed, creating an
// empty one on first use.
func (a *App) model() *markov.Model {
	m, ok := a.models[a.seed]
	if !ok {
		m = markov.New(
			markov.WithLogger(a.logger),
			markov.WithDefaultMaxSteps(a.config.MaxSteps),
		)
		a.models[a.seed] = m
	}
	return m
}

func (a *App) requireSeed(out io.Writer) bool {
	if a.seed == "" {
		_, _ = fmt.Fprintln(out, "choose a seed user first")
		return false
	}
	return true
}

func (a *App) chooseSeed(scanner *bufio.Scanner, out io.Writer) {
	_, _ = fmt.Fprint(out, "seed user name: ")
	if !scanner.Scan() {
		return
	}
	seed := strings.TrimSpace(scanner.Text())
	if seed == "" {
		_, _ = fmt.Fprintln(out, "seed name cannot be empty")
		return
	}
	a.seed = seed
}

func (a *App) fetchAndTrain(ctx context.Context, out io.Writer) {
	if !a.requireSeed(out) {
		return
	}

	samples, err := a.source.Samples(ctx, a.seed, a.config.TimelineSize)
	if err != nil {
		_, _ = fmt.Fprintf(out, "fetch failed: %v\n", err)
		return
	}

	m := a.model()
	var skipped int
	for _, sample := range samples {
		if err := m.Ingest(sample); err != nil {
			// A bad sample is recoverable; skip it and keep training.
			a.logger.Warn("sample skipped", "seed_name", a.seed, "error", err)
			skipped++
		}
	}
	_, _ = fmt.Fprintf(out, "trained on %d samples (%d skipped)\n", len(samples)-skipped, skipped)

	if err := a.store.Save(ctx, a.seed, m); err != nil {
		_, _ = fmt.Fprintf(out, "warning: could not cache model: %v\n", err)
	}
}

func (a *App) generate(out io.Writer) {
	if !a.requireSeed(out) {
		return
	}
	m := a.model()

	for i := 0; i < a.config.SentenceCount; i++ {
		sentence, err := m.Generate()
		switch {
		case errors.Is(err, markov.ErrDeadEnd):
			_, _ = fmt.Fprintf(out, "(%d) walk hit a dead end, try again or train more\n", i+1)
		case errors.Is(err, markov.ErrMaxSteps):
			_, _ = fmt.Fprintf(out, "(%d) walk ran too long, try again\n", i+1)
		case err != nil:
			_, _ = fmt.Fprintf(out, "generation failed: %v\n", err)
			return
		default:
			_, _ = fmt.Fprintf(out, "(%d) %s\n", i+1, sentence)
		}
	}
}

func (a *App) stats(out io.Writer) {
	if !a.requireSeed(out) {
		return
	}
	stats := a.model().Stats()
	_, _ = fmt.Fprintf(out, "tokens: %d, transitions: %d, starters: %d\n",
		stats.Tokens, stats.Transitions, stats.Starters)
}

func (a *App) prune(scanner *bufio.Scanner, out io.Writer) {
	if !a.requireSeed(out) {
		return
	}
	_, _ = fmt.Fprint(out, "minimum repetition count to keep: ")
	if !scanner.Scan() {
		return
	}
	minCount, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil || minCount < 1 {
		_, _ = fmt.Fprintln(out, "expected a positive number")
		return
	}
	removed := a.model().Prune(minCount)
	_, _ = fmt.Fprintf(out, "removed %d transitions\n", removed)
}

func (a *App) saveCached(ctx context.Context, out io.Writer) {
	if !a.requireSeed(out) {
		return
	}
	if err := a.store.Save(ctx, a.seed, a.model()); err != nil {
		_, _ = fmt.Fprintf(out, "save failed: %v\n", err)
		return
	}
	_, _ = fmt.Fprintf(out, "model for %q cached\n", a.seed)
}

func (a *App) loadCached(ctx context.Context, out io.Writer) {
	if !a.requireSeed(out) {
		return
	}

	m, err := a.store.Load(ctx, a.seed,
		markov.WithLogger(a.logger),
		markov.WithDefaultMaxSteps(a.config.MaxSteps),
	)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, _ = fmt.Fprintf(out, "no cached model for %q\n", a.seed)
		return
	case errors.Is(err, markov.ErrRestore):
		// A corrupt blob is not fatal; start over with an empty model.
		a.logger.Warn("cached model is invalid, starting fresh", "seed_name", a.seed, "error", err)
		m = markov.New(
			markov.WithLogger(a.logger),
			markov.WithDefaultMaxSteps(a.config.MaxSteps),
		)
	case err != nil:
		_, _ = fmt.Fprintf(out, "load failed: %v\n", err)
		return
	}

	a.models[a.seed] = m
	stats := m.Stats()
	_, _ = fmt.Fprintf(out, "loaded model for %q (%d tokens)\n", a.seed, stats.Tokens)
}

func (a *App) forgetCached(ctx context.Context, out io.Writer) {
	if !a.requireSeed(out) {
		return
	}
	if err := a.store.Delete(ctx, a.seed); err != nil {
		_, _ = fmt.Fprintf(out, "delete failed: %v\n", err)
		return
	}
	delete(a.models, a.seed)
	_, _ = fmt.Fprintf(out, "forgot cached model for %q\n", a.seed)
}

func (a *App) listCached(ctx context.Context, out io.Writer) {
	entries, err := a.store.List(ctx)
	if err != nil {
		_, _ = fmt.Fprintf(out, "list failed: %v\n", err)
		return
	}
	if len(entries) == 0 {
		_, _ = fmt.Fprintln(out, "cache is empty")
		return
	}
	for _, entry := range entries {
		_, _ = fmt.Fprintf(out, "%s (updated %s)\n", entry.SeedName, entry.UpdatedAt.Format("2006-01-02 15:04"))
	}
}
