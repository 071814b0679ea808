// Package gitdungeon parses run command configuration and drives an
// auto-played dungeon run from a commit history export.
package gitdungeon

import (
	"context"
	"flag"
	"fmt"
	"os"

	"go.opentelemetry.io/otel"

	"github.com/louisbranch/gitdungeon/internal/commit"
	"github.com/louisbranch/gitdungeon/internal/content"
	"github.com/louisbranch/gitdungeon/internal/difficulty"
	"github.com/louisbranch/gitdungeon/internal/journal"
	journalsqlite "github.com/louisbranch/gitdungeon/internal/journal/sqlite"
	entrypoint "github.com/louisbranch/gitdungeon/internal/platform/cmd"
	"github.com/louisbranch/gitdungeon/internal/random"
)

// Config holds run command configuration.
type Config struct {
	Seed        int64    `env:"GITDUNGEON_SEED"`
	CharacterID string   `env:"GITDUNGEON_CHARACTER" envDefault:"debug_beatdown"`
	Difficulty  string   `env:"GITDUNGEON_DIFFICULTY" envDefault:"normal"`
	Mutator     string   `env:"GITDUNGEON_MUTATOR" envDefault:"none"`
	Locale      string   `env:"GITDUNGEON_LOCALE" envDefault:"en-US"`
	CommitsPath string   `env:"GITDUNGEON_COMMITS"`
	PackPaths   []string `env:"GITDUNGEON_PACKS" envSeparator:","`
	JournalPath string   `env:"GITDUNGEON_JOURNAL"`
}

// ParseConfig loads env defaults and then applies flag overrides.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "run seed (0 = random)")
	fs.StringVar(&cfg.CharacterID, "character", cfg.CharacterID, "character archetype id")
	fs.StringVar(&cfg.Difficulty, "difficulty", cfg.Difficulty, "difficulty level (normal, hard)")
	fs.StringVar(&cfg.Mutator, "mutator", cfg.Mutator, "mutator preset (none, hard)")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "render locale")
	fs.StringVar(&cfg.CommitsPath, "commits", cfg.CommitsPath, "commit history JSON export (empty = built-in sample)")
	fs.StringVar(&cfg.JournalPath, "journal", cfg.JournalPath, "journal SQLite path (empty = no journal)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run executes one full dungeon run from the configured commit history.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceGitDungeon, func(ctx context.Context) error {
		return run(ctx, cfg)
	})
}

func run(ctx context.Context, cfg Config) error {
	tracer := otel.Tracer(entrypoint.ServiceGitDungeon)

	level, err := difficulty.ParseLevel(cfg.Difficulty)
	if err != nil {
		return err
	}
	mutator, err := difficulty.GetMutator(cfg.Mutator)
	if err != nil {
		return err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed, err = random.NewSeed()
		if err != nil {
			return fmt.Errorf("generate seed: %w", err)
		}
	}

	_, loadSpan := tracer.Start(ctx, "content.load")
	reg, err := buildRegistry(cfg.PackPaths)
	loadSpan.End()
	if err != nil {
		return err
	}

	commits, err := loadCommits(cfg.CommitsPath)
	if err != nil {
		return err
	}

	var store journal.Store
	if cfg.JournalPath != "" {
		store, err = journalsqlite.Open(cfg.JournalPath)
		if err != nil {
			return err
		}
		defer store.Close()
	}

	runner := &Runner{
		Registry:    reg,
		Level:       level,
		Mutator:     mutator,
		CharacterID: cfg.CharacterID,
		Journal:     store,
		Renderer:    NewRenderer(os.Stdout, cfg.Locale),
	}

	runCtx, runSpan := tracer.Start(ctx, "run.play")
	defer runSpan.End()
	return runner.Play(runCtx, seed, commits)
}

// loadCommits reads a commit history export, or falls back to the
// built-in sample history when no path is configured.
func loadCommits(path string) ([]commit.Commit, error) {
	if path == "" {
		return sampleHistory(), nil
	}
	return readCommitsFile(path)
}

// buildRegistry assembles base content plus configured packs, in order.
func buildRegistry(packPaths []string) (*content.Registry, error) {
	builder, err := content.NewBaseBuilder()
	if err != nil {
		return nil, err
	}
	for _, path := range packPaths {
		pack, err := content.LoadPack(path)
		if err != nil {
			return nil, err
		}
		if err := builder.ApplyPack(*pack); err != nil {
			return nil, err
		}
	}
	return builder.Build()
}
