package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"
	"golang.org/x/text/language"

	"github.com/rebzseven/rebzseven/internal/config"
	"github.com/rebzseven/rebzseven/internal/library/catalog"
	"github.com/rebzseven/rebzseven/internal/library/query"
	"github.com/rebzseven/rebzseven/internal/library/seed"
	"github.com/rebzseven/rebzseven/internal/logger"
)

// Runner holds the dependencies shared by the CLI commands.
type Runner struct {
	output    io.Writer
	logOutput io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Output    io.Writer // command results (default: os.Stdout)
	LogOutput io.Writer // console logs (default: os.Stderr)
}

// NewRunner creates a new Runner with the provided options.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.LogOutput == nil {
		opts.LogOutput = os.Stderr
	}
	return &Runner{output: opts.Output, logOutput: opts.LogOutput}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		serveCommand, browseCommand, similarCommand, seedCommand,
	} {
		commands = append(commands, fn(r))
	}
	return commands
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to configuration file",
	}
}

func seedFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "seed",
		Usage: "Catalog seed file (overrides catalog.seed_path)",
	}
}

func (r *Runner) loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path := cmd.String("seed"); path != "" {
		cfg.Catalog.SeedPath = path
	}
	return cfg, nil
}

func (r *Runner) newLogger(cfg *config.Config) *logger.Logger {
	return logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Path:       cfg.Logging.Path,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Compress:   cfg.Logging.Compress,
		Output:     r.logOutput,
	})
}

// newAllocator maps the configured id strategy to an allocator. Sequence ids
// continue after the highest numeric id in the seed.
func newAllocator(strategy string) catalog.IDAllocator {
	if strategy == config.IDStrategySequence {
		return catalog.NewSequenceAllocator("", 0)
	}
	return catalog.UUIDAllocator{}
}

func newEngine(cfg *config.Config) (*query.Engine, error) {
	lang, err := language.Parse(cfg.Catalog.Locale)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog.locale %q: %w", cfg.Catalog.Locale, err)
	}
	return query.NewEngine(lang, cfg.Catalog.SimilarLimit), nil
}

// openStore loads the configured seed into a store. hub may be nil.
func openStore(cfg *config.Config, hub catalog.Broadcaster, log zerolog.Logger) (*catalog.Store, error) {
	data, err := seed.Load(cfg.Catalog.SeedPath)
	if err != nil {
		return nil, err
	}
	store, err := catalog.NewStore(data, newAllocator(cfg.Catalog.IDStrategy), hub, log)
	if err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return store, nil
}

func (r *Runner) writeJSON(data any) error {
	enc := json.NewEncoder(r.output)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
