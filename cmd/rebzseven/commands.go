package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/rebzseven/rebzseven/internal/api"
	"github.com/rebzseven/rebzseven/internal/library/catalog"
	"github.com/rebzseven/rebzseven/internal/library/query"
	"github.com/rebzseven/rebzseven/internal/library/seed"
	"github.com/rebzseven/rebzseven/internal/logger"
	"github.com/rebzseven/rebzseven/internal/websocket"
)

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the catalog HTTP server",
		Flags: []cli.Flag{
			configFlag(),
			seedFlag(),
			&cli.IntFlag{
				Name:  "port",
				Usage: "Listen port (overrides server.port)",
			},
		},
		Action: r.Serve,
	}
}

// Serve runs the HTTP API and the websocket hub until SIGINT or SIGTERM.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	if port := cmd.Int("port"); port != 0 {
		cfg.Server.Port = port
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log := r.newLogger(cfg)
	defer log.Close()

	engine, err := newEngine(cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	hub := websocket.NewHub(log.Logger)
	store, err := openStore(cfg, hub, log.Logger)
	if err != nil {
		return err
	}
	defer store.Close()

	hub.SetGreeting(func() (string, any) {
		return catalog.EventFeaturedUpdated, store.Featured()
	})
	go hub.Run(ctx)

	server := api.NewServer(store, engine, hub, log.Logger)

	errCh := make(chan error, 1)
	go func() {
		if err := server.Start(cfg.Server.Address()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("received shutdown signal")
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}
	log.Info().Msg("server stopped")
	return nil
}

func browseCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "browse",
		Usage: "List catalog content",
		Flags: []cli.Flag{
			configFlag(),
			seedFlag(),
			&cli.StringFlag{Name: "tab", Usage: "all, movie or series", Value: string(query.TabAll)},
			&cli.StringFlag{Name: "genre", Usage: "Only content tagged with this genre"},
			&cli.StringFlag{Name: "search", Aliases: []string{"q"}, Usage: "Case-insensitive title or description match"},
			&cli.StringFlag{Name: "sort", Usage: "year or title", Value: string(query.SortYear)},
			&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of a table"},
		},
		Action: r.Browse,
	}
}

// Browse prints the result of a browse query against the seed catalog.
func (r *Runner) Browse(ctx context.Context, cmd *cli.Command) error {
	store, engine, closeFn, err := r.openReadOnly(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	items, err := engine.Browse(store.Snapshot(), query.BrowseOptions{
		Tab:    query.Tab(cmd.String("tab")),
		Genre:  cmd.String("genre"),
		Search: cmd.String("search"),
		SortBy: query.SortBy(cmd.String("sort")),
	})
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(items)
	}
	return r.writeContentTable(items)
}

func similarCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "similar",
		Usage:     "List content sharing a genre with a movie or series",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			configFlag(),
			seedFlag(),
			&cli.BoolFlag{Name: "series", Usage: "Look up a series instead of a movie"},
			&cli.IntFlag{Name: "limit", Usage: "Maximum results (default: catalog.similar_limit)"},
			&cli.BoolFlag{Name: "json", Usage: "Print JSON instead of a table"},
		},
		Action: r.Similar,
	}
}

// Similar prints the movies or series similar to the given id.
func (r *Runner) Similar(ctx context.Context, cmd *cli.Command) error {
	id := cmd.Args().First()
	if id == "" {
		return fmt.Errorf("id is required")
	}

	store, engine, closeFn, err := r.openReadOnly(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	snap := store.Snapshot()
	var items []catalog.MediaContent
	if cmd.Bool("series") {
		series, err := engine.SimilarSeries(snap, id, cmd.Int("limit"))
		if err != nil {
			return err
		}
		for _, s := range series {
			items = append(items, s.Content())
		}
	} else {
		movies, err := engine.SimilarMovies(snap, id, cmd.Int("limit"))
		if err != nil {
			return err
		}
		for _, m := range movies {
			items = append(items, m.Content())
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(items)
	}
	return r.writeContentTable(items)
}

func seedCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Inspect catalog seed files",
		Commands: []*cli.Command{
			{
				Name:   "check",
				Usage:  "Validate a seed file and print its counts",
				Flags:  []cli.Flag{configFlag(), seedFlag()},
				Action: r.SeedCheck,
			},
			{
				Name:  "export",
				Usage: "Write the configured seed as YAML",
				Flags: []cli.Flag{
					configFlag(),
					seedFlag(),
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Destination file (default: stdout)",
					},
				},
				Action: r.SeedExport,
			},
		},
	}
}

// SeedCheck validates the configured seed.
func (r *Runner) SeedCheck(ctx context.Context, cmd *cli.Command) error {
	store, _, closeFn, err := r.openReadOnly(cmd)
	if err != nil {
		return err
	}
	defer closeFn()

	st := store.Snapshot().Stats()
	fmt.Fprintf(r.output, "✓ Seed is valid\n")
	fmt.Fprintf(r.output, "  Movies:   %d\n", st.Movies)
	fmt.Fprintf(r.output, "  Series:   %d (%d seasons, %d episodes)\n", st.Series, st.Seasons, st.Episodes)
	fmt.Fprintf(r.output, "  Featured: %d\n", st.Featured)
	return nil
}

// SeedExport writes the configured seed, which is the built-in catalog
// unless a seed path is set.
func (r *Runner) SeedExport(ctx context.Context, cmd *cli.Command) error {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := seed.Load(cfg.Catalog.SeedPath)
	if err != nil {
		return err
	}
	if err := catalog.ValidateSeed(data); err != nil {
		return fmt.Errorf("invalid seed: %w", err)
	}

	path := cmd.String("output")
	if path == "" {
		return seed.Write(r.output, data)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := seed.Write(f, data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// openReadOnly builds a store and engine without change events. Console
// logging is raised to warn so command output stays clean.
func (r *Runner) openReadOnly(cmd *cli.Command) (*catalog.Store, *query.Engine, func(), error) {
	cfg, err := r.loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	if logger.ParseLevel(cfg.Logging.Level) < zerolog.WarnLevel {
		cfg.Logging.Level = "warn"
	}
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, nil, nil, err
	}

	log := r.newLogger(cfg)
	store, err := openStore(cfg, nil, log.Logger)
	if err != nil {
		log.Close()
		return nil, nil, nil, err
	}
	return store, engine, func() {
		store.Close()
		log.Close()
	}, nil
}

func (r *Runner) writeContentTable(items []catalog.MediaContent) error {
	w := tabwriter.NewWriter(r.output, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tYEAR\tTITLE\tGENRES")
	for _, item := range items {
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n", item.ID, item.Type, item.ReleaseYear, item.Title, strings.Join(item.Genre, ", "))
	}
	return w.Flush()
}
