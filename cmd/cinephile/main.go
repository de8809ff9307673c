package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/cinephile/internal/adapter"
	"github.com/mmcdole/cinephile/internal/catalog"
	"github.com/mmcdole/cinephile/internal/domain"
	"github.com/mmcdole/cinephile/internal/library"
	"github.com/mmcdole/cinephile/internal/store"
	"github.com/mmcdole/cinephile/internal/tui"
	"github.com/mmcdole/cinephile/internal/tui/styles"
	"github.com/mmcdole/cinephile/internal/watch"
	"golang.org/x/term"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                              \r"

// flags holds the parsed command line
type flags struct {
	catalogFile string
	importFile  bool
	list        bool
	cached      bool
	clearCache  bool
	pageSize    int

	search   string
	genre    string
	language string
	director string
	actor    string
	music    string
	year     string
}

// selection builds the initial selection from the filter flags
func (f flags) selection(pageSize int) catalog.Selection {
	return catalog.NewSelection(pageSize).
		WithQuery(f.search).
		WithGenre(f.genre).
		WithLanguage(f.language).
		WithDirector(f.director).
		WithActor(f.actor).
		WithMusicDirector(f.music).
		WithYear(f.year)
}

func main() {
	var showVersion bool
	var f flags
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.StringVar(&f.catalogFile, "catalog", "", "catalog file (.json, .yaml, .yml); overrides catalog.file")
	flag.BoolVar(&f.importFile, "import", false, "re-read the catalog file even if the cached snapshot is current")
	flag.BoolVar(&f.list, "list", false, "print the filtered catalog instead of starting the browser")
	flag.BoolVar(&f.cached, "cached", false, "list cached catalog snapshots")
	flag.BoolVar(&f.clearCache, "clear-cache", false, "drop every cached catalog snapshot")
	flag.IntVar(&f.pageSize, "page-size", 0, "movies per page; overrides browse.page_size")
	flag.StringVar(&f.search, "search", "", "search titles, directors, actors and music directors")
	flag.StringVar(&f.genre, "genre", "", "filter by genre")
	flag.StringVar(&f.language, "language", "", "filter by language")
	flag.StringVar(&f.director, "director", "", "filter by director (exact)")
	flag.StringVar(&f.actor, "actor", "", "filter by actor (exact)")
	flag.StringVar(&f.music, "music", "", "filter by music director (exact)")
	flag.StringVar(&f.year, "year", "", "filter by release year")
	flag.Parse()

	if showVersion {
		fmt.Printf("cinephile %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// Load configuration
	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = adapter.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting cinephile", "version", Version)

	catalogStore, err := store.NewCatalogStore(cfg.Catalog.CacheDir)
	if err != nil {
		return fmt.Errorf("failed to open catalog cache: %w", err)
	}
	defer catalogStore.Close()

	svc := library.NewService(catalogStore, logger)

	switch {
	case f.clearCache:
		svc.InvalidateAll()
		fmt.Println("✓ Catalog cache cleared")
		return nil
	case f.cached:
		printCached(os.Stdout, library.NewQueries(catalogStore).Sources())
		return nil
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd()))

	path := f.catalogFile
	if path == "" && cfg.IsConfigured() {
		path = cfg.Catalog.File
	}
	if path == "" {
		if !interactive {
			return fmt.Errorf("%w: pass -catalog or set catalog.file", domain.ErrCatalogMissing)
		}
		if path, err = runSetupFlow(cfg, svc); err != nil {
			return err
		}
	}

	pageSize := cfg.Browse.PageSize
	if f.pageSize > 0 {
		pageSize = f.pageSize
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	movies, info, err := loadCatalog(ctx, svc, path, f.importFile, interactive && !f.list)
	if err != nil {
		return err
	}
	logger.Info("catalog ready", "source", info.Source, "movies", info.Count, "from_cache", info.FromCache)

	engine, err := catalog.NewEngine(movies, logger)
	if err != nil {
		return fmt.Errorf("failed to start catalog: %w", err)
	}

	sel := f.selection(pageSize)

	// Headless output when asked or when stdout is not a terminal
	if f.list || !interactive {
		return printList(os.Stdout, engine.Apply(sel), cfg.UI.ShowMatchReason)
	}

	var events <-chan struct{}
	if cfg.Catalog.Watch {
		w, err := watch.New(path, watch.DefaultSettle, logger)
		if err != nil {
			logger.Warn("catalog watcher unavailable", "error", err)
		} else {
			go func() {
				if err := w.Run(ctx); err != nil {
					logger.Error("catalog watcher stopped", "error", err)
				}
			}()
			events = w.Events()
		}
	}

	launcher := adapter.NewLauncher(cfg.Opener.Command, cfg.Opener.Args, logger)

	model := tui.NewModel(engine, svc, launcher, events, tui.Options{
		CatalogPath:     path,
		PageSize:        pageSize,
		SearchDebounce:  cfg.Browse.SearchDebounce,
		ShowMatchReason: cfg.UI.ShowMatchReason,
		Selection:       &sel,
	}, logger)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// loadCatalog loads (or imports) the catalog, with a spinner when interactive
func loadCatalog(ctx context.Context, svc *library.Service, path string, force, spinner bool) ([]*domain.Movie, domain.CatalogInfo, error) {
	load := svc.Load
	if force {
		load = svc.Import
	}
	if !spinner {
		return load(ctx, path)
	}

	var movies []*domain.Movie
	var info domain.CatalogInfo
	err := withSpinner("Loading catalog...", func() error {
		var err error
		movies, info, err = load(ctx, path)
		return err
	})
	if err != nil {
		return nil, domain.CatalogInfo{}, err
	}

	source := "file"
	if info.FromCache {
		source = "cache"
	}
	fmt.Printf("✓ Loaded %d movies from %s\n", info.Count, source)
	return movies, info, nil
}

// runSetupFlow asks for a catalog file when none is configured, and
// saves it once it loads cleanly
func runSetupFlow(cfg *adapter.Config, svc *library.Service) (string, error) {
	fmt.Println()
	fmt.Println("Welcome to Cinephile!")
	fmt.Println()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("Enter the path to your movie catalog (.json or .yaml): ")
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("failed to read input: %w", err)
		}
		path := strings.TrimSpace(input)

		if path == "" {
			fmt.Println("Catalog path cannot be empty. Please try again.")
			continue
		}

		// Validate with spinner
		fmt.Println()
		var count int
		err = withSpinner("Checking catalog...", func() error {
			_, info, err := svc.Import(context.Background(), path)
			count = info.Count
			return err
		})
		if err != nil {
			fmt.Printf("\n✗ Could not load catalog: %v\n", err)
			fmt.Println("Please check the path and try again.")
			fmt.Println()
			continue
		}
		fmt.Printf("✓ Found %d movies\n", count)

		cfg.Catalog.File = path
		if err := adapter.SaveConfig(cfg); err != nil {
			return "", fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Println("✓ Configuration saved!")
		fmt.Println()
		return path, nil
	}
}

// withSpinner runs fn in the background while animating a spinner
func withSpinner(label string, fn func() error) error {
	done := make(chan error, 1)
	go func() {
		done <- fn()
	}()

	frame := 0
	fmt.Printf("\r%s %s", styles.SpinnerFrames[frame], label)

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-done:
			fmt.Print(clearSpinnerLine)
			return err
		case <-ticker.C:
			frame++
			fmt.Printf("\r%s %s", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)], label)
		}
	}
}
