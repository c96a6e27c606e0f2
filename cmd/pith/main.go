package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/pith/cache"
	"github.com/fwojciec/pith/extract"
	"github.com/fwojciec/pith/fs"
	"github.com/fwojciec/pith/goquery"
	"github.com/fwojciec/pith/htmltomarkdown"
	"github.com/fwojciec/pith/readability"
	pithslog "github.com/fwojciec/pith/slog"
	"github.com/fwojciec/pith/sqlite"
	"github.com/fwojciec/pith/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the archive service.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Initialize dependencies struct for Kong binding
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  os.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	// Create Kong parser with dependency binding
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("pith"),
		kong.Description("Extract structured content blocks from HTML documents"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags using Kong
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'pith --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose, cli.Quiet)

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PITH_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	deps.Archive = sqlite.NewArchiveService(m.DB)

	// Wire the extraction pipeline only for the extract command
	if cmd == "extract" {
		switch cli.Extract.Cleaner {
		case "trafilatura":
			deps.Cleaner = trafilatura.NewCleaner()
		default:
			deps.Cleaner = readability.NewCleaner()
		}

		service := &extract.Service{
			Segmenter: goquery.NewSegmenter(),
			Analyzer:  goquery.NewAnalyzer(deps.Logger),
		}

		contentCache := cache.New(cache.Config{
			TTL:                cli.Extract.CacheTTL,
			MaxStorageBytes:    cli.Extract.CacheMaxBytes,
			KeyLengthThreshold: cli.Extract.CacheKeyThreshold,
		}, deps.Logger)
		deps.Cache = pithslog.NewLoggingCache(contentCache, deps.Logger)

		extractor := pithslog.NewLoggingExtractor(service, deps.Logger)
		deps.Extractor = cache.NewCachingExtractor(extractor, deps.Cache, deps.Logger)

		deps.Converter = htmltomarkdown.NewConverter()

		if cli.Extract.Out != "" {
			deps.Export = fs.NewExportStore(filepath.Dir(cli.Extract.Out), filepath.Base(cli.Extract.Out))
		}
	}

	return kongCtx.Run(deps)
}

func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultDBPath() string {
	if path := os.Getenv("PITH_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "pith.db"
	}
	dir := filepath.Join(home, ".pith")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "pith.db")
}
