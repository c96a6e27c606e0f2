package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/pith"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Cleaner   pith.Cleaner
	Extractor pith.Extractor
	Cache     pith.ContentCache
	Converter pith.Converter
	Archive   pith.ArchiveService
	Export    pith.ExportStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`
	Quiet   bool `short:"q" help:"Log errors only"`

	Extract ExtractCmd `cmd:"" help:"Extract content blocks from HTML documents"`
	List    ListCmd    `cmd:"" help:"List archived extractions"`
	Show    ShowCmd    `cmd:"" help:"Show an archived extraction"`
	Delete  DeleteCmd  `cmd:"" help:"Delete an archived extraction"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Paths       []string `arg:"" help:"HTML files to extract (use - for stdin)"`
	URL         string   `help:"Source locator override (single input only)"`
	Cleaner     string   `default:"readability" enum:"readability,trafilatura" help:"Reader-mode cleaner"`
	Format      string   `default:"json" enum:"json,markdown" help:"Output format"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`
	Save        bool     `help:"Archive extraction results"`
	Out         string   `help:"Export rendered results to this directory"`

	CacheTTL          time.Duration `name:"cache-ttl" env:"PITH_CACHE_TTL" default:"24h" help:"Cache entry lifetime"`
	CacheMaxBytes     int64         `name:"cache-max-bytes" env:"PITH_CACHE_MAX_BYTES" default:"104857600" help:"Cache storage quota in bytes"`
	CacheKeyThreshold int           `name:"cache-key-threshold" env:"PITH_CACHE_KEY_THRESHOLD" default:"200" help:"Locator length beyond which cache keys are hashed"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Type     string `help:"Filter by article type (news, blog, technical)"`
	Contains string `help:"Filter by URL substring"`
	Limit    int    `help:"Maximum number of results"`
	Offset   int    `help:"Number of results to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	URL    string `arg:"" help:"Source locator of the archived extraction"`
	Format string `default:"json" enum:"json,markdown" help:"Output format"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	URL string `arg:"" help:"Source locator of the archived extraction"`
}
