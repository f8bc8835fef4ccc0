package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/timarques/eucatalog/build"
	"github.com/timarques/eucatalog/codegen"
	"github.com/timarques/eucatalog/config"
	"github.com/timarques/eucatalog/crawl"
	"github.com/timarques/eucatalog/etree"
	"github.com/timarques/eucatalog/goquery"
	"github.com/timarques/eucatalog/harvest"
	euhttp "github.com/timarques/eucatalog/http"
	"github.com/timarques/eucatalog/sqlite"
	"github.com/timarques/eucatalog/trace"
	euyaml "github.com/timarques/eucatalog/yaml"
	euzap "github.com/timarques/eucatalog/zap"
	euzip "github.com/timarques/eucatalog/zip"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the catalog snapshot, if one is configured.
	DB *sqlite.DB

	// Fetcher shared by the scraper and the icon harvester.
	Fetcher *euhttp.Fetcher

	Logger *zap.Logger
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Logger != nil {
		_ = m.Logger.Sync()
	}
	if m.Fetcher != nil {
		_ = m.Fetcher.Close()
	}
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("eucatalog"),
		kong.Description("Build a compiled catalog of European alternatives to digital products."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'eucatalog --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	defer m.Close()

	switch cmd {
	case "build":
		if err := m.wireBuild(cli.Build, deps); err != nil {
			return err
		}
	case "search", "show", "builds":
		db := map[string]string{
			"search": cli.Search.DB,
			"show":   cli.Show.DB,
			"builds": cli.Builds.DB,
		}[cmd]
		m.DB = sqlite.NewDB(db)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open snapshot at %q: %w", db, err)
		}
		deps.Catalogs = sqlite.NewCatalogStore(m.DB)
		deps.Builds = sqlite.NewBuildLedger(m.DB)
	}

	return kongCtx.Run(deps)
}

// wireBuild loads configuration, applies flag overrides and assembles the
// pipeline.
func (m *Main) wireBuild(c BuildCmd, deps *Dependencies) error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		fmt.Fprintln(deps.Stderr, "Hint: check the config file and EUCATALOG_* environment variables")
		return err
	}
	if c.Serial {
		cfg.Serial = true
	}
	if c.OutputDir != "" {
		cfg.OutputDir = c.OutputDir
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.Logger, err = euzap.NewLogger(c.Verbose, cfg.LogLevel)
	if err != nil {
		return err
	}

	m.Fetcher = euhttp.NewFetcher(
		euhttp.WithTimeout(cfg.Timeout),
		euhttp.WithUserAgent(cfg.UserAgent),
		euhttp.WithRateLimit(cfg.RateLimit),
	)
	fetcher := euzap.NewLoggingFetcher(m.Fetcher, m.Logger)

	scraper := &crawl.Scraper{
		Fetcher:     fetcher,
		Parser:      goquery.NewParser(),
		BaseURL:     cfg.BaseURL,
		FlagBaseURL: cfg.FlagBaseURL,
		Progress:    euzap.ProgressLogger(m.Logger),
	}
	harvester := &harvest.Harvester{
		Fetcher:       fetcher,
		Canonicalizer: etree.NewCanonicalizer(),
		Tracer:        trace.NewTracer(),
	}

	b := &build.Builder{
		OutputDir: cfg.OutputDir,
		Scraper:   euzap.NewLoggingScraper(scraper, m.Logger),
		Harvester: euzap.NewLoggingHarvester(harvester, m.Logger),
		Generator: codegen.NewGenerator(),
		Templates: etree.NewTemplateExtractor(),
		Bundler:   euzip.NewBundler(),
		Metadata:  euyaml.NewMetadataWriter(),
		Logger:    m.Logger,
	}

	if cfg.SnapshotDB != "" {
		m.DB = sqlite.NewDB(cfg.SnapshotDB)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open snapshot at %q: %w", cfg.SnapshotDB, err)
		}
		b.Store = sqlite.NewCatalogStore(m.DB)
		b.Ledger = sqlite.NewBuildLedger(m.DB)
	}

	deps.Config = cfg
	deps.Builder = b
	return nil
}
