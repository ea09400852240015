package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/batch"
	"github.com/fwojciec/wardrobe/extract"
	"github.com/fwojciec/wardrobe/fs"
	"github.com/fwojciec/wardrobe/gemini"
	"github.com/fwojciec/wardrobe/goquery"
	whttp "github.com/fwojciec/wardrobe/http"
	"github.com/fwojciec/wardrobe/jsonschema"
	"github.com/fwojciec/wardrobe/readability"
	"github.com/fwojciec/wardrobe/retry"
	"github.com/fwojciec/wardrobe/rod"
	wslog "github.com/fwojciec/wardrobe/slog"
	"github.com/fwojciec/wardrobe/sqlite"
	"github.com/fwojciec/wardrobe/trafilatura"
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
	// Database path. Overrides WARDROBE_DB when set.
	DBPath string

	// EnvFile is an optional dotenv file read before the environment.
	EnvFile string

	// Getenv looks up environment variables.
	Getenv func(string) string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
		Getenv:  os.Getenv,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var firstErr error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	m.closers = nil
	if m.DB != nil {
		if err := m.DB.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("wardrobe"),
		kong.Description("Extract clothing metadata from product pages and garment photos"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return wardrobe.WrapError(wardrobe.EINTERNAL, err, "create parser")
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return wardrobe.Errorf(wardrobe.EINVALID, "no command specified. Run 'wardrobe --help' to see available commands")
	}

	if len(args) == 1 && (args[0] == "help" || args[0] == "--help" || args[0] == "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	cfg, err := LoadConfig(m.Getenv, m.EnvFile)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  os.Stdin,
		Stdout: stdout,
		Stderr: stderr,
		Logger: newLogger(stderr, cli.Debug),
	}

	dbPath := m.DBPath
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	if dbPath == "" {
		dbPath = defaultDBPath()
	}
	m.DB = sqlite.NewDB(dbPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set %s to use a different database path\n", envDB)
		return err
	}
	defer m.Close()
	deps.Garments = sqlite.NewGarmentService(m.DB)

	command := strings.Fields(kongCtx.Command())[0]
	switch command {
	case "page", "html", "image", "ingest":
		if err := m.wire(ctx, cfg, cli, command, deps); err != nil {
			return err
		}
	}

	return kongCtx.Run(deps)
}

// wire builds the extraction stack for the page, html, image and ingest commands.
func (m *Main) wire(ctx context.Context, cfg *Config, cli *CLI, command string, deps *Dependencies) error {
	logger := deps.Logger

	var sitemaps wardrobe.SitemapService = whttp.NewSitemapService(nil)
	if cli.Debug {
		sitemaps = wslog.NewLoggingSitemapService(sitemaps, logger)
	}
	deps.Sitemaps = sitemaps

	if command == "ingest" && cli.Ingest.Preview {
		return nil
	}

	if err := cfg.RequireAPIKey(); err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Put %s in the environment or a .env file\n", envAPIKey)
		return err
	}
	client, err := gemini.NewClient(ctx, cfg.APIKey)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "Hint: Check your %s is valid\n", envAPIKey)
		return err
	}

	var model wardrobe.Model = gemini.NewModel(client, cfg.Model)
	if cli.Debug {
		model = wslog.NewLoggingModel(model, logger)
	}
	model = retry.NewLimitedModel(model, cfg.RPS)
	model = retry.NewModel(model, retry.Policy{
		Delays:         cfg.RetryDelays(),
		Jitter:         retry.DefaultJitter,
		AttemptTimeout: cfg.Timeout,
		Retryable:      isRetryable,
		OnRetry: func(attempt int, err error) {
			logger.Warn("model retry", "attempt", attempt, "err", err)
		},
	})

	validator, err := jsonschema.NewValidator()
	if err != nil {
		return err
	}
	deps.Extractor = extract.NewService(model,
		extract.WithValidator(validator, cli.Strict),
		extract.WithLogger(logger),
	)

	var images wardrobe.ImageLoader = fs.NewImageLoader()
	if cli.Debug {
		images = wslog.NewLoggingImageLoader(images, logger)
	}
	deps.Images = images

	switch {
	case command == "page":
		if err := m.wireFetch(cli.Page.FetchFlags, cli.Debug, deps); err != nil {
			return err
		}
	case command == "html":
		if deps.Trimmer, err = newTrimmer(cli.HTML.Trim); err != nil {
			return err
		}
	case command == "ingest" && !cli.Ingest.Images:
		if err := m.wireFetch(cli.Ingest.FetchFlags, cli.Debug, deps); err != nil {
			return err
		}
	}

	if command == "ingest" {
		runner := &batch.Runner{
			Fetcher:     deps.Fetcher,
			Trimmer:     deps.Trimmer,
			Extractor:   deps.Extractor,
			Images:      deps.Images,
			RateLimiter: batch.NewDomainLimiter(1.0),
			Garments:    deps.Garments,
			Concurrency: cli.Ingest.Concurrency,
			FetchPolicy: retry.Policy{
				Delays: retry.DefaultDelays(),
				Jitter: retry.DefaultJitter,
				OnRetry: func(attempt int, err error) {
					logger.Warn("fetch retry", "attempt", attempt, "err", err)
				},
			},
		}
		if !cli.Ingest.Images && cli.Ingest.MaxTokens > 0 {
			counter, err := gemini.NewTokenCounter(cfg.Model)
			if err != nil {
				logger.Warn("token budget disabled", "model", cfg.Model, "err", err)
			} else {
				runner.Tokens = counter
				runner.MaxTokens = cli.Ingest.MaxTokens
			}
		}
		deps.Runner = runner
	}

	return nil
}

func (m *Main) wireFetch(flags FetchFlags, debug bool, deps *Dependencies) error {
	var fetcher wardrobe.Fetcher
	if flags.Browser {
		f, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Chrome or Chromium must be installed")
			return err
		}
		fetcher = f
	} else {
		fetcher = whttp.NewFetcher()
	}
	m.closers = append(m.closers, fetcher)

	if debug {
		fetcher = wslog.NewLoggingFetcher(fetcher, deps.Logger)
	}
	deps.Fetcher = fetcher

	trimmer, err := newTrimmer(flags.Trim)
	if err != nil {
		return err
	}
	deps.Trimmer = trimmer
	return nil
}

// newTrimmer returns the trimmer registered under name. "none" returns nil.
func newTrimmer(name string) (wardrobe.Trimmer, error) {
	switch name {
	case "", "main":
		return goquery.NewTrimmer(), nil
	case "trafilatura":
		return trafilatura.NewTrimmer(), nil
	case "readability":
		return readability.NewTrimmer(), nil
	case "none":
		return nil, nil
	}
	return nil, wardrobe.Errorf(wardrobe.EINVALID, "unknown trimmer %q", name)
}

// isRetryable skips retries for requests that cannot succeed.
func isRetryable(err error) bool {
	return wardrobe.ErrorCode(err) != wardrobe.EINVALID
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
