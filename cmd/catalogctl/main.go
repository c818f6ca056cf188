package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/samvad-hq/catalog-client/internal/app"
	"github.com/samvad-hq/catalog-client/internal/config"
	"github.com/samvad-hq/catalog-client/internal/logger"
	"github.com/samvad-hq/catalog-client/pkg/catalog"
	"github.com/samvad-hq/catalog-client/pkg/formatter"
)

func main() {
	if err := run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "catalogctl failed: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return newApp(os.Stdout, os.Stderr).RunContext(ctx, args)
}

func newApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "catalogctl",
		Usage:     "A cli tool for managing data catalog resources",
		Writer:    out,
		ErrWriter: errOut,
		Flags:     globalFlags(),
		Commands: []*cli.Command{
			resourcesCmd(),
			countCmd(),
			getCmd(),
			provisionCmd(),
		},
		After: func(*cli.Context) error {
			_ = logger.Close()
			return nil
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "catalog-url",
			Usage: "Catalog base URL up to the port, e.g. https://edc:9085 (env CATALOG_URL)",
		},
		&cli.StringFlag{
			Name:  "user",
			Usage: "Catalog user (env CATALOG_USER)",
		},
		&cli.StringFlag{
			Name:  "password",
			Usage: "Catalog password (env CATALOG_PASSWORD)",
		},
		&cli.IntFlag{
			Name:  "timeout",
			Usage: "Request timeout in seconds (env REQUEST_TIMEOUT_SECONDS)",
		},
		&cli.BoolFlag{
			Name:  "verify-tls",
			Usage: "Validate the catalog TLS certificate (off by default, which is insecure)",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "debug, info, warn or error (env LOG_LEVEL)",
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Value:       formatter.OutputTable,
			DefaultText: formatter.OutputTable,
			Usage:       "Output format: table or json",
		},
	}
}

// runtime carries what every command needs.
type runtime struct {
	client *catalog.Client
	log    logger.Logger
	format formatter.Formatter
	out    io.Writer
}

func newRuntime(c *cli.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := applyFlags(c, cfg); err != nil {
		return nil, err
	}

	format, err := formatter.ForOutput(c.String("output"))
	if err != nil {
		return nil, err
	}

	log, err := logger.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := app.NewCatalogClient(cfg, log)
	if err != nil {
		return nil, err
	}

	return &runtime{
		client: client,
		log:    log,
		format: format,
		out:    c.App.Writer,
	}, nil
}

func applyFlags(c *cli.Context, cfg *config.Config) error {
	if c.IsSet("catalog-url") {
		cfg.CatalogURL = c.String("catalog-url")
	}
	if c.IsSet("user") {
		cfg.CatalogUser = c.String("user")
	}
	if c.IsSet("password") {
		cfg.CatalogPassword = c.String("password")
	}
	if c.IsSet("timeout") {
		if c.Int("timeout") <= 0 {
			return fmt.Errorf("invalid --timeout %d (must be positive seconds)", c.Int("timeout"))
		}
		cfg.RequestTimeoutSeconds = int64(c.Int("timeout"))
		cfg.RequestTimeout = secondsToDuration(cfg.RequestTimeoutSeconds)
	}
	if c.IsSet("verify-tls") {
		cfg.TLSInsecureSkipVerify = !c.Bool("verify-tls")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	return nil
}

func secondsToDuration(s int64) time.Duration {
	return time.Duration(s) * time.Second
}

func withRuntime(fn func(c *cli.Context, rt *runtime) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, err := newRuntime(c)
		if err != nil {
			return err
		}
		return fn(c, rt)
	}
}
