// Command safetyctl lists establishments and keeps the selected
// establishment and reporting year between runs.
//
// Usage:
//
//	safetyctl [flags] <list|select ID|unselect|year [YYYY]|status>
//
// Flags fall back to SAFETYLOG_API, SAFETYLOG_TOKEN and SAFETYLOG_STATE.
// The state location is a SQLite file path or a redis:// URL.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/heartmarshall/safetylog-backend/internal/app"
	"github.com/heartmarshall/safetylog-backend/internal/client"
	"github.com/heartmarshall/safetylog-backend/internal/selection"
)

const defaultNamespace = "safetylog:selection"

type options struct {
	api       string
	token     string
	state     string
	namespace string
	verbose   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "safetyctl: load .env: %v\n", err)
	}

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "safetyctl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fset := flag.NewFlagSet("safetyctl", flag.ContinueOnError)
	fset.SetOutput(stderr)

	var opts options
	fset.StringVar(&opts.api, "api", envOr("SAFETYLOG_API", "http://localhost:8080"), "API base URL")
	fset.StringVar(&opts.token, "token", os.Getenv("SAFETYLOG_TOKEN"), "bearer token")
	fset.StringVar(&opts.state, "state", envOr("SAFETYLOG_STATE", defaultStatePath()), "selection state: SQLite path or redis:// URL")
	fset.StringVar(&opts.namespace, "namespace", envOr("SAFETYLOG_STATE_NAMESPACE", defaultNamespace), "key namespace for redis state")
	fset.BoolVar(&opts.verbose, "v", false, "verbose logging")
	fset.Usage = func() {
		fmt.Fprintln(stderr, "Usage: safetyctl [flags] <list|select ID|unselect|year [YYYY]|status>")
		fset.PrintDefaults()
	}

	if err := fset.Parse(args); err != nil {
		return err
	}
	if fset.NArg() == 0 {
		fset.Usage()
		return flag.ErrHelp
	}

	level := slog.LevelWarn
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	storage, err := selection.Open(ctx, opts.state, opts.namespace)
	if err != nil {
		return fmt.Errorf("open selection state: %w", err)
	}
	defer storage.Close()

	state := selection.New(storage, selection.WithLogger(logger))
	if err := state.Hydrate(ctx); err != nil {
		logger.Warn("selection state unavailable, using defaults", slog.String("error", err.Error()))
	}

	api, err := client.New(opts.api, opts.token, client.WithUserAgent(app.UserAgent("safetyctl")))
	if err != nil {
		return err
	}

	cmd := &commands{api: api, state: state, out: stdout}
	return cmd.dispatch(ctx, fset.Arg(0), fset.Args()[1:])
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStatePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = "."
	}
	return filepath.Join(dir, "safetylog", "state.db")
}
