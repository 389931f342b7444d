// Command omara runs the wardrobe catalog: an HTTP API for the mobile app
// and a command line for managing items and outfits directly.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/erazemk/omara/internal/config"
)

// levelRouter is a slog.Handler that routes INFO/WARN to stdout and ERROR+ to stderr.
type levelRouter struct {
	stdout slog.Handler
	stderr slog.Handler
}

func (lr *levelRouter) Enabled(_ context.Context, level slog.Level) bool {
	return level >= slog.LevelInfo
}

func (lr *levelRouter) Handle(ctx context.Context, r slog.Record) error {
	if r.Level >= slog.LevelError {
		return lr.stderr.Handle(ctx, r)
	}
	return lr.stdout.Handle(ctx, r)
}

func (lr *levelRouter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithAttrs(attrs),
		stderr: lr.stderr.WithAttrs(attrs),
	}
}

func (lr *levelRouter) WithGroup(name string) slog.Handler {
	return &levelRouter{
		stdout: lr.stdout.WithGroup(name),
		stderr: lr.stderr.WithGroup(name),
	}
}

// setupLogger configures structured logging. INFO/WARN go to stdout, ERROR goes
// to stderr. If logPath is non-empty, all levels are also written to that file.
// Returns a cleanup function that closes the log file (if opened).
func setupLogger(logPath string) (func(), error) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	cleanup := func() {}

	stdoutW := io.Writer(os.Stdout)
	stderrW := io.Writer(os.Stderr)

	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		cleanup = func() { f.Close() }
		stdoutW = io.MultiWriter(os.Stdout, f)
		stderrW = io.MultiWriter(os.Stderr, f)
	}

	handler := &levelRouter{
		stdout: slog.NewTextHandler(stdoutW, opts),
		stderr: slog.NewTextHandler(stderrW, opts),
	}
	slog.SetDefault(slog.New(handler))
	return cleanup, nil
}

// flags are the persistent flags shared by every subcommand. Set flags
// override values from the config file.
type flags struct {
	config  string
	backend string
	db      string
	addr    string
	log     string
}

// app is the state shared by subcommands once the root command has run.
type app struct {
	flags    flags
	cfg      *config.Config
	closeLog func()
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "omara",
		Short: "A personal wardrobe catalog",
		Long: `Omara keeps track of the clothes you own and the ones you want,
and suggests seasonal outfits from your wardrobe.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.flags.config, "config", "c", "", "YAML config file")
	pf.StringVar(&a.flags.backend, "backend", "", "storage backend: sqlite, bolt or memory (default sqlite)")
	pf.StringVarP(&a.flags.db, "db", "d", "", "database path (default omara.sqlite3, or omara.bolt for bolt)")
	pf.StringVarP(&a.flags.addr, "addr", "a", "", "listen address (default :8080)")
	pf.StringVarP(&a.flags.log, "log", "l", "", "log file path (default: stdout/stderr only)")

	root.AddCommand(
		newInitCmd(a),
		newServeCmd(a),
		newItemCmd(a),
		newOutfitCmd(a),
	)
	return root
}

// setup loads the configuration, applies flag overrides and starts logging.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.flags.config)
	if err != nil {
		return err
	}

	f := cmd.Flags()
	if f.Changed("backend") {
		cfg.Backend = a.flags.backend
	}
	if f.Changed("db") {
		cfg.DB = a.flags.db
	}
	if f.Changed("addr") {
		cfg.Addr = a.flags.addr
	}
	if f.Changed("log") {
		cfg.Log = a.flags.log
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	closeLog, err := setupLogger(cfg.Log)
	if err != nil {
		return err
	}
	a.closeLog = closeLog
	return nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
