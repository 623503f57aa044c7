// Package cmd implements the CLI command structure for tasklist.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/tasklist/internal/config"
	"github.com/nibzard/tasklist/internal/kv"
	"github.com/nibzard/tasklist/internal/logging"
	"github.com/nibzard/tasklist/internal/todo"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the tasklist CLI.
func Run(ctx context.Context, args []string) error {
	return run(ctx, args, os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("tasklist", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		printUsage(fs, stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cfg, err := config.Load(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, stdout)
		return nil
	}
	if *showVersion {
		return versionCommand(stdout)
	}

	// No subcommand opens the interactive view.
	subcommand := "tui"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return tuiCommand(ctx, cfg, remainingArgs)
	case "add":
		return addCommand(ctx, cfg, remainingArgs, stdout, stderr)
	case "ls", "list":
		return lsCommand(ctx, cfg, remainingArgs, stdout, stderr)
	case "toggle":
		return toggleCommand(ctx, cfg, remainingArgs, stdout, stderr)
	case "rm", "delete":
		return rmCommand(ctx, cfg, remainingArgs, stdout, stderr)
	case "all":
		return allCommand(ctx, cfg, remainingArgs, stdout, stderr)
	case "clear":
		return clearCommand(ctx, cfg, remainingArgs, stdout, stderr)
	case "config":
		return configCommand(cfg, remainingArgs, stdout)
	case "logs", "tail":
		return logsCommand(ctx, cfg, remainingArgs, stdout)
	case "version":
		return versionCommand(stdout)
	case "help":
		printUsage(fs, stdout)
		return nil
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", subcommand)
		printUsage(fs, stderr)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// session is an open task store with its backend and run log.
type session struct {
	backend kv.Store
	store   *todo.Store
	runLog  *logging.RunLogger
	logger  *log.Logger

	// loadErr is a recoverable restore failure: the store started empty.
	loadErr error
}

// openSession opens the configured backend, starts a run log and restores
// the task list. A malformed stored list is not fatal; it is kept in
// loadErr.
func openSession(ctx context.Context, cfg *config.Config) (*session, error) {
	runLog, err := logging.NewRunLogger(cfg.LogDir, cfg.StorageKey, logOptions(cfg))
	if err != nil {
		return nil, fmt.Errorf("opening run log: %w", err)
	}
	logger := runLog.Logger

	backend, err := kv.Open(ctx, kv.Options{
		Backend:       cfg.Backend,
		Dir:           cfg.StateDir,
		SQLitePath:    cfg.SQLiteFile,
		RedisAddr:     cfg.RedisAddr,
		RedisPassword: cfg.RedisPassword,
		RedisDB:       cfg.RedisDB,
	})
	if err != nil {
		logger.Error("open storage", "backend", cfg.Backend, "err", err)
		runLog.Close()
		return nil, fmt.Errorf("opening %s storage: %w", cfg.Backend, err)
	}
	s := &session{
		backend: backend,
		store:   todo.NewStore(backend, cfg.StorageKey, todo.WithLogger(logger)),
		runLog:  runLog,
		logger:  logger,
	}
	logger.Info("session start", "backend", cfg.Backend, "key", s.store.Key())
	if err := s.store.Restore(ctx); err != nil {
		var loadErr *todo.LoadError
		if !errors.As(err, &loadErr) {
			s.Close()
			return nil, err
		}
		s.loadErr = loadErr
	}
	return s, nil
}

// warnLoad prints a restore warning, if any, to w.
func (s *session) warnLoad(w io.Writer) {
	var loadErr *todo.LoadError
	if !errors.As(s.loadErr, &loadErr) {
		return
	}
	fmt.Fprintf(w, "Warning: stored tasks were unreadable, starting empty: %v\n", loadErr.Err)
	if loadErr.Backup != "" {
		fmt.Fprintf(w, "Warning: the unreadable data was copied to %q\n", loadErr.Backup)
	}
}

// Close releases the backend and the run log.
func (s *session) Close() error {
	s.logger.Info("session end")
	err := s.backend.Close()
	if closeErr := s.runLog.Close(); err == nil {
		err = closeErr
	}
	return err
}

func logOptions(cfg *config.Config) logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = cfg.LogLevel
	opts.Format = cfg.LogFormat
	opts.Timestamps = cfg.LogTimestamps
	opts.Caller = cfg.LogCaller
	return opts
}

// versionCommand prints version information.
func versionCommand(w io.Writer) error {
	fmt.Fprintf(w, "tasklist %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "tasklist - a persistent to-do list for the terminal")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  tasklist [options] [command]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui              Open the interactive list (default command)")
	fmt.Fprintln(w, "  add <text...>    Add a task")
	fmt.Fprintln(w, "  ls               List tasks")
	fmt.Fprintln(w, "  toggle <id>      Toggle a task between open and done")
	fmt.Fprintln(w, "  rm <id>          Delete a task")
	fmt.Fprintln(w, "  all              Mark every task done")
	fmt.Fprintln(w, "  clear            Delete every task")
	fmt.Fprintln(w, "  config [example] Show effective configuration, or an example file")
	fmt.Fprintln(w, "  logs             Show the latest run log")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "List Options (use with 'ls' and 'tui'):")
	fmt.Fprintln(w, "  -ids")
	fmt.Fprintln(w, "        Show task ids (default true for ls)")
	fmt.Fprintln(w, "  -json")
	fmt.Fprintln(w, "        Print the stored JSON instead of rows (ls only)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options (use with 'logs' command):")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  TASKLIST_CONFIG  Explicit config file path")
	fmt.Fprintf(w, "  TASKLIST_*       Override any config key (backends: %s)\n", strings.Join(kv.Backends(), ", "))
}
