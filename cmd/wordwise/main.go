// Package main provides the CLI entrypoint for wordwise.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordwise/internal/answer"
	"github.com/verte-zerg/wordwise/internal/config"
	"github.com/verte-zerg/wordwise/internal/model"
	"github.com/verte-zerg/wordwise/internal/tui"
)

const (
	defaultBackend     = config.BackendFile
	defaultLogLevel    = "warn"
	defaultHistoryDays = 14
)

var (
	rootDataDir     string
	rootBackend     string
	rootLogLevel    string
	rootInteractive bool
	rootSeed        int64

	practiceDate string

	statsTUI bool

	historyDays int

	importSheet      string
	importSkipHeader bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := config.LoadDotEnv(".env"); err != nil {
		logErrf("%v\n", err)
	}

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logErrln(userMessage(err))
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordwise",
		Short:         "Vocabulary flashcards with a daily word",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE:          runMenuCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&rootDataDir, "data-dir", "", "directory holding the word list and statistics")
	flags.StringVar(&rootBackend, "backend", defaultBackend, "storage backend: file or sqlite")
	flags.StringVar(&rootLogLevel, "log-level", defaultLogLevel, "diagnostics level: debug, info, warn, error")
	flags.BoolVar(&rootInteractive, "interactive", true, "use the full-screen prompt when attached to a terminal")
	flags.Int64Var(&rootSeed, "seed", 0, "seed for word selection (0 = random)")

	rootCmd.AddCommand(newPracticeCmd())
	rootCmd.AddCommand(newAddCmd())
	rootCmd.AddCommand(newRemoveCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// resolveConfig merges flags, environment and the config file, in that order of precedence.
func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg, err = config.ApplyEnv(fileCfg, os.Getenv)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to apply environment: %w", err)
	}
	applyStringConfig(cmd, "data-dir", &rootDataDir, fileCfg.Storage.DataDir)
	applyStringConfig(cmd, "backend", &rootBackend, fileCfg.Storage.Backend)
	applyStringConfig(cmd, "log-level", &rootLogLevel, fileCfg.Log.Level)
	applyBoolConfig(cmd, "interactive", &rootInteractive, fileCfg.Practice.Interactive)
	applyInt64Config(cmd, "seed", &rootSeed, fileCfg.Practice.Seed)

	cfg := model.Config{
		DataDir:     strings.TrimSpace(rootDataDir),
		Backend:     strings.ToLower(strings.TrimSpace(rootBackend)),
		Interactive: rootInteractive,
		Seed:        rootSeed,
		LogLevel:    rootLogLevel,
	}
	if cfg.DataDir == "" {
		cfg.DataDir = config.DefaultDataDir()
	}
	if err := config.ValidateBackend(cfg.Backend); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordwise configuration
# Uncomment a value to enable it. Environment variables (%s, %s,
# %s, %s) override this file; CLI flags override both.

[storage]
# backend = %q          # file or sqlite
# data-dir = %q

[practice]
# interactive = true      # Full-screen prompt when attached to a terminal
# seed = 0                # Fixed seed for word selection (0 = random)

[log]
# level = %q            # debug, info, warn, error
`,
		config.EnvDataDir, config.EnvBackend, config.EnvLogLevel, config.EnvSeed,
		defaultBackend,
		config.DefaultDataDir(),
		defaultLogLevel,
	)
}

// userMessage turns a core error into the line shown to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrEmptyStore):
		return "No words in the word list. Add some words first."
	case errors.Is(err, model.ErrAlreadyPracticedToday):
		return "You have already learned a word today. Come back tomorrow!"
	case errors.Is(err, model.ErrDuplicateTerm):
		return fmt.Sprintf("Word already exists: %v", err)
	case errors.Is(err, model.ErrNotFound):
		return fmt.Sprintf("Word not found: %v", err)
	case errors.Is(err, model.ErrValidation):
		return fmt.Sprintf("Invalid input: %v", err)
	case errors.Is(err, tui.ErrCanceled), errors.Is(err, answer.ErrNoInput), errors.Is(err, context.Canceled):
		return "No answer given, nothing was recorded."
	case errors.Is(err, model.ErrIO):
		return fmt.Sprintf("Storage error: %v", err)
	default:
		return err.Error()
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
