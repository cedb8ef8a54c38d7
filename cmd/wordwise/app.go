package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/wordwise/internal/answer"
	"github.com/verte-zerg/wordwise/internal/config"
	"github.com/verte-zerg/wordwise/internal/linestore"
	"github.com/verte-zerg/wordwise/internal/logger"
	"github.com/verte-zerg/wordwise/internal/model"
	"github.com/verte-zerg/wordwise/internal/practice"
	"github.com/verte-zerg/wordwise/internal/selector"
	"github.com/verte-zerg/wordwise/internal/stats"
	"github.com/verte-zerg/wordwise/internal/tui"
	"github.com/verte-zerg/wordwise/internal/wordstore"
)

// app holds the wired stores and session for one command invocation.
type app struct {
	cfg     model.Config
	log     *logger.Logger
	closer  io.Closer
	words   *wordstore.Store
	repo    *stats.Repository
	session *practice.Session

	in     io.Reader
	out    io.Writer
	reader *answer.LineReader
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w: %w", model.ErrIO, err)
	}

	a := &app{
		cfg: cfg,
		log: log.With("backend", cfg.Backend),
		in:  cmd.InOrStdin(),
		out: cmd.OutOrStdout(),
	}
	a.reader = answer.NewLineReader(a.in, a.out)

	var lines linestore.Store
	switch cfg.Backend {
	case config.BackendSQLite:
		st, err := linestore.OpenSQL(config.DBPath(cfg.DataDir))
		if err != nil {
			return nil, fmt.Errorf("failed to open db: %w: %w", model.ErrIO, err)
		}
		a.closer = st
		lines = st
	default:
		lines = linestore.NewFileStore(cfg.DataDir, map[string]string{
			wordstore.Resource: "words.txt",
			stats.Resource:     "stats.txt",
		})
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	a.words = wordstore.New(lines, a.log)
	report, err := a.words.Load(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	a.log.Debug("word list loaded", "loaded", report.Loaded, "skipped", report.Skipped)

	a.repo = stats.NewRepository(lines, a.log)
	current, err := a.repo.Load(ctx)
	if err != nil {
		a.close()
		return nil, err
	}
	a.session = practice.NewSession(current, a.repo, newSelector(cfg.Seed), a.log)
	return a, nil
}

func (a *app) close() {
	if a.closer != nil {
		if cerr := a.closer.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}
	a.log.Sync()
}

func newSelector(seed int64) practice.Selector {
	if seed != 0 {
		return selector.NewSeeded(seed)
	}
	return selector.New()
}

// answers returns the full-screen prompt on a terminal and the shared line reader otherwise.
func (a *app) answers() practice.AnswerSource {
	if a.cfg.Interactive && isTerminal(a.in) && isTerminal(a.out) {
		return tui.NewPrompt(a.session.Stats())
	}
	return a.reader
}

func (a *app) practice(ctx context.Context, today civil.Date) error {
	result, err := a.session.Attempt(ctx, today, a.words, a.answers())
	if result.Term == "" {
		return err
	}
	a.println(tui.RenderResult(result, a.width()))
	return err
}

func (a *app) width() int {
	if f, ok := a.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return 0
}

func (a *app) printf(format string, args ...any) {
	if _, err := fmt.Fprintf(a.out, format, args...); err != nil {
		// Best-effort write to the command output.
		_ = err
	}
}

func (a *app) println(args ...any) {
	if _, err := fmt.Fprintln(a.out, args...); err != nil {
		// Best-effort write to the command output.
		_ = err
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func today() civil.Date {
	return civil.DateOf(time.Now())
}
