package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"cloud.google.com/go/civil"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordwise/internal/importer"
	"github.com/verte-zerg/wordwise/internal/model"
	"github.com/verte-zerg/wordwise/internal/stats"
	"github.com/verte-zerg/wordwise/internal/statsui"
)

// withApp opens the stores for the duration of run.
func withApp(run func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		return run(ctx, a, args)
	}
}

func newPracticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Study the word of the day",
		Args:  cobra.NoArgs,
		RunE:  withApp(runPractice),
	}
	cmd.Flags().StringVar(&practiceDate, "date", "", "practice as of this date (DD-MM-YYYY)")
	return cmd
}

func runPractice(ctx context.Context, a *app, _ []string) error {
	day := today()
	if practiceDate != "" {
		parsed, err := stats.ParseDate(practiceDate)
		if err != nil {
			return fmt.Errorf("invalid --date value: %w", err)
		}
		day = parsed
	}
	return a.practice(ctx, day)
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <term> <meaning>",
		Short: "Add a word to the list",
		Args:  cobra.ExactArgs(2),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			return a.add(ctx, args[0], args[1])
		}),
	}
}

func (a *app) add(ctx context.Context, term, meaning string) error {
	if err := a.words.Add(ctx, term, meaning); err != nil {
		return err
	}
	stored, _ := a.words.Meaning(term)
	a.printf("Successfully added word: %s - %s\n", term, stored)
	return nil
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <term>",
		Aliases: []string{"delete", "rm"},
		Short:   "Delete a word from the list",
		Args:    cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			return a.remove(ctx, args[0])
		}),
	}
}

func (a *app) remove(ctx context.Context, term string) error {
	if err := a.words.Remove(ctx, term); err != nil {
		return err
	}
	a.printf("Successfully deleted word: %s\n", term)
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Show all words",
		Args:    cobra.NoArgs,
		RunE: withApp(func(_ context.Context, a *app, _ []string) error {
			return a.list()
		}),
	}
}

func (a *app) list() error {
	return writeList(a.out, a.words.Len(), a.words.List())
}

func writeList(w io.Writer, total int, entries iter.Seq2[string, string]) error {
	if total == 0 {
		_, err := fmt.Fprintln(w, "No words in the word list.")
		return err
	}
	if _, err := fmt.Fprintf(w, "total words: %d\n", total); err != nil {
		return err
	}
	i := 0
	for term, meaning := range entries {
		i++
		if _, err := fmt.Fprintf(w, "%d. %s: %s\n", i, term, meaning); err != nil {
			return err
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show practice statistics",
		Args:  cobra.NoArgs,
		RunE:  withApp(runStats),
	}
	cmd.Flags().BoolVar(&statsTUI, "tui", false, "open the interactive stats viewer")
	return cmd
}

func runStats(ctx context.Context, a *app, _ []string) error {
	if statsTUI {
		if !isTerminal(a.out) {
			return errors.New("--tui requires a terminal")
		}
		return statsui.Run(ctx, statsui.NewModel(a.session.Stats(), a.entries(), today()))
	}
	return stats.RenderSummary(a.out, a.session.Stats())
}

func (a *app) entries() []model.WordEntry {
	out := make([]model.WordEntry, 0, a.words.Len())
	for term, meaning := range a.words.List() {
		out = append(out, model.WordEntry{Term: term, Meaning: meaning})
	}
	return out
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the daily practice log",
		Args:  cobra.NoArgs,
		RunE: withApp(func(_ context.Context, a *app, _ []string) error {
			if historyDays < 0 {
				return fmt.Errorf("--days must be >= 0: %w", model.ErrValidation)
			}
			return a.history(today(), historyDays)
		}),
	}
	cmd.Flags().IntVar(&historyDays, "days", defaultHistoryDays, "days covered by the activity sparkline")
	return cmd
}

func (a *app) history(day civil.Date, days int) error {
	return stats.RenderHistory(a.out, a.session.Stats(), day, days)
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.csv|file.xlsx>",
		Short: "Bulk-add words from a spreadsheet (column A term, column B meaning)",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(func(ctx context.Context, a *app, args []string) error {
			return a.importFile(ctx, importer.Options{
				Path:       args[0],
				Sheet:      importSheet,
				SkipHeader: importSkipHeader,
			})
		}),
	}
	cmd.Flags().StringVar(&importSheet, "sheet", "", "Excel sheet name (default: first sheet)")
	cmd.Flags().BoolVar(&importSkipHeader, "skip-header", false, "skip the first row")
	return cmd
}

func (a *app) importFile(ctx context.Context, opts importer.Options) error {
	result, err := importer.Import(ctx, opts, a.words)
	for _, msg := range result.Errors {
		a.log.Warn("skipped import row", "detail", msg)
	}
	a.printf("processed %d rows: %d added, %d duplicates, %d invalid\n",
		result.Processed, result.Added, result.Duplicates, result.Invalid)
	return err
}
