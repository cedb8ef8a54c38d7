// Package importer bulk-loads word pairs from CSV and Excel files.
package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/verte-zerg/wordwise/internal/model"
)

// Options controls how a file is read. Column A holds the term and column B
// the meaning.
type Options struct {
	Path       string
	Sheet      string // Excel only; empty selects the first sheet.
	SkipHeader bool
}

// Adder receives imported entries.
type Adder interface {
	Add(ctx context.Context, term, meaning string) error
}

// Import reads opts.Path and adds each row to dst. Row-level problems are
// counted in the result; storage failures abort the import.
func Import(ctx context.Context, opts Options, dst Adder) (model.ImportResult, error) {
	ext := strings.ToLower(filepath.Ext(opts.Path))
	var (
		rows [][]string
		err  error
	)
	switch ext {
	case ".csv":
		rows, err = readCSV(opts.Path)
	case ".xlsx", ".xlsm":
		rows, err = readExcel(opts.Path, opts.Sheet)
	default:
		return model.ImportResult{}, fmt.Errorf("unsupported import format %q: %w", ext, model.ErrValidation)
	}
	if err != nil {
		return model.ImportResult{}, err
	}
	return importRows(ctx, rows, opts.SkipHeader, dst)
}

func importRows(ctx context.Context, rows [][]string, skipHeader bool, dst Adder) (model.ImportResult, error) {
	result := model.ImportResult{Errors: make([]string, 0)}
	for i, row := range rows {
		if skipHeader && i == 0 {
			continue
		}
		if isBlank(row) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Processed++
		rowNum := i + 1
		if len(row) < 2 {
			result.Invalid++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: expected term and meaning columns", rowNum))
			continue
		}
		err := dst.Add(ctx, row[0], row[1])
		switch {
		case err == nil:
			result.Added++
		case errors.Is(err, model.ErrDuplicateTerm):
			result.Duplicates++
		case errors.Is(err, model.ErrValidation):
			result.Invalid++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
		default:
			return result, fmt.Errorf("failed to import row %d: %w", rowNum, err)
		}
	}
	return result, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w: %w", model.ErrIO, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for a read-only file.
			_ = cerr
		}
	}()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w: %w", model.ErrValidation, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w: %w", model.ErrIO, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			// Best-effort close for a read-only workbook.
			_ = cerr
		}
	}()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets: %w", model.ErrValidation)
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from %q: %w: %w", sheet, model.ErrValidation, err)
	}
	return rows, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
