// Package source reads the raw hitter, pitcher and schedule tables from CSV
// or Excel files.
package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/logger"
)

// Reader reads one dataset file into a model.Table.
type Reader struct {
	// Sheet selects the worksheet of an Excel file. Empty means the first.
	Sheet string

	logger logger.Logger
}

// ReaderOption applies a configuration option to the Reader.
type ReaderOption func(*Reader)

// WithReaderLogger sets the logger used to report repaired headers.
func WithReaderLogger(l logger.Logger) ReaderOption {
	return func(r *Reader) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewReader creates a Reader with default settings.
func NewReader(opts ...ReaderOption) *Reader {
	r := &Reader{logger: logger.NewNop()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Read loads path, choosing the decoder by extension.
func (r *Reader) Read(ctx context.Context, kind model.Kind, path string) (*model.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		records [][]string
		err     error
	)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv", ".txt":
		records, err = readCSV(path)
	case ".xlsx", ".xlsm":
		records, err = r.readExcel(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	if err != nil {
		return nil, err
	}
	return r.toTable(ctx, kind, path, records)
}

// readCSV tokenizes with encoding/csv so ragged rows survive, pads them to
// the header width and lets gota normalize the cells. The original header is
// kept since gota rewrites blank and duplicate names.
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) < 2 {
		return records, nil
	}

	header := records[0]
	for i, rec := range records[1:] {
		records[i+1] = fit(rec, len(header))
	}

	// Keep every cell as text; coercion happens per column later so a
	// stray "--" does not turn a whole column into strings.
	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parse csv: %w", df.Err)
	}
	out := df.Records()
	out[0] = header
	return out, nil
}

func (r *Reader) readExcel(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open excel: %w", err)
	}
	defer f.Close()

	sheet := r.Sheet
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

// toTable repairs the header and pads or cuts rows to its width. Fully
// blank rows are skipped.
func (r *Reader) toTable(ctx context.Context, kind model.Kind, path string, records [][]string) (*model.Table, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmptyTable, path)
	}

	header, renamed := uniqueHeader(records[0])
	if len(renamed) > 0 && r.logger != nil {
		r.logger.Warn(ctx, "dataset header repaired",
			logger.String("dataset", string(kind)),
			logger.String("path", path),
			logger.Any("renamed", renamed),
		)
	}

	rows := make([][]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		if blank(rec) {
			continue
		}
		rows = append(rows, fit(rec, len(header)))
	}

	return &model.Table{Kind: kind, Source: path, Header: header, Rows: rows}, nil
}

// uniqueHeader trims names and makes them unique. The first occurrence of a
// name keeps it; later ones become name_2, name_3 and so on. Blank names
// become column_N, N being the 1-based position. renamed lists each change
// as "old -> new".
func uniqueHeader(raw []string) (header, renamed []string) {
	header = make([]string, len(raw))
	seen := make(map[string]int, len(raw))
	for i, h := range raw {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		orig := name
		if name == "" {
			name = "column_" + strconv.Itoa(i+1)
		}
		if n := seen[name]; n > 0 {
			for {
				n++
				candidate := name + "_" + strconv.Itoa(n)
				if seen[candidate] == 0 {
					seen[name] = n
					name = candidate
					break
				}
			}
		}
		seen[name]++
		if name != orig {
			renamed = append(renamed, fmt.Sprintf("%q -> %q", orig, name))
		}
		header[i] = name
	}
	return header, renamed
}

// fit pads rec with blanks or cuts it to width.
func fit(rec []string, width int) []string {
	row := make([]string, width)
	copy(row, rec)
	return row
}

func blank(rec []string) bool {
	for _, c := range rec {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// Spec names one dataset to load.
type Spec struct {
	Kind     model.Kind
	Path     string
	Optional bool
}

// logLoaded reports a finished load.
func logLoaded(ctx context.Context, log logger.Logger, t *model.Table, took time.Duration) {
	log.Info(ctx, "dataset loaded",
		logger.String("dataset", string(t.Kind)),
		logger.String("path", t.Source),
		logger.Int("rows", len(t.Rows)),
		logger.Int("columns", len(t.Header)),
		logger.Duration("took", took),
	)
}
