// Package excel reads and writes index-aligned vocabulary lists in xlsx and
// csv form. The header row names a language code per column; each following
// row is one word in every language.
package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/example/lingoladder/internal/vocabulary"
	"github.com/xuri/excelize/v2"
)

var ErrNoLanguages = errors.New("header row names no languages")

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath  string
	SheetName string // xlsx only; empty means the first sheet
	HeaderRow int    // 1-based row holding the language codes
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{FilePath: path, HeaderRow: 1}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Imported       int
	Skipped        int
	Languages      []string
	Errors         []string
}

// Import reads the file into a new vocabulary table. Rows with a blank cell
// and repeats of an earlier row are skipped so the lists stay aligned.
func Import(cfg ImportConfig) (*vocabulary.Table, *ImportResult, error) {
	rows, err := readRows(cfg)
	if err != nil {
		return nil, nil, err
	}
	return buildTable(rows, cfg.HeaderRow)
}

func readRows(cfg ImportConfig) ([][]string, error) {
	if strings.EqualFold(filepath.Ext(cfg.FilePath), ".csv") {
		return readCSV(cfg.FilePath)
	}
	return readExcel(cfg)
}

func readExcel(cfg ImportConfig) ([][]string, error) {
	f, err := excelize.OpenFile(cfg.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	sheet := cfg.SheetName
	if sheet == "" {
		sheet = f.GetSheetName(f.GetActiveSheetIndex())
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to get rows from %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error reading CSV: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func buildTable(rows [][]string, headerRow int) (*vocabulary.Table, *ImportResult, error) {
	if headerRow < 1 {
		headerRow = 1
	}
	if len(rows) < headerRow {
		return nil, nil, fmt.Errorf("%w: file has %d rows", ErrNoLanguages, len(rows))
	}

	var codes []string
	for _, c := range rows[headerRow-1] {
		c = strings.ToLower(strings.TrimSpace(c))
		if c == "" {
			break
		}
		codes = append(codes, c)
	}
	if len(codes) == 0 {
		return nil, nil, ErrNoLanguages
	}

	result := &ImportResult{Languages: codes}
	lists := make([][]string, len(codes))
	seen := make(map[string]int)

	for i := headerRow; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1
		if isBlank(row) {
			continue
		}
		result.TotalProcessed++

		cells, missing := cellsFor(row, codes)
		if missing != "" {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: missing %s", rowNum, missing))
			continue
		}
		key := strings.ToLower(strings.Join(cells, "\x1f"))
		if first, dup := seen[key]; dup {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("Row %d: duplicate of row %d", rowNum, first))
			continue
		}
		seen[key] = rowNum

		for j, cell := range cells {
			lists[j] = append(lists[j], cell)
		}
		result.Imported++
	}

	table := vocabulary.NewEmptyTable()
	if result.Imported == 0 {
		return table, result, nil
	}
	for j, code := range codes {
		if err := table.Merge(code, lists[j]); err != nil {
			return nil, result, err
		}
	}
	return table, result, nil
}

func cellsFor(row, codes []string) ([]string, string) {
	cells := make([]string, len(codes))
	for j, code := range codes {
		if j >= len(row) || strings.TrimSpace(row[j]) == "" {
			return nil, code
		}
		cells[j] = strings.TrimSpace(row[j])
	}
	return cells, ""
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
