package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/MrJamesThe3rd/cedar/internal/currency"
	enc "github.com/MrJamesThe3rd/cedar/internal/encoding"
	"github.com/MrJamesThe3rd/cedar/internal/transaction"
)

var (
	ErrEmptyFile      = errors.New("csv file is empty")
	ErrMissingColumns = errors.New("csv header is missing required columns")
)

const (
	colAmount   = "amount"
	colCurrency = "currency"
	colType     = "type"
	colCategory = "category"
)

var requiredCols = []string{colAmount, colCurrency, colType, colCategory}

// colIndex maps lower-cased header names to their index in the row.
type colIndex map[string]int

// Parse reads a CSV of candidates. The header must name amount, currency,
// type and category in any order; the separator is "," or ";". An empty
// charset means the encoding is detected.
func Parse(r io.Reader, charset string) ([]transaction.Candidate, error) {
	utf8r, err := enc.NewReader(r, charset)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	raw, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	header, ok := firstLine(raw)
	if !ok {
		return nil, ErrEmptyFile
	}

	reader := csv.NewReader(bytes.NewReader(raw))
	reader.Comma = separator(header)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	if len(rows) == 0 {
		return nil, ErrEmptyFile
	}

	cols, err := headerColumns(rows[0])
	if err != nil {
		return nil, err
	}

	return parseRows(cols, rows[1:])
}

// firstLine returns the first non-blank line, used to pick the separator.
func firstLine(raw []byte) (string, bool) {
	for line := range strings.Lines(string(raw)) {
		if l := strings.TrimSpace(line); l != "" {
			return l, true
		}
	}

	return "", false
}

func separator(header string) rune {
	if strings.Count(header, ";") > strings.Count(header, ",") {
		return ';'
	}

	return ','
}

func headerColumns(row []string) (colIndex, error) {
	cols := make(colIndex)

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, seen := cols[name]; name != "" && !seen {
			cols[name] = i
		}
	}

	var missing []string

	for _, name := range requiredCols {
		if _, ok := cols[name]; !ok {
			missing = append(missing, name)
		}
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumns, strings.Join(missing, ", "))
	}

	return cols, nil
}

// parseRows turns data rows into validated candidates. Row numbers in
// errors are 1-based and count the header.
func parseRows(cols colIndex, rows [][]string) ([]transaction.Candidate, error) {
	var cs []transaction.Candidate

	for i, row := range rows {
		rowNum := i + 2

		if blank(row) {
			continue
		}

		c, err := parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("row %d: %w", rowNum, err)
		}

		cs = append(cs, c)
	}

	return cs, nil
}

func parseRow(cols colIndex, row []string) (transaction.Candidate, error) {
	amount, err := currency.ParseAmount(cellValue(row, cols[colAmount]))
	if err != nil {
		return transaction.Candidate{}, fmt.Errorf("%w: %w", transaction.ErrInvalidAmount, err)
	}

	cur, err := currency.Parse(cellValue(row, cols[colCurrency]))
	if err != nil {
		return transaction.Candidate{}, fmt.Errorf("%w: %w", transaction.ErrInvalidCurrency, err)
	}

	typ, err := transaction.ParseType(cellValue(row, cols[colType]))
	if err != nil {
		return transaction.Candidate{}, err
	}

	return transaction.Candidate{
		Amount:   amount,
		Currency: cur,
		Type:     typ,
		Category: category(typ, cellValue(row, cols[colCategory])),
	}, nil
}

// category resolves a label case-insensitively against the enumeration of
// typ, leaving unknown labels for validation to reject.
func category(typ transaction.Type, label string) transaction.Category {
	for _, c := range transaction.Categories(typ) {
		if strings.EqualFold(string(c), label) {
			return c
		}
	}

	return transaction.Category(label)
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
