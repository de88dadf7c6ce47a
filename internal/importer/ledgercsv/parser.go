// Package ledgercsv reads the ledger's own CSV format:
//
//	date,amount,category,description
//
// Columns may appear in any order and header names are case-insensitive.
// Only date and amount are required. The delimiter is either a comma or a
// semicolon, and amounts may use either a dot or a comma as the decimal
// separator.
package ledgercsv

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	enc "github.com/MrJamesThe3rd/tally/internal/encoding"
	"github.com/MrJamesThe3rd/tally/internal/expense"
	"github.com/MrJamesThe3rd/tally/internal/ledger"
)

const (
	ColDate        = "date"
	ColAmount      = "amount"
	ColCategory    = "category"
	ColDescription = "description"
)

// Header is the column order written on export.
var Header = []string{ColDate, ColAmount, ColCategory, ColDescription}

var ErrEmpty = errors.New("empty file")

type Parser struct{}

func New() *Parser {
	return &Parser{}
}

// Parse returns one Params per data row and the charset the input was
// decoded from. Any malformed row fails the whole file.
func (p *Parser) Parse(r io.Reader) ([]ledger.Params, string, error) {
	utf8r, charset, err := enc.NewUTF8Reader(r)
	if err != nil {
		return nil, "", fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, "", fmt.Errorf("read input: %w", err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, charset, ErrEmpty
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = detectDelimiter(data)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, charset, fmt.Errorf("read header: %w", err)
	}

	cols, err := mapColumns(header)
	if err != nil {
		return nil, charset, err
	}

	var params []ledger.Params

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, charset, fmt.Errorf("read csv: %w", err)
		}

		if blank(row) {
			continue
		}

		line, _ := reader.FieldPos(0)

		p, err := cols.parse(row)
		if err != nil {
			return nil, charset, fmt.Errorf("line %d: %w", line, err)
		}

		params = append(params, p)
	}

	return params, charset, nil
}

// detectDelimiter picks whichever of ',' and ';' occurs more often on the
// header line.
func detectDelimiter(data []byte) rune {
	line, _, _ := bytes.Cut(data, []byte{'\n'})
	if bytes.Count(line, []byte{';'}) > bytes.Count(line, []byte{','}) {
		return ';'
	}

	return ','
}

type columns struct {
	date, amount, category, description int
}

func mapColumns(header []string) (columns, error) {
	cols := columns{date: -1, amount: -1, category: -1, description: -1}

	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case ColDate:
			cols.date = i
		case ColAmount:
			cols.amount = i
		case ColCategory:
			cols.category = i
		case ColDescription:
			cols.description = i
		}
	}

	if cols.date < 0 {
		return cols, fmt.Errorf("missing %q column", ColDate)
	}

	if cols.amount < 0 {
		return cols, fmt.Errorf("missing %q column", ColAmount)
	}

	return cols, nil
}

func (c columns) parse(row []string) (ledger.Params, error) {
	date, err := expense.ParseDate(cell(row, c.date))
	if err != nil {
		return ledger.Params{}, err
	}

	amount, err := expense.ParseMoney(cell(row, c.amount))
	if err != nil {
		return ledger.Params{}, err
	}

	// Unknown or missing categories are filed under Other.
	category, err := expense.ParseCategory(cell(row, c.category))
	if err != nil {
		category = expense.Other
	}

	return ledger.Params{
		Amount:      amount,
		Category:    category,
		Description: cell(row, c.description),
		Date:        date,
	}, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}

	return true
}
