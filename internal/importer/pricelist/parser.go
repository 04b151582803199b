package pricelist

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/garage/internal/catalog"
	enc "github.com/MrJamesThe3rd/garage/internal/encoding"
)

// Parser reads supplier price lists exported as semicolon separated CSV.
// Preamble rows before the header are skipped, as are blank rows after it.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]catalog.PriceListEntry, error) {
	utf8r, charset, err := enc.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	profile, cols, headerIdx := detectProfile(rows)
	if profile == nil {
		return nil, fmt.Errorf("no price list header found: expected sku, name, cost and sale columns")
	}

	slog.Debug("parsing price list", "profile", profile.Name, "charset", charset, "rows", len(rows)-headerIdx-1)

	return parseRows(profile, cols, rows[headerIdx+1:], headerIdx+1)
}

type colIndex map[string]int

func detectProfile(rows [][]string) (*Profile, colIndex, int) {
	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			name := strings.ToLower(strings.TrimSpace(cell))
			if name != "" {
				cols[name] = i
			}
		}

		for i := range profiles {
			if matchesProfile(&profiles[i], cols) {
				return &profiles[i], cols, rowIdx
			}
		}
	}

	return nil, nil, 0
}

func matchesProfile(p *Profile, cols colIndex) bool {
	for _, name := range p.requiredCols() {
		if _, ok := cols[name]; !ok {
			return false
		}
	}

	return true
}

// parseRows converts data rows. firstRow is the 0-based index of rows[0] in
// the file, used for 1-based line numbers in errors.
func parseRows(p *Profile, cols colIndex, rows [][]string, firstRow int) ([]catalog.PriceListEntry, error) {
	descIdx, hasDesc := cols[p.Description]
	if !hasDesc {
		descIdx = -1
	}

	var entries []catalog.PriceListEntry

	for i, row := range rows {
		line := firstRow + i + 1

		sku := cellValue(row, cols[p.SKU])
		if sku == "" {
			if isBlank(row) {
				continue
			}

			return nil, fmt.Errorf("line %d: missing sku", line)
		}

		name := cellValue(row, cols[p.PartName])
		if name == "" {
			return nil, fmt.Errorf("line %d: missing name for %s", line, sku)
		}

		cost, err := parseAmount(cellValue(row, cols[p.Cost]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid cost: %w", line, err)
		}

		sale, err := parseAmount(cellValue(row, cols[p.Sale]))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid sale price: %w", line, err)
		}

		entries = append(entries, catalog.PriceListEntry{
			SKU:         sku,
			Name:        name,
			Description: cellValue(row, descIdx),
			CostPrice:   cost,
			SalePrice:   sale,
		})
	}

	return entries, nil
}

func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}
