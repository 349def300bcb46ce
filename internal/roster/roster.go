// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package roster loads persona rows from a header-keyed CSV or XLSX file.
// Column names are fixed. A missing column or a short row fails the load;
// there is no skip-and-continue mode.
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pdiddy/persona-pages/pkg/types"
)

// Column headers expected in the roster.
const (
	ColIndex               = "Person (Order)"
	ColName                = "Name"
	ColAge                 = "Age (years)"
	ColGender              = "Gender"
	ColTown                = "Town"
	ColProvince            = "Province"
	ColEconomic            = "Economic Stability"
	ColEducation           = "Education"
	ColAttitudeMoney       = "Money & Fairness"
	ColAttitudeEnvironment = "Environment & Daily Life"
	ColAttitudeBelonging   = "Belonging & Shared Space"
	ColAttitudeEducation   = "Education & Next Generation"
)

// RequiredColumns lists the headers every roster must carry, in the order
// fields appear on PersonaRecord.
var RequiredColumns = []string{
	ColIndex, ColName, ColAge, ColGender, ColTown, ColProvince, ColEconomic,
	ColEducation, ColAttitudeMoney, ColAttitudeEnvironment, ColAttitudeBelonging,
	ColAttitudeEducation,
}

const utf8BOM = "\ufeff"

// MissingColumnError reports a required column absent from the header or
// from a data row. Row is the 1-based row number in the source file.
type MissingColumnError struct {
	Column string
	Row    int
}

func (e *MissingColumnError) Error() string {
	if e.Row <= 1 {
		return fmt.Sprintf("missing required column %q in header", e.Column)
	}
	return fmt.Sprintf("row %d: missing value for column %q", e.Row, e.Column)
}

// Load reads the roster at path. Files ending in .xlsx are read from their
// first sheet; everything else is parsed as CSV.
func Load(path string) ([]types.PersonaRecord, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return LoadXLSX(path)
	}
	return LoadCSV(path)
}

// LoadCSV opens path and parses it with ReadCSV.
func LoadCSV(path string) ([]types.PersonaRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	return records, nil
}

// ReadCSV parses CSV from r. The first row is the header.
func ReadCSV(r io.Reader) ([]types.PersonaRecord, error) {
	reader := csv.NewReader(r)
	// Row width is checked against the header below so the error can name
	// the absent column.
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing CSV: %w", err)
	}
	return parseRows(rows, false)
}

// parseRows maps header-keyed rows to records. When padShort is set, rows
// shorter than the header are treated as having empty trailing cells
// (spreadsheets drop them); otherwise a short row is an error.
func parseRows(rows [][]string, padShort bool) ([]types.PersonaRecord, error) {
	if len(rows) == 0 {
		return nil, &MissingColumnError{Column: ColIndex, Row: 1}
	}

	header := rows[0]
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}
	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if _, dup := columns[name]; !dup {
			columns[name] = i
		}
	}
	for _, col := range RequiredColumns {
		if _, ok := columns[col]; !ok {
			return nil, &MissingColumnError{Column: col, Row: 1}
		}
	}

	seen := make(map[string]int)
	var records []types.PersonaRecord
	for i, row := range rows[1:] {
		rowNum := i + 2
		if blank(row) {
			continue
		}

		get := func(col string) (string, error) {
			idx := columns[col]
			if idx >= len(row) {
				if padShort {
					return "", nil
				}
				return "", &MissingColumnError{Column: col, Row: rowNum}
			}
			return row[idx], nil
		}

		var rec types.PersonaRecord
		fields := []*string{
			&rec.Index, &rec.Name, &rec.Age, &rec.Gender, &rec.Town, &rec.Province,
			&rec.Economic, &rec.Education, &rec.AttitudeMoney, &rec.AttitudeEnvironment,
			&rec.AttitudeBelonging, &rec.AttitudeEducation,
		}
		for j, col := range RequiredColumns {
			v, err := get(col)
			if err != nil {
				return nil, err
			}
			*fields[j] = v
		}

		key := indexKey(rec.Index)
		if prev, ok := seen[key]; ok {
			return nil, fmt.Errorf("row %d: duplicate %s %q (first seen on row %d)", rowNum, ColIndex, rec.Index, prev)
		}
		seen[key] = rowNum

		records = append(records, rec)
	}
	return records, nil
}

// indexKey identifies a persona index for duplicate detection. Numeric
// indices compare by value, so "7" and "07" collide.
func indexKey(index string) string {
	key := strings.TrimSpace(index)
	if n, err := strconv.Atoi(key); err == nil {
		return strconv.Itoa(n)
	}
	return key
}

func blank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
