// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package roster

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/pdiddy/persona-pages/pkg/types"
)

// LoadXLSX reads the first sheet of the workbook at path using the same
// header schema as CSV input.
func LoadXLSX(path string) ([]types.PersonaRecord, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening roster %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("roster %s has no sheets", path)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("reading sheet %q of %s: %w", sheets[0], path, err)
	}

	records, err := parseRows(rows, true)
	if err != nil {
		return nil, fmt.Errorf("reading roster %s: %w", path, err)
	}
	return records, nil
}
