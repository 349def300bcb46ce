// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup maps single-character survey codes to their descriptive
// text. The tables are fixed at compile time; an unknown code is an error,
// never a default.
package lookup

import (
	"fmt"
	"sort"
)

// Table names a lookup dimension.
type Table string

const (
	Education           Table = "education"
	AttitudeMoney       Table = "money & fairness"
	AttitudeEnvironment Table = "environment & daily life"
	AttitudeBelonging   Table = "belonging & shared space"
	AttitudeEducation   Table = "education & next generation"
)

var tables = map[Table]map[string]string{
	Education: {
		"1": "No formal education",
		"2": "Basic education",
		"3": "Some higher education",
		"4": "Degree or higher",
	},
	AttitudeMoney: {
		"1": "The government should completely fund services through taxes.",
		"2": "The government should subsidise the cost but individuals need to pay something for their usage.",
		"3": "Corporations should pay for services they benefit from.",
		"4": "Individuals should pay for their own use.",
	},
	AttitudeEnvironment: {
		"1": "We need drastic change now to protect the future.",
		"2": "Significant change is needed, but comfort matters too.",
		"3": "Small changes in our habits can make a difference.",
		"4": "Technology should solve the problem, not lifestyle changes.",
	},
	AttitudeBelonging: {
		"1": "Local communities should decide their own spaces.",
		"2": "Government should lead, with input from everyone.",
		"3": "Developers should guide growth, as they bring investment.",
		"4": "Decisions should be made through direct democracy.",
	},
	AttitudeEducation: {
		"1": "Teach life skills and critical thinking.",
		"2": "Strong foundation in academics is essential.",
		"3": "Practical skills should be the focus.",
		"4": "Teach values and emotional intelligence first.",
	},
}

// UnknownCodeError reports a code with no entry in its table.
type UnknownCodeError struct {
	Table Table
	Code  string
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("unknown %s code %q", e.Table, e.Code)
}

// Resolve returns the text for code in table. The code must match a table
// key exactly.
func Resolve(table Table, code string) (string, error) {
	entries, ok := tables[table]
	if !ok {
		return "", fmt.Errorf("unknown lookup table %q", table)
	}
	text, ok := entries[code]
	if !ok {
		return "", &UnknownCodeError{Table: table, Code: code}
	}
	return text, nil
}

// Codes returns the codes defined for table in sorted order.
func Codes(table Table) []string {
	entries := tables[table]
	codes := make([]string, 0, len(entries))
	for c := range entries {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Tables lists every table name in a stable order.
func Tables() []Table {
	return []Table{Education, AttitudeMoney, AttitudeEnvironment, AttitudeBelonging, AttitudeEducation}
}
