// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich derives display text and headshot filenames for roster rows.
package enrich

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pdiddy/persona-pages/internal/lookup"
	"github.com/pdiddy/persona-pages/pkg/types"
)

const headshotExt = ".png"

// Enricher resolves lookup codes and headshots. The headshot directory is
// listed once, on construction.
type Enricher struct {
	pad      int
	fallback string
	assets   []string // sorted .png names in the headshot directory
}

// New lists headshotDir and returns an Enricher. A missing or unreadable
// directory is an error. pad is the zero-padding width applied to the
// persona index when matching filenames; fallback is used when nothing matches.
func New(headshotDir string, pad int, fallback string) (*Enricher, error) {
	entries, err := os.ReadDir(headshotDir)
	if err != nil {
		return nil, fmt.Errorf("reading headshot directory %s: %w", headshotDir, err)
	}

	var assets []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(e.Name()), headshotExt) {
			assets = append(assets, e.Name())
		}
	}
	sort.Strings(assets)

	if pad < 1 {
		pad = 1
	}
	return &Enricher{pad: pad, fallback: fallback, assets: assets}, nil
}

// Enrich derives an EnrichedPersona from rec. Any code missing from its
// lookup table fails the whole record.
func (e *Enricher) Enrich(rec types.PersonaRecord) (types.EnrichedPersona, error) {
	ordinal, err := strconv.Atoi(strings.TrimSpace(rec.Index))
	if err != nil {
		return types.EnrichedPersona{}, fmt.Errorf("persona %q: index is not a number: %w", rec.Index, err)
	}

	out := types.EnrichedPersona{PersonaRecord: rec, Ordinal: ordinal}

	resolve := []struct {
		table lookup.Table
		code  string
		dst   *string
	}{
		{lookup.Education, rec.Education, &out.EducationText},
		{lookup.AttitudeMoney, rec.AttitudeMoney, &out.AttitudeMoneyText},
		{lookup.AttitudeEnvironment, rec.AttitudeEnvironment, &out.AttitudeEnvironmentText},
		{lookup.AttitudeBelonging, rec.AttitudeBelonging, &out.AttitudeBelongingText},
		{lookup.AttitudeEducation, rec.AttitudeEducation, &out.AttitudeEducationText},
	}
	for _, r := range resolve {
		text, err := lookup.Resolve(r.table, r.code)
		if err != nil {
			return types.EnrichedPersona{}, fmt.Errorf("persona %s (%s): %w", rec.Index, rec.Name, err)
		}
		*r.dst = text
	}

	out.HeadshotFile = e.Headshot(ordinal)
	return out, nil
}

// EnrichAll enriches records in order, stopping at the first failure.
func (e *Enricher) EnrichAll(records []types.PersonaRecord) ([]types.EnrichedPersona, error) {
	out := make([]types.EnrichedPersona, 0, len(records))
	for _, rec := range records {
		p, err := e.Enrich(rec)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

// Headshot returns the lexicographically first asset whose name starts with
// the zero-padded ordinal, or the fallback filename.
func (e *Enricher) Headshot(ordinal int) string {
	prefix := fmt.Sprintf("%0*d", e.pad, ordinal)
	i := sort.SearchStrings(e.assets, prefix)
	if i < len(e.assets) && strings.HasPrefix(e.assets[i], prefix) {
		return e.assets[i]
	}
	return e.fallback
}
