// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package generate runs the persona page pipeline: load the roster, enrich
// every row, split into pages, render each page and the index, and
// optionally convert the output to PDF. Every stage fails fast; files
// already written by a failed run are left in place.
package generate

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/persona-pages/internal/batch"
	"github.com/pdiddy/persona-pages/internal/enrich"
	"github.com/pdiddy/persona-pages/internal/pdf"
	"github.com/pdiddy/persona-pages/internal/render"
	"github.com/pdiddy/persona-pages/internal/roster"
	"github.com/pdiddy/persona-pages/pkg/types"
)

// ManifestFilename is written to the output directory after every run.
const ManifestFilename = "manifest.yaml"

// ErrNoConverter is returned when a PDF mode is selected without a converter.
var ErrNoConverter = errors.New("pdf output requested but no converter configured")

// Result describes the files a run produced.
type Result struct {
	Pages     []types.Page
	PagePaths []string
	Index     string
	Manifest  string
	PDFs      []string
}

// Prepare loads and enriches the roster described by cfg without writing
// anything.
func Prepare(cfg types.GenerateConfig) ([]types.EnrichedPersona, error) {
	records, err := roster.Load(cfg.Input)
	if err != nil {
		return nil, err
	}
	enricher, err := enrich.New(cfg.HeadshotDir, cfg.HeadshotPad, cfg.FallbackHeadshot)
	if err != nil {
		return nil, err
	}
	return enricher.EnrichAll(records)
}

// Run executes the pipeline. conv may be nil when no PDF mode is selected.
// Progress lines are written to w.
func Run(cfg types.GenerateConfig, conv pdf.Converter, w io.Writer) (Result, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	mode, _ := cfg.Mode()
	if mode != types.PDFNone && conv == nil {
		return Result{}, ErrNoConverter
	}

	people, err := Prepare(cfg)
	if err != nil {
		return Result{}, err
	}
	groups, err := batch.Split(people, cfg.BatchSize)
	if err != nil {
		return Result{}, err
	}
	renderer, err := render.New(render.Options{
		OutputDir:     cfg.OutputDir,
		HeadshotDir:   cfg.HeadshotDir,
		PageTemplate:  cfg.PageTemplate,
		IndexTemplate: cfg.IndexTemplate,
	})
	if err != nil {
		return Result{}, err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	var result Result
	manifest := types.Manifest{
		Input:     filepath.ToSlash(cfg.Input),
		BatchSize: cfg.BatchSize,
		Personas:  len(people),
		Index:     render.IndexFilename,
	}
	entries := make([]types.IndexEntry, 0, len(groups))

	for _, g := range groups {
		page, path, err := renderer.RenderPage(g)
		if err != nil {
			return result, err
		}
		result.Pages = append(result.Pages, page)
		result.PagePaths = append(result.PagePaths, path)
		fmt.Fprintf(w, "Generated: %s\n", path)

		mp := manifestPage(page)
		if mode == types.PDFMany {
			pdfPath, err := conv.ConvertFile(path)
			if err != nil {
				return result, fmt.Errorf("converting %s: %w", path, err)
			}
			result.PDFs = append(result.PDFs, pdfPath)
			mp.PDF = filepath.Base(pdfPath)
			fmt.Fprintf(w, "Converted: %s\n", pdfPath)
		}
		manifest.Pages = append(manifest.Pages, mp)

		entries = append(entries, types.IndexEntry{Name: page.Title, URL: page.Filename, Path: path})
	}

	index, err := renderer.RenderIndex(entries)
	if err != nil {
		return result, err
	}
	result.Index = index

	if mode == types.PDFOne && len(result.PagePaths) > 0 {
		combined := filepath.Join(cfg.OutputDir, pdf.CombinedFilename)
		if err := conv.ConvertFiles(result.PagePaths, combined); err != nil {
			return result, fmt.Errorf("converting %d pages into %s: %w", len(result.PagePaths), combined, err)
		}
		result.PDFs = append(result.PDFs, combined)
		manifest.Combined = pdf.CombinedFilename
		fmt.Fprintf(w, "Converted: %s\n", combined)
	}

	manifestPath, err := writeManifest(cfg.OutputDir, manifest)
	if err != nil {
		return result, err
	}
	result.Manifest = manifestPath

	fmt.Fprintf(w, "HTML generation complete. Files saved to: %s\n", cfg.OutputDir)
	return result, nil
}

func manifestPage(page types.Page) types.ManifestPage {
	mp := types.ManifestPage{Filename: page.Filename, Title: page.Title}
	for _, p := range page.People {
		mp.Indices = append(mp.Indices, p.Index)
		mp.Names = append(mp.Names, p.Name)
	}
	return mp
}

func writeManifest(dir string, m types.Manifest) (string, error) {
	data, err := yaml.Marshal(&m)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}
	path := filepath.Join(dir, ManifestFilename)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}
	return path, nil
}

// ReadManifest loads the manifest written by a previous run in dir.
func ReadManifest(dir string) (*types.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFilename))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m types.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	return &m, nil
}
