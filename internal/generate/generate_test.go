// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/persona-pages/internal/lookup"
	"github.com/pdiddy/persona-pages/pkg/types"
)

const header = "Person (Order),Name,Age (years),Gender,Town,Province,Economic Stability," +
	"Education,Money & Fairness,Environment & Daily Life,Belonging & Shared Space,Education & Next Generation\n"

// fakeConverter implements pdf.Converter for testing.
type fakeConverter struct {
	err      error
	single   []string
	combined [][]string
	outputs  []string
}

func (f *fakeConverter) ConvertFile(htmlPath string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.single = append(f.single, htmlPath)
	return strings.TrimSuffix(htmlPath, ".html") + ".pdf", nil
}

func (f *fakeConverter) ConvertFiles(htmlPaths []string, pdfPath string) error {
	if f.err != nil {
		return f.err
	}
	f.combined = append(f.combined, append([]string(nil), htmlPaths...))
	f.outputs = append(f.outputs, pdfPath)
	return nil
}

var names = []string{"Amina", "Johan", "Naledi", "Pieter", "Thandi", "Sipho", "Lerato"}

// setupProject writes a roster of n personas and a headshot directory and
// returns a config pointing at them.
func setupProject(t *testing.T, n int) types.GenerateConfig {
	t.Helper()
	root := t.TempDir()

	var b strings.Builder
	b.WriteString(header)
	for i := 1; i <= n; i++ {
		code := fmt.Sprint((i-1)%4 + 1)
		fmt.Fprintf(&b, "%d,%s,%d,Female,Soweto,Gauteng,Getting by,%s,%s,%s,%s,%s\n",
			i, names[(i-1)%len(names)], 20+i, code, code, code, code, code)
	}
	input := filepath.Join(root, "input.csv")
	require.NoError(t, os.WriteFile(input, []byte(b.String()), 0o644))

	headshots := filepath.Join(root, "headshots")
	require.NoError(t, os.MkdirAll(headshots, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(headshots, "01-amina-flat-eco-nat.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(headshots, "02-johan.png"), []byte("png"), 0o644))

	return types.GenerateConfig{
		Input:       input,
		OutputDir:   filepath.Join(root, "html"),
		HeadshotDir: headshots,
	}
}

func TestRun(t *testing.T) {
	cfg := setupProject(t, 7)
	var log bytes.Buffer

	result, err := Run(cfg, nil, &log)
	require.NoError(t, err)

	require.Len(t, result.Pages, 3)
	assert.Equal(t, []string{"persona_01_03.html", "persona_04_06.html", "persona_07_09.html"},
		[]string{result.Pages[0].Filename, result.Pages[1].Filename, result.Pages[2].Filename})
	assert.Equal(t, "Personas 1 to 3 (Amina, Johan, Naledi)", result.Pages[0].Title)
	assert.Equal(t, "Personas 7 to 9 (Lerato)", result.Pages[2].Title)
	assert.Empty(t, result.PDFs)

	for _, p := range result.PagePaths {
		assert.FileExists(t, p)
		assert.Contains(t, log.String(), "Generated: "+p)
	}
	assert.FileExists(t, result.Index)
	assert.Contains(t, log.String(), "HTML generation complete. Files saved to: "+cfg.OutputDir)

	index, err := os.ReadFile(result.Index)
	require.NoError(t, err)
	for _, page := range result.Pages {
		assert.Contains(t, string(index), page.Filename)
	}

	first, err := os.ReadFile(result.PagePaths[0])
	require.NoError(t, err)
	assert.Contains(t, string(first), "02-johan.png")
	assert.Contains(t, string(first), "No formal education")
}

func TestRunManifest(t *testing.T) {
	cfg := setupProject(t, 4)
	_, err := Run(cfg, nil, &bytes.Buffer{})
	require.NoError(t, err)

	m, err := ReadManifest(cfg.OutputDir)
	require.NoError(t, err)
	assert.Equal(t, 4, m.Personas)
	assert.Equal(t, 3, m.BatchSize)
	assert.Equal(t, "index.html", m.Index)
	require.Len(t, m.Pages, 2)
	assert.Equal(t, []string{"1", "2", "3"}, m.Pages[0].Indices)
	assert.Equal(t, []string{"Pieter"}, m.Pages[1].Names)
	assert.Empty(t, m.Combined)
}

func TestRunIsDeterministic(t *testing.T) {
	cfg := setupProject(t, 5)

	snapshot := func() map[string]string {
		entries, err := os.ReadDir(cfg.OutputDir)
		require.NoError(t, err)
		files := make(map[string]string, len(entries))
		for _, e := range entries {
			data, err := os.ReadFile(filepath.Join(cfg.OutputDir, e.Name()))
			require.NoError(t, err)
			files[e.Name()] = string(data)
		}
		return files
	}

	_, err := Run(cfg, nil, &bytes.Buffer{})
	require.NoError(t, err)
	first := snapshot()

	_, err = Run(cfg, nil, &bytes.Buffer{})
	require.NoError(t, err)
	second := snapshot()

	assert.Equal(t, first, second)
	assert.Contains(t, first, "persona_01_03.html")
	assert.Contains(t, first, "persona_04_06.html")
	assert.Contains(t, first, "index.html")
	assert.Contains(t, first, ManifestFilename)
}

func TestRunConflictingPDFModes(t *testing.T) {
	cfg := setupProject(t, 3)
	cfg.OnePDF = true
	cfg.ManyPDF = true
	conv := &fakeConverter{}

	_, err := Run(cfg, conv, &bytes.Buffer{})
	require.ErrorIs(t, err, types.ErrConflictingPDFModes)

	assert.NoDirExists(t, cfg.OutputDir)
	assert.Empty(t, conv.single)
	assert.Empty(t, conv.combined)
}

func TestRunManyPDF(t *testing.T) {
	cfg := setupProject(t, 4)
	cfg.ManyPDF = true
	conv := &fakeConverter{}
	var log bytes.Buffer

	result, err := Run(cfg, conv, &log)
	require.NoError(t, err)

	assert.Equal(t, result.PagePaths, conv.single)
	assert.Empty(t, conv.combined)
	require.Len(t, result.PDFs, 2)
	assert.Contains(t, log.String(), "Converted: "+result.PDFs[0])

	m, err := ReadManifest(cfg.OutputDir)
	require.NoError(t, err)
	assert.Equal(t, "persona_01_03.pdf", m.Pages[0].PDF)
}

func TestRunOnePDF(t *testing.T) {
	cfg := setupProject(t, 7)
	cfg.OnePDF = true
	conv := &fakeConverter{}

	result, err := Run(cfg, conv, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Empty(t, conv.single)
	require.Len(t, conv.combined, 1)
	assert.Equal(t, result.PagePaths, conv.combined[0])
	assert.Equal(t, []string{filepath.Join(cfg.OutputDir, "all.pdf")}, conv.outputs)
	assert.Equal(t, conv.outputs, result.PDFs)
}

func TestRunConverterFailure(t *testing.T) {
	cfg := setupProject(t, 3)
	cfg.ManyPDF = true
	boom := errors.New("wkhtmltopdf exploded")

	result, err := Run(cfg, &fakeConverter{err: boom}, &bytes.Buffer{})
	require.ErrorIs(t, err, boom)
	// The page rendered before the failure stays on disk.
	require.Len(t, result.PagePaths, 1)
	assert.FileExists(t, result.PagePaths[0])
}

func TestRunRequiresConverterForPDF(t *testing.T) {
	cfg := setupProject(t, 3)
	cfg.OnePDF = true

	_, err := Run(cfg, nil, &bytes.Buffer{})
	require.ErrorIs(t, err, ErrNoConverter)
}

func TestRunUnknownCodeFailsBeforeRendering(t *testing.T) {
	cfg := setupProject(t, 0)
	bad := header + "1,Amina,29,Female,Soweto,Gauteng,Getting by,9,1,1,1,1\n"
	require.NoError(t, os.WriteFile(cfg.Input, []byte(bad), 0o644))

	_, err := Run(cfg, nil, &bytes.Buffer{})
	var uce *lookup.UnknownCodeError
	require.True(t, errors.As(err, &uce), "got %v", err)
	assert.NoDirExists(t, cfg.OutputDir)
}

func TestRunMissingHeadshotDirectory(t *testing.T) {
	cfg := setupProject(t, 3)
	cfg.HeadshotDir = filepath.Join(t.TempDir(), "nope")

	_, err := Run(cfg, nil, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "headshot directory")
}

func TestRunEmptyRoster(t *testing.T) {
	cfg := setupProject(t, 0)
	cfg.OnePDF = true
	conv := &fakeConverter{}

	result, err := Run(cfg, conv, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Empty(t, result.Pages)
	assert.FileExists(t, result.Index)
	assert.Empty(t, conv.combined)
}
