// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/persona-pages/pkg/types"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(types.CatalogConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func persona(i int, name, town, province, gender, edu string) types.EnrichedPersona {
	return types.EnrichedPersona{
		PersonaRecord: types.PersonaRecord{
			Index:     fmt.Sprint(i),
			Name:      name,
			Age:       "30",
			Gender:    gender,
			Town:      town,
			Province:  province,
			Education: edu,
		},
		Ordinal:       i,
		EducationText: "text " + edu,
		HeadshotFile:  fmt.Sprintf("%02d.png", i),
	}
}

func samplePages() []types.Page {
	return []types.Page{
		{Filename: "persona_01_03.html", People: []types.EnrichedPersona{
			persona(1, "Amina", "Soweto", "Gauteng", "Female", "2"),
			persona(2, "Johan", "Paarl", "Western Cape", "Male", "4"),
			persona(3, "Naledi", "Bloemfontein", "Free State", "Female", "3"),
		}},
		{Filename: "persona_04_06.html", People: []types.EnrichedPersona{
			persona(4, "Pieter", "Soweto", "Gauteng", "Male", "1"),
		}},
	}
}

func names(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Name
	}
	return out
}

func TestBuildAndQuery(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	var log bytes.Buffer

	n, err := s.Build(ctx, samplePages(), &log)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Contains(t, log.String(), "catalogued persona_01_03.html (3 personas)")

	all, err := s.Query(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Amina", "Johan", "Naledi", "Pieter"}, names(all))
	assert.Equal(t, "persona_04_06.html", all[3].Page)
	assert.Equal(t, "text 2", all[0].EducationText)
	assert.Equal(t, "01.png", all[0].HeadshotFile)

	tests := []struct {
		name string
		opts QueryOptions
		want []string
	}{
		{"province", QueryOptions{Province: "gauteng"}, []string{"Amina", "Pieter"}},
		{"gender and province", QueryOptions{Province: "Gauteng", Gender: "Male"}, []string{"Pieter"}},
		{"education", QueryOptions{Education: "4"}, []string{"Johan"}},
		{"text on name", QueryOptions{Text: "ale"}, []string{"Naledi"}},
		{"text on town", QueryOptions{Text: "paarl"}, []string{"Johan"}},
		{"limit", QueryOptions{MaxResults: 2}, []string{"Amina", "Johan"}},
		{"no match", QueryOptions{Town: "Durban"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Query(ctx, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(got))
		})
	}
}

func TestBuildReplacesContents(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Build(ctx, samplePages(), &bytes.Buffer{})
	require.NoError(t, err)

	_, err = s.Build(ctx, samplePages()[1:], &bytes.Buffer{})
	require.NoError(t, err)

	all, err := s.Query(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Pieter"}, names(all))
}

func TestBuildRollsBackOnDuplicate(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	_, err := s.Build(ctx, samplePages(), &bytes.Buffer{})
	require.NoError(t, err)

	dup := []types.Page{{Filename: "p.html", People: []types.EnrichedPersona{
		persona(9, "A", "X", "Y", "Female", "1"),
		persona(9, "B", "X", "Y", "Female", "1"),
	}}}
	_, err = s.Build(ctx, dup, &bytes.Buffer{})
	require.Error(t, err)

	all, err := s.Query(ctx, QueryOptions{})
	require.NoError(t, err)
	assert.Len(t, all, 4, "failed build must leave the previous catalog intact")
}

func TestExport(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	_, err := s.Build(ctx, samplePages(), &bytes.Buffer{})
	require.NoError(t, err)

	yamlPath, err := s.ExportYAML(ctx, QueryOptions{Province: "Gauteng"})
	require.NoError(t, err)
	data, err := os.ReadFile(yamlPath)
	require.NoError(t, err)

	var fromYAML []Entry
	require.NoError(t, yaml.Unmarshal(data, &fromYAML))
	assert.Equal(t, []string{"Amina", "Pieter"}, names(fromYAML))
	assert.Equal(t, "persona_01_03.html", fromYAML[0].Page)

	jsonPath, err := s.ExportJSON(ctx, QueryOptions{})
	require.NoError(t, err)
	data, err = os.ReadFile(jsonPath)
	require.NoError(t, err)

	var fromJSON []Entry
	require.NoError(t, json.Unmarshal(data, &fromJSON))
	assert.Len(t, fromJSON, 4)
	assert.Equal(t, "Johan", fromJSON[1].Name)
}

func TestExportEmptyCatalog(t *testing.T) {
	s := testStore(t)
	path, err := s.ExportJSON(context.Background(), QueryOptions{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestExportWriteFailure(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	// A directory in place of each export file makes the write fail.
	for _, name := range []string{"export.yaml", "export.json"} {
		require.NoError(t, os.Mkdir(filepath.Join(s.dir, name), 0o755))
	}

	path, err := s.ExportYAML(ctx, QueryOptions{})
	require.Error(t, err)
	assert.Empty(t, path)
	assert.Contains(t, err.Error(), "writing")

	path, err = s.ExportJSON(ctx, QueryOptions{})
	require.Error(t, err)
	assert.Empty(t, path)
	assert.Contains(t, err.Error(), "export.json")
}
