// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package secrets

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name  string
		setup func(t *testing.T) string
		want  Secrets
	}{
		{
			name: "reads key files and trims whitespace",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, AWSAccessKeyID, "  AKIAEXAMPLE  \n")
				writeFile(t, dir, AWSSecretAccessKey, "wJalrXUtnFEMI")
				writeFile(t, dir, AWSRegion, "af-south-1\n")
				return dir
			},
			want: Secrets{
				AWSAccessKeyID:     "AKIAEXAMPLE",
				AWSSecretAccessKey: "wJalrXUtnFEMI",
				AWSRegion:          "af-south-1",
			},
		},
		{
			name: "missing directory is empty",
			setup: func(t *testing.T) string {
				return filepath.Join(t.TempDir(), "does-not-exist")
			},
			want: Secrets{},
		},
		{
			name: "skips empty files, dotfiles and directories",
			setup: func(t *testing.T) string {
				dir := t.TempDir()
				writeFile(t, dir, AWSRegion, "eu-west-1")
				writeFile(t, dir, "empty", "")
				writeFile(t, dir, "blank", " \n\t ")
				writeFile(t, dir, ".gitkeep", "")
				writeFile(t, dir, ".hidden", "secret")
				require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))
				return dir
			},
			want: Secrets{AWSRegion: "eu-west-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(tt.setup(t))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGet(t *testing.T) {
	s := Secrets{AWSRegion: "af-south-1"}
	assert.Equal(t, "af-south-1", s.Get(AWSRegion, ""))
	assert.Equal(t, "us-east-1", s.Get(AWSRegion, "us-east-1"))
	assert.Equal(t, "", s.Get(AWSAccessKeyID, ""))
}

func TestKeys(t *testing.T) {
	s := Secrets{AWSSecretAccessKey: "x", AWSAccessKeyID: "y"}
	assert.Equal(t, []string{AWSAccessKeyID, AWSSecretAccessKey}, s.Keys())
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
