package erdkit_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erdkit/erdkit"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeConfig(t, dir, ".erdkit.yaml", "output: yaml\npretty: true\nfiles:\n  \"*.schema\": dsl\n")

	cfg, err := erdkit.LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "yaml", cfg.Output)
	assert.True(t, cfg.Pretty)
	assert.Equal(t, "dsl", cfg.Files["*.schema"])
}

func TestFindConfigWalksUp(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	want := writeConfig(t, root, ".erdkit.yml", "output: json\n")

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	got, err := erdkit.FindConfig(nested)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFindConfigNotFound(t *testing.T) {
	t.Parallel()

	_, err := erdkit.FindConfig(t.TempDir())
	assert.ErrorIs(t, err, erdkit.ErrConfigNotFound)
}

func TestLoadConfigFileMalformed(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, t.TempDir(), ".erdkit.yaml", "output: [unclosed\n")

	_, err := erdkit.LoadConfigFile(path)
	assert.Error(t, err)
}

func TestConfigFormatFor(t *testing.T) {
	t.Parallel()

	cfg := &erdkit.Config{Files: map[string]string{
		"*.schema": "dsl",
		"dumps/*":  "sql",
		"*.bogus":  "xml", // unknown format names are ignored
	}}

	tests := []struct {
		path   string
		want   erdkit.Format
		wantOK bool
	}{
		{"models.schema", erdkit.FormatDSL, true},
		{"nested/models.schema", erdkit.FormatDSL, true},
		{"dumps/prod", erdkit.FormatSQL, true},
		{"schema.sql", erdkit.FormatSQL, true},
		{"schema.json", erdkit.FormatJSON, true},
		{"notes.bogus", "", false},
		{"readme.txt", "", false},
	}

	for _, tt := range tests {
		got, ok := cfg.FormatFor(tt.path)
		assert.Equal(t, tt.wantOK, ok, "FormatFor(%q)", tt.path)

		if ok {
			assert.Equal(t, tt.want, got, "FormatFor(%q)", tt.path)
		}
	}

	// A nil config falls back to the extension table.
	var nilCfg *erdkit.Config

	got, ok := nilCfg.FormatFor("schema.prisma")
	require.True(t, ok)
	assert.Equal(t, erdkit.FormatDSL, got)
}

func TestFormatForFile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file   string
		want   erdkit.Format
		wantOK bool
	}{
		{"schema.prisma", erdkit.FormatDSL, true},
		{"schema.dsl", erdkit.FormatDSL, true},
		{"SCHEMA.SQL", erdkit.FormatSQL, true},
		{"tables.ddl", erdkit.FormatSQL, true},
		{"export.json", erdkit.FormatJSON, true},
		{"notes.txt", "", false},
		{"no_extension", "", false},
	}

	for _, tt := range tests {
		got, ok := erdkit.FormatForFile(tt.file)
		assert.Equal(t, tt.wantOK, ok, "FormatForFile(%q)", tt.file)

		if ok {
			assert.Equal(t, tt.want, got, "FormatForFile(%q)", tt.file)
		}
	}
}
