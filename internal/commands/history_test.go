package commands_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/finsum/internal/history"
)

func TestHistory_RecordsWrittenFiles(t *testing.T) {
	outDir := t.TempDir()
	_, _, err := runFinsum(t, "summary", companiesCSV, "--config", noConfig(t), "--format", "pdf", "--out", outDir)
	require.NoError(t, err)
	_, _, err = runFinsum(t, "invoice", "../../testdata/invoice.yaml", "--config", noConfig(t), "--format", "xlsx", "--out", outDir)
	require.NoError(t, err)

	entries, err := history.Read(outDir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "summary", entries[0].Command)
	assert.Equal(t, "pdf", entries[0].Format)
	assert.Equal(t, companiesCSV, entries[0].Input)
	assert.Equal(t, 4, entries[0].Rows)
	assert.Equal(t, "invoice", entries[1].Command)
	assert.Equal(t, 2, entries[1].Rows)
	assert.Equal(t, outDir, filepath.Dir(entries[1].Path))

	out, _, err := runFinsum(t, "history", "--config", noConfig(t), "--out", outDir)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Command")
	assert.Contains(t, lines[2], "summary")
	assert.Contains(t, lines[3], "invoice")
}

func TestHistory_StdoutNotRecorded(t *testing.T) {
	outDir := t.TempDir()
	_, _, err := runFinsum(t, "summary", companiesCSV, "--config", noConfig(t), "--format", "json")
	require.NoError(t, err)

	out, _, err := runFinsum(t, "history", "--config", noConfig(t), "--out", outDir)
	require.NoError(t, err)
	assert.Equal(t, "No reports written to "+outDir+"\n", out)
}
