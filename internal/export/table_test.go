package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableExporter_Summary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableExporter{}).Export(&buf, SummaryReport(sampleSummaries(), generatedAt)))

	want := strings.Join([]string{
		"Company  Avg Profit  YoY Growth %  Margin %",
		"-------------------------------------------",
		"ACME      13,500.00         25.00     12.00",
		"Beta         500.00           N/A       N/A",
	}, "\n") + "\n"
	assert.Equal(t, want, buf.String())
}

func TestTableExporter_Totals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableExporter{}).Export(&buf, sampleInvoice()))

	out := buf.String()
	assert.Contains(t, out, "Laptop")
	assert.Contains(t, out, "6,000.00")
	assert.True(t, strings.HasSuffix(out, "\nSubtotal     6,500.00\nTotal Tax    1,235.00\nGrand Total  7,735.00\n"), out)
}

func TestTableExporter_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&TableExporter{}).Export(&buf, SummaryReport(nil, generatedAt)))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
}
