package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPDFExporter_Summary(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, (&PDFExporter{}).Export(&buf, SummaryReport(sampleSummaries(), generatedAt)))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	assert.True(t, bytes.Contains(buf.Bytes(), []byte("%%EOF")))
}

func TestPDFExporter_NonLatinTitle(t *testing.T) {
	rep := sampleInvoice()
	rep.Title = "Fattura (€)"

	var buf bytes.Buffer
	require.NoError(t, (&PDFExporter{}).Export(&buf, rep))
	assert.Greater(t, buf.Len(), 500)
}
