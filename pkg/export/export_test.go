package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForFormat(t *testing.T) {
	csvExp, err := ForFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", csvExp.ContentType())

	pdfExp, err := ForFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, "pdf", pdfExp.Extension())

	_, err = ForFormat("xlsx")
	assert.Error(t, err)
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(Dataset{
		Headers: []string{"#", "point"},
		Rows: []map[string]string{
			{"#": "1", "point": "Covered hooks, with examples"},
			{"#": "2", "point": "Q&A"},
		},
	}, "ignored")
	require.NoError(t, err)
	assert.Equal(t, "#,point\n1,\"Covered hooks, with examples\"\n2,Q&A\n", string(out))
}

func TestExportersRequireHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{}, "")
	assert.Error(t, err)
	_, err = NewPDFExporter().Render(Dataset{}, "")
	assert.Error(t, err)
}

func TestPDFExporterRender(t *testing.T) {
	single, err := NewPDFExporter().Render(Dataset{
		Headers: []string{"point"},
		Rows:    []map[string]string{{"point": "• Covered useState"}},
	}, "Live Summary")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(single, []byte("%PDF")))

	table, err := NewPDFExporter().Render(Dataset{
		Headers: []string{"a", "b"},
		Rows:    []map[string]string{{"a": "1", "b": "2"}},
	}, "")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(table, []byte("%PDF")))
}

func TestRenderCertificate(t *testing.T) {
	out, err := RenderCertificate(Certificate{
		AttendeeName: "Ada Lovelace",
		Workshop:     "Advanced React Development Workshop",
		Instructor:   "Dr. Sarah Johnson",
		Duration:     "4 hours",
		IssuedAt:     time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		SerialNumber: "abc",
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = RenderCertificate(Certificate{Workshop: "x"})
	assert.Error(t, err)
}
