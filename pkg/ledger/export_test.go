package ledger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var sampleTable = Table{
	Header: []string{"id", "date", "description"},
	Rows: [][]string{
		{"2", "2025-03-02", "Hosting, March"},
		{"1", "2025-03-01", ""},
	},
}

func TestRenderCSV(t *testing.T) {
	result, err := RenderCSV(sampleTable)

	require.NoError(t, err)
	assert.Equal(t, "id,date,description\n2,2025-03-02,\"Hosting, March\"\n1,2025-03-01,\n", result)
}

func TestRenderXLSX(t *testing.T) {
	// when
	content, err := RenderXLSX(sampleTable)

	// then
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{sheetName}, f.GetSheetList())
	rows, err := f.GetRows(sheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"id", "date", "description"}, rows[0])
	assert.Equal(t, []string{"2", "2025-03-02", "Hosting, March"}, rows[1])
	require.GreaterOrEqual(t, len(rows[2]), 2)
	assert.Equal(t, "1", rows[2][0])
	assert.Equal(t, "2025-03-01", rows[2][1])
}
