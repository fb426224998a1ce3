package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honnef.co/go/segcut"
)

func testReport(t *testing.T) Report {
	t.Helper()
	c := segcut.Circle{Radius: 338.6}
	results := segcut.Sweep(context.Background(), c, []float64{40000, 45000, -1}, segcut.Options{}, 0)
	return New(c, results)
}

func TestNew(t *testing.T) {
	r := testReport(t)

	_, err := uuid.Parse(r.ID)
	assert.NoError(t, err)
	assert.Equal(t, 338.6, r.Radius)
	assert.Equal(t, 677.2, r.Diameter)
	require.Len(t, r.Entries, 3)
	assert.Len(t, r.Entries[0].Cuts, 9)
	assert.Len(t, r.Entries[1].Cuts, 8)
	assert.NotNil(t, r.Entries[0].Leftover)
	assert.Empty(t, r.Entries[2].Cuts)
	assert.Nil(t, r.Entries[2].Leftover)
	assert.Contains(t, r.Entries[2].Error, "invalid input")
	assert.Equal(t, 1, r.Failed())
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"auto", "table", "JSON", "toml", "csv", "svg"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(strings.ToLower(s)), f)
	}
	_, err := ParseFormat("xlsx")
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, FormatJSON, FormatAuto.Resolve(&buf))
	assert.Equal(t, FormatCSV, FormatCSV.Resolve(&buf))
}

func TestWriteJSON(t *testing.T) {
	r := testReport(t)
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, FormatAuto))

	var got Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, r.ID, got.ID)
	require.Len(t, got.Entries, 3)
	assert.Equal(t, r.Entries[0].Cuts, got.Entries[0].Cuts)
	assert.Equal(t, r.Entries[0].Leftover, got.Entries[0].Leftover)
	assert.Equal(t, r.Entries[2].Error, got.Entries[2].Error)
	assert.True(t, r.GeneratedAt.Equal(got.GeneratedAt))
}

func TestWriteTOML(t *testing.T) {
	r := testReport(t)
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, FormatTOML))

	var got Report
	require.NoError(t, toml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, r.ID, got.ID)
	require.Len(t, got.Entries, 3)
	assert.Len(t, got.Entries[0].Cuts, 9)
	assert.InDelta(t, r.Entries[0].Cuts[0].Height, got.Entries[0].Cuts[0].Height, 1e-9)
	assert.Equal(t, r.Entries[2].Error, got.Entries[2].Error)
}

func TestWriteCSV(t *testing.T) {
	r := testReport(t)
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, FormatCSV))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	// header, 9 + 1 rows, 8 + 1 rows, 1 error row
	require.Len(t, rows, 1+10+9+1)
	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"40000", "cut", "1"}, rows[1][:3])
	assert.Equal(t, "40000", rows[1][3])
	assert.Equal(t, "leftover", rows[10][1])
	assert.Equal(t, "error", rows[len(rows)-1][1])
	assert.NotEmpty(t, rows[len(rows)-1][7])
}

func TestWriteTable(t *testing.T) {
	r := testReport(t)
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, FormatTable))

	out := buf.String()
	assert.Contains(t, out, "Increment 40,000")
	assert.Contains(t, out, "Increment 45,000")
	assert.Contains(t, out, "113.94")
	assert.Contains(t, out, "left over")
	assert.Contains(t, out, "error:")
}

func TestWriteSVG(t *testing.T) {
	r := testReport(t)
	var buf bytes.Buffer
	require.NoError(t, r.Write(&buf, FormatSVG))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.True(t, strings.HasSuffix(out, "</svg>\n"))
	assert.Equal(t, 2, strings.Count(out, "<circle "))
	assert.Equal(t, 9+8, strings.Count(out, "<path "))
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Report{}.Write(&buf, Format("xlsx")))
}
