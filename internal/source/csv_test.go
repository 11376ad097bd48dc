package source

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV_HeaderKeyedRows(t *testing.T) {
	data := "symbol,Entry_Price,NET_PNL\nTCS,4100.5,25\nINFY,1500,-10\n"

	rows, err := parseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "TCS", rows[0]["symbol"])
	assert.Equal(t, "4100.5", rows[0]["Entry_Price"])
	assert.Equal(t, "-10", rows[1]["NET_PNL"])
}

func TestParseCSV_ShortRecords(t *testing.T) {
	data := "symbol,entry_price,net_pnl\nTCS,4100.5\n"

	rows, err := parseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "4100.5", rows[0]["entry_price"])
	_, present := rows[0]["net_pnl"]
	assert.False(t, present)
}

func TestParseCSV_BOMAndWhitespaceHeaders(t *testing.T) {
	data := "\ufeffsymbol, entry_price\nTCS,100\n"

	rows, err := parseCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "TCS", rows[0]["symbol"])
	assert.Equal(t, "100", rows[0]["entry_price"])
}

func TestParseCSV_Empty(t *testing.T) {
	rows, err := parseCSV(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestParseCSV_MalformedQuoting(t *testing.T) {
	data := "symbol,net_pnl\n\"TCS,25\nbad\"row,10\n"

	_, err := parseCSV(strings.NewReader(data))
	assert.Error(t, err)
}
