package cityroads

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRoadsCSV(t *testing.T) {
	table := &RoadTable{
		Fields: []string{"name", "highway", "start_lat", "start_long", "end_lat", "end_long"},
		Rows: [][]string{
			{"Marine Drive", "primary", "72.8", "18.9", "72.9", "19.0"},
			{"Link Road", "residential", "73.1", "19.1", "73.2", "19.2"},
		},
	}

	path := filepath.Join(t.TempDir(), "roads.csv")
	require.NoError(t, WriteRoadsCSV(path, table))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, table.Fields, records[0])
	assert.Equal(t, table.Rows[0], records[1])
	assert.Equal(t, table.Rows[1], records[2])
}

func TestWriteRoadsCSVEmptyTable(t *testing.T) {
	table := &RoadTable{Fields: []string{"name", "highway", "start_lat", "start_long", "end_lat", "end_long"}}

	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, WriteRoadsCSV(path, table))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	// Header only.
	require.Len(t, records, 1)
	assert.Equal(t, table.Fields, records[0])
}
