package cityroads

import (
	"encoding/csv"
	"os"

	"github.com/pkg/errors"
)

// WriteRoadsCSV serializes a road table: one header row with the extended
// schema, then one row per flattened road.
func WriteRoadsCSV(fname string, table *RoadTable) error {
	file, err := os.Create(fname)
	if err != nil {
		return errors.Wrap(err, "Can't create file")
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(table.Fields); err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for _, row := range table.Rows {
		if err := writer.Write(row); err != nil {
			return errors.Wrap(err, "Can't write row")
		}
	}
	return nil
}
