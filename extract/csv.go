package extract

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// WriteCSV writes the listings as CSV, header first.
func WriteCSV(w io.Writer, listings []Listing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader()); err != nil {
		return err
	}
	for _, l := range listings {
		if err := cw.Write(l.csvRow()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// SaveCSV writes the listings to a CSV file at path.
func SaveCSV(path string, listings []Listing) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, listings); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return f.Close()
}
