package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/san-kum/oscifit/internal/inference"
)

// SaveDataset writes an observation series as a two-column time,value CSV.
func SaveDataset(path string, ds *inference.Dataset) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	if err := w.Write([]string{"time", "value"}); err != nil {
		return err
	}
	for i := range ds.Times {
		row := []string{
			strconv.FormatFloat(ds.Times[i], 'g', -1, 64),
			strconv.FormatFloat(ds.Values[i], 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func LoadDataset(path string) (*inference.Dataset, error) {
	records, err := readCSV(path)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("storage: dataset %s is empty", path)
	}

	start := 0
	if len(records[0]) >= 2 && records[0][0] == "time" {
		start = 1
	}

	ds := &inference.Dataset{}
	for _, rec := range records[start:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("storage: dataset %s has a short row", path)
		}
		t, err := strconv.ParseFloat(rec[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad dataset row: %w", err)
		}
		v, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: bad dataset row: %w", err)
		}
		ds.Times = append(ds.Times, t)
		ds.Values = append(ds.Values, v)
	}
	return ds, nil
}
