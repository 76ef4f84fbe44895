package dataset

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/sbinet/npyio"
)

// ReturnsColumn is the preferred column name in CSV return files
const ReturnsColumn = "log_returns"

// LoadReturns reads a one-dimensional return series from path.
func LoadReturns(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open returns file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".npy":
		return ReadNPY(f)
	case ".csv":
		return ReadCSV(f)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ReadNPY decodes a one-dimensional numeric NumPy array.
func ReadNPY(r io.Reader) ([]float64, error) {
	npy, err := npyio.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("read npy header: %w", err)
	}

	if shape := npy.Header.Descr.Shape; len(shape) != 1 {
		return nil, fmt.Errorf("%w: shape %v", ErrNotOneDimensional, shape)
	}

	// dtype strings look like "<f8"; the byte-order prefix is handled by npyio
	dtype := strings.TrimLeft(npy.Header.Descr.Type, "<>|=")
	switch dtype {
	case "f8":
		var out []float64
		if err := npy.Read(&out); err != nil {
			return nil, fmt.Errorf("read npy data: %w", err)
		}
		return out, nil
	case "f4":
		var raw []float32
		if err := npy.Read(&raw); err != nil {
			return nil, fmt.Errorf("read npy data: %w", err)
		}
		return widen(raw), nil
	case "i8":
		var raw []int64
		if err := npy.Read(&raw); err != nil {
			return nil, fmt.Errorf("read npy data: %w", err)
		}
		return widen(raw), nil
	case "i4":
		var raw []int32
		if err := npy.Read(&raw); err != nil {
			return nil, fmt.Errorf("read npy data: %w", err)
		}
		return widen(raw), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedDType, npy.Header.Descr.Type)
	}
}

// ReadCSV reads the log_returns column of a CSV file, falling back to the
// first column. A file whose first row is numeric has no header.
func ReadCSV(r io.Reader) ([]float64, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read returns csv: %w", err)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data), dataframe.HasHeader(true))
	if df.Err != nil {
		return nil, fmt.Errorf("read returns csv: %w", df.Err)
	}
	if df.Ncol() == 0 {
		return nil, ErrEmptySeries
	}
	if isNumericRow(df.Names()) {
		df = dataframe.ReadCSV(bytes.NewReader(data), dataframe.HasHeader(false))
		if df.Err != nil {
			return nil, fmt.Errorf("read returns csv: %w", df.Err)
		}
	}

	column := df.Names()[0]
	for _, name := range df.Names() {
		if strings.EqualFold(strings.TrimSpace(name), ReturnsColumn) {
			column = name
			break
		}
	}

	col := df.Col(column)
	if col.Err != nil {
		return nil, fmt.Errorf("read returns csv column %q: %w", column, col.Err)
	}
	return col.Float(), nil
}

// isNumericRow reports whether the first cell of a header row parses as a number
func isNumericRow(names []string) bool {
	if len(names) == 0 {
		return false
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(names[0]), 64)
	return err == nil
}

func widen[T float32 | int32 | int64](xs []T) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}
	return out
}
