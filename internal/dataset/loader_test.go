package dataset

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func writeNPY(t *testing.T, val any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "log_returns.npy")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, npyio.Write(f, val))
	return path
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadReturnsNPY(t *testing.T) {
	tests := []struct {
		name string
		val  any
		want []float64
	}{
		{
			name: "float64",
			val:  []float64{0.01, -0.02, 0.03, 0.04, -0.01, 0.02},
			want: []float64{0.01, -0.02, 0.03, 0.04, -0.01, 0.02},
		},
		{
			name: "float32 widened",
			val:  []float32{0.5, -0.25},
			want: []float64{0.5, -0.25},
		},
		{
			name: "int64 widened",
			val:  []int64{1, -2, 3},
			want: []float64{1, -2, 3},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadReturns(writeNPY(t, tt.val))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadReturnsNPYRejectsMatrix(t *testing.T) {
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	_, err := LoadReturns(writeNPY(t, m))
	assert.ErrorIs(t, err, ErrNotOneDimensional)
}

func TestLoadReturnsNPYPreservesPrecision(t *testing.T) {
	want := []float64{0.1 + 0.2, 1e-300, -123456.789012345678}

	got, err := LoadReturns(writeNPY(t, want))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestReadNPYGarbage(t *testing.T) {
	_, err := ReadNPY(bytes.NewReader([]byte("definitely not numpy")))
	assert.Error(t, err)
}

func TestLoadReturnsCSV(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []float64
	}{
		{
			name:    "named column",
			content: "date,log_returns\n2020-01-01,0.5\n2020-01-02,-0.25\n",
			want:    []float64{0.5, -0.25},
		},
		{
			name:    "first column fallback",
			content: "r\n0.1\n0.2\n0.3\n",
			want:    []float64{0.1, 0.2, 0.3},
		},
		{
			name:    "headerless column",
			content: "0.01\n-0.02\n0.03\n",
			want:    []float64{0.01, -0.02, 0.03},
		},
		{
			name:    "headerless scientific notation",
			content: "1.5e-02\n-2.5e-02\n",
			want:    []float64{0.015, -0.025},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LoadReturns(writeFile(t, "returns.csv", tt.content))
			require.NoError(t, err)
			assert.InDeltaSlice(t, tt.want, got, 1e-15)
		})
	}
}

func TestLoadReturnsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadReturns(filepath.Join(t.TempDir(), "nope.npy"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := LoadReturns(writeFile(t, "returns.json", "[1,2]"))
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("unsupported dtype", func(t *testing.T) {
		_, err := LoadReturns(writeNPY(t, []bool{true, false}))
		assert.ErrorIs(t, err, ErrUnsupportedDType)
	})
}
