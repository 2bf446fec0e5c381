package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRead_Basic(t *testing.T) {
	ds, err := Read(strings.NewReader("Date,OPAL Price\n2024-01-15,199.99\n2024-01-16,\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "OPAL Price"}, ds.Headers)
	require.Len(t, ds.Rows, 2)

	text, ok := ds.Rows[0][1].Text()
	assert.True(t, ok)
	assert.Equal(t, "199.99", text)
	assert.True(t, ds.Rows[1][1].IsAbsent())
}

func TestRead_StripsBOM(t *testing.T) {
	ds, err := Read(strings.NewReader("\ufeffDate,Notes\n2024-01-15,x\n"))
	require.NoError(t, err)

	assert.Equal(t, "Date", ds.Headers[0])
}

func TestRead_PadsShortRows(t *testing.T) {
	ds, err := Read(strings.NewReader("a,b,c\n1\n"))
	require.NoError(t, err)

	require.Len(t, ds.Rows[0], 3)
	assert.True(t, ds.Rows[0][1].IsAbsent())
	assert.True(t, ds.Rows[0][2].IsAbsent())
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{name: "Empty input", input: "", want: ErrNoHeader},
		{name: "Long row", input: "a,b\n1,2,3\n", want: ErrRowWidth},
		{name: "Duplicate header", input: "a,a\n1,2\n", want: ErrDuplicateHeader},
		{name: "Bad quoting", input: "a,b\n\"1,2\n", want: ErrMalformedCSV},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestDataset_SetColumn(t *testing.T) {
	ds := New([]string{"a"})
	require.NoError(t, ds.AppendRow([]Value{Text("1")}))
	require.NoError(t, ds.AppendRow([]Value{Text("2")}))

	ds.SetColumn("b", Text("x"))
	assert.Equal(t, []string{"a", "b"}, ds.Headers)

	for _, row := range ds.Rows {
		assert.Equal(t, "x", row[1].String())
	}

	ds.SetColumn("a", Text("y"))
	assert.Equal(t, []string{"a", "b"}, ds.Headers)
	assert.Equal(t, "y", ds.Rows[1][0].String())
	assert.NoError(t, ds.Validate())
}

func TestDataset_MapColumn(t *testing.T) {
	ds := New([]string{"a"})
	require.NoError(t, ds.AppendRow([]Value{Text("1")}))
	require.NoError(t, ds.AppendRow([]Value{Text("bad")}))

	errBad := errors.New("bad value")
	err := ds.MapColumn("a", func(v Value) (Value, error) {
		if v.String() == "bad" {
			return v, errBad
		}

		return Number(1), nil
	})

	require.ErrorIs(t, err, errBad)
	assert.Contains(t, err.Error(), "row 2")

	err = ds.MapColumn("missing", func(v Value) (Value, error) { return v, nil })
	assert.ErrorIs(t, err, ErrUnknownColumn)
}

func TestDataset_RoundTrip(t *testing.T) {
	input := "Date,Notes,Price\n2024-01-15,\"a, b\",\n2024-01-16,\"line\nbreak\",3\n"

	ds, err := Read(strings.NewReader(input))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, ds.Write(&buf))
	assert.Equal(t, input, buf.String())
}

func TestDataset_WriteFile(t *testing.T) {
	ds := New([]string{"price", "pct"})
	require.NoError(t, ds.AppendRow([]Value{Number(199.99), Number(1)}))
	require.NoError(t, ds.AppendRow([]Value{Absent(), Number(0.25)}))

	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, ds.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "price,pct\n199.99,1.0\n,0.25\n", string(data))

	back, err := ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ds.Headers, back.Headers)
}

func TestDataset_WriteFile_BadPath(t *testing.T) {
	ds := New([]string{"a"})

	err := ds.WriteFile(filepath.Join(t.TempDir(), "missing", "out.csv"))
	assert.Error(t, err)
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{199.99, "199.99"},
		{1, "1.0"},
		{0.45, "0.45"},
		{0.25, "0.25"},
		{-3, "-3.0"},
		{1e21, "1000000000000000000000.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.in))
	}
}

func TestValue_Kinds(t *testing.T) {
	assert.Equal(t, KindAbsent, Cell("").Kind())
	assert.Equal(t, KindText, Cell(" ").Kind())
	assert.Equal(t, KindText, Text("").Kind())
	assert.Equal(t, KindNumber, Number(0).Kind())
	assert.Equal(t, "", Absent().String())
	assert.Equal(t, "number", KindNumber.String())
}
