package dataset

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestRead(t *testing.T) {
	in := "x; y ;z\n1;2;3\n 4.5 ;-6; 7e2\n"

	tbl, err := Read(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "z"}, tbl.Header)
	rows, cols := tbl.Dims()
	assert.Equal(t, 2, rows)
	assert.Equal(t, 3, cols)
	assert.True(t, mat.Equal(mat.NewDense(2, 3, []float64{1, 2, 3, 4.5, -6, 700}), tbl.Data))
}

func TestRead_Options(t *testing.T) {
	tbl, err := Read(strings.NewReader("1,2\n3,4\n"), WithDelimiter(','), WithoutHeader())
	require.NoError(t, err)

	assert.Nil(t, tbl.Header)
	assert.True(t, mat.Equal(mat.NewDense(2, 2, []float64{1, 2, 3, 4}), tbl.Data))
}

func TestRead_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		row   int
		col   int
		value string
		want  error
	}{
		{"NotANumber", "a;b\n1;2\n3;abc\n", 1, 1, "abc", strconv.ErrSyntax},
		{"Empty", "a;b\n;2\n", 0, 0, "", strconv.ErrSyntax},
		{"NaN", "a;b\n1;NaN\n", 0, 1, "NaN", ErrNonFinite},
		{"Inf", "a;b\n+Inf;1\n", 0, 0, "+Inf", ErrNonFinite},
		{"TooFewFields", "a;b;c\n1;2;3\n4;5\n", 1, 2, "4;5", ErrFieldCount},
		{"TooManyFields", "a;b\n1;2;3\n", 0, 2, "1;2;3", ErrFieldCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, err := Read(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Nil(t, tbl)

			var fe *FormatError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tt.row, fe.Row)
			assert.Equal(t, tt.col, fe.Col)
			assert.Equal(t, tt.value, fe.Value)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestRead_NoRows(t *testing.T) {
	for _, in := range []string{"", "a;b\n"} {
		_, err := Read(strings.NewReader(in))
		assert.ErrorIs(t, err, ErrNoRows, "input %q", in)
	}

	_, err := Read(strings.NewReader(""), WithoutHeader())
	assert.ErrorIs(t, err, ErrNoRows)
}

func TestWrite(t *testing.T) {
	m := mat.NewDense(2, 3, []float64{1, 0.5, -2, 3, 1e-7, 0})

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, m, WithHeader("a", "b", "label")))
	assert.Equal(t, "a;b;label\n1;0.5;-2\n3;1e-07;0\n", buf.String())

	buf.Reset()
	require.NoError(t, Write(&buf, m, WithDelimiter(',')))
	assert.Equal(t, "1,0.5,-2\n3,1e-07,0\n", buf.String())
}

func TestWrite_HeaderLength(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, mat.NewDense(1, 2, nil), WithHeader("a"))
	assert.ErrorIs(t, err, ErrHeaderLength)
}

func TestRoundTrip(t *testing.T) {
	values := []float64{
		0.1, 1.0 / 3, -math.Pi,
		math.MaxFloat64, math.SmallestNonzeroFloat64, -0.0,
		123456789.123456789, 2e-300, 42,
	}
	m := mat.NewDense(3, 3, values)

	for _, delim := range []rune{';', ',', '\t', '|'} {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, m, WithDelimiter(delim), WithHeader("a", "b", "c")))

		tbl, err := Read(&buf, WithDelimiter(delim))
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "b", "c"}, tbl.Header)
		assert.True(t, mat.Equal(m, tbl.Data), "delimiter %q", delim)
	}
}
