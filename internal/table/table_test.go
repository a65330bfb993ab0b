package table

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInfer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		cells    []string
		wantKind Kind
		wantStr  []string
	}{
		{"all integers", []string{"1", "2", "-3"}, Int, []string{"1", "2", "-3"}},
		{"decimal promotes to float", []string{"1", "2.5"}, Float, []string{"1.0", "2.5"}},
		{"empty cell promotes to float", []string{"10", ""}, Float, []string{"10.0", ""}},
		{"NA spelling is missing", []string{"NA", "4"}, Float, []string{"", "4.0"}},
		{"text wins", []string{"1", "x"}, Text, []string{"1", "x"}},
		{"all empty is float", []string{"", ""}, Float, []string{"", ""}},
		{"padded integers", []string{" 7 ", "8"}, Int, []string{"7", "8"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := Infer("c", tt.cells)
			require.Equal(t, tt.wantKind, c.Kind())
			got := make([]string, c.Len())
			for i := range got {
				got[i] = c.String(i)
			}
			require.Equal(t, tt.wantStr, got)
		})
	}
}

func TestInfer_LargeIntegersExact(t *testing.T) {
	t.Parallel()

	c := Infer("DNI", []string{"9007199254740993", "9007199254740992"})
	require.Equal(t, Int, c.Kind())
	require.Equal(t, int64(9007199254740993), c.Int(0))
	require.Equal(t, int64(9007199254740992), c.Int(1))
	require.Equal(t, "9007199254740993", c.String(0))
	require.Equal(t, int64(9007199254740993), c.Value(0))
}

func TestColumn_TextMissing(t *testing.T) {
	t.Parallel()

	c := NewText("Jugador", []string{"A", "", "null", "B"})
	require.False(t, c.Missing(0))
	require.True(t, c.Missing(1))
	require.True(t, c.Missing(2))
	require.Equal(t, "", c.String(2))
	require.Nil(t, c.Value(1))
	require.Equal(t, "B", c.Value(3))
	require.Equal(t, "null", c.Raw(2))
}

func TestColumn_Value(t *testing.T) {
	t.Parallel()

	i := NewNumber("i", Int, []float64{3})
	require.Equal(t, int64(3), i.Value(0))

	f := NewFloat("f", []float64{1.5, 0}, []bool{true, false})
	require.Equal(t, 1.5, f.Value(0))
	require.Nil(t, f.Value(1))
	require.Zero(t, f.Float(1))
}

func TestTable_SetAndLookup(t *testing.T) {
	t.Parallel()

	tb, err := FromColumns(
		NewText("a", []string{"x", "y"}),
		NewNumber("b", Int, []float64{1, 2}),
	)
	require.NoError(t, err)
	require.Equal(t, 2, tb.Rows())
	require.Equal(t, []string{"a", "b"}, tb.Names())

	// Replacing keeps the position.
	require.NoError(t, tb.Set(NewNumber("a", Float, []float64{0.5, 1})))
	require.Equal(t, []string{"a", "b"}, tb.Names())
	c, ok := tb.Column("a")
	require.True(t, ok)
	require.Equal(t, Float, c.Kind())

	err = tb.Set(NewText("c", []string{"only one"}))
	require.ErrorIs(t, err, ErrLength)

	_, err = tb.Lookup("zzz")
	require.ErrorIs(t, err, ErrMissingColumn)
	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	require.Equal(t, "zzz", mce.Name)
}

func TestTable_Numeric(t *testing.T) {
	t.Parallel()

	tb, err := FromColumns(NewText("name", []string{"a"}), NewNumber("n", Int, []float64{1}))
	require.NoError(t, err)

	_, err = tb.Numeric("name")
	require.ErrorIs(t, err, ErrNotNumeric)
	_, err = tb.Numeric("nope")
	require.ErrorIs(t, err, ErrMissingColumn)
	c, err := tb.Numeric("n")
	require.NoError(t, err)
	require.Equal(t, "n", c.Name())
}

func TestTable_SelectDropsMissingKeepsDuplicates(t *testing.T) {
	t.Parallel()

	tb, err := FromColumns(
		NewText("a", []string{"x"}),
		NewText("b", []string{"y"}),
		NewText("c", []string{"z"}),
	)
	require.NoError(t, err)

	out := tb.Select([]string{"c", "missing", "a", "c"})
	require.Equal(t, []string{"c", "a", "c"}, out.Names())
	require.Equal(t, 1, out.Rows())

	a, ok := out.Column("a")
	require.True(t, ok)
	require.Equal(t, "x", a.String(0))

	require.Equal(t, []string{"b", "a"}, tb.Present([]string{"b", "q", "a"}))
}
