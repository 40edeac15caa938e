package schooldata

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/wvedudata/schooldata/internal/cast"
)

// Conversion between the external table form and gota. Each direction is an
// explicit per-column mapping of source type to target type; a column whose
// declared type or values fall outside the map fails with ConversionError
// rather than being dropped or guessed at.
//
//	integer            <-> series.Int
//	double             <-> series.Float
//	character, factor  <-> series.String (factor arrives as character)
//	logical            <-> series.Bool

// toDataFrame converts an external table into a gota DataFrame, preserving
// column order, names, and per-column types. NA entries stay NA.
func toDataFrame(t Table) (dataframe.DataFrame, error) {
	if err := t.Validate(); err != nil {
		return dataframe.DataFrame{}, err
	}
	if len(t.Columns) == 0 {
		return dataframe.DataFrame{}, ErrEmptyTable
	}
	ss := make([]series.Series, 0, len(t.Columns))
	for _, c := range t.Columns {
		s, err := seriesFromColumn(c)
		if err != nil {
			return dataframe.DataFrame{}, err
		}
		ss = append(ss, s)
	}
	df := dataframe.New(ss...)
	if df.Err != nil {
		return dataframe.DataFrame{}, &ConversionError{Err: fmt.Errorf("%w: %w", ErrConversion, df.Err)}
	}
	return df, nil
}

// seriesFromColumn coerces every scalar in the column to the Go type its
// declared R type maps to. gota renders a nil element as NA.
func seriesFromColumn(c Column) (series.Series, error) {
	vals := make([]any, len(c.Values))
	for i, v := range c.Values {
		if v == nil {
			continue
		}
		var ok bool
		switch c.Type {
		case TypeInteger:
			var n int64
			if n, ok = cast.ToInt64(v); ok {
				vals[i] = int(n)
			}
		case TypeDouble:
			var f float64
			if f, ok = cast.ToFloat64(v); ok {
				vals[i] = f
			}
		case TypeCharacter, TypeFactor:
			var s string
			if s, ok = cast.ToString(v); ok {
				vals[i] = s
			}
		case TypeLogical:
			var b bool
			if b, ok = cast.ToBool(v); ok {
				vals[i] = b
			}
		default:
			return series.Series{}, &ConversionError{
				Column: c.Name,
				Type:   c.Type,
				Err:    fmt.Errorf("%w: unsupported column type", ErrConversion),
			}
		}
		if !ok {
			return series.Series{}, &ConversionError{
				Column: c.Name,
				Type:   c.Type,
				Err:    fmt.Errorf("%w: row %d holds %T", ErrConversion, i, v),
			}
		}
	}
	return series.New(vals, seriesType(c.Type), c.Name), nil
}

func seriesType(t ColumnType) series.Type {
	switch t {
	case TypeInteger:
		return series.Int
	case TypeDouble:
		return series.Float
	case TypeLogical:
		return series.Bool
	default:
		return series.String
	}
}

// fromDataFrame converts a gota DataFrame back into the external table form,
// for calls that send a table into R (Tidy). The inverse of the mapping
// above; factor does not round-trip (it comes back as character).
func fromDataFrame(df dataframe.DataFrame) (Table, error) {
	if df.Err != nil {
		return Table{}, &ConversionError{Err: fmt.Errorf("%w: %w", ErrConversion, df.Err)}
	}
	cols := make([]Column, 0, df.Ncol())
	for _, name := range df.Names() {
		s := df.Col(name)
		c, err := columnFromSeries(name, s)
		if err != nil {
			return Table{}, err
		}
		cols = append(cols, c)
	}
	return Table{Columns: cols}, nil
}

func columnFromSeries(name string, s series.Series) (Column, error) {
	var ct ColumnType
	switch s.Type() {
	case series.Int:
		ct = TypeInteger
	case series.Float:
		ct = TypeDouble
	case series.String:
		ct = TypeCharacter
	case series.Bool:
		ct = TypeLogical
	default:
		return Column{}, &ConversionError{
			Column: name,
			Err:    fmt.Errorf("%w: unsupported series type %v", ErrConversion, s.Type()),
		}
	}
	vals := make([]any, s.Len())
	for i := 0; i < s.Len(); i++ {
		el := s.Elem(i)
		if el.IsNA() {
			continue
		}
		switch ct {
		case TypeInteger:
			n, err := el.Int()
			if err != nil {
				return Column{}, &ConversionError{Column: name, Type: ct, Err: fmt.Errorf("%w: row %d: %w", ErrConversion, i, err)}
			}
			vals[i] = n
		case TypeDouble:
			vals[i] = el.Float()
		case TypeCharacter:
			vals[i] = el.String()
		case TypeLogical:
			b, err := el.Bool()
			if err != nil {
				return Column{}, &ConversionError{Column: name, Type: ct, Err: fmt.Errorf("%w: row %d: %w", ErrConversion, i, err)}
			}
			vals[i] = b
		}
	}
	return Column{Name: name, Type: ct, Values: vals}, nil
}
