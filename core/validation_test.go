package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePaper(t *testing.T) {
	t.Run("valid paper", func(t *testing.T) {
		paper := &Paper{
			Title:  "Attention Is All You Need",
			Author: "Ashish Vaswani",
			Year:   2017,
			Doi:    DoiNotAvailable,
		}
		assert.NoError(t, ValidatePaper(paper))
	})

	t.Run("nil paper", func(t *testing.T) {
		err := ValidatePaper(nil)
		assert.ErrorIs(t, err, ErrInvalidPaper)
	})

	t.Run("empty title", func(t *testing.T) {
		err := ValidatePaper(&Paper{Title: "  ", Doi: DoiNotAvailable})
		assert.ErrorIs(t, err, ErrInvalidPaper)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})

	t.Run("non-canonical doi", func(t *testing.T) {
		err := ValidatePaper(&Paper{Title: "T", Doi: "10.1000/xyz"})
		assert.ErrorIs(t, err, ErrInvalidPaper)
	})
}

func TestNormalizeDOI(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", DoiNotAvailable},
		{"n/a literal", "N/A", DoiNotAvailable},
		{"lowercase n/a", "n/a", DoiNotAvailable},
		{"nan literal", "NAN", DoiNotAvailable},
		{"lowercase nan", "nan", DoiNotAvailable},
		{"whitespace only", "   ", DoiNotAvailable},
		{"bare doi", "10.1000/xyz123", "https://doi.org/10.1000/xyz123"},
		{"http url kept", "http://doi.org/10.1000/xyz123", "http://doi.org/10.1000/xyz123"},
		{"https url kept", "https://doi.org/10.1000/xyz123", "https://doi.org/10.1000/xyz123"},
		{"idempotent", "https://doi.org/10.1/a", "https://doi.org/10.1/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDOI(tt.in))
		})
	}
}

func TestParseYear(t *testing.T) {
	t.Run("int", func(t *testing.T) {
		year, err := ParseYear(2019)
		require.NoError(t, err)
		assert.Equal(t, 2019, year)
	})

	t.Run("int64", func(t *testing.T) {
		year, err := ParseYear(int64(2021))
		require.NoError(t, err)
		assert.Equal(t, 2021, year)
	})

	t.Run("fractional float", func(t *testing.T) {
		year, err := ParseYear(2019.0)
		require.NoError(t, err)
		assert.Equal(t, 2019, year)
	})

	t.Run("string integer", func(t *testing.T) {
		year, err := ParseYear("2020")
		require.NoError(t, err)
		assert.Equal(t, 2020, year)
	})

	t.Run("string float", func(t *testing.T) {
		year, err := ParseYear("2018.0")
		require.NoError(t, err)
		assert.Equal(t, 2018, year)
	})

	t.Run("garbage string", func(t *testing.T) {
		_, err := ParseYear("twenty nineteen")
		assert.ErrorIs(t, err, ErrInvalidYear)
	})

	t.Run("nil", func(t *testing.T) {
		_, err := ParseYear(nil)
		assert.ErrorIs(t, err, ErrInvalidYear)
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := ParseYear([]string{"2019"})
		assert.ErrorIs(t, err, ErrInvalidYear)
	})
}
