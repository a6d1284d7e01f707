package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rgehrsitz/basereg/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeReference(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
	return dir
}

func TestReferenceLoader_NestedAndFlat(t *testing.T) {
	dir := writeReference(t, map[string]string{
		ParametersFile: `
parametros_computo_anual:
  2025:
    bases_incluidas: 300
    periodo_meses: 300
    divisor_base_reguladora: 350
  2026:
    bases_incluidas: 302
    periodo_meses: 348
    divisor_base_reguladora: 352.33
`,
		IndicesFile: `
"01/2020": 1.035
"02/2020": 1.03
`,
		CapsFile: `
topes_cotizacion:
  2025:
    base_minima_mensual: 1381.20
    base_maxima_mensual: 4909.50
`,
	})

	ref, err := NewReferenceLoader(dir).Load()
	require.NoError(t, err)

	require.Len(t, ref.Parameters, 2)
	assert.Equal(t, 302, ref.Parameters[2026].MonthsIncluded)
	assert.Equal(t, 348, ref.Parameters[2026].PeriodMonths)
	assert.Equal(t, "352.33", ref.Parameters[2026].Divisor.String())

	idx, ok := ref.IndexFor(domain.MustParseYearMonth("01/2020"))
	assert.True(t, ok)
	assert.Equal(t, "1.035", idx.String())
	assert.Len(t, ref.Indices, 2)

	assert.Equal(t, "1381.2", ref.Caps[2025].MinMonthlyBase.String())
	assert.Equal(t, "4909.5", ref.Caps[2025].MaxMonthlyBase.String())
}

func TestReferenceLoader_MissingFilesAreEmpty(t *testing.T) {
	dir := writeReference(t, map[string]string{
		CapsFile: "2024:\n  base_minima_mensual: 1323\n  base_maxima_mensual: 4720.50\n",
	})

	ref, err := NewReferenceLoader(dir).Load()
	require.NoError(t, err)
	assert.Empty(t, ref.Parameters)
	assert.Empty(t, ref.Indices)
	assert.Len(t, ref.Caps, 1)
}

func TestReferenceLoader_AllEmpty(t *testing.T) {
	dir := writeReference(t, map[string]string{ParametersFile: "", IndicesFile: "{}\n"})

	ref, err := NewReferenceLoader(dir).Load()
	assert.Nil(t, ref)
	assert.ErrorIs(t, err, domain.ErrReferenceDataExhausted)
	assert.False(t, domain.IsClientError(err))
}

func TestReferenceLoader_Malformed(t *testing.T) {
	tests := map[string]map[string]string{
		"invalid yaml":      {ParametersFile: "2025: [unclosed"},
		"invalid index key": {IndicesFile: "\"2020-01\": 1.1\n"},
		"invalid divisor":   {ParametersFile: "2025:\n  divisor_base_reguladora: abc\n"},
	}
	for name, files := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewReferenceLoader(writeReference(t, files)).Load()
			assert.Error(t, err)
		})
	}
}

func TestReferenceLoader_DefaultDir(t *testing.T) {
	assert.Equal(t, DefaultReferenceDir, NewReferenceLoader("").Dir)
}

func TestReferenceLoader_BundledTables(t *testing.T) {
	ref, err := NewReferenceLoader(filepath.Join("..", "..", "configs", "reference")).Load()
	require.NoError(t, err)

	params, year, err := ref.ParametersFor(2025)
	require.NoError(t, err)
	assert.Equal(t, 2025, year)
	assert.Equal(t, domain.LegacyParameters.MonthsIncluded, params.MonthsIncluded)
	assert.True(t, params.Divisor.Equal(domain.LegacyParameters.Divisor))

	caps, _, err := ref.CapsFor(2025)
	require.NoError(t, err)
	assert.True(t, caps.MinMonthlyBase.LessThan(caps.MaxMonthlyBase))
	assert.NotEmpty(t, ref.Indices)
}

func TestDescribe(t *testing.T) {
	ref, err := NewReferenceLoader(writeReference(t, map[string]string{
		ParametersFile: "2026:\n  bases_incluidas: 302\n  periodo_meses: 348\n  divisor_base_reguladora: 352.33\n2024:\n  bases_incluidas: 300\n  periodo_meses: 300\n  divisor_base_reguladora: 350\n",
		IndicesFile:    "\"05/2021\": 1.1\n\"11/2019\": 1.2\n\"01/2020\": 1.15\n",
	})).Load()
	require.NoError(t, err)

	info := Describe("dir", ref)
	assert.Equal(t, "dir", info.Directory)
	assert.Equal(t, TableInfo{Entries: 2, First: "2024", Last: "2026"}, info.Parameters)
	assert.Equal(t, TableInfo{Entries: 3, First: "11/2019", Last: "05/2021"}, info.Indices)
	assert.Equal(t, TableInfo{}, info.Caps)
	assert.Equal(t, 300, info.Legacy.MonthsIncluded)

	assert.Equal(t, ReferenceInfo{Legacy: domain.LegacyParameters}, Describe("", nil))
}
