package csv

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/citystreamlabs/silverpipe/pkg/errors"
)

func writeTempCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestSourceReadTable(t *testing.T) {
	path := writeTempCSV(t, "Trip Duration Sec,Tip,Surge-Applied\n120,2.50,TRUE\n300,,false\n")

	src := NewSource(path)
	require.NoError(t, src.Open(context.Background()))
	defer func() { _ = src.Close() }()

	table, err := src.ReadTable(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Trip Duration Sec", "Tip", "Surge-Applied"}, table.Columns)
	require.Equal(t, 2, table.NumRecords())

	v, ok := table.Records[0].Cell("Trip Duration Sec")
	require.True(t, ok)
	assert.Equal(t, "120", v)

	// Empty cells arrive as empty strings, not as missing.
	v, ok = table.Records[1].Cell("Tip")
	require.True(t, ok)
	assert.Equal(t, "", v)
}

func TestSourceShortRowLeavesTrailingCellsMissing(t *testing.T) {
	path := writeTempCSV(t, "a,b,c\n1,2\n")

	src := NewSource(path)
	require.NoError(t, src.Open(context.Background()))
	defer func() { _ = src.Close() }()

	table, err := src.ReadTable(context.Background())
	require.NoError(t, err)

	require.Equal(t, 1, table.NumRecords())
	_, ok := table.Records[0].Cell("c")
	assert.False(t, ok)
}

func TestSourceMissingFileIsFatal(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "nope.csv"))
	err := src.Open(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestSourceEmptyFileIsFatal(t *testing.T) {
	path := writeTempCSV(t, "")

	src := NewSource(path)
	require.NoError(t, src.Open(context.Background()))
	defer func() { _ = src.Close() }()

	_, err := src.ReadTable(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeFile))
}

func TestSourceHeaderOnlyFileYieldsEmptyTable(t *testing.T) {
	path := writeTempCSV(t, "a,b\n")

	src := NewSource(path)
	require.NoError(t, src.Open(context.Background()))
	defer func() { _ = src.Close() }()

	table, err := src.ReadTable(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, table.NumRecords())
	assert.Equal(t, []string{"a", "b"}, table.Columns)
}
