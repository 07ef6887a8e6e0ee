package pkg

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type spoolItem struct {
	Name  string
	Count int
}

func TestSpool_AppendAndRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.gob")

	spool, err := NewSpool[spoolItem](path)
	require.NoError(t, err)

	items := []spoolItem{{"a", 1}, {"b", 2}, {"c", 3}}
	for _, item := range items {
		require.NoError(t, spool.Append(item))
	}

	assert.Equal(t, uint64(3), spool.Len())
	assert.Equal(t, path, spool.Path())

	var got []spoolItem

	err = spool.Range(func(index uint64, item spoolItem) error {
		assert.Equal(t, uint64(len(got)), index)
		got = append(got, item)

		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, items, got)

	require.NoError(t, spool.Close())
}

func TestSpool_CreatesIntermediateDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "items.gob")

	spool, err := NewSpool[spoolItem](path)
	require.NoError(t, err)
	require.NoError(t, spool.Append(spoolItem{"x", 1}))
	require.NoError(t, spool.Close())
}

func TestSpool_OpenReadsWhatWasWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.gob")

	writer, err := NewSpool[spoolItem](path)
	require.NoError(t, err)
	require.NoError(t, writer.Append(spoolItem{"a", 1}))
	require.NoError(t, writer.Append(spoolItem{"b", 2}))
	require.NoError(t, writer.Close())

	reader, err := OpenSpool[spoolItem](path)
	require.NoError(t, err)

	count := 0
	err = reader.Range(func(_ uint64, _ spoolItem) error {
		count++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestSpool_OpenMissingFile(t *testing.T) {
	_, err := OpenSpool[spoolItem](filepath.Join(t.TempDir(), "absent.gob"))
	require.Error(t, err)
}

func TestSpool_AppendAfterCloseFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.gob")

	spool, err := NewSpool[spoolItem](path)
	require.NoError(t, err)
	require.NoError(t, spool.Close())

	require.Error(t, spool.Append(spoolItem{"late", 1}))
}

func TestSpool_RangeCallbackErrorStopsIteration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "items.gob")

	spool, err := NewSpool[spoolItem](path)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, spool.Append(spoolItem{Count: i}))
	}

	calls := 0
	err = spool.Range(func(index uint64, _ spoolItem) error {
		calls++
		if index == 1 {
			return assert.AnError
		}

		return nil
	})

	require.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 2, calls)
}

func TestSpool_CloseIsIdempotent(t *testing.T) {
	spool, err := NewSpool[spoolItem](filepath.Join(t.TempDir(), "items.gob"))
	require.NoError(t, err)

	require.NoError(t, spool.Close())
	require.NoError(t, spool.Close())
}
