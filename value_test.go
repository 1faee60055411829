package persistent

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValue_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a")

	v, err := OpenValue[int32](path)
	require.NoError(t, err)
	assert.True(t, v.IsNew())
	assert.Equal(t, int32(0), v.Get())

	require.NoError(t, v.Set(7))
	require.NoError(t, v.Close())

	v, err = OpenValue[int32](path)
	require.NoError(t, err)
	defer v.Close()

	assert.False(t, v.IsNew())
	assert.Equal(t, int32(7), v.Get())
}

func TestNewValue_InitializesOnlyFreshFiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v")

	v, err := NewValue[int32](path, 42)
	require.NoError(t, err)
	assert.True(t, v.IsNew())
	assert.Equal(t, int32(42), v.Get())
	require.NoError(t, v.Close())

	_, err = NewValue[int32](path, 99)
	var ce *ConstraintError
	require.ErrorAs(t, err, &ce)

	// The persisted state survived the rejected reinitialization.
	v, err = OpenValue[int32](path)
	require.NoError(t, err)
	defer v.Close()
	assert.Equal(t, int32(42), v.Get())
}

func TestNewValue_ReadOnlyRejected(t *testing.T) {
	_, err := NewValue[int32](filepath.Join(t.TempDir(), "v"), 1, WithMode(ReadOnly))
	var ce *ConstraintError
	assert.ErrorAs(t, err, &ce)
}

func TestValue_ReadOnlyBlocksWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "v")

	v, err := NewValue[int64](path, 11)
	require.NoError(t, err)
	require.NoError(t, v.Close())

	v, err = OpenValue[int64](path, WithMode(ReadOnly))
	require.NoError(t, err)
	defer v.Close()

	assert.Equal(t, int64(11), v.Get())

	var ce *ConstraintError
	assert.ErrorAs(t, v.Set(12), &ce)
	assert.Equal(t, int64(11), v.Get())
}

func TestValue_StructInPlaceMutation(t *testing.T) {
	type sample struct {
		ID    uint32
		Score float64
		Tags  [4]byte
	}

	path := filepath.Join(t.TempDir(), "v")

	v, err := OpenValue[sample](path)
	require.NoError(t, err)

	p := v.Ptr()
	require.NotNil(t, p)
	p.ID = 7
	p.Score = 0.5
	copy(p.Tags[:], "abcd")
	require.NoError(t, v.Close())

	v, err = OpenValue[sample](path)
	require.NoError(t, err)
	defer v.Close()

	assert.Equal(t, sample{ID: 7, Score: 0.5, Tags: [4]byte{'a', 'b', 'c', 'd'}}, v.Get())
}

func TestValue_RejectsIndirections(t *testing.T) {
	dir := t.TempDir()

	var ce *ConstraintError

	_, err := OpenValue[*int32](filepath.Join(dir, "ptr"))
	assert.ErrorAs(t, err, &ce)

	type hasString struct {
		Name string
	}
	_, err = OpenValue[hasString](filepath.Join(dir, "str"))
	assert.ErrorAs(t, err, &ce)

	type nested struct {
		Inner struct {
			Buf []byte
		}
	}
	_, err = OpenValue[nested](filepath.Join(dir, "nested"))
	assert.ErrorAs(t, err, &ce)

	// Nothing was created on disk for rejected types.
	assert.NoFileExists(t, filepath.Join(dir, "ptr"))
}

func TestValue_ClosedAccess(t *testing.T) {
	v, err := OpenValue[int32](filepath.Join(t.TempDir(), "v"))
	require.NoError(t, err)
	require.NoError(t, v.Close())
	require.NoError(t, v.Close())

	assert.Equal(t, int32(0), v.Get())
	assert.ErrorIs(t, v.Set(1), ErrClosed)
	assert.Nil(t, v.Ptr())
}
