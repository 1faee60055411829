package persistent

import (
	"bytes"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")

	a, err := NewArray[int32](src, 4, 7)
	require.NoError(t, err)
	require.NoError(t, a.Set(2, 99))

	var buf bytes.Buffer
	require.NoError(t, a.Snapshot(&buf))
	require.NoError(t, a.Close())

	require.NoError(t, Restore(dst, &buf))

	restored, err := AttachArray[int32](dst)
	require.NoError(t, err)
	defer restored.Close()

	assert.Equal(t, []int32{7, 7, 99, 7}, elements(t, restored))
}

func TestSnapshot_Value(t *testing.T) {
	dir := t.TempDir()

	v, err := NewValue[float64](filepath.Join(dir, "v"), 3.25)
	require.NoError(t, err)
	defer v.Close()

	var buf bytes.Buffer
	require.NoError(t, v.Snapshot(&buf))

	require.NoError(t, Restore(filepath.Join(dir, "w"), &buf))

	w, err := OpenValue[float64](filepath.Join(dir, "w"))
	require.NoError(t, err)
	defer w.Close()
	assert.Equal(t, 3.25, w.Get())
}

func TestSnapshot_Closed(t *testing.T) {
	r, err := Open(filepath.Join(t.TempDir(), "r"), 8)
	require.NoError(t, err)
	require.NoError(t, r.Close())

	assert.ErrorIs(t, r.Snapshot(&bytes.Buffer{}), ErrClosed)
}

func TestRestore_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taken")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

	err := Restore(path, strings.NewReader(""))
	var oe *OpenError
	require.ErrorAs(t, err, &oe)
	assert.ErrorIs(t, err, iofs.ErrExist)
}

func TestRestore_CorruptInputRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial")

	err := Restore(path, strings.NewReader("not a zstd stream"))
	require.Error(t, err)
	assert.NoFileExists(t, path)
}
