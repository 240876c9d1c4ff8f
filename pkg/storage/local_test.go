package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTempDisk(t *testing.T) Disk {
	t.Helper()
	t.Setenv("STORAGE_LOCAL_ROOT", t.TempDir())
	return newLocalDisk()
}

func TestLocalDiskRoundTrip(t *testing.T) {
	d := newTempDisk(t)

	require.NoError(t, d.Put("avatars/u1.png", []byte("fake-png")))
	assert.True(t, d.Exists("avatars/u1.png"))

	got, err := d.Get("avatars/u1.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("fake-png"), got)

	size, err := d.Size("avatars/u1.png")
	require.NoError(t, err)
	assert.EqualValues(t, len("fake-png"), size)

	require.NoError(t, d.Delete("avatars/u1.png"))
	assert.False(t, d.Exists("avatars/u1.png"))
}

func TestLocalDiskStream(t *testing.T) {
	d := newTempDisk(t)

	require.NoError(t, d.PutStream("a/b/c.txt", strings.NewReader("streamed")))

	rc, err := d.GetStream("a/b/c.txt")
	require.NoError(t, err)
	defer rc.Close()

	buf := make([]byte, 16)
	n, _ := rc.Read(buf)
	assert.Equal(t, "streamed", string(buf[:n]))
}

func TestLocalDiskMissingFile(t *testing.T) {
	d := newTempDisk(t)

	_, err := d.Get("nope.txt")
	assert.Error(t, err)
	assert.False(t, d.Exists("nope.txt"))
}
