package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBytesToLenght(t *testing.T) {
	assert.Equal(t, uint32(13), BytesToLenght([]byte{0, 0, 0, 13}))
	assert.Equal(t, uint32(0x89504e47), BytesToLenght([]byte{0x89, 'P', 'N', 'G'}))
	assert.Equal(t, uint16(0x1234), BytesToUint16([]byte{0x12, 0x34}))
}

func TestCreatePPM(t *testing.T) {
	name := filepath.Join(t.TempDir(), "out.ppm")
	ppm, err := CreatePPM(name, 2, 1, 255)
	require.NoError(t, err)
	_, err = ppm.Write([]byte{1, 2, 3, 4, 5, 6})
	require.NoError(t, err)
	require.NoError(t, ppm.Close())

	got, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, append([]byte("P6\n2 1\n255\n"), 1, 2, 3, 4, 5, 6), got)
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()

	name := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(name, []byte("\x89PNG\r\n\x1a\n"), 0o644))
	data, release, err := ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG\r\n\x1a\n"), data)
	release()

	empty := filepath.Join(dir, "empty.bin")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	data, release, err = ReadFile(empty)
	require.NoError(t, err)
	assert.Empty(t, data)
	release()

	_, _, err = ReadFile(filepath.Join(dir, "missing.png"))
	assert.Error(t, err)
}
