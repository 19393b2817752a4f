package qrcode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_WritesImageAndReturnsPath(t *testing.T) {
	dir := t.TempDir()
	g := NewGenerator(dir)

	path, err := g.Generate("BOOKING:SA1700000000000ABCD|FLIGHT:SA101|SEATS:12A|PASSENGER:Alice", "SA1700000000000ABCD")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "SA1700000000000ABCD.png"), path)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestGenerator_CreatesMissingDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "qrcodes")
	g := NewGenerator(dir)

	path, err := g.Generate("payload", "SA1700000000000AAAA")
	require.NoError(t, err)
	assert.FileExists(t, path)
}
