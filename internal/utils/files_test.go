package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeWriteFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "nested", "report.html")
	require.NoError(t, SafeWriteFile(p, []byte("first")))
	require.NoError(t, SafeWriteFile(p, []byte("second")))

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "second", string(b))
	_, err = os.Stat(p + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestSafeWriteFileFailsOnDirectoryTarget(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "taken")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0o755))
	err := SafeWriteFile(target, []byte("x"))
	assert.ErrorContains(t, err, "atomic rename")
	_, statErr := os.Stat(target + ".tmp")
	assert.True(t, os.IsNotExist(statErr))
}

func TestPrettyJSON(t *testing.T) {
	b, err := PrettyJSON(map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": 1\n}", string(b))
}

func TestUniquePath(t *testing.T) {
	taken := map[string]bool{"out/a.html": true, "out/a__2.html": true}
	has := func(p string) bool { return taken[p] }
	assert.Equal(t, "out/b.html", UniquePath("out/b.html", has))
	assert.Equal(t, "out/a__3.html", UniquePath("out/a.html", has))
}
