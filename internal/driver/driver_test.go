package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOutputPath(t *testing.T) {
	require.Equal(t, "/tmp/Main.vm", OutputPath("/tmp/Main.jack"))
}

func TestCollectFilesSingleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Main.jack")
	require.NoError(t, os.WriteFile(path, []byte("class Main {}"), 0o644))

	files, err := CollectFiles(path)
	require.NoError(t, err)
	require.Equal(t, []string{path}, files)
}

func TestCollectFilesDirectoryIsCaseInsensitive(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Main.jack"), []byte("class Main {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Other.JACK"), []byte("class Other {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("not jack"), 0o644))

	files, err := CollectFiles(dir)
	require.NoError(t, err)
	require.Len(t, files, 2)
	for _, f := range files {
		require.True(t, strings.EqualFold(filepath.Ext(f), ".jack"))
	}
}

func TestCompileFileWritesSiblingVM(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Seven.jack")
	require.NoError(t, os.WriteFile(path, []byte(
		`class Main { function int seven() { return 7; } }`), 0o644))

	outputPath, err := CompileFile(path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Seven.vm"), outputPath)

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Equal(t, "function Main.seven 0\npush constant 7\nreturn\n", string(content))
}

func TestCompileFilePropagatesCompileError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Bad.jack")
	require.NoError(t, os.WriteFile(path, []byte(`class`), 0o644))

	_, err := CompileFile(path)
	require.Error(t, err)
}
