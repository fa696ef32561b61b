package repoeval

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func linesOfCode(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "print(%d)\n", i)
	}
	return sb.String()
}

func TestSampleExcerptsCapsAtEight(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 10; i++ {
		writeFile(t, dir, fmt.Sprintf("file_%02d.py", i), linesOfCode(50))
	}

	excerpts := sampleExcerpts(dir)
	require.Len(t, excerpts, maxExcerpts)

	seen := map[string]bool{}
	for _, excerpt := range excerpts {
		require.NotEmpty(t, excerpt.Text)
		require.True(t, strings.HasPrefix(excerpt.Text, "FILE: "+excerpt.File))
		require.False(t, seen[excerpt.File], "file sampled twice: %s", excerpt.File)
		seen[excerpt.File] = true
	}
}

func TestSampleExcerptsWindowsLongFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "big.py", linesOfCode(700))

	excerpts := sampleExcerpts(dir)
	// 700 lines plus a trailing newline split into 300-line windows
	require.Len(t, excerpts, 3)
	for _, excerpt := range excerpts {
		require.Equal(t, "big.py", excerpt.File)
	}
}

func TestSampleExcerptsSkipsVcsAndUnknownExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, filepath.Join(".git", "config.py"), linesOfCode(10))
	writeFile(t, dir, "notes.txt", "not code")
	writeFile(t, dir, "app.js", linesOfCode(5))

	excerpts := sampleExcerpts(dir)
	require.Len(t, excerpts, 1)
	require.Equal(t, "app.js", excerpts[0].File)
}

func TestSampleExcerptsEmptyTree(t *testing.T) {
	require.Empty(t, sampleExcerpts(t.TempDir()))
}
