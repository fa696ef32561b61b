package repoeval

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScanStructureAllSignals(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "hello")
	writeFile(t, dir, "requirements.txt", "flask")
	writeFile(t, dir, "Dockerfile", "FROM python")
	writeFile(t, dir, filepath.Join("tests", "test_app.py"), "def test(): pass")
	writeFile(t, dir, filepath.Join(".github", "workflows", "ci.yml"), "on: push")

	sig := scanStructure(dir)
	require.True(t, sig.HasReadme)
	require.True(t, sig.HasManifest)
	require.True(t, sig.HasDockerfile)
	require.True(t, sig.HasTests)
	require.True(t, sig.HasCiConfig)
	require.Equal(t, 5, sig.FileCount)
	require.Equal(t, 3, sig.DirCount)
}

func TestScanStructureCaseInsensitiveNames(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "ReadMe.TXT", "hello")
	writeFile(t, dir, "DOCKERFILE", "FROM scratch")

	sig := scanStructure(dir)
	require.True(t, sig.HasReadme)
	require.True(t, sig.HasDockerfile)
	require.False(t, sig.HasManifest)
	require.False(t, sig.HasTests)
}

func TestScanStructureEmptyTree(t *testing.T) {
	sig := scanStructure(t.TempDir())
	require.Equal(t, StructureSignals{}, sig)
}
