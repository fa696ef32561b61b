package repoeval

import (
	"io/fs"
	"path/filepath"
	"strings"
)

var manifestNames = map[string]bool{
	"requirements.txt": true,
	"pyproject.toml":   true,
	"setup.py":         true,
	"package.json":     true,
	"go.mod":           true,
}

// scanStructure walks the snapshot once and computes the structure
// signals. Filename matching is case-insensitive; tests detection matches
// "tests" anywhere in a directory path.
func scanStructure(dir string) StructureSignals {
	var sig StructureSignals

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if path == dir {
			return nil
		}

		rel, relErr := filepath.Rel(dir, path)
		if relErr != nil {
			rel = path
		}
		relSlash := filepath.ToSlash(rel)

		if d.IsDir() {
			sig.DirCount++
			return nil
		}
		sig.FileCount++

		name := strings.ToLower(d.Name())
		if strings.HasPrefix(name, "readme") {
			sig.HasReadme = true
		}
		if manifestNames[name] {
			sig.HasManifest = true
		}
		if name == "dockerfile" {
			sig.HasDockerfile = true
		}

		parent := strings.ToLower(filepath.ToSlash(filepath.Dir(relSlash)))
		if strings.Contains(parent, "tests") {
			sig.HasTests = true
		}
		if strings.Contains(relSlash, ".github/workflows") {
			sig.HasCiConfig = true
		}
		return nil
	})

	return sig
}
