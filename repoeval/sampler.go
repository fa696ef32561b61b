package repoeval

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const (
	// maxExcerpts caps LLM cost and latency regardless of repository
	// size. Large repositories are rated on an arbitrary early-traversal
	// subset; this is a known bias, not a sampling guarantee.
	maxExcerpts = 8

	// excerptLines is the window size each matching file is sliced into.
	excerptLines = 300
)

var sampleExts = map[string]bool{
	".py":   true,
	".js":   true,
	".ts":   true,
	".tsx":  true,
	".html": true,
	".css":  true,
	".cpp":  true,
	".java": true,
	".go":   true,
}

var vcsDirs = map[string]bool{
	".git": true,
	".hg":  true,
	".svn": true,
}

// sampleExcerpts walks the snapshot in traversal order and slices each
// matching file into consecutive windows of excerptLines lines, stopping
// at maxExcerpts windows across the whole tree.
func sampleExcerpts(dir string) []Excerpt {
	excerpts := make([]Excerpt, 0, maxExcerpts)

	filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if vcsDirs[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if len(excerpts) >= maxExcerpts {
			return filepath.SkipAll
		}
		if !sampleExts[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}

		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}

		lines := strings.Split(string(content), "\n")
		for i := 0; i < len(lines); i += excerptLines {
			if len(excerpts) >= maxExcerpts {
				break
			}
			end := i + excerptLines
			if end > len(lines) {
				end = len(lines)
			}
			window := strings.Join(lines[i:end], "\n")
			excerpts = append(excerpts, Excerpt{
				File: d.Name(),
				Text: fmt.Sprintf("FILE: %s\n%s", d.Name(), window),
			})
		}
		return nil
	})

	return excerpts
}
