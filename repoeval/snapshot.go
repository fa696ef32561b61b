package repoeval

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	git "github.com/go-git/go-git/v5"
)

// Snapshot is the ephemeral local working copy of a cloned repository.
// It is owned exclusively by one pipeline invocation and must be removed
// on every exit path.
type Snapshot struct {
	Dir        string
	AcquiredAt time.Time
}

// cloneSnapshot fetches the remote repository into a fresh temporary
// directory. On clone failure the directory is removed before the error
// is returned.
func cloneSnapshot(ctx context.Context, url string) (*Snapshot, error) {
	dir, err := os.MkdirTemp("", "repo_")
	if err != nil {
		return nil, ErrRepoAcquisition().SetDebug(err)
	}

	snap := &Snapshot{Dir: dir, AcquiredAt: time.Now()}

	_, err = git.PlainCloneContext(ctx, dir, false, &git.CloneOptions{
		URL:   url,
		Depth: 1,
	})
	if err != nil {
		snap.Remove()
		return nil, ErrRepoAcquisition().SetDebug(err)
	}

	return snap, nil
}

// Remove deletes the snapshot directory. Read-only entries (git object
// files on some platforms) are forced writable first so removal cannot be
// blocked by permissions.
func (s *Snapshot) Remove() error {
	if s == nil || s.Dir == "" {
		return nil
	}
	filepath.WalkDir(s.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			os.Chmod(path, 0o700)
		} else {
			os.Chmod(path, 0o600)
		}
		return nil
	})
	return os.RemoveAll(s.Dir)
}
