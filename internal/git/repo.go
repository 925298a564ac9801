package git

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// ErrNoCommits is returned by Head for a repository without commits.
var ErrNoCommits = errors.New("repository has no commits")

// Repo is an opened repository.
type Repo struct {
	repo   *git.Repository
	gitDir string
}

// Locate opens the repository containing dir, searching parent directories.
func Locate(dir string) (*Repo, error) {
	r, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open repository at %s: %w", dir, err)
	}
	fs, ok := r.Storer.(*filesystem.Storage)
	if !ok {
		return nil, fmt.Errorf("repository at %s is not stored on disk", dir)
	}
	return &Repo{repo: r, gitDir: filepath.Clean(fs.Filesystem().Root())}, nil
}

// GitDir is the metadata directory holding HEAD.
func (r *Repo) GitDir() string { return r.gitDir }

// HEADFile is the path of the HEAD pointer.
func (r *Repo) HEADFile() string { return filepath.Join(r.gitDir, "HEAD") }

// Head returns the full hash HEAD resolves to.
func (r *Repo) Head() (string, error) {
	ref, err := r.repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return "", ErrNoCommits
	}
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w", err)
	}
	return ref.Hash().String(), nil
}
