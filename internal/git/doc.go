// Package git locates the repository that holds the resume sources and reads
// its HEAD revision with go-git, without shelling out.
//
// Watch mode uses it to find the real HEAD file (worktrees and
// subdirectories included) and to detect commits that move a branch without
// touching HEAD itself.
package git
