package provenance

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/resumebuilder/internal/codegen"
	"git.home.luguber.info/inful/resumebuilder/internal/command"
	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name         string
		runner       *command.FakeRunner
		version      string
		wantVersion  string
		wantCommit   string
		wantFallback bool
	}{
		{
			name:        "resolved",
			runner:      command.NewFakeRunner().OnOutput("git", "abc1234\n"),
			version:     "1.4.0",
			wantVersion: "1.4.0",
			wantCommit:  "abc1234",
		},
		{
			name:         "tool missing",
			runner:       command.NewFakeRunner(),
			version:      "1.4.0",
			wantVersion:  "1.4.0",
			wantCommit:   DevRevision,
			wantFallback: true,
		},
		{
			name: "non-zero exit",
			runner: command.NewFakeRunner().On("git", command.FakeResponse{Result: command.Result{
				ExitCode: 128, Stderr: []byte("fatal: not a git repository"),
			}}),
			wantVersion:  UnknownVersion,
			wantCommit:   DevRevision,
			wantFallback: true,
		},
		{
			name:         "empty output",
			runner:       command.NewFakeRunner().OnOutput("git", ""),
			wantVersion:  UnknownVersion,
			wantCommit:   DevRevision,
			wantFallback: true,
		},
		{
			name:         "whitespace output",
			runner:       command.NewFakeRunner().OnOutput("git", " \n"),
			version:      "  ",
			wantVersion:  UnknownVersion,
			wantCommit:   DevRevision,
			wantFallback: true,
		},
		{
			name:         "launch error",
			runner:       command.NewFakeRunner().On("git", command.FakeResponse{Err: errors.New("permission denied")}),
			wantVersion:  UnknownVersion,
			wantCommit:   DevRevision,
			wantFallback: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g := NewGenerator(tc.runner, Inputs{ReleaseVersion: tc.version, RepoDir: "/repo"}, codegen.Options{})
			res := g.Resolve(context.Background())

			assert.Equal(t, tc.wantVersion, res.Info.Version)
			assert.Equal(t, tc.wantCommit, res.Info.Commit)
			assert.NotEmpty(t, res.Info.Commit)
			assert.Equal(t, res.Info.Commit, res.Info.Timestamp)
			if tc.wantFallback {
				require.Error(t, res.Fallback)
				assert.True(t, ferrors.HasCategory(res.Fallback, ferrors.CategoryToolUnavailable))
				assert.False(t, ferrors.GetSeverity(res.Fallback) == ferrors.SeverityFatal)
			} else {
				assert.NoError(t, res.Fallback)
			}
		})
	}
}

func TestResolve_InvokesShortHead(t *testing.T) {
	runner := command.NewFakeRunner().OnOutput("git", "abc1234\n")
	NewGenerator(runner, Inputs{RepoDir: "/repo"}, codegen.Options{}).Resolve(context.Background())

	calls := runner.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, "git", calls[0].Name)
	assert.Equal(t, []string{"rev-parse", "--short", "HEAD"}, calls[0].Args)
	assert.Equal(t, "/repo", calls[0].Dir)
}

func TestRender(t *testing.T) {
	src, err := Render(Info{Version: "1.4.0", Commit: "abc1234", Timestamp: "abc1234"}, codegen.Options{})
	require.NoError(t, err)

	s := string(src)
	assert.Contains(t, s, "package resumedata")
	assert.Regexp(t, `BuildVersion\s+= "1.4.0"`, s)
	assert.Regexp(t, `BuildCommit\s+= "abc1234"`, s)
	assert.Regexp(t, `BuildTimestamp\s+= "abc1234"`, s)
}

func TestGenerate_IdempotentWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build_info.go")
	runner := command.NewFakeRunner().OnOutput("git", "abc1234\n")
	g := NewGenerator(runner, Inputs{ReleaseVersion: "1.0.0"}, codegen.Options{})

	res, err := g.Generate(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, res.Written)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	old := time.Now().Add(-time.Hour).Truncate(time.Second)
	require.NoError(t, os.Chtimes(path, old, old))

	res, err = g.Generate(context.Background(), path)
	require.NoError(t, err)
	assert.False(t, res.Written)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(old), "provenance file must not be touched")

	runner.OnOutput("git", "def5678\n")
	res, err = g.Generate(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, res.Written)
	third, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(third), `"def5678"`)
}

func TestGenerate_FallbackIsNotFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "build_info.go")
	g := NewGenerator(command.NewFakeRunner(), Inputs{}, codegen.Options{})

	res, err := g.Generate(context.Background(), path)
	require.NoError(t, err)
	require.Error(t, res.Fallback)

	src, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Regexp(t, `BuildCommit\s+= "dev"`, string(src))
	assert.Regexp(t, `BuildVersion\s+= "unknown"`, string(src))
}

func TestGenerate_WriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	g := NewGenerator(command.NewFakeRunner().OnOutput("git", "abc\n"), Inputs{}, codegen.Options{})
	_, err := g.Generate(context.Background(), filepath.Join(blocker, "build_info.go"))
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryWrite))
}

func TestTriggers(t *testing.T) {
	assert.Equal(t, []string{filepath.Join("/repo", ".git", "HEAD")}, Triggers("/repo"))
}
