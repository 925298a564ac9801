package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/resumebuilder/internal/command"
	ferrors "git.home.luguber.info/inful/resumebuilder/internal/foundation/errors"
)

const janeRoe = `profile:
  name: Jane Roe
  title: Engineer
  summary: Builds things.
skills:
  cloud: []
  devops: []
  monitoring: []
  languages: []
  domainEcosystem: []
  databases: []
  security: [TLS]
experience: []
contacts: []
`

type harness struct {
	dir    string
	runner *command.FakeRunner
	stdout *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	runner := command.NewFakeRunner().
		OnOutput("git", "abc1234\n").
		On("typst", command.FakeResponse{Hook: func(cmd command.Command) error {
			return os.WriteFile(cmd.Args[2], []byte("%PDF-1.7"), 0o644)
		}})
	return &harness{dir: dir, runner: runner, stdout: &bytes.Buffer{}}
}

func (h *harness) run(t *testing.T, args ...string) error {
	t.Helper()
	cli := &CLI{}
	global := NewGlobal(h.runner, h.stdout)
	parser, err := kong.New(cli,
		kong.Name("resumebuilder"),
		kong.Vars{"version": "test"},
		kong.Bind(global),
	)
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	return kctx.Run(global, cli)
}

func (h *harness) writeSource(t *testing.T) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "resume.yaml"), []byte(janeRoe), 0o644))
}

func TestBuild_WritesArtifacts(t *testing.T) {
	h := newHarness(t)
	h.writeSource(t)

	err := h.run(t, "build", "-o", "gen", "-d", "out/resume.pdf", "--release-version", "2.0.0", "--report", "reports")
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(h.dir, "gen", "resume_data.go"))
	assert.FileExists(t, filepath.Join(h.dir, "gen", "build_info.go"))
	assert.FileExists(t, filepath.Join(h.dir, "out", "resume.pdf"))
	assert.FileExists(t, filepath.Join(h.dir, "reports", "build-report.json"))

	info, err := os.ReadFile(filepath.Join(h.dir, "gen", "build_info.go"))
	require.NoError(t, err)
	assert.Contains(t, string(info), `"2.0.0"`)
	assert.Contains(t, h.stdout.String(), "wrote "+filepath.Join("gen", "resume_data.go"))
}

func TestBuild_IsDefaultCommand(t *testing.T) {
	h := newHarness(t)
	h.writeSource(t)

	require.NoError(t, h.run(t, "--skip-document"))
	assert.FileExists(t, filepath.Join(h.dir, "internal", "resumedata", "resume_data.go"))
	assert.NoFileExists(t, filepath.Join(h.dir, "assets", "resume.pdf"))
	for _, c := range h.runner.Calls() {
		assert.NotEqual(t, "typst", c.Name)
	}
}

func TestBuild_MissingSourceWritesNothing(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "build")
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(h.dir, "internal"))
}

func TestBuild_MetricsFile(t *testing.T) {
	h := newHarness(t)
	h.writeSource(t)

	require.NoError(t, h.run(t, "build", "--skip-document", "--metrics-file", "build.prom"))
	data, err := os.ReadFile(filepath.Join(h.dir, "build.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "resumebuilder_build_outcomes_total")
}

func TestBuild_ConfigFile(t *testing.T) {
	h := newHarness(t)
	h.writeSource(t)
	cfg := "output:\n  dir: generated\n  package: cv\ndocument:\n  output: cv.pdf\n  skip: true\n"
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, "custom.yaml"), []byte(cfg), 0o644))

	require.NoError(t, h.run(t, "-c", "custom.yaml", "build"))
	data, err := os.ReadFile(filepath.Join(h.dir, "generated", "resume_data.go"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "package cv")
}

func TestBuild_ExplicitConfigMustExist(t *testing.T) {
	h := newHarness(t)

	err := h.run(t, "-c", "missing.yaml", "build")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryConfig))
}

func TestBuild_InvalidPackageFlag(t *testing.T) {
	h := newHarness(t)
	h.writeSource(t)

	err := h.run(t, "build", "--package", "not-valid")
	require.Error(t, err)
	assert.True(t, ferrors.HasCategory(err, ferrors.CategoryValidation))
	assert.Equal(t, 2, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
}

func TestInit(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "init", "--with-config"))
	assert.FileExists(t, filepath.Join(h.dir, "resume.yaml"))
	assert.FileExists(t, filepath.Join(h.dir, "resumebuilder.yaml"))
	assert.Contains(t, h.stdout.String(), "wrote resume.yaml")

	require.Error(t, h.run(t, "init"), "existing document is not overwritten")
	require.NoError(t, h.run(t, "init", "--force"))

	// The example document builds with the generated configuration.
	require.NoError(t, h.run(t, "build"))
	assert.FileExists(t, filepath.Join(h.dir, "assets", "resume.pdf"))
}

func TestTriggers(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.run(t, "triggers", "-s", "cv.yaml"))
	assert.Equal(t, "cv.yaml\n"+filepath.Join(".git", "HEAD")+"\n", h.stdout.String())
}
