package tools

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	stdout, stderr string
	code           int
	err            error
	cmds           []string
}

func (m *mockRunner) Run(ctx context.Context, cmd string) (string, string, int, error) {
	m.cmds = append(m.cmds, cmd)
	return m.stdout, m.stderr, m.code, m.err
}

func TestReadFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "t.txt")
	require.NoError(t, os.WriteFile(f, []byte("hello tools"), 0o644))
	require.Equal(t, "hello tools", ReadFile(f))
}

func TestReadFile_MissingReturnsErrorString(t *testing.T) {
	out := ReadFile(filepath.Join(t.TempDir(), "missing.txt"))
	require.Contains(t, out, "Error reading file:")
}

func TestReadFile_DirectoryReturnsErrorString(t *testing.T) {
	require.Contains(t, ReadFile(t.TempDir()), "Error reading file:")
}

func TestWriteFile(t *testing.T) {
	f := filepath.Join(t.TempDir(), "x.txt")
	require.Equal(t, "Successfully wrote to "+f, WriteFile(f, "ok"))
	b, err := os.ReadFile(f)
	require.NoError(t, err)
	require.Equal(t, "ok", string(b))
}

func TestWriteFile_BadPathReturnsErrorString(t *testing.T) {
	out := WriteFile(filepath.Join(t.TempDir(), "no", "such", "dir", "x.txt"), "ok")
	require.Contains(t, out, "Error writing to file:")
}

func TestRunCommand_Stdout(t *testing.T) {
	e := NewExecutor(nil)
	require.Equal(t, "OK", e.RunCommand(context.Background(), "printf OK"))
}

func TestRunCommand_NonZeroExit(t *testing.T) {
	e := NewExecutor(nil)
	out := e.RunCommand(context.Background(), "echo boom >&2; exit 3")
	require.Equal(t, "Error: boom\n", out)
}

func TestRunCommand_StartFailure(t *testing.T) {
	e := NewExecutor(&mockRunner{err: errors.New("fork failed"), code: -1})
	require.Equal(t, "Error executing command: fork failed", e.RunCommand(context.Background(), "ls"))
}

func TestLocalRunner_ExitCode(t *testing.T) {
	r := &LocalRunner{}
	stdout, _, code, err := r.Run(context.Background(), "printf x")
	require.NoError(t, err)
	require.Zero(t, code)
	require.Equal(t, "x", stdout)

	_, stderr, code, err := r.Run(context.Background(), "echo bad >&2; exit 4")
	require.NoError(t, err)
	require.Equal(t, 4, code)
	require.Equal(t, "bad\n", stderr)
}

func TestExecute_AnalyzeProjectStructure(t *testing.T) {
	tmp := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmp, "backend"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "backend", "requirements.txt"), []byte("fastapi\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "render.yaml"), []byte("services: []\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(tmp, "README.md"), []byte("x"), 0o644))

	out := NewExecutor(nil).Execute(context.Background(), AnalyzeProjectStructure{ProjectPath: tmp})
	require.Contains(t, out, filepath.Join(tmp, "backend", "requirements.txt"))
	require.Contains(t, out, filepath.Join(tmp, "render.yaml"))
	require.NotContains(t, out, "README.md")
}

func TestExecute_CheckRenderYAML(t *testing.T) {
	tmp := t.TempDir()
	e := NewExecutor(nil)
	require.Equal(t, "render.yaml not found in the specified path", e.Execute(context.Background(), CheckRenderYAML{ProjectPath: tmp}))

	require.NoError(t, os.WriteFile(filepath.Join(tmp, "render.yaml"), []byte("services: []\n"), 0o644))
	require.Equal(t, "services: []\n", e.Execute(context.Background(), CheckRenderYAML{ProjectPath: tmp}))
}

func TestExecute_UpdateRenderYAML(t *testing.T) {
	tmp := t.TempDir()
	e := NewExecutor(nil)
	content := "services:\n  - type: web\n    buildCommand: pip install -r backend/requirements.txt\n"

	out := e.Execute(context.Background(), UpdateRenderYAML{ProjectPath: tmp, NewContent: content})
	require.Equal(t, "Successfully wrote to "+filepath.Join(tmp, "render.yaml"), out)
	b, err := os.ReadFile(filepath.Join(tmp, "render.yaml"))
	require.NoError(t, err)
	require.Equal(t, content, string(b))
}

func TestExecute_UpdateRenderYAML_InvalidYAMLNotWritten(t *testing.T) {
	tmp := t.TempDir()
	out := NewExecutor(nil).Execute(context.Background(), UpdateRenderYAML{ProjectPath: tmp, NewContent: "services: [unterminated"})
	require.Contains(t, out, "Error: render.yaml content is not valid YAML")
	_, err := os.Stat(filepath.Join(tmp, "render.yaml"))
	require.True(t, os.IsNotExist(err))
}

func TestExecute_UpdateRenderYAML_MissingDir(t *testing.T) {
	out := NewExecutor(nil).Execute(context.Background(), UpdateRenderYAML{ProjectPath: filepath.Join(t.TempDir(), "nope"), NewContent: "a: 1"})
	require.Contains(t, out, "Error writing to file:")
}

func TestExecute_CheckRequirementsTxt(t *testing.T) {
	f := filepath.Join(t.TempDir(), "requirements.txt")
	e := NewExecutor(nil)
	require.Equal(t, "File not found: "+f, e.Execute(context.Background(), CheckRequirementsTxt{Filepath: f}))

	require.NoError(t, os.WriteFile(f, []byte("fastapi\nopenai\n"), 0o644))
	require.Equal(t, "fastapi\nopenai\n", e.Execute(context.Background(), CheckRequirementsTxt{Filepath: f}))
}

func TestExecute_ShellCommandsAreQuoted(t *testing.T) {
	r := &mockRunner{stdout: "done"}
	e := NewExecutor(r)
	ctx := context.Background()

	require.Equal(t, "done", e.Execute(ctx, TestRenderConfig{ProjectPath: "/my project"}))
	require.Equal(t, "done", e.Execute(ctx, GitStatus{ProjectPath: "/p"}))
	require.Equal(t, "done", e.Execute(ctx, GitCommitAndPush{ProjectPath: "/p", Message: "it's fixed"}))

	require.Equal(t, []string{
		"cd '/my project' && render validate 2>&1 || echo 'Render CLI not installed or validation failed'",
		"cd /p && git status",
		`cd /p && git add . && git commit -m 'it'"'"'s fixed' && git push`,
	}, r.cmds)
}

func TestExecute_GitFailureIsAString(t *testing.T) {
	r := &mockRunner{stderr: "fatal: not a git repository", code: 128}
	out := NewExecutor(r).Execute(context.Background(), GitStatus{ProjectPath: "/p"})
	require.Equal(t, "Error: fatal: not a git repository", out)
}
