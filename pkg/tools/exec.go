package tools

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alessio/shellescape"
	"gopkg.in/yaml.v3"
)

// ReadFile returns the contents of path, or an error description. It never fails.
func ReadFile(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Sprintf("Error reading file: %v", err)
	}
	return string(b)
}

// WriteFile writes content to path, replacing it, and reports the outcome as text.
func WriteFile(path, content string) string {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Sprintf("Error writing to file: %v", err)
	}
	return fmt.Sprintf("Successfully wrote to %s", path)
}

// Executor runs decoded calls against the local machine.
type Executor struct {
	runner Runner
}

// NewExecutor creates an Executor. A nil runner means LocalRunner.
func NewExecutor(runner Runner) *Executor {
	if runner == nil {
		runner = &LocalRunner{}
	}
	return &Executor{runner: runner}
}

// RunCommand runs cmd through the shell and returns stdout, or an error
// description when the command fails or cannot start.
func (e *Executor) RunCommand(ctx context.Context, cmd string) string {
	stdout, stderr, code, err := e.runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Sprintf("Error executing command: %v", err)
	}
	if code != 0 {
		return "Error: " + stderr
	}
	return stdout
}

// Execute performs call and returns its textual result.
func (e *Executor) Execute(ctx context.Context, call Call) string {
	switch c := call.(type) {
	case AnalyzeProjectStructure:
		return e.RunCommand(ctx, fmt.Sprintf("find %s -type f -name 'requirements.txt' -o -name 'render.yaml' | sort", shellescape.Quote(c.ProjectPath)))

	case CheckRenderYAML:
		path := filepath.Join(c.ProjectPath, "render.yaml")
		if !exists(path) {
			return "render.yaml not found in the specified path"
		}
		return ReadFile(path)

	case UpdateRenderYAML:
		var doc any
		if err := yaml.Unmarshal([]byte(c.NewContent), &doc); err != nil {
			return fmt.Sprintf("Error: render.yaml content is not valid YAML: %v", err)
		}
		return WriteFile(filepath.Join(c.ProjectPath, "render.yaml"), c.NewContent)

	case CheckRequirementsTxt:
		if !exists(c.Filepath) {
			return fmt.Sprintf("File not found: %s", c.Filepath)
		}
		return ReadFile(c.Filepath)

	case TestRenderConfig:
		return e.RunCommand(ctx, fmt.Sprintf("cd %s && render validate 2>&1 || echo 'Render CLI not installed or validation failed'", shellescape.Quote(c.ProjectPath)))

	case GitStatus:
		return e.RunCommand(ctx, fmt.Sprintf("cd %s && git status", shellescape.Quote(c.ProjectPath)))

	case GitCommitAndPush:
		return e.RunCommand(ctx, fmt.Sprintf("cd %s && git add . && git commit -m %s && git push",
			shellescape.Quote(c.ProjectPath), shellescape.Quote(c.Message)))

	default:
		return fmt.Sprintf("Error: Function %T not implemented", call)
	}
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
