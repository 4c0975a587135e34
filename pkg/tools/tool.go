package tools

import (
	"github.com/sashabaranov/go-openai/jsonschema"
)

// Operation names one of the fixed local operations the model may call.
type Operation string

const (
	OpAnalyzeProjectStructure Operation = "analyze_project_structure"
	OpCheckRenderYAML         Operation = "check_render_yaml"
	OpUpdateRenderYAML        Operation = "update_render_yaml"
	OpCheckRequirementsTxt    Operation = "check_requirements_txt"
	OpTestRenderConfig        Operation = "test_render_config"
	OpGitStatus               Operation = "git_status"
	OpGitCommitAndPush        Operation = "git_commit_and_push"
)

// Param is a required string argument of an operation.
type Param struct {
	Name        string
	Description string
}

// Definition describes an operation to the model.
type Definition struct {
	Name        Operation
	Description string
	Params      []Param
}

// Schema returns the JSON schema of the operation's arguments.
func (d Definition) Schema() jsonschema.Definition {
	props := make(map[string]jsonschema.Definition, len(d.Params))
	required := make([]string, 0, len(d.Params))
	for _, p := range d.Params {
		props[p.Name] = jsonschema.Definition{Type: jsonschema.String, Description: p.Description}
		required = append(required, p.Name)
	}
	return jsonschema.Definition{
		Type:       jsonschema.Object,
		Properties: props,
		Required:   required,
	}
}

var projectPathParam = Param{Name: "project_path", Description: "Path to the StatTact project"}

var catalogue = []Definition{
	{
		Name:        OpAnalyzeProjectStructure,
		Description: "Analyze the StatTact project structure, finding requirements.txt and render.yaml files",
		Params:      []Param{projectPathParam},
	},
	{
		Name:        OpCheckRenderYAML,
		Description: "Check the render.yaml file to identify deployment configuration",
		Params:      []Param{projectPathParam},
	},
	{
		Name:        OpUpdateRenderYAML,
		Description: "Update the render.yaml file with corrected configuration",
		Params: []Param{
			projectPathParam,
			{Name: "new_content", Description: "New content for the render.yaml file"},
		},
	},
	{
		Name:        OpCheckRequirementsTxt,
		Description: "Check a specific requirements.txt file",
		Params:      []Param{{Name: "filepath", Description: "Path to the requirements.txt file"}},
	},
	{
		Name:        OpTestRenderConfig,
		Description: "Test if the render configuration is correct",
		Params:      []Param{projectPathParam},
	},
	{
		Name:        OpGitStatus,
		Description: "Check git status of the project",
		Params:      []Param{projectPathParam},
	},
	{
		Name:        OpGitCommitAndPush,
		Description: "Commit and push changes to GitHub",
		Params: []Param{
			projectPathParam,
			{Name: "message", Description: "Commit message"},
		},
	},
}

// Catalogue returns the definitions of every operation, in menu order.
func Catalogue() []Definition {
	out := make([]Definition, len(catalogue))
	copy(out, catalogue)
	return out
}

// Lookup returns the definition of op.
func Lookup(op Operation) (Definition, bool) {
	for _, d := range catalogue {
		if d.Name == op {
			return d, true
		}
	}
	return Definition{}, false
}
