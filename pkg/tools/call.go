package tools

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownOperation = errors.New("unknown operation")
	ErrInvalidArguments = errors.New("invalid arguments")
)

// Call is a decoded operation request. The set of implementations is closed:
// only this package can add one.
type Call interface {
	Operation() Operation
	validate() error
}

type AnalyzeProjectStructure struct {
	ProjectPath string `json:"project_path"`
}

type CheckRenderYAML struct {
	ProjectPath string `json:"project_path"`
}

type UpdateRenderYAML struct {
	ProjectPath string `json:"project_path"`
	NewContent  string `json:"new_content"`
}

type CheckRequirementsTxt struct {
	Filepath string `json:"filepath"`
}

type TestRenderConfig struct {
	ProjectPath string `json:"project_path"`
}

type GitStatus struct {
	ProjectPath string `json:"project_path"`
}

type GitCommitAndPush struct {
	ProjectPath string `json:"project_path"`
	Message     string `json:"message"`
}

func (AnalyzeProjectStructure) Operation() Operation { return OpAnalyzeProjectStructure }
func (CheckRenderYAML) Operation() Operation         { return OpCheckRenderYAML }
func (UpdateRenderYAML) Operation() Operation        { return OpUpdateRenderYAML }
func (CheckRequirementsTxt) Operation() Operation    { return OpCheckRequirementsTxt }
func (TestRenderConfig) Operation() Operation        { return OpTestRenderConfig }
func (GitStatus) Operation() Operation               { return OpGitStatus }
func (GitCommitAndPush) Operation() Operation        { return OpGitCommitAndPush }

func (c AnalyzeProjectStructure) validate() error {
	return required("project_path", c.ProjectPath)
}

func (c CheckRenderYAML) validate() error {
	return required("project_path", c.ProjectPath)
}

// new_content may be empty; Decode only checks that it is present.
func (c UpdateRenderYAML) validate() error {
	return required("project_path", c.ProjectPath)
}

func (c CheckRequirementsTxt) validate() error {
	return required("filepath", c.Filepath)
}

func (c TestRenderConfig) validate() error {
	return required("project_path", c.ProjectPath)
}

func (c GitStatus) validate() error {
	return required("project_path", c.ProjectPath)
}

func (c GitCommitAndPush) validate() error {
	if err := required("project_path", c.ProjectPath); err != nil {
		return err
	}
	return required("message", c.Message)
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidArguments, field)
	}
	return nil
}

// Decode turns a model function call into a typed Call. Unknown names,
// unknown fields, malformed JSON and missing required arguments are rejected.
func Decode(name, arguments string) (Call, error) {
	raw := strings.TrimSpace(arguments)
	if raw == "" {
		raw = "{}"
	}

	switch Operation(name) {
	case OpAnalyzeProjectStructure:
		return decodeAs[AnalyzeProjectStructure](raw)
	case OpCheckRenderYAML:
		return decodeAs[CheckRenderYAML](raw)
	case OpUpdateRenderYAML:
		return decodeAs[UpdateRenderYAML](raw)
	case OpCheckRequirementsTxt:
		return decodeAs[CheckRequirementsTxt](raw)
	case OpTestRenderConfig:
		return decodeAs[TestRenderConfig](raw)
	case OpGitStatus:
		return decodeAs[GitStatus](raw)
	case OpGitCommitAndPush:
		return decodeAs[GitCommitAndPush](raw)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}
}

func decodeAs[T Call](raw string) (Call, error) {
	var call T
	op := call.Operation()

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&call); err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrInvalidArguments, op, err)
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &present); err != nil {
		return nil, fmt.Errorf("%w for %s: %v", ErrInvalidArguments, op, err)
	}
	def, _ := Lookup(op)
	for _, p := range def.Params {
		if _, ok := present[p.Name]; !ok {
			return nil, fmt.Errorf("%w: %s is required", ErrInvalidArguments, p.Name)
		}
	}

	if err := call.validate(); err != nil {
		return nil, err
	}
	return call, nil
}
