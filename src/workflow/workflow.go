// Package workflow models the CI pipeline definition that drives lintwell:
// triggers, a single lint job, and the dependency cache step whose key is
// derived from a hash of requirement files.
package workflow

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	ErrNoJobs      = errors.New("workflow defines no jobs")
	ErrEmptyStep   = errors.New("step must set either 'uses' or 'run'")
	ErrNoTriggers  = errors.New("workflow defines no triggers")
	ErrStepNameDup = errors.New("duplicate step id")
)

// Workflow is the root of a pipeline definition.
type Workflow struct {
	Name string         `yaml:"name"`
	On   Triggers       `yaml:"on"`
	Jobs map[string]Job `yaml:"jobs"`
}

// Triggers describes when the pipeline runs.
type Triggers struct {
	Push        *BranchFilter `yaml:"push"`
	PullRequest *BranchFilter `yaml:"pull_request"`
}

// BranchFilter restricts a trigger to a set of branches.
// An empty filter matches every branch.
type BranchFilter struct {
	Branches []string `yaml:"branches"`
}

// Job is a sequence of steps on a named runner.
type Job struct {
	RunsOn string `yaml:"runs-on"`
	Steps  []Step `yaml:"steps"`
}

// Step is one workflow step: either an action reference ('uses') or a shell
// command ('run').
type Step struct {
	ID   string            `yaml:"id"`
	Name string            `yaml:"name"`
	Uses string            `yaml:"uses"`
	Run  string            `yaml:"run"`
	With map[string]string `yaml:"with"`
}

// UnmarshalYAML accepts the three trigger forms the CI runner does:
// a single event name (`on: push`), a list (`on: [push, pull_request]`),
// and a mapping where each event carries an optional branch filter. The
// null decode for bare mapping entries (`pull_request:`) has to happen
// here: yaml.v3 never calls an unmarshaler for a null node, so a custom
// BranchFilter unmarshaler would not see them.
func (t *Triggers) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		t.set(value.Value, &BranchFilter{})
		return nil

	case yaml.SequenceNode:
		for _, event := range value.Content {
			t.set(event.Value, &BranchFilter{})
		}
		return nil

	case yaml.MappingNode:
		for i := 0; i+1 < len(value.Content); i += 2 {
			filter := &BranchFilter{}
			if val := value.Content[i+1]; val.Tag != "!!null" {
				if err := val.Decode(filter); err != nil {
					return err
				}
			}
			t.set(value.Content[i].Value, filter)
		}
		return nil
	}
	return fmt.Errorf("unsupported trigger form at line %d", value.Line)
}

// set assigns a filter to a known event; unknown events are ignored.
func (t *Triggers) set(event string, filter *BranchFilter) {
	switch event {
	case "push":
		t.Push = filter
	case "pull_request":
		t.PullRequest = filter
	}
}

// Parse decodes a workflow definition from YAML bytes.
func Parse(data []byte) (*Workflow, error) {
	var wf Workflow
	if err := yaml.Unmarshal(data, &wf); err != nil {
		return nil, fmt.Errorf("failed to parse workflow: %w", err)
	}
	return &wf, nil
}

// Load reads and parses a workflow file.
func Load(path string) (*Workflow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow file: %w", err)
	}
	return Parse(data)
}

// Validate checks the structural invariants of a workflow.
func (w *Workflow) Validate() error {
	if w.On.Push == nil && w.On.PullRequest == nil {
		return ErrNoTriggers
	}
	if len(w.Jobs) == 0 {
		return ErrNoJobs
	}

	for name, job := range w.Jobs {
		seen := make(map[string]bool)
		for i, step := range job.Steps {
			if step.Uses == "" && step.Run == "" {
				return fmt.Errorf("job %q step %d: %w", name, i, ErrEmptyStep)
			}
			if step.ID != "" {
				if seen[step.ID] {
					return fmt.Errorf("job %q: %w: %s", name, ErrStepNameDup, step.ID)
				}
				seen[step.ID] = true
			}
		}
	}
	return nil
}

// TriggersOnPush reports whether a push to the given branch runs the pipeline.
func (w *Workflow) TriggersOnPush(branch string) bool {
	if w.On.Push == nil {
		return false
	}
	if len(w.On.Push.Branches) == 0 {
		return true
	}
	for _, b := range w.On.Push.Branches {
		if b == branch {
			return true
		}
	}
	return false
}

// TriggersOnPullRequest reports whether pull requests run the pipeline.
func (w *Workflow) TriggersOnPullRequest() bool {
	return w.On.PullRequest != nil
}
