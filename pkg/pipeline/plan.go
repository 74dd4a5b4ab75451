package pipeline

import (
	"context"
	"os"

	"github.com/arthur-debert/whatif/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Plan is a list of resources to converge
type Plan struct {
	Name      string     `yaml:"name"`
	Resources []Resource `yaml:"resources"`
}

// Resource is one resource action and the steps it performs
type Resource struct {
	Name   string `yaml:"name"`
	Action string `yaml:"action"`
	Steps  []Step `yaml:"steps"`
}

// Step is one primitive operation. Which fields apply depends on Op.
type Step struct {
	Op        string   `yaml:"op"`
	Path      string   `yaml:"path,omitempty"`
	Dest      string   `yaml:"dest,omitempty"`
	Target    string   `yaml:"target,omitempty"`
	Content   string   `yaml:"content,omitempty"`
	Mode      string   `yaml:"mode,omitempty"`
	Owner     *int     `yaml:"owner,omitempty"`
	Group     *int     `yaml:"group,omitempty"`
	Time      string   `yaml:"time,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
	Recursive bool     `yaml:"recursive,omitempty"`
	Preserve  bool     `yaml:"preserve,omitempty"`
	Command   string   `yaml:"command,omitempty"`
	Args      []string `yaml:"args,omitempty"`
	Dir       string   `yaml:"dir,omitempty"`
}

// LoadPlan reads and validates a plan file
func LoadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrPlanLoad, "failed to read plan %s", path).
			WithDetail("path", path)
	}
	plan, err := ParsePlan(data)
	if err != nil {
		return nil, errors.Wrapf(err, errors.GetErrorCode(err), "invalid plan %s", path).
			WithDetail("path", path)
	}
	return plan, nil
}

// ParsePlan decodes and validates plan YAML
func ParsePlan(data []byte) (*Plan, error) {
	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, errors.Wrap(err, errors.ErrPlanLoad, "failed to parse plan")
	}
	if err := plan.Validate(); err != nil {
		return nil, err
	}
	return &plan, nil
}

// Validate checks every resource and step
func (p *Plan) Validate() error {
	if len(p.Resources) == 0 {
		return errors.New(errors.ErrPlanInvalid, "plan has no resources")
	}
	for i, res := range p.Resources {
		if res.Name == "" || res.Action == "" {
			return errors.Newf(errors.ErrPlanInvalid, "resource %d needs a name and an action", i+1)
		}
		for j, step := range res.Steps {
			if err := step.Validate(); err != nil {
				return errors.Wrapf(err, errors.ErrPlanInvalid, "%s[%s] step %d", res.Name, res.Action, j+1)
			}
		}
	}
	return nil
}

// Actions turns the plan into pipeline actions driven by exec
func (p *Plan) Actions(exec *Executor) []Action {
	actions := make([]Action, 0, len(p.Resources))
	for _, res := range p.Resources {
		steps := res.Steps
		actions = append(actions, Action{
			Resource: res.Name,
			Name:     res.Action,
			Run: func(ctx context.Context) error {
				return exec.RunSteps(ctx, steps)
			},
		})
	}
	return actions
}
