// Package hclproject loads .gantt.hcl project files into the domain model.
// It plays the producer role: everything it hands over has already been
// through the model's own validation.
package hclproject

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/vk/ganttgen/internal/ctxlog"
	"github.com/vk/ganttgen/internal/model"
)

// Loader parses HCL project files.
type Loader struct{}

// NewLoader creates a new project-file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load parses one project file and translates it into a validated project.
// Ids and UIDs left unset in the file come from the injected identity.
func (l *Loader) Load(ctx context.Context, path string, identity model.Identity) (*model.Project, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("loading project file", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", path, diags)
	}
	if root.Project == nil {
		return nil, fmt.Errorf("%s contains no project block", path)
	}

	project, err := l.translate(ctx, root.Project, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	logger.Debug("project file loaded", "name", project.Name, "tasks", len(project.Tasks))
	return project, nil
}
