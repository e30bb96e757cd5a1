// Package authz decides which role may perform which action on which resource.
// Roles inherit through the embedded policy: admin holds every user capability.
package authz

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/casbin/casbin/v3"

	"github.com/dtroode/projecthub-server/internal/model"
)

// Resources and actions referenced by the policy.
const (
	ResourceProjects = "projects"

	ActionSubmit   = "submit"
	ActionModerate = "moderate"
)

//go:embed model.conf policy.csv
var embedFS embed.FS

// Enforcer implements model.Authorizer on top of a casbin RBAC enforcer.
type Enforcer struct {
	enforcer *casbin.Enforcer
}

var _ model.Authorizer = (*Enforcer)(nil)

// NewEnforcer loads the embedded model and policy.
func NewEnforcer() (*Enforcer, error) {
	dir, err := os.MkdirTemp("", "projecthub-casbin-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create policy dir: %w", err)
	}
	defer os.RemoveAll(dir)

	for _, name := range []string{"model.conf", "policy.csv"} {
		data, err := embedFS.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o600); err != nil {
			return nil, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	e, err := casbin.NewEnforcer(filepath.Join(dir, "model.conf"), filepath.Join(dir, "policy.csv"))
	if err != nil {
		return nil, fmt.Errorf("failed to create enforcer: %w", err)
	}

	return &Enforcer{enforcer: e}, nil
}

// Authorize reports whether role may perform action on resource.
func (e *Enforcer) Authorize(role model.Role, resource, action string) (bool, error) {
	if role == "" {
		return false, nil
	}
	allowed, err := e.enforcer.Enforce(string(role), resource, action)
	if err != nil {
		return false, fmt.Errorf("failed to enforce policy: %w", err)
	}
	return allowed, nil
}
