// Package manifest reads and writes the pyproject.toml at the center of the
// migration: the legacy Poetry document on the way in, the PEP 621 /
// dependency-groups document on the way out. The document is held as a
// dynamic tree because the legacy format mixes strings, tables and arrays
// under the same keys.
package manifest

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"uplift/internal/errors"
)

const FileName = "pyproject.toml"

type Document map[string]any

func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInput, "cannot read manifest")
	}

	var doc Document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.CodeInput, "cannot parse manifest")
	}
	return doc, nil
}

// Save rewrites the manifest wholesale. The document is never patched in
// place on disk.
func Save(path string, doc Document) error {
	data, err := toml.Marshal(map[string]any(doc))
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "cannot encode manifest")
	}
	return os.WriteFile(path, data, 0o644)
}

// Table walks nested tables by key and returns the innermost one.
func (d Document) Table(keys ...string) (map[string]any, bool) {
	current := map[string]any(d)
	for _, key := range keys {
		next, ok := current[key].(map[string]any)
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

// PoetryConfig returns the legacy tool.poetry table.
func (d Document) PoetryConfig() (map[string]any, bool) {
	return d.Table("tool", "poetry")
}

func (d Document) HasPoetryConfig() bool {
	_, ok := d.PoetryConfig()
	return ok
}

// IsMigrated reports whether the document already exhibits the target
// format: a project table plus dependency groups, and no Poetry block.
func (d Document) IsMigrated() bool {
	if d.HasPoetryConfig() {
		return false
	}
	_, hasProject := d["project"]
	_, hasGroups := d["dependency-groups"]
	return hasProject && hasGroups
}

// ProjectDependencies returns the PEP 621 runtime dependency strings.
func (d Document) ProjectDependencies() []string {
	project, ok := d.Table("project")
	if !ok {
		return nil
	}
	return stringSlice(project["dependencies"])
}

// DevDependencies returns the dependency-groups dev strings.
func (d Document) DevDependencies() []string {
	groups, ok := d.Table("dependency-groups")
	if !ok {
		return nil
	}
	return stringSlice(groups["dev"])
}

// RequiresPython returns the declared interpreter range, defaulted when the
// document carries none.
func (d Document) RequiresPython() string {
	if project, ok := d.Table("project"); ok {
		if s, ok := project["requires-python"].(string); ok && s != "" {
			return s
		}
	}
	return ">=3.12,<4.0"
}

func stringSlice(v any) []string {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// StringList converts a TOML array value into strings, for callers holding
// raw table values (extras lists, author lists).
func StringList(v any) []string {
	return stringSlice(v)
}

// DependencyName extracts the bare package name from a dependency string:
// extras bracket and version suffix stripped.
func DependencyName(dep string) string {
	name := strings.SplitN(dep, " ", 2)[0]
	return strings.SplitN(name, "[", 2)[0]
}

// SplitNameConstraint splits a dependency string into name and raw
// constraint; the constraint is empty when the declaration is bare.
func SplitNameConstraint(dep string) (string, string) {
	parts := strings.SplitN(dep, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
