package transform

import (
	"fmt"
	"path/filepath"
	"strings"

	"uplift/internal/manifest"
)

// FormatDependency renders one legacy dependency declaration in the target
// format. Exactly one shape applies: path source, git source, url source,
// version table, or plain constraint string. Advisory messages (editable
// conversion, absolute path) are returned alongside, never fatal.
func FormatDependency(name string, constraint any) (string, []string) {
	switch c := constraint.(type) {
	case map[string]any:
		return formatTableDependency(name, c)
	case string:
		return formatSimpleDependency(name, c), nil
	case nil:
		return name, nil
	default:
		return formatSimpleDependency(name, fmt.Sprint(c)), nil
	}
}

func formatTableDependency(name string, c map[string]any) (string, []string) {
	display := withExtras(name, manifest.StringList(c["extras"]))

	if path, ok := c["path"].(string); ok {
		return formatPathDependency(name, display, path, c["develop"] == true)
	}
	if gitURL, ok := c["git"].(string); ok {
		return formatGitDependency(display, gitURL, c), nil
	}
	if url, ok := c["url"].(string); ok {
		return fmt.Sprintf("%s @ %s", display, url), nil
	}
	if version, ok := c["version"].(string); ok && version != "" {
		return fmt.Sprintf("%s %s", display, normalizeOrRaw(version)), nil
	}
	return display, nil
}

func formatPathDependency(name, display, path string, develop bool) (string, []string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	var warnings []string
	if develop {
		warnings = append(warnings,
			fmt.Sprintf("%s: editable install converted to a non-editable file reference", name),
			fmt.Sprintf("%s: absolute path %s is not portable across machines", name, abs),
		)
	}
	return fmt.Sprintf("%s @ file://%s", display, abs), warnings
}

// formatGitDependency appends a "@ref" suffix preferring rev, then tag,
// then branch; no suffix when none is given.
func formatGitDependency(display, gitURL string, c map[string]any) string {
	for _, key := range []string{"rev", "tag", "branch"} {
		if ref, ok := c[key].(string); ok && ref != "" {
			return fmt.Sprintf("%s @ git+%s@%s", display, gitURL, ref)
		}
	}
	return fmt.Sprintf("%s @ git+%s", display, gitURL)
}

func formatSimpleDependency(name, constraint string) string {
	if constraint == "" {
		return name
	}
	return fmt.Sprintf("%s %s", name, normalizeOrRaw(constraint))
}

func withExtras(name string, extras []string) string {
	if len(extras) == 0 {
		return name
	}
	return fmt.Sprintf("%s[%s]", name, strings.Join(extras, ","))
}

// normalizeOrRaw falls back to the raw constraint when normalization
// rejects it; the analyzer has already recorded the defect.
func normalizeOrRaw(constraint string) string {
	normalized, err := manifest.NormalizeConstraint(constraint)
	if err != nil {
		return constraint
	}
	return normalized
}
