// Package transform turns a legacy Poetry configuration plus the analysis
// record into the target manifest document. It never touches the
// filesystem; the driver owns reading and writing.
package transform

import (
	"sort"
	"strings"

	"uplift/internal/analyzer"
	"uplift/internal/config"
	"uplift/internal/manifest"
	"uplift/internal/shared/util"
)

// standardTools are always offered to the dev group; declarations already
// present by name win.
var standardTools = []string{
	"pytest >=8.0.0, <9.0",
	"ruff >=0.1.3, <0.2.0",
	"mypy >=1.6.1, <2.0.0",
	"deptry >=0.14.2, <0.15.0",
}

type Result struct {
	Doc      manifest.Document
	Warnings []string
}

// Build assembles the new manifest document. The caller has already
// verified the Poetry block exists; everything else is assumed well-formed.
func Build(poetry map[string]any, a *analyzer.Analysis, cfg *config.Config) *Result {
	deps, requiresPython, warnings := runtimeDependencies(poetry)
	devDeps, devWarnings := devDependencies(poetry, a)
	warnings = append(warnings, devWarnings...)

	project := projectMetadata(poetry)
	project["requires-python"] = requiresPython
	project["dependencies"] = deps

	doc := manifest.Document{
		"build-system": map[string]any{
			"requires":      []string{"hatchling"},
			"build-backend": "hatchling.build",
		},
		"tool": map[string]any{
			"hatch": map[string]any{
				"build": map[string]any{
					"targets": map[string]any{
						"wheel": map[string]any{
							"include": []string{"*.py", "**/*.py"},
						},
					},
				},
			},
			"mypy": mypyConfig(a, cfg.ConflictDir),
			"ruff": ruffConfig(a, cfg.ConflictDir),
		},
		"project": project,
	}
	if len(devDeps) > 0 {
		doc["dependency-groups"] = map[string]any{"dev": devDeps}
	}

	return &Result{Doc: doc, Warnings: warnings}
}

func projectMetadata(poetry map[string]any) map[string]any {
	name, _ := poetry["name"].(string)
	version, ok := poetry["version"].(string)
	if !ok || version == "" {
		version = "0.1.0"
	}
	description, _ := poetry["description"].(string)

	authors := make([]map[string]any, 0)
	for _, author := range manifest.StringList(poetry["authors"]) {
		authors = append(authors, map[string]any{
			"name": strings.TrimSpace(strings.SplitN(author, "<", 2)[0]),
		})
	}

	return map[string]any{
		"name":        strings.ReplaceAll(strings.ToLower(name), " ", "-"),
		"version":     version,
		"description": description,
		"authors":     authors,
	}
}

// runtimeDependencies reformats the Poetry dependency table, pulling the
// interpreter constraint out as requires-python.
func runtimeDependencies(poetry map[string]any) ([]string, string, []string) {
	depsTable, _ := poetry["dependencies"].(map[string]any)

	pythonConstraint := "^3.12"
	if s, ok := depsTable["python"].(string); ok && s != "" {
		pythonConstraint = s
	}
	requiresPython := normalizeOrRaw(pythonConstraint)

	var deps, warnings []string
	for _, name := range util.SortedStringKeys(depsTable) {
		if name == "python" {
			continue
		}
		dep, w := FormatDependency(name, depsTable[name])
		deps = append(deps, dep)
		warnings = append(warnings, w...)
	}
	sort.Strings(deps)
	return deps, requiresPython, warnings
}

// devDependencies merges the legacy groups with stub packages for the
// analysis' missing-stub candidates and the standard tool set, skipping
// anything already declared by name, sorted by full declaration string.
func devDependencies(poetry map[string]any, a *analyzer.Analysis) ([]string, []string) {
	var deps, warnings []string

	groups, _ := poetry["group"].(map[string]any)
	for _, groupName := range util.SortedStringKeys(groups) {
		group, _ := groups[groupName].(map[string]any)
		groupDeps, _ := group["dependencies"].(map[string]any)
		for _, name := range util.SortedStringKeys(groupDeps) {
			dep, w := FormatDependency(name, groupDeps[name])
			deps = append(deps, dep)
			warnings = append(warnings, w...)
		}
	}

	existing := make(map[string]bool, len(deps))
	for _, dep := range deps {
		existing[manifest.DependencyName(dep)] = true
	}

	for _, pkg := range a.MissingStubs {
		stub := "types-" + pkg
		if !existing[stub] {
			deps = append(deps, stub+" >=2.0.0, <3.0")
			existing[stub] = true
		}
	}
	for _, tool := range standardTools {
		if !existing[manifest.DependencyName(tool)] {
			deps = append(deps, tool)
		}
	}

	sort.Strings(deps)
	return deps, warnings
}

// mypyConfig and ruffConfig each own a disjoint key set; the rules below
// are additive and never overwrite one another.
func mypyConfig(a *analyzer.Analysis, conflictDir string) map[string]any {
	cfg := map[string]any{}
	if a.HasAsync {
		cfg["strict_optional"] = true
		cfg["warn_unused_awaits"] = true
	}
	if a.HasAnnotations {
		cfg["strict"] = true
		cfg["warn_return_any"] = true
	}
	if len(a.ModuleConflicts) > 0 {
		cfg["exclude"] = []string{conflictDir + "/.*"}
	}
	return cfg
}

func ruffConfig(a *analyzer.Analysis, conflictDir string) map[string]any {
	cfg := map[string]any{}
	if a.HasLongLines {
		cfg["line-length"] = 100
	}
	for _, c := range a.ModuleConflicts {
		if strings.Contains(c.Path, conflictDir+"/") {
			cfg["exclude"] = []string{conflictDir}
			break
		}
	}
	return cfg
}
