// Package analyzer inspects a target repository before migration and
// produces the analysis record every transformation decision reads from.
// The record is derived from on-disk state once; nothing downstream
// re-scans the filesystem.
package analyzer

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"uplift/internal/config"
	"uplift/internal/manifest"
	"uplift/internal/parser"
	"uplift/internal/shared/util"
)

// Analysis is immutable once produced.
type Analysis struct {
	DuplicateDeps   []string
	InvalidVersions []InvalidConstraint
	ModuleConflicts []ModuleConflict
	MissingStubs    []string
	HasAsync        bool
	HasAnnotations  bool
	HasLongLines    bool
	PythonVersions  []string

	// SourceFiles are the scanned Python files, repo-relative, in walk
	// order. The driver hands these to the type checker.
	SourceFiles []string
}

type InvalidConstraint struct {
	Name string
	Raw  string
}

type ModuleConflict struct {
	Module string
	Path   string
}

type Analyzer struct {
	cfg     *config.Config
	scanner *parser.Scanner
	parser  *parser.Parser
}

func New(cfg *config.Config) (*Analyzer, error) {
	scanner, err := parser.NewScanner(cfg.Exclude.Dirs, cfg.Exclude.Files)
	if err != nil {
		return nil, err
	}

	p := parser.NewParser(parser.NewGrammarLoader())
	p.RegisterExtractor("python", &parser.PythonExtractor{})

	return &Analyzer{cfg: cfg, scanner: scanner, parser: p}, nil
}

// Analyze scans the repository tree and combines the file-level findings
// with the dependency lists declared in the manifest document. Individual
// files that cannot be read or parsed are skipped, not fatal.
func (a *Analyzer) Analyze(repoPath string, doc manifest.Document) (*Analysis, error) {
	scanned, err := a.scanner.Scan(repoPath)
	if err != nil {
		return nil, err
	}

	// The scanner is language-agnostic; keep only what the parser can read.
	var paths []string
	for _, p := range scanned {
		if a.parser.IsSupportedPath(p) {
			paths = append(paths, p)
		}
	}

	analysis := &Analysis{
		DuplicateDeps:   findDuplicateDeps(doc),
		InvalidVersions: findInvalidVersions(doc),
		PythonVersions:  splitVersions(doc.RequiresPython()),
	}

	relPaths := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(repoPath, p)
		if err != nil {
			rel = p
		}
		relPaths = append(relPaths, rel)
	}
	analysis.SourceFiles = relPaths
	analysis.ModuleConflicts = findModuleConflicts(relPaths)

	imports := make(map[string]bool)
	for i, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Debug("skipping unreadable file", "path", path, "error", err)
			continue
		}

		if !analysis.HasLongLines && hasLongLines(content, a.cfg.MaxLineLength) {
			analysis.HasLongLines = true
		}

		file, err := a.parser.ParseFile(path, content)
		if err != nil {
			slog.Debug("skipping unparsable file", "path", relPaths[i], "error", err)
			continue
		}

		for _, imp := range file.Imports {
			if imp.IsRelative {
				// Relative imports resolve inside the repo; they can
				// never name a stub candidate.
				continue
			}
			if root := imp.Root(); root != "" {
				imports[root] = true
			}
		}
		analysis.HasAsync = analysis.HasAsync || file.HasAsync
		analysis.HasAnnotations = analysis.HasAnnotations || file.HasAnnotations
	}

	analysis.MissingStubs = findMissingStubs(imports, localModules(repoPath, paths))
	return analysis, nil
}

// findDuplicateDeps returns the set of package names declared more than
// once across the runtime and dev dependency lists.
func findDuplicateDeps(doc manifest.Document) []string {
	all := append(doc.ProjectDependencies(), doc.DevDependencies()...)
	seen := make(map[string]bool, len(all))
	var dups []string
	for _, dep := range all {
		name := manifest.DependencyName(dep)
		if seen[name] {
			dups = append(dups, name)
		}
		seen[name] = true
	}
	return util.SortedUnique(dups)
}

// findInvalidVersions records, in declaration order, every constraint the
// normalization pipeline rejects.
func findInvalidVersions(doc manifest.Document) []InvalidConstraint {
	all := append(doc.ProjectDependencies(), doc.DevDependencies()...)
	var invalid []InvalidConstraint
	for _, dep := range all {
		name, constraint := manifest.SplitNameConstraint(dep)
		if constraint == "" {
			continue
		}
		if _, err := manifest.NormalizeConstraint(constraint); err != nil {
			invalid = append(invalid, InvalidConstraint{Name: name, Raw: constraint})
		}
	}
	return invalid
}

// findModuleConflicts reports files whose base name repeats elsewhere in
// the tree. The first occurrence is canonical; every later one yields a
// conflict entry naming the later path.
func findModuleConflicts(relPaths []string) []ModuleConflict {
	canonical := make(map[string]string, len(relPaths))
	var conflicts []ModuleConflict
	for _, p := range relPaths {
		stem := moduleStem(p)
		if _, ok := canonical[stem]; ok {
			conflicts = append(conflicts, ModuleConflict{Module: stem, Path: p})
			continue
		}
		canonical[stem] = p
	}
	return conflicts
}

// localModules collects names resolvable inside the repository: file stems
// plus directories holding a package marker. Imports of these never need
// stubs regardless of directory layout (src/, app/, nested packages).
func localModules(repoPath string, paths []string) map[string]bool {
	local := make(map[string]bool, len(paths))
	for _, p := range paths {
		local[moduleStem(p)] = true
		if filepath.Base(p) == "__init__.py" {
			dir := filepath.Dir(p)
			if dir != filepath.Clean(repoPath) {
				local[filepath.Base(dir)] = true
			}
		}
	}
	return local
}

func findMissingStubs(imports, local map[string]bool) []string {
	var missing []string
	for name := range imports {
		if builtinModules[name] || typedPackages[name] || local[name] {
			continue
		}
		missing = append(missing, name)
	}
	return util.SortedUnique(missing)
}

func hasLongLines(content []byte, max int) bool {
	for _, line := range strings.Split(string(content), "\n") {
		if len(strings.TrimRight(line, " \t\r")) > max {
			return true
		}
	}
	return false
}

func moduleStem(path string) string {
	return strings.TrimSuffix(filepath.Base(path), ".py")
}

func splitVersions(requires string) []string {
	parts := strings.Split(requires, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
