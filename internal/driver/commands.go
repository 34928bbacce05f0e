package driver

import (
	"path/filepath"
	"strings"

	"uplift/internal/analyzer"
	"uplift/internal/execx"
	"uplift/internal/shared/util"
)

// checkFiles is the file list handed to the type checker. The conflict
// directory is dropped here even though analysis scans it: mypy's exclude
// config does not apply to explicitly listed files, so passing them would
// re-trigger the duplicate-module errors the exclusion exists to avoid.
func (d *Driver) checkFiles(a *analyzer.Analysis) []string {
	var files []string
	for _, f := range a.SourceFiles {
		if d.underConflictDir(f) {
			continue
		}
		files = append(files, f)
	}
	return files
}

// underConflictDir matches the same paths as the generated mypy exclude
// pattern: the conflict directory at the repo root or anywhere below it.
func (d *Driver) underConflictDir(rel string) bool {
	return util.HasPathPrefix(rel, d.cfg.ConflictDir) ||
		strings.Contains(filepath.ToSlash(rel), "/"+d.cfg.ConflictDir+"/")
}

// verificationCommands builds the fixed post-conversion command sequence.
// The check commands only make sense when the repository actually has
// Python sources; a config-only repo still gets its environments synced.
func (d *Driver) verificationCommands(repoPath string, a *analyzer.Analysis) []execx.Command {
	env := map[string]string{"UV_CACHE_DIR": d.cfg.CacheDir}

	cmds := []execx.Command{
		{Name: d.cfg.UVPath, Args: []string{"sync", "--refresh"}, Dir: repoPath, Env: env, Label: "syncing environment"},
		{Name: d.cfg.UVPath, Args: []string{"sync", "--group", "dev"}, Dir: repoPath, Env: env, Label: "syncing dev group"},
	}
	files := d.checkFiles(a)
	if len(files) == 0 {
		return cmds
	}

	mypyArgs := append([]string{"run", "mypy"}, files...)
	return append(cmds,
		execx.Command{Name: d.cfg.UVPath, Args: []string{"run", "ruff", "check", "."}, Dir: repoPath, Env: env, Label: "running ruff"},
		execx.Command{Name: d.cfg.UVPath, Args: mypyArgs, Dir: repoPath, Env: env, Label: "running mypy"},
		execx.Command{Name: d.cfg.UVPath, Args: []string{"run", "pytest"}, Dir: repoPath, Env: env, Label: "running pytest"},
	)
}

// commitCommands stage exactly the files the migration writes or expects
// the sync step to produce. They run with the inherited environment so the
// operator's git identity applies.
func commitCommands(repoPath, message string) []execx.Command {
	return []execx.Command{
		{Name: "git", Args: []string{"add", "pyproject.toml", ".python-version", "uv.lock"}, Dir: repoPath},
		{Name: "git", Args: []string{"commit", "-m", message}, Dir: repoPath},
	}
}
