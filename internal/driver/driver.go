// Package driver sequences a migration run: analyze, convert, clean,
// verify, commit, record. Every step either succeeds or stops the run;
// only the git commit and tracking update are best-effort.
package driver

import (
	"context"
	stderrors "errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"uplift/internal/analyzer"
	"uplift/internal/config"
	"uplift/internal/console"
	"uplift/internal/errors"
	"uplift/internal/execx"
	"uplift/internal/manifest"
	"uplift/internal/shared/util"
	"uplift/internal/tracking"
	"uplift/internal/transform"
)

type Driver struct {
	cfg      *config.Config
	runner   execx.Runner
	analyzer *analyzer.Analyzer
}

func New(cfg *config.Config, runner execx.Runner) (*Driver, error) {
	a, err := analyzer.New(cfg)
	if err != nil {
		return nil, err
	}
	return &Driver{cfg: cfg, runner: runner, analyzer: a}, nil
}

// Migrate converts one repository. It is safe to call on an
// already-migrated repo, which is detected and reported without touching
// anything.
func (d *Driver) Migrate(ctx context.Context, repoPath string) error {
	if _, err := os.Stat(repoPath); err != nil {
		return errors.AddContext(
			errors.New(errors.CodeNotFound, "repository does not exist"),
			errors.CtxPath, repoPath)
	}

	manifestPath := filepath.Join(repoPath, manifest.FileName)
	doc, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	a, err := d.analyzer.Analyze(repoPath, doc)
	if err != nil {
		return err
	}
	console.PrintAnalysis(a)

	if doc.IsMigrated() {
		console.Infof("repository is already migrated to uv")
		return nil
	}

	poetry, ok := doc.PoetryConfig()
	if !ok {
		return errors.AddContext(
			errors.New(errors.CodeInput, "no Poetry configuration found"),
			errors.CtxPath, manifestPath)
	}

	result := transform.Build(poetry, a, d.cfg)
	console.PrintWarnings(result.Warnings)
	if err := manifest.Save(manifestPath, result.Doc); err != nil {
		return err
	}
	slog.Info("manifest converted", "path", manifestPath)

	if err := d.pinInterpreter(repoPath, a); err != nil {
		return err
	}
	if err := cleanArtifacts(repoPath); err != nil {
		return err
	}

	if err := d.verify(ctx, repoPath, a); err != nil {
		return err
	}

	note := commitNote(a, d.cfg)
	d.commit(ctx, repoPath, note)
	d.record(repoPath, note)

	console.Successf("migration complete: %s", repoPath)
	return nil
}

func (d *Driver) verify(ctx context.Context, repoPath string, a *analyzer.Analysis) error {
	for _, cmd := range d.verificationCommands(repoPath, a) {
		if err := d.runner.Run(ctx, cmd); err != nil {
			var cmdErr *execx.CommandError
			if stderrors.As(err, &cmdErr) && cmdErr.Output != "" {
				console.Errorf("%s", cmdErr.Output)
			}
			verr := errors.Wrap(err, errors.CodeVerification, "verification failed")
			verr = errors.AddContext(verr, errors.CtxStage, "verify")
			return errors.AddContext(verr, errors.CtxCommand, cmd.String())
		}
	}
	return nil
}

// commit is best-effort. A repo without git history should still end up
// migrated on disk, so failures here warn instead of aborting.
func (d *Driver) commit(ctx context.Context, repoPath, note string) {
	for _, cmd := range commitCommands(repoPath, commitMessage(note)) {
		if err := d.runner.Run(ctx, cmd); err != nil {
			console.Warnf("git step failed: %v", err)
			slog.Warn("git step failed", "command", cmd.String(), "error", err)
			return
		}
	}
}

func (d *Driver) record(repoPath, note string) {
	if d.cfg.TrackingStore == "" {
		slog.Info("tracking disabled, skipping ledger update")
		return
	}

	store, err := tracking.Load(d.cfg.TrackingStore)
	if errors.IsCode(err, errors.CodeNotFound) {
		// The ledger is operator-owned and optional; a workspace without
		// one is still migratable.
		slog.Debug("tracking store not present", "path", d.cfg.TrackingStore)
		return
	}
	if err != nil {
		console.Warnf("tracking store unavailable: %v", err)
		return
	}

	abs, err := filepath.Abs(repoPath)
	if err != nil {
		abs = repoPath
	}
	rel, err := filepath.Rel(d.cfg.WorkspaceRoot, abs)
	if err != nil {
		rel = abs
	}

	if !store.Update(rel, tracking.StatusMigrated, note) {
		console.Infof("repository %s is not in the tracking store", rel)
		return
	}
	if err := store.Save(); err != nil {
		console.Warnf("tracking store update failed: %v", err)
	}
}

func (d *Driver) pinInterpreter(repoPath string, a *analyzer.Analysis) error {
	pin := interpreterPin(a.PythonVersions)
	path := filepath.Join(repoPath, ".python-version")
	if err := util.WriteFileWithDirs(path, []byte(pin+"\n"), 0o644); err != nil {
		werr := errors.Wrap(err, errors.CodeInternal, "writing interpreter pin")
		werr = errors.AddContext(werr, errors.CtxStage, "pin")
		return errors.AddContext(werr, errors.CtxPath, path)
	}
	return nil
}

// interpreterPin reduces the first declared constraint to major.minor,
// which is what the .python-version file expects.
func interpreterPin(versions []string) string {
	version := strings.TrimSpace(strings.ReplaceAll(versions[0], ">=", ""))
	parts := strings.Split(version, ".")
	if len(parts) < 2 {
		return version
	}
	return parts[0] + "." + parts[1]
}

func cleanArtifacts(repoPath string) error {
	lock := filepath.Join(repoPath, "poetry.lock")
	if err := os.Remove(lock); err != nil && !os.IsNotExist(err) {
		rerr := errors.Wrap(err, errors.CodeInternal, "removing poetry lock")
		rerr = errors.AddContext(rerr, errors.CtxStage, "clean")
		return errors.AddContext(rerr, errors.CtxPath, lock)
	}

	venv := filepath.Join(repoPath, ".venv")
	if err := os.RemoveAll(venv); err != nil {
		rerr := errors.Wrap(err, errors.CodeInternal, "removing virtualenv")
		rerr = errors.AddContext(rerr, errors.CtxStage, "clean")
		return errors.AddContext(rerr, errors.CtxPath, venv)
	}
	return nil
}
