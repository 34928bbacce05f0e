package driver

import (
	"fmt"
	"strings"

	"uplift/internal/analyzer"
	"uplift/internal/config"
)

// commitNote summarises what the migration changed beyond the plain
// conversion. The order is stable so repeated runs over the same repo
// produce the same commit message.
func commitNote(a *analyzer.Analysis, cfg *config.Config) string {
	var notes []string
	if len(a.ModuleConflicts) > 0 {
		notes = append(notes, fmt.Sprintf("excluded %s/ directory", cfg.ConflictDir))
	}
	if len(a.MissingStubs) > 0 {
		notes = append(notes, "added type stubs: "+strings.Join(a.MissingStubs, ", "))
	}
	if a.HasAsync {
		notes = append(notes, "configured async mypy checks")
	}
	if a.HasAnnotations {
		notes = append(notes, "enabled strict mypy mode")
	}
	if len(notes) == 0 {
		return "converted with standard configuration"
	}
	return strings.Join(notes, "; ")
}

func commitMessage(note string) string {
	return "chore: migrate from poetry to uv\n\n" + note
}
