// Package console renders operator-facing status lines. Logging stays on
// slog; this is only the human summary printed during a migration run.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"uplift/internal/analyzer"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	headerStyle  = lipgloss.NewStyle().Bold(true).Underline(true)
)

// Output is swapped for a buffer in tests.
var Output io.Writer = os.Stdout

func Successf(format string, args ...any) {
	fmt.Fprintln(Output, successStyle.Render("✓")+" "+fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	fmt.Fprintln(Output, errorStyle.Render("✗")+" "+fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	fmt.Fprintln(Output, warnStyle.Render("!")+" "+fmt.Sprintf(format, args...))
}

func Infof(format string, args ...any) {
	fmt.Fprintln(Output, infoStyle.Render("·")+" "+fmt.Sprintf(format, args...))
}

// PrintWarnings emits one warning line per advisory, skipping the block
// entirely when there are none.
func PrintWarnings(warnings []string) {
	for _, w := range warnings {
		Warnf("%s", w)
	}
}

// PrintAnalysis summarises what the analyzer found before the manifest is
// rewritten, so the operator can see why the generated configuration looks
// the way it does.
func PrintAnalysis(a *analyzer.Analysis) {
	fmt.Fprintln(Output, headerStyle.Render("Repository analysis"))

	Infof("source files: %d", len(a.SourceFiles))
	Infof("interpreter constraints: %s", strings.Join(a.PythonVersions, ", "))

	if a.HasAsync {
		Infof("async code detected")
	}
	if a.HasAnnotations {
		Infof("type annotations detected")
	}
	if a.HasLongLines {
		Infof("lines over the length limit detected")
	}

	for _, c := range a.ModuleConflicts {
		Warnf("module name conflict: %s shadowed by %s", c.Module, c.Path)
	}
	if len(a.MissingStubs) > 0 {
		Warnf("packages without type stubs: %s", strings.Join(a.MissingStubs, ", "))
	}
	for _, d := range a.DuplicateDeps {
		Warnf("duplicate dependency: %s", d)
	}
	for _, iv := range a.InvalidVersions {
		Warnf("invalid version constraint on %s: %q", iv.Name, iv.Raw)
	}
}
