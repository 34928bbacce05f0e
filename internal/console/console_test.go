package console

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"uplift/internal/analyzer"
)

func TestPrintAnalysis(t *testing.T) {
	var buf bytes.Buffer
	Output = &buf
	t.Cleanup(func() { Output = os.Stdout })

	a := &analyzer.Analysis{
		SourceFiles:    []string{"app/main.py", "app/util.py"},
		PythonVersions: []string{">=3.12"},
		HasAsync:       true,
		MissingStubs:   []string{"requests"},
		DuplicateDeps:  []string{"click"},
		InvalidVersions: []analyzer.InvalidConstraint{
			{Name: "flask", Raw: ">=bad"},
		},
		ModuleConflicts: []analyzer.ModuleConflict{
			{Module: "shared", Path: "before/shared.py"},
		},
	}
	PrintAnalysis(a)

	out := buf.String()
	assert.Contains(t, out, "source files: 2")
	assert.Contains(t, out, ">=3.12")
	assert.Contains(t, out, "async code detected")
	assert.NotContains(t, out, "type annotations detected")
	assert.Contains(t, out, "requests")
	assert.Contains(t, out, "duplicate dependency: click")
	assert.Contains(t, out, `invalid version constraint on flask: ">=bad"`)
	assert.Contains(t, out, "before/shared.py")
}

func TestPrintWarnings(t *testing.T) {
	var buf bytes.Buffer
	Output = &buf
	t.Cleanup(func() { Output = os.Stdout })

	PrintWarnings(nil)
	assert.Empty(t, buf.String())

	PrintWarnings([]string{"one", "two"})
	assert.Contains(t, buf.String(), "one")
	assert.Contains(t, buf.String(), "two")
}
