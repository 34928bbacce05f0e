package driver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"uplift/internal/analyzer"
	"uplift/internal/config"
)

func TestCommitNote(t *testing.T) {
	cfg := config.Default()

	t.Run("default note", func(t *testing.T) {
		note := commitNote(&analyzer.Analysis{}, cfg)
		assert.Equal(t, "converted with standard configuration", note)
	})

	t.Run("stable order", func(t *testing.T) {
		a := &analyzer.Analysis{
			ModuleConflicts: []analyzer.ModuleConflict{{Module: "x", Path: "before/x.py"}},
			MissingStubs:    []string{"requests", "yaml"},
			HasAsync:        true,
			HasAnnotations:  true,
		}
		note := commitNote(a, cfg)
		assert.Equal(t,
			"excluded before/ directory; "+
				"added type stubs: requests, yaml; "+
				"configured async mypy checks; "+
				"enabled strict mypy mode",
			note)
	})
}

func TestInterpreterPin(t *testing.T) {
	assert.Equal(t, "3.12", interpreterPin([]string{">=3.12", "<4.0"}))
	assert.Equal(t, "3.11", interpreterPin([]string{">=3.11.4"}))
	assert.Equal(t, "3", interpreterPin([]string{"3"}))
}
