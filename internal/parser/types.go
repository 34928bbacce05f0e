package parser

// File is the per-source-file analysis result. It records only what the
// migration pipeline consumes: imported modules and the two syntax flags
// that drive type-checker configuration.
type File struct {
	Path           string
	Imports        []Import
	HasAsync       bool
	HasAnnotations bool
}

type Import struct {
	Module     string // top-level dotted name, leading dots stripped
	IsRelative bool
}

// Root returns the first component of the imported module path.
func (i Import) Root() string {
	for idx := 0; idx < len(i.Module); idx++ {
		if i.Module[idx] == '.' {
			return i.Module[:idx]
		}
	}
	return i.Module
}
