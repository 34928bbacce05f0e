package parser

import (
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/gobwas/glob"
)

// Scanner walks a repository and yields the files the analysis covers.
// Directories matching an exclude pattern are pruned wholesale; matching
// files are skipped individually. Language selection is the parser's
// concern, not the scanner's.
type Scanner struct {
	dirGlobs  []glob.Glob
	fileGlobs []glob.Glob
}

func NewScanner(excludeDirs, excludeFiles []string) (*Scanner, error) {
	s := &Scanner{}

	for _, p := range excludeDirs {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude dir pattern %q: %w", p, err)
		}
		s.dirGlobs = append(s.dirGlobs, g)
	}

	for _, p := range excludeFiles {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude file pattern %q: %w", p, err)
		}
		s.fileGlobs = append(s.fileGlobs, g)
	}

	return s, nil
}

// Scan returns the absolute paths of all non-excluded files under root,
// in lexical walk order.
func (s *Scanner) Scan(root string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		base := filepath.Base(path)
		if d.IsDir() {
			for _, g := range s.dirGlobs {
				if g.Match(base) {
					return filepath.SkipDir
				}
			}
			return nil
		}

		for _, g := range s.fileGlobs {
			if g.Match(base) {
				return nil
			}
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}
