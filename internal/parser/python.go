package parser

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

type PythonExtractor struct{}

func (e *PythonExtractor) Extract(root *sitter.Node, source []byte, filePath string) (*File, error) {
	file := &File{
		Path: filePath,
	}

	e.walk(root, source, file)

	return file, nil
}

func (e *PythonExtractor) walk(node *sitter.Node, source []byte, file *File) {
	switch node.Kind() {
	case "import_statement":
		e.extractImport(node, source, file)
	case "import_from_statement":
		e.extractFromImport(node, source, file)
	case "function_definition":
		if e.hasAsyncKeyword(node) {
			file.HasAsync = true
		}
		if node.ChildByFieldName("return_type") != nil {
			file.HasAnnotations = true
		}
	case "with_statement", "for_statement":
		if e.hasAsyncKeyword(node) {
			file.HasAsync = true
		}
	case "assignment":
		// "x: int = 1" carries a type field; plain assignments do not.
		if node.ChildByFieldName("type") != nil {
			file.HasAnnotations = true
		}
	}

	// Recurse
	for i := uint(0); i < node.ChildCount(); i++ {
		e.walk(node.Child(i), source, file)
	}
}

func (e *PythonExtractor) extractImport(node *sitter.Node, source []byte, file *File) {
	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "dotted_name", "identifier":
			file.Imports = append(file.Imports, Import{
				Module: e.getText(child, source),
			})
		case "aliased_import":
			name := child.ChildByFieldName("name")
			if name != nil {
				file.Imports = append(file.Imports, Import{
					Module: e.getText(name, source),
				})
			}
		}
	}
}

func (e *PythonExtractor) extractFromImport(node *sitter.Node, source []byte, file *File) {
	var module string
	isRelative := false

	for i := uint(0); i < node.ChildCount(); i++ {
		child := node.Child(i)

		switch child.Kind() {
		case "relative_import":
			isRelative = true
			module = strings.TrimLeft(e.getText(child, source), ".")

		case "dotted_name", "identifier":
			if module == "" && !isRelative {
				module = e.getText(child, source)
			}
		}

		// The module name precedes the "import" keyword; anything after
		// it is the imported item list, which migration does not need.
		if child.Kind() == "import" {
			break
		}
	}

	if module == "" {
		return
	}
	file.Imports = append(file.Imports, Import{
		Module:     module,
		IsRelative: isRelative,
	})
}

func (e *PythonExtractor) hasAsyncKeyword(node *sitter.Node) bool {
	for i := uint(0); i < node.ChildCount(); i++ {
		if node.Child(i).Kind() == "async" {
			return true
		}
	}
	return false
}

func (e *PythonExtractor) getText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
