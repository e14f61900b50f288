package run

import (
	"fmt"

	"github.com/goccy/go-yaml/ast"
	"github.com/goccy/go-yaml/parser"
)

const usesKey = "uses"

// ScanUses parses a workflow file and collects every action reference in
// document order. The workflow schema isn't assumed, so uses fields are found
// at any nesting depth. An empty result means the file has nothing to pin.
func ScanUses(content []byte) ([]*ActionReference, error) {
	file, err := parser.ParseBytes(content, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parse a workflow file as YAML: %w", err)
	}
	refs := []*ActionReference{}
	for _, doc := range file.Docs {
		collectUses(doc.Body, &refs)
	}
	return refs, nil
}

func collectUses(node ast.Node, refs *[]*ActionReference) {
	switch n := node.(type) {
	case *ast.MappingNode:
		for _, value := range n.Values {
			collectUses(value, refs)
		}
	case *ast.MappingValueNode:
		if k, ok := n.Key.(*ast.StringNode); ok && k.Value == usesKey {
			if v, ok := n.Value.(*ast.StringNode); ok {
				if a := parseUses(v.Value); a != nil {
					a.Line = v.GetToken().Position.Line
					*refs = append(*refs, a)
				}
			}
		}
		collectUses(n.Value, refs)
	case *ast.SequenceNode:
		for _, value := range n.Values {
			collectUses(value, refs)
		}
	}
}
