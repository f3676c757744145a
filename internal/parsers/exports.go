package parsers

import (
	"strings"

	sitter "github.com/tree-sitter/go-tree-sitter"
)

// extractExports walks the top-level statements of a parsed tree and
// collects exported callables and type definitions. Exports nested inside
// blocks or functions are not considered. Declaration shapes outside the
// recognized set (classes, enums, default exports, ...) are skipped
// silently rather than guessed at.
func extractExports(root *sitter.Node, source []byte) *Exports {
	exports := &Exports{}

	for i := uint(0); i < root.NamedChildCount(); i++ {
		stmt := root.NamedChild(i)
		if stmt.Kind() != "export_statement" {
			continue
		}

		if isDefaultExport(stmt, source) {
			continue
		}

		decl := exportedDeclaration(stmt)
		if decl == nil {
			continue
		}

		switch decl.Kind() {
		case "function_declaration":
			if callable, ok := functionCallable(decl, source); ok {
				exports.Callables = append(exports.Callables, callable)
			}
		case "lexical_declaration":
			if isConstDeclaration(decl, source) {
				exports.Callables = append(exports.Callables, constCallables(decl, source)...)
			}
		case "interface_declaration", "type_alias_declaration":
			if name := decl.ChildByFieldName("name"); name != nil {
				exports.Types = append(exports.Types, TypeDef{
					Name: nodeText(name, source),
					Line: int(name.StartPosition().Row) + 1,
				})
			}
		}
	}

	exports.Sort()
	return exports
}

// isDefaultExport reports whether the statement is a default export, which
// binds no usable name and is skipped. The `default` keyword appears as an
// anonymous child between `export` and the declaration.
func isDefaultExport(stmt *sitter.Node, source []byte) bool {
	for i := uint(0); i < stmt.ChildCount(); i++ {
		child := stmt.Child(i)
		if !child.IsNamed() && nodeText(child, source) == "default" {
			return true
		}
	}
	return false
}

// exportedDeclaration returns the declaration carried by an export
// statement, or nil when the statement is a re-export form
// (`export { x }`, `export * as ns`) that contributes nothing.
func exportedDeclaration(stmt *sitter.Node) *sitter.Node {
	for i := uint(0); i < stmt.NamedChildCount(); i++ {
		child := stmt.NamedChild(i)
		switch child.Kind() {
		case "export_clause", "namespace_export":
			continue
		}
		return child
	}
	return nil
}

// functionCallable builds a Callable from an exported function declaration.
func functionCallable(node *sitter.Node, source []byte) (Callable, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Callable{}, false
	}

	name := nodeText(nameNode, source)
	parameters := "()"
	if params := node.ChildByFieldName("parameters"); params != nil {
		parameters = nodeText(params, source)
	}

	return Callable{
		Name:      name,
		Signature: buildSignature(name, parameters, returnTypeText(node, source)),
		Line:      int(nameNode.StartPosition().Row) + 1,
	}, true
}

// isConstDeclaration reports whether a lexical declaration binds with
// `const`. let/var declarations are never descended into.
func isConstDeclaration(node *sitter.Node, source []byte) bool {
	first := node.Child(0)
	if first == nil {
		return false
	}
	return strings.TrimSpace(nodeText(first, source)) == "const"
}

// constCallables emits one Callable per declarator that binds a simple
// identifier to an arrow function or function expression. Destructuring
// patterns and non-function initializers are skipped without error.
func constCallables(node *sitter.Node, source []byte) []Callable {
	var out []Callable

	for i := uint(0); i < node.NamedChildCount(); i++ {
		declarator := node.NamedChild(i)
		if declarator.Kind() != "variable_declarator" {
			continue
		}

		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil || nameNode.Kind() != "identifier" {
			continue
		}

		value := declarator.ChildByFieldName("value")
		if value == nil {
			continue
		}

		name := nodeText(nameNode, source)

		switch value.Kind() {
		case "arrow_function":
			out = append(out, Callable{
				Name:      name,
				Signature: buildSignature(name, arrowParameters(value, source), returnTypeText(value, source)),
				Line:      int(nameNode.StartPosition().Row) + 1,
			})
		case "function_expression", "function":
			parameters := "()"
			if params := value.ChildByFieldName("parameters"); params != nil {
				parameters = nodeText(params, source)
			}
			out = append(out, Callable{
				Name:      name,
				Signature: buildSignature(name, parameters, returnTypeText(value, source)),
				Line:      int(nameNode.StartPosition().Row) + 1,
			})
		}
	}

	return out
}

// arrowParameters returns the parameter list of an arrow function,
// parenthesizing the single-bare-parameter shorthand (`x => x`).
func arrowParameters(node *sitter.Node, source []byte) string {
	params := node.ChildByFieldName("parameters")
	if params == nil {
		params = node.ChildByFieldName("parameter")
	}
	if params == nil {
		return "()"
	}

	raw := nodeText(params, source)
	if strings.HasPrefix(strings.TrimSpace(raw), "(") {
		return raw
	}
	return "(" + raw + ")"
}

// returnTypeText returns the verbatim trimmed return-type annotation of a
// function-like node, including its leading separator token, or "" when the
// declaration carries no annotation.
func returnTypeText(node *sitter.Node, source []byte) string {
	returnType := node.ChildByFieldName("return_type")
	if returnType == nil {
		return ""
	}
	return strings.TrimSpace(nodeText(returnType, source))
}

func buildSignature(name, parameters, returnType string) string {
	if returnType == "" {
		return name + parameters
	}
	return name + parameters + " " + returnType
}
