package parsers

import (
	"errors"
	"fmt"

	sitter "github.com/tree-sitter/go-tree-sitter"
	typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// ErrParse reports that a source text contains at least one syntax error.
// Extraction is fail-fast: a tree with any error yields no results at all,
// even for exports declared before the first error.
var ErrParse = errors.New("syntax parse error")

// Provider owns one tree-sitter parser per grammar. The parsers carry
// mutable internal state between a call start and its return, so a Provider
// must not be invoked concurrently; create one Provider per worker when
// extracting many files in parallel.
type Provider struct {
	ts  *sitter.Parser
	tsx *sitter.Parser
}

// NewProvider loads the TypeScript and TSX grammars. A failure here is
// fatal for the whole run: no file can be processed without the grammars.
func NewProvider() (*Provider, error) {
	ts := sitter.NewParser()
	if err := ts.SetLanguage(sitter.NewLanguage(typescript.LanguageTypescript())); err != nil {
		ts.Close()
		return nil, fmt.Errorf("failed to load typescript grammar: %w", err)
	}

	tsx := sitter.NewParser()
	if err := tsx.SetLanguage(sitter.NewLanguage(typescript.LanguageTSX())); err != nil {
		ts.Close()
		tsx.Close()
		return nil, fmt.Errorf("failed to load tsx grammar: %w", err)
	}

	return &Provider{ts: ts, tsx: tsx}, nil
}

// Close releases the underlying parsers.
func (p *Provider) Close() {
	p.ts.Close()
	p.tsx.Close()
}

// parserFor selects the grammar for a non-composite dialect. Vue never
// reaches here: composite files are split into regions first.
func (p *Provider) parserFor(dialect Dialect) *sitter.Parser {
	if dialect == DialectTSX {
		return p.tsx
	}
	return p.ts
}

// nodeText slices the verbatim source text covered by a node.
func nodeText(node *sitter.Node, source []byte) string {
	return string(source[node.StartByte():node.EndByte()])
}
