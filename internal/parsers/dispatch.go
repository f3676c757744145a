package parsers

// Extract parses one source text with the grammar its dialect requires and
// collects the exported callables and type definitions. Vue sources are
// split into script regions first; each region is extracted with its own
// dialect and the merged result is re-sorted by (Line, Name).
//
// Extraction is fail-fast: any syntax error in the tree (or in any one
// region's tree) returns ErrParse with no partial results. All returned
// values are fresh per call; nothing is cached across calls.
func (p *Provider) Extract(source []byte, dialect Dialect) (*Exports, error) {
	if dialect == DialectVue {
		return p.extractComposite(string(source))
	}

	tree := p.parserFor(dialect).Parse(source, nil)
	if tree == nil {
		return nil, ErrParse
	}
	defer tree.Close()

	if tree.RootNode().HasError() {
		return nil, ErrParse
	}

	return extractExports(tree.RootNode(), source), nil
}

// extractComposite runs the region locator, dispatches each region through
// Extract with the region's own dialect, and merges the results with line
// numbers rewritten into whole-file coordinates. The first failing region
// aborts the whole file; results from earlier regions are discarded.
func (p *Provider) extractComposite(text string) (*Exports, error) {
	merged := &Exports{}

	for _, region := range scriptRegions(text) {
		exports, err := p.Extract([]byte(region.Content), region.Dialect)
		if err != nil {
			return nil, err
		}

		for _, callable := range exports.Callables {
			callable.Line += region.LineOffset
			merged.Callables = append(merged.Callables, callable)
		}
		for _, typeDef := range exports.Types {
			typeDef.Line += region.LineOffset
			merged.Types = append(merged.Types, typeDef)
		}
	}

	merged.Sort()
	return merged, nil
}
