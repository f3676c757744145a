package parsers

import "strings"

// ScriptRegion is one inline <script> block found in a Vue single-file
// component. LineOffset counts the newlines in the component text strictly
// before the region's content, and is added to every line number the nested
// extraction produces.
type ScriptRegion struct {
	Content    string
	LineOffset int
	Dialect    Dialect
}

const (
	openTag  = "<script"
	closeTag = "</script"
)

// scriptRegions scans raw component text for inline <script> blocks, in
// source order. Blocks with a src= attribute reference an external file and
// are skipped entirely. A block whose lang attribute is "tsx" parses as
// JSX-flavored TypeScript; everything else parses as plain TypeScript.
//
// The scanner is a plain substring lexer over the raw text, with no
// awareness of string literals or comments elsewhere in the document; a
// structurally similar substring anywhere can produce a false region
// boundary. Known fragility, accepted. An opening tag with no `>` or no
// matching closing tag ends the scan silently with whatever regions were
// found before the truncation point.
func scriptRegions(text string) []ScriptRegion {
	var regions []ScriptRegion
	lowered := strings.ToLower(text)

	pos := 0
	for {
		open := strings.Index(lowered[pos:], openTag)
		if open < 0 {
			return regions
		}
		open += pos

		tagEnd := strings.Index(lowered[open:], ">")
		if tagEnd < 0 {
			return regions
		}
		tagEnd += open

		attrs := text[open+len(openTag) : tagEnd]
		contentStart := tagEnd + 1

		closing := strings.Index(lowered[contentStart:], closeTag)
		if closing < 0 {
			return regions
		}
		closing += contentStart
		pos = closing + len(closeTag)

		if hasSrcAttribute(attrs) {
			continue
		}

		regions = append(regions, ScriptRegion{
			Content:    text[contentStart:closing],
			LineOffset: strings.Count(text[:contentStart], "\n"),
			Dialect:    regionDialect(attrs),
		})
	}
}

// hasSrcAttribute reports whether the opening tag references an external
// script file, which this tool does not resolve.
func hasSrcAttribute(attrs string) bool {
	for _, field := range strings.Fields(attrs) {
		if strings.HasPrefix(strings.ToLower(field), "src=") {
			return true
		}
	}
	return false
}

// regionDialect classifies a script block from its lang attribute. The
// value comparison is case-insensitive and tolerates quoted and unquoted
// forms.
func regionDialect(attrs string) Dialect {
	for _, field := range strings.Fields(attrs) {
		if !strings.HasPrefix(strings.ToLower(field), "lang=") {
			continue
		}
		value := strings.Trim(field[len("lang="):], `"'`)
		if strings.EqualFold(value, "tsx") {
			return DialectTSX
		}
	}
	return DialectTS
}
