// Package markdown renders a RunOutput into the human-readable context map
// document. Formatting concerns live here: signatures are whitespace-
// collapsed for display, while the extraction engine keeps verbatim text.
package markdown

import (
	"fmt"
	"strings"
	"time"

	"contextmap/internal/contextmap"
)

// Render produces the full Markdown document for one run.
func Render(output *contextmap.RunOutput) string {
	var lines []string

	lines = append(lines,
		"# Context Map",
		"",
		fmt.Sprintf("Generated: %s", output.GeneratedAt.Format(time.RFC3339)),
		fmt.Sprintf("Run: `%s`", output.RunID),
		fmt.Sprintf("Root: `%s`", output.RootPath),
		"",
	)

	lines = append(lines, renderSummary(output.Summary)...)
	lines = append(lines, renderLayout(output)...)
	lines = append(lines, renderCallables(output)...)
	lines = append(lines, renderTypes(output)...)
	lines = append(lines, renderParseErrors(output)...)

	return strings.Join(lines, "\n") + "\n"
}

func renderSummary(summary contextmap.Summary) []string {
	return []string{
		"## Summary",
		fmt.Sprintf("- Scanned files: %d", summary.Scanned),
		fmt.Sprintf("- Parsed files: %d", summary.Parsed),
		fmt.Sprintf("- Parse errors: %d", summary.ParseFailed),
		fmt.Sprintf("- Exported functions: %d", summary.ExportedCallables),
		fmt.Sprintf("- Exported types: %d", summary.ExportedTypes),
		"",
	}
}

func renderLayout(output *contextmap.RunOutput) []string {
	if len(output.Entries) == 0 {
		return nil
	}

	lines := []string{"## Repository Layout", "```"}
	for _, entry := range output.Entries {
		indent := strings.Repeat("  ", entry.Depth-1)
		name := entry.RelPath
		if idx := strings.LastIndex(name, "/"); idx >= 0 {
			name = name[idx+1:]
		}
		if entry.IsDir {
			name += "/"
		}
		lines = append(lines, indent+name)
	}
	return append(lines, "```", "")
}

func renderCallables(output *contextmap.RunOutput) []string {
	lines := []string{"## Exported Functions"}

	empty := true
	for _, file := range output.Files {
		if len(file.Exports.Callables) == 0 {
			continue
		}
		empty = false

		lines = append(lines, "", fmt.Sprintf("### `%s`", file.Path))
		for _, callable := range file.Exports.Callables {
			lines = append(lines, fmt.Sprintf("- `%s` (`%s:%d`)",
				collapseWhitespace(callable.Signature), file.Path, callable.Line))
		}
	}

	if empty {
		lines = append(lines, "No exported functions found.")
	}
	return append(lines, "")
}

func renderTypes(output *contextmap.RunOutput) []string {
	lines := []string{"## Exported Types"}

	empty := true
	for _, file := range output.Files {
		if len(file.Exports.Types) == 0 {
			continue
		}
		empty = false

		lines = append(lines, "", fmt.Sprintf("### `%s`", file.Path))
		for _, typeDef := range file.Exports.Types {
			lines = append(lines, fmt.Sprintf("- `%s` (`%s:%d`)", typeDef.Name, file.Path, typeDef.Line))
		}
	}

	if empty {
		lines = append(lines, "No exported types found.")
	}
	return append(lines, "")
}

func renderParseErrors(output *contextmap.RunOutput) []string {
	var lines []string
	for _, file := range output.Files {
		if file.ParseError == "" {
			continue
		}
		if lines == nil {
			lines = []string{"## Parse Errors"}
		}
		lines = append(lines, fmt.Sprintf("- `%s`: %s", file.Path, file.ParseError))
	}
	if lines != nil {
		lines = append(lines, "")
	}
	return lines
}

// collapseWhitespace flattens multi-line signatures to a single line with
// single spaces. Extraction preserves verbatim parameter text; only the
// rendering collapses it.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
