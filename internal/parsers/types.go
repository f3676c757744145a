package parsers

import "sort"

// Dialect identifies the grammar variant needed to parse a source text.
type Dialect string

const (
	// DialectTS is plain TypeScript (.ts files and Vue script blocks).
	DialectTS Dialect = "typescript"
	// DialectTSX is JSX-flavored TypeScript (.tsx files and lang="tsx" blocks).
	DialectTSX Dialect = "tsx"
	// DialectVue is a Vue single-file component with embedded script regions.
	DialectVue Dialect = "vue"
)

// Callable is one exported function-like declaration. Signature is a
// single-line rendering of the form "name(params)" or
// "name(params) : ReturnType", where the return type portion is the verbatim
// source text of the annotation including its leading separator.
type Callable struct {
	Name      string
	Signature string
	Line      int // 1-based row of the declaration's name
}

// TypeDef is one exported interface or type alias. Bodies are not captured.
type TypeDef struct {
	Name string
	Line int // 1-based row of the declaration's name
}

// Exports holds everything extracted from one source text. Both slices are
// always sorted ascending by (Line, Name), regardless of declaration order
// in the source and regardless of how many Vue script regions contributed.
type Exports struct {
	Callables []Callable
	Types     []TypeDef
}

// Sort restores the (Line, Name) ordering invariant on both sequences.
func (e *Exports) Sort() {
	sort.Slice(e.Callables, func(i, j int) bool {
		if e.Callables[i].Line != e.Callables[j].Line {
			return e.Callables[i].Line < e.Callables[j].Line
		}
		return e.Callables[i].Name < e.Callables[j].Name
	})
	sort.Slice(e.Types, func(i, j int) bool {
		if e.Types[i].Line != e.Types[j].Line {
			return e.Types[i].Line < e.Types[j].Line
		}
		return e.Types[i].Name < e.Types[j].Name
	})
}
