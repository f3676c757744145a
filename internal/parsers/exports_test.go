package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the export extractor:
// - Extract exported function declarations with full signatures
// - Extract exported const arrow functions and function expressions
// - Parenthesize the single-bare-parameter arrow shorthand
// - Ignore re-export clauses and namespace re-exports
// - Ignore non-exported declarations and let/var bindings
// - Extract exported interfaces and type aliases as type definitions
// - Skip unrecognized declaration shapes (classes, enums, defaults) silently
// - Keep output sorted by (line, name) regardless of declaration order
// - Produce identical output across repeated runs

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	provider, err := NewProvider()
	require.NoError(t, err)
	t.Cleanup(provider.Close)
	return provider
}

func extractTS(t *testing.T, source string) *Exports {
	t.Helper()
	exports, err := newTestProvider(t).Extract([]byte(source), DialectTS)
	require.NoError(t, err)
	return exports
}

func TestExtract_FunctionDeclaration(t *testing.T) {
	t.Parallel()

	exports := extractTS(t, "export function greet(name: string): string { return name }")

	require.Len(t, exports.Callables, 1)
	assert.Equal(t, "greet", exports.Callables[0].Name)
	assert.Equal(t, "greet(name: string) : string", exports.Callables[0].Signature)
	assert.Equal(t, 1, exports.Callables[0].Line)
	assert.Empty(t, exports.Types)
}

func TestExtract_FunctionWithoutReturnType(t *testing.T) {
	t.Parallel()

	exports := extractTS(t, "export function ping(host: string) { }")

	require.Len(t, exports.Callables, 1)
	assert.Equal(t, "ping(host: string)", exports.Callables[0].Signature)
}

func TestExtract_ConstArrowFunction(t *testing.T) {
	t.Parallel()

	exports := extractTS(t, "export const sum = (a: number, b: number): number => a + b;")

	require.Len(t, exports.Callables, 1)
	assert.Equal(t, "sum", exports.Callables[0].Name)
	assert.Equal(t, "sum(a: number, b: number) : number", exports.Callables[0].Signature)
}

func TestExtract_BareArrowParameterIsParenthesized(t *testing.T) {
	t.Parallel()

	exports := extractTS(t, "export const id = x => x;")

	require.Len(t, exports.Callables, 1)
	assert.Equal(t, "id(x)", exports.Callables[0].Signature)
}

func TestExtract_ConstFunctionExpression(t *testing.T) {
	t.Parallel()

	exports := extractTS(t, "export const handler = function (event: Event): void { };")

	require.Len(t, exports.Callables, 1)
	assert.Equal(t, "handler", exports.Callables[0].Name)
	assert.Equal(t, "handler(event: Event) : void", exports.Callables[0].Signature)
}

func TestExtract_MultipleDeclaratorsInOneConst(t *testing.T) {
	t.Parallel()

	source := "export const first = () => 1, second = () => 2, three = 3;"
	exports := extractTS(t, source)

	require.Len(t, exports.Callables, 2)
	assert.Equal(t, "first", exports.Callables[0].Name)
	assert.Equal(t, "second", exports.Callables[1].Name)
}

func TestExtract_IgnoresReExports(t *testing.T) {
	t.Parallel()

	source := `
function internalFn() {}
export { internalFn }
export { externalFn } from "./dep"
export * as ns from "./other"
`
	exports := extractTS(t, source)

	assert.Empty(t, exports.Callables)
	assert.Empty(t, exports.Types)
}

func TestExtract_IgnoresLetAndVarBindings(t *testing.T) {
	t.Parallel()

	source := `
export let mutable = () => 1;
export var legacy = () => 2;
`
	exports := extractTS(t, source)

	assert.Empty(t, exports.Callables)
}

func TestExtract_IgnoresNonCallableConstBindings(t *testing.T) {
	t.Parallel()

	source := `
export const answer = 42;
export const { a, b } = pair;
export const klass = class {};
`
	exports := extractTS(t, source)

	assert.Empty(t, exports.Callables)
}

func TestExtract_TypeDefinitions(t *testing.T) {
	t.Parallel()

	source := `export interface User {
  id: string
}
export type UserId = string;
`
	exports := extractTS(t, source)

	assert.Empty(t, exports.Callables)
	require.Len(t, exports.Types, 2)
	assert.Equal(t, "User", exports.Types[0].Name)
	assert.Equal(t, 1, exports.Types[0].Line)
	assert.Equal(t, "UserId", exports.Types[1].Name)
	assert.Equal(t, 4, exports.Types[1].Line)
}

func TestExtract_SkipsUnrecognizedShapes(t *testing.T) {
	t.Parallel()

	source := `
export class Service {}
export enum Color { Red, Green }
export default function main() {}
`
	exports := extractTS(t, source)

	assert.Empty(t, exports.Callables)
	assert.Empty(t, exports.Types)
}

func TestExtract_NestedExportsNotCollected(t *testing.T) {
	t.Parallel()

	source := `namespace Internal {
  export function hidden(): void { }
}
`
	exports := extractTS(t, source)

	assert.Empty(t, exports.Callables)
}

func TestExtract_SortedByLineThenName(t *testing.T) {
	t.Parallel()

	source := `export const zebra = () => 1; export const apple = () => 2;
export function aardvark(): void { }
`
	exports := extractTS(t, source)

	require.Len(t, exports.Callables, 3)
	// Line 1 ties break on name; line 2 follows.
	assert.Equal(t, "apple", exports.Callables[0].Name)
	assert.Equal(t, "zebra", exports.Callables[1].Name)
	assert.Equal(t, "aardvark", exports.Callables[2].Name)
}

func TestExtract_OrderIndependence(t *testing.T) {
	t.Parallel()

	provider := newTestProvider(t)

	a := "export function one(): void { }\nexport function two(): void { }\n"
	b := "export function two(): void { }\nexport function one(): void { }\n"

	exportsA, err := provider.Extract([]byte(a), DialectTS)
	require.NoError(t, err)
	exportsB, err := provider.Extract([]byte(b), DialectTS)
	require.NoError(t, err)

	// Same lines, swapped declarations: sorted output names match.
	require.Len(t, exportsA.Callables, 2)
	require.Len(t, exportsB.Callables, 2)
	assert.Equal(t, exportsA.Callables[0].Name, exportsB.Callables[0].Name)
	assert.Equal(t, exportsA.Callables[1].Name, exportsB.Callables[1].Name)
}

func TestExtract_Deterministic(t *testing.T) {
	t.Parallel()

	provider := newTestProvider(t)
	source := []byte(`export function greet(name: string): string { return name }
export const sum = (a: number, b: number): number => a + b;
export interface User { id: string }
`)

	first, err := provider.Extract(source, DialectTS)
	require.NoError(t, err)
	second, err := provider.Extract(source, DialectTS)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExtract_VerbatimParameterText(t *testing.T) {
	t.Parallel()

	source := "export function configure(options: {\n  retries: number\n}): void { }"
	exports := extractTS(t, source)

	require.Len(t, exports.Callables, 1)
	// Parameter text is preserved verbatim, newlines included; only the
	// renderer collapses whitespace.
	assert.Contains(t, exports.Callables[0].Signature, "{\n  retries: number\n}")
}
