package contextmap

import (
	"time"

	"contextmap/internal/parsers"
	"contextmap/internal/walker"
)

// FileResult is the outcome of extracting one source file. A failing file
// carries its error text and an empty Exports; failures never affect any
// other file's result.
type FileResult struct {
	Path       string // slash-separated path relative to the scan root
	Exports    parsers.Exports
	ParseError string // "" on success
}

// Summary aggregates counters across one run.
type Summary struct {
	Scanned           int
	Parsed            int
	ParseFailed       int
	ExportedCallables int
	ExportedTypes     int
}

// RunOutput is everything one generation run produced, handed to the
// renderer as a value.
type RunOutput struct {
	RunID       string
	RootPath    string
	GeneratedAt time.Time
	Entries     []walker.Entry
	Summary     Summary
	Files       []FileResult
}

// ProgressReporter receives generation progress callbacks. Implementations
// must tolerate being called from a single goroutine only.
type ProgressReporter interface {
	OnDiscoveryComplete(totalFiles int)
	OnFileProcessed(relPath string)
	OnComplete(summary Summary)
}

// NopProgress discards all progress callbacks.
type NopProgress struct{}

func (NopProgress) OnDiscoveryComplete(int) {}
func (NopProgress) OnFileProcessed(string)  {}
func (NopProgress) OnComplete(Summary)      {}
