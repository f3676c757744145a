package contextmap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"contextmap/internal/cache"
	"contextmap/internal/config"
	"contextmap/internal/parsers"
	"contextmap/internal/walker"
)

// Generator runs the scan-extract-summarize pipeline for one root
// directory. It owns a tree-sitter provider and, when enabled, an
// extraction cache; neither is safe for concurrent use, so a Generator
// serves one Generate call at a time.
type Generator struct {
	cfg      *config.Config
	root     string
	provider *parsers.Provider
	cache    *cache.Cache // nil when caching is disabled or unavailable
	progress ProgressReporter
}

// New validates the root, loads the grammars, and opens the extraction
// cache. A grammar load failure is fatal; a cache open failure only
// disables caching.
func New(cfg *config.Config, root string, progress ProgressReporter) (*Generator, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("invalid root path: %s is not a directory", root)
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	provider, err := parsers.NewProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize parser: %w", err)
	}

	if progress == nil {
		progress = NopProgress{}
	}

	g := &Generator{
		cfg:      cfg,
		root:     absRoot,
		provider: provider,
		progress: progress,
	}

	if cfg.Cache.Enabled {
		// Cache failures degrade to direct extraction, never fail the run.
		if c, err := cache.Open(cfg.CacheLocation(absRoot)); err == nil {
			g.cache = c
		}
	}

	return g, nil
}

// Close releases the provider and cache.
func (g *Generator) Close() {
	g.provider.Close()
	if g.cache != nil {
		g.cache.Close()
	}
}

// Generate walks the root, extracts exports from every candidate file, and
// returns the collected results. Each file's outcome is independent: a
// parse or read failure is recorded on that file's result and the run
// continues.
func (g *Generator) Generate(ctx context.Context) (*RunOutput, error) {
	w, err := walker.New(g.root, g.cfg.Paths.Ignore)
	if err != nil {
		return nil, err
	}

	files, err := w.Collect()
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate source files: %w", err)
	}

	entries, err := w.CollectEntries(g.cfg.Output.LayoutDepth)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate repository layout: %w", err)
	}

	g.progress.OnDiscoveryComplete(len(files))

	output := &RunOutput{
		RunID:       uuid.NewString(),
		RootPath:    g.root,
		GeneratedAt: time.Now().UTC(),
		Entries:     entries,
		Summary:     Summary{Scanned: len(files)},
		Files:       make([]FileResult, 0, len(files)),
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result := g.extractFile(file)

		if result.ParseError != "" {
			output.Summary.ParseFailed++
		} else {
			output.Summary.Parsed++
			output.Summary.ExportedCallables += len(result.Exports.Callables)
			output.Summary.ExportedTypes += len(result.Exports.Types)
		}

		output.Files = append(output.Files, result)
		g.progress.OnFileProcessed(file.RelPath)
	}

	g.progress.OnComplete(output.Summary)
	return output, nil
}

// extractFile produces one file's result, consulting the content-hash
// cache before invoking the provider.
func (g *Generator) extractFile(file walker.SourceFile) FileResult {
	result := FileResult{Path: file.RelPath}

	source, err := os.ReadFile(file.Path)
	if err != nil {
		result.ParseError = err.Error()
		return result
	}

	key := cache.Key(source, file.Dialect)
	if g.cache != nil {
		if entry, ok := g.cache.Get(key); ok {
			result.Exports = entry.Exports
			result.ParseError = entry.ParseError
			result.Exports.Sort()
			return result
		}
	}

	exports, err := g.provider.Extract(source, file.Dialect)
	switch {
	case errors.Is(err, parsers.ErrParse):
		result.ParseError = parsers.ErrParse.Error()
	case err != nil:
		result.ParseError = err.Error()
	default:
		result.Exports = *exports
	}

	if g.cache != nil {
		g.cache.Put(key, &cache.Entry{Exports: result.Exports, ParseError: result.ParseError})
	}

	return result
}
