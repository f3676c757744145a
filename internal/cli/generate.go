package cli

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"contextmap/internal/config"
	"contextmap/internal/contextmap"
	"contextmap/internal/markdown"
	"contextmap/internal/watcher"
)

var (
	rootFlag  string
	outFlag   string
	quietFlag bool
	watchFlag bool
)

// generateCmd represents the generate command
var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Scan a directory tree and write the context map",
	Long: `Generate scans every .ts, .tsx and .vue file under the root (skipping
.d.ts declarations and ignored directories), extracts the exported
functions and types, and writes a Markdown context map.

Examples:
  # Map the current directory into ./context-map.md
  contextmap generate

  # Map a specific project to a chosen output file
  contextmap generate --root ~/src/webapp --out webapp-map.md

  # Keep the map up to date as files change
  contextmap generate --watch
`,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVar(&rootFlag, "root", ".", "Directory to scan")
	generateCmd.Flags().StringVar(&outFlag, "out", "", "Output file (default <root>/context-map.md)")
	generateCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
	generateCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Watch for file changes and regenerate")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	// Set up context with cancellation for Ctrl+C
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling...")
		cancel()
	}()

	cfg, err := config.LoadFromDir(rootFlag)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	outPath := outFlag
	if outPath == "" {
		outPath = cfg.OutputPath(rootFlag)
	}

	generator, err := contextmap.New(cfg, rootFlag, newProgressReporter(quietFlag))
	if err != nil {
		return err
	}
	defer generator.Close()

	if err := writeMap(ctx, generator, outPath); err != nil {
		return err
	}

	if !watchFlag {
		return nil
	}

	w, err := watcher.New(rootFlag)
	if err != nil {
		return fmt.Errorf("failed to start watch mode: %w", err)
	}

	if !quietFlag {
		log.Println("Watching for changes... (Ctrl+C to stop)")
	}

	// The provider is not safe for concurrent use; overlapping debounce
	// callbacks must run one at a time.
	var regenMu sync.Mutex
	err = w.Start(ctx, func() {
		regenMu.Lock()
		defer regenMu.Unlock()
		if err := writeMap(ctx, generator, outPath); err != nil && ctx.Err() == nil {
			log.Printf("regeneration failed: %v", err)
		}
	})
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("watch mode failed: %w", err)
	}

	if !quietFlag {
		log.Println("Watch mode stopped")
	}
	return nil
}

// writeMap runs one generation pass and writes the rendered document.
func writeMap(ctx context.Context, generator *contextmap.Generator, outPath string) error {
	output, err := generator.Generate(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("generation cancelled")
		}
		return fmt.Errorf("generation failed: %w", err)
	}

	if err := os.WriteFile(outPath, []byte(markdown.Render(output)), 0644); err != nil {
		return fmt.Errorf("failed to write context map: %w", err)
	}

	if !quietFlag {
		fmt.Printf("Wrote %d exported functions from %d scanned files to %s\n",
			output.Summary.ExportedCallables, output.Summary.Scanned, outPath)
	}
	return nil
}
