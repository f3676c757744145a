package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "contextmap",
	Short: "Generate a Markdown map of exported TypeScript/TSX/Vue symbols",
	Long: `contextmap statically scans a directory of TypeScript, TSX and Vue
sources and writes a Markdown inventory of every exported function and
type, with file locations and a repository layout overview.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
