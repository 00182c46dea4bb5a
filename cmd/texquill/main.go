package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/texquill/texquill/cmd/texquill/commands"
	"github.com/texquill/texquill/logger"
)

var rootCmd = &cobra.Command{
	Use:   "texquill",
	Short: "TexQuill - Path intelligence for LaTeX documents",
	Long: `TexQuill - Path and filename completion for LaTeX file-reference arguments.

TexQuill resolves partial path text inside arguments like \input{...} and
\includegraphics{...} against the document's base directory, configured
project roots, and declared \graphicspath roots, and serves the results
to editors over the Language Server Protocol.

Available commands:
  serve    - Start the language server (stdio or WebSocket)
  complete - Compute completions for one position (debugging)
  config   - Manage TexQuill configuration
  version  - Show version information

Examples:
  texquill serve                          # LSP over stdio
  texquill serve --websocket              # LSP over WebSocket
  texquill complete main.tex --line 3 --col 12
  texquill config show`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(false, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")

	rootCmd.AddCommand(commands.ServeCmd)
	rootCmd.AddCommand(commands.CompleteCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	defer logger.Cleanup()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
