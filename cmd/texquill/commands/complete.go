package commands

import (
	"context"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/texquill/texquill/complete"
	"github.com/texquill/texquill/config"
	"github.com/texquill/texquill/document"
	"github.com/texquill/texquill/errors"
	"github.com/texquill/texquill/logger"
	"github.com/texquill/texquill/lsp"
)

// CompleteCmd computes completions for one document position. Useful for
// debugging what an editor would be offered without wiring up a client.
var CompleteCmd = &cobra.Command{
	Use:   "complete <file>",
	Short: "Compute path completions for one position",
	Long: `Compute path completions for a caret position in a LaTeX file.

Reads the file, places the caret at --line/--col (zero-based), and prints
the candidates the language server would offer there.

Examples:
  texquill complete main.tex --line 3 --col 12
  texquill complete -v chapters/intro.tex --line 0 --col 7`,
	Args: cobra.ExactArgs(1),
	RunE: runComplete,
}

var (
	completeLine int
	completeCol  int
)

func init() {
	CompleteCmd.Flags().IntVar(&completeLine, "line", 0, "Zero-based line of the caret")
	CompleteCmd.Flags().IntVar(&completeCol, "col", 0, "Zero-based column of the caret (UTF-16 units, as editors count)")
}

func runComplete(cmd *cobra.Command, args []string) error {
	docPath := args[0]

	content, err := os.ReadFile(docPath)
	if err != nil {
		return errors.Wrap(err, "failed to read document")
	}

	cfg, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	document.RegisterFileCommands(cfg.Complete.ExtraCommands)

	engine := complete.NewEngine(complete.OSProbe{}, logger.Named("complete"))
	service := lsp.NewService(engine, cfg.Paths.ProjectRoots, logger.Named("lsp"))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	result, err := service.Complete(ctx, docPath, string(content), completeLine, completeCol)
	if err != nil {
		return errors.Wrap(err, "completion failed")
	}
	elapsed := time.Since(start)

	if len(result.Candidates) == 0 {
		pterm.Info.Println("No completions at this position (caret must be inside a file-reference argument)")
		return nil
	}

	rows := pterm.TableData{{"Insert", "Label", "Kind", "Icon"}}
	for _, c := range result.Candidates {
		kind := "file"
		if c.IsDirectory {
			kind = "dir"
		}
		rows = append(rows, []string{c.InsertText, c.Label, kind, string(c.Icon)})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(rows).Render(); err != nil {
		return err
	}

	pterm.Println()
	pterm.Success.Printf("%d candidates in %s\n", len(result.Candidates), elapsed.Round(time.Microsecond))
	if cfg.AdvisoriesEnabled() && result.Advisory != "" {
		pterm.Println(result.Advisory)
	}
	return nil
}
