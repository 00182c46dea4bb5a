package commands

import (
	"fmt"

	"github.com/texquill/texquill/logger"
	"github.com/texquill/texquill/version"
)

// printStartupBanner prints the user-friendly startup message for
// WebSocket mode. Stdio mode stays silent on stdout: it carries LSP traffic.
func printStartupBanner(verbosity int) {
	cyan := "\033[36m"
	green := "\033[32m"
	blue := "\033[34m"
	bold := "\033[1m"
	reset := "\033[0m"

	versionInfo := version.Get()

	fmt.Printf("\n%s%s", cyan, bold)
	fmt.Printf("   ╔══════════════════════════════════════╗\n")
	fmt.Printf("   ║                                      ║\n")
	fmt.Printf("   ║   ✒  TexQuill                        ║\n")
	fmt.Printf("   ║      path intelligence for LaTeX     ║\n")
	fmt.Printf("   ║                                      ║\n")
	fmt.Printf("   ╚══════════════════════════════════════╝%s\n\n", reset)

	fmt.Printf("%s%s┌─ TexQuill Info ──────────────────────────┐%s\n", green, bold, reset)
	fmt.Printf("%s│%s Version:   %s (commit %s)\n", green, reset, versionInfo.Version, versionInfo.Short())
	fmt.Printf("%s│%s Built:     %s\n", green, reset, versionInfo.BuildTime)
	fmt.Printf("%s│%s Verbosity: %s\n", green, reset, logger.LevelName(verbosity))
	fmt.Printf("%s└──────────────────────────────────────────┘%s\n", green, reset)

	fmt.Printf("\n%s💡 Press Ctrl+C to stop%s\n\n", blue, reset)
}
