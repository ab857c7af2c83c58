package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spigell/jobassist/internal/ai/gemini"
	"github.com/spigell/jobassist/internal/ai/perplexity"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X github.com/spigell/jobassist/cmd.version=..." at build time.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jobassist version and the providers it uses",
	Args:  cobra.NoArgs,
	Run: func(_ *cobra.Command, _ []string) {
		writeVersion(os.Stdout)
	},
}

func writeVersion(w io.Writer) {
	fmt.Fprintf(w, "%s version: %s\n", app, version)
	fmt.Fprintf(w, "providers: %s (primary), %s (secondary)\n", perplexity.Name, gemini.Name)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
