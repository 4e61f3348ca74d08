package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags)
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "simplescript",
	Short: "SimpleScript interpreter",
	Long: `simplescript is a tree-walking interpreter for SimpleScript, a small
dynamically-typed scripting language with numbers, strings, lists,
first-class functions, closures, and C-like control flow.

Run a script file directly, or launch the interactive REPL with no
arguments.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().String("config", "", "path to a TOML config file (default: $HOME/.simplescript/config.toml)")
	rootCmd.PersistentFlags().Bool("profile", false, "write a CPU profile for this run (see github.com/pkg/profile)")
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
