package cmd

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/LaputanMachines/simplescript/internal/config"
	"github.com/LaputanMachines/simplescript/internal/replui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive SimpleScript REPL",
	RunE:  runREPL,
}

func init() {
	rootCmd.AddCommand(replCmd)
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runREPL(cmd, args)
	}
}

func runREPL(cmd *cobra.Command, args []string) error {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		exitWithError("the REPL requires an interactive terminal; use `simplescript run <file>` for non-interactive input")
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		exitWithError("loading config: %v", err)
	}

	return replui.Run(cfg)
}
