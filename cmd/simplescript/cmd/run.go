package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"

	"github.com/LaputanMachines/simplescript/internal/builtins"
	"github.com/LaputanMachines/simplescript/internal/config"
	"github.com/LaputanMachines/simplescript/internal/evaluator"
	"github.com/LaputanMachines/simplescript/internal/lexer"
	"github.com/LaputanMachines/simplescript/internal/parser"
	"github.com/LaputanMachines/simplescript/internal/runtime"
)

var (
	evalFlag    string
	dumpASTFlag bool
)

var runCmd = &cobra.Command{
	Use:   "run [script.ss]",
	Short: "Run a SimpleScript file",
	Long:  `Lex, parse, and evaluate a SimpleScript source file (or an inline --eval expression).`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runRun,
}

func init() {
	runCmd.Flags().StringVar(&evalFlag, "eval", "", "evaluate an inline expression instead of a file")
	runCmd.Flags().BoolVar(&dumpASTFlag, "dump-ast", false, "print the parsed AST instead of evaluating it")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	if doProfile, _ := cmd.Flags().GetBool("profile"); doProfile {
		defer profile.Start(profile.CPUProfile, profile.Quiet).Stop()
	}

	var (
		src      string
		fileName string
	)

	switch {
	case evalFlag != "":
		src = evalFlag
		fileName = "<eval>"
	case len(args) == 1:
		fileName = args[0]
		data, err := os.ReadFile(fileName)
		if err != nil {
			exitWithError("reading %s: %v", fileName, err)
		}
		src = string(data)
	default:
		return cmd.Help()
	}

	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		cfgPath = config.DefaultPath()
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		exitWithError("loading config: %v", err)
	}

	toks, lexErr := lexer.New(fileName, src).Tokenize()
	if lexErr != nil {
		exitWithError("%v", lexErr)
	}

	program, parseErr := parser.Parse(toks)
	if parseErr != nil {
		exitWithError("%v", parseErr)
	}

	if dumpASTFlag {
		fmt.Println(program.String())
		return nil
	}

	env := runtime.NewEnvironment()
	builtins.Register(env)
	ctx := runtime.NewContext("<program>", env)
	ctx.SetMaxCallDepth(cfg.Interpreter.MaxCallDepth)

	if _, rtErr := evaluator.Run(ctx, program); rtErr != nil {
		exitWithError("%v", rtErr)
	}
	return nil
}
