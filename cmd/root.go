package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lalg-lang/lalg/internal/compiler/driver"
)

var rootCmd = &cobra.Command{
	Use:   "lalg [source-file]",
	Short: "LALG compiler and stack virtual machine",
	Long: `lalg compiles and runs LALG, a small Pascal-dialect teaching language.

Commands:
  build  Compile a source file to canonical object code
  run    Load an object code file and execute it

With no subcommand, lalg compiles source-file (default codigo.txt) and
runs it immediately against stdin/stdout.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := "codigo.txt"
		if len(args) == 1 {
			src = args[0]
		}
		return driver.CompileAndRun(src)
	},
	SilenceUsage: true,
}

// Execute runs the root command, printing any returned error to stderr and
// translating it into a non-zero process exit, per the CLI's error-handling
// contract.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return err
	}
	return nil
}

func init() {
	rootCmd.AddCommand(BuildCmd, RunCmd)
}
