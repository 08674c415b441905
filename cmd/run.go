package cmd

import (
	"github.com/spf13/cobra"

	"github.com/lalg-lang/lalg/internal/compiler/driver"
)

// RunCmd loads a previously compiled object-code file and executes it on
// the VM against stdin/stdout.
var RunCmd = &cobra.Command{
	Use:   "run [object-file]",
	Short: "Execute a compiled object code file",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		obj := "codigo.obj"
		if len(args) == 1 {
			obj = args[0]
		}
		return driver.Run(obj)
	},
	SilenceUsage: true,
}
