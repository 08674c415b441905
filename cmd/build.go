package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lalg-lang/lalg/internal/compiler/driver"
)

var (
	buildOut    string
	buildTokens string
)

// BuildCmd compiles a source file to the canonical object-code text format
// without running it, optionally alongside a token listing.
var BuildCmd = &cobra.Command{
	Use:   "build [source-file]",
	Short: "Compile a source file to object code",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := "codigo.txt"
		if len(args) == 1 {
			src = args[0]
		}
		out := buildOut
		if out == "" {
			out = src + ".obj"
		}
		if err := driver.Build(src, out, buildTokens); err != nil {
			return err
		}
		fmt.Printf("wrote object code to %s\n", out)
		return nil
	},
	SilenceUsage: true,
}

func init() {
	BuildCmd.Flags().StringVar(&buildOut, "out", "", "object code output path (default: <source>.obj)")
	BuildCmd.Flags().StringVar(&buildTokens, "tokens", "", "also write the [Category, Value] token listing to this path")
}
