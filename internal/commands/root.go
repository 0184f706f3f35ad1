package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solweave/idlvet"
	"github.com/solweave/idlvet/internal/logging"
	"github.com/solweave/idlvet/internal/output"
)

// RootCmd creates and returns the root command for the idlvet CLI
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idlvet",
		Short: "Structural consistency checker for generated interface crates",
		Long: `idlvet scans an interface crate emitted by an IDL code generator and
verifies cross-cutting invariants without compiling anything:

• every generated type exposes the capabilities its family requires
• dispatch enums exist under an accepted naming form
• modules are present or absent exactly as the IDL dictates
• identifiers follow a consistent casing convention`,
		Version:       idlvet.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("idlvet v%s\n", idlvet.Version)
		},
	})

	return cmd
}

// newPrinter builds the styled printer from persistent flags and the
// configured color preference. Color and verbosity are threaded explicitly;
// nothing here touches process-wide state.
func newPrinter(cmd *cobra.Command, colorEnabled bool) *output.Printer {
	verbose, _ := cmd.Flags().GetBool("verbose")
	noColor, _ := cmd.Flags().GetBool("no-color")

	return output.NewPrinter(output.Options{
		Color:   colorEnabled && !noColor,
		Verbose: verbose,
	})
}

// newLogger builds the run logger; verbose mode lowers the level to debug.
func newLogger(cmd *cobra.Command) logging.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	level := logging.LevelWarn
	if verbose {
		level = logging.LevelDebug
	}
	return logging.New(level, cmd.ErrOrStderr())
}
