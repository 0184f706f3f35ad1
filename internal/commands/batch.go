package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solweave/idlvet/internal/checker"
	"github.com/solweave/idlvet/internal/config"
	"github.com/solweave/idlvet/internal/report"
)

// BatchCmd creates the batch validation command
func BatchCmd() *cobra.Command {
	var (
		namingEnabled bool
		strictNaming  bool
	)

	cmd := &cobra.Command{
		Use:   "batch [root]",
		Short: "Validate every generated crate under a directory",
		Long: `Enumerates the immediate children of root that contain a Cargo.toml and
runs the full validation pipeline on each, one at a time.

Example:
  idlvet batch ./generated`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}

			cfg, err := config.Load(".")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("naming") {
				cfg.Naming.Enabled = namingEnabled
			}
			if cmd.Flags().Changed("strict-naming") {
				cfg.Naming.Strict = strictNaming
			}

			chk := checker.New(checker.Options{
				IDLFilename:  cfg.IDL.Filename,
				Naming:       cfg.Naming.Enabled,
				StrictNaming: cfg.Naming.Strict,
				NamingExempt: cfg.Naming.Exempt,
				Logger:       newLogger(cmd),
			})

			batch, err := chk.CheckBatch(root)
			if err != nil {
				return err
			}

			renderer := report.NewRenderer(newPrinter(cmd, cfg.Report.Color))
			renderer.RenderBatch(batch)

			if !batch.Passed() {
				return fmt.Errorf("%d of %d projects failed validation",
					len(batch.Projects)-batch.PassedCount(), len(batch.Projects))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&namingEnabled, "naming", false, "Check identifier naming conventions")
	cmd.Flags().BoolVar(&strictNaming, "strict-naming", false, "Escalate naming warnings to errors (implies --naming)")

	return cmd
}
