package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/solweave/idlvet/internal/checker"
	"github.com/solweave/idlvet/internal/config"
	"github.com/solweave/idlvet/internal/report"
)

// CheckCmd creates the single-project validation command
func CheckCmd() *cobra.Command {
	var (
		namingEnabled bool
		strictNaming  bool
		format        string
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Validate a generated interface crate",
		Long: `Validates the crate at the given path (default ".") against its IDL.

Example:
  idlvet check ./raydium_amm_interface
  idlvet check --naming --format yaml ./whirlpool_interface`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectPath := "."
			if len(args) > 0 {
				projectPath = args[0]
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

			rep := chk.CheckProject(projectPath)

			renderer := report.NewRenderer(newPrinter(cmd, cfg.Report.Color))
			switch format {
			case "text":
				renderer.RenderText(rep)
			case "yaml":
				if err := renderer.RenderYAML(cmd.OutOrStdout(), rep); err != nil {
					return fmt.Errorf("encoding report: %w", err)
				}
			default:
				return fmt.Errorf("unsupported format: %s", format)
			}

			if !rep.Passed() {
				return fmt.Errorf("validation failed")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&namingEnabled, "naming", false, "Check identifier naming conventions")
	cmd.Flags().BoolVar(&strictNaming, "strict-naming", false, "Escalate naming warnings to errors (implies --naming)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Report format (text|yaml)")

	return cmd
}
