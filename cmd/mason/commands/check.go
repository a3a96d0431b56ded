package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/mason/internal/app"
)

func (c *CLI) newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [targets...]",
		Short: "Verify that every #include names a reachable, public header",
		Long: "Check walks the sources of the given targets (or of every target\n" +
			"when none are named) and verifies that each #include directive names\n" +
			"a header the including target is permitted to see: the header's\n" +
			"target must be reachable over public dependency edges, and the\n" +
			"header must be public there or the includer must be a friend.",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			checkGenerated, _ := cmd.Flags().GetBool("check-generated")
			checkSystem, _ := cmd.Flags().GetBool("check-system")
			jobs, _ := cmd.Flags().GetInt("jobs")
			jsonOut, _ := cmd.Flags().GetBool("json")

			if jsonOut && c.format != nil {
				c.format.SetJSON(true)
			}

			return c.app.Check(cmd.Context(), args, app.CheckOptions{
				Force:          force,
				CheckGenerated: checkGenerated,
				CheckSystem:    checkSystem,
				Jobs:           jobs,
			})
		},
	}
	cmd.Flags().BoolP("force", "f", false, "Check targets even if they set check_includes = false")
	cmd.Flags().Bool("check-generated", false, "Also check generated files (requires a prior build)")
	cmd.Flags().Bool("check-system", false, "Also check <...> system-style includes")
	cmd.Flags().IntP("jobs", "j", 0, "Number of worker threads (0 = one per CPU)")
	cmd.Flags().Bool("json", false, "Log violations as JSON")
	return cmd
}
