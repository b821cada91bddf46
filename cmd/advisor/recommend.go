package main

import (
	"strings"

	"github.com/productadvisor/backend/config"
	"github.com/spf13/cobra"
)

func newRecommendCmd(cfg *config.Config) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "recommend <query...>",
		Short: "Rank catalog products for a free-text query",
		Example: `  advisor recommend "something for back pain"
  advisor recommend gift for a coffee lover --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			result, err := a.recommendations.Recommend(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd.OutOrStdout(), result)
			}
			return writeRecommendations(cmd.OutOrStdout(), result)
		},
	}

	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Return structured output in JSON format")
	return cmd
}
