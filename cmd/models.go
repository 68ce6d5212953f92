package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sells-group/contact-finder/internal/render"
	"github.com/sells-group/contact-finder/internal/research"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List web-search capable OpenRouter models",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runModels(cmd.Context(), cmd.OutOrStdout(), newResearchService(cfg), cfg.OpenRouter.Model)
	},
}

func runModels(ctx context.Context, stdout io.Writer, svc researcher, preferred string) error {
	ids, err := svc.Models(ctx)
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(stdout, "no web-search capable models available")
		return nil
	}
	render.Models(stdout, ids, research.PickModel(ids, preferred))
	return nil
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}
