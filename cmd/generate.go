package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/mimicgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	// generateCmd represents the mimicgen generate command
	var generateCmd = &cobra.Command{
		Use:   "generate [packages]",
		Short: "generate mimics",
		Long:  "Generate a mimic for every struct marked with //mimic:generate in the given packages (default ./...) and for every configured type",
		RunE: func(c *cobra.Command, args []string) error {
			options, err := loadOptions(c.Flags(), args)
			if err != nil {
				return err
			}
			files, err := generate.Generate(c.Context(), options)
			if err != nil {
				slog.Error("generate failed", "error", err)
				return err
			}
			slog.Info("generated mimics", "count", len(files), "manifest", options.ManifestFile)
			return nil
		},
	}
	optionFlags(generateCmd)

	return generateCmd
}
