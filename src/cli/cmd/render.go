package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sofmeright/git2container/src/build"
	"github.com/sofmeright/git2container/src/config"
	"github.com/sofmeright/git2container/src/definition"
	"github.com/sofmeright/git2container/src/output"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the Singularity definition without building",
	Long: `Render the Singularity definition for a repository.

Prints the definition to stdout, or writes it to <output-dir>/Singularity
with --write. The build tool is never invoked.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

func init() {
	addDefinitionFlags(renderCmd)
	renderCmd.Flags().BoolVar(&opts.write, "write", false, "write <output-dir>/Singularity instead of printing")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	log := zerolog.Ctx(cmd.Context())
	b := buildConfig()

	warnings, err := config.ValidateBuild(b)
	for _, w := range warnings {
		log.Warn().Msg(w)
	}
	if err != nil {
		return fmt.Errorf("invalid build config: %w", err)
	}

	doc := definition.Render(b)
	if !opts.write {
		return output.Document(cmd.OutOrStdout(), doc)
	}

	path, err := build.WriteDefinition(b.OutputDir, doc)
	if err != nil {
		return err
	}
	log.Debug().Str("path", path).Int("bytes", len(doc)).Msg("definition written")
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
