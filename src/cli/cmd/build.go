package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/sofmeright/git2container/src/build"
	"github.com/sofmeright/git2container/src/config"
	"github.com/sofmeright/git2container/src/definition"
	"github.com/sofmeright/git2container/src/gitremote"
	"github.com/sofmeright/git2container/src/output"
	"github.com/sofmeright/git2container/src/secrets"
)

// definitionPreviewLines caps the definition rows shown outside verbose mode.
const definitionPreviewLines = 12

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := zerolog.Ctx(ctx)
	w := cmd.OutOrStdout()
	color := output.UseColor()
	pipelineStart := time.Now()

	b := buildConfig()
	bc := builderConfig()

	// --- Config ---
	warnings, err := config.ValidateBuild(b)
	for _, msg := range warnings {
		log.Warn().Msg(msg)
	}
	if err != nil {
		return fmt.Errorf("invalid build config: %w", err)
	}
	if err := config.CheckCredentialFiles(b); err != nil {
		return fmt.Errorf("credentials: %w", err)
	}

	output.ContextBlock(w, runContextKV(b, bc))

	if len(warnings) > 0 {
		sec := output.NewSection(w, "Config", 0, color)
		output.SectionWarnings(sec, warnings, color)
		sec.Close()
	}

	// --- Definition ---
	output.SectionStartCollapsed(w, "g2c_definition", "Definition")
	renderStart := time.Now()
	sections := definition.Sections(b)
	doc := definition.Render(b)

	path, err := build.WriteDefinition(b.OutputDir, doc)
	if err != nil {
		output.SectionEnd(w, "g2c_definition")
		return err
	}
	log.Debug().Str("path", path).Int("bytes", len(doc)).Msg("definition written")

	defSec := output.NewSection(w, "Definition", time.Since(renderStart), color)
	defSec.Row("%-16s%s", "path", path)
	kinds := make([]string, 0, len(sections))
	for _, s := range sections {
		kinds = append(kinds, string(s.Kind))
	}
	defSec.Row("%-16s%s", "sections", strings.Join(kinds, ", "))
	defSec.Separator()
	limit := definitionPreviewLines
	if verbose {
		limit = 0
	}
	defSec.Lines(redactRemote(doc, b.GitProject), limit)
	defSec.Close()
	output.SectionEnd(w, "g2c_definition")

	definitionSummary := fmt.Sprintf("%d section(s) → %s", len(sections), path)

	// --- Secrets ---
	secretsStatus, secretsSummary := runSecretsSection(cmd, doc, color)

	// --- Dry run ---
	if opts.dryRun {
		sumSec := output.NewSection(w, "Summary", 0, color)
		output.SummaryRow(w, "definition", "success", definitionSummary, color)
		output.SummaryRow(w, "secrets", secretsStatus, secretsSummary, color)
		output.SummaryRow(w, "build", "skipped", "--dry-run", color)
		sumSec.Separator()
		output.SummaryTotal(w, time.Since(pipelineStart), "success", color)
		sumSec.Close()
		return nil
	}

	// --- Preflight ---
	preflightStatus := "skipped"
	preflightSummary := "--skip-preflight"
	if !bc.SkipPreflight {
		preflightSummary, err = runPreflightSection(cmd, bc.Executable, color)
		if err != nil {
			return err
		}
		preflightStatus = "success"
	}

	// --- Build ---
	output.SectionStart(w, "g2c_build", "Build")
	runner := build.NewSingularity(bc.Executable, verbose)
	runner.Stdout = w
	runner.Stderr = cmd.ErrOrStderr()

	step := build.NewStep(b.OutputDir)
	log.Info().Str("image", step.Image).Str("definition", step.Definition).Msg("building image")
	result, err := runner.Build(ctx, step)
	if err != nil {
		output.SectionEnd(w, "g2c_build")
		return err
	}

	buildSec := output.NewSection(w, "Build", result.Duration, color)
	if result.Succeeded() {
		buildSec.Row("%-16s%s", "image", result.Image)
		output.RowStatus(buildSec, "status", "built", result.Status, color)
	} else {
		buildSec.Row("%-16s%d", "exit code", result.ExitCode)
		output.RowStatus(buildSec, "status", "build failed", result.Status, color)
		log.Error().Int("exit_code", result.ExitCode).Msg("build tool failed")
	}
	buildSec.Close()
	output.SectionEnd(w, "g2c_build")

	buildSummary := step.Image
	if !result.Succeeded() {
		buildSummary = fmt.Sprintf("exit status %d", result.ExitCode)
	}

	// --- Summary ---
	overallStatus := result.Status

	sumSec := output.NewSection(w, "Summary", 0, color)
	output.SummaryRow(w, "definition", "success", definitionSummary, color)
	output.SummaryRow(w, "secrets", secretsStatus, secretsSummary, color)
	output.SummaryRow(w, "preflight", preflightStatus, preflightSummary, color)
	output.SummaryRow(w, "build", result.Status, buildSummary, color)
	sumSec.Separator()
	output.SummaryTotal(w, time.Since(pipelineStart), overallStatus, color)
	sumSec.Close()

	if !result.Succeeded() && bc.FailOnError {
		return result.Error
	}
	return nil
}

// runSecretsSection scans the rendered definition and reports findings.
// Findings never fail the run.
func runSecretsSection(cmd *cobra.Command, doc string, color bool) (status, summary string) {
	w := cmd.OutOrStdout()
	log := zerolog.Ctx(cmd.Context())

	start := time.Now()
	findings, err := secrets.NewScanner().Scan(build.DefinitionFileName, []byte(doc))
	elapsed := time.Since(start)

	sec := output.NewSection(w, "Secrets", elapsed, color)
	defer sec.Close()

	switch {
	case err != nil:
		log.Warn().Err(err).Msg("secret scan unavailable")
		output.RowStatus(sec, "scan", "unavailable", "skipped", color)
		return "skipped", "scan unavailable"
	case len(findings) == 0:
		output.RowStatus(sec, "scan", "no secrets detected", "success", color)
		return "success", "clean"
	default:
		output.SectionFindings(sec, findings, color)
		sec.Separator()
		output.RowStatus(sec, "scan", "definition contains credentials; do not share the image", "warning", color)
		for _, f := range findings {
			log.Warn().Str("rule", f.Rule).Int("line", f.Line).Msg("possible secret in definition")
		}
		return "warning", fmt.Sprintf("%d finding(s)", len(findings))
	}
}

// runPreflightSection checks that the build tool supports --fakeroot.
func runPreflightSection(cmd *cobra.Command, executable string, color bool) (string, error) {
	w := cmd.OutOrStdout()
	log := zerolog.Ctx(cmd.Context())

	start := time.Now()
	v, err := build.DetectVersion(cmd.Context(), executable)
	if err != nil {
		return "", fmt.Errorf("preflight: %w (use --skip-preflight to bypass)", err)
	}
	checkErr := build.CheckFakeroot(v)
	log.Debug().Str("builder", v.String()).Msg("detected build tool")

	sec := output.NewSection(w, "Preflight", time.Since(start), color)
	if checkErr != nil {
		output.RowStatus(sec, "builder", v.String(), "failed", color)
		sec.Close()
		return "", fmt.Errorf("preflight: %w", checkErr)
	}
	output.RowStatus(sec, "builder", v.String(), "success", color)
	sec.Row("%-16s%s", "fakeroot", "supported")
	sec.Close()

	return v.String(), nil
}

// redactRemote masks a password embedded in the clone URL wherever it
// appears in text.
func redactRemote(text, gitURL string) string {
	r, err := gitremote.Parse(gitURL)
	if err != nil || !r.HasPassword() {
		return text
	}
	return strings.ReplaceAll(text, gitURL, r.Redacted())
}

// runContextKV returns the run context block: what is cloned, where the
// result goes, and the CI identifiers when present.
func runContextKV(b config.BuildConfig, bc config.BuilderConfig) []output.KV {
	remote := b.GitProject
	if r, err := gitremote.Parse(b.GitProject); err == nil {
		remote = r.Redacted()
	}

	kv := []output.KV{
		{Key: "Project", Value: gitremote.ProjectName(b.GitProject)},
		{Key: "Builder", Value: bc.Executable},
		{Key: "Remote", Value: remote},
		{Key: "Output", Value: b.OutputDir},
	}
	return append(kv, output.CIContext()...)
}
