package cmd

import (
	"github.com/spf13/cobra"

	"github.com/sofmeright/git2container/src/config"
)

// runOptions holds the flag values shared by the build and render commands.
type runOptions struct {
	outputDir      string
	gitURL         string
	envFile        string
	sshKeyFile     string
	knownHostsFile string

	builder       string
	skipPreflight bool
	failOnError   bool
	dryRun        bool

	write bool
}

var opts runOptions

// addDefinitionFlags registers the flags that shape the definition.
func addDefinitionFlags(c *cobra.Command) {
	c.Flags().StringVar(&opts.outputDir, "output-dir", "", "directory for Singularity and container.sif (default from config, else .)")
	c.Flags().StringVar(&opts.gitURL, "git-url", "", "repository to clone inside the image (ssh or https)")
	c.Flags().StringVar(&opts.envFile, "env-file", "", "conda environment file, relative to the repository root")
	c.Flags().StringVar(&opts.sshKeyFile, "ssh-key-file", "", "private key copied into the image for cloning")
	c.Flags().StringVar(&opts.knownHostsFile, "known-hosts-file", "", "known_hosts file copied next to the key")

	_ = c.MarkFlagRequired("git-url")
	_ = c.MarkFlagRequired("env-file")
}

// buildConfig merges flags over the loaded config.
func buildConfig() config.BuildConfig {
	b := config.BuildConfig{
		GitProject:     opts.gitURL,
		EnvFile:        opts.envFile,
		SSHKeyFile:     cfg.Credentials.SSHKeyFile,
		KnownHostsFile: cfg.Credentials.KnownHostsFile,
		OutputDir:      cfg.OutputDir,
	}
	if opts.sshKeyFile != "" {
		b.SSHKeyFile = opts.sshKeyFile
	}
	if opts.knownHostsFile != "" {
		b.KnownHostsFile = opts.knownHostsFile
	}
	if opts.outputDir != "" {
		b.OutputDir = opts.outputDir
	}
	if b.OutputDir == "" {
		b.OutputDir = "."
	}
	return b
}

// builderConfig merges flags over the loaded builder config.
func builderConfig() config.BuilderConfig {
	bc := cfg.Builder
	if opts.builder != "" {
		bc.Executable = opts.builder
	}
	bc.SkipPreflight = bc.SkipPreflight || opts.skipPreflight
	bc.FailOnError = bc.FailOnError || opts.failOnError
	return bc
}
