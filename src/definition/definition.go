// Package definition renders the Singularity build definition for a
// repository: a fixed skeleton with the clone URL, environment file and
// optional ssh credentials filled in.
package definition

import (
	"strings"

	"github.com/sofmeright/git2container/src/config"
	"github.com/sofmeright/git2container/src/gitremote"
)

// Kind identifies a section of the definition.
type Kind string

const (
	KindHeader            Kind = "header"
	KindCredentials       Kind = "credentials"
	KindSetup             Kind = "setup"
	KindRemoveCredentials Kind = "remove-credentials"
	KindRun               Kind = "run"
	KindEnvironment       Kind = "environment"
)

// Section is one rendered fragment of the definition.
type Section struct {
	Kind Kind
	Text string
}

// Sections returns the rendered sections in document order:
// header, credentials?, setup, remove-credentials?, run, environment.
// The two credential sections are present together or not at all.
func Sections(b config.BuildConfig) []Section {
	r := placeholders(b)
	render := func(kind Kind, fragments ...string) Section {
		return Section{Kind: kind, Text: r.Replace(strings.Join(fragments, ""))}
	}

	sections := []Section{render(KindHeader, headerFragment)}

	if b.HasCredentials() {
		files := []string{filesFragment}
		if b.SSHKeyFile != "" {
			files = append(files, sshKeyFragment)
		}
		if b.KnownHostsFile != "" {
			files = append(files, knownHostsFragment)
		}
		files = append(files, separatorFragment)
		sections = append(sections, render(KindCredentials, files...))
	}

	sections = append(sections, render(KindSetup, postFragment))

	if b.HasCredentials() {
		sections = append(sections, render(KindRemoveCredentials, removeCredentialsFragment))
	}

	return append(sections,
		render(KindRun, runscriptFragment),
		render(KindEnvironment, environmentFragment),
	)
}

// Render returns the complete definition document for b.
// It is a pure function of b; validate b with config.ValidateBuild first.
func Render(b config.BuildConfig) string {
	var sb strings.Builder
	for _, s := range Sections(b) {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// placeholders maps every {NAME} in the fragments to its literal value.
// Replacement is single-pass, so values are never re-expanded.
func placeholders(b config.BuildConfig) *strings.Replacer {
	return strings.NewReplacer(
		"{GIT_PROJECT_NAME}", gitremote.ProjectName(b.GitProject),
		"{GIT_PROJECT}", b.GitProject,
		"{ENV_FILE}", b.EnvFile,
		"{SSH_KEY_FILE}", b.SSHKeyFile,
		"{KNOWN_HOSTS_FILE}", b.KnownHostsFile,
	)
}
