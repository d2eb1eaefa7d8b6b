package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sofmeright/git2container/src/gitremote"
)

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"console": true,
	"json":    true,
}

// Validate checks structural invariants of a loaded Config.
func Validate(cfg *Config) error {
	var errs []string

	if strings.TrimSpace(cfg.Builder.Executable) == "" {
		errs = append(errs, "builder.executable: must not be empty")
	}
	if !validLogLevels[cfg.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: unknown level %q (supported: debug, info, warn, error)", cfg.Log.Level))
	}
	if !validLogFormats[cfg.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: unknown format %q (supported: console, json)", cfg.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// ValidateBuild checks a BuildConfig before it is rendered.
// Returns warnings (soft issues) and a hard error if the config is unusable.
func ValidateBuild(b BuildConfig) (warnings []string, err error) {
	var errs []string

	// ── Repository ────────────────────────────────────────────────────────

	if strings.TrimSpace(b.GitProject) == "" {
		errs = append(errs, "git_project: is required")
	} else {
		remote, perr := gitremote.Parse(b.GitProject)
		switch {
		case perr != nil:
			if gitremote.ProjectName(b.GitProject) == "" {
				errs = append(errs, fmt.Sprintf("git_project: cannot derive a project name from %q", b.GitProject))
			}
		case remote.Name() == "":
			errs = append(errs, fmt.Sprintf("git_project: cannot derive a project name from %q", b.GitProject))
		default:
			if remote.HasPassword() {
				warnings = append(warnings, fmt.Sprintf("git_project: %s embeds a password; it will be written to the definition in clear text", remote.Redacted()))
			}
			if remote.IsSSH() && b.SSHKeyFile == "" {
				warnings = append(warnings, "git_project: ssh remote without ssh_key_file; the clone needs a key available inside the build")
			}
		}
	}

	// ── Environment file ──────────────────────────────────────────────────

	if strings.TrimSpace(b.EnvFile) == "" {
		errs = append(errs, "env_file: is required")
	} else if filepath.IsAbs(b.EnvFile) {
		warnings = append(warnings, fmt.Sprintf("env_file: %s is absolute; it is resolved inside the cloned repository", b.EnvFile))
	}

	if len(errs) > 0 {
		return warnings, fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return warnings, nil
}

// CheckCredentialFiles verifies that every configured credential file exists
// and is a regular file.
func CheckCredentialFiles(b BuildConfig) error {
	var errs []string

	check := func(field, path string) {
		if path == "" {
			return
		}
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			errs = append(errs, fmt.Sprintf("%s: %s does not exist", field, path))
		case err != nil:
			errs = append(errs, fmt.Sprintf("%s: %v", field, err))
		case info.IsDir():
			errs = append(errs, fmt.Sprintf("%s: %s is a directory", field, path))
		}
	}
	check("ssh_key_file", b.SSHKeyFile)
	check("known_hosts_file", b.KnownHostsFile)

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}
