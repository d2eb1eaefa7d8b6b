package config

// BuilderConfig controls how the external build tool is invoked.
type BuilderConfig struct {
	// Executable is the build tool: "singularity", "apptainer", or a path.
	Executable string `yaml:"executable" toml:"executable"`

	// SkipPreflight disables the "<executable> --version" fakeroot gate.
	SkipPreflight bool `yaml:"skip_preflight" toml:"skip_preflight"`

	// FailOnError turns a non-zero build exit status into a command failure.
	// Off by default: the exit status only reflects whether the build launched.
	FailOnError bool `yaml:"fail_on_error" toml:"fail_on_error"`
}

// DefaultBuilderConfig returns production defaults.
func DefaultBuilderConfig() BuilderConfig {
	return BuilderConfig{
		Executable: "singularity",
	}
}

// CredentialsConfig holds default credential files used when the
// corresponding flags are not given.
type CredentialsConfig struct {
	SSHKeyFile     string `yaml:"ssh_key_file" toml:"ssh_key_file"`
	KnownHostsFile string `yaml:"known_hosts_file" toml:"known_hosts_file"`
}

// LogConfig selects log verbosity and encoding.
type LogConfig struct {
	Level  string `yaml:"level" toml:"level"`   // debug, info, warn, error
	Format string `yaml:"format" toml:"format"` // console, json
}

// DefaultLogConfig returns production defaults.
func DefaultLogConfig() LogConfig {
	return LogConfig{
		Level:  "warn",
		Format: "console",
	}
}
