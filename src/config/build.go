package config

// BuildConfig is the input of a single definition render and build.
// Optional fields are unset when empty.
type BuildConfig struct {
	// GitProject is the repository URL to clone (SSH or HTTPS form). Required.
	GitProject string `yaml:"git_project" toml:"git_project"`

	// EnvFile is the conda environment file, relative to the cloned
	// repository root. Required.
	EnvFile string `yaml:"env_file" toml:"env_file"`

	// SSHKeyFile is a private key embedded into the image for cloning.
	SSHKeyFile string `yaml:"ssh_key_file,omitempty" toml:"ssh_key_file,omitempty"`

	// KnownHostsFile is a known_hosts file embedded next to the key.
	KnownHostsFile string `yaml:"known_hosts_file,omitempty" toml:"known_hosts_file,omitempty"`

	// OutputDir receives the definition file and the built image.
	OutputDir string `yaml:"output_dir" toml:"output_dir"`
}

// HasCredentials reports whether any credential file is embedded.
func (b BuildConfig) HasCredentials() bool {
	return b.SSHKeyFile != "" || b.KnownHostsFile != ""
}
