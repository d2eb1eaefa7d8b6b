package build

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// BuilderVersion is the parsed output of "<executable> --version".
type BuilderVersion struct {
	Flavor  string // "singularity", "singularity-ce", "apptainer", "" for bare output
	Raw     string // version as printed, e.g. "3.11.4-jammy"
	Version *semver.Version
}

func (v *BuilderVersion) String() string {
	if v.Flavor == "" {
		return v.Raw
	}
	return v.Flavor + " " + v.Raw
}

// "singularity-ce version 3.11.4-jammy", "apptainer version 1.2.5", "2.6.1-dist"
var builderVersionRe = regexp.MustCompile(`^(?:(\S+)\s+version\s+)?v?(\d+\.\d+(?:\.\d+)?\S*)`)

// minFakeroot is the first release of each flavor supporting --fakeroot.
var minFakeroot = map[string]*semver.Version{
	"singularity":    semver.MustParse("3.3.0"),
	"singularity-ce": semver.MustParse("3.3.0"),
	"apptainer":      semver.MustParse("1.0.0"),
}

// DetectVersion runs "<executable> --version" and parses the result.
func DetectVersion(ctx context.Context, executable string) (*BuilderVersion, error) {
	out, err := exec.CommandContext(ctx, executable, "--version").Output()
	if err != nil {
		return nil, fmt.Errorf("running %s --version: %w", executable, err)
	}
	return ParseVersion(string(out))
}

// ParseVersion parses the first line of a builder's --version output.
func ParseVersion(output string) (*BuilderVersion, error) {
	line := strings.TrimSpace(output)
	if idx := strings.IndexByte(line, '\n'); idx != -1 {
		line = strings.TrimSpace(line[:idx])
	}

	m := builderVersionRe.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("unrecognized version output %q", line)
	}

	v, err := semver.NewVersion(m[2])
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", m[2], err)
	}

	return &BuilderVersion{
		Flavor:  strings.ToLower(m[1]),
		Raw:     m[2],
		Version: v,
	}, nil
}

// CheckFakeroot returns an error when the builder predates --fakeroot.
// Distribution suffixes ("-jammy", "-1.el8") are ignored. Unknown flavors pass.
func CheckFakeroot(v *BuilderVersion) error {
	flavor := v.Flavor
	if flavor == "" {
		// Releases before 3.x printed only the version.
		flavor = "singularity"
	}
	floor, ok := minFakeroot[flavor]
	if !ok {
		return nil
	}

	core, err := v.Version.SetPrerelease("")
	if err != nil {
		return err
	}
	if core.LessThan(floor) {
		return fmt.Errorf("%s does not support --fakeroot (need %s >= %s)", v, flavor, floor)
	}
	return nil
}
