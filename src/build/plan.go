package build

import "path/filepath"

const (
	// DefinitionFileName is the generated definition's file name, the name
	// Singularity Hub expects.
	DefinitionFileName = "Singularity"

	// ImageFileName is the built image's file name.
	ImageFileName = "container.sif"
)

// BuildStep is a single build invocation.
type BuildStep struct {
	Name       string
	Definition string // path to the definition file
	Image      string // path of the image to produce
}

// NewStep returns the step building outputDir/container.sif from
// outputDir/Singularity.
func NewStep(outputDir string) BuildStep {
	return BuildStep{
		Name:       "image",
		Definition: DefinitionPath(outputDir),
		Image:      ImagePath(outputDir),
	}
}

// DefinitionPath returns where the definition is written inside outputDir.
func DefinitionPath(outputDir string) string {
	return filepath.Join(outputDir, DefinitionFileName)
}

// ImagePath returns where the image is written inside outputDir.
func ImagePath(outputDir string) string {
	return filepath.Join(outputDir, ImageFileName)
}
