package build

import (
	"fmt"
	"os"
)

// WriteDefinition creates outputDir if needed and writes content to
// outputDir/Singularity. Returns the written path.
func WriteDefinition(outputDir, content string) (string, error) {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return "", fmt.Errorf("creating output dir: %w", err)
	}

	path := DefinitionPath(outputDir)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("writing definition: %w", err)
	}
	return path, nil
}
