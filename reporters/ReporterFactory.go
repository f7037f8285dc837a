package reporters

import (
	"fmt"
)

const DefaultArtifactPrefix = "cloudauditor"

func CreateReporter(reportFormat, outputDir, prefix string) (Reporter, error) {
	if reportFormat == "xlsx" {
		return XlsxReporter{OutputDir: outputDir, ArtifactPrefix: prefix}, nil
	}
	if reportFormat == "json" {
		return JsonReporter{OutputDir: outputDir, ArtifactPrefix: prefix}, nil
	}

	return nil, fmt.Errorf("unknown report format: %s", reportFormat)
}

func artifactPath(outputDir, prefix, name string) string {
	if outputDir == "" {
		outputDir = "."
	}
	if prefix == "" {
		prefix = DefaultArtifactPrefix
	}
	return fmt.Sprintf("%s/%s_%s", outputDir, prefix, name)
}
