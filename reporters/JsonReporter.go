package reporters

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/reaandrew/cloudauditor/core"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultJsonFindingsReport = "findings.json"
	DefaultJsonStatsReport    = "stats.json"
)

type JsonReporter struct {
	ArtifactPrefix string
	OutputDir      string
}

// Report writes the findings and the summary as two JSON documents.
func (j JsonReporter) Report(findings []core.Finding, stats core.Stats) error {
	if findings == nil {
		findings = []core.Finding{}
	}

	findingsPath := j.FindingsPath()
	if err := writeJsonFile(findingsPath, findings); err != nil {
		return fmt.Errorf("failed to generate findings JSON report: %w", err)
	}
	log.Infof("Findings JSON report generated successfully: %s", findingsPath)

	statsPath := j.StatsPath()
	if err := writeJsonFile(statsPath, stats); err != nil {
		return fmt.Errorf("failed to generate stats JSON report: %w", err)
	}
	log.Infof("Stats JSON report generated successfully: %s", statsPath)

	return nil
}

func (j JsonReporter) FindingsPath() string {
	return artifactPath(j.OutputDir, j.ArtifactPrefix, DefaultJsonFindingsReport)
}

func (j JsonReporter) StatsPath() string {
	return artifactPath(j.OutputDir, j.ArtifactPrefix, DefaultJsonStatsReport)
}

func writeJsonFile(path string, value interface{}) error {
	jsonData, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}

	if err := os.WriteFile(path, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
