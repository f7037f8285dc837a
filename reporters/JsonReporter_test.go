package reporters

import (
	"os"
	"testing"

	"github.com/reaandrew/cloudauditor/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJsonReporter_Report(t *testing.T) {
	reporter := JsonReporter{ArtifactPrefix: "audit", OutputDir: t.TempDir()}
	findings := []core.Finding{
		{"FindingId": "f-1", "Severity": "Critical"},
		{"FindingId": "f-2", "Severity": "Low"},
	}

	err := reporter.Report(findings, core.Stats{TotalFindings: 2, Critical: 1})

	require.NoError(t, err)
	findingsJson, err := os.ReadFile(reporter.FindingsPath())
	require.NoError(t, err)
	assert.JSONEq(t, `[{"FindingId": "f-1", "Severity": "Critical"}, {"FindingId": "f-2", "Severity": "Low"}]`, string(findingsJson))

	statsJson, err := os.ReadFile(reporter.StatsPath())
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_findings": 2, "critical": 1, "high": 0, "medium": 0}`, string(statsJson))
}

func TestJsonReporter_EmptyFindings(t *testing.T) {
	reporter := JsonReporter{OutputDir: t.TempDir()}

	require.NoError(t, reporter.Report(nil, core.Stats{}))

	findingsJson, err := os.ReadFile(reporter.FindingsPath())
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(findingsJson))
	assert.Contains(t, reporter.FindingsPath(), "cloudauditor_findings.json")
}

func TestJsonReporter_MissingOutputDir(t *testing.T) {
	reporter := JsonReporter{OutputDir: t.TempDir() + "/does/not/exist"}

	err := reporter.Report(nil, core.Stats{})

	assert.ErrorContains(t, err, "failed to generate findings JSON report")
}

func TestCreateReporter(t *testing.T) {
	reporter, err := CreateReporter("json", "out", "p")
	require.NoError(t, err)
	assert.Equal(t, JsonReporter{OutputDir: "out", ArtifactPrefix: "p"}, reporter)

	reporter, err = CreateReporter("xlsx", "out", "p")
	require.NoError(t, err)
	assert.Equal(t, XlsxReporter{OutputDir: "out", ArtifactPrefix: "p"}, reporter)

	_, err = CreateReporter("pdf", "out", "p")
	assert.EqualError(t, err, "unknown report format: pdf")
}
