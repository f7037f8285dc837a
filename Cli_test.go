package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `
- FindingId: f-1
  Severity: Low
- FindingId: f-2
  Severity: Critical
- FindingId: f-3
- FindingId: f-4
  Severity: High
`

func runCli(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return runCliWithEnv(t, nil, args...)
}

func runCliWithEnv(t *testing.T, env map[string]string, args ...string) (string, error) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "findings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixture), 0644))
	t.Setenv("CLOUDAUDITOR_FILE_PATH", path)
	t.Setenv("CLOUDAUDITOR_PROVIDER", "")
	t.Setenv("CLOUDAUDITOR_STRICT_STATS", "")
	t.Setenv("CLOUDAUDITOR_LOG_LEVEL", "")
	for name, value := range env {
		t.Setenv(name, value)
	}

	cli := &Cli{}
	cmd := cli.rootCommand()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetArgs(append([]string{"--provider", "file"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCli_Findings(t *testing.T) {
	out, err := runCli(t, "findings")

	require.NoError(t, err)
	var findings []map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &findings))
	var ids []interface{}
	for _, finding := range findings {
		ids = append(ids, finding["FindingId"])
	}
	assert.Equal(t, []interface{}{"f-2", "f-4", "f-1", "f-3"}, ids)
}

func TestCli_Stats(t *testing.T) {
	out, err := runCli(t, "stats")

	require.NoError(t, err)
	assert.JSONEq(t, `{"total_findings": 4, "critical": 1, "high": 1, "medium": 0}`, out)
}

func TestCli_StrictStats(t *testing.T) {
	_, err := runCli(t, "stats", "--strict-stats")

	assert.EqualError(t, err, "missing required field 'Severity'")
}

func TestCli_ExportJson(t *testing.T) {
	outputDir := t.TempDir()

	_, err := runCli(t, "export", "--report", "json", "--output-dir", outputDir, "--prefix", "audit")

	require.NoError(t, err)
	stats, err := os.ReadFile(filepath.Join(outputDir, "audit_stats.json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"total_findings": 4, "critical": 1, "high": 1, "medium": 0}`, string(stats))
	listing, err := os.ReadFile(filepath.Join(outputDir, "audit_findings.json"))
	require.NoError(t, err)
	var findings []map[string]interface{}
	require.NoError(t, json.Unmarshal(listing, &findings))
	assert.Len(t, findings, 4)
	assert.Equal(t, "f-2", findings[0]["FindingId"])
}

func TestCli_UnknownProvider(t *testing.T) {
	_, err := runCli(t, "stats", "--provider", "mongodb")

	assert.EqualError(t, err, "unknown provider: mongodb")
}

func TestCli_FlagsOverrideInvalidEnvironment(t *testing.T) {
	out, err := runCliWithEnv(t, map[string]string{
		"CLOUDAUDITOR_PROVIDER":  "bogus",
		"CLOUDAUDITOR_LOG_LEVEL": "loud",
	}, "stats", "--log-level", "warn")

	require.NoError(t, err)
	assert.JSONEq(t, `{"total_findings": 4, "critical": 1, "high": 1, "medium": 0}`, out)
}

func TestCli_InvalidEnvironmentWithoutFlag(t *testing.T) {
	cli := &Cli{}
	cmd := cli.rootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"stats"})
	t.Setenv("CLOUDAUDITOR_PROVIDER", "bogus")

	err := cmd.Execute()

	assert.EqualError(t, err, "unknown provider: bogus")
}

func TestCli_UnknownReportFormat(t *testing.T) {
	_, err := runCli(t, "export", "--report", "pdf")

	assert.EqualError(t, err, "unknown report format: pdf")
}
