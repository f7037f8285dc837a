package repositories

import (
	"context"
	"fmt"
	"os"

	"github.com/reaandrew/cloudauditor/core"
	"gopkg.in/yaml.v3"
)

// FileBasedFindingRepository reads findings from a YAML or JSON file holding
// a list of objects. The file is re-read on every scan.
type FileBasedFindingRepository struct {
	path string
}

func NewFileBasedFindingRepository(path string) core.FindingRepository {
	return &FileBasedFindingRepository{path: path}
}

func (r *FileBasedFindingRepository) ScanAll(ctx context.Context) ([]core.Finding, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read findings file '%s': %w", r.path, err)
	}

	// JSON is a subset of YAML, so one decoder covers both formats. Mappings
	// with non-string keys are valid YAML only and are normalised below.
	var items []map[string]interface{}
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse findings file '%s': %w", r.path, err)
	}

	findings := make([]core.Finding, 0, len(items))
	for i, item := range items {
		if item == nil {
			return nil, fmt.Errorf("entry %d in '%s' is not an object", i, r.path)
		}
		findings = append(findings, toFinding(item))
	}
	return findings, nil
}

func (r *FileBasedFindingRepository) Close() error {
	return nil
}
