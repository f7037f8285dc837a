package services

import (
	"context"
	"sort"

	"github.com/reaandrew/cloudauditor/core"
	log "github.com/sirupsen/logrus"
)

// FindingsService derives the sorted listing and severity summary from a repository.
type FindingsService struct {
	Repository core.FindingRepository
	// StrictSeverity makes GetStats fail on a finding without a Severity
	// instead of leaving it out of every bucket.
	StrictSeverity bool
}

func NewFindingsService(repository core.FindingRepository, strictSeverity bool) FindingsService {
	return FindingsService{
		Repository:     repository,
		StrictSeverity: strictSeverity,
	}
}

// ListFindings returns every finding ordered Critical, High, Medium, Low, then
// anything else. Findings of equal rank keep the order the repository returned.
func (s FindingsService) ListFindings(ctx context.Context) ([]core.Finding, error) {
	findings, err := s.scan(ctx)
	if err != nil {
		return nil, err
	}

	sortBySeverity(findings)
	return findings, nil
}

// GetStats counts all findings and those with an exact Critical, High or Medium severity.
func (s FindingsService) GetStats(ctx context.Context) (core.Stats, error) {
	findings, err := s.scan(ctx)
	if err != nil {
		return core.Stats{}, err
	}

	return s.summarise(findings)
}

// Snapshot returns the sorted listing and the stats computed from one scan,
// so both views describe the same set of findings.
func (s FindingsService) Snapshot(ctx context.Context) ([]core.Finding, core.Stats, error) {
	findings, err := s.scan(ctx)
	if err != nil {
		return nil, core.Stats{}, err
	}

	stats, err := s.summarise(findings)
	if err != nil {
		return nil, core.Stats{}, err
	}

	sortBySeverity(findings)
	return findings, stats, nil
}

func sortBySeverity(findings []core.Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		return core.RankOf(findings[i]) < core.RankOf(findings[j])
	})
}

func (s FindingsService) summarise(findings []core.Finding) (core.Stats, error) {
	stats := core.Stats{TotalFindings: len(findings)}
	for _, finding := range findings {
		if _, ok := finding.Severity(); !ok {
			if s.StrictSeverity {
				return core.Stats{}, &core.MissingFieldError{Field: core.SeverityField}
			}
			continue
		}

		severity, _ := finding.SeverityString()
		switch severity {
		case core.SeverityCritical:
			stats.Critical++
		case core.SeverityHigh:
			stats.High++
		case core.SeverityMedium:
			stats.Medium++
		}
	}

	return stats, nil
}

func (s FindingsService) scan(ctx context.Context) ([]core.Finding, error) {
	findings, err := s.Repository.ScanAll(ctx)
	if err != nil {
		return nil, &core.RetrievalError{Err: err}
	}
	log.Debugf("Scanned %d findings", len(findings))

	if findings == nil {
		findings = []core.Finding{}
	}
	return findings, nil
}
