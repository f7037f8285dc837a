package core

const (
	SeverityCritical = "Critical"
	SeverityHigh     = "High"
	SeverityMedium   = "Medium"
	SeverityLow      = "Low"
)

// UnknownRank is the rank of any severity outside the known set.
const UnknownRank = 4

var severityOrder = map[string]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// Rank orders a severity for sorting, lower is more severe.
// Matching is case-sensitive.
func Rank(severity string) int {
	if rank, ok := severityOrder[severity]; ok {
		return rank
	}
	return UnknownRank
}

// RankOf ranks a finding. A missing Severity ranks as Low, a non-string one as unknown.
func RankOf(finding Finding) int {
	value, ok := finding.Severity()
	if !ok {
		return Rank(SeverityLow)
	}
	s, ok := value.(string)
	if !ok {
		return UnknownRank
	}
	return Rank(s)
}
