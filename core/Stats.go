package core

// Stats summarises findings by severity. Low is not reported as a bucket.
type Stats struct {
	TotalFindings int `json:"total_findings"`
	Critical      int `json:"critical"`
	High          int `json:"high"`
	Medium        int `json:"medium"`
}
