package reporters

import "github.com/reaandrew/cloudauditor/core"

// Reporter writes the sorted listing and summary somewhere durable.
type Reporter interface {
	Report(findings []core.Finding, stats core.Stats) error
}
