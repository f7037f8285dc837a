package core

import "context"

// FindingRepository supplies the full set of findings. Results carry no
// ordering or snapshot guarantee.
type FindingRepository interface {
	ScanAll(ctx context.Context) ([]Finding, error)
	Close() error
}
