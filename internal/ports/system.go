package ports

import "context"

type DiskPort interface {
	FreeBytes(path string) (uint64, error)
}

// ArchiveProbePort checks reachability of the package archive with a
// bounded timeout. Only used during pre-flight.
type ArchiveProbePort interface {
	Reachable(ctx context.Context, url string) error
}
