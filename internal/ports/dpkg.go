package ports

import "context"

// DpkgPort exposes the dpkg database probes used by pre-flight and the
// residual-configuration scan.
type DpkgPort interface {
	// Audit returns dpkg's report of half-configured or otherwise broken
	// packages. An empty string means the database is healthy.
	Audit(ctx context.Context) (string, error)
	// ResidualConfigs returns packages in "removed, config-files remain"
	// state across the whole database.
	ResidualConfigs(ctx context.Context) ([]string, error)
}
