package ports

import (
	"context"

	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// AptPort is the package-manager surface the workflows depend on: origin
// and candidate queries plus the mutating operations of a restoration.
type AptPort interface {
	Policy(ctx context.Context, name string) (types.PackagePolicy, error)
	Update(ctx context.Context) error
	DistUpgrade(ctx context.Context) error
	AutoRemove(ctx context.Context) error
	Purge(ctx context.Context, packages []string) error
}
