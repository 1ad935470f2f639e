package ports

import (
	"context"

	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

type ReleasePort interface {
	Detect(ctx context.Context) (types.ReleaseInfo, error)
}
