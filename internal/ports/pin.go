package ports

import "github.com/dragon-Elec/gfx-doctor/internal/types"

// PinPort writes the temporary pin file and hands back its removal.
// Apply returns a remove func the caller must defer; remove is
// idempotent so it can run on every exit path.
type PinPort interface {
	Apply(directives []types.PinDirective) (remove func() error, err error)
	Exists() bool
}
