package ports

import "github.com/dragon-Elec/gfx-doctor/internal/types"

type SourcesPort interface {
	ListRepositories() ([]types.RepositoryEntry, error)
}
