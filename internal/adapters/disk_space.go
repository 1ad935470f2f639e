package adapters

import (
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/shirou/gopsutil/v4/disk"

	"github.com/dragon-Elec/gfx-doctor/internal/ports"
)

// DiskSpaceAdapter reports free space on the filesystem holding the
// package cache.
type DiskSpaceAdapter struct{}

func NewDiskSpaceAdapter() DiskSpaceAdapter {
	return DiskSpaceAdapter{}
}

func (a DiskSpaceAdapter) FreeBytes(path string) (uint64, error) {
	usage, err := disk.Usage(path)
	if err != nil {
		return 0, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to stat filesystem free space").
			WithCause(err)
	}
	return usage.Free, nil
}

var _ ports.DiskPort = DiskSpaceAdapter{}
