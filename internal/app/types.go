package app

import "github.com/dragon-Elec/gfx-doctor/internal/types"

// DefaultMinFreeBytes is the free-space floor for /var/cache/apt; a
// graphics-stack downgrade downloads on the order of a few hundred MB.
const DefaultMinFreeBytes = 500 << 20

// DefaultProbeURL is the reachability target for the network pre-flight.
const DefaultProbeURL = "http://archive.ubuntu.com/ubuntu/"

// AptCachePath is the filesystem location checked for free space.
const AptCachePath = "/var/cache/apt"

type DiagnoseRequest struct {
	OfficialMirrors []string
	MinFreeBytes    uint64
	ProbeURL        string
}

type DiagnoseResult struct {
	Report types.RunReport
}

type RestoreRequest struct {
	DryRun          bool
	AssumeYes       bool
	OfficialMirrors []string
	MinFreeBytes    uint64
	ProbeURL        string
}

type RestoreResult struct {
	State  types.RunState
	Report types.RunReport
}
