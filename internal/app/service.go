package app

import (
	"os"
	"time"

	"github.com/dragon-Elec/gfx-doctor/internal/adapters"
	"github.com/dragon-Elec/gfx-doctor/internal/ports"
)

type Service struct {
	Release ports.ReleasePort
	Sources ports.SourcesPort
	Apt     ports.AptPort
	Dpkg    ports.DpkgPort
	Pins    ports.PinPort
	Prompt  ports.PromptPort
	Disk    ports.DiskPort
	Probe   ports.ArchiveProbePort
	Euid    func() int
	Clock   func() time.Time
}

func NewService(pinDir string) Service {
	return Service{
		Release: adapters.NewOSReleaseAdapter(),
		Sources: adapters.NewSourcesListAdapter(),
		Apt:     adapters.NewAptExecAdapter(),
		Dpkg:    adapters.NewDpkgQueryAdapter(),
		Pins:    adapters.NewPinFileAdapter(pinDir),
		Prompt:  adapters.NewStdinPromptAdapter(),
		Disk:    adapters.NewDiskSpaceAdapter(),
		Probe:   adapters.NewArchiveProbeAdapter(),
		Euid:    os.Geteuid,
		Clock:   time.Now,
	}
}
