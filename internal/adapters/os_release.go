package adapters

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/dragon-Elec/gfx-doctor/internal/ports"
	"github.com/dragon-Elec/gfx-doctor/internal/shared"
	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// OSReleaseAdapter probes /etc/os-release and dpkg for the release
// codename and architecture. Read-only.
type OSReleaseAdapter struct {
	Path string
	// PrintArch is swappable in tests; the default shells out to dpkg.
	PrintArch func(ctx context.Context) (string, error)
}

func NewOSReleaseAdapter() OSReleaseAdapter {
	return OSReleaseAdapter{
		Path:      "/etc/os-release",
		PrintArch: dpkgPrintArchitecture,
	}
}

func (a OSReleaseAdapter) Detect(ctx context.Context) (types.ReleaseInfo, error) {
	data, err := os.ReadFile(a.Path)
	if err != nil {
		return types.ReleaseInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("unsupported environment: cannot read OS release identification").
			WithCause(err)
	}
	info := ParseOSRelease(string(data))
	if !info.DebianDerived() {
		return types.ReleaseInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("unsupported environment: not a Debian-derived distribution")
	}
	if info.EffectiveCodename() == "" {
		return types.ReleaseInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("unsupported environment: release codename could not be determined")
	}
	arch, err := a.PrintArch(ctx)
	if err != nil {
		return types.ReleaseInfo{}, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg("unsupported environment: dpkg is not available").
			WithCause(err)
	}
	info.Arch = arch
	return info, nil
}

// ParseOSRelease parses the KEY=value lines of an os-release file.
// Values may be double-quoted; comments and malformed lines are skipped.
func ParseOSRelease(content string) types.ReleaseInfo {
	info := types.ReleaseInfo{}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		value = strings.Trim(strings.TrimSpace(value), `"`)
		switch key {
		case "ID":
			info.ID = value
		case "ID_LIKE":
			info.IDLike = strings.Fields(value)
		case "VERSION_CODENAME":
			info.Codename = value
		case "UBUNTU_CODENAME":
			info.UbuntuCodename = value
		}
	}
	return info
}

func dpkgPrintArchitecture(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "dpkg", "--print-architecture")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", shared.CommandError(output, err)
	}
	return strings.TrimSpace(string(output)), nil
}

var _ ports.ReleasePort = OSReleaseAdapter{}
