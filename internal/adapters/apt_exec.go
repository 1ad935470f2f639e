package adapters

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/dragon-Elec/gfx-doctor/internal/policies"
	"github.com/dragon-Elec/gfx-doctor/internal/ports"
	"github.com/dragon-Elec/gfx-doctor/internal/shared"
	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// AptExecAdapter drives apt-get and apt-cache through their command
// line interfaces. Mutating calls run with a noninteractive frontend
// and inherit the caller's context, so an external interrupt kills the
// child and unwinds through the deferred pin cleanup.
type AptExecAdapter struct{}

func NewAptExecAdapter() AptExecAdapter {
	return AptExecAdapter{}
}

func (a AptExecAdapter) Policy(ctx context.Context, name string) (types.PackagePolicy, error) {
	cmd := exec.CommandContext(ctx, "apt-cache", "policy", name)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return types.PackagePolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("package manager failure: apt-cache policy %s", name)).
			WithCause(shared.CommandError(output, err))
	}
	return ParseAptPolicy(name, string(output)), nil
}

func (a AptExecAdapter) Update(ctx context.Context) error {
	return a.runAptGet(ctx, "update")
}

func (a AptExecAdapter) DistUpgrade(ctx context.Context) error {
	return a.runAptGet(ctx, "dist-upgrade", "-y")
}

func (a AptExecAdapter) AutoRemove(ctx context.Context) error {
	return a.runAptGet(ctx, "autoremove", "-y")
}

func (a AptExecAdapter) Purge(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		return nil
	}
	args := append([]string{"purge", "-y"}, packages...)
	return a.runAptGet(ctx, args...)
}

func (a AptExecAdapter) runAptGet(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "apt-get", args...)
	cmd.Env = append(os.Environ(), "DEBIAN_FRONTEND=noninteractive")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("package manager failure: apt-get %s", strings.Join(args, " "))).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

// ParseAptPolicy parses `apt-cache policy <pkg>` output:
//
//	libgl1-mesa-dri:
//	  Installed: 23.1.0-ppa1
//	  Candidate: 23.2.1-1ubuntu3
//	  Version table:
//	 *** 23.1.0-ppa1 100
//	        100 /var/lib/dpkg/status
//	     23.2.1-1ubuntu3 500
//	        500 http://archive.ubuntu.com/ubuntu jammy/main amd64 Packages
//
// An unknown package produces an empty table, yielding a policy whose
// Known() is false.
func ParseAptPolicy(name string, output string) types.PackagePolicy {
	policy := types.PackagePolicy{Name: name}
	inTable := false
	for _, raw := range strings.Split(output, "\n") {
		line := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(line, "Installed:"):
			policy.Installed = noneToEmpty(strings.TrimSpace(strings.TrimPrefix(line, "Installed:")))
		case strings.HasPrefix(line, "Candidate:"):
			policy.Candidate = noneToEmpty(strings.TrimSpace(strings.TrimPrefix(line, "Candidate:")))
		case strings.HasPrefix(line, "Version table:"):
			inTable = true
		case inTable:
			parsePolicyTableLine(&policy, line)
		}
	}
	return policy
}

func parsePolicyTableLine(policy *types.PackagePolicy, line string) {
	line = strings.TrimSpace(strings.TrimPrefix(line, "***"))
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return
	}
	if priority, err := strconv.Atoi(fields[0]); err == nil {
		// Origin row: "<priority> <uri> <suite/component> <arch> Packages",
		// or "<priority> /var/lib/dpkg/status" for the local install.
		if len(policy.Versions) == 0 {
			return
		}
		origin := types.PolicyOrigin{Priority: priority}
		if !strings.HasPrefix(fields[1], "/") {
			origin.Site = policies.HostOf(fields[1])
			if len(fields) > 2 {
				origin.Suite = fields[2]
			}
		}
		last := len(policy.Versions) - 1
		policy.Versions[last].Origins = append(policy.Versions[last].Origins, origin)
		return
	}
	if _, err := strconv.Atoi(fields[1]); err == nil {
		// Version row: "<version> <priority>".
		policy.Versions = append(policy.Versions, types.PolicyVersion{Version: fields[0]})
	}
}

func noneToEmpty(value string) string {
	if value == "(none)" {
		return ""
	}
	return value
}

var _ ports.AptPort = AptExecAdapter{}
