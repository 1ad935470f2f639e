package adapters

import (
	"context"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/dragon-Elec/gfx-doctor/internal/ports"
	"github.com/dragon-Elec/gfx-doctor/internal/shared"
)

// DpkgQueryAdapter probes the dpkg database. Read-only.
type DpkgQueryAdapter struct{}

func NewDpkgQueryAdapter() DpkgQueryAdapter {
	return DpkgQueryAdapter{}
}

// Audit returns dpkg's broken-package report. dpkg --audit exits zero
// whether or not problems exist; the output itself is the verdict.
func (a DpkgQueryAdapter) Audit(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, "dpkg", "--audit")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("package manager failure: dpkg --audit").
			WithCause(shared.CommandError(output, err))
	}
	return strings.TrimSpace(string(output)), nil
}

func (a DpkgQueryAdapter) ResidualConfigs(ctx context.Context) ([]string, error) {
	cmd := exec.CommandContext(ctx, "dpkg-query", "-W", "-f=${db:Status-Abbrev}\t${Package}\n")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("package manager failure: dpkg-query").
			WithCause(shared.CommandError(output, err))
	}
	return ParseResidualConfigs(string(output)), nil
}

// ParseResidualConfigs extracts package names in "rc" state (removed,
// config files remaining) from dpkg-query status-abbrev output.
func ParseResidualConfigs(output string) []string {
	var remnants []string
	for _, line := range strings.Split(output, "\n") {
		status, name, found := strings.Cut(line, "\t")
		if !found {
			continue
		}
		if strings.HasPrefix(status, "rc") {
			remnants = append(remnants, strings.TrimSpace(name))
		}
	}
	return remnants
}

var _ ports.DpkgPort = DpkgQueryAdapter{}
