package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// PinPriority outranks any configured repository entry, including a
// still-configured foreign PPA (which apt caps at 500, or 990 for the
// target release).
const PinPriority = 1001

// GraphicsPackages is the fixed target list of graphics-stack packages,
// before the release-specific runtime dependencies are appended.
var GraphicsPackages = []string{
	"libgl1-mesa-dri",
	"libglx-mesa0",
	"libgbm1",
	"libegl-mesa0",
	"mesa-vulkan-drivers",
	"mesa-va-drivers",
	"mesa-vdpau-drivers",
	"libxatracker2",
	"libglapi-mesa",
	"libdrm2",
	"libdrm-amdgpu1",
	"libdrm-intel1",
	"libdrm-nouveau2",
	"libdrm-radeon1",
}

// releaseDependencies maps a release codename to the dependency packages
// whose names encode a version that changes across releases (the LLVM
// runtime Mesa links against).
var releaseDependencies = map[string][]string{
	"focal": {"libllvm12"},
	"jammy": {"libllvm15"},
	"noble": {"libllvm17"},
}

// residualPrefixes identify graphics-stack packages among dpkg's
// removed-but-not-purged remnants.
var residualPrefixes = []string{
	"mesa-",
	"libgl1-mesa",
	"libglx-mesa",
	"libegl-mesa",
	"libglapi-mesa",
	"libgbm",
	"libdrm",
	"libllvm",
	"libxatracker",
}

// SupportedReleases returns the codenames the planner has a dependency
// mapping for, sorted for stable messages.
func SupportedReleases() []string {
	out := make([]string, 0, len(releaseDependencies))
	for codename := range releaseDependencies {
		out = append(out, codename)
	}
	sort.Strings(out)
	return out
}

// ResolveReleaseDependencies maps a codename to its release-specific
// dependency package names. Unsupported codenames are a user-actionable
// error, never a guessed default.
func ResolveReleaseDependencies(codename string) ([]string, error) {
	deps, ok := releaseDependencies[strings.TrimSpace(codename)]
	if !ok {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("unknown release %q; supported releases: %s",
				codename, strings.Join(SupportedReleases(), ", ")))
	}
	return append([]string(nil), deps...), nil
}

// IsGraphicsResidual reports whether a residual-config package name
// belongs to the graphics stack.
func IsGraphicsResidual(name string) bool {
	for _, prefix := range residualPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// Plan is the planner's output: pin directives for the executor and the
// residual packages that must be purged rather than reinstalled.
type Plan struct {
	Directives []types.PinDirective
	Purge      []string
}

// Empty reports whether there is nothing to restore.
func (p Plan) Empty() bool {
	return len(p.Directives) == 0 && len(p.Purge) == 0
}

// BuildPlan emits one version pin per foreign package plus a single
// release pin covering the whole target list, so apt's dependency
// reconciliation cannot pull anything back from the foreign repository.
// A foreign package without an official candidate fails the plan: there
// is no archive version to restore and guessing would be worse.
func BuildPlan(ctx context.Context, records []types.PackageRecord, residual []string, codename string) (Plan, error) {
	assert.NotEmpty(ctx, codename, "release codename must be resolved before planning")

	plan := Plan{Purge: append([]string(nil), residual...)}
	var pinned []string
	for _, record := range records {
		if record.Origin != types.OriginForeign {
			continue
		}
		if record.Candidate == "" {
			return Plan{}, errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg(fmt.Sprintf("no official archive version for %s (installed %s); cannot restore it",
					record.Name, record.Installed))
		}
		plan.Directives = append(plan.Directives, types.PinDirective{
			Package:  record.Name,
			Pin:      "version " + record.Candidate,
			Priority: PinPriority,
			Reason:   fmt.Sprintf("downgrade %s -> %s", record.Installed, record.Candidate),
		})
		pinned = append(pinned, record.Name)
	}

	if len(pinned) > 0 {
		deps, err := ResolveReleaseDependencies(codename)
		if err != nil {
			return Plan{}, err
		}
		stack := append(append([]string(nil), GraphicsPackages...), deps...)
		plan.Directives = append(plan.Directives, types.PinDirective{
			Package:  strings.Join(stack, " "),
			Pin:      "release n=" + codename,
			Priority: PinPriority,
			Reason:   "hold the graphics stack inside the release during reconciliation",
		})
	}

	log.Ctx(ctx).Debug().
		Int("pins", len(plan.Directives)).
		Int("purge", len(plan.Purge)).
		Msg("restoration plan built")
	return plan, nil
}
