package core

import (
	"strings"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

func TestResolveReleaseDependenciesSupported(t *testing.T) {
	for _, codename := range SupportedReleases() {
		deps, err := ResolveReleaseDependencies(codename)
		require.NoError(t, err, codename)
		require.NotEmpty(t, deps, codename)

		// Deterministic: two calls agree.
		again, err := ResolveReleaseDependencies(codename)
		require.NoError(t, err)
		require.Equal(t, deps, again)
	}
}

func TestResolveReleaseDependenciesUnknownRelease(t *testing.T) {
	_, err := ResolveReleaseDependencies("warty")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	require.Contains(t, err.Error(), "unknown release")
	require.Contains(t, err.Error(), "jammy", "message should list supported releases")
}

func TestBuildPlanPinsForeignPackages(t *testing.T) {
	records := []types.PackageRecord{
		{Name: "libgl1-mesa-dri", Installed: "23.1.0-ppa1", Candidate: "23.0.4-ubuntu1", Origin: types.OriginForeign},
		{Name: "libgbm1", Installed: "23.0.4-ubuntu1", Candidate: "23.0.4-ubuntu1", Origin: types.OriginOfficial},
	}
	plan, err := BuildPlan(t.Context(), records, nil, "jammy")
	require.NoError(t, err)
	require.Len(t, plan.Directives, 2)

	version := plan.Directives[0]
	require.Equal(t, "libgl1-mesa-dri", version.Package)
	require.Equal(t, "version 23.0.4-ubuntu1", version.Pin)
	require.Equal(t, PinPriority, version.Priority)

	release := plan.Directives[1]
	require.Equal(t, "release n=jammy", release.Pin)
	require.Contains(t, release.Package, "libgl1-mesa-dri")
	require.Contains(t, release.Package, "libllvm15")
	require.Equal(t, len(GraphicsPackages)+1, len(strings.Fields(release.Package)))
}

func TestBuildPlanFailsWithoutOfficialCandidate(t *testing.T) {
	records := []types.PackageRecord{
		{Name: "libgl1-mesa-dri", Installed: "23.1.0-ppa1", Origin: types.OriginForeign},
	}
	_, err := BuildPlan(t.Context(), records, nil, "jammy")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
}

func TestBuildPlanResidualOnly(t *testing.T) {
	plan, err := BuildPlan(t.Context(), nil, []string{"mesa-vdpau-drivers"}, "jammy")
	require.NoError(t, err)
	require.Empty(t, plan.Directives, "purging remnants needs no pins")
	require.Equal(t, []string{"mesa-vdpau-drivers"}, plan.Purge)
	require.False(t, plan.Empty())
}

func TestBuildPlanEmpty(t *testing.T) {
	records := []types.PackageRecord{
		{Name: "libgbm1", Installed: "23.0.4-ubuntu1", Candidate: "23.0.4-ubuntu1", Origin: types.OriginOfficial},
	}
	plan, err := BuildPlan(t.Context(), records, nil, "jammy")
	require.NoError(t, err)
	require.True(t, plan.Empty())
}

func TestIsGraphicsResidual(t *testing.T) {
	require.True(t, IsGraphicsResidual("mesa-vulkan-drivers"))
	require.True(t, IsGraphicsResidual("libllvm14"))
	require.True(t, IsGraphicsResidual("libdrm-amdgpu1"))
	require.False(t, IsGraphicsResidual("old-text-editor"))
	require.False(t, IsGraphicsResidual("libglib2.0-0"))
}
