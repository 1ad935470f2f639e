package adapters

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

const policyOutputForeign = `libgl1-mesa-dri:
  Installed: 23.1.0-ppa1
  Candidate: 23.1.0-ppa1
  Version table:
 *** 23.1.0-ppa1 500
        500 https://ppa.launchpadcontent.net/kisak/kisak-mesa/ubuntu jammy/main amd64 Packages
        100 /var/lib/dpkg/status
     23.2.1-1ubuntu3.1 500
        500 http://security.ubuntu.com/ubuntu jammy-security/main amd64 Packages
     23.2.1-1ubuntu3 500
        500 http://archive.ubuntu.com/ubuntu jammy-updates/main amd64 Packages
`

const policyOutputNotInstalled = `mesa-vdpau-drivers:
  Installed: (none)
  Candidate: 23.2.1-1ubuntu3
  Version table:
     23.2.1-1ubuntu3 500
        500 http://archive.ubuntu.com/ubuntu jammy-updates/main amd64 Packages
`

func TestParseAptPolicyForeign(t *testing.T) {
	policy := ParseAptPolicy("libgl1-mesa-dri", policyOutputForeign)

	want := types.PackagePolicy{
		Name:      "libgl1-mesa-dri",
		Installed: "23.1.0-ppa1",
		Candidate: "23.1.0-ppa1",
		Versions: []types.PolicyVersion{
			{Version: "23.1.0-ppa1", Origins: []types.PolicyOrigin{
				{Site: "ppa.launchpadcontent.net", Suite: "jammy/main", Priority: 500},
				{Priority: 100},
			}},
			{Version: "23.2.1-1ubuntu3.1", Origins: []types.PolicyOrigin{
				{Site: "security.ubuntu.com", Suite: "jammy-security/main", Priority: 500},
			}},
			{Version: "23.2.1-1ubuntu3", Origins: []types.PolicyOrigin{
				{Site: "archive.ubuntu.com", Suite: "jammy-updates/main", Priority: 500},
			}},
		},
	}
	if diff := cmp.Diff(want, policy); diff != "" {
		t.Fatalf("unexpected policy (-want +got):\n%s", diff)
	}
}

func TestParseAptPolicyNotInstalled(t *testing.T) {
	policy := ParseAptPolicy("mesa-vdpau-drivers", policyOutputNotInstalled)
	require.Empty(t, policy.Installed)
	require.Equal(t, "23.2.1-1ubuntu3", policy.Candidate)
	require.True(t, policy.Known())
}

func TestParseAptPolicyUnknownPackage(t *testing.T) {
	policy := ParseAptPolicy("no-such-package", "N: Unable to locate package no-such-package\n")
	require.False(t, policy.Known())
}
