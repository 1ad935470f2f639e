package policies

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMirrorPolicyDefaultSet(t *testing.T) {
	policy := NewMirrorPolicy(nil)

	official := []string{
		"archive.ubuntu.com",
		"security.ubuntu.com",
		"ports.ubuntu.com",
		"packages.zorin.com",
		"us.archive.ubuntu.com",
		"azure.archive.ubuntu.com",
		"nova.clouds.archive.ubuntu.com",
		"deb.debian.org",
	}
	for _, host := range official {
		require.True(t, policy.Official(host), host)
	}

	foreign := []string{
		"ppa.launchpadcontent.net",
		"ppa.launchpad.net",
		"mesarc.crocus.dev",
		"evil-archive.ubuntu.com.attacker.io",
		"",
	}
	for _, host := range foreign {
		require.False(t, policy.Official(host), host)
	}
}

func TestMirrorPolicyExtraHosts(t *testing.T) {
	policy := NewMirrorPolicy([]string{"mirror.example.edu", ".mirrors.example.net", "  ", ""})

	require.True(t, policy.Official("mirror.example.edu"))
	require.True(t, policy.Official("de.mirrors.example.net"))
	require.False(t, policy.Official("mirror.other.edu"))
}

func TestMirrorPolicyOfficialURI(t *testing.T) {
	policy := NewMirrorPolicy(nil)

	require.True(t, policy.OfficialURI("http://archive.ubuntu.com/ubuntu"))
	require.True(t, policy.OfficialURI("https://security.ubuntu.com/ubuntu/"))
	require.False(t, policy.OfficialURI("https://ppa.launchpadcontent.net/kisak/kisak-mesa/ubuntu"))
	require.False(t, policy.OfficialURI("cdrom:[Ubuntu 22.04]/"))
}

func TestHostOf(t *testing.T) {
	require.Equal(t, "archive.ubuntu.com", HostOf("http://ARCHIVE.ubuntu.com/ubuntu"))
	require.Equal(t, "", HostOf("file:///var/local-repo"))
	require.Equal(t, "", HostOf("not a uri"))
}
