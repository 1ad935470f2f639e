package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	for _, name := range []string{"diagnose", "restore"} {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestRootCommandPersistentFlags(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"config", "log-level", "pin-dir", "mirrors-file"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(name), "missing flag: %s", name)
	}
}

func TestRestoreCommandFlags(t *testing.T) {
	cmd := newRestoreCommand()
	for _, name := range []string{"dry-run", "assume-yes", "official-mirror"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestDiagnoseCommandFlags(t *testing.T) {
	cmd := newDiagnoseCommand()
	assert.NotNil(t, cmd.Flags().Lookup("output"))
	assert.NotNil(t, cmd.Flags().Lookup("official-mirror"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name string
		code errbuilder.ErrCode
		want int
	}{
		{"invalid argument", errbuilder.CodeInvalidArgument, 2},
		{"user cancelled", errbuilder.CodeCanceled, 3},
		{"insufficient privilege", errbuilder.CodePermissionDenied, 4},
		{"unsupported environment", errbuilder.CodeFailedPrecondition, 4},
		{"insufficient resources", errbuilder.CodeResourceExhausted, 4},
		{"network unreachable", errbuilder.CodeUnavailable, 4},
		{"unknown release", errbuilder.CodeNotFound, 4},
		{"package manager failure", errbuilder.CodeInternal, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := errbuilder.New().WithCode(tc.code).WithMsg(tc.name)
			assert.Equal(t, tc.want, exitCodeForError(err))
		})
	}
}

func TestExitCodeForPlainError(t *testing.T) {
	assert.Equal(t, 1, exitCodeForError(errors.New("boom")))
}

func TestErrorMessagePrefersBuilderMsg(t *testing.T) {
	err := errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg("network unreachable: cannot reach the package archive").
		WithCause(errors.New("dial tcp: i/o timeout"))
	assert.Equal(t, "network unreachable: cannot reach the package archive", errorMessage(err))
	assert.Equal(t, "boom", errorMessage(errors.New("boom")))
}

// ---------- Report rendering tests ----------

func TestRenderReport(t *testing.T) {
	report := types.RunReport{
		Codename: "jammy",
		Arch:     "amd64",
		Repositories: []types.RepositoryEntry{
			{URI: "https://ppa.launchpadcontent.net/kisak/kisak-mesa/ubuntu", Suite: "jammy", File: "ppa.list", Origin: types.OriginForeign},
		},
		Packages: []types.PackageRecord{
			{Name: "libgl1-mesa-dri", Installed: "23.1.0-ppa1", Candidate: "23.0.4-ubuntu1", Origin: types.OriginForeign, OriginSite: "ppa.launchpadcontent.net"},
			{Name: "libgbm1", Installed: "23.0.4-ubuntu1", Origin: types.OriginOfficial},
			{Name: "mesa-va-drivers", Origin: types.OriginMissing},
		},
		Residual: []string{"mesa-vdpau-drivers"},
		Actions: []types.Action{
			{Stage: "pin", Description: "pin libgl1-mesa-dri", Outcome: types.ActionOutcomeSimulated},
		},
	}

	var out bytes.Buffer
	renderReport(&out, report)
	text := out.String()

	require.Contains(t, text, "release: jammy (amd64)")
	require.Contains(t, text, "foreign repositories:")
	require.Contains(t, text, "[FOREIGN] 23.1.0-ppa1 (from ppa.launchpadcontent.net), official 23.0.4-ubuntu1")
	require.Contains(t, text, "[STOCK] 23.0.4-ubuntu1")
	require.Contains(t, text, "[MISSING]")
	require.Contains(t, text, "mesa-vdpau-drivers")
	require.Contains(t, text, "[simulated] pin: pin libgl1-mesa-dri")
}

// ---------- Helper function tests ----------

func TestResolveStringPrefersChangedFlag(t *testing.T) {
	cmd := newDiagnoseCommand()
	require.NoError(t, cmd.Flags().Set("output", "json"))
	assert.Equal(t, "json", resolveString(cmd, "json", "output", "output"))
}

func TestResolveStringNilCommand(t *testing.T) {
	assert.Equal(t, "value", resolveString(nil, "value", "missing_key", ""))
}

func TestResolveBoolNilCommand(t *testing.T) {
	assert.True(t, resolveBool(nil, true, "missing_key", ""))
	assert.False(t, resolveBool(nil, false, "missing_key", ""))
}

func TestResolveStringsNilCommand(t *testing.T) {
	values := []string{"a", "b"}
	assert.Equal(t, values, resolveStrings(nil, values, "missing_key", ""))
}
