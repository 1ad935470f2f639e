package app

import (
	"context"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

type fakeRelease struct {
	info types.ReleaseInfo
	err  error
}

func (f *fakeRelease) Detect(_ context.Context) (types.ReleaseInfo, error) {
	return f.info, f.err
}

type fakeSources struct {
	entries []types.RepositoryEntry
	calls   int
}

func (f *fakeSources) ListRepositories() ([]types.RepositoryEntry, error) {
	f.calls++
	return f.entries, nil
}

// fakeApt serves canned policy data and records every mutating call in
// order. afterUpgrade, when set, replaces the policy table once
// DistUpgrade has run, imitating a successful downgrade.
type fakeApt struct {
	policies     map[string]types.PackagePolicy
	afterUpgrade map[string]types.PackagePolicy
	upgraded     bool
	mutations    []string
	updateErr    error
	upgradeErr   error
	purgeErr     error
}

func (f *fakeApt) Policy(_ context.Context, name string) (types.PackagePolicy, error) {
	table := f.policies
	if f.upgraded && f.afterUpgrade != nil {
		table = f.afterUpgrade
	}
	if policy, ok := table[name]; ok {
		return policy, nil
	}
	return stockPolicy(name, "1.0-1ubuntu1"), nil
}

func (f *fakeApt) Update(_ context.Context) error {
	f.mutations = append(f.mutations, "update")
	return f.updateErr
}

func (f *fakeApt) DistUpgrade(_ context.Context) error {
	f.mutations = append(f.mutations, "dist-upgrade")
	if f.upgradeErr != nil {
		return f.upgradeErr
	}
	f.upgraded = true
	return nil
}

func (f *fakeApt) AutoRemove(_ context.Context) error {
	f.mutations = append(f.mutations, "autoremove")
	return nil
}

func (f *fakeApt) Purge(_ context.Context, packages []string) error {
	f.mutations = append(f.mutations, "purge:"+packages[0])
	return f.purgeErr
}

type fakeDpkg struct {
	audit    string
	residual []string
}

func (f *fakeDpkg) Audit(_ context.Context) (string, error) {
	return f.audit, nil
}

func (f *fakeDpkg) ResidualConfigs(_ context.Context) ([]string, error) {
	return f.residual, nil
}

type fakePins struct {
	applied  [][]types.PinDirective
	removed  int
	applyErr error
}

func (f *fakePins) Apply(directives []types.PinDirective) (func() error, error) {
	if f.applyErr != nil {
		return nil, f.applyErr
	}
	f.applied = append(f.applied, directives)
	return func() error {
		f.removed++
		return nil
	}, nil
}

func (f *fakePins) Exists() bool {
	return len(f.applied) > f.removed
}

type fakePrompt struct {
	answer bool
	calls  int
}

func (f *fakePrompt) Confirm(_ string) (bool, error) {
	f.calls++
	return f.answer, nil
}

type fakeDisk struct {
	free uint64
}

func (f *fakeDisk) FreeBytes(_ string) (uint64, error) {
	return f.free, nil
}

type fakeProbe struct {
	err error
}

func (f *fakeProbe) Reachable(_ context.Context, _ string) error {
	return f.err
}

func stockPolicy(name string, version string) types.PackagePolicy {
	return types.PackagePolicy{
		Name:      name,
		Installed: version,
		Candidate: version,
		Versions: []types.PolicyVersion{
			{
				Version: version,
				Origins: []types.PolicyOrigin{
					{Site: "archive.ubuntu.com", Suite: "jammy/main", Priority: 500},
					{Priority: 100},
				},
			},
		},
	}
}

func foreignPolicy(name string, installed string, official string) types.PackagePolicy {
	return types.PackagePolicy{
		Name:      name,
		Installed: installed,
		Candidate: installed,
		Versions: []types.PolicyVersion{
			{
				Version: installed,
				Origins: []types.PolicyOrigin{
					{Site: "ppa.launchpadcontent.net", Suite: "jammy/main", Priority: 500},
					{Priority: 100},
				},
			},
			{
				Version: official,
				Origins: []types.PolicyOrigin{
					{Site: "archive.ubuntu.com", Suite: "jammy/main", Priority: 500},
				},
			},
		},
	}
}

func networkDown() error {
	return errbuilder.New().
		WithCode(errbuilder.CodeUnavailable).
		WithMsg("network unreachable: cannot reach the package archive")
}

func newTestService(apt *fakeApt, dpkg *fakeDpkg, pins *fakePins, prompt *fakePrompt, sources *fakeSources) Service {
	return Service{
		Release: &fakeRelease{info: types.ReleaseInfo{ID: "ubuntu", Codename: "jammy", Arch: "amd64"}},
		Sources: sources,
		Apt:     apt,
		Dpkg:    dpkg,
		Pins:    pins,
		Prompt:  prompt,
		Disk:    &fakeDisk{free: 10 << 30},
		Probe:   &fakeProbe{},
		Euid:    func() int { return 0 },
		Clock:   time.Now,
	}
}
