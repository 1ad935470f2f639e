package types

import "strings"

// ReleaseInfo describes the probed operating system release.
type ReleaseInfo struct {
	ID             string
	IDLike         []string
	Codename       string
	UbuntuCodename string
	Arch           string
}

// EffectiveCodename returns the codename used for archive pinning. On
// Ubuntu derivatives (Zorin, Mint) the packages come from the Ubuntu
// archive, so UBUNTU_CODENAME wins over the derivative's own codename.
func (r ReleaseInfo) EffectiveCodename() string {
	if r.UbuntuCodename != "" {
		return r.UbuntuCodename
	}
	return r.Codename
}

// DebianDerived reports whether the release uses dpkg/apt tooling.
func (r ReleaseInfo) DebianDerived() bool {
	for _, id := range append([]string{r.ID}, r.IDLike...) {
		switch strings.ToLower(strings.TrimSpace(id)) {
		case "debian", "ubuntu":
			return true
		}
	}
	return false
}

// RepositoryEntry is one configured APT source. Entries are read at scan
// time and never mutated or persisted.
type RepositoryEntry struct {
	Type       SourceType
	URI        string
	Suite      string
	Components []string
	SignedBy   string
	File       string
	Origin     Origin
}

// PolicyOrigin is one download origin for a version row in the package
// manager's policy table. An empty Site means the local dpkg status file.
type PolicyOrigin struct {
	Site     string
	Suite    string
	Priority int
}

// PolicyVersion is one version row of the policy table with the origins
// it is available from.
type PolicyVersion struct {
	Version string
	Origins []PolicyOrigin
}

// PackagePolicy is the package manager's view of a single package:
// installed version, apt's own candidate, and the full version table.
type PackagePolicy struct {
	Name      string
	Installed string
	Candidate string
	Versions  []PolicyVersion
}

// Known reports whether the package manager has any record of the package.
func (p PackagePolicy) Known() bool {
	return p.Installed != "" || p.Candidate != "" || len(p.Versions) > 0
}

// PackageRecord is the scanner's verdict on one graphics-stack package.
// Origin is computed, never user-supplied. Records are built during the
// scan, consumed by the planner, and discarded after the run.
type PackageRecord struct {
	Name           string
	Installed      string
	Candidate      string
	Origin         Origin
	OriginSite     string
	ResidualConfig bool
}

// PinDirective is a temporary version-pinning instruction written to the
// apt preferences directory for the duration of a run. Every directive
// created during a run is removed by cleanup regardless of outcome.
type PinDirective struct {
	Package  string
	Pin      string
	Priority int
	Reason   string
}

// Action is one planned or executed step of a run.
type Action struct {
	Stage       string
	Description string
	Outcome     ActionOutcome
}

// RunReport accumulates the diagnosis and the ordered action list of a
// run. It is emitted to the user at the end and never persisted.
type RunReport struct {
	Codename     string
	Arch         string
	Repositories []RepositoryEntry
	Packages     []PackageRecord
	Residual     []string
	Actions      []Action
}

// ForeignPackages returns the records whose installed version did not
// come from the official archive.
func (r RunReport) ForeignPackages() []PackageRecord {
	var out []PackageRecord
	for _, record := range r.Packages {
		if record.Origin == OriginForeign {
			out = append(out, record)
		}
	}
	return out
}

// ForeignRepositories returns the configured sources classified foreign.
func (r RunReport) ForeignRepositories() []RepositoryEntry {
	var out []RepositoryEntry
	for _, entry := range r.Repositories {
		if entry.Origin == OriginForeign {
			out = append(out, entry)
		}
	}
	return out
}
