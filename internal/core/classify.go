package core

import (
	debversion "github.com/knqyf263/go-deb-version"

	"github.com/dragon-Elec/gfx-doctor/internal/policies"
	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// Classifier determines the install origin of packages and repositories
// by cross-referencing the package manager's policy data against the
// official mirror set.
type Classifier struct {
	Mirrors policies.MirrorPolicy
}

func NewClassifier(mirrors policies.MirrorPolicy) Classifier {
	return Classifier{Mirrors: mirrors}
}

// ClassifyRepository returns the entry with its Origin set from the
// mirror policy.
func (c Classifier) ClassifyRepository(entry types.RepositoryEntry) types.RepositoryEntry {
	if c.Mirrors.OfficialURI(entry.URI) {
		entry.Origin = types.OriginOfficial
	} else {
		entry.Origin = types.OriginForeign
	}
	return entry
}

// ClassifyPackage builds a PackageRecord from policy data. The installed
// version is official only if it appears among the rows available from
// an official archive origin; a version absent from that candidate list
// is foreign, whatever its origin label claims. The record's candidate
// is the highest version the official archive offers.
func (c Classifier) ClassifyPackage(policy types.PackagePolicy) types.PackageRecord {
	record := types.PackageRecord{
		Name:      policy.Name,
		Installed: policy.Installed,
	}
	if !policy.Known() {
		record.Origin = types.OriginUnknown
		return record
	}

	officialVersions := make(map[string]struct{})
	for _, row := range policy.Versions {
		for _, origin := range row.Origins {
			if c.Mirrors.Official(origin.Site) {
				officialVersions[row.Version] = struct{}{}
				break
			}
		}
	}
	record.Candidate = highestVersion(officialVersions)

	if policy.Installed == "" {
		record.Origin = types.OriginMissing
		return record
	}
	if _, ok := officialVersions[policy.Installed]; ok {
		record.Origin = types.OriginOfficial
		return record
	}
	record.Origin = types.OriginForeign
	record.OriginSite = installedSite(policy)
	return record
}

// installedSite returns the first remote origin site of the installed
// version's policy row, if any.
func installedSite(policy types.PackagePolicy) string {
	for _, row := range policy.Versions {
		if row.Version != policy.Installed {
			continue
		}
		for _, origin := range row.Origins {
			if origin.Site != "" {
				return origin.Site
			}
		}
	}
	return ""
}

// highestVersion picks the maximum Debian version from the set. Versions
// that fail to parse compare as equal, matching apt's lenient handling.
func highestVersion(versions map[string]struct{}) string {
	best := ""
	for version := range versions {
		if best == "" || CompareVersions(version, best) > 0 {
			best = version
		}
	}
	return best
}

// CompareVersions compares two Debian version strings, returning -1, 0,
// or 1. Parse failures yield 0.
func CompareVersions(a string, b string) int {
	v1, err := debversion.NewVersion(a)
	if err != nil {
		return 0
	}
	v2, err := debversion.NewVersion(b)
	if err != nil {
		return 0
	}
	return v1.Compare(v2)
}
