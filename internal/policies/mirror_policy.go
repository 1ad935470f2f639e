package policies

import (
	"net/url"
	"strings"
)

// officialHosts are archive hosts whose packages count as stock. The set
// covers the primary Ubuntu archive, its security pocket, the ports
// archive, and the Zorin archive the original deployment targets.
var officialHosts = []string{
	"archive.ubuntu.com",
	"security.ubuntu.com",
	"ports.ubuntu.com",
	"esm.ubuntu.com",
	"deb.debian.org",
	"security.debian.org",
	"archive.debian.org",
	"packages.zorin.com",
}

// officialSuffixes match regional and cloud CDN mirrors, e.g.
// us.archive.ubuntu.com or azure.archive.ubuntu.com.
var officialSuffixes = []string{
	".archive.ubuntu.com",
	".ports.ubuntu.com",
	".ec2.archive.ubuntu.com",
	".clouds.archive.ubuntu.com",
	".debian.org",
}

// MirrorPolicy decides whether an archive host is part of the official
// mirror set. The set is extendable so regional or institutional mirrors
// can be whitelisted through configuration instead of code changes.
type MirrorPolicy struct {
	hosts    map[string]struct{}
	suffixes []string
}

func NewMirrorPolicy(extraHosts []string) MirrorPolicy {
	policy := MirrorPolicy{
		hosts:    make(map[string]struct{}, len(officialHosts)+len(extraHosts)),
		suffixes: officialSuffixes,
	}
	for _, host := range officialHosts {
		policy.hosts[host] = struct{}{}
	}
	for _, host := range extraHosts {
		host = strings.ToLower(strings.TrimSpace(host))
		if host == "" {
			continue
		}
		if strings.HasPrefix(host, ".") {
			policy.suffixes = append(policy.suffixes, host)
			continue
		}
		policy.hosts[host] = struct{}{}
	}
	return policy
}

// Official reports whether the given archive host belongs to the
// official mirror set. The local dpkg status "origin" has no host and is
// treated as not official on its own.
func (p MirrorPolicy) Official(host string) bool {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return false
	}
	if _, ok := p.hosts[host]; ok {
		return true
	}
	for _, suffix := range p.suffixes {
		if strings.HasSuffix(host, suffix) {
			return true
		}
	}
	return false
}

// OfficialURI classifies a repository URI by its host part.
func (p MirrorPolicy) OfficialURI(uri string) bool {
	return p.Official(HostOf(uri))
}

// HostOf extracts the lowercase host from a repository URI. Malformed
// URIs and non-URL sources (cdrom:, file:) yield an empty host.
func HostOf(uri string) string {
	parsed, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}
