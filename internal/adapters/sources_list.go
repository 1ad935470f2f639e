package adapters

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/dragon-Elec/gfx-doctor/internal/ports"
	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// SourcesListAdapter enumerates configured APT sources from both the
// classic one-line format and the deb822 .sources format. Read-only.
type SourcesListAdapter struct {
	Dir string
}

func NewSourcesListAdapter() SourcesListAdapter {
	return SourcesListAdapter{Dir: "/etc/apt"}
}

func (a SourcesListAdapter) ListRepositories() ([]types.RepositoryEntry, error) {
	var entries []types.RepositoryEntry

	mainList := filepath.Join(a.Dir, "sources.list")
	if content, err := os.ReadFile(mainList); err == nil {
		entries = append(entries, ParseSourcesList(string(content), mainList)...)
	}

	partsDir := filepath.Join(a.Dir, "sources.list.d")
	parts, err := os.ReadDir(partsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return entries, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to enumerate repository sources").
			WithCause(err)
	}
	for _, part := range parts {
		if part.IsDir() {
			continue
		}
		path := filepath.Join(partsDir, part.Name())
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read repository source file").
				WithCause(err)
		}
		switch filepath.Ext(part.Name()) {
		case ".list":
			entries = append(entries, ParseSourcesList(string(content), path)...)
		case ".sources":
			entries = append(entries, ParseDeb822Sources(string(content), path)...)
		}
	}
	return entries, nil
}

// ParseSourcesList parses the one-line sources.list format:
//
//	deb [arch=amd64 signed-by=/key.gpg] http://host/ubuntu jammy main universe
func ParseSourcesList(content string, file string) []types.RepositoryEntry {
	var entries []types.RepositoryEntry
	for _, line := range strings.Split(content, "\n") {
		if entry, ok := parseSourceLine(line, file); ok {
			entries = append(entries, entry)
		}
	}
	return entries
}

func parseSourceLine(line string, file string) (types.RepositoryEntry, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return types.RepositoryEntry{}, false
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return types.RepositoryEntry{}, false
	}
	entry := types.RepositoryEntry{File: file}
	switch fields[0] {
	case "deb":
		entry.Type = types.SourceTypeDeb
	case "deb-src":
		entry.Type = types.SourceTypeDebSrc
	default:
		return types.RepositoryEntry{}, false
	}
	fields = fields[1:]

	// Optional [key=value ...] option block, possibly spanning fields.
	if strings.HasPrefix(fields[0], "[") {
		var options []string
		for len(fields) > 0 {
			field := fields[0]
			fields = fields[1:]
			options = append(options, strings.Trim(field, "[]"))
			if strings.HasSuffix(field, "]") {
				break
			}
		}
		for _, option := range options {
			if value, ok := strings.CutPrefix(option, "signed-by="); ok {
				entry.SignedBy = value
			}
		}
	}
	if len(fields) < 2 {
		return types.RepositoryEntry{}, false
	}
	entry.URI = fields[0]
	entry.Suite = fields[1]
	entry.Components = fields[2:]
	return entry, true
}

// ParseDeb822Sources parses the deb822 .sources format. Each stanza may
// declare multiple types, URIs, and suites; one entry is produced per
// combination, matching what apt itself sees.
func ParseDeb822Sources(content string, file string) []types.RepositoryEntry {
	var entries []types.RepositoryEntry
	for _, stanza := range strings.Split(content, "\n\n") {
		fields := parseDeb822Stanza(stanza)
		if strings.EqualFold(fields["Enabled"], "no") {
			continue
		}
		sourceTypes := strings.Fields(fields["Types"])
		uris := strings.Fields(fields["URIs"])
		suites := strings.Fields(fields["Suites"])
		components := strings.Fields(fields["Components"])
		if len(sourceTypes) == 0 || len(uris) == 0 || len(suites) == 0 {
			continue
		}
		for _, sourceType := range sourceTypes {
			if sourceType != string(types.SourceTypeDeb) && sourceType != string(types.SourceTypeDebSrc) {
				continue
			}
			for _, uri := range uris {
				for _, suite := range suites {
					entries = append(entries, types.RepositoryEntry{
						Type:       types.SourceType(sourceType),
						URI:        uri,
						Suite:      suite,
						Components: components,
						SignedBy:   fields["Signed-By"],
						File:       file,
					})
				}
			}
		}
	}
	return entries
}

func parseDeb822Stanza(stanza string) map[string]string {
	fields := map[string]string{}
	for _, line := range strings.Split(stanza, "\n") {
		if strings.HasPrefix(line, "#") || strings.HasPrefix(line, " ") {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		fields[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return fields
}

var _ ports.SourcesPort = SourcesListAdapter{}
