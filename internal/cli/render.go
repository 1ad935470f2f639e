package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// renderReport prints the diagnostic report and, when present, the
// action trace of a restoration run.
func renderReport(w io.Writer, report types.RunReport) {
	fmt.Fprintln(w, "--- gfx-doctor report ---")
	fmt.Fprintf(w, "release: %s (%s)\n", report.Codename, report.Arch)

	if foreign := report.ForeignRepositories(); len(foreign) > 0 {
		fmt.Fprintln(w, "foreign repositories:")
		for _, entry := range foreign {
			fmt.Fprintf(w, "  - %s %s (%s)\n", entry.URI, entry.Suite, entry.File)
		}
	} else {
		fmt.Fprintln(w, "no foreign repositories configured")
	}

	if len(report.Residual) > 0 {
		fmt.Fprintln(w, "removed-but-not-purged remnants:")
		for _, name := range report.Residual {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}

	fmt.Fprintln(w, "package status:")
	for _, record := range report.Packages {
		fmt.Fprintf(w, "  %-25s %s\n", record.Name, statusTag(record))
	}

	if len(report.Actions) > 0 {
		fmt.Fprintln(w, "actions:")
		for _, action := range report.Actions {
			fmt.Fprintf(w, "  [%s] %s: %s\n", action.Outcome, action.Stage, action.Description)
		}
	}
	fmt.Fprintln(w, strings.Repeat("-", 25))
}

func statusTag(record types.PackageRecord) string {
	switch record.Origin {
	case types.OriginOfficial:
		return fmt.Sprintf("[STOCK] %s", record.Installed)
	case types.OriginForeign:
		tag := fmt.Sprintf("[FOREIGN] %s", record.Installed)
		if record.OriginSite != "" {
			tag += fmt.Sprintf(" (from %s)", record.OriginSite)
		}
		if record.Candidate != "" {
			tag += fmt.Sprintf(", official %s", record.Candidate)
		}
		return tag
	case types.OriginMissing:
		return "[MISSING]"
	default:
		return "[NOT FOUND]"
	}
}
