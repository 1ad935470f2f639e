package adapters

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"github.com/dragon-Elec/gfx-doctor/internal/ports"
	"github.com/dragon-Elec/gfx-doctor/internal/types"
)

// PinFileName is the apt preferences fragment owned by this tool. The
// 99- prefix keeps it last in lexical order among preference files.
const PinFileName = "99-gfx-doctor-override.pref"

// PinFileAdapter writes the temporary pin file and guarantees its
// removal. Apply hands back an idempotent remove closure the executor
// defers, so the file is gone on every exit path.
type PinFileAdapter struct {
	Dir string
}

func NewPinFileAdapter(dir string) PinFileAdapter {
	if dir == "" {
		dir = "/etc/apt/preferences.d"
	}
	return PinFileAdapter{Dir: dir}
}

func (a PinFileAdapter) path() string {
	return filepath.Join(a.Dir, PinFileName)
}

func (a PinFileAdapter) Exists() bool {
	_, err := os.Stat(a.path())
	return err == nil
}

func (a PinFileAdapter) Apply(directives []types.PinDirective) (func() error, error) {
	path := a.path()
	if a.Exists() {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("stale pin file found at %s; a previous run did not clean up, remove it manually", path))
	}
	if err := os.WriteFile(path, []byte(RenderPreferences(directives)), 0644); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write pin file").
			WithCause(err)
	}
	remove := func() error {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	}
	return remove, nil
}

// RenderPreferences renders directives in apt_preferences(5) stanza
// format, one stanza per directive.
func RenderPreferences(directives []types.PinDirective) string {
	var b strings.Builder
	b.WriteString("# Managed by gfx-doctor. Removed automatically after each run.\n")
	for _, directive := range directives {
		b.WriteString("\n")
		if directive.Reason != "" {
			fmt.Fprintf(&b, "# %s\n", directive.Reason)
		}
		fmt.Fprintf(&b, "Package: %s\n", directive.Package)
		fmt.Fprintf(&b, "Pin: %s\n", directive.Pin)
		fmt.Fprintf(&b, "Pin-Priority: %d\n", directive.Priority)
	}
	return b.String()
}

var _ ports.PinPort = PinFileAdapter{}
