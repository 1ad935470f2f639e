package adapters

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dragon-Elec/gfx-doctor/internal/ports"
)

// StdinPromptAdapter reads the interactive confirmation from the
// terminal. Anything other than "yes" declines.
type StdinPromptAdapter struct {
	In  io.Reader
	Out io.Writer
}

func NewStdinPromptAdapter() StdinPromptAdapter {
	return StdinPromptAdapter{In: os.Stdin, Out: os.Stdout}
}

func (a StdinPromptAdapter) Confirm(message string) (bool, error) {
	fmt.Fprintf(a.Out, "%s Type 'yes' to continue: ", message)
	reader := bufio.NewReader(a.In)
	line, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	return strings.EqualFold(strings.TrimSpace(line), "yes"), nil
}

var _ ports.PromptPort = StdinPromptAdapter{}
