package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/sandeepkv93/taskpad/internal/store"
)

// promptConfirmer asks on out and reads a y/N answer from in. EOF counts
// as no.
type promptConfirmer struct {
	in  *bufio.Reader
	out io.Writer
}

func newPromptConfirmer(in io.Reader, out io.Writer) promptConfirmer {
	return promptConfirmer{in: bufio.NewReader(in), out: out}
}

func (c promptConfirmer) Confirm(prompt string) (bool, error) {
	if _, err := fmt.Fprintf(c.out, "%s [y/N]: ", prompt); err != nil {
		return false, err
	}
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, fmt.Errorf("cli: read confirmation: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// confirmerFor skips the prompt when --yes was given.
func confirmerFor(yes bool, in io.Reader, out io.Writer) store.Confirmer {
	if yes {
		return store.ConfirmFunc(func(string) (bool, error) { return true, nil })
	}
	return newPromptConfirmer(in, out)
}
