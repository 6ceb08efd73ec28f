// Package prompt asks the user yes/no questions on the terminal.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Confirmer answers [y/N] questions. Anything but an explicit yes is no.
type Confirmer struct {
	In  io.Reader
	Out io.Writer
}

// New returns a Confirmer reading from in and writing the question to out.
func New(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{In: in, Out: out}
}

// Confirm prints question followed by " [y/N]: " and reads one line.
// It returns false without asking when In is a file that is not a
// terminal, and false on EOF or read errors.
func (c *Confirmer) Confirm(question string) bool {
	if c.In == nil || !Interactive(c.In) {
		return false
	}
	if c.Out != nil {
		_, _ = fmt.Fprintf(c.Out, "%s [y/N]: ", question)
	}

	line, err := bufio.NewReader(c.In).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	return IsYes(line)
}

// Interactive reports whether r can be prompted. Non-file readers are
// assumed to be scripted input and count as interactive.
func Interactive(r io.Reader) bool {
	f, ok := r.(*os.File)
	if !ok {
		return true
	}
	return term.IsTerminal(int(f.Fd()))
}

// IsYes reports whether answer is an affirmative reply.
func IsYes(answer string) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
