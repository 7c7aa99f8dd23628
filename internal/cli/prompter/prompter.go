package prompter

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompter reads answers from a terminal
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

// New returns a prompter on stdin/stdout
func New() *Prompter {
	return NewWithIO(os.Stdin, os.Stdout)
}

// NewWithIO returns a prompter reading from in and writing prompts to out.
// Password input is only hidden when in is a terminal.
func NewWithIO(in io.Reader, out io.Writer) *Prompter {
	fd := -1
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd = int(f.Fd())
	}
	return &Prompter{in: bufio.NewReader(in), out: out, fd: fd}
}

// String prompts for a line of input
func (p *Prompter) String(label string) (string, error) {
	fmt.Fprint(p.out, label)
	input, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

// Password prompts for a secret without echoing it
func (p *Prompter) Password(label string) (string, error) {
	if p.fd < 0 {
		return p.String(label)
	}

	fmt.Fprint(p.out, label)
	pw, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// Confirm prompts for a yes/no answer
func (p *Prompter) Confirm(label string) (bool, error) {
	answer, err := p.String(label + " (y/n) ")
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// Reader exposes the buffered input so other readers share it
func (p *Prompter) Reader() *bufio.Reader {
	return p.in
}

// Out returns where prompts are written
func (p *Prompter) Out() io.Writer {
	return p.out
}
