package sio

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Prompter asks yes/no questions on the console. It keeps one buffered
// reader across questions so no input is lost between prompts.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Confirm prints the prompt and reads one line. Only "y" or "yes" counts as
// approval, anything else including a read failure declines.
func (p *Prompter) Confirm(prompt string) bool {
	_, _ = fmt.Fprintf(p.out, "%s [y/N] ", prompt)
	line, rErr := p.in.ReadString('\n')
	if rErr != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
