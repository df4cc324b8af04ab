package shell

import (
	"bufio"
	"io"
	"strings"
)

type promptReader struct {
	prompt string
	out    io.Writer
	in     *bufio.Reader
}

// NewPromptReader writes prompt to out before reading each line from in.
func NewPromptReader(prompt string, out io.Writer, in io.Reader) LineReader {
	return &promptReader{
		prompt: prompt,
		out:    out,
		in:     bufio.NewReader(in),
	}
}

// NewBatchReader reads lines from in without prompting.
func NewBatchReader(in io.Reader) LineReader {
	return NewPromptReader("", nil, in)
}

func (p *promptReader) ReadLine() (string, error) {
	if p.out != nil && p.prompt != "" {
		io.WriteString(p.out, p.prompt)
	}

	line, err := p.in.ReadString('\n')
	return strings.TrimSuffix(line, "\n"), err
}
