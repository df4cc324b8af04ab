package shell

import (
	"bytes"
	"io"

	"github.com/abiosoft/readline"
	"github.com/fatih/color"
	"github.com/msh-project/msh/core/config"
)

// ColorizePrompt renders prompt according to a config.Color* mode.
func ColorizePrompt(prompt, mode string) string {
	c := color.New(color.FgGreen, color.Bold)
	switch mode {
	case config.ColorNever:
		return prompt
	case config.ColorAlways:
		c.EnableColor()
	}
	return c.Sprint(prompt)
}

// ReadlineReader is a line editor for terminals.
type ReadlineReader struct {
	rl   *readline.Instance
	gate *stdinGate
}

var _ LineReader = (*ReadlineReader)(nil)

// InteractiveOptions configures NewInteractiveReader.
type InteractiveOptions struct {
	Prompt string
	// Color is one of config.ColorAlways, ColorAuto or ColorNever.
	Color string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	IsTerminal func() bool
}

// NewInteractiveReader creates a line editor with history disabled. The
// editor only consumes the terminal while a line is being read, so child
// processes get their input untouched.
func NewInteractiveReader(opts InteractiveOptions) (*ReadlineReader, error) {
	gate := newStdinGate(opts.Stdin)

	cfg := &readline.Config{
		Prompt:         ColorizePrompt(opts.Prompt, opts.Color),
		Stdin:          readline.NewCancelableStdin(gate),
		Stdout:         opts.Stdout,
		Stderr:         opts.Stderr,
		HistoryLimit:   -1,
		FuncIsTerminal: opts.IsTerminal,
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	return &ReadlineReader{rl: rl, gate: gate}, nil
}

func (r *ReadlineReader) ReadLine() (string, error) {
	r.gate.open()
	return r.rl.Readline()
}

func (r *ReadlineReader) Close() error {
	return r.rl.Close()
}

// stdinGate only lets reads through between open and the end of a line.
type stdinGate struct {
	r     io.Reader
	ready chan struct{}
}

func newStdinGate(r io.Reader) *stdinGate {
	return &stdinGate{r: r, ready: make(chan struct{}, 1)}
}

func (g *stdinGate) open() {
	select {
	case g.ready <- struct{}{}:
	default:
	}
}

func (g *stdinGate) Read(p []byte) (int, error) {
	<-g.ready
	n, err := g.r.Read(p)
	if err != nil || !bytes.ContainsAny(p[:n], "\r\n") {
		g.open()
	}
	return n, err
}
