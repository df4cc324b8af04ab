package shell

import (
	"errors"
	"io"
	"log"

	"github.com/abiosoft/readline"
	"github.com/msh-project/msh/core/config"
	"github.com/msh-project/msh/core/logger"
	"github.com/msh-project/msh/core/vos"
)

// EventRecorder receives structured events about each command.
type EventRecorder interface {
	Record(event logger.LogType) error
}

// LineReader supplies raw command lines, without the trailing newline.
//
// At end of input it returns io.EOF, along with any final partial line.
type LineReader interface {
	ReadLine() (string, error)
}

type Shell struct {
	OS        vos.VOS
	Tokenizer Tokenizer
	Executor  *Executor

	// MaxLineLength truncates raw lines before tokenizing. Zero means no cap.
	MaxLineLength int

	Events EventRecorder

	// Log receives error detail that is never shown to the user.
	Log *log.Logger

	// Set to true to quit the shell
	Quit bool
}

var _ Reporter = (*Shell)(nil)

// New creates a shell with the default limits and search prefixes that
// discards its logs.
func New(virtualOS vos.VOS) *Shell {
	s := &Shell{
		OS:            virtualOS,
		Tokenizer:     DefaultTokenizer(),
		MaxLineLength: DefaultMaxLineLength,
		Events:        logger.NopRecorder{},
		Log:           log.New(io.Discard, "", 0),
	}
	s.Executor = &Executor{
		OS:             virtualOS,
		SearchPrefixes: vos.DefaultSearchPrefixes,
		Reporter:       s,
	}
	return s
}

// NewFromConfig creates a shell using the limits and search prefixes in cfg.
func NewFromConfig(virtualOS vos.VOS, cfg *config.Configuration) *Shell {
	s := New(virtualOS)
	s.MaxLineLength = cfg.Limits.MaxLineLength
	s.Tokenizer = Tokenizer{
		MaxTokens:      cfg.Limits.MaxTokens,
		MaxTokenLength: cfg.Limits.MaxTokenLength,
		PreserveGaps:   cfg.PreserveEmptyTokens,
	}
	s.Executor.SearchPrefixes = append([]string(nil), cfg.SearchPrefixes...)
	return s
}

// Report prints the fixed diagnostic and logs the detail of err.
func (s *Shell) Report(err error) {
	io.WriteString(s.OS.Stderr(), ErrorMessage)
	s.Log.Printf("error: %v", err)

	event := &logger.Error{Op: "unknown", Message: err.Error()}
	var opErr *OpError
	if errors.As(err, &opErr) {
		event.Op = opErr.Op
		event.Command = opErr.Command
		event.Message = opErr.Err.Error()
	}
	s.Record(event)
}

// Record writes an event, logging rather than surfacing any failure.
func (s *Shell) Record(event logger.LogType) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Record(event); err != nil {
		s.Log.Printf("event log: %v", err)
	}
}

// RunCommand tokenizes and runs a single line. Failures are reported and
// never stop the shell.
func (s *Shell) RunCommand(line string) {
	tokens := s.Tokenizer.Tokenize(truncate(line, s.MaxLineLength))
	if tokens.Empty() {
		return
	}

	if s.DispatchBuiltin(tokens) {
		return
	}

	status := s.Executor.Execute(tokens)
	s.Log.Printf("%s exited with status %d", tokens[0], status)
}

// Run reads and executes lines until input ends or a builtin quits the shell.
// It returns the interpreter's exit status.
func (s *Shell) Run(r LineReader) int {
	for !s.Quit {
		line, err := r.ReadLine()

		switch {
		case errors.Is(err, io.EOF):
			// Run a final line that had no trailing newline.
			if line != "" {
				s.RunCommand(line)
			}
			return 0

		case errors.Is(err, readline.ErrInterrupt):
			// Interrupt clears line.
			continue

		case err != nil:
			s.Report(&OpError{Op: OpRead, Err: err})
			continue

		default:
			s.RunCommand(line)
		}
	}
	return 0
}
