package shell

import (
	"errors"
	"sort"

	"github.com/msh-project/msh/core/logger"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin runs inside the interpreter process. args includes the
// builtin's own name.
type ShellBuiltin interface {
	Main(s *Shell, args []string) error
}

type ShellBuiltinFunc func(s *Shell, args []string) error

func (f ShellBuiltinFunc) Main(s *Shell, args []string) error {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Exit quits the shell. Arguments are ignored.
func Exit(s *Shell, args []string) error {
	s.Quit = true
	return nil
}

// Cd is the cd shell builtin
func Cd(s *Shell, args []string) error {
	if len(args) != 2 {
		return ErrCdUsage
	}

	if err := s.OS.Chdir(args[1]); err != nil {
		return &OpError{Op: OpChdir, Command: args, Err: err}
	}
	return nil
}

// ListBuiltins returns the sorted names of all builtins.
func ListBuiltins() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DispatchBuiltin runs the builtin named by the first token. It returns false,
// with no side effects, if there is no such builtin.
func (s *Shell) DispatchBuiltin(tokens TokenList) bool {
	args := tokens.Args()
	if len(args) == 0 {
		return false
	}

	builtin, ok := AllBuiltins[args[0]]
	if !ok {
		return false
	}

	event := &logger.BuiltinCommand{Command: args}
	if err := builtin.Main(s, args); err != nil {
		event.Error = err.Error()

		var opErr *OpError
		if !errors.As(err, &opErr) {
			err = &OpError{Op: OpBuiltin, Command: args, Err: err}
		}
		s.Report(err)
	}
	s.Record(event)

	return true
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["quit"] = ShellBuiltinFunc(Exit)
}
