package shell

import (
	"io"

	"github.com/msh-project/msh/core/logger"
	"github.com/msh-project/msh/core/vos"
)

// Reporter surfaces failures to the user and records events.
type Reporter interface {
	Report(err error)
	Record(event logger.LogType)
}

// Executor runs commands that are not builtins as child processes.
type Executor struct {
	OS vos.VOS

	// SearchPrefixes are tried in order; the command name is appended to each.
	SearchPrefixes []string

	// Env is the child environment, nil to inherit the interpreter's.
	Env []string

	Reporter Reporter
}

// Execute runs tokens as an external program and blocks until it exits.
// It returns the child's exit status, or -1 if no child was started.
func (e *Executor) Execute(tokens TokenList) int {
	reporter := e.Reporter
	if reporter == nil {
		reporter = discardReporter{}
	}

	redir, err := ResolveRedirection(e.OS, tokens)
	if err != nil {
		// The command still runs, writing to the interpreter's stdout.
		reporter.Report(&OpError{Op: OpRedirect, Command: redir.Args, Err: err})
	}
	defer redir.Close()

	args := redir.Args
	if len(args) == 0 {
		return -1
	}

	path, err := vos.LookPath(e.OS, e.searchPrefixes(), args[0])
	if err != nil {
		reporter.Record(&logger.UnknownCommand{Command: args})
		reporter.Report(&OpError{Op: OpLookup, Command: args, Err: err})
		return -1
	}

	var stdout io.Writer = e.OS.Stdout()
	if redir.Sink != nil {
		stdout = redir.Sink
	}

	dir := e.OS.Getwd()
	proc, err := e.OS.StartProcess(e.OS.Abs(path), args, &vos.ProcAttr{
		Dir:   dir,
		Env:   e.Env,
		Files: vos.NewVIOAdapter(e.OS.Stdin(), stdout, e.OS.Stderr()),
	})
	if err != nil {
		reporter.Report(&OpError{Op: OpSpawn, Command: args, Err: err})
		return -1
	}

	status := proc.Wait()
	reporter.Record(&logger.RunCommand{
		Command:      args,
		ResolvedPath: path,
		RedirectTo:   redir.Target,
		Dir:          dir,
		Pid:          proc.Pid(),
		ExitStatus:   status,
	})

	return status
}

func (e *Executor) searchPrefixes() []string {
	if len(e.SearchPrefixes) == 0 {
		return vos.DefaultSearchPrefixes
	}
	return e.SearchPrefixes
}

type discardReporter struct{}

func (discardReporter) Report(error) {}
func (discardReporter) Record(logger.LogType) {}
