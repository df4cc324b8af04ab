package vos

import (
	"io"
	"io/fs"

	"github.com/spf13/afero"
)

// VIO holds the standard streams of the interpreter or of a child process.
type VIO interface {
	Stdin() io.ReadCloser
	Stdout() io.WriteCloser
	Stderr() io.WriteCloser
}

// VFS resolves file names against the interpreter's working directory.
type VFS interface {
	Stat(name string) (fs.FileInfo, error)
	OpenFile(name string, flag int, perm fs.FileMode) (afero.File, error)

	// Abs returns name as an absolute, cleaned path. Relative names are joined
	// to the working directory.
	Abs(name string) string
}

// VProc holds the process-level state the interpreter mutates or spawns from.
type VProc interface {
	Getwd() string
	Chdir(dir string) error

	// StartProcess starts the executable at path. The returned Process must be
	// waited on before the next command is run.
	StartProcess(path string, argv []string, attr *ProcAttr) (Process, error)
}

// VOS provides the virtual OS interface the interpreter runs against.
type VOS interface {
	VFS
	VProc
	VIO
}

// ProcAttr holds the attributes that will be applied to a new process.
type ProcAttr struct {
	// Dir is the working directory of the child.
	Dir string

	// Env holds the child's environment in "key=value" form. A nil Env
	// inherits the interpreter's environment.
	Env []string

	// Files holds the child's standard streams.
	Files VIO
}

// Process is a started child process.
type Process interface {
	// Pid returns the OS (or fake) process id.
	Pid() int

	// Wait blocks until the child terminates and returns its exit status, or
	// -1 if it was killed by a signal or could not be waited on.
	Wait() int
}
