package vostest

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/msh-project/msh/core/vos"
	"github.com/spf13/afero"
)

// ErrNoProgram is returned by MemOS.StartProcess when the path exists but no
// program was installed for it.
var ErrNoProgram = errors.New("no program installed at path")

// ProgramFunc is the body of a fake executable. It returns the exit status.
type ProgramFunc func(argv []string, attr *vos.ProcAttr) int

// Invocation records a single StartProcess call.
type Invocation struct {
	Path string
	Argv []string
	Dir  string
}

// MemOS is a deterministic in-memory VOS for tests.
type MemOS struct {
	*vos.DirFS
	vos.VIO

	// Programs maps absolute paths to fake executables.
	Programs map[string]ProgramFunc
	// Started holds every process started, in order.
	Started []Invocation
	// StartErr, if set, is returned by every StartProcess call.
	StartErr error
	// OpenErr, if set, fails every OpenFile call that asks for write access.
	OpenErr error

	nextPid int
}

var _ vos.VOS = (*MemOS)(nil)

// NewMemOS creates a MemOS with an empty file system, working directory "/"
// and the given streams.
func NewMemOS(stdin io.Reader, stdout, stderr io.Writer) *MemOS {
	return &MemOS{
		DirFS:    vos.NewDirFS(afero.NewMemMapFs(), "/"),
		VIO:      vos.NewVIOAdapter(stdin, stdout, stderr),
		Programs: make(map[string]ProgramFunc),
		nextPid:  100,
	}
}

// NewBufferedMemOS creates a MemOS writing stdout and stderr to the same buffer.
func NewBufferedMemOS() (*MemOS, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewMemOS(nil, buf, buf), buf
}

// Install writes an executable file at path and binds prog to it.
func (m *MemOS) Install(path string, prog ProgramFunc) error {
	abs := m.Abs(path)
	if err := m.Fs().MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return err
	}
	if err := afero.WriteFile(m.Fs(), abs, []byte("#!fake\n"), 0755); err != nil {
		return err
	}
	m.Programs[abs] = prog
	return nil
}

// Mkdir creates a directory and its parents.
func (m *MemOS) Mkdir(path string) error {
	return m.Fs().MkdirAll(m.Abs(path), 0755)
}

// ReadFile reads a file relative to the working directory.
func (m *MemOS) ReadFile(path string) (string, error) {
	out, err := afero.ReadFile(m.Fs(), m.Abs(path))
	return string(out), err
}

// OpenFile opens a file relative to the working directory.
func (m *MemOS) OpenFile(name string, flag int, perm fs.FileMode) (afero.File, error) {
	if m.OpenErr != nil && flag&(os.O_WRONLY|os.O_RDWR) != 0 {
		return nil, &fs.PathError{Op: "open", Path: m.Abs(name), Err: m.OpenErr}
	}
	return m.DirFS.OpenFile(name, flag, perm)
}

// StartProcess looks up the fake program; it runs when Wait is called.
func (m *MemOS) StartProcess(path string, argv []string, attr *vos.ProcAttr) (vos.Process, error) {
	if m.StartErr != nil {
		return nil, m.StartErr
	}

	abs := m.Abs(path)
	prog, ok := m.Programs[abs]
	if !ok {
		return nil, ErrNoProgram
	}

	m.Started = append(m.Started, Invocation{
		Path: abs,
		Argv: append([]string(nil), argv...),
		Dir:  attr.Dir,
	})
	m.nextPid++

	return &memProcess{pid: m.nextPid, prog: prog, argv: argv, attr: attr}, nil
}

type memProcess struct {
	pid  int
	prog ProgramFunc
	argv []string
	attr *vos.ProcAttr
}

func (p *memProcess) Pid() int {
	return p.pid
}

func (p *memProcess) Wait() int {
	return p.prog(p.argv, p.attr)
}

// Echo is a ProgramFunc that prints its arguments like /bin/echo.
func Echo(argv []string, attr *vos.ProcAttr) int {
	out := attr.Files.Stdout()
	for i, arg := range argv[1:] {
		if i > 0 {
			io.WriteString(out, " ")
		}
		io.WriteString(out, arg)
	}
	io.WriteString(out, "\n")
	return 0
}

// Pwd is a ProgramFunc that prints the directory it was started in.
func Pwd(argv []string, attr *vos.ProcAttr) int {
	io.WriteString(attr.Files.Stdout(), attr.Dir+"\n")
	return 0
}

// Exit returns a ProgramFunc that exits with the given status.
func Exit(status int) ProgramFunc {
	return func([]string, *vos.ProcAttr) int {
		return status
	}
}
