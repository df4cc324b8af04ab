package vos

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/afero"
)

// HostOS runs commands against the real file system and process table.
type HostOS struct {
	*DirFS
	VIO

	// SyncProcessDir mirrors every successful Chdir onto the interpreter
	// process itself so the change is process-wide.
	SyncProcessDir bool
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a HostOS starting in the process's current directory.
func NewHostOS(vio VIO) (*HostOS, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	return &HostOS{
		DirFS: NewDirFS(afero.NewOsFs(), cwd),
		VIO:   vio,
	}, nil
}

// Chdir changes the working directory the way chdir(2) does: symlinks are
// followed before any ".." is applied. On failure the directory is unchanged.
func (h *HostOS) Chdir(dir string) error {
	path := dir
	if !filepath.IsAbs(path) {
		// Left uncleaned so ".." applies after symlinks are followed.
		path = h.cwd + string(filepath.Separator) + dir
	}

	if h.SyncProcessDir {
		if err := os.Chdir(path); err != nil {
			return err
		}
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		h.cwd = wd
		return nil
	}

	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	return h.DirFS.Chdir(resolved)
}

// StartProcess forks and execs path. Streams that are *os.File values are
// inherited directly; anything else is copied through a pipe by os/exec.
func (h *HostOS) StartProcess(path string, argv []string, attr *ProcAttr) (Process, error) {
	if attr == nil {
		attr = &ProcAttr{}
	}
	files := attr.Files
	if files == nil {
		files = NewNullIO()
	}

	cmd := &exec.Cmd{
		Path: path,
		Args: argv,
		Dir:  attr.Dir,
		Env:  attr.Env,
	}
	if stdin := files.Stdin(); !IsNull(stdin) {
		cmd.Stdin = stdin
	}
	if stdout := files.Stdout(); !IsNull(stdout) {
		cmd.Stdout = stdout
	}
	if stderr := files.Stderr(); !IsNull(stderr) {
		cmd.Stderr = stderr
	}

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return &hostProcess{cmd: cmd}, nil
}

type hostProcess struct {
	cmd *exec.Cmd
}

func (p *hostProcess) Pid() int {
	return p.cmd.Process.Pid
}

func (p *hostProcess) Wait() int {
	err := p.cmd.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return 0
	case errors.As(err, &exitErr):
		return exitErr.ExitCode()
	default:
		return -1
	}
}
