package vos

import (
	"errors"
	"io/fs"
	"os/exec"
)

// ErrNotFound is the error resulting if a search failed to find an executable
// file under any prefix.
var ErrNotFound = exec.ErrNotFound

// DefaultSearchPrefixes are consulted, in order, to resolve a command name.
var DefaultSearchPrefixes = []string{"/bin/", "/usr/bin/", "/usr/local/bin/", "./"}

// ExecChecker is implemented by file systems that can ask the OS whether the
// caller may execute a file, rather than relying on the mode bits alone.
type ExecChecker interface {
	CanExecute(name string) error
}

func findExecutable(vfs VFS, file string) error {
	d, err := vfs.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}

	m := d.Mode()
	switch checker, ok := vfs.(ExecChecker); {
	case m.IsDir():
		return fs.ErrPermission
	case ok:
		return checker.CanExecute(file)
	case m&0111 != 0:
		return nil
	default:
		return fs.ErrPermission
	}
}

// LookPath resolves name by concatenating it to each prefix in turn and
// returning the first candidate that is an executable file. Prefixes are not
// joined with a separator, so "./" + "prog" yields "./prog" which is resolved
// against the working directory of vfs.
func LookPath(vfs VFS, prefixes []string, name string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}

	for _, prefix := range prefixes {
		candidate := prefix + name
		if err := findExecutable(vfs, candidate); err == nil {
			return candidate, nil
		}
	}
	return "", ErrNotFound
}
