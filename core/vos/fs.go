package vos

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

// DirFS is an afero.Fs viewed from a mutable working directory. It is the
// only place the interpreter's working directory is stored.
type DirFS struct {
	fs  afero.Fs
	cwd string
}

// NewDirFS creates a DirFS rooted at the absolute directory cwd.
func NewDirFS(fs afero.Fs, cwd string) *DirFS {
	return &DirFS{
		fs:  fs,
		cwd: filepath.Clean(cwd),
	}
}

var _ VFS = (*DirFS)(nil)

// Fs returns the backing file system.
func (d *DirFS) Fs() afero.Fs {
	return d.fs
}

func (d *DirFS) Abs(name string) string {
	if filepath.IsAbs(name) {
		return filepath.Clean(name)
	}
	return filepath.Join(d.cwd, name)
}

func (d *DirFS) Stat(name string) (fs.FileInfo, error) {
	return d.fs.Stat(d.Abs(name))
}

func (d *DirFS) OpenFile(name string, flag int, perm fs.FileMode) (afero.File, error) {
	return d.fs.OpenFile(d.Abs(name), flag, perm)
}

func (d *DirFS) Getwd() string {
	return d.cwd
}

// Chdir changes the working directory. On failure the directory is unchanged.
func (d *DirFS) Chdir(dir string) error {
	target := d.Abs(dir)

	info, err := d.fs.Stat(target)
	if err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	if !info.IsDir() {
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	}

	d.cwd = target
	return nil
}
