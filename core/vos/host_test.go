package vos

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requireFile(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Skipf("%s not available: %v", path, err)
	}
}

func TestHostOS_StartProcess(t *testing.T) {
	requireFile(t, "/bin/sh")

	host, err := NewHostOS(NewNullIO())
	if err != nil {
		t.Fatal(err)
	}

	t.Run("output and argv", func(t *testing.T) {
		buf := &bytes.Buffer{}
		proc, err := host.StartProcess("/bin/sh", []string{"sh", "-c", `echo "$0" "$1"`, "x", "y"}, &ProcAttr{
			Files: NewVIOAdapter(nil, buf, nil),
		})
		assert.Nil(t, err)
		assert.Equal(t, 0, proc.Wait())
		assert.Equal(t, "x y\n", buf.String())
	})

	t.Run("exit status", func(t *testing.T) {
		proc, err := host.StartProcess("/bin/sh", []string{"sh", "-c", "exit 3"}, &ProcAttr{})
		assert.Nil(t, err)
		assert.NotZero(t, proc.Pid())
		assert.Equal(t, 3, proc.Wait())
	})

	t.Run("directory", func(t *testing.T) {
		dir, err := filepath.EvalSymlinks(t.TempDir())
		assert.Nil(t, err)

		buf := &bytes.Buffer{}
		proc, err := host.StartProcess("/bin/sh", []string{"sh", "-c", "pwd -P"}, &ProcAttr{
			Dir:   dir,
			Files: NewVIOAdapter(nil, buf, nil),
		})
		assert.Nil(t, err)
		proc.Wait()
		assert.Equal(t, dir, strings.TrimSpace(buf.String()))
	})

	t.Run("missing executable", func(t *testing.T) {
		_, err := host.StartProcess("/does/not/exist", []string{"exist"}, &ProcAttr{})
		assert.Error(t, err)
	})
}

func TestHostOS_Chdir(t *testing.T) {
	start, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(start)

	dir, err := filepath.EvalSymlinks(t.TempDir())
	assert.Nil(t, err)

	host, err := NewHostOS(NewNullIO())
	assert.Nil(t, err)
	assert.Equal(t, start, host.Getwd())

	t.Run("detached", func(t *testing.T) {
		assert.Nil(t, host.Chdir(dir))
		assert.Equal(t, dir, host.Getwd())

		procDir, _ := os.Getwd()
		assert.Equal(t, start, procDir)
	})

	t.Run("synced", func(t *testing.T) {
		host.SyncProcessDir = true
		assert.Nil(t, host.Chdir(start))
		assert.Nil(t, host.Chdir(dir))

		procDir, _ := os.Getwd()
		assert.Equal(t, dir, procDir)
	})
}

func TestHostOS_ChdirFollowsSymlinksBeforeParent(t *testing.T) {
	start, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(start)

	root, err := filepath.EvalSymlinks(t.TempDir())
	assert.Nil(t, err)
	assert.Nil(t, os.MkdirAll(filepath.Join(root, "real", "inner"), 0755))
	assert.Nil(t, os.MkdirAll(filepath.Join(root, "here", "onlyhere"), 0755))
	if err := os.Symlink(filepath.Join(root, "real", "inner"), filepath.Join(root, "here", "link")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	for _, synced := range []bool{false, true} {
		t.Run(fmt.Sprintf("synced=%v", synced), func(t *testing.T) {
			host, err := NewHostOS(NewNullIO())
			assert.Nil(t, err)
			host.SyncProcessDir = synced

			assert.Nil(t, host.Chdir(filepath.Join(root, "here")))
			assert.Nil(t, host.Chdir("link"))
			assert.Equal(t, filepath.Join(root, "real", "inner"), host.Getwd())

			assert.Nil(t, host.Chdir(".."))
			assert.Equal(t, filepath.Join(root, "real"), host.Getwd())

			assert.Nil(t, host.Chdir("inner/../../here/link/.."))
			assert.Equal(t, filepath.Join(root, "real"), host.Getwd())

			// Only the physical parent of link holds inner.
			assert.Nil(t, host.Chdir(filepath.Join(root, "here")))
			assert.Nil(t, host.Chdir("link/../inner"))
			assert.Equal(t, filepath.Join(root, "real", "inner"), host.Getwd())

			// Only the lexical parent of link holds onlyhere.
			assert.Nil(t, host.Chdir(filepath.Join(root, "here")))
			assert.Error(t, host.Chdir("link/../onlyhere"))
			assert.Equal(t, filepath.Join(root, "here"), host.Getwd())

			if synced {
				procDir, _ := os.Getwd()
				assert.Equal(t, host.Getwd(), procDir)
			}
		})
	}
}

func TestHostOS_LookPathSkipsFilesOthersCanExecute(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("root may execute any file with an execute bit")
	}

	root, err := filepath.EvalSymlinks(t.TempDir())
	assert.Nil(t, err)
	for dir, perm := range map[string]os.FileMode{"group": 0610, "owner": 0700} {
		assert.Nil(t, os.Mkdir(filepath.Join(root, dir), 0755))
		path := filepath.Join(root, dir, "tool")
		assert.Nil(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0600))
		assert.Nil(t, os.Chmod(path, perm))
	}

	host, err := NewHostOS(NewNullIO())
	assert.Nil(t, err)

	prefixes := []string{root + "/group/", root + "/owner/"}
	actual, err := LookPath(host, prefixes, "tool")
	assert.Nil(t, err)
	assert.Equal(t, root+"/owner/tool", actual)
}
