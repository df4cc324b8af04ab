package shell

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/msh-project/msh/core/vos"
	"github.com/stretchr/testify/assert"
)

func newHostShell(t *testing.T, dir string) (*Shell, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	host, err := vos.NewHostOS(vos.NewVIOAdapter(nil, buf, buf))
	if err != nil {
		t.Fatal(err)
	}
	if err := host.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	return New(host), buf
}

func tempDir(t *testing.T) string {
	t.Helper()

	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return dir
}

func requireExecutable(t *testing.T, path string) {
	t.Helper()

	if _, err := os.Stat(path); err != nil {
		t.Skipf("%s not available: %v", path, err)
	}
}

func TestHostBatch_cdThenPwd(t *testing.T) {
	requireExecutable(t, "/bin/pwd")
	start, target := tempDir(t), tempDir(t)
	s, buf := newHostShell(t, start)

	script := fmt.Sprintf("pwd\ncd %s\npwd\n", target)
	status := s.Run(NewBatchReader(strings.NewReader(script)))

	assert.Equal(t, 0, status)
	assert.Equal(t, start+"\n"+target+"\n", buf.String())
}

func TestHostBatch_redirect(t *testing.T) {
	requireExecutable(t, "/bin/echo")
	dir := tempDir(t)
	s, buf := newHostShell(t, dir)

	status := s.Run(NewBatchReader(strings.NewReader("echo hi > out.txt\n")))

	assert.Equal(t, 0, status)
	assert.Empty(t, buf.String())

	got, err := os.ReadFile(filepath.Join(dir, "out.txt"))
	assert.NoError(t, err)
	assert.Equal(t, "hi\n", string(got))

	info, err := os.Stat(filepath.Join(dir, "out.txt"))
	assert.NoError(t, err)
	assert.Equal(t, RedirectPerm, info.Mode().Perm())
}

func TestHostBatch_localExecutable(t *testing.T) {
	requireExecutable(t, "/bin/sh")
	dir := tempDir(t)
	script := "#!/bin/sh\necho \"local $1\"\n"
	if err := os.WriteFile(filepath.Join(dir, "msh-test-local"), []byte(script), 0755); err != nil {
		t.Fatal(err)
	}
	s, buf := newHostShell(t, dir)

	s.RunCommand("msh-test-local arg")

	assert.Equal(t, "local arg\n", buf.String())
}

func TestHostBatch_unknownCommand(t *testing.T) {
	s, buf := newHostShell(t, tempDir(t))

	s.RunCommand("msh-definitely-not-a-real-command")

	assert.Equal(t, ErrorMessage, buf.String())
}
