package shell

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/msh-project/msh/core/logger"
	"github.com/stretchr/testify/assert"
)

func TestListBuiltins(t *testing.T) {
	assert.Equal(t, []string{"cd", "exit", "quit"}, ListBuiltins())
}

func TestCd(t *testing.T) {
	cases := map[string]struct {
		args    []string
		wantErr error
		wantDir string
	}{
		"absolute": {
			args:    []string{"cd", "/tmp"},
			wantDir: "/tmp",
		},
		"relative": {
			args:    []string{"cd", "tmp"},
			wantDir: "/tmp",
		},
		"option-like names are directories": {
			args:    []string{"cd", "-x"},
			wantErr: fs.ErrNotExist,
			wantDir: "/",
		},
		"no argument": {
			args:    []string{"cd"},
			wantErr: ErrCdUsage,
			wantDir: "/",
		},
		"too many arguments": {
			args:    []string{"cd", "/tmp", "/"},
			wantErr: ErrCdUsage,
			wantDir: "/",
		},
		"missing directory": {
			args:    []string{"cd", "/does/not/exist"},
			wantErr: fs.ErrNotExist,
			wantDir: "/",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			s, mem, _, _ := newTestShell(t)

			err := Cd(s, tc.args)

			if tc.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tc.wantErr), "got error %v", err)
			}
			assert.Equal(t, tc.wantDir, mem.Getwd())
		})
	}
}

func TestCd_notADirectory(t *testing.T) {
	s, mem, _, _ := newTestShell(t)

	err := Cd(s, []string{"cd", "/bin/echo"})

	var opErr *OpError
	assert.True(t, errors.As(err, &opErr))
	assert.Equal(t, OpChdir, opErr.Op)
	assert.Equal(t, "/", mem.Getwd())
}

func TestDispatchBuiltin(t *testing.T) {
	s, mem, buf, events := newTestShell(t)

	assert.False(t, s.DispatchBuiltin(TokenList{"echo", "hi"}))
	assert.False(t, s.DispatchBuiltin(TokenList{"cd-not", "/tmp"}))
	assert.Empty(t, events.events)

	assert.True(t, s.DispatchBuiltin(TokenList{"cd", "/tmp"}))
	assert.Equal(t, "/tmp", mem.Getwd())
	assert.Empty(t, buf.String())

	assert.True(t, s.DispatchBuiltin(TokenList{"cd"}))
	assert.Equal(t, ErrorMessage, buf.String())
	assert.Equal(t, "/tmp", mem.Getwd())

	assert.False(t, s.Quit)
	assert.True(t, s.DispatchBuiltin(TokenList{"exit", "1"}))
	assert.True(t, s.Quit)

	assert.Empty(t, mem.Started)

	errs := events.errors()
	assert.Len(t, errs, 1)
	assert.Equal(t, OpBuiltin, errs[0].Op)
	assert.Equal(t, []string{"cd"}, errs[0].Command)

	var builtins []*logger.BuiltinCommand
	for _, event := range events.events {
		if bc, ok := event.(*logger.BuiltinCommand); ok {
			builtins = append(builtins, bc)
		}
	}
	assert.Len(t, builtins, 3)
	assert.Equal(t, ErrCdUsage.Error(), builtins[1].Error)
}

func TestDispatchBuiltin_chdirFailureLeavesDirectory(t *testing.T) {
	s, mem, buf, _ := newTestShell(t)

	for i := 0; i < 3; i++ {
		assert.True(t, s.DispatchBuiltin(TokenList{"cd", "/missing"}))
		assert.Equal(t, "/", mem.Getwd())
	}

	assert.Equal(t, ErrorMessage+ErrorMessage+ErrorMessage, buf.String())
}

func TestShellBuiltinFunc(t *testing.T) {
	var gotArgs []string
	var builtin ShellBuiltin = ShellBuiltinFunc(func(s *Shell, args []string) error {
		gotArgs = args
		return nil
	})

	assert.NoError(t, builtin.Main(nil, []string{"x", "y"}))
	assert.Equal(t, []string{"x", "y"}, gotArgs)
}
