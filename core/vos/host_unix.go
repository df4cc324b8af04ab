//go:build unix

package vos

import "golang.org/x/sys/unix"

var _ ExecChecker = (*HostOS)(nil)

// CanExecute checks execute permission for the real user, like access(2).
func (h *HostOS) CanExecute(name string) error {
	return unix.Access(h.Abs(name), unix.X_OK)
}
