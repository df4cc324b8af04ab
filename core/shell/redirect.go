package shell

import (
	"os"

	"github.com/msh-project/msh/core/vos"
	"github.com/spf13/afero"
)

const (
	// RedirectMarker sends a command's standard output to the next token.
	RedirectMarker = ">"

	// RedirectPerm is applied to files created by redirection.
	RedirectPerm os.FileMode = 0600

	redirectFlags = os.O_RDWR | os.O_CREATE | os.O_TRUNC
)

// Redirection is the result of scanning a command for output redirection.
type Redirection struct {
	// Args are the arguments to pass to the program, with the marker and
	// everything after it removed.
	Args []string

	// Target is the destination path, empty if there was no marker or no
	// token followed it.
	Target string

	// Sink is the opened destination, nil if there was no redirection or the
	// open failed.
	Sink afero.File
}

// Close releases the sink, if any.
func (r *Redirection) Close() error {
	if r == nil || r.Sink == nil {
		return nil
	}
	err := r.Sink.Close()
	r.Sink = nil
	return err
}

// ResolveRedirection finds the first marker after the command name and opens
// its target relative to the working directory of vfs. The returned
// Redirection is never nil; on error its Args are still stripped and the
// command can run without redirection.
func ResolveRedirection(vfs vos.VFS, tokens TokenList) (*Redirection, error) {
	args := tokens.Args()
	out := &Redirection{Args: args}

	for i := 1; i < len(args); i++ {
		if args[i] != RedirectMarker {
			continue
		}

		out.Args = args[:i:i]
		if i+1 >= len(args) {
			return out, ErrMissingRedirectTarget
		}

		out.Target = args[i+1]
		sink, err := vfs.OpenFile(out.Target, redirectFlags, RedirectPerm)
		if err != nil {
			return out, err
		}
		out.Sink = sink
		return out, nil
	}

	return out, nil
}
