package cmd

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/spiffcs/stalenotify/internal/log"
)

// waitForKey blocks until one key is pressed. On a terminal the key is
// read in raw mode so Enter is not required.
func waitForKey(in io.Reader, out io.Writer) {
	_, _ = fmt.Fprint(out, "Press any key to exit...")
	defer func() { _, _ = fmt.Fprintln(out) }()

	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			log.Debug("failed to enter raw mode", "error", err)
		} else {
			defer func() { _ = term.Restore(int(f.Fd()), state) }()
		}
	}

	buf := make([]byte, 1)
	_, _ = in.Read(buf)
}
