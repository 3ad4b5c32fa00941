package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSecret prints a prompt to w and reads the shared secret from the
// terminal without echo. Only a trailing line break is removed; spaces are
// part of the secret.
func GetSecret(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter secret to share: "); err != nil {
		return "", err
	}
	b, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(string(b), "\r\n"), nil
}
