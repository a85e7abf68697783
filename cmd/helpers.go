package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/winpat/vault-client/pkg/vault"
)

// usageError marks arguments rejected before any request is made.
type usageError string

func (e usageError) Error() string { return string(e) }

// errAborted is returned when the user declines a confirmation prompt.
var errAborted = errors.New("Aborted!")

// pathError rewrites the two lookup failures into the user-facing
// sentence, naming the argument role (Path, Source path, Destination
// path). Other errors pass through untouched.
func pathError(err error, role, path string) error {
	var notFound *vault.PathNotFoundError
	if errors.As(err, &notFound) {
		return fmt.Errorf("%s %q does not exist.", role, path)
	}
	var noMount *vault.MountNotFoundError
	if errors.As(err, &noMount) {
		return fmt.Errorf("%s %q is not under a valid mount point.", role, path)
	}
	return err
}

func isPathNotFound(err error) bool {
	var notFound *vault.PathNotFoundError
	return errors.As(err, &notFound)
}

// renderYAML marshals data and writes it without a trailing blank line.
func renderYAML(out io.Writer, data any) error {
	yamlData, err := yaml.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	fmt.Fprint(out, string(yamlData))
	return nil
}

// promptPassword asks for a password without echoing it when stdin is a
// terminal. Piped input is read as a single line.
func promptPassword(out io.Writer) (string, error) {
	fmt.Fprint(out, "Password: ")

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		defer fmt.Fprintln(out)
		raw, err := term.ReadPassword(fd)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// confirm prompts for a yes/no answer and treats everything but
// y/yes as no.
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", prompt)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
