package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joshnies/pocket/lib/console"
	"github.com/urfave/cli/v2"
	"golang.org/x/term"
)

// Test seams for the terminal.
var (
	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

const readerMetadataKey = "input_reader"

// Returns the buffered input reader for this run, creating it on first use.
func inputReader(c *cli.Context) *bufio.Reader {
	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	if r, ok := c.App.Metadata[readerMetadataKey].(*bufio.Reader); ok {
		return r
	}

	var in io.Reader = os.Stdin
	if c.App.Reader != nil {
		in = c.App.Reader
	}

	r := bufio.NewReader(in)
	c.App.Metadata[readerMetadataKey] = r
	return r
}

// Prompt for a line of input.
func prompt(c *cli.Context, label string) (string, error) {
	fmt.Fprint(console.Out, label+": ")

	line, err := inputReader(c).ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}

	return strings.TrimSpace(line), nil
}

// Returns the flag value, prompting for it if it wasn't set.
func flagOrPrompt(c *cli.Context, flag string, label string) (string, error) {
	if v := c.String(flag); v != "" {
		return v, nil
	}

	return prompt(c, label)
}

// Prompt for a secret without echoing it.
// Falls back to a plain line read when stdin isn't a terminal.
func promptSecret(c *cli.Context, label string) (string, error) {
	fd := int(os.Stdin.Fd())
	if (c.App.Reader != nil && c.App.Reader != os.Stdin) || !isTerminal(fd) {
		return prompt(c, label)
	}

	fmt.Fprint(console.Out, label+": ")
	secret, err := readPassword(fd)
	fmt.Fprintln(console.Out)
	if err != nil {
		return "", err
	}

	return string(secret), nil
}
