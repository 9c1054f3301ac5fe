package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

func (ctx *Context) readPassword(prompt string) (string, error) {
	if ctx.ReadPassword != nil {
		return ctx.ReadPassword(prompt)
	}

	stdin := ctx.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}
	if ctx.stdinReader == nil {
		ctx.stdinReader = bufio.NewReader(stdin)
	}
	fmt.Fprint(os.Stderr, prompt)
	secret, err := readSecretLine(stdin, ctx.stdinReader)
	fmt.Fprintln(os.Stderr)
	return secret, err
}

// readSecretLine reads one line with echo disabled when stdin is a terminal,
// and as plain input otherwise so the command can be scripted.
func readSecretLine(stdin *os.File, reader *bufio.Reader) (string, error) {
	if restore, err := disableEcho(stdin); err == nil {
		defer restore()
	}

	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
