package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/raphi011/brewlog/internal/ui/prompt"
)

var errCancelled = errors.New("cancelled")

// isInteractive reports whether prompts can be shown.
var isInteractive = func() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// ask prompts for a value, or fails when there is no terminal to ask on.
// flag names the flag that supplies the value non-interactively.
func ask(question, flag string, opts prompt.TextOptions) (string, error) {
	if !isInteractive() {
		return "", fmt.Errorf("%s is required (use --%s)", strings.ToLower(question), flag)
	}
	res, err := prompt.TextInput(question+":", opts)
	if err != nil {
		return "", err
	}
	if res.Cancelled {
		return "", errCancelled
	}
	return res.Value, nil
}

// confirm asks a yes/no question unless yes is already given.
func confirm(question string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}
	if !isInteractive() {
		return false, errors.New("refusing to continue without --yes in a non-interactive session")
	}
	res, err := prompt.Confirm(question)
	if err != nil {
		return false, err
	}
	return res.Confirmed && !res.Cancelled, nil
}

// readSecret reads the first line of r.
func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// validator adapts a check reporting ok into a prompt validator.
func validator(ok func(string) bool, msg string) func(string) error {
	return func(s string) error {
		if !ok(s) {
			return errors.New(msg)
		}
		return nil
	}
}

func ptr[T any](v T) *T { return &v }
