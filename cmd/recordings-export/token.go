package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const tokenPrompt = "Webex access token (admin or compliance officer): "

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// readToken prompts for the bearer access token on in, writing the prompt to
// errOut. On a terminal the input is read without echo so the token never
// appears on screen; piped input falls back to a plain line read. An empty
// or interrupted input is an error — the token is required before any
// network activity happens.
func readToken(in io.Reader, errOut io.Writer) (string, error) {
	fmt.Fprint(errOut, tokenPrompt)

	if f, ok := in.(*os.File); ok && isTerminal(f) {
		raw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(errOut)
		if err != nil {
			return "", fmt.Errorf("read access token: %w", err)
		}
		return validateToken(string(raw))
	}

	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("read access token: %w", err)
		}
		return "", fmt.Errorf("access token is required")
	}
	return validateToken(scanner.Text())
}

func validateToken(raw string) (string, error) {
	token := strings.TrimSpace(raw)
	if token == "" {
		return "", fmt.Errorf("access token is required")
	}
	return token, nil
}
