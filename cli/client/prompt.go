/******************************************************************************
 * Copyright (c) 2024-2026 Tenebris Technologies Inc.                         *
 * Please see the LICENSE file for details                                    *
 ******************************************************************************/

package client

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// Prompt reads a line from stdin, repeating until it is not empty
func Prompt(label string) (string, error) {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Printf("%s: ", label)
		input, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("error reading %s: %w", strings.ToLower(label), err)
		}
		if value := strings.TrimSpace(input); value != "" {
			return value, nil
		}
		fmt.Printf("%s cannot be empty. Please try again.\n", label)
	}
}

// Password returns the password from the environment variable env or, if it
// is not set, prompts for it without echo
func Password(env, label string) (string, error) {
	if env != "" {
		if pass := os.Getenv(env); pass != "" {
			return pass, nil
		}
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", errors.New("a password is required but stdin is not a terminal")
	}

	for {
		fmt.Printf("%s: ", label)
		passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println() // Print newline after password input
		if err != nil {
			return "", fmt.Errorf("error reading password: %w", err)
		}
		if len(passwordBytes) > 0 {
			return string(passwordBytes), nil
		}
		fmt.Println("Password cannot be empty. Please try again.")
	}
}

// Value returns flag if set, then the environment variable env, then prompts
func Value(flag, env, label string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if env != "" {
		if v := os.Getenv(env); v != "" {
			return v, nil
		}
	}
	return Prompt(label)
}
